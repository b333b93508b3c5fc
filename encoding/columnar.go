package encoding

import "iter"

// ColumnarEncoder appends values of one frame payload column.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded payload.
	// The returned slice is valid until the next Write, WriteSlice or Finish.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the payload size in bytes.
	Size() int

	// Reset starts a new run of values while keeping the encoded payload.
	// Delta state is cleared so the next value is written in full.
	Reset()

	// Finish returns the buffer to the pool. The encoder must not be used
	// afterwards:
	//
	//	enc := NewFloatRawEncoder(engine)
	//	defer enc.Finish()
	Finish()

	// Write appends a single value.
	Write(v T)

	// WriteSlice appends values in bulk.
	WriteSlice(values []T)
}

// ColumnarDecoder reads values of one frame payload column.
type ColumnarDecoder[T comparable] interface {
	// All yields up to count values decoded from data. Malformed data ends
	// the sequence early.
	All(data []byte, count int) iter.Seq[T]

	// At returns the value at index, or false when index is outside
	// [0, count) or data is too short.
	At(data []byte, index int, count int) (T, bool)
}
