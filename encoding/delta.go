package encoding

import (
	"encoding/binary"
	"iter"

	"github.com/arloliu/vizstream/internal/pool"
)

// DeltaEncoder encodes int64 values (epoch milliseconds on time axes) with
// delta-of-delta, zigzag and varint compression.
//
// Layout of one run:
//   - first value: zigzag varint
//   - second value: zigzag varint of the delta to the first
//   - later values: zigzag varint of delta minus previous delta
//
// Regularly spaced timestamps cost one byte each after the second.
type DeltaEncoder struct {
	prev      int64
	prevDelta int64
	run       int // values written since the last Reset
	temp      [binary.MaxVarintLen64]byte
	buf       *pool.ByteBuffer
	count     int
}

var _ ColumnarEncoder[int64] = (*DeltaEncoder)(nil)

// NewDeltaEncoder creates a delta-of-delta encoder backed by a pooled buffer.
func NewDeltaEncoder() *DeltaEncoder {
	return &DeltaEncoder{buf: pool.GetPayloadBuffer()}
}

// Write implements ColumnarEncoder.
func (e *DeltaEncoder) Write(v int64) {
	e.buf.Grow(binary.MaxVarintLen64)
	e.count++
	e.run++

	var val int64
	switch e.run {
	case 1:
		val = v
	case 2:
		val = v - e.prev
		e.prevDelta = val
	default:
		delta := v - e.prev
		val = delta - e.prevDelta
		e.prevDelta = delta
	}
	e.prev = v

	n := binary.PutVarint(e.temp[:], val)
	e.buf.MustWrite(e.temp[:n])
}

// WriteSlice implements ColumnarEncoder.
func (e *DeltaEncoder) WriteSlice(values []int64) {
	if len(values) == 0 {
		return
	}

	// first value up to 10 bytes, regular deltas mostly 1-2 bytes
	e.buf.Grow(binary.MaxVarintLen64 + len(values)*2)
	for _, v := range values {
		e.Write(v)
	}
}

// Bytes implements ColumnarEncoder.
func (e *DeltaEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len implements ColumnarEncoder.
func (e *DeltaEncoder) Len() int {
	return e.count
}

// Size implements ColumnarEncoder.
func (e *DeltaEncoder) Size() int {
	return e.buf.Len()
}

// Reset implements ColumnarEncoder.
func (e *DeltaEncoder) Reset() {
	e.prev = 0
	e.prevDelta = 0
	e.run = 0
}

// Finish implements ColumnarEncoder.
func (e *DeltaEncoder) Finish() {
	pool.PutPayloadBuffer(e.buf)
	e.buf = nil
	e.count = 0
	e.Reset()
}

// DeltaDecoder decodes payloads produced by DeltaEncoder. Each decoded run
// must start at a run boundary of the encoder.
type DeltaDecoder struct{}

var _ ColumnarDecoder[int64] = DeltaDecoder{}

// NewDeltaDecoder creates a delta-of-delta decoder.
func NewDeltaDecoder() DeltaDecoder {
	return DeltaDecoder{}
}

// All implements ColumnarDecoder.
func (d DeltaDecoder) All(data []byte, count int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		var cur, delta int64
		offset := 0
		for i := range count {
			val, n := binary.Varint(data[offset:])
			if n <= 0 {
				return
			}
			offset += n

			switch i {
			case 0:
				cur = val
			case 1:
				delta = val
				cur += delta
			default:
				delta += val
				cur += delta
			}

			if !yield(cur) {
				return
			}
		}
	}
}

// At implements ColumnarDecoder. Access is sequential, O(index).
func (d DeltaDecoder) At(data []byte, index int, count int) (int64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	i := 0
	for v := range d.All(data, index+1) {
		if i == index {
			return v, true
		}
		i++
	}

	return 0, false
}

// Slice decodes count values into a new slice. It returns false when data
// holds fewer values.
func (d DeltaDecoder) Slice(data []byte, count int) ([]int64, bool) {
	out := make([]int64, 0, count)
	for v := range d.All(data, count) {
		out = append(out, v)
	}

	return out, len(out) == count
}
