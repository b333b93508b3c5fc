package encoding

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/arloliu/vizstream/internal/pool"
)

// MaxTextLength is the longest string a VarStringEncoder accepts.
const MaxTextLength = 64 * 1024

// VarStringEncoder encodes strings with a uvarint length prefix.
//
// Each string is encoded as:
//   - 1-3 bytes: length as uvarint
//   - N bytes: string data (UTF-8)
//
// Note: VarStringEncoder is not a ColumnarEncoder since writes can fail.
type VarStringEncoder struct {
	buf   *pool.ByteBuffer
	temp  [binary.MaxVarintLen32]byte
	count int
}

// NewVarStringEncoder creates a length-prefixed string encoder backed by a
// pooled buffer.
func NewVarStringEncoder() *VarStringEncoder {
	return &VarStringEncoder{buf: pool.GetPayloadBuffer()}
}

// Write encodes a single string.
//
// Returns:
//   - error: If text exceeds MaxTextLength; nothing is written then
func (e *VarStringEncoder) Write(text string) error {
	if len(text) > MaxTextLength {
		return fmt.Errorf("text length %d exceeds maximum %d", len(text), MaxTextLength)
	}

	n := binary.PutUvarint(e.temp[:], uint64(len(text)))
	e.buf.Grow(n + len(text))
	e.buf.MustWrite(e.temp[:n])
	e.buf.B = append(e.buf.B, text...)
	e.count++

	return nil
}

// WriteSlice encodes texts. All strings are validated before any is written.
func (e *VarStringEncoder) WriteSlice(texts []string) error {
	total := 0
	for _, text := range texts {
		if len(text) > MaxTextLength {
			return fmt.Errorf("text length %d exceeds maximum %d", len(text), MaxTextLength)
		}
		total += binary.MaxVarintLen32 + len(text)
	}

	e.buf.Grow(total)
	for _, text := range texts {
		_ = e.Write(text)
	}

	return nil
}

// Bytes returns the encoded data. Do not modify the returned slice.
func (e *VarStringEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of strings encoded.
func (e *VarStringEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *VarStringEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the buffer to the pool. The encoder must not be used afterwards.
func (e *VarStringEncoder) Finish() {
	if e.buf != nil {
		pool.PutPayloadBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// VarStringDecoder reads payloads produced by VarStringEncoder.
type VarStringDecoder struct{}

var _ ColumnarDecoder[string] = VarStringDecoder{}

// NewVarStringDecoder creates a length-prefixed string decoder.
func NewVarStringDecoder() VarStringDecoder {
	return VarStringDecoder{}
}

// All implements ColumnarDecoder.
func (d VarStringDecoder) All(data []byte, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		offset := 0
		for range count {
			s, n, ok := readVarString(data[offset:])
			if !ok {
				return
			}
			offset += n

			if !yield(s) {
				return
			}
		}
	}
}

// At implements ColumnarDecoder. Access is sequential, O(index).
func (d VarStringDecoder) At(data []byte, index int, count int) (string, bool) {
	if index < 0 || index >= count {
		return "", false
	}

	offset := 0
	for i := 0; ; i++ {
		s, n, ok := readVarString(data[offset:])
		if !ok {
			return "", false
		}
		if i == index {
			return s, true
		}
		offset += n
	}
}

// Decode reads exactly count strings and reports how many bytes they took.
//
// Returns:
//   - []string: Decoded strings
//   - int: Bytes consumed from data
//   - error: If data holds fewer than count strings
func (d VarStringDecoder) Decode(data []byte, count int) ([]string, int, error) {
	out := make([]string, 0, count)
	offset := 0
	for i := range count {
		s, n, ok := readVarString(data[offset:])
		if !ok {
			return nil, offset, fmt.Errorf("string %d of %d: truncated data at offset %d", i, count, offset)
		}
		out = append(out, s)
		offset += n
	}

	return out, offset, nil
}

func readVarString(data []byte) (string, int, bool) {
	length, n := binary.Uvarint(data)
	if n <= 0 || length > MaxTextLength || uint64(len(data)-n) < length {
		return "", 0, false
	}
	end := n + int(length) //nolint:gosec

	return string(data[n:end]), end, true
}
