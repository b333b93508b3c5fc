package encoding

import (
	"iter"
	"math"

	"github.com/arloliu/vizstream/endian"
	"github.com/arloliu/vizstream/internal/pool"
)

// FloatRawEncoder writes float64 values as fixed 8-byte IEEE 754 words in
// the configured byte order. NaN marks a missing or non-numeric value.
type FloatRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float64] = (*FloatRawEncoder)(nil)

// NewFloatRawEncoder creates a raw float64 encoder.
//
// Parameters:
//   - engine: Byte order of the payload
func NewFloatRawEncoder(engine endian.EndianEngine) *FloatRawEncoder {
	return &FloatRawEncoder{
		engine: engine,
		buf:    pool.GetPayloadBuffer(),
	}
}

// Write implements ColumnarEncoder.
func (e *FloatRawEncoder) Write(v float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.Grow(8)
	e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v))
}

// WriteSlice implements ColumnarEncoder.
func (e *FloatRawEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count += len(values)
	e.buf.Grow(8 * len(values))
	for _, v := range values {
		e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v))
	}
}

// Bytes implements ColumnarEncoder.
func (e *FloatRawEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len implements ColumnarEncoder.
func (e *FloatRawEncoder) Len() int {
	return e.count
}

// Size implements ColumnarEncoder.
func (e *FloatRawEncoder) Size() int {
	return e.buf.Len()
}

// Reset implements ColumnarEncoder. Raw values carry no run state.
func (e *FloatRawEncoder) Reset() {}

// Finish implements ColumnarEncoder.
func (e *FloatRawEncoder) Finish() {
	pool.PutPayloadBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// FloatRawDecoder reads payloads produced by FloatRawEncoder.
type FloatRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = FloatRawDecoder{}

// NewFloatRawDecoder creates a raw float64 decoder for the given byte order.
func NewFloatRawDecoder(engine endian.EndianEngine) FloatRawDecoder {
	return FloatRawDecoder{engine: engine}
}

// All implements ColumnarDecoder.
func (d FloatRawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		n := min(count, len(data)/8)
		for i := range n {
			if !yield(math.Float64frombits(d.engine.Uint64(data[i*8:]))) {
				return
			}
		}
	}
}

// At implements ColumnarDecoder.
func (d FloatRawDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count || (index+1)*8 > len(data) {
		return 0, false
	}

	return math.Float64frombits(d.engine.Uint64(data[index*8:])), true
}
