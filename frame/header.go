package frame

import (
	"math"

	"github.com/arloliu/vizstream/errs"
)

// Header is the fixed-size section at the start of a frame.
type Header struct {
	// Flag is a packed field for options, magic number, scale and compression.
	Flag Flag // byte offset 0-3
	// Generation is the configuration generation of the encoded snapshot.
	Generation uint64 // byte offset 4-11
	// SeriesCount is the number of series in the frame, max to 65535.
	SeriesCount uint32 // byte offset 12-15
	// IndexOffset is the byte offset to the start of the index section.
	IndexOffset uint32 // byte offset 16-19
	// NamesPayloadOffset is the byte offset to the names and colors payload.
	NamesPayloadOffset uint32 // byte offset 20-23
	// XPayloadOffset is the byte offset to the encoded and compressed (if any) x payload.
	XPayloadOffset uint32 // byte offset 24-27
	// YPayloadOffset is the byte offset to the encoded and compressed (if any) y payload.
	// The y payload runs to the end of the frame.
	YPayloadOffset uint32 // byte offset 28-31
	// DomainMin and DomainMax are the x domain when Flag.HasDomain is set.
	DomainMin float64 // byte offset 32-39
	DomainMax float64 // byte offset 40-47
}

// NewHeader creates a header for a snapshot of the given generation.
// Counts and offsets are set when the encoder finishes.
func NewHeader(generation uint64) *Header {
	return &Header{
		Flag:        NewFlag(),
		Generation:  generation,
		IndexOffset: IndexOffsetOffset,
	}
}

// Bytes serializes the header into a 48-byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.writeTo(b)

	return b
}

func (h *Header) writeTo(b []byte) {
	engine := h.Flag.GetEndianEngine()

	// Options is always little-endian so the endianness bit can be read first.
	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Scale
	b[3] = h.Flag.Compression
	engine.PutUint64(b[4:12], h.Generation)
	engine.PutUint32(b[12:16], h.SeriesCount)
	engine.PutUint32(b[16:20], h.IndexOffset)
	engine.PutUint32(b[20:24], h.NamesPayloadOffset)
	engine.PutUint32(b[24:28], h.XPayloadOffset)
	engine.PutUint32(b[28:32], h.YPayloadOffset)
	engine.PutUint64(b[32:40], math.Float64bits(h.DomainMin))
	engine.PutUint64(b[40:48], math.Float64bits(h.DomainMax))
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 48 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 48 bytes, or flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Scale = data[2]
	h.Flag.Compression = data[3]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.Generation = engine.Uint64(data[4:12])
	h.SeriesCount = engine.Uint32(data[12:16])
	h.IndexOffset = engine.Uint32(data[16:20])
	h.NamesPayloadOffset = engine.Uint32(data[20:24])
	h.XPayloadOffset = engine.Uint32(data[24:28])
	h.YPayloadOffset = engine.Uint32(data[28:32])
	h.DomainMin = math.Float64frombits(engine.Uint64(data[32:40]))
	h.DomainMax = math.Float64frombits(engine.Uint64(data[40:48]))

	return nil
}

// ParseHeader parses a Header from the start of a frame.
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber or ErrInvalidFrame
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
