package frame

import "math"

const (
	// Bit masks of Flag.Options
	CollisionMask   = 0x0001 // Mask for hash collision bit (bit 0)
	EndiannessMask  = 0x0002 // Mask for endianness bit (bit 1)
	DomainMask      = 0x0004 // Mask for x domain presence bit (bit 2)
	ReservedMask    = 0x0008 // Mask for reserved bit (bit 3)
	MagicNumberMask = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicFrameV1Opt is the version 1 magic number of render frames.
	MagicFrameV1Opt = 0xEC10
)

// offsets and section sizes in a frame
const (
	HeaderSize        = 48             // fixed header size in bytes
	IndexEntrySize    = 24             // fixed index entry size in bytes
	IndexOffsetOffset = HeaderSize     // byte offset where the index section starts
	MaxSeriesCount    = math.MaxUint16 // maximum number of series in one frame
	MaxPointCount     = math.MaxUint32 // maximum number of points of one series
	MaxChartIndex     = math.MaxUint16 // maximum chart index stored in an entry
)
