package frame

import (
	"github.com/arloliu/vizstream/endian"
	"github.com/arloliu/vizstream/errs"
)

// IndexEntry describes one series of a frame. It is a fixed size of 24 bytes.
//
// Lengths are byte lengths inside the decompressed x and y payloads; the
// offset of a series is the sum of the lengths of the entries before it.
type IndexEntry struct {
	// SeriesID is the xxHash64 of the chart index and series name.
	//
	// Offset: 0, Size: 8 bytes
	SeriesID uint64

	// Chart is the index of the chart spec owning the series.
	//
	// Offset: 8, Size: 2 bytes. Bytes 10-11 are reserved.
	Chart int

	// Count is the number of points of the series.
	//
	// Offset: 12, Size: 4 bytes
	Count int

	// XLength is the byte length of the encoded x values.
	//
	// Offset: 16, Size: 4 bytes
	XLength int

	// YLength is the byte length of the encoded y values.
	//
	// Offset: 20, Size: 4 bytes
	YLength int

	// XOffset and YOffset are the absolute offsets inside the decompressed
	// payloads. They are not stored and are filled in by the decoder.
	XOffset int
	YOffset int
}

// WriteToSlice writes to a pre-allocated slice and returns the next position.
//
// Parameters:
//   - data: Pre-allocated byte slice (must have space for 24 bytes at offset)
//   - offset: Starting position in data slice
//   - engine: Endian engine for byte order
//
// Returns:
//   - int: Next write position (offset + 24)
func (e *IndexEntry) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint64(data[offset:offset+8], e.SeriesID)
	engine.PutUint16(data[offset+8:offset+10], uint16(e.Chart)) //nolint: gosec
	data[offset+10] = 0
	data[offset+11] = 0
	engine.PutUint32(data[offset+12:offset+16], uint32(e.Count))   //nolint: gosec
	engine.PutUint32(data[offset+16:offset+20], uint32(e.XLength)) //nolint: gosec
	engine.PutUint32(data[offset+20:offset+24], uint32(e.YLength)) //nolint: gosec

	return offset + IndexEntrySize
}

// ParseIndexEntry parses an IndexEntry from a byte slice.
//
// Returns:
//   - IndexEntry: Parsed entry with zero absolute offsets
//   - error: ErrInvalidIndexEntrySize if data is too short
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) < IndexEntrySize {
		return IndexEntry{}, errs.ErrInvalidIndexEntrySize
	}

	return IndexEntry{
		SeriesID: engine.Uint64(data[0:8]),
		Chart:    int(engine.Uint16(data[8:10])),
		Count:    int(engine.Uint32(data[12:16])),
		XLength:  int(engine.Uint32(data[16:20])),
		YLength:  int(engine.Uint32(data[20:24])),
	}, nil
}
