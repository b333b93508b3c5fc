package frame

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/vizstream/compress"
	"github.com/arloliu/vizstream/encoding"
	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/format"
	"github.com/arloliu/vizstream/internal/hash"
	"github.com/arloliu/vizstream/series"
)

// Series is one decoded series of a frame.
type Series struct {
	ID    uint64 `json:"id"`
	Chart int    `json:"chart"`
	Name  string `json:"name"`
	Color string `json:"color"`
	// X holds the x values of continuous axes, Unix milliseconds on time axes.
	X []float64 `json:"x,omitempty"`
	// Labels holds the x values of ordinal axes.
	Labels []string `json:"labels,omitempty"`
	// Y holds the y values; NaN marks a non-numeric value.
	Y []float64 `json:"-"`
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Y)
}

// YValues returns the y values with NaN replaced by nil, suitable for JSON.
func (s Series) YValues() []any {
	out := make([]any, len(s.Y))
	for i, y := range s.Y {
		if !math.IsNaN(y) {
			out[i] = y
		}
	}

	return out
}

// Frame is a decoded render frame.
type Frame struct {
	Header Header
	Series []Series
}

// Generation returns the configuration generation of the encoded snapshot.
func (f *Frame) Generation() uint64 {
	return f.Header.Generation
}

// Scale returns the x axis scale.
func (f *Frame) Scale() format.ScaleKind {
	return f.Header.Flag.ScaleKind()
}

// Domain returns the x domain and whether the snapshot had one.
func (f *Frame) Domain() (series.Domain, bool) {
	if !f.Header.Flag.HasDomain() {
		return series.Domain{}, false
	}

	return series.Domain{Min: f.Header.DomainMin, Max: f.Header.DomainMax}, true
}

// Lookup returns the series name of chart. Names are compared directly so
// lookups stay correct in frames with hash collisions.
func (f *Frame) Lookup(chart int, name string) (Series, bool) {
	i := slices.IndexFunc(f.Series, func(s Series) bool {
		return s.Chart == chart && s.Name == name
	})
	if i < 0 {
		return Series{}, false
	}

	return f.Series[i], true
}

// Decode parses a frame produced by Encoder.Encode.
//
// The decoder checks the magic number, the section offsets and, unless the
// collision bit is set, that every series name hashes to its stored ID.
//
// Returns:
//   - *Frame: Decoded frame; it shares no memory with data
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber, ErrInvalidIndexEntrySize,
//     ErrHashMismatch or ErrInvalidFrame
func Decode(data []byte) (*Frame, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if err := validateOffsets(header, len(data)); err != nil {
		return nil, err
	}

	engine := header.Flag.GetEndianEngine()
	count := int(header.SeriesCount)

	entries := make([]IndexEntry, count)
	xOffset, yOffset := 0, 0
	for i := range entries {
		start := int(header.IndexOffset) + i*IndexEntrySize
		entry, err := ParseIndexEntry(data[start:int(header.NamesPayloadOffset)], engine)
		if err != nil {
			return nil, err
		}
		entry.XOffset, entry.YOffset = xOffset, yOffset
		xOffset += entry.XLength
		yOffset += entry.YLength
		entries[i] = entry
	}

	names, _, err := encoding.NewVarStringDecoder().Decode(data[header.NamesPayloadOffset:header.XPayloadOffset], 2*count)
	if err != nil {
		return nil, fmt.Errorf("%w: names payload: %w", errs.ErrInvalidFrame, err)
	}

	verify := !header.Flag.HasCollision()
	for i, entry := range entries {
		if verify && hash.SeriesID(entry.Chart, names[2*i]) != entry.SeriesID {
			return nil, fmt.Errorf("%w: series %d %q", errs.ErrHashMismatch, i, names[2*i])
		}
	}

	codec, err := compress.GetCodec(header.Flag.CompressionType())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidFrame, err)
	}
	xPayload, err := codec.Decompress(data[header.XPayloadOffset:header.YPayloadOffset])
	if err != nil {
		return nil, fmt.Errorf("%w: x payload: %w", errs.ErrInvalidFrame, err)
	}
	yPayload, err := codec.Decompress(data[header.YPayloadOffset:])
	if err != nil {
		return nil, fmt.Errorf("%w: y payload: %w", errs.ErrInvalidFrame, err)
	}
	if xOffset != len(xPayload) || yOffset != len(yPayload) {
		return nil, fmt.Errorf("%w: payload lengths x=%d/%d y=%d/%d", errs.ErrInvalidFrame,
			xOffset, len(xPayload), yOffset, len(yPayload))
	}

	yDecoder := encoding.NewFloatRawDecoder(engine)
	frame := &Frame{Header: header, Series: make([]Series, count)}
	for i, entry := range entries {
		s := Series{
			ID:    entry.SeriesID,
			Chart: entry.Chart,
			Name:  names[2*i],
			Color: names[2*i+1],
		}

		if entry.YLength != entry.Count*8 {
			return nil, fmt.Errorf("%w: series %q y length %d for %d points", errs.ErrInvalidFrame,
				s.Name, entry.YLength, entry.Count)
		}
		s.Y = slices.Collect(yDecoder.All(yPayload[entry.YOffset:entry.YOffset+entry.YLength], entry.Count))

		xs := xPayload[entry.XOffset : entry.XOffset+entry.XLength]
		if err := decodeX(&s, header.Flag.ScaleKind(), xs, entry.Count, encoding.NewFloatRawDecoder(engine)); err != nil {
			return nil, fmt.Errorf("%w: series %q: %w", errs.ErrInvalidFrame, s.Name, err)
		}

		frame.Series[i] = s
	}

	return frame, nil
}

func validateOffsets(h Header, size int) error {
	count := int(h.SeriesCount)
	names := int(h.NamesPayloadOffset)
	x := int(h.XPayloadOffset)
	y := int(h.YPayloadOffset)

	switch {
	case count > MaxSeriesCount:
		return fmt.Errorf("%w: series count %d", errs.ErrInvalidFrame, count)
	case int(h.IndexOffset) != IndexOffsetOffset:
		return fmt.Errorf("%w: index offset %d", errs.ErrInvalidFrame, h.IndexOffset)
	case names != IndexOffsetOffset+count*IndexEntrySize:
		if names < IndexOffsetOffset+count*IndexEntrySize {
			return errs.ErrInvalidIndexEntrySize
		}
		return fmt.Errorf("%w: names offset %d", errs.ErrInvalidFrame, names)
	case names > size || x < names || y < x || y > size:
		return fmt.Errorf("%w: payload offsets names=%d x=%d y=%d size=%d", errs.ErrInvalidFrame, names, x, y, size)
	}

	return nil
}

func decodeX(s *Series, scale format.ScaleKind, data []byte, count int, raw encoding.FloatRawDecoder) error {
	switch scale {
	case format.ScaleTime:
		values, ok := encoding.NewDeltaDecoder().Slice(data, count)
		if !ok {
			return errors.New("truncated time payload")
		}
		s.X = make([]float64, len(values))
		for i, v := range values {
			s.X[i] = float64(v)
		}
	case format.ScaleLinear:
		if len(data) != count*8 {
			return fmt.Errorf("x length %d for %d points", len(data), count)
		}
		s.X = slices.Collect(raw.All(data, count))
	default:
		labels, n, err := encoding.NewVarStringDecoder().Decode(data, count)
		if err != nil {
			return err
		}
		if n != len(data) {
			return fmt.Errorf("%d trailing bytes in label payload", len(data)-n)
		}
		s.Labels = labels
	}

	return nil
}
