package frame

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/vizstream/compress"
	"github.com/arloliu/vizstream/encoding"
	"github.com/arloliu/vizstream/endian"
	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/format"
	"github.com/arloliu/vizstream/internal/collision"
	"github.com/arloliu/vizstream/internal/hash"
	"github.com/arloliu/vizstream/internal/options"
	"github.com/arloliu/vizstream/internal/pool"
	"github.com/arloliu/vizstream/series"
)

// EncoderConfig holds the settings of an Encoder.
type EncoderConfig struct {
	compression format.CompressionType
	bigEndian   bool
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression sets the compression applied to the x and y payloads.
func WithCompression(ct format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if _, err := compress.CreateCodec(ct, "payload"); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// WithBigEndian writes frames in big-endian byte order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.bigEndian = true
	})
}

// WithLittleEndian writes frames in little-endian byte order (the default).
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.bigEndian = false
	})
}

// Stats describes the payloads of the last encoded frame.
type Stats struct {
	Size   int
	Series int
	Points int
	X      compress.CompressionStats
	Y      compress.CompressionStats
}

// Encoder turns snapshots into render frames.
//
// An Encoder reuses its collision tracker between frames and is not safe for
// concurrent use.
type Encoder struct {
	cfg     EncoderConfig
	codec   compress.Codec
	tracker *collision.Tracker
	stats   Stats
}

// NewEncoder creates a frame encoder.
//
// Parameters:
//   - opts: Compression and byte order options
//
// Returns:
//   - *Encoder: Encoder for uncompressed little-endian frames unless configured otherwise
//   - error: If an option is invalid
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := EncoderConfig{compression: format.CompressionNone}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		cfg:     cfg,
		codec:   codec,
		tracker: collision.NewTracker(),
	}, nil
}

// Stats returns the statistics of the last successful Encode.
func (e *Encoder) Stats() Stats {
	return e.stats
}

// Encode serializes snap into a new frame.
//
// Series are written in the snapshot's first-seen order together with the
// color their chart assigned to them. Non-numeric y values are stored as NaN.
//
// Returns:
//   - []byte: Frame owned by the caller
//   - error: ErrInvalidFrame if the snapshot exceeds the frame limits, or a
//     series name error from the collision tracker
func (e *Encoder) Encode(snap *series.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", errs.ErrInvalidFrame)
	}

	keys := snap.Keys()
	if len(keys) > MaxSeriesCount {
		return nil, fmt.Errorf("%w: %d series exceed maximum %d", errs.ErrInvalidFrame, len(keys), MaxSeriesCount)
	}

	scale := snap.Axis.Scale
	if scale == 0 {
		scale = format.ScaleTime
	}
	engine := endian.ForFrame(e.cfg.bigEndian)

	e.tracker.Reset()

	names := encoding.NewVarStringEncoder()
	defer names.Finish()
	ys := encoding.NewFloatRawEncoder(engine)
	defer ys.Finish()
	xs := newXWriter(scale, engine)
	defer xs.finish()

	entries := make([]IndexEntry, 0, len(keys))
	points := 0
	for _, key := range keys {
		buf := snap.Buffer(key)
		if key.Chart < 0 || key.Chart > MaxChartIndex {
			return nil, fmt.Errorf("%w: chart index %d out of range", errs.ErrInvalidFrame, key.Chart)
		}
		if uint64(len(buf)) > MaxPointCount {
			return nil, fmt.Errorf("%w: series %s has %d points", errs.ErrInvalidFrame, key, len(buf))
		}

		id := hash.SeriesID(key.Chart, key.Name)
		if err := e.tracker.TrackSeries(key.Name, id); err != nil {
			return nil, fmt.Errorf("series %s: %w", key, err)
		}

		color := ""
		if chart, ok := snap.Chart(key.Chart); ok {
			color, _ = chart.Color(key.Name)
		}
		if err := names.WriteSlice([]string{key.Name, color}); err != nil {
			return nil, fmt.Errorf("series %s: %w", key, err)
		}

		xStart, yStart := xs.size(), ys.Size()
		if err := xs.write(buf); err != nil {
			return nil, fmt.Errorf("series %s: %w", key, err)
		}
		for _, p := range buf {
			y, ok := p.YFloat()
			if !ok {
				y = math.NaN()
			}
			ys.Write(y)
		}

		entries = append(entries, IndexEntry{
			SeriesID: id,
			Chart:    key.Chart,
			Count:    len(buf),
			XLength:  xs.size() - xStart,
			YLength:  ys.Size() - yStart,
		})
		points += len(buf)
	}

	xPayload, xStats, err := compress.Measure(e.codec, e.cfg.compression, xs.bytes())
	if err != nil {
		return nil, fmt.Errorf("compress x payload: %w", err)
	}
	yPayload, yStats, err := compress.Measure(e.codec, e.cfg.compression, ys.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress y payload: %w", err)
	}

	namesOffset := HeaderSize + len(entries)*IndexEntrySize
	xOffset := namesOffset + names.Size()
	yOffset := xOffset + len(xPayload)
	total := yOffset + len(yPayload)
	if uint64(total) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: frame size %d exceeds 4GiB", errs.ErrInvalidFrame, total)
	}

	header := NewHeader(snap.Generation)
	header.Flag.Scale = uint8(scale)
	header.Flag.Compression = uint8(e.cfg.compression)
	if e.cfg.bigEndian {
		header.Flag.WithBigEndian()
	}
	header.Flag.SetCollision(e.tracker.HasCollision())
	if snap.Axis.HasDomain {
		header.Flag.SetHasDomain(true)
		header.DomainMin = snap.Axis.Domain.Min
		header.DomainMax = snap.Axis.Domain.Max
	}
	header.SeriesCount = uint32(len(entries))       //nolint: gosec
	header.NamesPayloadOffset = uint32(namesOffset) //nolint: gosec
	header.XPayloadOffset = uint32(xOffset)         //nolint: gosec
	header.YPayloadOffset = uint32(yOffset)         //nolint: gosec

	frame := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(frame)

	frame.Grow(total)
	frame.B = frame.B[:total]
	header.writeTo(frame.B[:HeaderSize])
	offset := IndexOffsetOffset
	for i := range entries {
		offset = entries[i].WriteToSlice(frame.B, offset, engine)
	}
	copy(frame.B[namesOffset:], names.Bytes())
	copy(frame.B[xOffset:], xPayload)
	copy(frame.B[yOffset:], yPayload)

	e.stats = Stats{Size: total, Series: len(entries), Points: points, X: xStats, Y: yStats}

	return bytes.Clone(frame.B), nil
}

// xWriter encodes x values with the encoding of the axis scale.
type xWriter struct {
	scale format.ScaleKind
	delta *encoding.DeltaEncoder
	raw   *encoding.FloatRawEncoder
	text  *encoding.VarStringEncoder
}

func newXWriter(scale format.ScaleKind, engine endian.EndianEngine) *xWriter {
	w := &xWriter{scale: scale}
	switch scale {
	case format.ScaleTime:
		w.delta = encoding.NewDeltaEncoder()
	case format.ScaleLinear:
		w.raw = encoding.NewFloatRawEncoder(engine)
	default:
		w.text = encoding.NewVarStringEncoder()
	}

	return w
}

// write appends the x values of one series. Time series start a new delta run.
func (w *xWriter) write(points []series.Point) error {
	switch {
	case w.delta != nil:
		w.delta.Reset()
		for _, p := range points {
			w.delta.Write(int64(math.Round(p.XFloat())))
		}
	case w.raw != nil:
		for _, p := range points {
			w.raw.Write(p.XFloat())
		}
	default:
		for _, p := range points {
			if err := w.text.Write(series.CategoryKey(p.X)); err != nil {
				return err
			}
		}
	}

	return nil
}

func (w *xWriter) size() int {
	switch {
	case w.delta != nil:
		return w.delta.Size()
	case w.raw != nil:
		return w.raw.Size()
	default:
		return w.text.Size()
	}
}

func (w *xWriter) bytes() []byte {
	switch {
	case w.delta != nil:
		return w.delta.Bytes()
	case w.raw != nil:
		return w.raw.Bytes()
	default:
		return w.text.Bytes()
	}
}

func (w *xWriter) finish() {
	switch {
	case w.delta != nil:
		w.delta.Finish()
	case w.raw != nil:
		w.raw.Finish()
	default:
		w.text.Finish()
	}
}
