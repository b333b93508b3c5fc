// Package vizstream aggregates streaming tabular batches into render-ready
// chart state.
//
// Callers deliver batches of rows plus column metadata; the engine groups
// rows into series, assigns stable colors, merges them into bounded buffers
// and publishes an immutable snapshot after every batch. Variants cover maps
// (geo), tables (table) and single-value displays (number).
//
// # Basic Usage
//
//	cfg, _ := series.LoadConfig("latency.yaml")
//	c, _ := vizstream.NewChart(cfg)
//
//	view, err := c.Update(series.Batch{
//	    Metadata: series.Metadata{
//	        Names: []string{"ts", "latency", "region"},
//	        Types: []format.ScaleKind{format.ScaleTime, format.ScaleLinear, format.ScaleOrdinal},
//	    },
//	    Rows: []series.Row{{time.Now(), 42.0, "eu"}},
//	})
//	for _, layer := range view.Layers {
//	    for _, s := range layer.Series {
//	        fmt.Println(s.Name, s.Color, len(s.Points))
//	    }
//	}
//
// Snapshots can be shipped to out-of-process renderers as binary frames:
//
//	enc, _ := vizstream.NewFrameEncoder(frame.WithCompression(format.CompressionS2))
//	data, _ := enc.Encode(c.Engine().Snapshot())
//	f, _ := vizstream.DecodeFrame(data)
//
// # Package Structure
//
// This package holds convenience constructors. The series package implements
// the aggregation pipeline, chart adds chart families and views, geo, table
// and number the variants, frame the binary codec and render a go-chart
// adapter.
package vizstream

import (
	"github.com/arloliu/vizstream/chart"
	"github.com/arloliu/vizstream/frame"
	"github.com/arloliu/vizstream/geo"
	"github.com/arloliu/vizstream/internal/hash"
	"github.com/arloliu/vizstream/number"
	"github.com/arloliu/vizstream/series"
	"github.com/arloliu/vizstream/table"
)

// NewChart creates a basic chart (line, area, bar, scatter).
//
// Returns:
//   - *chart.Chart: Chart in the uninitialized phase
//   - error: *errs.ConfigError if cfg is invalid or uses a spark type
func NewChart(cfg series.Config, opts ...series.EngineOption) (*chart.Chart, error) {
	return chart.NewBasic(cfg, opts...)
}

// NewSparkChart creates an inline chart (spark-line, spark-area, spark-bar).
func NewSparkChart(cfg series.Config, opts ...series.EngineOption) (*chart.Chart, error) {
	return chart.NewInline(cfg, opts...)
}

// NewMap creates a choropleth map aggregator.
func NewMap(cfg geo.Config, opts ...geo.Option) (*geo.Map, error) {
	return geo.New(cfg, opts...)
}

// NewTable creates a table aggregator.
func NewTable(cfg table.Config, opts ...table.Option) (*table.Table, error) {
	return table.New(cfg, opts...)
}

// NewNumber creates a single-value display.
func NewNumber(cfg number.Config) (*number.Number, error) {
	return number.New(cfg)
}

// NewFrameEncoder creates a render frame encoder. Without options frames are
// little-endian and uncompressed.
func NewFrameEncoder(opts ...frame.EncoderOption) (*frame.Encoder, error) {
	return frame.NewEncoder(opts...)
}

// DecodeFrame decodes a render frame.
func DecodeFrame(data []byte) (*frame.Frame, error) {
	return frame.Decode(data)
}

// SeriesID returns the identifier a render frame stores for the series name
// of chart spec index chart.
//
// Example:
//
//	id := vizstream.SeriesID(0, "eu-west")
//	s, ok := f.Lookup(0, "eu-west") // s.ID == id
func SeriesID(chart int, name string) uint64 {
	return hash.SeriesID(chart, name)
}
