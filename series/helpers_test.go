package series

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vizstream/format"
)

// metrics columns: ts (linear), latency (linear), region (ordinal), host (ordinal)
var metricsMeta = Metadata{
	Names: []string{"ts", "latency", "region", "host"},
	Types: []format.ScaleKind{format.ScaleLinear, format.ScaleLinear, format.ScaleOrdinal, format.ScaleOrdinal},
}

// category columns: day (ordinal), sales (linear)
var categoryMeta = Metadata{
	Names: []string{"day", "sales"},
	Types: []format.ScaleKind{format.ScaleOrdinal, format.ScaleLinear},
}

func batchOf(md Metadata, rows ...Row) Batch {
	return Batch{Metadata: md, Rows: rows}
}

func lineConfig(maxLength int) Config {
	return Config{
		X:         "ts",
		Charts:    []ChartSpec{{Type: "line", Y: "latency", ColorField: "region", Palette: Palette{"p0", "p1"}}},
		MaxLength: maxLength,
		Append:    true,
	}.Normalize()
}

func barConfig() Config {
	return Config{
		X:      "day",
		Charts: []ChartSpec{{Type: "bar", Y: "sales"}},
		Append: true,
	}.Normalize()
}

func xs(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.XFloat()
	}

	return out
}

func mustReduce(t *testing.T, prev *Snapshot, cfg Config, gen uint64, batch Batch) *Snapshot {
	t.Helper()

	next, err := Reduce(prev, cfg, gen, batch)
	require.NoError(t, err)

	return next
}
