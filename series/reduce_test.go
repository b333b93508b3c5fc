package series

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/format"
)

var euKey = SeriesKey{Chart: 0, Name: "eu"}

// =============================================================================
// Pipeline properties
// =============================================================================

func TestReduce_WindowBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	regions := []string{"eu", "us", "ap"}
	cfg := lineConfig(5)

	var snap *Snapshot
	ts := 0
	for range 40 {
		n := rng.Intn(8)
		rows := make([]Row, n)
		for i := range rows {
			ts++
			rows[i] = Row{ts, rng.Float64(), regions[rng.Intn(len(regions))], "h"}
		}
		snap = mustReduce(t, snap, cfg, 1, batchOf(metricsMeta, rows...))

		for _, key := range snap.Keys() {
			require.LessOrEqual(t, len(snap.Buffer(key)), cfg.MaxLength, "buffer %s", key)
		}
	}
}

func TestReduce_EmptyBatchIdempotence(t *testing.T) {
	cfg := lineConfig(0)
	snap := mustReduce(t, nil, cfg, 1, batchOf(metricsMeta, Row{1, 1, "eu", "a"}, Row{2, 2, "us", "a"}))

	next := mustReduce(t, snap, cfg, 1, batchOf(metricsMeta))

	require.Same(t, snap, next)
	require.Equal(t, snap.Buffers(), next.Buffers())
	require.Equal(t, snap.charts[0].Colors(), next.charts[0].Colors())
	require.Equal(t, snap.Axis, next.Axis)
}

func TestReduce_OrdinalUpsert(t *testing.T) {
	md := Metadata{Names: []string{"x", "y"}, Types: []format.ScaleKind{format.ScaleOrdinal, format.ScaleLinear}}
	cfg := Config{X: "x", Charts: []ChartSpec{{Y: "y"}}, Append: true}.Normalize()

	snap := mustReduce(t, nil, cfg, 1, batchOf(md, Row{1, 10}))
	snap = mustReduce(t, snap, cfg, 1, batchOf(md, Row{1, 20}))

	buf := snap.Buffer(SeriesKey{Chart: 0, Name: "y"})
	require.Len(t, buf, 1)
	require.Equal(t, 1.0, buf[0].X)
	require.Equal(t, 20.0, buf[0].Y)
	require.False(t, snap.Axis.HasDomain, "ordinal axes track no domain")
}

func TestReduce_ContinuousAppendOrder(t *testing.T) {
	md := Metadata{Names: []string{"x", "y"}, Types: []format.ScaleKind{format.ScaleLinear, format.ScaleLinear}}
	cfg := Config{X: "x", Charts: []ChartSpec{{Y: "y"}}, Append: true}.Normalize()

	snap := mustReduce(t, nil, cfg, 1, batchOf(md, Row{1, 5}))
	snap = mustReduce(t, snap, cfg, 1, batchOf(md, Row{2, 7}))

	buf := snap.Buffer(SeriesKey{Chart: 0, Name: "y"})
	require.Equal(t, []Point{
		{X: 1.0, Y: 5.0, Series: "y", YField: "y"},
		{X: 2.0, Y: 7.0, Series: "y", YField: "y"},
	}, buf)
}

func TestReduce_ColorStability(t *testing.T) {
	cfg := lineConfig(2)
	snap := mustReduce(t, nil, cfg, 1, batchOf(metricsMeta, Row{1, 1, "red", "a"}))
	first, ok := snap.charts[0].Color("red")
	require.True(t, ok)

	for i := 2; i < 10; i++ {
		region := fmt.Sprintf("r%d", i)
		snap = mustReduce(t, snap, cfg, 1, batchOf(metricsMeta, Row{i, 1, region, "a"}, Row{i, 2, "red", "a"}))

		got, ok := snap.charts[0].Color("red")
		require.True(t, ok)
		require.Equal(t, first, got, "batch %d", i)
	}
}

func TestReduce_PaletteCycling(t *testing.T) {
	cfg := lineConfig(0) // palette p0, p1
	snap := mustReduce(t, nil, cfg, 1, batchOf(metricsMeta,
		Row{1, 1, "a", "h"},
		Row{2, 1, "b", "h"},
		Row{3, 1, "c", "h"},
		Row{4, 1, "d", "h"},
	))

	var got []string
	for _, name := range snap.charts[0].Series() {
		c, _ := snap.charts[0].Color(name)
		got = append(got, c)
	}
	require.Equal(t, []string{"p0", "p1", "p0", "p1"}, got)
}

func TestReduce_RangeUnion(t *testing.T) {
	cfg := lineConfig(0)
	snap := mustReduce(t, nil, cfg, 1, batchOf(metricsMeta,
		Row{0, 1, "a", "h"},
		Row{10, 1, "a", "h"},
		Row{5, 1, "b", "h"},
		Row{20, 1, "b", "h"},
	))

	require.True(t, snap.Axis.HasDomain)
	require.Equal(t, Domain{Min: 0, Max: 20}, snap.Axis.Domain)
}

func TestReduce_ConfigChangeReset(t *testing.T) {
	c1 := lineConfig(0)
	snap := mustReduce(t, nil, c1, 1, batchOf(metricsMeta, Row{1, 1, "eu", "a"}))
	require.Equal(t, 1, snap.SeriesCount())

	c2 := lineConfig(0)
	c2.Charts[0].ColorField = "host"
	next := mustReduce(t, snap, c2, 2, batchOf(metricsMeta, Row{2, 1, "eu", "web"}))

	require.Equal(t, uint64(2), next.Generation)
	require.Equal(t, []SeriesKey{{Chart: 0, Name: "web"}}, next.Keys())
	_, ok := next.charts[0].Color("eu")
	require.False(t, ok, "colors of the old configuration are discarded")
	require.Equal(t, uint64(1), next.Batches)

	// the previous snapshot is untouched
	require.Len(t, snap.Buffer(euKey), 1)
}

func TestReduce_EvictionOrder(t *testing.T) {
	md := Metadata{Names: []string{"x", "y"}, Types: []format.ScaleKind{format.ScaleLinear, format.ScaleLinear}}
	cfg := Config{X: "x", Charts: []ChartSpec{{Y: "y"}}, MaxLength: 3, Append: true}.Normalize()

	snap := mustReduce(t, nil, cfg, 1, batchOf(md, Row{1, 0}, Row{2, 0}))
	snap = mustReduce(t, snap, cfg, 1, batchOf(md, Row{3, 0}, Row{4, 0}))

	require.Equal(t, []float64{2, 3, 4}, xs(snap.Buffer(SeriesKey{Chart: 0, Name: "y"})))
	require.Equal(t, Domain{Min: 2, Max: 4}, snap.Axis.Domain)
}

// =============================================================================
// State machine
// =============================================================================

func TestReduce_AxisLock(t *testing.T) {
	cfg := lineConfig(0)

	empty := mustReduce(t, nil, cfg, 1, batchOf(metricsMeta))
	require.Equal(t, PhaseUninitialized, empty.Phase)

	snap := mustReduce(t, empty, cfg, 1, batchOf(metricsMeta, Row{1, 1, "eu", "a"}))
	require.Equal(t, PhaseAccumulating, snap.Phase)
	require.Equal(t, format.ScaleLinear, snap.Axis.Scale)

	timeMeta := Metadata{Names: metricsMeta.Names, Types: append([]format.ScaleKind{format.ScaleTime}, metricsMeta.Types[1:]...)}
	_, err := Reduce(snap, cfg, 1, batchOf(timeMeta, Row{2, 1, "eu", "a"}))
	require.ErrorIs(t, err, errs.ErrAxisMismatch)

	// a new generation unlocks the axis
	next, err := Reduce(snap, cfg, 2, batchOf(timeMeta, Row{2, 1, "eu", "a"}))
	require.NoError(t, err)
	require.Equal(t, format.ScaleTime, next.Axis.Scale)
}

func TestReduce_FailedBatchLeavesStateUntouched(t *testing.T) {
	cfg := lineConfig(0)
	snap := mustReduce(t, nil, cfg, 1, batchOf(metricsMeta, Row{1, 1, "eu", "a"}))
	before := snap.Buffers()

	_, err := Reduce(snap, cfg, 1, batchOf(metricsMeta, Row{2, 1, "us", "a"}, Row{"bad", 1, "ap", "a"}))
	require.ErrorIs(t, err, errs.ErrInvalidValue)

	require.Equal(t, before, snap.Buffers())
	_, ok := snap.charts[0].Color("us")
	require.False(t, ok)
}

func TestReduce_AppendDisabledResets(t *testing.T) {
	cfg := lineConfig(0)
	cfg.Append = false

	snap := mustReduce(t, nil, cfg, 1, batchOf(metricsMeta, Row{1, 1, "eu", "a"}, Row{2, 1, "eu", "a"}))
	snap = mustReduce(t, snap, cfg, 1, batchOf(metricsMeta, Row{3, 1, "us", "a"}))

	require.Equal(t, []SeriesKey{{Chart: 0, Name: "us"}}, snap.Keys())
	c, _ := snap.charts[0].Color("us")
	require.Equal(t, "p0", c, "color assignment restarts")
}

func TestReduce_ChartsAreIndependent(t *testing.T) {
	cfg := Config{
		X: "ts",
		Charts: []ChartSpec{
			{Y: "latency", ColorField: "region", Palette: Palette{"a", "b", "c"}},
			{Y: "latency", ColorField: "region", Palette: Palette{"a", "b", "c"}},
			{Y: "latency", Fill: "#123456"},
		},
		Append: true,
	}.Normalize()

	snap := mustReduce(t, nil, cfg, 1, batchOf(metricsMeta, Row{1, 1, "eu", "a"}))

	require.Equal(t, []SeriesKey{{Chart: 0, Name: "eu"}, {Chart: 1, Name: "eu"}, {Chart: 2, Name: "latency"}}, snap.Keys())

	c0, _ := snap.charts[0].Color("eu")
	c1, _ := snap.charts[1].Color("eu")
	require.Equal(t, "a", c0)
	require.Equal(t, "b", c1, "sibling charts start at their own palette offset")

	fill, ok := snap.charts[2].Color("latency")
	require.True(t, ok)
	require.Equal(t, "#123456", fill)
	require.Equal(t, map[string]string{"latency": "#123456"}, snap.charts[2].Colors())
}

func TestReduce_InvalidPalette(t *testing.T) {
	cfg := Config{X: "ts", Charts: []ChartSpec{{Y: "latency"}}, Append: true} // not normalized

	_, err := Reduce(nil, cfg, 1, batchOf(metricsMeta, Row{1, 1, "eu", "a"}))
	require.ErrorIs(t, err, errs.ErrInvalidPalette)
}

func BenchmarkReduce(b *testing.B) {
	cfg := lineConfig(500)
	rows := make([]Row, 64)
	for i := range rows {
		rows[i] = Row{i, float64(i), fmt.Sprintf("r%d", i%8), "h"}
	}
	batch := batchOf(metricsMeta, rows...)
	snap, _ := Reduce(nil, cfg, 1, batch)

	for b.Loop() {
		snap, _ = Reduce(snap, cfg, 1, batch)
	}
}
