package series

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/vizstream/palette"
)

// Phase is the state of the axis-lock state machine.
type Phase uint8

const (
	// PhaseUninitialized means no non-empty batch was merged under the
	// current configuration; the axis is not locked.
	PhaseUninitialized Phase = iota
	// PhaseAccumulating means the axis is locked and buffers hold data.
	PhaseAccumulating
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseAccumulating:
		return "accumulating"
	default:
		return "unknown"
	}
}

// ChartState is the resolved state of one chart spec.
type ChartState struct {
	Index int
	Spec  ChartSpec

	colors *palette.Assigner
	series []string
}

// Color returns the color of a series of this chart.
func (c ChartState) Color(name string) (string, bool) {
	if !c.Spec.Colored() && c.Spec.Fill != "" {
		return c.Spec.Fill, name == c.Spec.Y
	}

	return c.colors.Color(name)
}

// Colors returns a copy of the category to color mapping.
func (c ChartState) Colors() map[string]string {
	if !c.Spec.Colored() && c.Spec.Fill != "" {
		if len(c.series) == 0 {
			return map[string]string{}
		}

		return map[string]string{c.Spec.Y: c.Spec.Fill}
	}

	return c.colors.Colors()
}

// Series returns the series names of this chart in first-seen order.
func (c ChartState) Series() []string {
	return slices.Clone(c.series)
}

// Snapshot is the immutable result of one merge cycle.
//
// Buffers returned by a snapshot must not be modified; later merge cycles
// allocate new buffers instead of writing into published ones.
type Snapshot struct {
	Generation uint64
	Phase      Phase
	Axis       AxisState
	// Batches counts the non-empty batches merged since the last reset.
	Batches uint64

	charts  []ChartState
	buffers map[SeriesKey][]Point
	order   []SeriesKey
}

// newSnapshot creates the empty state of a configuration.
func newSnapshot(cfg Config, gen uint64) (*Snapshot, error) {
	s := &Snapshot{
		Generation: gen,
		Phase:      PhaseUninitialized,
		charts:     make([]ChartState, len(cfg.Charts)),
		buffers:    make(map[SeriesKey][]Point),
	}
	for i, spec := range cfg.Charts {
		assigner, err := palette.NewAssigner(spec.Palette, spec.Domain, i)
		if err != nil {
			return nil, fmt.Errorf("chart %d: %w", i, err)
		}
		s.charts[i] = ChartState{Index: i, Spec: spec, colors: assigner}
	}

	return s, nil
}

// clone returns a shallow copy whose maps, slices and assigners may be
// mutated without affecting s. Point slices are shared.
func (s *Snapshot) clone() *Snapshot {
	next := *s
	next.charts = make([]ChartState, len(s.charts))
	for i, c := range s.charts {
		c.colors = c.colors.Clone()
		c.series = slices.Clone(c.series)
		next.charts[i] = c
	}
	next.buffers = maps.Clone(s.buffers)
	next.order = slices.Clone(s.order)

	return &next
}

// Charts returns the chart states in configuration order.
func (s *Snapshot) Charts() []ChartState {
	return slices.Clone(s.charts)
}

// Chart returns the state of chart i.
func (s *Snapshot) Chart(i int) (ChartState, bool) {
	if i < 0 || i >= len(s.charts) {
		return ChartState{}, false
	}

	return s.charts[i], true
}

// Buffer returns the points of a series.
func (s *Snapshot) Buffer(key SeriesKey) []Point {
	return s.buffers[key]
}

// Keys returns every series key in first-seen order.
func (s *Snapshot) Keys() []SeriesKey {
	return slices.Clone(s.order)
}

// Buffers returns a copy of the key to buffer mapping.
func (s *Snapshot) Buffers() map[SeriesKey][]Point {
	return maps.Clone(s.buffers)
}

// SeriesCount returns the number of series buffers.
func (s *Snapshot) SeriesCount() int {
	return len(s.order)
}

// PointCount returns the total number of buffered points.
func (s *Snapshot) PointCount() int {
	n := 0
	for _, buf := range s.buffers {
		n += len(buf)
	}

	return n
}
