package geo

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"time"

	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/format"
	"github.com/arloliu/vizstream/internal/options"
	"github.com/arloliu/vizstream/palette"
	"github.com/arloliu/vizstream/series"
)

// Kind is the fill style implied by the value field type.
type Kind uint8

const (
	// KindNone means no non-empty batch was merged yet.
	KindNone Kind = iota
	// KindLinear fills regions along a two-color gradient.
	KindLinear
	// KindOrdinal fills regions from a category color map.
	KindOrdinal
)

func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindOrdinal:
		return "ordinal"
	default:
		return "none"
	}
}

// Region is one located value.
type Region struct {
	// Code is the resolved location code renderers key regions by.
	Code string
	// Name is the location as it appeared in the batch.
	Name  string
	Value any
	Color string
}

// State is the immutable result of one map update.
type State struct {
	Generation uint64
	Kind       Kind
	// Range is the gradient range of a linear map.
	Range    series.Domain
	HasRange bool

	regions []Region
	colors  *palette.Assigner
}

// Regions returns the regions in insertion order.
func (s *State) Regions() []Region {
	return slices.Clone(s.regions)
}

// Region returns the first region with the given code.
func (s *State) Region(code string) (Region, bool) {
	for _, r := range s.regions {
		if r.Code == code {
			return r, true
		}
	}

	return Region{}, false
}

// Len returns the number of regions.
func (s *State) Len() int {
	return len(s.regions)
}

// Colors returns the category color map of an ordinal map, or nil.
func (s *State) Colors() map[string]string {
	if s.Kind != KindOrdinal {
		return nil
	}

	return s.colors.Colors()
}

// Categories returns the categories of an ordinal map in first-seen order.
func (s *State) Categories() []string {
	if s.Kind != KindOrdinal {
		return nil
	}

	return s.colors.Order()
}

func (s *State) clone() *State {
	next := *s
	next.regions = slices.Clone(s.regions)
	next.colors = s.colors.Clone()

	return &next
}

// Map accumulates located values for a choropleth or category map.
//
// A Map is not safe for concurrent use; states it returns are immutable.
type Map struct {
	cfg        Config
	generation uint64
	state      *State
	opts       *mapOptions
}

type mapOptions struct {
	resolver Resolver
	logger   *series.Logger
	metrics  series.MetricsCollector
	onClick  func(series.Record)
}

// Option configures a Map.
type Option = options.Option[*mapOptions]

// WithResolver sets the location name resolver.
func WithResolver(r Resolver) Option {
	return options.NoError(func(o *mapOptions) {
		o.resolver = r
	})
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(l *series.Logger) Option {
	return options.NoError(func(o *mapOptions) {
		if l != nil {
			o.logger = l
		}
	})
}

// WithMetrics sets the metrics collector. A nil collector keeps the no-op default.
func WithMetrics(m series.MetricsCollector) Option {
	return options.NoError(func(o *mapOptions) {
		if m != nil {
			o.metrics = m
		}
	})
}

// WithClickHandler registers a callback fired by Click.
func WithClickHandler(fn func(series.Record)) Option {
	return options.NoError(func(o *mapOptions) {
		o.onClick = fn
	})
}

// New creates a map for cfg.
func New(cfg Config, opts ...Option) (*Map, error) {
	o := &mapOptions{
		logger:  series.NoopLogger(),
		metrics: series.NoopMetricsCollector{},
	}
	if err := options.Apply(o, opts...); err != nil {
		return nil, err
	}

	m := &Map{opts: o}
	if _, err := m.Configure(cfg); err != nil {
		return nil, err
	}

	return m, nil
}

// Configure installs a new configuration and discards all state.
func (m *Map) Configure(cfg Config) (uint64, error) {
	if err := cfg.Validate(); err != nil {
		return m.generation, err
	}
	cfg = cfg.Normalize()
	if m.state != nil && reflect.DeepEqual(cfg, m.cfg) {
		return m.generation, nil
	}

	state, err := newState(cfg, m.generation+1)
	if err != nil {
		return m.generation, err
	}

	if m.state != nil && m.state.Kind != KindNone {
		m.opts.metrics.RecordReset()
		m.opts.logger.WithGeneration(m.generation+1).LogReset(context.Background(), "configuration changed")
	}
	m.generation++
	m.cfg = cfg
	m.state = state

	return m.generation, nil
}

func newState(cfg Config, gen uint64) (*State, error) {
	colors, err := palette.NewAssigner(cfg.ColorScale, nil, 0)
	if err != nil {
		return nil, errs.NewConfigError("colorScale", err)
	}

	return &State{Generation: gen, colors: colors}, nil
}

// Config returns the installed, normalized configuration.
func (m *Map) Config() Config {
	return m.cfg
}

// State returns the current state.
func (m *Map) State() *State {
	return m.state
}

// Update merges one batch. On error the previous state stays current.
func (m *Map) Update(batch series.Batch) (*State, error) {
	start := time.Now()
	next, err := m.reduce(batch)

	regions := m.state.Len()
	if err == nil {
		regions = next.Len()
	}
	m.opts.metrics.RecordBatch(len(batch.Rows), regions, time.Since(start), err)
	m.opts.logger.WithGeneration(m.generation).LogBatch(context.Background(), len(batch.Rows), regions, err)
	if err != nil {
		return nil, err
	}
	m.state = next

	return next, nil
}

func (m *Map) reduce(batch series.Batch) (*State, error) {
	cfg := m.cfg
	md := batch.Metadata
	if len(md.Names) != len(md.Types) {
		return nil, errs.Configf("metadata", errs.ErrInvalidMetadata,
			"%d names, %d types", len(md.Names), len(md.Types))
	}
	xPos := md.Index(cfg.X)
	if xPos < 0 {
		return nil, errs.Configf("x", errs.ErrFieldNotFound, "field %q", cfg.X)
	}
	yPos := md.Index(cfg.Y)
	if yPos < 0 {
		return nil, errs.Configf("y", errs.ErrFieldNotFound, "field %q", cfg.Y)
	}

	base := m.state
	if !cfg.Append {
		fresh, err := newState(cfg, m.generation)
		if err != nil {
			return nil, err
		}
		base = fresh
	}
	if len(batch.Rows) == 0 {
		return base, nil
	}

	kind := KindOrdinal
	if md.Types[yPos] == format.ScaleLinear {
		kind = KindLinear
	}
	if base.Kind != KindNone && base.Kind != kind {
		return nil, errs.Configf("y", errs.ErrAxisMismatch, "field %q is %s, map locked to %s", cfg.Y, kind, base.Kind)
	}
	if kind == KindLinear && len(cfg.ColorScale) < 2 {
		return nil, errs.Configf("colorScale", errs.ErrInvalidPalette, "gradient needs two colors, got %d", len(cfg.ColorScale))
	}

	width := max(xPos, yPos)
	for r, row := range batch.Rows {
		if len(row) <= width {
			return nil, errs.Configf(fmt.Sprintf("row[%d]", r), errs.ErrInvalidValue,
				"%d columns, need at least %d", len(row), width+1)
		}
		if kind == KindLinear {
			if _, ok := series.ToFloat(row[yPos]); !ok {
				return nil, errs.Configf(fmt.Sprintf("row[%d].%s", r, cfg.Y), errs.ErrInvalidValue,
					"%v (%T) is not numeric", row[yPos], row[yPos])
			}
		}
	}

	next := base.clone()
	next.Kind = kind
	for _, row := range batch.Rows {
		name := series.CategoryKey(row[xPos])
		region := Region{Code: m.resolve(name), Name: name}

		if kind == KindLinear {
			region.Value, _ = series.ToFloat(row[yPos])
			if i := slices.IndexFunc(next.regions, func(r Region) bool { return r.Code == region.Code }); i >= 0 {
				next.regions[i].Value = region.Value
				continue
			}
			next.regions = append(next.regions, region)

			continue
		}

		category := series.CategoryKey(row[yPos])
		next.colors.Assign([]string{category})
		region.Value = row[yPos]
		region.Color, _ = next.colors.Color(category)
		next.regions = append(next.regions, region)
	}
	next.regions = series.Trim(next.regions, cfg.MaxLength)

	if kind == KindLinear {
		if err := next.fill(cfg); err != nil {
			return nil, err
		}
	}

	return next, nil
}

// fill recomputes the gradient range and every region color.
func (s *State) fill(cfg Config) error {
	s.HasRange = len(s.regions) > 0
	if !s.HasRange {
		s.Range = series.Domain{}
		return nil
	}

	lo, hi := s.regions[0].Value.(float64), s.regions[0].Value.(float64)
	for _, r := range s.regions[1:] {
		v := r.Value.(float64)
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if cfg.LowerBound != nil {
		lo = *cfg.LowerBound
	}
	if cfg.UpperBound != nil {
		hi = *cfg.UpperBound
	}
	s.Range = series.Domain{Min: lo, Max: hi}

	for i := range s.regions {
		color, err := palette.Interpolate(s.regions[i].Value.(float64), lo, hi, cfg.ColorScale[0], cfg.ColorScale[1])
		if err != nil {
			return errs.NewConfigError("colorScale", fmt.Errorf("%w: %w", errs.ErrInvalidPalette, err))
		}
		s.regions[i].Color = color
	}

	return nil
}

// resolve maps a location name to its region code. Three-character names
// are taken as codes already; USA maps key regions by state name.
func (m *Map) resolve(name string) string {
	if m.cfg.MapType == MapUSA || len(name) == 3 || m.opts.resolver == nil {
		return name
	}
	if code, ok := m.opts.resolver.Resolve(name); ok {
		return code
	}

	return name
}

// Click returns {code: value} for a region and passes it to the click handler.
func (m *Map) Click(code string) (series.Record, bool) {
	r, ok := m.state.Region(code)
	if !ok {
		return nil, false
	}

	rec := series.Record{r.Code: r.Value}
	if m.opts.onClick != nil {
		m.opts.onClick(maps.Clone(rec))
	}

	return rec, true
}
