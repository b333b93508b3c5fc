package table

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

// GradientStart is the color of the lowest value of a continuous column.
const GradientStart = "#ffffff"

// Record is one table row.
type Record struct {
	// ID is assigned from a counter when the record is first added and
	// survives upserts.
	ID     uint64
	Values map[string]any
}

// ColumnState is the resolved style of one column.
type ColumnState struct {
	Column
	Scale format.ScaleKind
	// Range is the value range of a continuous color-based column.
	Range    series.Domain
	HasRange bool

	colors *palette.Assigner
}

// Continuous reports whether the column is colored by gradient.
func (c ColumnState) Continuous() bool {
	return c.Scale.Continuous()
}

// Colors returns the category color map of an ordinal color-based column.
func (c ColumnState) Colors() map[string]string {
	if c.colors == nil {
		return nil
	}

	return c.colors.Colors()
}

// Color returns the cell color of value in this column.
func (c ColumnState) Color(value any) (string, bool) {
	if !c.ColorBased {
		return "", false
	}

	if c.Continuous() {
		v, ok := series.ContinuousX(value, c.Scale)
		if !ok || !c.HasRange {
			return "", false
		}
		color, err := palette.Interpolate(v, c.Range.Min, c.Range.Max, GradientStart, c.Palette[0])
		if err != nil {
			return "", false
		}

		return color, true
	}

	return c.colors.Color(series.CategoryKey(value))
}

// State is the immutable result of one table update.
type State struct {
	Generation uint64

	records []Record
	index   map[string]int // unique key -> record position
	columns []ColumnState
	nextID  uint64
	locked  bool
}

// Records returns the records oldest first.
func (s *State) Records() []Record {
	return slices.Clone(s.records)
}

// Len returns the number of records.
func (s *State) Len() int {
	return len(s.records)
}

// Record returns the record with the given ID.
func (s *State) Record(id uint64) (Record, bool) {
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}

	return Record{}, false
}

// Columns returns the column states in configuration order.
func (s *State) Columns() []ColumnState {
	return slices.Clone(s.columns)
}

// Column returns the state of a column by name.
func (s *State) Column(name string) (ColumnState, bool) {
	for _, c := range s.columns {
		if c.Name == name {
			return c, true
		}
	}

	return ColumnState{}, false
}

// CellColor returns the background color of a record's cell.
func (s *State) CellColor(rec Record, column string) (string, bool) {
	c, ok := s.Column(column)
	if !ok {
		return "", false
	}

	return c.Color(rec.Values[column])
}

func (s *State) clone() *State {
	next := *s
	next.records = slices.Clone(s.records)
	next.index = maps.Clone(s.index)
	next.columns = slices.Clone(s.columns)
	for i := range next.columns {
		if next.columns[i].colors != nil {
			next.columns[i].colors = next.columns[i].colors.Clone()
		}
	}

	return &next
}

// Table accumulates flat records with per-column styling.
//
// A Table is not safe for concurrent use; states it returns are immutable.
type Table struct {
	cfg        Config
	generation uint64
	state      *State
	opts       *tableOptions
}

type tableOptions struct {
	logger  *series.Logger
	metrics series.MetricsCollector
	onClick func(series.Record)
}

// Option configures a Table.
type Option = options.Option[*tableOptions]

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(l *series.Logger) Option {
	return options.NoError(func(o *tableOptions) {
		if l != nil {
			o.logger = l
		}
	})
}

// WithMetrics sets the metrics collector. A nil collector keeps the no-op default.
func WithMetrics(m series.MetricsCollector) Option {
	return options.NoError(func(o *tableOptions) {
		if m != nil {
			o.metrics = m
		}
	})
}

// WithClickHandler registers a callback fired by Click with the record values.
func WithClickHandler(fn func(series.Record)) Option {
	return options.NoError(func(o *tableOptions) {
		o.onClick = fn
	})
}

// New creates a table for cfg.
func New(cfg Config, opts ...Option) (*Table, error) {
	o := &tableOptions{
		logger:  series.NoopLogger(),
		metrics: series.NoopMetricsCollector{},
	}
	if err := options.Apply(o, opts...); err != nil {
		return nil, err
	}

	t := &Table{opts: o}
	if _, err := t.Configure(cfg); err != nil {
		return nil, err
	}

	return t, nil
}

// Configure installs a new configuration and discards all records.
func (t *Table) Configure(cfg Config) (uint64, error) {
	if err := cfg.Validate(); err != nil {
		return t.generation, err
	}
	cfg = cfg.Normalize()
	if t.state != nil && reflect.DeepEqual(cfg, t.cfg) {
		return t.generation, nil
	}

	state, err := newState(cfg, t.generation+1)
	if err != nil {
		return t.generation, err
	}

	if t.state != nil && t.state.locked {
		t.opts.metrics.RecordReset()
		t.opts.logger.WithGeneration(t.generation+1).LogReset(context.Background(), "configuration changed")
	}
	t.generation++
	t.cfg = cfg
	t.state = state

	return t.generation, nil
}

func newState(cfg Config, gen uint64) (*State, error) {
	s := &State{
		Generation: gen,
		index:      make(map[string]int),
		columns:    make([]ColumnState, len(cfg.Columns)),
		nextID:     1,
	}
	for i, col := range cfg.Columns {
		s.columns[i] = ColumnState{Column: col}
		if !col.ColorBased {
			continue
		}
		colors, err := palette.NewAssigner(col.Palette, col.Domain, 0)
		if err != nil {
			return nil, errs.Configf(fmt.Sprintf("columns[%d]", i), errs.ErrInvalidColumnStyle, "%v", err)
		}
		s.columns[i].colors = colors
	}

	return s, nil
}

// Config returns the installed, normalized configuration.
func (t *Table) Config() Config {
	return t.cfg
}

// State returns the current state.
func (t *Table) State() *State {
	return t.state
}

// Update merges one batch. On error the previous state stays current.
func (t *Table) Update(batch series.Batch) (*State, error) {
	start := time.Now()
	next, err := t.reduce(batch)

	records := t.state.Len()
	if err == nil {
		records = next.Len()
	}
	t.opts.metrics.RecordBatch(len(batch.Rows), records, time.Since(start), err)
	t.opts.logger.WithGeneration(t.generation).LogBatch(context.Background(), len(batch.Rows), records, err)
	if err != nil {
		return nil, err
	}
	t.state = next

	return next, nil
}

func (t *Table) reduce(batch series.Batch) (*State, error) {
	cfg := t.cfg
	md := batch.Metadata
	if len(md.Names) != len(md.Types) {
		return nil, errs.Configf("metadata", errs.ErrInvalidMetadata,
			"%d names, %d types", len(md.Names), len(md.Types))
	}

	positions := make([]int, len(cfg.Columns))
	for i, col := range cfg.Columns {
		positions[i] = md.Index(col.Name)
		if positions[i] < 0 {
			return nil, errs.Configf(fmt.Sprintf("columns[%d]", i), errs.ErrFieldNotFound, "unknown column %q", col.Name)
		}
	}
	keyPos := -1
	if cfg.UniqueKey != "" {
		if keyPos = md.Index(cfg.UniqueKey); keyPos < 0 {
			return nil, errs.Configf("uniquePropertyColumn", errs.ErrFieldNotFound, "field %q", cfg.UniqueKey)
		}
	}

	base := t.state
	if !cfg.Append {
		fresh, err := newState(cfg, t.generation)
		if err != nil {
			return nil, err
		}
		base = fresh
	}
	if len(batch.Rows) == 0 {
		return base, nil
	}

	if base.locked {
		for i, pos := range positions {
			if md.Types[pos] != base.columns[i].Scale {
				return nil, errs.Configf(fmt.Sprintf("columns[%d]", i), errs.ErrAxisMismatch,
					"column %q is %s, locked to %s", cfg.Columns[i].Name, md.Types[pos], base.columns[i].Scale)
			}
		}
	}
	for r, row := range batch.Rows {
		if len(row) != len(md.Names) {
			return nil, errs.Configf(fmt.Sprintf("row[%d]", r), errs.ErrInvalidValue,
				"%d columns, metadata has %d", len(row), len(md.Names))
		}
	}

	next := base.clone()
	if !next.locked {
		for i, pos := range positions {
			next.columns[i].Scale = md.Types[pos]
		}
		next.locked = true
	}

	for _, row := range batch.Rows {
		values := make(map[string]any, len(md.Names))
		for i, name := range md.Names {
			values[name] = row[i]
		}

		if keyPos >= 0 {
			key := series.CategoryKey(row[keyPos])
			if at, ok := next.index[key]; ok {
				next.records[at].Values = values
				continue
			}
			next.index[key] = len(next.records)
		}
		next.records = append(next.records, Record{ID: next.nextID, Values: values})
		next.nextID++
	}

	if cfg.MaxLength > 0 && len(next.records) > cfg.MaxLength {
		next.records = series.Trim(next.records, cfg.MaxLength)
		if keyPos >= 0 {
			next.reindex(cfg.UniqueKey)
		}
	}

	if err := next.style(); err != nil {
		return nil, err
	}

	return next, nil
}

func (s *State) reindex(key string) {
	s.index = make(map[string]int, len(s.records))
	for i, r := range s.records {
		s.index[series.CategoryKey(r.Values[key])] = i
	}
}

// style recomputes column ranges and extends category color maps over the
// retained records.
func (s *State) style() error {
	for i := range s.columns {
		col := &s.columns[i]
		if !col.ColorBased {
			continue
		}

		if !col.Continuous() {
			keys := make([]string, len(s.records))
			for j, r := range s.records {
				keys[j] = series.CategoryKey(r.Values[col.Name])
			}
			col.colors.Assign(keys)

			continue
		}

		if _, err := palette.Interpolate(0, 0, 1, GradientStart, col.Palette[0]); err != nil {
			return errs.Configf(fmt.Sprintf("columns[%d]", i), errs.ErrInvalidColumnStyle, "%v", err)
		}
		col.HasRange = false
		for _, r := range s.records {
			v, ok := series.ContinuousX(r.Values[col.Name], col.Scale)
			if !ok {
				continue
			}
			if !col.HasRange {
				col.Range = series.Domain{Min: v, Max: v}
				col.HasRange = true

				continue
			}
			col.Range = col.Range.Union(series.Domain{Min: v, Max: v})
		}
	}

	return nil
}

// Click returns the values of a record and passes them to the click handler.
func (t *Table) Click(id uint64) (series.Record, bool) {
	r, ok := t.state.Record(id)
	if !ok {
		return nil, false
	}

	rec := series.Record(maps.Clone(r.Values))
	if t.opts.onClick != nil {
		t.opts.onClick(rec)
	}

	return rec, true
}
