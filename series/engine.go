package series

import (
	"context"
	"reflect"
	"slices"
	"time"

	"github.com/arloliu/vizstream/internal/options"
)

// Engine owns one chart configuration and its accumulated state.
//
// Every installed configuration receives a new generation number; state
// built under an older generation is discarded on the next Update. The
// current state is published as an immutable *Snapshot after each batch.
//
// An Engine is not safe for concurrent use. Callers deliver batches
// serially; snapshots obtained from it may be read from any goroutine.
type Engine struct {
	cfg        Config
	generation uint64
	snap       *Snapshot
	hidden     map[string]struct{}
	top        *topCategories
	opts       *EngineConfig
}

// NewEngine creates an engine for cfg.
//
// Parameters:
//   - cfg: Chart configuration; normalized before use
//   - opts: Optional collaborators (logger, metrics, handlers)
//
// Returns:
//   - *Engine: Engine in the uninitialized phase
//   - error: *errs.ConfigError if cfg or an option is invalid
func NewEngine(cfg Config, opts ...EngineOption) (*Engine, error) {
	ec := newEngineConfig()
	if err := options.Apply(ec, opts...); err != nil {
		return nil, err
	}

	e := &Engine{opts: ec, hidden: make(map[string]struct{})}
	if ec.topK > 0 {
		e.top = newTopCategories(ec.topK, ec.topWindow)
	}
	if _, err := e.Configure(cfg); err != nil {
		return nil, err
	}

	return e, nil
}

// Configure installs a new configuration, discarding all accumulated state,
// color assignments, the axis lock and the hidden series set. A configuration
// equal to the installed one after normalization is a no-op and keeps the
// current generation.
//
// Returns:
//   - uint64: Generation of the installed configuration
//   - error: *errs.ConfigError if cfg is invalid; the previous configuration
//     stays installed
func (e *Engine) Configure(cfg Config) (uint64, error) {
	if err := cfg.Validate(); err != nil {
		return e.generation, err
	}
	cfg = cfg.Normalize()
	if e.snap != nil && reflect.DeepEqual(cfg, e.cfg) {
		return e.generation, nil
	}

	snap, err := newSnapshot(cfg, e.generation+1)
	if err != nil {
		return e.generation, err
	}

	hadState := e.snap != nil && e.snap.Phase == PhaseAccumulating
	e.generation++
	e.cfg = cfg
	e.snap = snap
	clear(e.hidden)
	if e.top != nil {
		e.top.reset()
	}

	if hadState {
		e.opts.metrics.RecordReset()
		e.opts.logger.WithGeneration(e.generation).LogReset(context.Background(), "configuration changed")
	}

	return e.generation, nil
}

// Update merges one batch into the current state.
//
// The update is all-or-nothing: on error the previous snapshot stays current.
func (e *Engine) Update(batch Batch) (*Snapshot, error) {
	ctx := context.Background()
	start := time.Now()
	logger := e.opts.logger.WithGeneration(e.generation)

	var observe func([]Partition)
	if e.top != nil {
		observe = e.top.observe
	}

	next, err := reduce(e.snap, e.cfg, e.generation, batch, observe)
	seriesCount := e.snap.SeriesCount()
	if err == nil {
		seriesCount = next.SeriesCount()
	}
	e.opts.metrics.RecordBatch(len(batch.Rows), seriesCount, time.Since(start), err)
	logger.LogBatch(ctx, len(batch.Rows), seriesCount, err)
	if err != nil {
		return nil, err
	}

	if !e.cfg.Append && e.snap.Phase == PhaseAccumulating && len(batch.Rows) > 0 {
		e.opts.metrics.RecordReset()
		logger.LogReset(ctx, "append disabled")
	}
	if e.top != nil && len(batch.Rows) > 0 {
		e.top.tick()
	}
	e.snap = next

	return next, nil
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap
}

// Generation returns the generation of the installed configuration.
func (e *Engine) Generation() uint64 {
	return e.generation
}

// Config returns the installed, normalized configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// ToggleSeries flips the hidden state of a series name and returns the new
// state. Buffered data is not touched; renderers filter on IsHidden.
func (e *Engine) ToggleSeries(name string) bool {
	_, hidden := e.hidden[name]
	if hidden {
		delete(e.hidden, name)
	} else {
		e.hidden[name] = struct{}{}
	}

	if e.opts.onLegend != nil {
		e.opts.onLegend(name, !hidden)
	}

	return !hidden
}

// IsHidden reports whether a series name is hidden.
func (e *Engine) IsHidden(name string) bool {
	_, ok := e.hidden[name]
	return ok
}

// Hidden returns the hidden series names in sorted order.
func (e *Engine) Hidden() []string {
	names := make([]string, 0, len(e.hidden))
	for name := range e.hidden {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Click reconstructs the record behind a rendered point and passes it to
// the click handler.
//
// The record holds the x field, the point's y field and ColorCategoryField.
func (e *Engine) Click(p Point) Record {
	rec := Record{
		e.cfg.X:            p.X,
		p.YField:           p.Y,
		ColorCategoryField: p.Category,
	}
	if e.opts.onClick != nil {
		e.opts.onClick(rec)
	}

	return rec
}

// TopCategories returns the heaviest categories over the configured window,
// most frequent first. It returns nil unless WithTopCategories was given.
func (e *Engine) TopCategories() []CategoryCount {
	if e.top == nil {
		return nil
	}

	return e.top.top()
}
