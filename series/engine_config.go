package series

import (
	"fmt"

	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/internal/options"
)

// Record is the named record handed to click handlers.
type Record map[string]any

// ColorCategoryField is the record field carrying the clicked point's category.
const ColorCategoryField = "colorCategory"

// EngineConfig holds the optional collaborators of an Engine.
type EngineConfig struct {
	logger    *Logger
	metrics   MetricsCollector
	onLegend  func(name string, hidden bool)
	onClick   func(Record)
	topK      int
	topWindow int
}

// EngineOption configures an Engine.
type EngineOption = options.Option[*EngineConfig]

func newEngineConfig() *EngineConfig {
	return &EngineConfig{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
}

// WithLogger sets the engine logger. A nil logger keeps the no-op default.
func WithLogger(logger *Logger) EngineOption {
	return options.NoError(func(c *EngineConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithMetrics sets the metrics collector. A nil collector keeps the no-op default.
func WithMetrics(m MetricsCollector) EngineOption {
	return options.NoError(func(c *EngineConfig) {
		if m != nil {
			c.metrics = m
		}
	})
}

// WithLegendHandler registers a callback fired by ToggleSeries with the
// series name and its new hidden state.
func WithLegendHandler(fn func(name string, hidden bool)) EngineOption {
	return options.NoError(func(c *EngineConfig) {
		c.onLegend = fn
	})
}

// WithClickHandler registers a callback fired by Click with the
// reconstructed record.
func WithClickHandler(fn func(Record)) EngineOption {
	return options.NoError(func(c *EngineConfig) {
		c.onClick = fn
	})
}

// WithTopCategories enables heavy-hitter tracking of categories over the
// last window batches.
//
// Parameters:
//   - k: Number of categories to report, at least 1
//   - window: Sliding window length in batches, at least 1
func WithTopCategories(k, window int) EngineOption {
	return options.New(func(c *EngineConfig) error {
		if k < 1 || window < 1 {
			return errs.NewConfigError("topCategories",
				fmt.Errorf("%w: k and window must be positive, got k=%d window=%d", errs.ErrInvalidConfig, k, window))
		}
		c.topK = k
		c.topWindow = window

		return nil
	})
}
