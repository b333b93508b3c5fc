// Package number tracks the latest value of a single field for big-number
// displays, together with its change against the previous value.
package number

import (
	"fmt"
	"math"
	"strings"

	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/series"
)

// Trend is the direction of the latest change.
type Trend int8

const (
	TrendDown Trend = -1
	TrendFlat Trend = 0
	TrendUp   Trend = 1
)

func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	default:
		return "flat"
	}
}

// Config declares a number display.
type Config struct {
	X     string `yaml:"x" json:"x"`
	Title string `yaml:"title" json:"title,omitempty"`
}

// Validate checks the configuration shape.
func (c Config) Validate() error {
	if strings.TrimSpace(c.X) == "" {
		return errs.Configf("x", errs.ErrInvalidConfig, "x field is required")
	}

	return nil
}

// State holds the latest and the previous value.
type State struct {
	Value    float64
	Previous float64
	// HasValue is set once a batch delivered a value; HasPrevious once two did.
	HasValue    bool
	HasPrevious bool
}

// Difference returns Value - Previous, or 0 without a previous value.
func (s State) Difference() float64 {
	if !s.HasPrevious {
		return 0
	}

	return s.Value - s.Previous
}

// Percentage returns the change relative to Previous in percent. It returns
// false without a previous value or when Previous is zero.
func (s State) Percentage() (float64, bool) {
	if !s.HasPrevious || s.Previous == 0 {
		return 0, false
	}

	return 100 * (s.Value - s.Previous) / math.Abs(s.Previous), true
}

// Trend returns the direction of the latest change.
func (s State) Trend() Trend {
	switch d := s.Difference(); {
	case d > 0:
		return TrendUp
	case d < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// Number keeps the last value of the X field across batches.
type Number struct {
	cfg   Config
	state State
}

// New creates a number display for cfg.
func New(cfg Config) (*Number, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Number{cfg: cfg}, nil
}

// State returns the current values.
func (n *Number) State() State {
	return n.state
}

// Update takes the X value of the last row of batch. An empty batch leaves
// the state unchanged.
func (n *Number) Update(batch series.Batch) (State, error) {
	pos := batch.Metadata.Index(n.cfg.X)
	if pos < 0 {
		return n.state, errs.Configf("x", errs.ErrFieldNotFound, "field %q", n.cfg.X)
	}
	if len(batch.Rows) == 0 {
		return n.state, nil
	}

	r := len(batch.Rows) - 1
	row := batch.Rows[r]
	if len(row) <= pos {
		return n.state, errs.Configf(fmt.Sprintf("row[%d]", r), errs.ErrInvalidValue,
			"%d columns, need at least %d", len(row), pos+1)
	}
	v, ok := series.ToFloat(row[pos])
	if !ok {
		return n.state, errs.Configf(fmt.Sprintf("row[%d].%s", r, n.cfg.X), errs.ErrInvalidValue,
			"%v (%T) is not numeric", row[pos], row[pos])
	}

	n.state = State{
		Value:       v,
		Previous:    n.state.Value,
		HasValue:    true,
		HasPrevious: n.state.HasValue,
	}

	return n.state, nil
}
