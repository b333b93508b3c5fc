package chart

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/series"
)

// Family selects the set of chart types a Chart accepts.
type Family uint8

const (
	// FamilyBasic covers full-size charts with axes and legend.
	FamilyBasic Family = iota + 1
	// FamilyInline covers axis-less spark charts.
	FamilyInline
)

// Chart types of FamilyBasic.
const (
	TypeLine    = "line"
	TypeArea    = "area"
	TypeBar     = "bar"
	TypeScatter = "scatter"
)

// Chart types of FamilyInline.
const (
	TypeSparkLine = "spark-line"
	TypeSparkArea = "spark-area"
	TypeSparkBar  = "spark-bar"
)

var familyTypes = map[Family][]string{
	FamilyBasic:  {TypeLine, TypeArea, TypeBar, TypeScatter},
	FamilyInline: {TypeSparkLine, TypeSparkArea, TypeSparkBar},
}

func (f Family) String() string {
	switch f {
	case FamilyBasic:
		return "basic"
	case FamilyInline:
		return "inline"
	default:
		return "unknown"
	}
}

// ParseFamily maps "basic" or "inline" to its family.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "basic":
		return FamilyBasic, nil
	case "inline", "spark":
		return FamilyInline, nil
	default:
		return 0, errs.Configf("family", errs.ErrUnsupportedChart, "unknown chart family %q", name)
	}
}

// Types returns the chart types accepted by the family.
func (f Family) Types() []string {
	return slices.Clone(familyTypes[f])
}

// Supports reports whether the family accepts chart type kind.
func (f Family) Supports(kind string) bool {
	return slices.Contains(familyTypes[f], kind)
}

// Validate checks every chart type of cfg against the family.
func (f Family) Validate(cfg series.Config) error {
	if _, ok := familyTypes[f]; !ok {
		return errs.Configf("family", errs.ErrUnsupportedChart, "family %d", f)
	}

	for i, spec := range cfg.Charts {
		if !f.Supports(spec.Type) {
			return errs.Configf(fmt.Sprintf("charts[%d].type", i), errs.ErrUnsupportedChart,
				"%q is not a %s chart", spec.Type, f)
		}
	}

	return nil
}

// Chart is a series.Engine restricted to one chart family.
type Chart struct {
	family Family
	engine *series.Engine
}

// New creates a chart of the given family.
//
// Parameters:
//   - family: FamilyBasic or FamilyInline
//   - cfg: Chart configuration; every chart type must belong to family
//   - opts: Engine options (logger, metrics, handlers)
//
// Returns:
//   - *Chart: Chart ready for Update
//   - error: *errs.ConfigError wrapping errs.ErrUnsupportedChart for a
//     foreign chart type, or any configuration error of series.NewEngine
func New(family Family, cfg series.Config, opts ...series.EngineOption) (*Chart, error) {
	if err := family.Validate(cfg); err != nil {
		return nil, err
	}

	engine, err := series.NewEngine(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return &Chart{family: family, engine: engine}, nil
}

// NewBasic creates a FamilyBasic chart.
func NewBasic(cfg series.Config, opts ...series.EngineOption) (*Chart, error) {
	return New(FamilyBasic, cfg, opts...)
}

// NewInline creates a FamilyInline chart.
func NewInline(cfg series.Config, opts ...series.EngineOption) (*Chart, error) {
	return New(FamilyInline, cfg, opts...)
}

// Family returns the chart family.
func (c *Chart) Family() Family {
	return c.family
}

// Engine returns the underlying engine for legend and click interactions.
func (c *Chart) Engine() *series.Engine {
	return c.engine
}

// Configure installs a new configuration. On error the previous one stays.
func (c *Chart) Configure(cfg series.Config) (uint64, error) {
	if err := c.family.Validate(cfg); err != nil {
		return c.engine.Generation(), err
	}

	return c.engine.Configure(cfg)
}

// Update merges one batch and returns the resulting view.
func (c *Chart) Update(batch series.Batch) (View, error) {
	if _, err := c.engine.Update(batch); err != nil {
		return View{}, err
	}

	return c.View(), nil
}

// View returns the render view of the current snapshot.
func (c *Chart) View() View {
	return NewView(c.family, c.engine.Config(), c.engine.Snapshot(), c.engine.IsHidden)
}
