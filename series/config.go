package series

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/palette"
)

// Mode controls how the series of one chart are laid out by a renderer.
type Mode string

const (
	ModeGrouped Mode = "grouped"
	ModeStacked Mode = "stacked"
)

// DefaultOrientation is the axis orientation used when a chart declares none.
const DefaultOrientation = "bottom"

// Palette is a list of color tokens.
//
// In YAML it is either a sequence of tokens or the name of a built-in
// palette (see palette.Named).
type Palette []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Palette) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		named, ok := palette.Named(node.Value)
		if !ok {
			return fmt.Errorf("unknown palette %q", node.Value)
		}
		*p = named

		return nil
	}

	var tokens []string
	if err := node.Decode(&tokens); err != nil {
		return err
	}
	*p = tokens

	return nil
}

// ChartSpec declares one series group of a chart configuration.
type ChartSpec struct {
	// Type is the render kind ("line", "bar", ...). The core treats it as opaque.
	Type string `yaml:"type" json:"type"`
	// Y is the value field name.
	Y string `yaml:"y" json:"y"`
	// ColorField optionally partitions rows into one series per category.
	ColorField string `yaml:"colorField" json:"colorField,omitempty"`
	// Fill is the fixed color of an uncolored chart. Ignored when ColorField is set.
	Fill string `yaml:"fill" json:"fill,omitempty"`
	// Palette holds the color tokens; palette.Default when empty.
	Palette Palette `yaml:"colorPalette" json:"colorPalette,omitempty"`
	// Domain optionally pins categories to palette slots by position.
	Domain []string `yaml:"colorDomain" json:"colorDomain,omitempty"`
	Mode   Mode     `yaml:"mode" json:"mode,omitempty"`
	// Orientation of the value axis; DefaultOrientation when empty.
	Orientation string `yaml:"orientation" json:"orientation,omitempty"`
}

// Colored reports whether the chart partitions rows by a color field.
func (s ChartSpec) Colored() bool {
	return s.ColorField != ""
}

// Config is a declarative chart configuration.
type Config struct {
	X         string      `yaml:"x" json:"x"`
	Charts    []ChartSpec `yaml:"charts" json:"charts"`
	MaxLength int         `yaml:"maxLength" json:"maxLength"`
	// Append merges batches into the accumulated state. ParseConfig
	// defaults it to true; a literal Config{} replaces state on every batch.
	Append    bool        `yaml:"append" json:"append"`
	Legend    bool        `yaml:"legend" json:"legend"`
}

// Normalize returns a copy of c with defaults filled in.
func (c Config) Normalize() Config {
	out := c
	out.Charts = make([]ChartSpec, len(c.Charts))
	for i, spec := range c.Charts {
		if len(spec.Palette) == 0 {
			spec.Palette = append(Palette(nil), palette.Default...)
		}
		if spec.Mode == "" {
			spec.Mode = ModeGrouped
		}
		if spec.Orientation == "" {
			spec.Orientation = DefaultOrientation
		}
		out.Charts[i] = spec
	}

	return out
}

// Validate checks the configuration shape. Field names are resolved later
// against batch metadata.
func (c Config) Validate() error {
	if strings.TrimSpace(c.X) == "" {
		return errs.Configf("x", errs.ErrInvalidConfig, "x field is required")
	}
	if len(c.Charts) == 0 {
		return errs.Configf("charts", errs.ErrInvalidConfig, "at least one chart is required")
	}
	if c.MaxLength < 0 {
		return errs.Configf("maxLength", errs.ErrInvalidConfig, "must not be negative, got %d", c.MaxLength)
	}

	for i, spec := range c.Charts {
		component := fmt.Sprintf("charts[%d]", i)
		if strings.TrimSpace(spec.Y) == "" {
			return errs.Configf(component, errs.ErrInvalidConfig, "y field is required")
		}
		switch spec.Mode {
		case "", ModeGrouped, ModeStacked:
		default:
			return errs.Configf(component, errs.ErrInvalidConfig, "unknown mode %q", spec.Mode)
		}
	}

	return nil
}

// rawConfig mirrors Config with an optional Append so an omitted key can
// default to true.
type rawConfig struct {
	X         string      `yaml:"x"`
	Charts    []ChartSpec `yaml:"charts"`
	MaxLength int         `yaml:"maxLength"`
	Append    *bool       `yaml:"append"`
	Legend    bool        `yaml:"legend"`
}

// ParseConfig decodes a YAML (or JSON) configuration document.
//
// Append defaults to true when the key is absent. The result is normalized
// and validated.
//
// Parameters:
//   - data: YAML or JSON document
//
// Returns:
//   - Config: Normalized configuration
//   - error: Decode error or *errs.ConfigError
func ParseConfig(data []byte) (Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, errs.NewConfigError("config", fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err))
	}

	cfg := Config{
		X:         raw.X,
		Charts:    raw.Charts,
		MaxLength: raw.MaxLength,
		Append:    raw.Append == nil || *raw.Append,
		Legend:    raw.Legend,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg.Normalize(), nil
}

// LoadConfig reads and parses a configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return ParseConfig(data)
}
