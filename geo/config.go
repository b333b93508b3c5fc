package geo

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/palette"
	"github.com/arloliu/vizstream/series"
)

// MapType selects the map a renderer draws.
type MapType string

const (
	MapWorld  MapType = "world"
	MapUSA    MapType = "usa"
	MapEurope MapType = "europe"
)

// ParseMapType parses a map type name, ignoring case. An empty name is
// MapWorld.
func ParseMapType(s string) (MapType, error) {
	switch MapType(strings.ToLower(strings.TrimSpace(s))) {
	case "", MapWorld:
		return MapWorld, nil
	case MapUSA:
		return MapUSA, nil
	case MapEurope:
		return MapEurope, nil
	default:
		return "", errs.Configf("mapType", errs.ErrUnsupportedMap, "%q", s)
	}
}

// Config declares a choropleth or category map.
type Config struct {
	// X is the location field.
	X string `yaml:"x" json:"x"`
	// Y is the value field. A linear field yields a gradient fill, any other
	// type a category color map.
	Y       string  `yaml:"y" json:"y"`
	MapType MapType `yaml:"mapType" json:"mapType"`
	// ColorScale holds the gradient endpoints (first two tokens) for linear
	// values and the palette for categories. palette.Default when empty.
	ColorScale series.Palette `yaml:"colorScale" json:"colorScale,omitempty"`
	// LowerBound and UpperBound pin the gradient range instead of the
	// observed minimum and maximum.
	LowerBound *float64 `yaml:"rangeLowerBound" json:"rangeLowerBound,omitempty"`
	UpperBound *float64 `yaml:"rangeUpperBound" json:"rangeUpperBound,omitempty"`
	MaxLength  int      `yaml:"maxLength" json:"maxLength"`
	Append     bool     `yaml:"append" json:"append"`
}

// Normalize returns a copy of c with defaults filled in.
func (c Config) Normalize() Config {
	out := c
	if out.MapType == "" {
		out.MapType = MapWorld
	} else if mt, err := ParseMapType(string(out.MapType)); err == nil {
		out.MapType = mt
	}
	if len(out.ColorScale) == 0 {
		out.ColorScale = append(series.Palette(nil), palette.Default...)
	}

	return out
}

// Validate checks the configuration shape.
func (c Config) Validate() error {
	if strings.TrimSpace(c.X) == "" {
		return errs.Configf("x", errs.ErrInvalidConfig, "x field is required")
	}
	if strings.TrimSpace(c.Y) == "" {
		return errs.Configf("y", errs.ErrInvalidConfig, "y field is required")
	}
	if _, err := ParseMapType(string(c.MapType)); err != nil {
		return err
	}
	if c.MaxLength < 0 {
		return errs.Configf("maxLength", errs.ErrInvalidConfig, "must not be negative, got %d", c.MaxLength)
	}
	if c.LowerBound != nil && c.UpperBound != nil && *c.LowerBound > *c.UpperBound {
		return errs.Configf("range", errs.ErrInvalidConfig, "lower bound %v above upper bound %v",
			*c.LowerBound, *c.UpperBound)
	}

	return nil
}

type rawConfig struct {
	X          string         `yaml:"x"`
	Y          string         `yaml:"y"`
	MapType    MapType        `yaml:"mapType"`
	ColorScale series.Palette `yaml:"colorScale"`
	LowerBound *float64       `yaml:"rangeLowerBound"`
	UpperBound *float64       `yaml:"rangeUpperBound"`
	MaxLength  int            `yaml:"maxLength"`
	Append     *bool          `yaml:"append"`
}

// ParseConfig decodes a YAML (or JSON) map configuration. Append defaults
// to true when the key is absent.
func ParseConfig(data []byte) (Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, errs.NewConfigError("config", fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err))
	}

	cfg := Config{
		X:          raw.X,
		Y:          raw.Y,
		MapType:    raw.MapType,
		ColorScale: raw.ColorScale,
		LowerBound: raw.LowerBound,
		UpperBound: raw.UpperBound,
		MaxLength:  raw.MaxLength,
		Append:     raw.Append == nil || *raw.Append,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg.Normalize(), nil
}

// LoadConfig reads and parses a map configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return ParseConfig(data)
}
