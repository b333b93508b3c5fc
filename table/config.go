package table

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/palette"
	"github.com/arloliu/vizstream/series"
)

// Column declares one displayed column.
type Column struct {
	Name  string `yaml:"name" json:"name"`
	Title string `yaml:"title" json:"title,omitempty"`
	// ColorBased enables cell coloring: a white-to-color gradient for
	// linear and time columns, a category color map otherwise.
	ColorBased bool `yaml:"colorBasedStyle" json:"colorBasedStyle,omitempty"`
	// Palette holds the cell colors; palette.Default when omitted. The
	// gradient of a continuous column ends at the first token.
	Palette series.Palette `yaml:"colorScale" json:"colorScale,omitempty"`
	// Domain pins categories of an ordinal column to palette slots.
	Domain     []string `yaml:"colorDomain" json:"colorDomain,omitempty"`
	TimeFormat string   `yaml:"timeFormat" json:"timeFormat,omitempty"`
	TextColor  string   `yaml:"textColor" json:"textColor,omitempty"`
}

// Config declares a streaming table.
type Config struct {
	Columns []Column `yaml:"columns" json:"columns"`
	// UniqueKey names a field whose value identifies a record. A row with a
	// known key replaces that record instead of adding one.
	UniqueKey string `yaml:"uniquePropertyColumn" json:"uniquePropertyColumn,omitempty"`
	MaxLength int    `yaml:"maxLength" json:"maxLength"`
	Append    bool   `yaml:"append" json:"append"`
}

// Normalize returns a copy of c with defaults filled in.
func (c Config) Normalize() Config {
	out := c
	out.Columns = make([]Column, len(c.Columns))
	for i, col := range c.Columns {
		if col.Title == "" {
			col.Title = col.Name
		}
		if col.ColorBased && col.Palette == nil {
			col.Palette = append(series.Palette(nil), palette.Default...)
		}
		out.Columns[i] = col
	}

	return out
}

// Validate checks the configuration shape.
func (c Config) Validate() error {
	if len(c.Columns) == 0 {
		return errs.Configf("columns", errs.ErrInvalidConfig, "at least one column is required")
	}
	if c.MaxLength < 0 {
		return errs.Configf("maxLength", errs.ErrInvalidConfig, "must not be negative, got %d", c.MaxLength)
	}

	seen := make(map[string]struct{}, len(c.Columns))
	for i, col := range c.Columns {
		component := fmt.Sprintf("columns[%d]", i)
		if strings.TrimSpace(col.Name) == "" {
			return errs.Configf(component, errs.ErrInvalidConfig, "name is required")
		}
		if _, dup := seen[col.Name]; dup {
			return errs.Configf(component, errs.ErrInvalidConfig, "duplicate column %q", col.Name)
		}
		seen[col.Name] = struct{}{}

		if col.ColorBased && col.Palette != nil && len(col.Palette) == 0 {
			return errs.Configf(component, errs.ErrInvalidColumnStyle, "colorScale of %q is empty", col.Name)
		}
		if !col.ColorBased && len(col.Domain) > 0 {
			return errs.Configf(component, errs.ErrInvalidColumnStyle,
				"colorDomain of %q needs colorBasedStyle", col.Name)
		}
	}

	return nil
}

type rawConfig struct {
	Columns   []Column `yaml:"columns"`
	UniqueKey string   `yaml:"uniquePropertyColumn"`
	MaxLength int      `yaml:"maxLength"`
	Append    *bool    `yaml:"append"`
}

// ParseConfig decodes a YAML (or JSON) table configuration. Append defaults
// to true when the key is absent.
func ParseConfig(data []byte) (Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, errs.NewConfigError("config", fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err))
	}

	cfg := Config{
		Columns:   raw.Columns,
		UniqueKey: raw.UniqueKey,
		MaxLength: raw.MaxLength,
		Append:    raw.Append == nil || *raw.Append,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg.Normalize(), nil
}

// LoadConfig reads and parses a table configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return ParseConfig(data)
}
