package series

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/palette"
)

func TestParseConfig(t *testing.T) {
	t.Run("yaml with defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`
x: ts
maxLength: 30
charts:
  - type: line
    y: latency
    colorField: region
`))
		require.NoError(t, err)
		require.Equal(t, "ts", cfg.X)
		require.Equal(t, 30, cfg.MaxLength)
		require.True(t, cfg.Append, "append defaults to true")
		require.Len(t, cfg.Charts, 1)

		spec := cfg.Charts[0]
		require.Equal(t, Palette(palette.Default), spec.Palette)
		require.Equal(t, ModeGrouped, spec.Mode)
		require.Equal(t, DefaultOrientation, spec.Orientation)
	})

	t.Run("json document", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`{"x":"day","append":false,"charts":[{"type":"bar","y":"sales","mode":"stacked","colorPalette":["#000","#fff"]}]}`))
		require.NoError(t, err)
		require.False(t, cfg.Append)
		require.Equal(t, ModeStacked, cfg.Charts[0].Mode)
		require.Equal(t, Palette{"#000", "#fff"}, cfg.Charts[0].Palette)
	})

	t.Run("named palette and numeric domain", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`
x: ts
charts:
  - y: v
    colorField: level
    colorPalette: accessible
    colorDomain: [1, 2, 3]
`))
		require.NoError(t, err)
		require.Equal(t, Palette(palette.Accessible), cfg.Charts[0].Palette)
		require.Equal(t, []string{"1", "2", "3"}, cfg.Charts[0].Domain)
	})

	t.Run("unknown palette name", func(t *testing.T) {
		_, err := ParseConfig([]byte("x: ts\ncharts:\n  - y: v\n    colorPalette: neon\n"))
		require.ErrorIs(t, err, errs.ErrInvalidConfig)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseConfig([]byte("x: [unterminated"))
		require.ErrorIs(t, err, errs.ErrInvalidConfig)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		component string
	}{
		{"missing x", Config{Charts: []ChartSpec{{Y: "v"}}}, "x"},
		{"no charts", Config{X: "ts"}, "charts"},
		{"negative max length", Config{X: "ts", Charts: []ChartSpec{{Y: "v"}}, MaxLength: -1}, "maxLength"},
		{"missing y", Config{X: "ts", Charts: []ChartSpec{{Type: "line"}}}, "charts[0]"},
		{"unknown mode", Config{X: "ts", Charts: []ChartSpec{{Y: "v", Mode: "layered"}}}, "charts[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()

			var cfgErr *errs.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, tt.component, cfgErr.Component)
			require.ErrorIs(t, err, errs.ErrInvalidConfig)
		})
	}

	require.NoError(t, lineConfig(0).Validate())
}

func TestConfig_NormalizeDoesNotAlias(t *testing.T) {
	cfg := Config{X: "ts", Charts: []ChartSpec{{Y: "v"}}}
	norm := cfg.Normalize()

	require.Empty(t, cfg.Charts[0].Palette)
	require.NotEmpty(t, norm.Charts[0].Palette)

	norm.Charts[0].Palette[0] = "changed"
	require.NotEqual(t, "changed", palette.Default[0])
}
