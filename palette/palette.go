// Package palette assigns stable colors to chart categories and blends
// colors for value-driven fills.
package palette

import "strings"

// Default is the palette used when a chart does not configure one.
var Default = []string{
	"#4F46E5", // indigo
	"#10B981", // emerald
	"#F59E0B", // amber
	"#EF4444", // red
	"#8B5CF6", // violet
	"#06B6D4", // cyan
	"#EC4899", // pink
	"#84CC16", // lime
	"#F97316", // orange
	"#6366F1", // indigo light
}

// Accessible is Paul Tol's qualitative palette, readable under common forms
// of color blindness.
var Accessible = []string{
	"#4477AA",
	"#EE6677",
	"#228833",
	"#CCBB44",
	"#66CCEE",
	"#AA3377",
	"#BBBBBB",
	"#EE8866",
	"#44BB99",
	"#FFAABB",
}

// Named returns a copy of a built-in palette by name ("default" or
// "accessible"). The second return value is false for unknown names.
func Named(name string) ([]string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return append([]string(nil), Default...), true
	case "accessible", "tol":
		return append([]string(nil), Accessible...), true
	default:
		return nil, false
	}
}

// At returns the palette color at index i, wrapping around the palette.
// It returns an empty string for an empty palette.
func At(p []string, i int) string {
	if len(p) == 0 {
		return ""
	}
	if i < 0 {
		i = -i
	}

	return p[i%len(p)]
}
