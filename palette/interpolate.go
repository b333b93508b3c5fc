package palette

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Interpolate blends linearly between two hex colors.
//
// The position of value inside [lo, hi] selects the blend: lo yields from,
// hi yields to. Values outside the range are clamped. A degenerate range
// (lo == hi) yields to, so a single-valued column still renders at full color.
//
// Parameters:
//   - value: Value to place on the gradient
//   - lo, hi: Value range mapped to the gradient ends
//   - from, to: Hex colors ("#rgb" or "#rrggbb")
//
// Returns:
//   - string: Blended color as "#rrggbb"
//   - error: If either color is not a hex color
func Interpolate(value, lo, hi float64, from, to string) (string, error) {
	c1, err := colorful.Hex(from)
	if err != nil {
		return "", fmt.Errorf("parse gradient start %q: %w", from, err)
	}
	c2, err := colorful.Hex(to)
	if err != nil {
		return "", fmt.Errorf("parse gradient end %q: %w", to, err)
	}

	t := 1.0
	if hi != lo {
		t = (value - lo) / (hi - lo)
	}
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Min(1, math.Max(0, t))

	return c1.BlendRgb(c2, t).Clamped().Hex(), nil
}

// RGB parses a hex color token into its 8-bit channels.
func RGB(token string) (r, g, b uint8, err error) {
	c, err := colorful.Hex(token)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parse color %q: %w", token, err)
	}
	r, g, b = c.Clamped().RGB255()

	return r, g, b, nil
}
