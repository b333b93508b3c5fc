package palette

import (
	"maps"
	"slices"

	"github.com/arloliu/vizstream/errs"
)

// Assigner maps category keys to palette colors.
//
// A key keeps the first color it receives for the lifetime of the assigner.
// Keys listed in the domain take the palette slot at their domain index when
// that index is inside the palette; all other keys take the next slot from a
// rotating cursor.
//
// An Assigner is not safe for concurrent mutation. The series reducer clones
// it before assigning so that published snapshots never change.
type Assigner struct {
	palette []string
	domain  map[string]int
	cursor  int
	colors  map[string]string
	order   []string
}

// NewAssigner creates an assigner over palette.
//
// Parameters:
//   - palette: Color tokens; must not be empty
//   - domain: Optional category keys pinning palette slots by position
//   - start: Initial cursor position, usually the chart index
//
// Returns:
//   - *Assigner: The new assigner
//   - error: ErrInvalidPalette wrapped in a ConfigError if palette is empty
func NewAssigner(palette []string, domain []string, start int) (*Assigner, error) {
	if len(palette) == 0 {
		return nil, errs.NewConfigError("palette", errs.ErrInvalidPalette)
	}

	a := &Assigner{
		palette: slices.Clone(palette),
		domain:  make(map[string]int, len(domain)),
		cursor:  max(start, 0),
		colors:  make(map[string]string),
	}
	for i, key := range domain {
		if _, ok := a.domain[key]; !ok {
			a.domain[key] = i
		}
	}

	return a, nil
}

// Unseen returns the keys not yet assigned, deduplicated, in first-seen order.
func (a *Assigner) Unseen(keys []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := a.colors[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}

	return out
}

// Assign gives a color to every key in keys that has none and returns the
// keys that were newly assigned, in assignment order.
func (a *Assigner) Assign(keys []string) []string {
	fresh := a.Unseen(keys)
	for _, key := range fresh {
		a.colors[key] = a.next(key)
		a.order = append(a.order, key)
	}

	return fresh
}

func (a *Assigner) next(key string) string {
	if p, ok := a.domain[key]; ok && p >= 0 && p < len(a.palette) {
		return a.palette[p]
	}

	if a.cursor >= len(a.palette) {
		a.cursor = 0
	}
	color := a.palette[a.cursor]
	a.cursor++

	return color
}

// Color returns the color assigned to key.
func (a *Assigner) Color(key string) (string, bool) {
	c, ok := a.colors[key]
	return c, ok
}

// Colors returns a copy of the key to color mapping.
func (a *Assigner) Colors() map[string]string {
	return maps.Clone(a.colors)
}

// Order returns the assigned keys in assignment order.
func (a *Assigner) Order() []string {
	return slices.Clone(a.order)
}

// Len returns the number of assigned keys.
func (a *Assigner) Len() int {
	return len(a.order)
}

// Palette returns a copy of the palette.
func (a *Assigner) Palette() []string {
	return slices.Clone(a.palette)
}

// Clone returns an independent copy of the assigner.
func (a *Assigner) Clone() *Assigner {
	return &Assigner{
		palette: a.palette, // never mutated after construction
		domain:  a.domain,
		cursor:  a.cursor,
		colors:  maps.Clone(a.colors),
		order:   slices.Clone(a.order),
	}
}
