package series

import (
	"cmp"
	"slices"

	"github.com/arloliu/vizstream/format"
)

// Merge combines an existing buffer with the points of a new batch.
//
// Continuous axes concatenate in arrival order and then stable-sort by x, so
// in-order streams are left untouched and late points slot into place.
// Ordinal axes upsert by equal x: a matching entry takes the new y and
// category in place, other points are appended. Neither input is modified.
func Merge(existing, incoming []Point, scale format.ScaleKind) []Point {
	if len(existing) == 0 && len(incoming) == 0 {
		return existing
	}

	if scale.Continuous() {
		out := make([]Point, 0, len(existing)+len(incoming))
		out = append(out, existing...)
		out = append(out, incoming...)
		if !slices.IsSortedFunc(out, compareX) {
			slices.SortStableFunc(out, compareX)
		}

		return out
	}

	out := slices.Clone(existing)
	index := make(map[any]int, len(out)+len(incoming))
	for i, p := range out {
		index[p.X] = i
	}
	for _, p := range incoming {
		if i, ok := index[p.X]; ok {
			out[i].Y = p.Y
			out[i].Category = p.Category
			continue
		}
		index[p.X] = len(out)
		out = append(out, p)
	}

	return out
}

// MergeBuffers merges every partition into a copy of buffers, keyed by
// chart. The input map is not modified.
func MergeBuffers(buffers map[SeriesKey][]Point, chart int, parts []Partition, scale format.ScaleKind) map[SeriesKey][]Point {
	out := make(map[SeriesKey][]Point, len(buffers)+len(parts))
	for k, v := range buffers {
		out[k] = v
	}
	for _, part := range parts {
		key := SeriesKey{Chart: chart, Name: part.Key}
		out[key] = Merge(out[key], part.Points, scale)
	}

	return out
}

func compareX(a, b Point) int {
	return cmp.Compare(a.XFloat(), b.XFloat())
}
