package series

import (
	"github.com/keilerkonzept/topk/sliding"
)

// CategoryCount is one entry of the top categories report.
type CategoryCount struct {
	Name  string `json:"name"`
	Count uint32 `json:"count"`
}

// topCategories counts rows per category over a sliding window of batches.
type topCategories struct {
	k      int
	window int
	sketch *sliding.Sketch
}

func newTopCategories(k, window int) *topCategories {
	return &topCategories{
		k:      k,
		window: window,
		sketch: sliding.New(k, window),
	}
}

// observe counts the partitions of one batch and advances the window.
func (t *topCategories) observe(parts []Partition) {
	for _, p := range parts {
		t.sketch.Add(p.Key, uint32(len(p.Points))) //nolint:gosec
	}
}

func (t *topCategories) tick() {
	t.sketch.Ticks(1)
}

func (t *topCategories) top() []CategoryCount {
	items := t.sketch.SortedSlice()
	out := make([]CategoryCount, 0, len(items))
	for _, item := range items {
		if item.Count == 0 {
			continue
		}
		out = append(out, CategoryCount{Name: item.Item, Count: item.Count})
	}

	return out
}

func (t *topCategories) reset() {
	t.sketch = sliding.New(t.k, t.window)
}
