package collision

import (
	"github.com/arloliu/vizstream/errs"
)

// Tracker records series identifiers while a frame is encoded and detects
// hash collisions between different series names.
type Tracker struct {
	names        map[uint64]string // id -> series name
	order        []string          // names in track order
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64]string),
		order: make([]string, 0),
	}
}

// TrackSeries records name under id.
//
// An empty name returns ErrInvalidSeriesName and the same name tracked twice
// under the same id returns ErrSeriesAlreadyTracked. A different name under an
// existing id is not an error: the collision flag is raised and the decoder
// relies on the stored names instead of hash verification.
func (t *Tracker) TrackSeries(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidSeriesName
	}

	if existing, ok := t.names[id]; ok {
		if existing == name {
			return errs.ErrSeriesAlreadyTracked
		}
		t.hasCollision = true
	}

	t.names[id] = name
	t.order = append(t.order, name)

	return nil
}

// HasCollision reports whether two different names shared an id.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in track order.
func (t *Tracker) Names() []string {
	return t.order
}

// Count returns the number of tracked series.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears the tracker while keeping its allocations.
func (t *Tracker) Reset() {
	clear(t.names)
	t.order = t.order[:0]
	t.hasCollision = false
}
