package series

import (
	"fmt"

	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/format"
)

// Lock is the axis scale lock carried between batches of one configuration.
type Lock struct {
	Scale  format.ScaleKind
	Locked bool
}

// Positions holds the resolved column positions of a configuration.
type Positions struct {
	X     int
	Y     []int // per chart
	Color []int // per chart, -1 when the chart is uncolored
}

// Ingested is a validated batch ready for grouping.
type Ingested struct {
	Scale     format.ScaleKind
	Positions Positions
	Rows      []Row
	// X holds the normalized x value of every row.
	X []any
}

// Len returns the number of ingested rows.
func (in Ingested) Len() int {
	return len(in.Rows)
}

// Ingest resolves the configuration against the batch metadata and validates
// every row. It has no side effects.
//
// Parameters:
//   - batch: Rows plus metadata
//   - cfg: Chart configuration
//   - lock: Scale lock of the current configuration
//
// Returns:
//   - Ingested: Resolved positions, the implied scale and normalized x values
//   - error: *errs.ConfigError on missing fields, metadata shape, axis mismatch
//     or x values the scale cannot represent
func Ingest(batch Batch, cfg Config, lock Lock) (Ingested, error) {
	md := batch.Metadata
	if len(md.Names) != len(md.Types) {
		return Ingested{}, errs.Configf("metadata", errs.ErrInvalidMetadata,
			"%d names, %d types", len(md.Names), len(md.Types))
	}

	xPos := md.Index(cfg.X)
	if xPos < 0 {
		return Ingested{}, errs.Configf("x", errs.ErrFieldNotFound, "field %q", cfg.X)
	}

	pos := Positions{
		X:     xPos,
		Y:     make([]int, len(cfg.Charts)),
		Color: make([]int, len(cfg.Charts)),
	}
	width := xPos
	for i, spec := range cfg.Charts {
		y := md.Index(spec.Y)
		if y < 0 {
			return Ingested{}, errs.Configf(fmt.Sprintf("charts[%d].y", i), errs.ErrFieldNotFound, "field %q", spec.Y)
		}
		pos.Y[i] = y
		width = max(width, y)

		pos.Color[i] = -1
		if spec.Colored() {
			c := md.Index(spec.ColorField)
			if c < 0 {
				return Ingested{}, errs.Configf(fmt.Sprintf("charts[%d].colorField", i), errs.ErrColorFieldNotFound,
					"field %q", spec.ColorField)
			}
			pos.Color[i] = c
			width = max(width, c)
		}
	}

	scale := md.Types[xPos]
	if lock.Locked && scale != lock.Scale {
		return Ingested{}, errs.Configf("x", errs.ErrAxisMismatch, "field %q is %s, axis locked to %s",
			cfg.X, scale, lock.Scale)
	}

	xs := make([]any, len(batch.Rows))
	for r, row := range batch.Rows {
		if len(row) <= width {
			return Ingested{}, errs.Configf(fmt.Sprintf("row[%d]", r), errs.ErrInvalidValue,
				"%d columns, need at least %d", len(row), width+1)
		}

		if !scale.Continuous() {
			xs[r] = scalar(row[xPos])
			continue
		}

		f, ok := ContinuousX(row[xPos], scale)
		if !ok {
			return Ingested{}, errs.Configf(fmt.Sprintf("row[%d].%s", r, cfg.X), errs.ErrInvalidValue,
				"%v (%T) on %s axis", row[xPos], row[xPos], scale)
		}
		xs[r] = f
	}

	return Ingested{
		Scale:     scale,
		Positions: pos,
		Rows:      batch.Rows,
		X:         xs,
	}, nil
}
