package series

// Reduce merges batch into prev and returns the resulting snapshot.
//
// State is rebuilt from scratch when prev is nil, when prev belongs to
// another configuration generation or when cfg.Append is false. Validation
// runs before any state is derived, so on error prev is still the current
// state. An empty batch returns prev unchanged (or a fresh empty state after
// a reset). The axis scale locks on the first non-empty batch.
//
// Parameters:
//   - prev: Previous snapshot, may be nil
//   - cfg: Normalized configuration
//   - gen: Generation of cfg
//   - batch: New rows
//
// Returns:
//   - *Snapshot: New snapshot; prev is never modified
//   - error: *errs.ConfigError if the batch cannot be applied
func Reduce(prev *Snapshot, cfg Config, gen uint64, batch Batch) (*Snapshot, error) {
	return reduce(prev, cfg, gen, batch, nil)
}

// reduce is Reduce with an optional observer receiving the partitions of
// every colored chart once the batch is known to be valid.
func reduce(prev *Snapshot, cfg Config, gen uint64, batch Batch, observe func([]Partition)) (*Snapshot, error) {
	base := prev
	if base == nil || base.Generation != gen || !cfg.Append {
		base = nil
	}

	lock := Lock{}
	if base != nil && base.Phase == PhaseAccumulating {
		lock = Lock{Scale: base.Axis.Scale, Locked: true}
	}

	in, err := Ingest(batch, cfg, lock)
	if err != nil {
		return nil, err
	}

	if base == nil {
		base, err = newSnapshot(cfg, gen)
		if err != nil {
			return nil, err
		}
	}
	if in.Len() == 0 {
		return base, nil
	}

	next := base.clone()
	for i := range next.charts {
		chart := &next.charts[i]
		parts := Group(in, i, chart.Spec)

		if chart.Spec.Colored() || chart.Spec.Fill == "" {
			chart.colors.Assign(Keys(parts))
		}
		if observe != nil && chart.Spec.Colored() {
			observe(parts)
		}

		for _, part := range parts {
			key := SeriesKey{Chart: i, Name: part.Key}
			existing, known := next.buffers[key]
			if !known {
				next.order = append(next.order, key)
				chart.series = append(chart.series, part.Key)
			}
			next.buffers[key] = Trim(Merge(existing, part.Points, in.Scale), cfg.MaxLength)
		}
	}

	next.Phase = PhaseAccumulating
	next.Batches++
	next.Axis = AxisState{Scale: in.Scale}
	if in.Scale.Continuous() {
		bufs := make([][]Point, 0, len(next.order))
		for _, key := range next.order {
			bufs = append(bufs, next.buffers[key])
		}
		next.Axis.Domain, next.Axis.HasDomain = ComputeRange(bufs...)
	}

	return next, nil
}
