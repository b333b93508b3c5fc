// Package series is the streaming aggregation core of vizstream.
//
// Every batch of rows runs through the same pipeline:
//
//	Ingest -> Group -> assign colors -> Merge -> Trim -> ComputeRange
//
// Ingest resolves the configured fields against the batch metadata and
// checks the x axis against the scale locked by earlier batches. Group splits
// rows into one series per category (or a single series named after the y
// field). Each chart keeps a palette.Assigner so a category keeps its color
// for the lifetime of the configuration. Merge appends on continuous axes and
// upserts by x on ordinal axes, Trim evicts the oldest points beyond
// MaxLength, and ComputeRange unions the x extents of all buffers.
//
// Reduce ties the stages together as a pure function from the previous
// *Snapshot to the next one. Engine wraps Reduce with configuration
// generations, legend and click interactions, logging and metrics:
//
//	engine, err := series.NewEngine(cfg, series.WithLogger(series.NewTextLogger(slog.LevelDebug)))
//	if err != nil {
//	    return err
//	}
//	snap, err := engine.Update(batch)
//	if err != nil {
//	    return err // state is unchanged
//	}
//	for _, key := range snap.Keys() {
//	    render(key, snap.Buffer(key))
//	}
package series
