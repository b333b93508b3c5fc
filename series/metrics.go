package series

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational metrics from an Engine.
// Implement it to export to a monitoring system; see package promstats for
// a Prometheus implementation.
type MetricsCollector interface {
	// RecordBatch is called after every Update. rows is the batch size,
	// series the number of buffers afterwards, err is nil on success.
	RecordBatch(rows, series int, duration time.Duration, err error)

	// RecordReset is called whenever accumulated state is discarded.
	RecordReset()
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBatch(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordReset()                               {}

// BasicMetricsCollector keeps in-memory counters.
type BasicMetricsCollector struct {
	BatchCount      atomic.Int64
	BatchErrors     atomic.Int64
	RowCount        atomic.Int64
	BatchTotalNanos atomic.Int64
	SeriesGauge     atomic.Int64
	ResetCount      atomic.Int64
}

var _ MetricsCollector = (*BasicMetricsCollector)(nil)

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(rows, series int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BatchErrors.Add(1)
		return
	}
	b.RowCount.Add(int64(rows))
	b.SeriesGauge.Store(int64(series))
}

// RecordReset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReset() {
	b.ResetCount.Add(1)
}

// BasicMetricsStats is a point-in-time copy of BasicMetricsCollector.
type BasicMetricsStats struct {
	BatchCount    int64
	BatchErrors   int64
	RowCount      int64
	BatchAvgNanos int64
	Series        int64
	ResetCount    int64
}

// GetStats returns the current counters.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		BatchCount:  b.BatchCount.Load(),
		BatchErrors: b.BatchErrors.Load(),
		RowCount:    b.RowCount.Load(),
		Series:      b.SeriesGauge.Load(),
		ResetCount:  b.ResetCount.Load(),
	}
	if stats.BatchCount > 0 {
		stats.BatchAvgNanos = b.BatchTotalNanos.Load() / stats.BatchCount
	}

	return stats
}
