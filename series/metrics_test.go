package series

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	m.RecordBatch(10, 3, 2*time.Millisecond, nil)
	m.RecordBatch(5, 0, 4*time.Millisecond, errors.New("boom"))
	m.RecordReset()

	stats := m.GetStats()
	require.Equal(t, int64(2), stats.BatchCount)
	require.Equal(t, int64(1), stats.BatchErrors)
	require.Equal(t, int64(10), stats.RowCount)
	require.Equal(t, int64(3), stats.Series)
	require.Equal(t, int64(1), stats.ResetCount)
	require.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.BatchAvgNanos)
}

func TestNoopCollectors(t *testing.T) {
	var m MetricsCollector = NoopMetricsCollector{}
	m.RecordBatch(1, 1, time.Second, nil)
	m.RecordReset()

	l := NoopLogger()
	l.LogBatch(t.Context(), 1, 1, nil)
	l.LogReset(t.Context(), "test")
}
