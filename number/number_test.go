package number

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/format"
	"github.com/arloliu/vizstream/series"
)

var countMeta = series.Metadata{
	Names: []string{"label", "count"},
	Types: []format.ScaleKind{format.ScaleOrdinal, format.ScaleLinear},
}

func batch(rows ...series.Row) series.Batch {
	return series.Batch{Metadata: countMeta, Rows: rows}
}

func TestNumber_Update(t *testing.T) {
	n, err := New(Config{X: "count", Title: "Requests"})
	require.NoError(t, err)

	s, err := n.Update(batch(series.Row{"a", 5}, series.Row{"b", 8}))
	require.NoError(t, err)
	require.Equal(t, State{Value: 8, HasValue: true}, s)
	require.Zero(t, s.Difference())
	_, ok := s.Percentage()
	require.False(t, ok)
	require.Equal(t, TrendFlat, s.Trend())

	s, err = n.Update(batch(series.Row{"c", 10}))
	require.NoError(t, err)
	require.InDelta(t, 2.0, s.Difference(), 1e-9)
	pct, ok := s.Percentage()
	require.True(t, ok)
	require.InDelta(t, 25.0, pct, 1e-9)
	require.Equal(t, TrendUp, s.Trend())

	s, err = n.Update(batch(series.Row{"d", 5}))
	require.NoError(t, err)
	pct, _ = s.Percentage()
	require.InDelta(t, -50.0, pct, 1e-9)
	require.Equal(t, "down", s.Trend().String())
}

func TestNumber_EmptyBatch(t *testing.T) {
	n, err := New(Config{X: "count"})
	require.NoError(t, err)
	_, err = n.Update(batch(series.Row{"a", 1}))
	require.NoError(t, err)

	s, err := n.Update(batch())
	require.NoError(t, err)
	require.Equal(t, State{Value: 1, HasValue: true}, s)
}

func TestNumber_ZeroPrevious(t *testing.T) {
	n, err := New(Config{X: "count"})
	require.NoError(t, err)
	_, _ = n.Update(batch(series.Row{"a", 0}))

	s, err := n.Update(batch(series.Row{"a", 3}))
	require.NoError(t, err)
	_, ok := s.Percentage()
	require.False(t, ok)
	require.Equal(t, TrendUp, s.Trend())
}

func TestNumber_Errors(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	n, err := New(Config{X: "missing"})
	require.NoError(t, err)
	_, err = n.Update(batch(series.Row{"a", 1}))
	require.ErrorIs(t, err, errs.ErrFieldNotFound)

	n, err = New(Config{X: "count"})
	require.NoError(t, err)
	_, err = n.Update(batch(series.Row{"a", 1}))
	require.NoError(t, err)

	_, err = n.Update(batch(series.Row{"a", "many"}))
	require.ErrorIs(t, err, errs.ErrInvalidValue)
	require.Equal(t, 1.0, n.State().Value, "a failed batch keeps the state")
}
