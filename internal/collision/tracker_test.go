package collision

import (
	"testing"

	"github.com/arloliu/vizstream/errs"
	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Names())
}

func TestTracker_TrackSeries(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackSeries("us-east", 0x0001))
	require.NoError(t, tracker.TrackSeries("eu-west", 0x0002))

	require.Equal(t, 2, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Equal(t, []string{"us-east", "eu-west"}, tracker.Names())
}

func TestTracker_TrackSeries_EmptyName(t *testing.T) {
	tracker := NewTracker()

	err := tracker.TrackSeries("", 0x0001)
	require.ErrorIs(t, err, errs.ErrInvalidSeriesName)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_TrackSeries_Collision(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackSeries("us-east", 0x0001))
	require.NoError(t, tracker.TrackSeries("us-west", 0x0001))

	require.True(t, tracker.HasCollision())
	require.Equal(t, []string{"us-east", "us-west"}, tracker.Names())

	// flag persists after further non-colliding series
	require.NoError(t, tracker.TrackSeries("eu-west", 0x0002))
	require.True(t, tracker.HasCollision())
}

func TestTracker_TrackSeries_Duplicate(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.TrackSeries("us-east", 0x0001))
	err := tracker.TrackSeries("us-east", 0x0001)

	require.ErrorIs(t, err, errs.ErrSeriesAlreadyTracked)
	require.False(t, tracker.HasCollision())
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()
	for i := range 50 {
		_ = tracker.TrackSeries("series", uint64(i))
	}
	_ = tracker.TrackSeries("other", 0)
	require.True(t, tracker.HasCollision())
	initialCap := cap(tracker.order)

	tracker.Reset()

	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.GreaterOrEqual(t, cap(tracker.order), initialCap)

	require.NoError(t, tracker.TrackSeries("series", 7))
	require.Equal(t, []string{"series"}, tracker.Names())
}
