package frequency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/wordgate/apierr"
)

func TestTracker_RecordTwice(t *testing.T) {
	tracker := NewTracker()

	tracker.Record("gopher")
	tracker.Record("gopher")

	assert.Equal(t, 2, tracker.Count("gopher"))
	assert.Equal(t, 1, tracker.Len())
	assert.Zero(t, tracker.Count("missing"))
}

func TestTracker_RecordIgnoresEmptyWord(t *testing.T) {
	tracker := NewTracker()
	tracker.Record("")

	assert.Zero(t, tracker.Len())
}

func TestTracker_TopRejectsNonPositive(t *testing.T) {
	tracker := NewTracker()
	tracker.Record("gopher")

	for _, n := range []int{0, -1} {
		got, err := tracker.Top(n)
		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, apierr.KindInvalidArgument, apierr.KindOf(err))
	}
}

func TestTracker_TopOrdering(t *testing.T) {
	tracker := NewTracker()
	for _, w := range []string{"alpha", "beta", "gamma", "beta", "gamma", "gamma", "delta"} {
		tracker.Record(w)
	}

	got, err := tracker.Top(3)
	require.NoError(t, err)

	assert.Equal(t, []WordCount{
		{Word: "gamma", Frequency: 3},
		{Word: "beta", Frequency: 2},
		{Word: "alpha", Frequency: 1},
	}, got)
}

func TestTracker_TopTiesKeepInsertionOrder(t *testing.T) {
	tracker := NewTracker()
	for _, w := range []string{"zeta", "alpha", "mu"} {
		tracker.Record(w)
	}

	got, err := tracker.Top(10)
	require.NoError(t, err)

	assert.Equal(t, []WordCount{
		{Word: "zeta", Frequency: 1},
		{Word: "alpha", Frequency: 1},
		{Word: "mu", Frequency: 1},
	}, got)
}

func TestTracker_TopIsNonIncreasing(t *testing.T) {
	tracker := NewTracker()
	words := []string{"a", "b", "c", "d", "e"}
	for i := 0; i < 100; i++ {
		tracker.Record(words[(i*i+3*i)%len(words)])
	}

	got, err := tracker.Top(len(words))
	require.NoError(t, err)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Frequency, got[i].Frequency, "position %d", i)
	}
}

func TestTracker_TopReturnsCopy(t *testing.T) {
	tracker := NewTracker()
	tracker.Record("gopher")

	got, err := tracker.Top(1)
	require.NoError(t, err)
	got[0].Frequency = 99

	assert.Equal(t, 1, tracker.Count("gopher"))
}

func TestTracker_ConcurrentRecord(t *testing.T) {
	const (
		callers = 32
		records = 250
	)

	tracker := NewTracker()
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < records; j++ {
				tracker.Record("gopher")
				if j%50 == 0 {
					_, _ = tracker.Top(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, callers*records, tracker.Count("gopher"))
}

func TestTracker_TopOnEmptyTrackerIsEmptySlice(t *testing.T) {
	got, err := NewTracker().Top(5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
