package dashboard_test

import (
	"testing"
	"time"

	"github.com/2beens/familyfit/internal/dashboard"
	"github.com/2beens/familyfit/internal/models"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func ts(offset time.Duration) models.Timestamp {
	return models.NewTimestamp(t0.Add(offset))
}

func progressEntry(name string, day int, completed bool, at time.Duration) models.ProgressEntry {
	return models.ProgressEntry{
		ProfileID:    "p1",
		PlanID:       "wp1",
		Day:          day,
		ExerciseName: name,
		Completed:    completed,
		Timestamp:    ts(at),
	}
}

func TestProgressIndex_lastWriteWinsByTimestamp(t *testing.T) {
	// log order is not time order: t1, t3, t2
	idx := dashboard.NewProgressIndex([]models.ProgressEntry{
		progressEntry("Squat", 1, false, 1*time.Minute),
		progressEntry("Squat", 1, true, 3*time.Minute),
		progressEntry("Squat", 1, false, 2*time.Minute),
	})

	assert.True(t, idx.IsCompleted("Squat", 1))
	assert.Equal(t, 1, idx.Len())
}

func TestProgressIndex_uncheckedAfterChecked(t *testing.T) {
	idx := dashboard.NewProgressIndex([]models.ProgressEntry{
		progressEntry("Plank", 2, true, 1*time.Minute),
		progressEntry("Plank", 2, false, 5*time.Minute),
	})
	assert.False(t, idx.IsCompleted("Plank", 2))
}

func TestProgressIndex_equalTimestampsLaterEntryWins(t *testing.T) {
	idx := dashboard.NewProgressIndex([]models.ProgressEntry{
		progressEntry("Squat", 1, true, time.Minute),
		progressEntry("Squat", 1, false, time.Minute),
	})
	assert.False(t, idx.IsCompleted("Squat", 1))

	idx = dashboard.NewProgressIndex([]models.ProgressEntry{
		progressEntry("Squat", 1, false, time.Minute),
		progressEntry("Squat", 1, true, time.Minute),
	})
	assert.True(t, idx.IsCompleted("Squat", 1))
}

func TestProgressIndex_keyedByNameAndDay(t *testing.T) {
	idx := dashboard.NewProgressIndex([]models.ProgressEntry{
		progressEntry("Squat", 1, true, time.Minute),
		progressEntry("Plank", 2, true, time.Minute),
	})

	assert.True(t, idx.IsCompleted("Squat", 1))
	assert.False(t, idx.IsCompleted("Squat", 2))
	assert.False(t, idx.IsCompleted("squat", 1))
	assert.True(t, idx.IsCompleted("Plank", 2))
	// never logged
	assert.False(t, idx.IsCompleted("Lunge", 1))
	assert.Equal(t, 2, idx.Len())
}

func TestProgressIndex_empty(t *testing.T) {
	idx := dashboard.NewProgressIndex(nil)
	assert.False(t, idx.IsCompleted("Squat", 1))
	assert.Equal(t, 0, idx.Len())

	var zero dashboard.ProgressIndex
	assert.False(t, zero.IsCompleted("Squat", 1))
}
