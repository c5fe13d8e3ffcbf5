package dashboard

import (
	"github.com/2beens/familyfit/internal/models"
)

// exercises are identified by name within a day; two exercises sharing
// a name on the same day share their completion state
type progressKey struct {
	exerciseName string
	day          int
}

// ProgressIndex answers "is this exercise completed on this day", using the most recent
// progress entry (by timestamp) of each (exercise, day) pair.
type ProgressIndex struct {
	latest map[progressKey]models.ProgressEntry
}

func NewProgressIndex(entries []models.ProgressEntry) ProgressIndex {
	latest := make(map[progressKey]models.ProgressEntry, len(entries))
	for _, entry := range entries {
		key := progressKey{exerciseName: entry.ExerciseName, day: entry.Day}
		current, found := latest[key]
		// on equal timestamps the later entry in the log wins
		if !found || !entry.Timestamp.Before(current.Timestamp.Time) {
			latest[key] = entry
		}
	}
	return ProgressIndex{latest: latest}
}

// IsCompleted reports false for pairs that were never logged.
func (idx ProgressIndex) IsCompleted(exerciseName string, day int) bool {
	entry, found := idx.latest[progressKey{exerciseName: exerciseName, day: day}]
	return found && entry.Completed
}

// Len returns the number of distinct (exercise, day) pairs with at least one entry.
func (idx ProgressIndex) Len() int {
	return len(idx.latest)
}
