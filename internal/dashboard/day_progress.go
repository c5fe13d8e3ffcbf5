package dashboard

import (
	"github.com/2beens/familyfit/internal/models"
)

// DayProgress returns the percentage [0, 100] of the day's exercises marked completed.
// A day without exercises has 0 progress.
func DayProgress(workout models.DailyWorkout, idx ProgressIndex) float64 {
	total := len(workout.Exercises)
	if total == 0 {
		return 0
	}
	return float64(completedCount(workout, idx)) / float64(total) * 100
}

// AllDayProgress computes DayProgress for every day of the plan, keyed by day number.
func AllDayProgress(plan *models.WorkoutPlan, idx ProgressIndex) map[int]float64 {
	dayProgress := make(map[int]float64)
	if plan == nil {
		return dayProgress
	}
	for _, workout := range plan.DailyWorkouts {
		dayProgress[workout.Day] = DayProgress(workout, idx)
	}
	return dayProgress
}

// PlanProgress is the share of completed exercises over the whole plan.
func PlanProgress(plan *models.WorkoutPlan, idx ProgressIndex) float64 {
	if plan == nil {
		return 0
	}
	var total, completed int
	for _, workout := range plan.DailyWorkouts {
		total += len(workout.Exercises)
		completed += completedCount(workout, idx)
	}
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

func completedCount(workout models.DailyWorkout, idx ProgressIndex) int {
	completed := 0
	for _, ex := range workout.Exercises {
		if idx.IsCompleted(ex.Name, workout.Day) {
			completed++
		}
	}
	return completed
}
