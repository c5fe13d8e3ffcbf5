package dashboard

import (
	"math"
	"time"

	"github.com/2beens/familyfit/internal/models"
)

type Status string

const (
	StatusEmpty   Status = "empty"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

type ExerciseView struct {
	models.Exercise
	Completed bool `json:"completed"`
}

type DayWorkoutView struct {
	Day       int            `json:"day"`
	Focus     string         `json:"focus"`
	Progress  float64        `json:"progress"`
	Exercises []ExerciseView `json:"exercises"`
}

// Stats backs the dashboard stat cards.
type Stats struct {
	CurrentWeight float64 `json:"currentWeight"`
	BMR           int     `json:"bmr"`
	TDEE          int     `json:"tdee"`
	PlanDays      int     `json:"planDays"`
}

// Snapshot is everything the dashboard renders. A published snapshot is never
// modified; every change builds a new one.
type Snapshot struct {
	Status     Status `json:"status"`
	Generation uint64 `json:"generation"`
	ProfileID  string `json:"profileId"`

	Profile       *models.Profile        `json:"profile,omitempty"`
	WorkoutPlan   *models.WorkoutPlan    `json:"workoutPlan,omitempty"`
	NutritionPlan *models.NutritionPlan  `json:"nutritionPlan,omitempty"`
	HasPlans      bool                   `json:"hasPlans"`
	DayProgress   map[int]float64        `json:"dayProgress,omitempty"`
	PlanProgress  float64                `json:"planProgress"`
	WeightSeries  WeightSeries           `json:"weightSeries"`
	Metrics       *models.DerivedMetrics `json:"metrics,omitempty"`
	Stats         Stats                  `json:"stats"`

	SelectedDay     int               `json:"selectedDay"`
	SelectedWorkout *DayWorkoutView   `json:"selectedWorkout,omitempty"`
	SelectedMeal    *models.DailyMeal `json:"selectedMeal,omitempty"`

	Notice    string    `json:"notice,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`

	progress ProgressIndex
}

// IsCompleted answers from the snapshot's own progress index.
func (s *Snapshot) IsCompleted(exerciseName string, day int) bool {
	return s.progress.IsCompleted(exerciseName, day)
}

func (s *Snapshot) IsReady() bool {
	return s.Status == StatusReady
}

func newEmptySnapshot(now time.Time) *Snapshot {
	return &Snapshot{
		Status:      StatusEmpty,
		SelectedDay: 1,
		UpdatedAt:   now,
	}
}

func newLoadingSnapshot(generation uint64, profileID string, selectedDay int, now time.Time) *Snapshot {
	return &Snapshot{
		Status:      StatusLoading,
		Generation:  generation,
		ProfileID:   profileID,
		SelectedDay: selectedDay,
		UpdatedAt:   now,
	}
}

func newFailedSnapshot(generation uint64, profileID string, selectedDay int, notice string, now time.Time) *Snapshot {
	return &Snapshot{
		Status:      StatusFailed,
		Generation:  generation,
		ProfileID:   profileID,
		SelectedDay: selectedDay,
		Notice:      notice,
		UpdatedAt:   now,
	}
}

// dashboardData is the raw result of a full load.
type dashboardData struct {
	profile  *models.Profile
	plans    *models.ActivePlans
	progress []models.ProgressEntry
	weights  []models.WeightEntry
	metrics  *models.DerivedMetrics
}

func newReadySnapshot(
	generation uint64,
	profileID string,
	selectedDay int,
	data dashboardData,
	labeler DateLabeler,
	now time.Time,
) *Snapshot {
	s := &Snapshot{
		Status:      StatusReady,
		Generation:  generation,
		ProfileID:   profileID,
		Profile:     data.profile,
		SelectedDay: selectedDay,
		UpdatedAt:   now,
	}
	if data.plans != nil {
		s.WorkoutPlan = data.plans.WorkoutPlan
		s.NutritionPlan = data.plans.NutritionPlan
	}
	s.HasPlans = s.WorkoutPlan != nil || s.NutritionPlan != nil

	s.applyProgress(data.progress)
	s.applyWeight(data.weights, data.metrics, labeler)
	s.applySelectedDay()
	return s
}

// clone returns a shallow copy to build the next snapshot from. Shared maps and
// slices are treated as read-only, so sharing them is fine.
func (s *Snapshot) clone(now time.Time) *Snapshot {
	next := *s
	next.Notice = ""
	next.UpdatedAt = now
	return &next
}

func (s *Snapshot) withProgress(entries []models.ProgressEntry, now time.Time) *Snapshot {
	next := s.clone(now)
	next.applyProgress(entries)
	next.applySelectedDay()
	return next
}

func (s *Snapshot) withWeight(
	entries []models.WeightEntry,
	derived *models.DerivedMetrics,
	labeler DateLabeler,
	now time.Time,
) *Snapshot {
	next := s.clone(now)
	next.applyWeight(entries, derived, labeler)
	return next
}

func (s *Snapshot) withSelectedDay(day int, now time.Time) *Snapshot {
	next := s.clone(now)
	next.Notice = s.Notice
	next.SelectedDay = day
	next.applySelectedDay()
	return next
}

func (s *Snapshot) withNotice(notice string, now time.Time) *Snapshot {
	next := s.clone(now)
	next.Notice = notice
	return next
}

func (s *Snapshot) applyProgress(entries []models.ProgressEntry) {
	s.progress = NewProgressIndex(entries)
	s.DayProgress = AllDayProgress(s.WorkoutPlan, s.progress)
	s.PlanProgress = PlanProgress(s.WorkoutPlan, s.progress)
}

func (s *Snapshot) applyWeight(entries []models.WeightEntry, derived *models.DerivedMetrics, labeler DateLabeler) {
	s.WeightSeries = BuildWeightSeries(entries, labeler)
	s.Metrics = derived

	stats := Stats{}
	if s.Profile != nil {
		stats.CurrentWeight = s.Profile.Weight
	}
	if latest, ok := s.WeightSeries.Latest(); ok {
		stats.CurrentWeight = latest.Weight
	}
	if derived != nil {
		stats.BMR = int(math.Round(derived.BMR))
		stats.TDEE = int(math.Round(derived.TDEE))
	}
	if s.WorkoutPlan != nil {
		stats.PlanDays = s.WorkoutPlan.DurationDays
	}
	s.Stats = stats
}

// applySelectedDay rebuilds the day views. A day outside the plans just renders nothing.
func (s *Snapshot) applySelectedDay() {
	s.SelectedWorkout = nil
	s.SelectedMeal = nil

	if workout, ok := s.WorkoutPlan.Day(s.SelectedDay); ok {
		view := &DayWorkoutView{
			Day:       workout.Day,
			Focus:     workout.Focus,
			Progress:  DayProgress(workout, s.progress),
			Exercises: make([]ExerciseView, 0, len(workout.Exercises)),
		}
		for _, ex := range workout.Exercises {
			view.Exercises = append(view.Exercises, ExerciseView{
				Exercise:  ex,
				Completed: s.progress.IsCompleted(ex.Name, workout.Day),
			})
		}
		s.SelectedWorkout = view
	}

	if meal, ok := s.NutritionPlan.Day(s.SelectedDay); ok {
		s.SelectedMeal = &meal
	}
}
