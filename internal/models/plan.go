package models

import "fmt"

type Exercise struct {
	Name         string     `json:"name"`
	Sets         FlexString `json:"sets"`
	Reps         FlexString `json:"reps"`
	Rest         FlexString `json:"rest"`
	Instructions string     `json:"instructions"`
}

type DailyWorkout struct {
	Day       int        `json:"day"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

type WorkoutPlan struct {
	ID            string         `json:"id"`
	ProfileID     string         `json:"profile_id"`
	DurationDays  int            `json:"duration_days"`
	DailyWorkouts []DailyWorkout `json:"daily_workouts"`
	CreatedAt     Timestamp      `json:"created_at"`
}

// Day returns the workout for the given plan day, if the plan has one.
func (p *WorkoutPlan) Day(day int) (DailyWorkout, bool) {
	if p == nil {
		return DailyWorkout{}, false
	}
	for _, w := range p.DailyWorkouts {
		if w.Day == day {
			return w, true
		}
	}
	return DailyWorkout{}, false
}

type DailyMeal struct {
	Day           int      `json:"day"`
	TotalCalories float64  `json:"total_calories"`
	Protein       float64  `json:"protein"`
	Carbs         float64  `json:"carbs"`
	Fat           float64  `json:"fat"`
	Breakfast     string   `json:"breakfast"`
	Lunch         string   `json:"lunch"`
	Dinner        string   `json:"dinner"`
	Snacks        []string `json:"snacks"`
}

type NutritionPlan struct {
	ID         string      `json:"id"`
	ProfileID  string      `json:"profile_id"`
	DailyMeals []DailyMeal `json:"daily_meals"`
	CreatedAt  Timestamp   `json:"created_at"`
}

func (p *NutritionPlan) Day(day int) (DailyMeal, bool) {
	if p == nil {
		return DailyMeal{}, false
	}
	for _, m := range p.DailyMeals {
		if m.Day == day {
			return m, true
		}
	}
	return DailyMeal{}, false
}

// ActivePlans is the latest generated plan pair of a profile. Either plan can be missing.
type ActivePlans struct {
	WorkoutPlan   *WorkoutPlan   `json:"workout_plan"`
	NutritionPlan *NutritionPlan `json:"nutrition_plan"`
}

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

func (i Intensity) IsValid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	default:
		return false
	}
}

const (
	MinPlanDurationDays     = 1
	MaxPlanDurationDays     = 90
	DefaultPlanDurationDays = 7
)

// PlanRequest asks the backend to generate a new workout and/or nutrition plan.
type PlanRequest struct {
	ProfileID        string    `json:"profile_id"`
	DurationDays     int       `json:"duration_days"`
	WorkoutIntensity Intensity `json:"workout_intensity"`
	IncludeWorkout   bool      `json:"include_workout"`
	IncludeNutrition bool      `json:"include_nutrition"`
}

// Validate checks the request the same way the plan generator form does.
func (r PlanRequest) Validate() error {
	if r.ProfileID == "" {
		return fmt.Errorf("profile id is empty")
	}
	if r.DurationDays < MinPlanDurationDays || r.DurationDays > MaxPlanDurationDays {
		return fmt.Errorf("duration must be between %d and %d days", MinPlanDurationDays, MaxPlanDurationDays)
	}
	if !r.WorkoutIntensity.IsValid() {
		return fmt.Errorf("invalid workout intensity: %q", r.WorkoutIntensity)
	}
	if !r.IncludeWorkout && !r.IncludeNutrition {
		return fmt.Errorf("at least one of workout or nutrition plan must be included")
	}
	return nil
}
