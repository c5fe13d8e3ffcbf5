package models

// ProgressEntry records an exercise completion toggle. Entries are never deleted, so the
// same (exercise name, day) pair usually has many entries over time.
type ProgressEntry struct {
	ID           string    `json:"id,omitempty"`
	ProfileID    string    `json:"profile_id"`
	PlanID       string    `json:"plan_id"`
	Day          int       `json:"day"`
	ExerciseName string    `json:"exercise_name"`
	Completed    bool      `json:"completed"`
	Timestamp    Timestamp `json:"timestamp"`
}

type WeightEntry struct {
	ID        string    `json:"id,omitempty"`
	ProfileID string    `json:"profile_id"`
	Weight    float64   `json:"weight"`
	LoggedAt  Timestamp `json:"logged_at"`
}
