package models

type Profile struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Weight     float64  `json:"weight"`
	Height     float64  `json:"height"`
	Gender     string   `json:"gender"`
	Conditions []string `json:"conditions"`
	Goals      []string `json:"goals"`
}

// DerivedMetrics are computed by the backend from the latest profile and weight state.
type DerivedMetrics struct {
	BMR  float64 `json:"bmr"`
	TDEE float64 `json:"tdee"`
}
