package dashboard

import (
	"sort"
	"time"

	"github.com/2beens/familyfit/internal/models"
)

type WeightPoint struct {
	Date     string    `json:"date"`
	Weight   float64   `json:"weight"`
	LoggedAt time.Time `json:"loggedAt"`
}

// WeightSeries is the chronological weight chart data. Gaps between entries are
// kept as they are, nothing is interpolated.
type WeightSeries struct {
	Points []WeightPoint `json:"points"`
}

func BuildWeightSeries(entries []models.WeightEntry, labeler DateLabeler) WeightSeries {
	sorted := make([]models.WeightEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LoggedAt.Before(sorted[j].LoggedAt.Time)
	})

	points := make([]WeightPoint, 0, len(sorted))
	for _, entry := range sorted {
		points = append(points, WeightPoint{
			Date:     labeler.Label(entry.LoggedAt.Time),
			Weight:   entry.Weight,
			LoggedAt: entry.LoggedAt.Time,
		})
	}

	return WeightSeries{Points: points}
}

// IsEmpty is true only when there is nothing to chart; a single point is a valid series.
func (ws WeightSeries) IsEmpty() bool {
	return len(ws.Points) == 0
}

func (ws WeightSeries) Len() int {
	return len(ws.Points)
}

func (ws WeightSeries) Latest() (WeightPoint, bool) {
	if ws.IsEmpty() {
		return WeightPoint{}, false
	}
	return ws.Points[len(ws.Points)-1], true
}
