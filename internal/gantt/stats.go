package gantt

import (
	"math"

	"github.com/akyairhashvil/mvno/internal/models"
)

// Stats counts tasks by status.
type Stats struct {
	Total          int
	NotStarted     int
	InProgress     int
	Complete       int
	AveragePercent int
}

// CompletionRate is the share of complete tasks in 0..1.
func (s Stats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Complete) / float64(s.Total)
}

// CategoryStats is Stats for one major category.
type CategoryStats struct {
	Category string
	Stats
}

// Summarize computes overall and per-major-category statistics. Categories
// are listed in first-seen order.
func Summarize(tasks []models.Task) (Stats, []CategoryStats) {
	var total Stats
	var totalPct int
	var cats []CategoryStats
	catPct := make(map[string]int)
	catIdx := make(map[string]int)

	for _, t := range tasks {
		major := t.CategoryPath().Major
		idx, ok := catIdx[major]
		if !ok {
			idx = len(cats)
			catIdx[major] = idx
			cats = append(cats, CategoryStats{Category: major})
		}
		pct := models.ClampPercent(t.PercentComplete)
		count(&total, t.Status())
		count(&cats[idx].Stats, t.Status())
		totalPct += pct
		catPct[major] += pct
	}
	total.AveragePercent = mean(totalPct, total.Total)
	for i := range cats {
		cats[i].AveragePercent = mean(catPct[cats[i].Category], cats[i].Total)
	}
	return total, cats
}

func count(s *Stats, status models.TaskStatus) {
	s.Total++
	switch status {
	case models.StatusComplete:
		s.Complete++
	case models.StatusInProgress:
		s.InProgress++
	default:
		s.NotStarted++
	}
}

func mean(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
