package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/models"
)

// FormatPercent renders a completion value as "42%".
func FormatPercent(p int) string {
	return fmt.Sprintf("%d%%", models.ClampPercent(p))
}

// FormatDateRange formats inclusive task dates, e.g. "2026-03-02 → 2026-03-20 (19d)".
func FormatDateRange(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return "no dates"
	}
	days := int(gantt.DateOf(end).Sub(gantt.DateOf(start)).Hours()/24) + 1
	return fmt.Sprintf("%s → %s (%dd)", start.Format(models.DateLayout), end.Format(models.DateLayout), days)
}

// FormatStats is the footer summary line.
func FormatStats(s gantt.Stats) string {
	if s.Total == 0 {
		return "No tasks"
	}
	parts := []string{
		fmt.Sprintf("%d tasks", s.Total),
		fmt.Sprintf("%d done", s.Complete),
		fmt.Sprintf("%d active", s.InProgress),
		fmt.Sprintf("%d todo", s.NotStarted),
		"avg " + FormatPercent(s.AveragePercent),
	}
	return strings.Join(parts, " · ")
}
