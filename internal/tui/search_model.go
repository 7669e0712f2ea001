package tui

import (
	"strings"

	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/util"
	"github.com/charmbracelet/bubbles/textinput"
)

// SearchManager holds the live task filter. The query applies while the
// user types; Applied is what stays in effect after the prompt closes.
type SearchManager struct {
	Active  bool
	Input   textinput.Model
	Query   util.SearchQuery
	Applied string
}

func NewSearchManager(input textinput.Model) SearchManager {
	return SearchManager{
		Input: input,
	}
}

// Filter returns the predicate for the current query, or nil when the
// query matches everything.
func (s SearchManager) Filter() func(models.Task) bool {
	return TaskFilter(s.Query)
}

// TaskFilter builds a predicate from a parsed query. Terms of the same kind
// are alternatives; different kinds must all match.
func TaskFilter(q util.SearchQuery) func(models.Task) bool {
	if q.IsEmpty() {
		return nil
	}
	var statuses []models.TaskStatus
	for _, s := range q.Status {
		if st, ok := models.ParseStatus(s); ok {
			statuses = append(statuses, st)
		}
	}
	badStatus := len(q.Status) > 0 && len(statuses) == 0
	return func(t models.Task) bool {
		if badStatus {
			return false
		}
		if len(statuses) > 0 && !matchStatus(t.Status(), statuses) {
			return false
		}
		if len(q.Major) > 0 && !matchFold(t.CategoryPath().Major, q.Major) {
			return false
		}
		if len(q.Resource) > 0 && !util.ContainsFold(t.Resource, q.Resource...) {
			return false
		}
		for _, term := range q.Text {
			if !util.ContainsFold(t.Name, term) && !util.ContainsFold(t.ID, term) &&
				!util.ContainsFold(t.Resource, term) && !util.ContainsFold(t.Major, term) &&
				!util.ContainsFold(t.Middle, term) && !util.ContainsFold(t.Minor, term) {
				return false
			}
		}
		return true
	}
}

func matchStatus(st models.TaskStatus, want []models.TaskStatus) bool {
	for _, w := range want {
		if st == w {
			return true
		}
	}
	return false
}

func matchFold(s string, want []string) bool {
	for _, w := range want {
		if strings.EqualFold(s, w) {
			return true
		}
	}
	return false
}
