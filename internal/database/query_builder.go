package database

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/mvno/internal/models"
)

// TaskQuery builds a SELECT over the tasks table.
type TaskQuery struct {
	filters []string
	args    []any
	orderBy string
	limit   int
}

func NewTaskQuery() *TaskQuery {
	return &TaskQuery{orderBy: "rank ASC, id ASC"}
}

func (q *TaskQuery) Where(filter string, args ...any) *TaskQuery {
	q.filters = append(q.filters, filter)
	q.args = append(q.args, args...)
	return q
}

func (q *TaskQuery) WhereMajor(major string) *TaskQuery {
	return q.Where("major = ?", major)
}

func (q *TaskQuery) WhereResource(resource string) *TaskQuery {
	return q.Where("resource LIKE ?", "%"+resource+"%")
}

// WhereStatus filters on the status derived from percent_complete.
func (q *TaskQuery) WhereStatus(s models.TaskStatus) *TaskQuery {
	switch s {
	case models.StatusNotStarted:
		return q.Where("percent_complete <= 0")
	case models.StatusComplete:
		return q.Where("percent_complete >= 100")
	case models.StatusInProgress:
		return q.Where("percent_complete > 0 AND percent_complete < 100")
	}
	return q
}

// WhereText matches any of the words in name, id, resource or categories.
func (q *TaskQuery) WhereText(words ...string) *TaskQuery {
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		like := "%" + w + "%"
		q.Where("(name LIKE ? OR id LIKE ? OR resource LIKE ? OR major LIKE ? OR middle LIKE ? OR minor LIKE ?)",
			like, like, like, like, like, like)
	}
	return q
}

// WhereDated keeps only tasks with both dates set.
func (q *TaskQuery) WhereDated() *TaskQuery {
	return q.Where("start_date IS NOT NULL AND end_date IS NOT NULL")
}

func (q *TaskQuery) OrderBy(orderBy string) *TaskQuery {
	q.orderBy = orderBy
	return q
}

func (q *TaskQuery) Limit(limit int) *TaskQuery {
	q.limit = limit
	return q
}

func (q *TaskQuery) Build() (string, []any) {
	query := fmt.Sprintf("SELECT %s FROM tasks", taskColumns)
	if len(q.filters) > 0 {
		query += " WHERE " + strings.Join(q.filters, " AND ")
	}
	if q.orderBy != "" {
		query += " ORDER BY " + q.orderBy
	}
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
	}
	return query, q.args
}
