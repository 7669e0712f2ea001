package database

import (
	"database/sql"
	"strings"
	"time"

	"github.com/akyairhashvil/mvno/internal/models"
)

// nullableString converts a string to sql.NullString for optional fields.
// Empty strings are treated as NULL.
func nullableString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// toNullableArg converts a pointer to a value suitable for SQL args.
// Returns nil if pointer is nil, otherwise returns the dereferenced value.
func toNullableArg[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

// dateArg stores a date as YYYY-MM-DD, or NULL when unset.
func dateArg(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(models.DateLayout), Valid: true}
}

func parseDate(s sql.NullString) time.Time {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return time.Time{}
	}
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(s.String))
	if err != nil {
		return time.Time{}
	}
	return t
}

type rowScanner interface {
	Scan(dest ...any) error
}

const taskColumns = "id, name, resource, start_date, end_date, duration, percent_complete, dependency, major, middle, minor, rank, updated_at"

func scanTask(r rowScanner) (models.Task, error) {
	var (
		t          models.Task
		start, end sql.NullString
		duration   sql.NullInt64
		updated    sql.NullTime
	)
	err := r.Scan(&t.ID, &t.Name, &t.Resource, &start, &end, &duration,
		&t.PercentComplete, &t.Dependency, &t.Major, &t.Middle, &t.Minor, &t.Rank, &updated)
	if err != nil {
		return models.Task{}, err
	}
	t.Start = parseDate(start)
	t.End = parseDate(end)
	if duration.Valid {
		d := int(duration.Int64)
		t.Duration = &d
	}
	if updated.Valid {
		t.UpdatedAt = updated.Time
	}
	return t, nil
}
