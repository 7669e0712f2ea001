package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/akyairhashvil/mvno/internal/models"
	"go.trai.ch/zerr"
)

// ListTasks returns the tasks matching q, or every task when q is nil.
func (d *Database) ListTasks(ctx context.Context, q *TaskQuery) ([]models.Task, error) {
	if q == nil {
		q = NewTaskQuery()
	}
	query, args := q.Build()
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapTaskErr("list", "", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, wrapTaskErr("list", "", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, wrapTaskErr("list", "", rows.Err())
}

func (d *Database) GetTask(ctx context.Context, id string) (models.Task, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	row := d.DB.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, wrapTaskErr("get", id, ErrTaskNotFound)
	}
	return t, wrapTaskErr("get", id, err)
}

// CountTasks returns the number of stored tasks.
func (d *Database) CountTasks(ctx context.Context) (int, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var n int
	err := d.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks").Scan(&n)
	return n, wrapTaskErr("count", "", err)
}

const upsertTaskSQL = `INSERT INTO tasks (id, name, resource, start_date, end_date, duration, percent_complete, dependency, major, middle, minor, rank, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		resource = excluded.resource,
		start_date = excluded.start_date,
		end_date = excluded.end_date,
		duration = excluded.duration,
		percent_complete = excluded.percent_complete,
		dependency = excluded.dependency,
		major = excluded.major,
		middle = excluded.middle,
		minor = excluded.minor,
		rank = excluded.rank,
		updated_at = excluded.updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (d *Database) upsert(ctx context.Context, ex execer, t models.Task) error {
	t.ID = strings.TrimSpace(t.ID)
	if t.ID == "" {
		return zerr.Wrap(ErrInvalidTask, "task id is empty")
	}
	_, err := ex.ExecContext(ctx, upsertTaskSQL,
		t.ID, t.Name, t.Resource, dateArg(t.Start), dateArg(t.End), toNullableArg(t.Duration),
		models.ClampPercent(t.PercentComplete), t.Dependency, t.Major, t.Middle, t.Minor, t.Rank,
		d.clock.Now().UTC())
	return err
}

// UpsertTask inserts t or replaces the stored task with the same id.
func (d *Database) UpsertTask(ctx context.Context, t models.Task) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	return wrapTaskErr("upsert", t.ID, d.upsert(ctx, d.DB, t))
}

// UpdateTask writes the non-nil fields of upd. An empty update only checks
// that the task exists.
func (d *Database) UpdateTask(ctx context.Context, id string, upd models.TaskUpdate) error {
	if upd.IsEmpty() {
		_, err := d.GetTask(ctx, id)
		return err
	}
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Resource != nil {
		set("resource", *upd.Resource)
	}
	if upd.Start != nil {
		set("start_date", dateArg(*upd.Start))
	}
	if upd.End != nil {
		set("end_date", dateArg(*upd.End))
	}
	if upd.Duration != nil {
		set("duration", *upd.Duration)
	}
	if upd.PercentComplete != nil {
		set("percent_complete", models.ClampPercent(*upd.PercentComplete))
	}
	if upd.Dependency != nil {
		set("dependency", *upd.Dependency)
	}
	if upd.Major != nil {
		set("major", *upd.Major)
	}
	if upd.Middle != nil {
		set("middle", *upd.Middle)
	}
	if upd.Minor != nil {
		set("minor", *upd.Minor)
	}
	set("updated_at", d.clock.Now().UTC())
	args = append(args, id)

	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	res, err := d.DB.ExecContext(ctx, "UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return wrapTaskErr("update", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapTaskErr("update", id, err)
	}
	if n == 0 {
		return wrapTaskErr("update", id, ErrTaskNotFound)
	}
	d.logger.Debug("task updated", "id", id, "fields", len(sets)-1)
	return nil
}

func (d *Database) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	res, err := d.DB.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return wrapTaskErr("delete", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return wrapTaskErr("delete", id, ErrTaskNotFound)
	}
	return nil
}

// ReplaceAll swaps the whole task set in one transaction. Tasks without a
// rank keep their input order.
func (d *Database) ReplaceAll(ctx context.Context, tasks []models.Task) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
			return err
		}
		return d.insertAll(ctx, tx, tasks, 0)
	})
	if err != nil {
		return wrapTaskErr("replace", "", err)
	}
	d.logger.Info("tasks replaced", "count", len(tasks))
	return nil
}

// MergeTasks upserts tasks without touching the others. An unranked task
// keeps its stored rank, or is placed after every stored task when new.
func (d *Database) MergeTasks(ctx context.Context, tasks []models.Task) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		var last int
		if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(rank), 0) FROM tasks").Scan(&last); err != nil {
			return zerr.Wrap(err, "read max rank")
		}
		ranked := make([]models.Task, len(tasks))
		for i, t := range tasks {
			if t.Rank == 0 {
				err := tx.QueryRowContext(ctx, "SELECT rank FROM tasks WHERE id = ?", t.ID).Scan(&t.Rank)
				if err != nil && !errors.Is(err, sql.ErrNoRows) {
					return zerr.With(zerr.Wrap(err, "read rank"), "task", t.ID)
				}
			}
			ranked[i] = t
		}
		return d.insertAll(ctx, tx, ranked, last)
	})
	return wrapTaskErr("merge", "", err)
}

// insertAll upserts tasks in order. Unranked tasks are numbered from
// after+1 in input order.
func (d *Database) insertAll(ctx context.Context, tx *sql.Tx, tasks []models.Task, after int) error {
	for _, t := range tasks {
		if t.Rank == 0 {
			after++
			t.Rank = after
		}
		if err := d.upsert(ctx, tx, t); err != nil {
			return zerr.With(err, "task", t.ID)
		}
	}
	return nil
}
