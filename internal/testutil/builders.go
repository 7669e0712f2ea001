package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/akyairhashvil/mvno/internal/models"
)

var taskSeq atomic.Int64

// Day returns midnight UTC on the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TaskBuilder provides a fluent API for creating test tasks.
type TaskBuilder struct {
	task models.Task
}

func NewTask() *TaskBuilder {
	n := taskSeq.Add(1)
	start := Day(2026, time.March, 2)
	return &TaskBuilder{
		task: models.Task{
			ID:    fmt.Sprintf("T%03d", n),
			Name:  fmt.Sprintf("Task %d", n),
			Start: start,
			End:   start.AddDate(0, 0, 4),
		},
	}
}

func (b *TaskBuilder) WithID(id string) *TaskBuilder {
	b.task.ID = id
	return b
}

func (b *TaskBuilder) WithName(name string) *TaskBuilder {
	b.task.Name = name
	return b
}

func (b *TaskBuilder) WithResource(r string) *TaskBuilder {
	b.task.Resource = r
	return b
}

func (b *TaskBuilder) WithCategory(major, middle, minor string) *TaskBuilder {
	b.task.Major, b.task.Middle, b.task.Minor = major, middle, minor
	return b
}

func (b *TaskBuilder) WithPercent(p int) *TaskBuilder {
	b.task.PercentComplete = p
	return b
}

func (b *TaskBuilder) WithDates(start, end time.Time) *TaskBuilder {
	b.task.Start, b.task.End = start, end
	return b
}

func (b *TaskBuilder) WithDependency(id string) *TaskBuilder {
	b.task.Dependency = id
	return b
}

func (b *TaskBuilder) Undated() *TaskBuilder {
	b.task.Start, b.task.End = time.Time{}, time.Time{}
	return b
}

func (b *TaskBuilder) Build() models.Task {
	return b.task
}

// ScenarioTasks is the four-task A/M1/X + A/M2/Y fixture used across tests.
func ScenarioTasks() []models.Task {
	return []models.Task{
		NewTask().WithID("x1").WithCategory("A", "M1", "X").WithPercent(0).Build(),
		NewTask().WithID("x2").WithCategory("A", "M1", "X").WithPercent(100).Build(),
		NewTask().WithID("y1").WithCategory("A", "M2", "Y").WithPercent(50).Build(),
		NewTask().WithID("y2").WithCategory("A", "M2", "Y").WithPercent(50).Build(),
	}
}
