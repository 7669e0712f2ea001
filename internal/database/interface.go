package database

import (
	"context"

	"github.com/akyairhashvil/mvno/internal/models"
)

// TaskSource loads the tasks a chart is built from.
type TaskSource interface {
	ListTasks(ctx context.Context, q *TaskQuery) ([]models.Task, error)
	GetTask(ctx context.Context, id string) (models.Task, error)
}

// TaskSink persists task edits.
type TaskSink interface {
	UpdateTask(ctx context.Context, id string, upd models.TaskUpdate) error
	UpsertTask(ctx context.Context, t models.Task) error
	DeleteTask(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, tasks []models.Task) error
}

// SettingsStore keeps small view-state values.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Store combines all store interfaces.
//
//go:generate mockgen -source=interface.go -destination=mocks/mock_store.go -package=mocks
type Store interface {
	TaskSource
	TaskSink
	SettingsStore
}

var _ Store = (*Database)(nil)
