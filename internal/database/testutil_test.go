package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/testutil"
	"github.com/jonboulle/clockwork"
)

func setupTestDB(t *testing.T, ctx context.Context) *Database {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	db, err := Open(ctx, dbPath, Options{Clock: clockwork.NewFakeClockAt(testutil.Day(2026, 3, 4))})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	return db
}

// TestDataBuilder seeds a fresh database.
type TestDataBuilder struct {
	t     *testing.T
	ctx   context.Context
	db    *Database
	tasks []models.Task
}

func NewTestDataBuilder(t *testing.T) *TestDataBuilder {
	t.Helper()
	ctx := context.Background()
	return &TestDataBuilder{t: t, ctx: ctx, db: setupTestDB(t, ctx)}
}

func (b *TestDataBuilder) WithTasks(tasks ...models.Task) *TestDataBuilder {
	b.t.Helper()
	for _, task := range tasks {
		if err := b.db.UpsertTask(b.ctx, task); err != nil {
			b.t.Fatalf("UpsertTask(%s) failed: %v", task.ID, err)
		}
		b.tasks = append(b.tasks, task)
	}
	return b
}

func (b *TestDataBuilder) WithScenario() *TestDataBuilder {
	return b.WithTasks(testutil.ScenarioTasks()...)
}

func (b *TestDataBuilder) Build() *Database {
	return b.db
}
