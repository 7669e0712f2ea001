package database

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/testutil"
	"github.com/akyairhashvil/mvno/internal/util"
)

func TestExportTasksJSON(t *testing.T) {
	ctx := context.Background()
	db := NewTestDataBuilder(t).WithScenario().Build()

	payload, err := db.ExportTasks(ctx, FormatJSON)
	if err != nil {
		t.Fatalf("ExportTasks failed: %v", err)
	}
	var doc TaskExport
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if doc.Version != exportVersion || len(doc.Tasks) != 4 {
		t.Fatalf("unexpected export: version %d, %d tasks", doc.Version, len(doc.Tasks))
	}
	if doc.ExportedAt != "2026-03-04T00:00:00Z" {
		t.Fatalf("exported_at = %q", doc.ExportedAt)
	}
	if doc.Tasks[0].Start != "2026-03-02" || doc.Tasks[0].End != "2026-03-06" {
		t.Fatalf("dates = %s..%s", doc.Tasks[0].Start, doc.Tasks[0].End)
	}
}

func TestExportImportYAML(t *testing.T) {
	ctx := context.Background()
	src := NewTestDataBuilder(t).
		WithScenario().
		WithTasks(testutil.NewTask().WithID("d1").WithDependency("x1").Build()).
		Build()
	if err := src.UpdateTask(ctx, "d1", models.TaskUpdate{Duration: util.Ptr(3)}); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	payload, err := src.ExportTasks(ctx, FormatYAML)
	if err != nil {
		t.Fatalf("ExportTasks failed: %v", err)
	}
	if !strings.Contains(string(payload), "percent_complete: 100") {
		t.Fatalf("yaml output missing fields:\n%s", payload)
	}

	dst := setupTestDB(t, ctx)
	n, err := dst.ImportTasks(ctx, payload, FormatYAML, true)
	if err != nil {
		t.Fatalf("ImportTasks failed: %v", err)
	}
	if n != 5 {
		t.Fatalf("imported %d tasks, want 5", n)
	}
	got, err := dst.GetTask(ctx, "d1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Dependency != "x1" || got.Duration == nil || *got.Duration != 3 {
		t.Fatalf("imported task lost fields: %+v", got)
	}
}

func TestImportBareJSONListMerges(t *testing.T) {
	ctx := context.Background()
	db := NewTestDataBuilder(t).WithScenario().Build()

	payload := []byte(`[
		{"id": "x1", "name": "renamed", "start": "2026-03-02", "end": "2026-03-06", "percent_complete": 20, "major": "A", "middle": "M1", "minor": "X"},
		{"id": "", "name": "no id"},
		{"id": "n1", "name": "new", "start": "not a date", "percent_complete": 250}
	]`)
	n, err := db.ImportTasks(ctx, payload, FormatJSON, false)
	if err != nil {
		t.Fatalf("ImportTasks failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d, want 2", n)
	}
	count, _ := db.CountTasks(ctx)
	if count != 5 {
		t.Fatalf("merge should keep existing tasks, count = %d", count)
	}
	x1, _ := db.GetTask(ctx, "x1")
	if x1.Name != "renamed" || x1.PercentComplete != 20 {
		t.Fatalf("x1 not merged: %+v", x1)
	}
	n1, _ := db.GetTask(ctx, "n1")
	if !n1.Start.IsZero() || n1.PercentComplete != 100 {
		t.Fatalf("n1 = %+v", n1)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	if _, err := db.ImportTasks(ctx, []byte("{not json"), FormatJSON, true); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Fatalf("expected unsupported format")
	}
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]Format{
		"tasks.yaml": FormatYAML,
		"TASKS.YML":  FormatYAML,
		"tasks.json": FormatJSON,
		"tasks":      FormatJSON,
	}
	for path, want := range cases {
		if got := FormatForPath(path); got != want {
			t.Fatalf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}
