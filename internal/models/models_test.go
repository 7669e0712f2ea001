package models

import (
	"testing"
	"time"
)

func TestStatusFromPercent(t *testing.T) {
	cases := []struct {
		in   int
		want TaskStatus
	}{
		{-5, StatusNotStarted},
		{0, StatusNotStarted},
		{1, StatusInProgress},
		{99, StatusInProgress},
		{100, StatusComplete},
		{140, StatusComplete},
	}
	for _, c := range cases {
		if got := StatusFromPercent(c.in); got != c.want {
			t.Fatalf("StatusFromPercent(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCategoryPathDefaults(t *testing.T) {
	task := Task{Major: "Network", Middle: "  "}
	path := task.CategoryPath()
	if path.Major != "Network" || path.Middle != Uncategorized || path.Minor != Uncategorized {
		t.Fatalf("unexpected path %+v", path)
	}
}

func TestDurationDays(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	task := Task{Start: start, End: start.AddDate(0, 0, 4)}
	if got := task.DurationDays(); got != 5 {
		t.Fatalf("expected inclusive 5 days, got %d", got)
	}
	explicit := 3
	task.Duration = &explicit
	if got := task.DurationDays(); got != 3 {
		t.Fatalf("expected explicit 3 days, got %d", got)
	}
	if got := (Task{}).DurationDays(); got != 0 {
		t.Fatalf("expected 0 for undated task, got %d", got)
	}
}

func TestValidTasksDropsUndatedAndInverted(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: "ok", Start: day, End: day},
		{ID: "no-end", Start: day},
		{ID: "inverted", Start: day, End: day.AddDate(0, 0, -1)},
	}
	got := ValidTasks(tasks)
	if len(got) != 1 || got[0].ID != "ok" {
		t.Fatalf("expected only ok task, got %+v", got)
	}
}

func TestTaskUpdateApply(t *testing.T) {
	name := "Porting"
	pct := 150
	u := TaskUpdate{Name: &name, PercentComplete: &pct}
	if u.IsEmpty() {
		t.Fatalf("expected non-empty update")
	}
	got := u.Apply(Task{ID: "T1", Name: "old", Resource: "kim"})
	if got.Name != "Porting" || got.PercentComplete != 100 || got.Resource != "kim" {
		t.Fatalf("unexpected result %+v", got)
	}
	if !(TaskUpdate{}).IsEmpty() {
		t.Fatalf("expected zero update to be empty")
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseStatus("Done"); !ok || s != StatusComplete {
		t.Fatalf("ParseStatus(Done) = %q, %v", s, ok)
	}
	if _, ok := ParseStatus("bogus"); ok {
		t.Fatalf("expected bogus status to be rejected")
	}
}
