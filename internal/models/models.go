package models

import (
	"strings"
	"time"
)

// TaskStatus enumerates the completion states of a task.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not-started"
	StatusInProgress TaskStatus = "in-progress"
	StatusComplete   TaskStatus = "complete"
)

// Uncategorized is the bucket used when a category level is blank.
const Uncategorized = "uncategorized"

// DateLayout is the storage and import format for task dates.
const DateLayout = "2006-01-02"

// Task represents a single schedulable work item (a Gantt leaf).
type Task struct {
	ID              string
	Name            string
	Resource        string
	Start           time.Time
	End             time.Time
	Duration        *int // days; derived from Start/End when nil
	PercentComplete int
	Dependency      string
	Major           string
	Middle          string
	Minor           string
	Rank            int
	UpdatedAt       time.Time
}

// CategoryPath is the major/middle/minor classification of a task.
type CategoryPath struct {
	Major  string
	Middle string
	Minor  string
}

// ClampPercent constrains p to 0..100.
func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// StatusFromPercent derives a status: 0 is not started, 100 is complete,
// anything between is in progress.
func StatusFromPercent(p int) TaskStatus {
	switch p = ClampPercent(p); {
	case p == 0:
		return StatusNotStarted
	case p == 100:
		return StatusComplete
	default:
		return StatusInProgress
	}
}

// ParseStatus accepts the canonical names plus a few short aliases.
func ParseStatus(s string) (TaskStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "not-started", "notstarted", "todo", "pending":
		return StatusNotStarted, true
	case "in-progress", "inprogress", "active", "wip":
		return StatusInProgress, true
	case "complete", "completed", "done":
		return StatusComplete, true
	}
	return "", false
}

func (t Task) Status() TaskStatus {
	return StatusFromPercent(t.PercentComplete)
}

// HasDates reports whether both dates are set.
func (t Task) HasDates() bool {
	return !t.Start.IsZero() && !t.End.IsZero()
}

// DurationDays returns the explicit duration or the inclusive day count.
func (t Task) DurationDays() int {
	if t.Duration != nil {
		return *t.Duration
	}
	if !t.HasDates() || t.End.Before(t.Start) {
		return 0
	}
	return int(t.End.Sub(t.Start).Hours()/24) + 1
}

// CategoryPath returns the task's path with blanks replaced by Uncategorized.
func (t Task) CategoryPath() CategoryPath {
	return CategoryPath{
		Major:  categoryOrDefault(t.Major),
		Middle: categoryOrDefault(t.Middle),
		Minor:  categoryOrDefault(t.Minor),
	}
}

func categoryOrDefault(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Uncategorized
	}
	return s
}

// ValidTasks drops tasks that cannot be placed on a timeline.
func ValidTasks(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.HasDates() || t.End.Before(t.Start) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TaskUpdate is a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Name            *string
	Resource        *string
	Start           *time.Time
	End             *time.Time
	Duration        *int
	PercentComplete *int
	Dependency      *string
	Major           *string
	Middle          *string
	Minor           *string
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Name == nil && u.Resource == nil && u.Start == nil && u.End == nil &&
		u.Duration == nil && u.PercentComplete == nil && u.Dependency == nil &&
		u.Major == nil && u.Middle == nil && u.Minor == nil
}

// Apply returns a copy of t with the update applied.
func (u TaskUpdate) Apply(t Task) Task {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Resource != nil {
		t.Resource = *u.Resource
	}
	if u.Start != nil {
		t.Start = *u.Start
	}
	if u.End != nil {
		t.End = *u.End
	}
	if u.Duration != nil {
		d := *u.Duration
		t.Duration = &d
	}
	if u.PercentComplete != nil {
		t.PercentComplete = ClampPercent(*u.PercentComplete)
	}
	if u.Dependency != nil {
		t.Dependency = *u.Dependency
	}
	if u.Major != nil {
		t.Major = *u.Major
	}
	if u.Middle != nil {
		t.Middle = *u.Middle
	}
	if u.Minor != nil {
		t.Minor = *u.Minor
	}
	return t
}
