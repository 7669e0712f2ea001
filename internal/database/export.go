package database

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/akyairhashvil/mvno/internal/models"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Format is an export/import encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", zerr.With(zerr.Wrap(ErrImportFormat, "export"), "format", s)
}

// FormatForPath guesses the format from a file extension.
func FormatForPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// ExportTask is the serialized form of a task.
type ExportTask struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Resource        string `json:"resource,omitempty" yaml:"resource,omitempty"`
	Start           string `json:"start,omitempty" yaml:"start,omitempty"`
	End             string `json:"end,omitempty" yaml:"end,omitempty"`
	Duration        *int   `json:"duration,omitempty" yaml:"duration,omitempty"`
	PercentComplete int    `json:"percent_complete" yaml:"percent_complete"`
	Dependency      string `json:"dependency,omitempty" yaml:"dependency,omitempty"`
	Major           string `json:"major,omitempty" yaml:"major,omitempty"`
	Middle          string `json:"middle,omitempty" yaml:"middle,omitempty"`
	Minor           string `json:"minor,omitempty" yaml:"minor,omitempty"`
	Rank            int    `json:"rank,omitempty" yaml:"rank,omitempty"`
}

// TaskExport is a complete export document.
type TaskExport struct {
	Version    int          `json:"version" yaml:"version"`
	ExportedAt string       `json:"exported_at" yaml:"exported_at"`
	Tasks      []ExportTask `json:"tasks" yaml:"tasks"`
}

const exportVersion = 1

func ToExportTask(t models.Task) ExportTask {
	e := ExportTask{
		ID:              t.ID,
		Name:            t.Name,
		Resource:        t.Resource,
		Duration:        t.Duration,
		PercentComplete: t.PercentComplete,
		Dependency:      t.Dependency,
		Major:           t.Major,
		Middle:          t.Middle,
		Minor:           t.Minor,
		Rank:            t.Rank,
	}
	if !t.Start.IsZero() {
		e.Start = t.Start.Format(models.DateLayout)
	}
	if !t.End.IsZero() {
		e.End = t.End.Format(models.DateLayout)
	}
	return e
}

// Task converts back to the model. Unparseable dates become zero and the
// task is later dropped by the validation filter rather than failing the
// whole import.
func (e ExportTask) Task() models.Task {
	t := models.Task{
		ID:              strings.TrimSpace(e.ID),
		Name:            e.Name,
		Resource:        e.Resource,
		Duration:        e.Duration,
		PercentComplete: models.ClampPercent(e.PercentComplete),
		Dependency:      e.Dependency,
		Major:           e.Major,
		Middle:          e.Middle,
		Minor:           e.Minor,
		Rank:            e.Rank,
	}
	if s, err := time.Parse(models.DateLayout, strings.TrimSpace(e.Start)); err == nil {
		t.Start = s
	}
	if s, err := time.Parse(models.DateLayout, strings.TrimSpace(e.End)); err == nil {
		t.End = s
	}
	return t
}

// NewTaskExport wraps tasks in an export document stamped with now.
func NewTaskExport(tasks []models.Task, now time.Time) TaskExport {
	doc := TaskExport{
		Version:    exportVersion,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Tasks:      make([]ExportTask, 0, len(tasks)),
	}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, ToExportTask(t))
	}
	return doc
}

// Encode serializes the document.
func (doc TaskExport) Encode(f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, zerr.Wrap(err, "encode yaml export")
		}
		if err := enc.Close(); err != nil {
			return nil, zerr.Wrap(err, "encode yaml export")
		}
		return buf.Bytes(), nil
	case FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, zerr.Wrap(err, "encode json export")
		}
		return out, nil
	}
	return nil, zerr.With(zerr.Wrap(ErrImportFormat, "export"), "format", string(f))
}

// DecodeTaskExport parses an export document. A bare list of tasks is also
// accepted.
func DecodeTaskExport(payload []byte, f Format) (TaskExport, error) {
	var doc TaskExport
	var list []ExportTask
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(payload, &doc); err != nil {
			if lerr := yaml.Unmarshal(payload, &list); lerr != nil {
				return TaskExport{}, zerr.Wrap(err, "decode yaml import")
			}
			doc.Tasks = list
		}
	case FormatJSON:
		trimmed := bytes.TrimSpace(payload)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return TaskExport{}, zerr.Wrap(err, "decode json import")
			}
			doc.Tasks = list
		} else if err := json.Unmarshal(trimmed, &doc); err != nil {
			return TaskExport{}, zerr.Wrap(err, "decode json import")
		}
	default:
		return TaskExport{}, zerr.With(zerr.Wrap(ErrImportFormat, "export"), "format", string(f))
	}
	return doc, nil
}

// Models converts every exported task.
func (doc TaskExport) Models() []models.Task {
	out := make([]models.Task, 0, len(doc.Tasks))
	for _, e := range doc.Tasks {
		out = append(out, e.Task())
	}
	return out
}

// ExportTasks encodes every stored task.
func (d *Database) ExportTasks(ctx context.Context, f Format) ([]byte, error) {
	tasks, err := d.ListTasks(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewTaskExport(tasks, d.clock.Now()).Encode(f)
}

// ImportTasks decodes payload and stores its tasks. With replace the
// existing set is dropped first; otherwise tasks are merged by id. It
// returns the number of tasks written.
func (d *Database) ImportTasks(ctx context.Context, payload []byte, f Format, replace bool) (int, error) {
	doc, err := DecodeTaskExport(payload, f)
	if err != nil {
		return 0, err
	}
	tasks := doc.Models()
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != "" {
			kept = append(kept, t)
		}
	}
	if skipped := len(tasks) - len(kept); skipped > 0 {
		d.logger.Warn("import skipped tasks without id", "count", skipped)
	}
	if replace {
		err = d.ReplaceAll(ctx, kept)
	} else {
		err = d.MergeTasks(ctx, kept)
	}
	if err != nil {
		return 0, err
	}
	return len(kept), nil
}
