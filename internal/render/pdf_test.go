package render

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/testutil"
)

func TestExportPDF(t *testing.T) {
	r := newTestRenderer(testutil.Day(2026, 3, 4))
	var buf bytes.Buffer
	err := r.ExportPDF(&buf, scenarioRows(t), PDFOptions{Title: "Roadmap", Unit: gantt.UnitMonth})
	if err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestExportPDFPaginates(t *testing.T) {
	var tasks []models.Task
	for i := 0; i < 60; i++ {
		tasks = append(tasks, testutil.NewTask().WithCategory("A", "M", "X").WithName(fmt.Sprintf("task %d", i)).Build())
	}
	tree := gantt.BuildTree(tasks)
	s := gantt.NewExpansionState()
	s.SetTreeData(tree)
	s.ExpandAll()

	r := newTestRenderer(testutil.Day(2026, 3, 4))
	var buf bytes.Buffer
	if err := r.ExportPDF(&buf, gantt.Flatten(tree, s), PDFOptions{Title: "Many", Unit: gantt.UnitWeek}); err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}
	out := buf.Bytes()
	pages := bytes.Count(out, []byte("/Type /Page")) - bytes.Count(out, []byte("/Type /Pages"))
	if pages < 2 {
		t.Fatalf("expected several pages, got %d", pages)
	}
}

func TestExportPDFNothingToExport(t *testing.T) {
	r := newTestRenderer(testutil.Day(2026, 3, 4))
	var buf bytes.Buffer
	if err := r.ExportPDF(&buf, nil, PDFOptions{}); err == nil {
		t.Fatalf("expected error for empty rows")
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written")
	}
}
