package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akyairhashvil/mvno/internal/backup"
	"github.com/akyairhashvil/mvno/internal/database"
	"github.com/akyairhashvil/mvno/internal/testutil"
)

func TestExportTasksKey(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())
	msg, ok := r.run(r.key("X")).(exportDoneMsg)
	if !ok || msg.err != nil {
		t.Fatalf("export failed: %#v", msg)
	}
	if want := filepath.Join(r.dir, "mvno-tasks-20260304-090000.json"); msg.path != want {
		t.Fatalf("path = %q, want %q", msg.path, want)
	}
	data, err := os.ReadFile(msg.path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	doc, err := database.DecodeTaskExport(data, database.FormatJSON)
	if err != nil {
		t.Fatalf("DecodeTaskExport failed: %v", err)
	}
	if len(doc.Tasks) != 4 {
		t.Fatalf("exported %d tasks, want 4", len(doc.Tasks))
	}
	if !strings.Contains(r.m.Message, "mvno-tasks-") {
		t.Fatalf("message = %q", r.m.Message)
	}
}

func TestExportPDFKey(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())
	msg, ok := r.run(r.key("P")).(exportDoneMsg)
	if !ok || msg.err != nil {
		t.Fatalf("pdf export failed: %#v", msg)
	}
	data, err := os.ReadFile(msg.path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("not a PDF: %q", data[:min(len(data), 8)])
	}
}

func TestExportPDFEmptyChart(t *testing.T) {
	r := newDashRig(t, nil)
	msg, ok := r.run(r.key("P")).(exportDoneMsg)
	if !ok || msg.err == nil {
		t.Fatalf("expected an error for an empty chart, got %#v", msg)
	}
	entries, _ := os.ReadDir(r.dir)
	if len(entries) != 0 {
		t.Fatalf("partial report left behind: %v", entries)
	}
	if r.m.err == nil {
		t.Fatalf("expected status error")
	}
}

func TestBackupKey(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())
	r.key("b")
	if r.m.err == nil {
		t.Fatalf("backup without a manager should report an error")
	}

	mgr, err := backup.New(backup.Options{Dir: t.TempDir(), Clock: r.clock})
	if err != nil {
		t.Fatalf("backup.New failed: %v", err)
	}
	r.m.backups = mgr
	r.m.err = nil
	msg, ok := r.run(r.key("b")).(backupDoneMsg)
	if !ok || msg.err != nil || !msg.ran || !msg.manual {
		t.Fatalf("manual backup failed: %#v", msg)
	}
	infos, err := mgr.List()
	if err != nil || len(infos) != 1 {
		t.Fatalf("List = %v, %v", infos, err)
	}
	if !strings.Contains(r.m.Message, infos[0].Name()) {
		t.Fatalf("message = %q", r.m.Message)
	}
}

func TestWriteReportRequiresDir(t *testing.T) {
	if _, err := writeReport("", "x.json", nil); err == nil {
		t.Fatalf("expected an error without a directory")
	}
}
