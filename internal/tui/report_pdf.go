package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/render"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"
)

// pdfJob is a snapshot of what the chart shows when the export starts.
type pdfJob struct {
	rows    []gantt.Row
	unit    gantt.Unit
	palette render.Palette
	locale  string
	dir     string
	clock   clockwork.Clock
	logger  *slog.Logger
}

// exportPDFCmd writes the visible rows as a PDF Gantt chart into the
// reports directory.
func exportPDFCmd(job pdfJob) tea.Cmd {
	return func() tea.Msg {
		r := render.NewRenderer(job.clock, job.logger)
		r.Palette = job.palette
		r.Locale = job.locale
		name := fmt.Sprintf("mvno-gantt-%s.pdf", job.clock.Now().Format("20060102-150405"))
		path, err := writeReport(job.dir, name, func(w io.Writer) error {
			return r.ExportPDF(w, job.rows, render.PDFOptions{Title: "MVNO Gantt", Unit: job.unit})
		})
		return exportDoneMsg{path: path, err: err}
	}
}

// writeReport creates dir/name and streams fn into it. A failed write
// removes the partial file.
func writeReport(dir, name string, fn func(io.Writer) error) (string, error) {
	if dir == "" {
		return "", zerr.New("no reports directory configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", zerr.With(zerr.Wrap(err, "create reports dir"), "dir", dir)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "create report"), "path", path)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", zerr.With(zerr.Wrap(err, "close report"), "path", path)
	}
	return path, nil
}
