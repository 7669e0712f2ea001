package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/akyairhashvil/mvno/internal/database"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

// exportTasksCmd dumps every stored task, filtered or not, as JSON.
func exportTasksCmd(ctx context.Context, db Database, dir string, clock clockwork.Clock) tea.Cmd {
	return func() tea.Msg {
		tasks, err := db.ListTasks(ctx, nil)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		now := clock.Now()
		doc := database.NewTaskExport(tasks, now)
		name := fmt.Sprintf("mvno-tasks-%s.json", now.Format("20060102-150405"))
		data, err := doc.Encode(database.FormatJSON)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path, err := writeReport(dir, name, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		})
		return exportDoneMsg{path: path, err: err}
	}
}
