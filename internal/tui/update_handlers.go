package tui

import (
	"strconv"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/gantt"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	priorityQuit = 100
	priorityNav  = 50
	priorityView = 10
)

// registerKeys installs the chart screen bindings.
func registerKeys(r *HandlerRegistry) {
	r.Register(KeyBinding{Keys: []string{"q", "ctrl+c"}, Description: "quit", Priority: priorityQuit,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			return m.quit()
		}})

	r.Register(KeyBinding{Keys: []string{"j", "down"}, Priority: priorityNav, Handler: cursorBy(1)})
	r.Register(KeyBinding{Keys: []string{"k", "up"}, Priority: priorityNav, Handler: cursorBy(-1)})
	r.Register(KeyBinding{Keys: []string{"pgdown", "J"}, Priority: priorityNav, Handler: pageBy(1)})
	r.Register(KeyBinding{Keys: []string{"pgup", "K"}, Priority: priorityNav, Handler: pageBy(-1)})
	r.Register(KeyBinding{Keys: []string{"l", "right"}, Priority: priorityNav, Handler: panBy(1)})
	r.Register(KeyBinding{Keys: []string{"h", "left"}, Priority: priorityNav, Handler: panBy(-1)})
	r.Register(KeyBinding{Keys: []string{"g", "home"}, Priority: priorityNav,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			return m.moveCursor(-len(m.ctrl.Rows())), nil, true
		}})
	r.Register(KeyBinding{Keys: []string{"G", "end"}, Priority: priorityNav,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			return m.moveCursor(len(m.ctrl.Rows())), nil, true
		}})

	r.Register(KeyBinding{Keys: []string{"enter", " "}, Description: "toggle", Priority: priorityView, Handler: handleToggle})
	r.Register(KeyBinding{Keys: []string{"e"}, Description: "edit", Priority: priorityView, Handler: handleEdit})
	r.Register(KeyBinding{Keys: []string{"/"}, Description: "search", Priority: priorityView,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			m, cmd := m.openSearch()
			return m, cmd, true
		}})
	r.Register(KeyBinding{Keys: []string{"E"}, Description: "expand", Priority: priorityView,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			m.ctrl.ExpandAll()
			return m, nil, true
		}})
	r.Register(KeyBinding{Keys: []string{"C"}, Description: "collapse", Priority: priorityView,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			m.ctrl.CollapseAll()
			m.view.clampCursor(len(m.ctrl.Rows()))
			m.revealCursor()
			return m, nil, true
		}})
	r.Register(KeyBinding{Keys: []string{"1", "2", "3", "4"}, Priority: priorityView, Handler: handleLevel})
	r.Register(KeyBinding{Keys: []string{"u"}, Description: "month/week", Priority: priorityView,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			unit := m.ctrl.Unit().Toggle()
			m.ctrl.SetUnit(unit)
			return m, saveUnitCmd(m.ctx, m.db, unit), true
		}})
	r.Register(KeyBinding{Keys: []string{"t"}, Description: "today", Priority: priorityView,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			if !m.ctrl.ScrollToToday() {
				m.Message = "Today is outside the timeline"
			}
			return m, nil, true
		}})
	r.Register(KeyBinding{Keys: []string{"T"}, Description: "theme", Priority: priorityView,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			m.theme = ThemeFor(nextTheme(m.theme.Palette))
			m.renderer.Palette = m.theme.ChartPalette()
			m.ctrl.Render()
			m.Message = "Theme: " + m.theme.Name
			return m, nil, true
		}})
	r.Register(KeyBinding{Keys: []string{"b"}, Description: "backup", Priority: priorityView,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			if m.backups == nil {
				m.setStatusError("Backups are disabled")
				return m, nil, true
			}
			return m, backupNowCmd(m.ctx, m.backups, m.db), true
		}})
	r.Register(KeyBinding{Keys: []string{"P"}, Description: "pdf", Priority: priorityView,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			return m, exportPDFCmd(pdfJob{
				rows:    m.ctrl.Rows(),
				unit:    m.ctrl.Unit(),
				palette: m.renderer.Palette,
				locale:  m.renderer.Locale,
				dir:     m.reportsDir,
				clock:   m.clock,
				logger:  m.logger,
			}), true
		}})
	r.Register(KeyBinding{Keys: []string{"X"}, Description: "export", Priority: priorityView,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			return m, exportTasksCmd(m.ctx, m.db, m.reportsDir, m.clock), true
		}})
	r.Register(KeyBinding{Keys: []string{"?"}, Description: "help", Priority: priorityView,
		Handler: func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
			m.modal.Open(&HelpState{})
			return m, nil, true
		}})
}

func cursorBy(delta int) KeyHandler {
	return func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
		return m.moveCursor(delta), nil, true
	}
}

func pageBy(dir int) KeyHandler {
	return func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
		return m.moveCursor(dir * max(1, m.panes.BodyRows-1)), nil, true
	}
}

func panBy(dir int) KeyHandler {
	return func(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
		m.panes.Chart.ScrollBy(float64(dir*config.ScrollStepColumns)*cellW, 0)
		return m, nil, true
	}
}

// handleToggle opens or closes the group under the cursor. On a task row
// it opens the editor instead.
func handleToggle(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	row, ok := m.cursorRow()
	if !ok {
		return m, nil, true
	}
	if !row.Node.HasChildren() {
		if row.Node.Task != nil && key == "enter" {
			return handleEdit(m, key)
		}
		return m, nil, true
	}
	m.ctrl.Toggle(row.Node.ID)
	m.view.clampCursor(len(m.ctrl.Rows()))
	return m, nil, true
}

func handleEdit(m DashboardModel, _ string) (DashboardModel, tea.Cmd, bool) {
	row, ok := m.cursorRow()
	if !ok || row.Node.Task == nil {
		m.Message = "Select a task to edit"
		return m, nil, true
	}
	task, found := m.findTask(row.Node.Task.ID)
	if !found {
		return m, nil, true
	}
	cmd := m.edit.Load(task)
	m.modal.Open(&EditState{TaskID: task.ID})
	return m, cmd, true
}

// handleLevel shows the first n tree levels for key n.
func handleLevel(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > gantt.LevelTask+1 {
		return m, nil, false
	}
	var id gantt.NodeID
	if row, ok := m.cursorRow(); ok {
		id = row.Node.ID
	}
	m.ctrl.ExpandToLevel(n - 1)
	m.view.cursor = max(0, gantt.IndexOf(m.ctrl.Rows(), id))
	m.view.clampCursor(len(m.ctrl.Rows()))
	m.revealCursor()
	return m, nil, true
}
