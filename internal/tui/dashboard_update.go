package tui

import (
	"fmt"
	"path/filepath"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/util"
	tea "github.com/charmbracelet/bubbletea"
)

const wheelRows = 3

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	frame := next.pump()
	return next, tea.Batch(cmd, frame)
}

func (m DashboardModel) update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	// Clear error on keypress
	if m.err != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.err = nil
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.panes.Layout(m.width, m.height, m.view.listWidth)
		m.ctrl.Resize(m.panes.Chart.ClientWidth())
		return m, nil
	case frameMsg:
		m.frameScheduled = false
		m.loop.RunFrame()
		return m, nil
	case tasksLoadedMsg:
		return m.handleTasksLoaded(msg), nil
	case taskSavedMsg:
		if msg.err != nil {
			util.LogError(m.logger, "save task", msg.err)
			m.setStatusError(fmt.Sprintf("Error saving task %s: %v", msg.id, msg.err))
			return m, loadTasksCmd(m.ctx, m.db)
		}
		m.Message = "Saved " + msg.id
		return m, nil
	case settingSavedMsg:
		if msg.err != nil {
			util.LogError(m.logger, "save setting "+msg.key, msg.err)
			m.setStatusError(fmt.Sprintf("Error saving %s: %v", msg.key, msg.err))
		}
		return m, nil
	case backupTickMsg:
		return m, tea.Batch(autoBackupCmd(m.ctx, m.backups, m.policy, m.db), backupTickCmd())
	case backupDoneMsg:
		switch {
		case msg.err != nil:
			util.LogError(m.logger, "backup", msg.err)
			m.setStatusError(fmt.Sprintf("Backup failed: %v", msg.err))
		case msg.ran:
			m.Message = "Backup written: " + msg.info.Name()
		}
		return m, nil
	case exportDoneMsg:
		if msg.err != nil {
			util.LogError(m.logger, "export", msg.err)
			m.setStatusError(fmt.Sprintf("Export failed: %v", msg.err))
			return m, nil
		}
		m.Message = "Exported " + filepath.Base(msg.path)
		return m, nil
	case tea.MouseMsg:
		if m.modal.IsOpen() {
			return m, nil
		}
		return m.handleMouse(msg), nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		if m.modal.IsOpen() {
			m, cmd = m.handleModalKey(msg)
		} else {
			m.Message = ""
			m, cmd, _ = m.keys.Handle(m, msg.String())
		}
		return m, tea.Batch(cmd, m.flushExpansion())
	}

	if m.modal.Is(ModalSearch) {
		var cmd tea.Cmd
		m, cmd, _ = m.handleModalInputSearch(msg)
		return m, cmd
	}
	return m, nil
}

func (m DashboardModel) handleTasksLoaded(msg tasksLoadedMsg) DashboardModel {
	if msg.err != nil {
		util.LogError(m.logger, "load tasks", msg.err)
		m.setStatusError(fmt.Sprintf("Error loading tasks: %v", msg.err))
		return m
	}
	first := !m.view.loaded
	m.view.loaded = true
	if msg.unit != "" {
		m.ctrl.SetUnit(gantt.ParseUnit(msg.unit))
	}
	m.ctrl.SetTasks(msg.tasks)
	switch {
	case msg.hasSaved && first:
		m.ctrl.RestoreExpansion(msg.expansion)
	case first:
		m.ctrl.ExpandAll()
		m.view.expansionDirty = false
	}
	m.view.clampCursor(len(m.ctrl.Rows()))
	return m
}

// flushExpansion persists the open groups after the user changed them.
func (m DashboardModel) flushExpansion() tea.Cmd {
	if !m.view.expansionDirty {
		return nil
	}
	m.view.expansionDirty = false
	return saveExpansionCmd(m.ctx, m.db, m.ctrl.Expansion())
}

func (m DashboardModel) handleModalKey(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	switch m.modal.ActiveModal() {
	case ModalEdit:
		return m.handleModalInputEdit(msg)
	case ModalSearch:
		var cmd tea.Cmd
		m, cmd, _ = m.handleModalInputSearch(msg)
		return m, cmd
	case ModalHelp:
		m.modal.Close()
	}
	return m, nil
}

func (m DashboardModel) handleModalInputEdit(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	state, ok := m.modal.EditState()
	if !ok {
		m.modal.Close()
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.modal.Close()
		return m, nil
	case tea.KeyEnter:
		orig, found := m.findTask(state.TaskID)
		if !found {
			m.modal.Close()
			m.setStatusError("Task no longer exists: " + state.TaskID)
			return m, nil
		}
		upd, err := m.edit.Result(orig)
		if err != nil {
			m.edit.SetError(err.Error())
			return m, nil
		}
		m.modal.Close()
		if upd.IsEmpty() {
			return m, nil
		}
		m.ctrl.UpdateTask(state.TaskID, upd)
		return m, saveTaskCmd(m.ctx, m.db, state.TaskID, upd)
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return m, cmd
}

func (m DashboardModel) handleMouse(msg tea.MouseMsg) DashboardModel {
	body := msg.Y - config.HeaderRows
	overList := msg.X < m.panes.ListCols
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		dy := wheelRows * cellH
		if msg.Button == tea.MouseButtonWheelUp {
			dy = -dy
		}
		switch {
		case msg.Shift:
			m.panes.Chart.ScrollBy(dy*cellW/cellH, 0)
		case body < 0:
			m.panes.Header.ScrollBy(dy*cellW/cellH, 0)
		case overList:
			m.panes.List.ScrollBy(0, dy)
		default:
			m.panes.Chart.ScrollBy(0, dy)
		}
	case tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		dx := config.ScrollStepColumns * cellW
		if msg.Button == tea.MouseButtonWheelLeft {
			dx = -dx
		}
		m.panes.Chart.ScrollBy(dx, 0)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || body < 0 || body >= m.panes.BodyRows {
			return m
		}
		var idx int
		if overList {
			idx = m.panes.FirstRow() + body
		} else {
			idx = m.ctrl.RowAt(float64(body)*cellH + m.panes.Chart.ScrollTop())
		}
		if idx >= 0 && idx < len(m.ctrl.Rows()) {
			m.view.cursor = idx
		}
	}
	return m
}

func (m DashboardModel) moveCursor(delta int) DashboardModel {
	m.view.cursor += delta
	m.view.clampCursor(len(m.ctrl.Rows()))
	m.revealCursor()
	return m
}

// revealCursor scrolls the chart so the cursor row is visible; the list
// follows through the synchronizer.
func (m DashboardModel) revealCursor() {
	top := float64(m.view.cursor) * cellH
	viewTop := m.panes.Chart.ScrollTop()
	height := m.panes.Chart.ClientHeight()
	switch {
	case top < viewTop:
		m.panes.Chart.SetScrollTop(top)
	case top+cellH > viewTop+height:
		m.panes.Chart.SetScrollTop(top + cellH - height)
	}
}

func (m DashboardModel) findTask(id string) (models.Task, bool) {
	for _, t := range m.ctrl.Tasks() {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}
