package tui

import (
	"context"
	"encoding/json"

	"github.com/akyairhashvil/mvno/internal/backup"
	"github.com/akyairhashvil/mvno/internal/database"
	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Database defines the persistence methods the TUI requires.
type Database interface {
	database.Store
}

// --- Messages ---

type tasksLoadedMsg struct {
	tasks     []models.Task
	expansion []gantt.NodeID
	hasSaved  bool
	unit      string
	err       error
}

type taskSavedMsg struct {
	id  string
	err error
}

type settingSavedMsg struct {
	key string
	err error
}

type backupDoneMsg struct {
	info   backup.Info
	ran    bool
	manual bool
	err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

// loadTasksCmd reads every task plus the saved view state.
func loadTasksCmd(ctx context.Context, db Database) tea.Cmd {
	return func() tea.Msg {
		tasks, err := db.ListTasks(ctx, nil)
		if err != nil {
			return tasksLoadedMsg{err: err}
		}
		msg := tasksLoadedMsg{tasks: tasks}
		if raw, ok, err := db.GetSetting(ctx, database.SettingExpansion); err == nil && ok {
			state := gantt.NewExpansionState()
			if json.Unmarshal([]byte(raw), state) == nil {
				msg.expansion = state.IDs()
				msg.hasSaved = true
			}
		}
		if raw, ok, err := db.GetSetting(ctx, database.SettingUnit); err == nil && ok {
			msg.unit = raw
		}
		return msg
	}
}

// saveTaskCmd persists an edit already applied to the chart.
func saveTaskCmd(ctx context.Context, db Database, id string, upd models.TaskUpdate) tea.Cmd {
	return func() tea.Msg {
		return taskSavedMsg{id: id, err: db.UpdateTask(ctx, id, upd)}
	}
}

// saveExpansionCmd stores the open groups as {"version":1,"expanded":[...]}.
func saveExpansionCmd(ctx context.Context, db Database, state *gantt.ExpansionState) tea.Cmd {
	data, err := json.Marshal(state)
	return func() tea.Msg {
		if err != nil {
			return settingSavedMsg{key: database.SettingExpansion, err: err}
		}
		return settingSavedMsg{key: database.SettingExpansion, err: db.SetSetting(ctx, database.SettingExpansion, string(data))}
	}
}

func saveUnitCmd(ctx context.Context, db Database, unit gantt.Unit) tea.Cmd {
	return func() tea.Msg {
		return settingSavedMsg{key: database.SettingUnit, err: db.SetSetting(ctx, database.SettingUnit, string(unit))}
	}
}

// autoBackupCmd snapshots the store when the backup policy says one is due.
func autoBackupCmd(ctx context.Context, mgr *backup.Manager, policy backup.Policy, db Database) tea.Cmd {
	if mgr == nil || !policy.Enabled {
		return nil
	}
	return func() tea.Msg {
		info, ran, err := mgr.RunIfDue(ctx, policy, db, db)
		return backupDoneMsg{info: info, ran: ran, err: err}
	}
}

// backupNowCmd writes a snapshot regardless of the policy.
func backupNowCmd(ctx context.Context, mgr *backup.Manager, db Database) tea.Cmd {
	return func() tea.Msg {
		tasks, err := db.ListTasks(ctx, nil)
		if err != nil {
			return backupDoneMsg{manual: true, err: err}
		}
		info, err := mgr.Write(ctx, tasks, "manual")
		return backupDoneMsg{info: info, ran: err == nil, manual: true, err: err}
	}
}
