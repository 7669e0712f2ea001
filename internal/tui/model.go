package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SessionState defines the high-level mode of the application.
type SessionState int

const (
	StateLoading SessionState = iota
	StateDashboard
	StateFailed
)

// MainModel is the root bubbletea model. It shows a loading screen until
// the first task load finishes and a fatal screen if it fails.
type MainModel struct {
	state     SessionState
	dashboard DashboardModel
	err       error
	width     int
	height    int
}

func NewMainModel(ctx context.Context, db Database, opts Options) MainModel {
	return MainModel{
		state:     StateLoading,
		dashboard: NewDashboardModel(ctx, db, opts),
	}
}

func (m MainModel) Init() tea.Cmd {
	return m.dashboard.Init()
}

func (m MainModel) State() SessionState { return m.state }

func (m MainModel) Dashboard() DashboardModel { return m.dashboard }

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.dashboard, _, _ = m.dashboard.quit()
			return m, tea.Quit
		}
		if m.state == StateFailed {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tasksLoadedMsg:
		if m.state == StateLoading {
			if msg.err != nil {
				m.state = StateFailed
				m.err = msg.err
				return m, nil
			}
			m.state = StateDashboard
		}
	}
	if m.state == StateFailed {
		return m, nil
	}
	next, cmd := m.dashboard.Update(msg)
	m.dashboard = next.(DashboardModel)
	return m, cmd
}

func (m MainModel) View() string {
	switch m.state {
	case StateFailed:
		box := m.dashboard.theme.Input.Render(
			m.dashboard.theme.Error.Render("Could not load tasks") + "\n" +
				fmt.Sprintf("%v", m.err) + "\n" +
				m.dashboard.theme.Dim.Render("press any key to quit"))
		if m.width == 0 {
			return box
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	case StateLoading:
		return "Loading tasks..."
	}
	return m.dashboard.View()
}
