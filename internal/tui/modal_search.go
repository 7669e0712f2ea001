package tui

import (
	"strings"

	"github.com/akyairhashvil/mvno/internal/util"
	tea "github.com/charmbracelet/bubbletea"
)

func (m DashboardModel) openSearch() (DashboardModel, tea.Cmd) {
	m.search.Active = true
	m.search.Input.SetValue(m.search.Applied)
	m.search.Input.CursorEnd()
	m.modal.Open(&SearchState{})
	return m, m.search.Input.Focus()
}

// handleModalInputSearch filters the chart as the user types.
func (m DashboardModel) handleModalInputSearch(msg tea.Msg) (DashboardModel, tea.Cmd, bool) {
	if !m.search.Active {
		return m, nil, false
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			return m.confirmSearch(), nil, true
		case tea.KeyEsc:
			return m.clearSearch(), nil, true
		}
	}
	var cmd tea.Cmd
	before := m.search.Input.Value()
	m.search.Input, cmd = m.search.Input.Update(msg)
	if m.search.Input.Value() != before {
		m.applySearch(m.search.Input.Value())
	}
	return m, cmd, true
}

func (m *DashboardModel) applySearch(raw string) {
	m.search.Query = util.ParseSearchQuery(raw)
	m.ctrl.SetFilter(m.search.Filter())
	m.view.cursor = 0
}

// confirmSearch keeps the typed filter and closes the prompt.
func (m DashboardModel) confirmSearch() DashboardModel {
	m.search.Active = false
	m.search.Applied = strings.TrimSpace(m.search.Input.Value())
	m.search.Input.Blur()
	m.modal.Close()
	if m.search.Applied != "" {
		m.Message = "Filter: " + m.search.Applied
	}
	return m
}

// clearSearch drops the filter and closes the prompt.
func (m DashboardModel) clearSearch() DashboardModel {
	m.search.Active = false
	m.search.Applied = ""
	m.search.Input.Reset()
	m.search.Input.Blur()
	m.modal.Close()
	m.applySearch("")
	return m
}
