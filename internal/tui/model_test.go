package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

func TestMainModelLoadsIntoDashboard(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, testutil.ScenarioTasks())
	m := NewMainModel(ctx, db, Options{Settings: config.Default(), Clock: clockwork.NewFakeClockAt(testNow)})
	if m.State() != StateLoading {
		t.Fatalf("state = %v", m.State())
	}
	if !strings.Contains(m.View(), "Loading") {
		t.Fatalf("expected loading screen")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	next, _ = next.(MainModel).Update(loadTasksCmd(ctx, db)())
	m = next.(MainModel)
	if m.State() != StateDashboard {
		t.Fatalf("state = %v, want dashboard", m.State())
	}
	if got := len(m.Dashboard().Controller().Rows()); got != 9 {
		t.Fatalf("rows = %d", got)
	}
}

func TestMainModelLoadFailure(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, nil)
	m := NewMainModel(ctx, db, Options{Settings: config.Default()})

	next, _ := m.Update(tasksLoadedMsg{err: errors.New("database is locked")})
	m = next.(MainModel)
	if m.State() != StateFailed {
		t.Fatalf("state = %v, want failed", m.State())
	}
	if view := m.View(); !strings.Contains(view, "database is locked") {
		t.Fatalf("view should show the error: %q", view)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd == nil {
		t.Fatalf("any key should quit from the failure screen")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit")
	}
}
