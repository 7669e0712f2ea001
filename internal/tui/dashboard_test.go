package tui

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/database"
	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

var testNow = testutil.Day(2026, time.March, 4).Add(9 * time.Hour)

type dashRig struct {
	ctx   context.Context
	db    *database.Database
	clock clockwork.FakeClock
	dir   string
	m     DashboardModel
}

func openTestDB(t *testing.T, tasks []models.Task) *database.Database {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "test.db"), database.Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	if len(tasks) > 0 {
		if err := db.ReplaceAll(ctx, tasks); err != nil {
			t.Fatalf("ReplaceAll failed: %v", err)
		}
	}
	return db
}

// newDashRig builds a 120x30 dashboard over a sqlite store holding tasks,
// loads it and settles the first paint.
func newDashRig(t *testing.T, tasks []models.Task) *dashRig {
	t.Helper()
	r := &dashRig{
		ctx:   context.Background(),
		db:    openTestDB(t, tasks),
		clock: clockwork.NewFakeClockAt(testNow),
		dir:   t.TempDir(),
	}
	r.m = NewDashboardModel(r.ctx, r.db, Options{
		Settings:   config.Default(),
		Clock:      r.clock,
		ReportsDir: r.dir,
	})
	r.send(tea.WindowSizeMsg{Width: 120, Height: 30})
	r.run(loadTasksCmd(r.ctx, r.db))
	r.settle()
	return r
}

func (r *dashRig) send(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	r.m, cmd = r.m.update(msg)
	return cmd
}

func (r *dashRig) key(k string) tea.Cmd {
	switch k {
	case "enter":
		return r.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return r.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "space":
		return r.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	return r.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

// run executes cmd and feeds its message back into the model.
func (r *dashRig) run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	r.send(msg)
	return msg
}

func (r *dashRig) settle() {
	r.clock.Advance(config.RepaintDebounce)
	r.m.loop.RunDue()
	r.clock.Advance(config.HeaderDelay)
	r.m.loop.RunDue()
	r.m.loop.Settle(5)
}

func TestDashboardLoadExpandsEverything(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())

	if got := len(r.m.ctrl.Rows()); got != 9 {
		t.Fatalf("rows = %d, want 9", got)
	}
	if r.m.view.expansionDirty {
		t.Fatalf("initial expansion should not be marked for saving")
	}
	if st := r.m.ctrl.Stats(); st.Chart == 0 || st.Header == 0 {
		t.Fatalf("expected chart and header paints, got %+v", st)
	}
	if got := r.m.ctrl.ChartWidth(); got < r.m.panes.Chart.ClientWidth() {
		t.Fatalf("chart width %v narrower than the pane %v", got, r.m.panes.Chart.ClientWidth())
	}
	if r.m.panes.Header.ScrollLeft() != r.m.panes.Chart.ScrollLeft() {
		t.Fatalf("header %v and chart %v out of sync", r.m.panes.Header.ScrollLeft(), r.m.panes.Chart.ScrollLeft())
	}
}

func TestDashboardToggleSavesExpansion(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())
	top := r.m.ctrl.Rows()[0].Node.ID

	cmd := r.key("space")
	if got := len(r.m.ctrl.Rows()); got != 1 {
		t.Fatalf("rows after collapsing the root = %d, want 1", got)
	}
	msg, ok := r.run(cmd).(settingSavedMsg)
	if !ok || msg.err != nil || msg.key != database.SettingExpansion {
		t.Fatalf("expected expansion save, got %#v", msg)
	}

	raw, found, err := r.db.GetSetting(r.ctx, database.SettingExpansion)
	if err != nil || !found {
		t.Fatalf("GetSetting: found=%v err=%v", found, err)
	}
	state := gantt.NewExpansionState()
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		t.Fatalf("saved expansion is not valid JSON: %v", err)
	}
	if state.IsExpanded(top) {
		t.Fatalf("collapsed root %q still saved as open: %s", top, raw)
	}
	if state.Len() == 0 {
		t.Fatalf("deeper groups should stay open: %s", raw)
	}
}

func TestDashboardRestoresSavedExpansion(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, testutil.ScenarioTasks())
	state := gantt.NewExpansionState()
	state.Restore([]gantt.NodeID{gantt.GroupID(gantt.LevelMajor, "A")})
	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := db.SetSetting(ctx, database.SettingExpansion, string(data)); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}

	m := NewDashboardModel(ctx, db, Options{Settings: config.Default(), Clock: clockwork.NewFakeClockAt(testNow)})
	m, _ = m.update(loadTasksCmd(ctx, db)())
	if got := len(m.ctrl.Rows()); got != 3 {
		t.Fatalf("rows = %d, want A, M1, M2", got)
	}
}

func TestDashboardEditPersistsTask(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())
	r.m.view.cursor = 3
	row, _ := r.m.cursorRow()
	if row.Node.Task == nil || row.Node.Task.ID != "x1" {
		t.Fatalf("cursor row = %+v, want task x1", row.Node)
	}

	r.key("e")
	if !r.m.modal.Is(ModalEdit) {
		t.Fatalf("expected edit modal")
	}
	r.m.edit.inputs[editPercent].SetValue("40")
	cmd := r.key("enter")
	if r.m.modal.IsOpen() {
		t.Fatalf("modal should close after saving")
	}
	if task, _ := r.m.findTask("x1"); task.PercentComplete != 40 {
		t.Fatalf("chart copy not updated: %d", task.PercentComplete)
	}

	msg, ok := r.run(cmd).(taskSavedMsg)
	if !ok || msg.err != nil {
		t.Fatalf("expected successful save, got %#v", msg)
	}
	stored, err := r.db.GetTask(r.ctx, "x1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if stored.PercentComplete != 40 {
		t.Fatalf("stored percent = %d, want 40", stored.PercentComplete)
	}
	if r.m.Message != "Saved x1" {
		t.Fatalf("message = %q", r.m.Message)
	}
}

func TestDashboardEditRejectsBadPercent(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())
	r.m.view.cursor = 3
	r.key("e")
	r.m.edit.inputs[editPercent].SetValue("140")

	if cmd := r.key("enter"); cmd != nil {
		t.Fatalf("invalid input should not save")
	}
	if !r.m.modal.Is(ModalEdit) {
		t.Fatalf("modal should stay open on invalid input")
	}
	if r.m.edit.err == "" {
		t.Fatalf("expected a validation message")
	}
	r.key("esc")
	if r.m.modal.IsOpen() {
		t.Fatalf("esc should close the editor")
	}
}

func TestDashboardEditOnGroupIsRefused(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())
	r.key("e")
	if r.m.modal.IsOpen() {
		t.Fatalf("groups are not editable")
	}
	if r.m.Message == "" {
		t.Fatalf("expected a hint message")
	}
}

func TestDashboardSearchFiltersRows(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())

	r.key("/")
	if !r.m.search.Active || !r.m.modal.Is(ModalSearch) {
		t.Fatalf("expected search prompt")
	}
	r.key("y1")
	rows := r.m.ctrl.Rows()
	if len(rows) != 4 {
		t.Fatalf("filtered rows = %d, want A, M2, Y, y1", len(rows))
	}
	if last := rows[len(rows)-1].Node; last.Task == nil || last.Task.ID != "y1" {
		t.Fatalf("last row = %+v", last)
	}

	r.key("enter")
	if r.m.search.Active || r.m.search.Applied != "y1" {
		t.Fatalf("enter should keep the filter: %+v", r.m.search)
	}
	if got := len(r.m.ctrl.Rows()); got != 4 {
		t.Fatalf("filter dropped after confirm: %d rows", got)
	}

	r.key("/")
	r.key("esc")
	if got := len(r.m.ctrl.Rows()); got != 9 {
		t.Fatalf("esc should clear the filter, got %d rows", got)
	}
}

func TestDashboardUnitToggleSaves(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())
	cmd := r.key("u")
	if r.m.ctrl.Unit() != gantt.UnitWeek {
		t.Fatalf("unit = %q", r.m.ctrl.Unit())
	}
	r.run(cmd)
	got, _, err := r.db.GetSetting(r.ctx, database.SettingUnit)
	if err != nil || got != string(gantt.UnitWeek) {
		t.Fatalf("saved unit = %q, %v", got, err)
	}
}

func TestDashboardCursorScrollsChart(t *testing.T) {
	tasks := make([]models.Task, 0, 40)
	for i := 0; i < 40; i++ {
		tasks = append(tasks, testutil.NewTask().WithCategory("A", "M", "X").Build())
	}
	r := newDashRig(t, tasks)

	r.key("G")
	r.m.loop.Settle(5)
	rows := len(r.m.ctrl.Rows())
	if r.m.view.cursor != rows-1 {
		t.Fatalf("cursor = %d, want %d", r.m.view.cursor, rows-1)
	}
	if r.m.panes.Chart.ScrollTop() == 0 {
		t.Fatalf("chart should scroll to reveal the cursor")
	}
	if r.m.panes.List.ScrollTop() != r.m.panes.Chart.ScrollTop() {
		t.Fatalf("list %v should follow chart %v", r.m.panes.List.ScrollTop(), r.m.panes.Chart.ScrollTop())
	}
	first := r.m.panes.FirstRow()
	if r.m.view.cursor < first || r.m.view.cursor >= first+r.m.panes.BodyRows {
		t.Fatalf("cursor %d outside visible rows [%d, %d)", r.m.view.cursor, first, first+r.m.panes.BodyRows)
	}
}

func TestDashboardLevelKeys(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())
	cases := []struct {
		key  string
		rows int
	}{
		{"1", 1},
		{"2", 3},
		{"3", 5},
		{"4", 9},
	}
	for _, tc := range cases {
		r.key(tc.key)
		if got := len(r.m.ctrl.Rows()); got != tc.rows {
			t.Fatalf("key %s: rows = %d, want %d", tc.key, got, tc.rows)
		}
	}
}

func TestDashboardViewLayout(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())
	view := r.m.View()

	if lines := strings.Count(view, "\n") + 1; lines != 30 {
		t.Fatalf("view has %d lines, want 30", lines)
	}
	for _, want := range []string{"MVNO Gantt", "4 tasks", "Task", divider} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestDashboardErrorClearsOnKey(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())
	r.send(taskSavedMsg{id: "x1", err: database.ErrTaskNotFound})
	if r.m.err == nil {
		t.Fatalf("expected status error")
	}
	if !strings.Contains(r.m.View(), "x1") {
		t.Fatalf("error should be shown in the footer")
	}
	r.key("j")
	if r.m.err != nil {
		t.Fatalf("key press should clear the error")
	}
	if r.m.view.cursor != 0 {
		t.Fatalf("the clearing key should not move the cursor")
	}
}

func TestDashboardQuitDetachesChart(t *testing.T) {
	r := newDashRig(t, testutil.ScenarioTasks())
	cmd := r.key("q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit")
	}
	if r.m.ctrl.ScrollToToday() {
		t.Fatalf("chart view should be unmounted after quit")
	}
	writes := r.m.ctrl.Synchronizer().Writes()
	r.m.panes.Chart.SetScrollTop(30)
	r.m.loop.Settle(3)
	if r.m.ctrl.Synchronizer().Writes() != writes || r.m.loop.Pending() {
		t.Fatalf("synchronizer still active after quit")
	}
}
