package gantt

import (
	"encoding/json"
	"testing"

	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/testutil"
)

func TestExpansionToggle(t *testing.T) {
	s := NewExpansionState()
	id := GroupID(0, "A")
	if !s.Toggle(id) || !s.IsExpanded(id) {
		t.Fatalf("expected first toggle to expand")
	}
	if s.Toggle(id) || s.IsExpanded(id) {
		t.Fatalf("expected second toggle to collapse")
	}
}

func TestExpandAllAndCollapseAll(t *testing.T) {
	tree := BuildTree(testutil.ScenarioTasks())
	s := NewExpansionState()
	s.SetTreeData(tree)
	s.ExpandAll()
	// 1 major + 2 middles + 2 minors
	if s.Len() != 5 {
		t.Fatalf("expected 5 expanded groups, got %d", s.Len())
	}
	if got := len(Flatten(tree, s)); got != 9 {
		t.Fatalf("expected all 9 rows visible, got %d", got)
	}
	s.CollapseAll()
	if s.Len() != 0 {
		t.Fatalf("expected empty set after CollapseAll")
	}
}

func TestExpandToLevel(t *testing.T) {
	tree := BuildTree(testutil.ScenarioTasks())
	s := NewExpansionState()
	s.SetTreeData(tree)
	s.ExpandAll()

	s.ExpandToLevel(LevelMinor)
	rows := Flatten(tree, s)
	for _, r := range rows {
		if r.Node.Level > LevelMinor {
			t.Fatalf("row %q deeper than minor level is visible", r.Node.Name)
		}
	}
	if len(rows) != 5 {
		t.Fatalf("expected major, 2 middles, 2 minors; got %d rows", len(rows))
	}

	s.ExpandToLevel(LevelMajor)
	if s.Len() != 0 || len(Flatten(tree, s)) != 1 {
		t.Fatalf("level 0 should leave only roots visible")
	}
}

func TestExpansionSurvivesRebuild(t *testing.T) {
	s := NewExpansionState()
	tree := BuildTree(testutil.ScenarioTasks())
	s.SetTreeData(tree)
	s.Toggle(tree[0].ID)

	refreshed := append(testutil.ScenarioTasks(),
		testutil.NewTask().WithCategory("B", "M", "Z").Build())
	rebuilt := BuildTree(refreshed)
	s.SetTreeData(rebuilt)
	if !s.IsExpanded(rebuilt[0].ID) {
		t.Fatalf("expected A to stay expanded after rebuild")
	}
	if got := len(Flatten(rebuilt, s)); got != 4 {
		t.Fatalf("expected A, M1, M2, B rows, got %d", got)
	}
}

func TestExpansionJSONRoundTrip(t *testing.T) {
	s := NewExpansionState()
	s.Restore([]NodeID{GroupID(1, "A", "M1"), GroupID(0, "A")})
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	restored := NewExpansionState()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if restored.Len() != 2 || !restored.IsExpanded(GroupID(0, "A")) {
		t.Fatalf("unexpected restored ids %v", restored.IDs())
	}

	if err := json.Unmarshal([]byte(`{"version":99,"expanded":["g0:A"]}`), restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if restored.Len() != 0 {
		t.Fatalf("expected unknown versions to reset state")
	}
}

func TestResetDropsTopology(t *testing.T) {
	s := NewExpansionState()
	s.SetTreeData(BuildTree([]models.Task{testutil.NewTask().Build()}))
	s.Reset()
	s.ExpandAll()
	if s.Len() != 0 {
		t.Fatalf("ExpandAll without topology should expand nothing")
	}
}
