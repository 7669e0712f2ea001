package gantt

import (
	"testing"

	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/testutil"
)

func TestBuildTreeEmpty(t *testing.T) {
	if tree := BuildTree(nil); len(tree) != 0 {
		t.Fatalf("expected empty tree, got %d roots", len(tree))
	}
}

func TestBuildTreeLevelsAndParents(t *testing.T) {
	tree := BuildTree(testutil.ScenarioTasks())
	if len(tree) != 1 {
		t.Fatalf("expected one major, got %d", len(tree))
	}
	major := tree[0]
	if major.Name != "A" || major.Level != LevelMajor || major.ParentID != "" {
		t.Fatalf("unexpected major %+v", major)
	}
	if len(major.Children) != 2 || major.Children[0].Name != "M1" || major.Children[1].Name != "M2" {
		t.Fatalf("expected middles in first-seen order, got %+v", major.Children)
	}
	minor := major.Children[0].Children[0]
	if minor.Level != LevelMinor || minor.ParentID != major.Children[0].ID {
		t.Fatalf("unexpected minor %+v", minor)
	}
	for _, leaf := range minor.Children {
		if leaf.Level != LevelTask || leaf.HasChildren() || leaf.IsGroup() {
			t.Fatalf("leaf invariants violated: %+v", leaf)
		}
		if leaf.ParentID != minor.ID {
			t.Fatalf("leaf parent = %q, want %q", leaf.ParentID, minor.ID)
		}
	}
}

func TestBuildTreeAggregatesMeanOfChildren(t *testing.T) {
	tasks := []models.Task{
		testutil.NewTask().WithCategory("A", "M", "A1").WithPercent(0).Build(),
		testutil.NewTask().WithCategory("A", "M", "A1").WithPercent(100).Build(),
		testutil.NewTask().WithCategory("A", "M", "B1").WithPercent(100).Build(),
	}
	tree := BuildTree(tasks)
	middle := tree[0].Children[0]
	if middle.Children[0].PercentComplete != 50 || middle.Children[1].PercentComplete != 100 {
		t.Fatalf("unexpected minor aggregates %d, %d", middle.Children[0].PercentComplete, middle.Children[1].PercentComplete)
	}
	if middle.PercentComplete != 75 {
		t.Fatalf("middle aggregate = %d, want 75 (mean of minors, not 67)", middle.PercentComplete)
	}
}

func TestBuildTreeScenarioAggregate(t *testing.T) {
	tree := BuildTree(testutil.ScenarioTasks())
	if got := tree[0].PercentComplete; got != 50 {
		t.Fatalf("major aggregate = %d, want 50", got)
	}
}

func TestBuildTreeAggregateDates(t *testing.T) {
	tasks := []models.Task{
		testutil.NewTask().WithCategory("A", "M", "X").WithDates(testutil.Day(2026, 3, 10), testutil.Day(2026, 3, 12)).Build(),
		testutil.NewTask().WithCategory("A", "N", "Y").WithDates(testutil.Day(2026, 2, 1), testutil.Day(2026, 2, 3)).Build(),
		testutil.NewTask().WithCategory("A", "M", "X").WithDates(testutil.Day(2026, 3, 1), testutil.Day(2026, 4, 2)).Build(),
	}
	major := BuildTree(tasks)[0]
	if !major.Start.Equal(testutil.Day(2026, 2, 1)) || !major.End.Equal(testutil.Day(2026, 4, 2)) {
		t.Fatalf("major span = %v..%v", major.Start, major.End)
	}
	middle := major.Children[0]
	if !middle.Start.Equal(testutil.Day(2026, 3, 1)) || !middle.End.Equal(testutil.Day(2026, 4, 2)) {
		t.Fatalf("middle span = %v..%v", middle.Start, middle.End)
	}
}

func TestBuildTreeDefaultsUncategorized(t *testing.T) {
	tree := BuildTree([]models.Task{testutil.NewTask().Build()})
	if tree[0].Name != models.Uncategorized {
		t.Fatalf("expected uncategorized bucket, got %q", tree[0].Name)
	}
	if tree[0].Children[0].Children[0].Name != models.Uncategorized {
		t.Fatalf("expected uncategorized minor")
	}
}

func TestGroupIDsStableAcrossRebuilds(t *testing.T) {
	a := BuildTree(testutil.ScenarioTasks())
	b := BuildTree(testutil.ScenarioTasks())
	var idsA, idsB []NodeID
	Walk(a, func(n *TreeNode) bool { idsA = append(idsA, n.ID); return true })
	Walk(b, func(n *TreeNode) bool { idsB = append(idsB, n.ID); return true })
	if len(idsA) != len(idsB) {
		t.Fatalf("node counts differ")
	}
	for i := range idsA {
		if idsA[i] != idsB[i] {
			t.Fatalf("id %d differs: %q vs %q", i, idsA[i], idsB[i])
		}
	}
}

func TestGroupIDEscapingAvoidsCollisions(t *testing.T) {
	if GroupID(1, "A/B", "C") == GroupID(1, "A", "B/C") {
		t.Fatalf("separator inside a segment must not collide")
	}
	if GroupID(0, `A\`) == GroupID(0, "A/") {
		t.Fatalf("escape character must itself be escaped")
	}
	if GroupID(0, "A") == GroupID(1, "A") {
		t.Fatalf("level must be part of the id")
	}
	if !GroupID(2, "x").IsGroupID() || TaskNodeID("x").IsGroupID() {
		t.Fatalf("unexpected IsGroupID results")
	}
}

func TestFindAndCount(t *testing.T) {
	tree := BuildTree(testutil.ScenarioTasks())
	if n := Find(tree, TaskNodeID("y2")); n == nil || n.Task.ID != "y2" {
		t.Fatalf("expected to find leaf y2")
	}
	if Find(tree, "missing") != nil {
		t.Fatalf("expected nil for unknown id")
	}
	if got := CountTasks(tree); got != 4 {
		t.Fatalf("CountTasks = %d", got)
	}
}

func TestKindTable(t *testing.T) {
	if KindForLevel(LevelMinor) != KindMinor || KindForLevel(9) != KindTask {
		t.Fatalf("unexpected level mapping")
	}
	if KindMajor.String() != "major" || NodeKind(42).String() != "unknown" {
		t.Fatalf("unexpected kind names")
	}
	if KindTask.Glyph() == "" {
		t.Fatalf("expected glyph")
	}
}
