package gantt

import (
	"math"
	"time"

	"github.com/akyairhashvil/mvno/internal/models"
)

// BuildTree groups tasks into major -> middle -> minor -> task, preserving the
// first-seen order of categories and tasks. Aggregate dates are the min/max of
// the children; aggregate percent is the rounded mean of the direct children's
// percent, computed bottom-up. Tasks are expected to have valid dates.
func BuildTree(tasks []models.Task) []*TreeNode {
	var roots []*TreeNode
	index := make(map[NodeID]*TreeNode)

	for i := range tasks {
		task := tasks[i]
		path := task.CategoryPath()

		major := ensureGroup(&roots, index, LevelMajor, "", path.Major)
		middle := ensureGroup(&major.Children, index, LevelMiddle, major.ID, path.Major, path.Middle)
		minor := ensureGroup(&middle.Children, index, LevelMinor, middle.ID, path.Major, path.Middle, path.Minor)

		minor.Children = append(minor.Children, &TreeNode{
			ID:              TaskNodeID(task.ID),
			Name:            task.Name,
			Level:           LevelTask,
			Kind:            KindTask,
			ParentID:        minor.ID,
			Task:            &task,
			Start:           task.Start,
			End:             task.End,
			PercentComplete: models.ClampPercent(task.PercentComplete),
		})
	}

	for _, r := range roots {
		aggregate(r)
	}
	return roots
}

func ensureGroup(siblings *[]*TreeNode, index map[NodeID]*TreeNode, level int, parent NodeID, path ...string) *TreeNode {
	id := GroupID(level, path...)
	if n, ok := index[id]; ok {
		return n
	}
	n := &TreeNode{
		ID:       id,
		Name:     path[len(path)-1],
		Level:    level,
		Kind:     KindForLevel(level),
		ParentID: parent,
	}
	index[id] = n
	*siblings = append(*siblings, n)
	return n
}

func aggregate(n *TreeNode) {
	if len(n.Children) == 0 {
		return
	}
	sum := 0
	n.Start, n.End = time.Time{}, time.Time{}
	for _, c := range n.Children {
		aggregate(c)
		sum += c.PercentComplete
		if !c.Start.IsZero() && (n.Start.IsZero() || c.Start.Before(n.Start)) {
			n.Start = c.Start
		}
		if c.End.After(n.End) {
			n.End = c.End
		}
	}
	n.PercentComplete = int(math.Round(float64(sum) / float64(len(n.Children))))
}

// CountTasks returns the number of leaves under nodes.
func CountTasks(nodes []*TreeNode) int {
	count := 0
	Walk(nodes, func(n *TreeNode) bool {
		if n.Task != nil {
			count++
		}
		return true
	})
	return count
}
