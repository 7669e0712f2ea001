// Package gantt turns flat task records into the category tree shown by the
// chart: building, flattening by expansion state, calendar header bands and
// the date range that maps time onto pixels.
package gantt

import (
	"strings"
	"time"

	"github.com/akyairhashvil/mvno/internal/models"
)

// Tree levels.
const (
	LevelMajor  = 0
	LevelMiddle = 1
	LevelMinor  = 2
	LevelTask   = 3
)

// NodeKind is the closed set of node types. Display attributes are looked
// up from kindTable rather than dispatched on names.
type NodeKind int

const (
	KindMajor NodeKind = iota
	KindMiddle
	KindMinor
	KindTask
)

type kindInfo struct {
	name  string
	glyph string
}

var kindTable = [...]kindInfo{
	KindMajor:  {name: "major", glyph: "■"},
	KindMiddle: {name: "middle", glyph: "◆"},
	KindMinor:  {name: "minor", glyph: "●"},
	KindTask:   {name: "task", glyph: "·"},
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(kindTable) {
		return "unknown"
	}
	return kindTable[k].name
}

// Glyph is the category marker drawn in the side list.
func (k NodeKind) Glyph() string {
	if k < 0 || int(k) >= len(kindTable) {
		return "?"
	}
	return kindTable[k].glyph
}

// KindForLevel maps a tree level to its kind.
func KindForLevel(level int) NodeKind {
	switch level {
	case LevelMajor:
		return KindMajor
	case LevelMiddle:
		return KindMiddle
	case LevelMinor:
		return KindMinor
	default:
		return KindTask
	}
}

// TreeNode is either a category group or a leaf wrapping a task.
type TreeNode struct {
	ID              NodeID
	Name            string
	Level           int
	Kind            NodeKind
	ParentID        NodeID // empty for majors
	Children        []*TreeNode
	Task            *models.Task // leaves only
	Start           time.Time
	End             time.Time
	PercentComplete int
}

func (n *TreeNode) HasChildren() bool { return len(n.Children) > 0 }

func (n *TreeNode) IsGroup() bool { return n.Kind != KindTask }

// HasDates reports whether the node can be placed on the timeline.
func (n *TreeNode) HasDates() bool {
	return !n.Start.IsZero() && !n.End.IsZero() && !n.End.Before(n.Start)
}

// Status derives the completion state from the (aggregate) percent.
func (n *TreeNode) Status() models.TaskStatus {
	return models.StatusFromPercent(n.PercentComplete)
}

// Walk visits nodes depth-first in pre-order. Returning false from fn skips
// the node's children.
func Walk(nodes []*TreeNode, fn func(*TreeNode) bool) {
	for _, n := range nodes {
		if fn(n) && len(n.Children) > 0 {
			Walk(n.Children, fn)
		}
	}
}

// Find returns the node with id, or nil.
func Find(nodes []*TreeNode, id NodeID) *TreeNode {
	var found *TreeNode
	Walk(nodes, func(n *TreeNode) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Label is the display name used in lists and reports.
func (n *TreeNode) Label() string {
	if n.Task != nil && strings.TrimSpace(n.Name) == "" {
		return n.Task.ID
	}
	return n.Name
}
