package gantt

// Expansion answers whether a group node is open.
type Expansion interface {
	IsExpanded(id NodeID) bool
}

// IDSet is a plain set of expanded ids.
type IDSet map[NodeID]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...NodeID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) IsExpanded(id NodeID) bool {
	_, ok := s[id]
	return ok
}

// Icon is the disclosure marker in front of a row.
type Icon int

const (
	IconLeaf Icon = iota
	IconCollapsed
	IconExpanded
)

var iconGlyphs = [...]string{
	IconLeaf:      " ",
	IconCollapsed: "▸",
	IconExpanded:  "▾",
}

func (i Icon) Glyph() string {
	if i < 0 || int(i) >= len(iconGlyphs) {
		return " "
	}
	return iconGlyphs[i]
}

// Row is one visible line of the chart.
type Row struct {
	Node  *TreeNode
	Depth int
	Icon  Icon
}

// Indent returns the row's indent for a given per-level unit (px or columns).
func (r Row) Indent(unit int) int {
	return r.Depth * unit
}

// Flatten walks the tree pre-order, emitting every node whose ancestors are
// all expanded. Output order follows child insertion order.
func Flatten(tree []*TreeNode, expanded Expansion) []Row {
	var out []Row
	flatten(tree, 0, expanded, &out)
	return out
}

func flatten(nodes []*TreeNode, depth int, expanded Expansion, out *[]Row) {
	for _, n := range nodes {
		open := n.HasChildren() && expanded != nil && expanded.IsExpanded(n.ID)
		*out = append(*out, Row{Node: n, Depth: depth, Icon: iconFor(n, open)})
		if open {
			flatten(n.Children, depth+1, expanded, out)
		}
	}
}

func iconFor(n *TreeNode, open bool) Icon {
	switch {
	case !n.HasChildren():
		return IconLeaf
	case open:
		return IconExpanded
	default:
		return IconCollapsed
	}
}

// IndexOf returns the position of id in rows, or -1.
func IndexOf(rows []Row, id NodeID) int {
	for i, r := range rows {
		if r.Node.ID == id {
			return i
		}
	}
	return -1
}

// ValidRows counts rows that can be drawn on the timeline.
func ValidRows(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.Node != nil && r.Node.HasDates() {
			n++
		}
	}
	return n
}
