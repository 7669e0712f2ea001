package gantt

import (
	"encoding/json"
	"sort"
)

// ExpansionState tracks which group nodes are open. It outlives any single
// tree: rebuilding hands it new topology through SetTreeData while the id
// set is kept, so open categories stay open after a data refresh.
type ExpansionState struct {
	expanded IDSet
	tree     []*TreeNode
}

func NewExpansionState() *ExpansionState {
	return &ExpansionState{expanded: make(IDSet)}
}

// SetTreeData replaces the topology used by ExpandAll / ExpandToLevel.
func (s *ExpansionState) SetTreeData(tree []*TreeNode) {
	s.tree = tree
}

func (s *ExpansionState) IsExpanded(id NodeID) bool {
	return s.expanded.IsExpanded(id)
}

// Toggle opens a closed node or closes an open one. It returns the new state.
func (s *ExpansionState) Toggle(id NodeID) bool {
	if s.expanded.IsExpanded(id) {
		delete(s.expanded, id)
		return false
	}
	s.expanded[id] = struct{}{}
	return true
}

// ExpandAll opens every node that has children.
func (s *ExpansionState) ExpandAll() {
	Walk(s.tree, func(n *TreeNode) bool {
		if n.HasChildren() {
			s.expanded[n.ID] = struct{}{}
		}
		return true
	})
}

func (s *ExpansionState) CollapseAll() {
	s.expanded = make(IDSet)
}

// Reset drops both the id set and the topology.
func (s *ExpansionState) Reset() {
	s.expanded = make(IDSet)
	s.tree = nil
}

// ExpandToLevel opens exactly the group nodes shallower than level, so rows
// down to that level are visible and nothing deeper is.
func (s *ExpansionState) ExpandToLevel(level int) {
	s.expanded = make(IDSet)
	Walk(s.tree, func(n *TreeNode) bool {
		if n.Level >= level {
			return false
		}
		if n.HasChildren() {
			s.expanded[n.ID] = struct{}{}
		}
		return true
	})
}

func (s *ExpansionState) Len() int { return len(s.expanded) }

// IDs returns the expanded ids in sorted order.
func (s *ExpansionState) IDs() []NodeID {
	out := make([]NodeID, 0, len(s.expanded))
	for id := range s.expanded {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Restore replaces the id set.
func (s *ExpansionState) Restore(ids []NodeID) {
	s.expanded = NewIDSet(ids...)
}

// expansionDocVersion is the schema version of the persisted document.
const expansionDocVersion = 1

type expansionDoc struct {
	Version  int      `json:"version"`
	Expanded []NodeID `json:"expanded"`
}

// MarshalJSON encodes the state as {"version":1,"expanded":[...]}.
func (s *ExpansionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(expansionDoc{Version: expansionDocVersion, Expanded: s.IDs()})
}

// UnmarshalJSON restores ids; documents from unknown versions are ignored.
func (s *ExpansionState) UnmarshalJSON(data []byte) error {
	var doc expansionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Version != expansionDocVersion {
		s.expanded = make(IDSet)
		return nil
	}
	s.Restore(doc.Expanded)
	return nil
}
