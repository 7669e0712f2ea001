package gantt

import (
	"strconv"
	"strings"
)

// NodeID identifies a tree node. Group ids are derived from (level, category
// path) so they are stable across rebuilds; expansion state is keyed by them.
type NodeID string

const (
	pathSeparator = "/"
	escapeChar    = `\`
)

var segmentEscaper = strings.NewReplacer(escapeChar, escapeChar+escapeChar, pathSeparator, escapeChar+pathSeparator, ":", escapeChar+":")

func escapeSegment(s string) string {
	return segmentEscaper.Replace(s)
}

// GroupID encodes a group node id as g<level>:<seg>/<seg>... with each
// segment escaped, so "A/B"+"C" and "A"+"B/C" never collide.
func GroupID(level int, path ...string) NodeID {
	var b strings.Builder
	b.WriteString("g")
	b.WriteString(strconv.Itoa(level))
	b.WriteString(":")
	for i, seg := range path {
		if i > 0 {
			b.WriteString(pathSeparator)
		}
		b.WriteString(escapeSegment(seg))
	}
	return NodeID(b.String())
}

// TaskNodeID is the id of the leaf wrapping task id.
func TaskNodeID(taskID string) NodeID {
	return NodeID("t:" + escapeSegment(taskID))
}

// IsGroupID reports whether id was produced by GroupID.
func (id NodeID) IsGroupID() bool {
	return strings.HasPrefix(string(id), "g")
}
