// Package report computes every report over a published snapshot: the
// dimension hierarchy, component lists, the per-user timesheet and the
// per-day calendar.
package report

import (
	"encoding/json"
	"sort"

	"github.com/ALT-F4-LLC/hours/internal/filter"
	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/snapshot"
)

// RootName is the name of the hierarchy root node.
const RootName = "flare"

// Extractor returns the label of one tree level for an entry.
type Extractor func(model.TimeLog) (string, error)

// Measure returns the quantity summed at the leaves.
type Measure func(model.TimeLog) int64

// TimeSpent measures an entry by its signed seconds.
func TimeSpent(tl model.TimeLog) int64 { return tl.TimeSpent }

// Node is one node of the hierarchy. Leaves carry a Value, inner nodes carry
// Children ordered lexicographically by name.
type Node struct {
	Name     string
	Value    int64
	Children []*Node
	leaf     bool
}

// IsLeaf reports whether the node sits at the last dimension level.
func (n *Node) IsLeaf() bool { return n.leaf }

// Total sums every leaf value below n.
func (n *Node) Total() int64 {
	if n.leaf {
		return n.Value
	}
	var sum int64
	for _, c := range n.Children {
		sum += c.Total()
	}
	return sum
}

// Child returns the direct child named name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

type leafJSON struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type innerJSON struct {
	Name     string  `json:"name"`
	Children []*Node `json:"children"`
}

// MarshalJSON emits {"name","value"} for leaves and {"name","children"} for
// inner nodes. Inner nodes always carry a children array, even when empty.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.leaf {
		return json.Marshal(leafJSON{Name: n.Name, Value: n.Value})
	}
	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	return json.Marshal(innerJSON{Name: n.Name, Children: children})
}

type branch struct {
	children map[string]*branch
	value    int64
}

// Aggregate builds a tree with one level per extractor. Each entry descends
// through the labels its extractors return and adds its measure to the leaf
// at the end of that path. The first extractor error aborts the build.
func Aggregate(entries []model.TimeLog, measure Measure, extractors []Extractor) (*Node, error) {
	root := &branch{children: map[string]*branch{}}
	labels := make([]string, len(extractors))
	for _, tl := range entries {
		for i, ex := range extractors {
			l, err := ex(tl)
			if err != nil {
				return nil, err
			}
			labels[i] = l
		}
		cur := root
		for _, l := range labels {
			next, ok := cur.children[l]
			if !ok {
				next = &branch{children: map[string]*branch{}}
				cur.children[l] = next
			}
			cur = next
		}
		cur.value += measure(tl)
	}
	return freeze(RootName, root, len(extractors)), nil
}

func freeze(name string, b *branch, depth int) *Node {
	if depth == 0 {
		return &Node{Name: name, Value: b.value, leaf: true}
	}
	n := &Node{Name: name, Children: make([]*Node, 0, len(b.children))}
	names := make([]string, 0, len(b.children))
	for k := range b.children {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		n.Children = append(n.Children, freeze(k, b.children[k], depth-1))
	}
	return n
}

// DimensionExtractor returns the extractor reading dimension d from s.
func DimensionExtractor(s *snapshot.Snapshot, d model.Dimension) Extractor {
	return func(tl model.TimeLog) (string, error) {
		return s.Label(tl, d)
	}
}

// Hierarchy sums time spent inside w under the ordered dimensions.
func Hierarchy(s *snapshot.Snapshot, w filter.Window, dims []model.Dimension) (*Node, error) {
	if len(dims) == 0 {
		return nil, errNoDimensions
	}
	extractors := make([]Extractor, len(dims))
	for i, d := range dims {
		if err := model.ValidateDimension(d); err != nil {
			return nil, err
		}
		extractors[i] = DimensionExtractor(s, d)
	}
	return Aggregate(filter.TimeLogs(s.TimeLogs(), w), TimeSpent, extractors)
}
