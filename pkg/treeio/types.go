package treeio

import (
	"fmt"

	"github.com/matzehuels/syntree/pkg/forest"
)

// Node kind strings used on the wire.
const (
	KindCategory = "category"
	KindTerminal = "terminal"
)

// Document is the canonical JSON shape for a serialized forest.
// Used for files, API responses, and cache entries.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is the wire form of a forest node.
type Node struct {
	ID     int64   `json:"id"`
	Label  string  `json:"label"`
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Edge is the wire form of a parent→child relation.
type Edge struct {
	ID     int64 `json:"id"`
	Parent int64 `json:"parent"`
	Child  int64 `json:"child"`
}

// FromForest converts a forest to its wire form. Nodes follow creation
// order and edges insertion order, so output is deterministic.
func FromForest(f *forest.Forest) Document {
	nodes := f.Nodes()
	edges := f.Edges()

	doc := Document{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		doc.Nodes[i] = Node{
			ID:     n.ID,
			Label:  n.Label,
			Kind:   n.Kind.String(),
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
		}
	}
	for i, e := range edges {
		doc.Edges[i] = Edge{ID: e.ID, Parent: e.ParentID, Child: e.ChildID}
	}
	return doc
}

// ToForest builds a forest from a wire document. Ids are preserved and the
// forest's counters advance past the largest seen, so later CreateNode and
// CreateEdge calls get fresh ids.
func ToForest(doc Document) (*forest.Forest, error) {
	f := forest.New()
	for _, n := range doc.Nodes {
		kind, err := parseKind(n.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
		if _, err := f.AddNode(forest.Node{
			ID:     n.ID,
			Label:  n.Label,
			Kind:   kind,
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
		}); err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
	}
	for _, e := range doc.Edges {
		if _, err := f.AddEdge(forest.Edge{ID: e.ID, ParentID: e.Parent, ChildID: e.Child}); err != nil {
			return nil, fmt.Errorf("edge %d: %w", e.ID, err)
		}
	}
	return f, nil
}

func parseKind(s string) (forest.NodeKind, error) {
	switch s {
	case KindCategory, "":
		return forest.Category, nil
	case KindTerminal:
		return forest.Terminal, nil
	default:
		return 0, fmt.Errorf("unknown node kind %q", s)
	}
}
