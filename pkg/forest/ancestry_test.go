package forest

import (
	"errors"
	"testing"
)

// chain builds a→b→c→d and returns the forest plus the four nodes.
func chain(t *testing.T) (*Forest, []*Node) {
	t.Helper()
	f := New()
	labels := []string{"a", "b", "c", "d"}
	nodes := make([]*Node, len(labels))
	for i, l := range labels {
		nodes[i] = f.CreateNode(l, 0, 0, Category)
	}
	for i := 0; i < len(nodes)-1; i++ {
		if _, err := f.CreateEdge(nodes[i].ID, nodes[i+1].ID); err != nil {
			t.Fatal(err)
		}
	}
	return f, nodes
}

func TestIsAncestor(t *testing.T) {
	f, n := chain(t)

	tests := []struct {
		name      string
		candidate int64
		node      int64
		want      bool
	}{
		{"DirectParent", n[0].ID, n[1].ID, true},
		{"TransitiveAncestor", n[0].ID, n[3].ID, true},
		{"Descendant", n[3].ID, n[0].ID, false},
		{"Self", n[1].ID, n[1].ID, false},
		{"Sibling-less unrelated", n[2].ID, n[0].ID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IsAncestor(tt.candidate, tt.node); got != tt.want {
				t.Errorf("IsAncestor(%d, %d) = %v, want %v", tt.candidate, tt.node, got, tt.want)
			}
		})
	}
}

func TestAttachRejectsCycle(t *testing.T) {
	f, n := chain(t)

	// Connecting the chain head under its own descendant must fail.
	if _, err := f.Attach(n[3].ID, n[0].ID); !errors.Is(err, ErrWouldCycle) {
		t.Fatalf("err = %v, want ErrWouldCycle", err)
	}

	// Rejection happens before any mutation: the old structure is intact.
	if p, ok := f.ParentOf(n[0].ID); ok {
		t.Errorf("head gained a parent %v after rejected attach", p)
	}
	if f.EdgeCount() != 3 {
		t.Errorf("edge count = %d, want 3", f.EdgeCount())
	}
}

func TestAttachRejectsSelf(t *testing.T) {
	f := New()
	a := f.CreateNode("a", 0, 0, Category)
	if _, err := f.Attach(a.ID, a.ID); !errors.Is(err, ErrWouldCycle) {
		t.Errorf("err = %v, want ErrWouldCycle", err)
	}
}

func TestAttachReparents(t *testing.T) {
	f := New()
	p1 := f.CreateNode("p1", 0, 0, Category)
	p2 := f.CreateNode("p2", 0, 0, Category)
	c := f.CreateNode("c", 0, 0, Category)
	if _, err := f.Attach(p1.ID, c.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := f.Attach(p2.ID, c.ID); err != nil {
		t.Fatal(err)
	}

	// Single-parent invariant: the old edge is gone, exactly one remains.
	if _, ok := f.FindEdge(p1.ID, c.ID); ok {
		t.Error("old parent edge survived reparent")
	}
	parent, ok := f.ParentOf(c.ID)
	if !ok || parent.ID != p2.ID {
		t.Errorf("ParentOf(c) = %v, want p2", parent)
	}
	if f.EdgeCount() != 1 {
		t.Errorf("edge count = %d, want 1", f.EdgeCount())
	}
}

func TestAcyclicityUnderAttachSequences(t *testing.T) {
	f := New()
	var ids []int64
	for i := 0; i < 6; i++ {
		ids = append(ids, f.CreateNode("n", 0, 0, Category).ID)
	}

	// Tangle the forest with a mix of valid and invalid attaches.
	moves := [][2]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {3, 4}, {4, 1}, {2, 3}, {5, 0}}
	for _, m := range moves {
		f.Attach(ids[m[0]], ids[m[1]]) // rejected moves are no-ops
	}

	// isAncestor(a,b) must imply !isAncestor(b,a) for every pair.
	for _, a := range ids {
		for _, b := range ids {
			if f.IsAncestor(a, b) && f.IsAncestor(b, a) {
				t.Fatalf("mutual ancestry between %d and %d", a, b)
			}
		}
	}
	for _, id := range ids {
		if f.IsAncestor(id, id) {
			t.Fatalf("node %d became its own ancestor", id)
		}
	}
}

func TestAttachUnknownNodes(t *testing.T) {
	f := New()
	a := f.CreateNode("a", 0, 0, Category)
	if _, err := f.Attach(999, a.ID); !errors.Is(err, ErrUnknownParentNode) {
		t.Errorf("err = %v, want ErrUnknownParentNode", err)
	}
	if _, err := f.Attach(a.ID, 999); !errors.Is(err, ErrUnknownChildNode) {
		t.Errorf("err = %v, want ErrUnknownChildNode", err)
	}
}
