package forest

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidID is returned by [Forest.AddNode] and [Forest.AddEdge] when
	// the caller-provided id is not positive.
	ErrInvalidID = errors.New("id must be positive")

	// ErrDuplicateID is returned by [Forest.AddNode] and [Forest.AddEdge]
	// when the id is already in use.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrUnknownParentNode is returned by [Forest.CreateEdge] and
	// [Forest.Attach] when the parent node does not exist.
	ErrUnknownParentNode = errors.New("unknown parent node")

	// ErrUnknownChildNode is returned by [Forest.CreateEdge] and
	// [Forest.Attach] when the child node does not exist.
	ErrUnknownChildNode = errors.New("unknown child node")

	// ErrWouldCycle is returned by [Forest.Attach] when connecting the child
	// to the parent would make a node its own ancestor. The check runs before
	// any mutation, so a rejected attach leaves the forest unchanged.
	ErrWouldCycle = errors.New("edge would introduce a cycle")
)

// Default node box dimensions, used for layout spacing and connector
// geometry. Nodes carry their own Width/Height so a future variable-width
// label box only touches CreateNode.
const (
	DefaultNodeWidth  = 60.0
	DefaultNodeHeight = 30.0
)

// NodeKind distinguishes phrasal nodes from leaf tokens. The kind decides
// how the bracket codec serializes a node: categories become bracketed
// groups, terminals become bare text.
type NodeKind int

const (
	// Category is an internal/phrasal node ("NP", "VP").
	Category NodeKind = iota
	// Terminal is a leaf word token ("dog", "barks").
	Terminal
)

func (k NodeKind) String() string {
	switch k {
	case Category:
		return "category"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Node represents one tree element in the forest.
//
// The ID is assigned by the store from a monotonically increasing counter
// and is never reused, even after deletion or Clear. X and Y are mutated by
// the layout engine or by external drag collaborators; the store never
// touches them.
type Node struct {
	ID     int64
	Label  string
	Kind   NodeKind
	X, Y   float64
	Width  float64
	Height float64
}

// Edge is a directed parent→child relation between two nodes. Edges relate
// nodes, they do not own them: deleting either endpoint cascades to the edge.
type Edge struct {
	ID       int64
	ParentID int64
	ChildID  int64
}

// Forest is a mutable store of labeled nodes and parent→child edges.
//
// The store itself is permissive: CreateEdge only checks that both endpoints
// exist and will happily record a second parent for a node. Forest shape
// (single parent, no cycles) is maintained by the [Forest.Attach] workflow,
// which is the only edge-creation path user intents should go through.
// Direct CreateEdge calls are reserved for trusted rebuild paths such as
// codec import, where the structure is tree-shaped by construction.
//
// Forest is not safe for concurrent use without external synchronization.
type Forest struct {
	nodes     map[int64]*Node
	nodeOrder []int64 // creation order, for Roots and Nodes
	edges     []*Edge // insertion order
	edgesByID map[int64]*Edge
	outgoing  map[int64][]*Edge // parentID -> edges, insertion order
	incoming  map[int64][]*Edge // childID -> edges, insertion order

	nodeSeq int64
	edgeSeq int64
}

// New creates an empty forest store.
func New() *Forest {
	return &Forest{
		nodes:     make(map[int64]*Node),
		edgesByID: make(map[int64]*Edge),
		outgoing:  make(map[int64][]*Edge),
		incoming:  make(map[int64][]*Edge),
	}
}

// CreateNode adds a node with a fresh id and returns it. It always succeeds;
// the label is taken as-is and the node box gets the default dimensions.
func (f *Forest) CreateNode(label string, x, y float64, kind NodeKind) *Node {
	f.nodeSeq++
	n := &Node{
		ID:     f.nodeSeq,
		Label:  label,
		Kind:   kind,
		X:      x,
		Y:      y,
		Width:  DefaultNodeWidth,
		Height: DefaultNodeHeight,
	}
	f.nodes[n.ID] = n
	f.nodeOrder = append(f.nodeOrder, n.ID)
	return n
}

// AddNode inserts a node with a caller-provided id, advancing the id
// counter past it so later CreateNode calls cannot collide. This is the
// trusted deserialization path used by treeio; interactive construction
// goes through CreateNode.
func (f *Forest) AddNode(n Node) (*Node, error) {
	if n.ID <= 0 {
		return nil, ErrInvalidID
	}
	if _, exists := f.nodes[n.ID]; exists {
		return nil, ErrDuplicateID
	}
	if n.Width == 0 {
		n.Width = DefaultNodeWidth
	}
	if n.Height == 0 {
		n.Height = DefaultNodeHeight
	}
	node := &n
	f.nodes[node.ID] = node
	f.nodeOrder = append(f.nodeOrder, node.ID)
	if node.ID > f.nodeSeq {
		f.nodeSeq = node.ID
	}
	return node, nil
}

// AddEdge inserts an edge with a caller-provided id, advancing the edge id
// counter past it. Both endpoints must exist. Like AddNode this is for
// trusted deserialization; it performs no forest-shape validation.
func (f *Forest) AddEdge(e Edge) (*Edge, error) {
	if e.ID <= 0 {
		return nil, ErrInvalidID
	}
	if _, exists := f.edgesByID[e.ID]; exists {
		return nil, ErrDuplicateID
	}
	if _, ok := f.nodes[e.ParentID]; !ok {
		return nil, ErrUnknownParentNode
	}
	if _, ok := f.nodes[e.ChildID]; !ok {
		return nil, ErrUnknownChildNode
	}
	edge := &e
	f.edges = append(f.edges, edge)
	f.edgesByID[edge.ID] = edge
	f.outgoing[edge.ParentID] = append(f.outgoing[edge.ParentID], edge)
	f.incoming[edge.ChildID] = append(f.incoming[edge.ChildID], edge)
	if edge.ID > f.edgeSeq {
		f.edgeSeq = edge.ID
	}
	return edge, nil
}

// Node returns the node with the given id and true, or nil and false.
// The returned pointer refers to the live node, so position and label
// writes are visible to subsequent queries.
func (f *Forest) Node(id int64) (*Node, bool) {
	n, ok := f.nodes[id]
	return n, ok
}

// DeleteNode removes the node and every edge where it appears as parent or
// child. Deleting an absent id is a no-op.
func (f *Forest) DeleteNode(id int64) {
	if _, ok := f.nodes[id]; !ok {
		return
	}
	for _, e := range slices.Clone(f.outgoing[id]) {
		f.DeleteEdge(e.ID)
	}
	for _, e := range slices.Clone(f.incoming[id]) {
		f.DeleteEdge(e.ID)
	}
	delete(f.nodes, id)
	f.nodeOrder = slices.DeleteFunc(f.nodeOrder, func(n int64) bool { return n == id })
}

// CreateEdge records a directed parent→child edge with a fresh id.
// Returns ErrUnknownParentNode or ErrUnknownChildNode if an endpoint is
// missing. No forest-shape validation happens here; see [Forest.Attach].
func (f *Forest) CreateEdge(parentID, childID int64) (*Edge, error) {
	if _, ok := f.nodes[parentID]; !ok {
		return nil, ErrUnknownParentNode
	}
	if _, ok := f.nodes[childID]; !ok {
		return nil, ErrUnknownChildNode
	}
	f.edgeSeq++
	e := &Edge{ID: f.edgeSeq, ParentID: parentID, ChildID: childID}
	f.edges = append(f.edges, e)
	f.edgesByID[e.ID] = e
	f.outgoing[parentID] = append(f.outgoing[parentID], e)
	f.incoming[childID] = append(f.incoming[childID], e)
	return e, nil
}

// DeleteEdge removes the edge with the given id. Absent ids are a no-op.
func (f *Forest) DeleteEdge(id int64) {
	e, ok := f.edgesByID[id]
	if !ok {
		return
	}
	delete(f.edgesByID, id)
	f.edges = slices.DeleteFunc(f.edges, func(x *Edge) bool { return x.ID == id })
	f.outgoing[e.ParentID] = slices.DeleteFunc(f.outgoing[e.ParentID], func(x *Edge) bool { return x.ID == id })
	f.incoming[e.ChildID] = slices.DeleteFunc(f.incoming[e.ChildID], func(x *Edge) bool { return x.ID == id })
}

// FindEdge returns the first edge (by insertion order) connecting parentID
// to childID. Under the forest invariant at most one match exists, but the
// query does not assume it.
func (f *Forest) FindEdge(parentID, childID int64) (*Edge, bool) {
	for _, e := range f.outgoing[parentID] {
		if e.ChildID == childID {
			return e, true
		}
	}
	return nil, false
}

// ChildrenOf returns the node's children in edge-insertion order, not
// sorted by position. Returns nil for a leaf or an absent id.
func (f *Forest) ChildrenOf(id int64) []*Node {
	edges := f.outgoing[id]
	if len(edges) == 0 {
		return nil
	}
	children := make([]*Node, 0, len(edges))
	for _, e := range edges {
		if n, ok := f.nodes[e.ChildID]; ok {
			children = append(children, n)
		}
	}
	return children
}

// ParentOf returns the node at the parent end of the first incoming edge,
// or nil and false for a root or an absent id.
func (f *Forest) ParentOf(id int64) (*Node, bool) {
	for _, e := range f.incoming[id] {
		if n, ok := f.nodes[e.ParentID]; ok {
			return n, true
		}
	}
	return nil, false
}

// Roots returns all nodes with zero incoming edges, in node-creation order.
// A store may have zero, one, or many roots.
func (f *Forest) Roots() []*Node {
	var roots []*Node
	for _, id := range f.nodeOrder {
		if len(f.incoming[id]) == 0 {
			roots = append(roots, f.nodes[id])
		}
	}
	return roots
}

// Nodes returns all nodes in creation order.
func (f *Forest) Nodes() []*Node {
	nodes := make([]*Node, 0, len(f.nodeOrder))
	for _, id := range f.nodeOrder {
		nodes = append(nodes, f.nodes[id])
	}
	return nodes
}

// Edges returns a copy of the edge list in insertion order.
func (f *Forest) Edges() []*Edge { return slices.Clone(f.edges) }

// NodeCount returns the number of nodes in the store.
func (f *Forest) NodeCount() int { return len(f.nodes) }

// EdgeCount returns the number of edges in the store.
func (f *Forest) EdgeCount() int { return len(f.edges) }

// Clear empties both collections. The id counters are NOT reset: ids keep
// increasing across a clear, so nothing handed out earlier can ever collide
// with a node or edge created later.
func (f *Forest) Clear() {
	f.nodes = make(map[int64]*Node)
	f.nodeOrder = nil
	f.edges = nil
	f.edgesByID = make(map[int64]*Edge)
	f.outgoing = make(map[int64][]*Edge)
	f.incoming = make(map[int64][]*Edge)
}
