package forest

// IsAncestor reports whether candidateID is an ancestor of nodeID, walking
// parent edges upward from nodeID. A node is not its own ancestor.
//
// Termination relies on the forest being acyclic, which Attach maintains by
// construction: the walk strictly decreases remaining depth, and the guard
// here is exactly what prevents a cycle from ever being introduced.
func (f *Forest) IsAncestor(candidateID, nodeID int64) bool {
	cur, ok := f.ParentOf(nodeID)
	for ok {
		if cur.ID == candidateID {
			return true
		}
		cur, ok = f.ParentOf(cur.ID)
	}
	return false
}

// Attach connects childID under parentID, replacing any existing parent
// edge of the child. This is the reparent-on-connect workflow and the only
// edge-creation path that preserves forest shape:
//
//  1. Reject with ErrWouldCycle if the prospective child is already an
//     ancestor of the prospective parent (connecting a node to its own
//     descendant would close a cycle).
//  2. Delete the child's current parent edge, if any, so the single-parent
//     invariant holds by removal-before-insertion.
//  3. Create the new edge.
//
// The cycle check runs strictly before any mutation, so a rejected attach
// leaves the store unchanged.
func (f *Forest) Attach(parentID, childID int64) (*Edge, error) {
	if _, ok := f.nodes[parentID]; !ok {
		return nil, ErrUnknownParentNode
	}
	if _, ok := f.nodes[childID]; !ok {
		return nil, ErrUnknownChildNode
	}
	if parentID == childID || f.IsAncestor(childID, parentID) {
		return nil, ErrWouldCycle
	}
	for _, e := range f.incoming[childID] {
		f.DeleteEdge(e.ID)
		break
	}
	return f.CreateEdge(parentID, childID)
}
