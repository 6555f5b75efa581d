// Package forest implements the mutable store for labeled syntax forests.
//
// # Overview
//
// A forest is a set of disjoint rooted trees sharing one node/edge
// namespace. Nodes carry a label, a 2-D position, and a kind (Category for
// phrasal nodes, Terminal for word tokens); edges are directed parent→child
// relations. Ids are assigned from per-store monotonic counters and are
// never reused, even after deletion or Clear.
//
// # Shape discipline
//
// The store deliberately splits responsibilities:
//
//   - CreateEdge/DeleteEdge are permissive primitives. They check endpoint
//     existence and nothing else, so trusted rebuild paths (codec import)
//     can wire tree-shaped structure without redundant checks.
//   - Attach is the guarded workflow for user intents. It rejects edges
//     that would introduce a cycle and removes the child's previous parent
//     edge first, keeping each node at most one incoming edge.
//
// Queries (ChildrenOf, ParentOf, Roots, FindEdge, IsAncestor) are pure and
// ordering is deterministic: children in edge-insertion order, roots in
// node-creation order.
//
// All operations are synchronous and single-threaded; callers embedding the
// store in a concurrent host must serialize access themselves.
package forest
