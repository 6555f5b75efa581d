// Package layout computes 2-D coordinates for syntax forests.
//
// The algorithm is deterministic and purely structural: prior positions are
// ignored, so applying it twice to an unmodified forest yields identical
// coordinates. Each root's subtree is laid out top-down — children reserve
// a fixed horizontal slot each and are centered contiguously around their
// parent's anchor, with vertical rows derived from tree depth. Multiple
// roots are spread evenly across the canvas width. A final pass re-centers
// the bounding box of all placed nodes inside the viewport, clamped so no
// coordinate goes negative.
package layout

import (
	"math"

	"github.com/matzehuels/syntree/pkg/forest"
)

// Engine applies the structural layout with a fixed geometry configuration.
type Engine struct {
	cfg Config
}

// New creates an engine. Zero-valued config fields fall back to defaults.
func New(cfg Config) *Engine {
	cfg.applyDefaults()
	return &Engine{cfg: cfg}
}

// Apply assigns fresh coordinates to every node in the forest. Node order
// within a row follows edge-insertion order; the forest topology is not
// modified.
func (e *Engine) Apply(f *forest.Forest) {
	roots := f.Roots()
	if len(roots) == 0 {
		return
	}

	slot := e.cfg.CanvasWidth / float64(len(roots)+1)
	for i, r := range roots {
		e.placeSubtree(f, r, slot*float64(i+1), 0)
	}
	e.recenter(f)
}

// placeSubtree positions the subtree rooted at n around the horizontal
// anchor. Depth, not the recursive anchor, derives the vertical row: all
// children of one parent share depth*LevelGap regardless of how far the
// anchor wandered horizontally.
func (e *Engine) placeSubtree(f *forest.Forest, n *forest.Node, anchor float64, depth int) {
	y := float64(depth) * e.cfg.LevelGap
	children := f.ChildrenOf(n.ID)
	if len(children) == 0 {
		n.X, n.Y = anchor, y
		return
	}

	total := float64(len(children)) * e.cfg.SlotWidth
	start := anchor - total/2
	for i, c := range children {
		childAnchor := start + e.cfg.SlotWidth*float64(i) + e.cfg.SlotWidth/2
		e.placeSubtree(f, c, childAnchor, depth+1)
	}
	n.X, n.Y = anchor, y
}

// recenter translates every node so the content bounding box (including
// node boxes) is centered in the viewport, clamped so the minimum
// coordinate is never negative.
func (e *Engine) recenter(f *forest.Forest) {
	nodes := f.Nodes()
	if len(nodes) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X+n.Width)
		maxY = math.Max(maxY, n.Y+n.Height)
	}

	dx := (e.cfg.CanvasWidth-(maxX-minX))/2 - minX
	dy := (e.cfg.CanvasHeight-(maxY-minY))/2 - minY
	if minX+dx < 0 {
		dx = -minX
	}
	if minY+dy < 0 {
		dy = -minY
	}

	for _, n := range nodes {
		n.X += dx
		n.Y += dy
	}
}
