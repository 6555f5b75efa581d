package bracket

import (
	"strings"

	"github.com/matzehuels/syntree/pkg/forest"
)

// Rebuild materializes a parse tree as fresh nodes and edges in the store
// and returns the created root node. One Category node is created per
// ParseTree; each child is wired with a direct edge from the freshly
// created parent. The structure is tree-shaped by construction, so edges
// go through CreateEdge rather than the Attach guard. Leaf tokens, if
// present, become exactly one Terminal child whose label is the tokens
// joined by single spaces.
//
// A ParseTree with neither children nor leaf text becomes a single
// unattached Category node — a bare leaf category is legal input.
//
// Positions start at the origin; run the layout engine afterwards.
func Rebuild(f *forest.Forest, tree *ParseTree) *forest.Node {
	node := f.CreateNode(tree.Label, 0, 0, forest.Category)
	for _, child := range tree.Children {
		c := Rebuild(f, child)
		f.CreateEdge(node.ID, c.ID)
	}
	if len(tree.LeafText) > 0 {
		leaf := f.CreateNode(strings.Join(tree.LeafText, " "), 0, 0, forest.Terminal)
		f.CreateEdge(node.ID, leaf.ID)
	}
	return node
}

// Import parses the input and, only on success, replaces the entire
// contents of the store with the rebuilt forest. On a parse error the
// store is left untouched — parsing fully completes or fails before any
// mutation begins.
func Import(f *forest.Forest, input string) (*forest.Node, error) {
	tree, err := Parse(input)
	if err != nil {
		return nil, err
	}
	f.Clear()
	return Rebuild(f, tree), nil
}
