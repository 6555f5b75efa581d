package bracket

import (
	"slices"
	"strings"

	"github.com/matzehuels/syntree/pkg/forest"
)

// SyntheticRootLabel wraps multi-rooted forests on export so the output is
// a single well-formed expression.
const SyntheticRootLabel = "ROOT"

// Serialize writes the forest as bracket notation.
//
// A Terminal node serializes to its bare label; a Category node to
// "[label child1 child2 ...]" with its children sorted by horizontal
// position — layout-driven left-to-right order is the user's intended
// sentence order, so insertion order is deliberately ignored here. The
// sort is stable, so children sharing an X coordinate (e.g. a freshly
// imported, un-laid-out forest) keep their edge-insertion order.
//
// A single-root forest serializes as that root's own expression. Multiple
// roots are sorted by X and wrapped in a synthetic group labeled
// [SyntheticRootLabel]. An empty forest serializes to "".
//
// Labels are written verbatim: labels containing brackets or whitespace
// produce output that does not parse back. The format has no escaping
// mechanism.
func Serialize(f *forest.Forest) string {
	roots := f.Roots()
	switch len(roots) {
	case 0:
		return ""
	case 1:
		var b strings.Builder
		writeNode(&b, f, roots[0])
		return b.String()
	}

	sortByX(roots)
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(SyntheticRootLabel)
	for _, r := range roots {
		b.WriteByte(' ')
		writeNode(&b, f, r)
	}
	b.WriteByte(']')
	return b.String()
}

func writeNode(b *strings.Builder, f *forest.Forest, n *forest.Node) {
	if n.Kind == forest.Terminal {
		b.WriteString(n.Label)
		return
	}

	b.WriteByte('[')
	b.WriteString(n.Label)
	children := f.ChildrenOf(n.ID)
	sortByX(children)
	for _, c := range children {
		b.WriteByte(' ')
		writeNode(b, f, c)
	}
	b.WriteByte(']')
}

func sortByX(nodes []*forest.Node) {
	slices.SortStableFunc(nodes, func(a, b *forest.Node) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		default:
			return 0
		}
	})
}
