// Package render turns laid-out syntax forests into Graphviz artifacts.
//
// The layout engine owns all positioning: every node arrives with final
// coordinates, so DOT output pins positions and rendering runs the neato
// engine in no-op layout mode. Graphviz only draws boxes, labels, and
// edges. This package uses [github.com/goccy/go-graphviz] for in-process
// rendering, so no graphviz binary is required.
package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/syntree/pkg/forest"
)

// Output formats for rendered artifacts.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// Options configures DOT generation.
type Options struct {
	// ShowIDs appends node ids to labels, useful when debugging
	// editor integrations that address nodes by id.
	ShowIDs bool
}

// ToDOT converts a laid-out forest to Graphviz DOT. Positions are pinned
// with the "!" suffix so the drawing matches the layout engine exactly.
// Category nodes are drawn as rounded boxes, terminals as bare text.
func ToDOT(f *forest.Forest, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for _, n := range f.Nodes() {
		fmt.Fprintf(&buf, "  n%d [label=%q, pos=\"%g,%g!\", %s];\n",
			n.ID, fmtLabel(n, opts), n.X, -n.Y, kindAttrs(n.Kind))
	}

	buf.WriteString("\n")
	for _, e := range f.Edges() {
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", e.ParentID, e.ChildID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *forest.Node, opts Options) string {
	if opts.ShowIDs {
		return fmt.Sprintf("%s #%d", n.Label, n.ID)
	}
	return n.Label
}

func kindAttrs(k forest.NodeKind) string {
	if k == forest.Terminal {
		return "shape=plaintext, fontname=\"Times-Italic\""
	}
	return "shape=box, style=rounded"
}
