package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/syntree/pkg/bracket"
	"github.com/matzehuels/syntree/pkg/forest"
	"github.com/matzehuels/syntree/pkg/layout"
)

func laidOutSentence(t *testing.T) *forest.Forest {
	t.Helper()
	f := forest.New()
	if _, err := bracket.Import(f, "[NP [Det the] [N dog]]"); err != nil {
		t.Fatal(err)
	}
	layout.New(layout.DefaultConfig()).Apply(f)
	return f
}

func TestToDOTNodesAndEdges(t *testing.T) {
	f := laidOutSentence(t)
	dot := ToDOT(f, Options{})

	for _, n := range f.Nodes() {
		if !strings.Contains(dot, `label="`+n.Label+`"`) {
			t.Errorf("DOT missing label %q", n.Label)
		}
	}
	if got, want := strings.Count(dot, " -- "), f.EdgeCount(); got != want {
		t.Errorf("DOT has %d edges, want %d", got, want)
	}
}

func TestToDOTPinsPositions(t *testing.T) {
	f := laidOutSentence(t)
	dot := ToDOT(f, Options{})

	// Every node line carries a pinned pos attribute.
	if got, want := strings.Count(dot, `!"`), f.NodeCount(); got != want {
		t.Errorf("found %d pinned positions, want %d", got, want)
	}
}

func TestToDOTKindShapes(t *testing.T) {
	f := laidOutSentence(t)
	dot := ToDOT(f, Options{})

	if !strings.Contains(dot, "shape=box") {
		t.Error("categories should render as boxes")
	}
	if !strings.Contains(dot, "shape=plaintext") {
		t.Error("terminals should render as plain text")
	}
}

func TestToDOTShowIDs(t *testing.T) {
	f := forest.New()
	n := f.CreateNode("NP", 0, 0, forest.Category)

	plain := ToDOT(f, Options{})
	if strings.Contains(plain, "#") {
		t.Error("ids should be hidden by default")
	}

	withIDs := ToDOT(f, Options{ShowIDs: true})
	if !strings.Contains(withIDs, "NP #1") {
		t.Errorf("ShowIDs output missing id suffix for node %d:\n%s", n.ID, withIDs)
	}
}

func TestToDOTEmptyForest(t *testing.T) {
	dot := ToDOT(forest.New(), Options{})
	if !strings.HasPrefix(dot, "graph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty forest should still produce a valid graph:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="108pt" height="73pt" viewBox="0.00 0.00 108.25 73.00" xmlns="http://www.w3.org/2000/svg">
<g></g></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 108.25 73.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="108" height="73"`) {
		t.Errorf("pixel dimensions missing: %s", out)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	in := []byte("<svg><g></g></svg>")
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("svg without viewBox should pass through unchanged: %s", got)
	}
}
