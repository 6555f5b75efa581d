package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/syntree/pkg/bracket"
	"github.com/matzehuels/syntree/pkg/forest"
)

func buildSentence(t *testing.T) *forest.Forest {
	t.Helper()
	f := forest.New()
	if _, err := bracket.Import(f, "[S [NP [Det the] [N dog]] [VP barks]]"); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestApplyDeterministic(t *testing.T) {
	f := buildSentence(t)
	eng := New(DefaultConfig())

	eng.Apply(f)
	first := make(map[int64][2]float64)
	for _, n := range f.Nodes() {
		first[n.ID] = [2]float64{n.X, n.Y}
	}

	eng.Apply(f)
	for _, n := range f.Nodes() {
		if got := [2]float64{n.X, n.Y}; got != first[n.ID] {
			t.Errorf("node %d moved between runs: %v -> %v", n.ID, first[n.ID], got)
		}
	}
}

func TestApplyDepthRows(t *testing.T) {
	f := buildSentence(t)
	cfg := DefaultConfig()
	New(cfg).Apply(f)

	// Depth is derived per node; all nodes at one depth share a Y and the
	// rows are LevelGap apart.
	byLabel := map[string]*forest.Node{}
	for _, n := range f.Nodes() {
		byLabel[n.Label] = n
	}

	s, np, vp := byLabel["S"], byLabel["NP"], byLabel["VP"]
	if np.Y != vp.Y {
		t.Errorf("siblings NP and VP on different rows: %g vs %g", np.Y, vp.Y)
	}
	if got, want := np.Y-s.Y, cfg.LevelGap; got != want {
		t.Errorf("row gap = %g, want %g", got, want)
	}

	det, n := byLabel["Det"], byLabel["N"]
	if det.Y != n.Y {
		t.Errorf("Det and N on different rows: %g vs %g", det.Y, n.Y)
	}
	if got, want := det.Y-np.Y, cfg.LevelGap; got != want {
		t.Errorf("row gap = %g, want %g", got, want)
	}
}

func TestApplyCentersChildren(t *testing.T) {
	f := buildSentence(t)
	New(DefaultConfig()).Apply(f)

	byLabel := map[string]*forest.Node{}
	for _, n := range f.Nodes() {
		byLabel[n.Label] = n
	}

	s, np, vp := byLabel["S"], byLabel["NP"], byLabel["VP"]
	if np.X >= vp.X {
		t.Errorf("children out of order: NP at %g, VP at %g", np.X, vp.X)
	}
	if mid := (np.X + vp.X) / 2; mid != s.X {
		t.Errorf("parent not centered over children: mid %g, parent %g", mid, s.X)
	}
}

func TestApplyNonNegativeCoordinates(t *testing.T) {
	f := forest.New()
	// A very wide flat tree pushes leftmost slots beyond the canvas edge
	// before re-centering clamps them.
	if _, err := bracket.Import(f, "[S [A a] [B b] [C c] [D d] [E e] [F f] [G g] [H h] [I i] [J j] [K k] [L l]]"); err != nil {
		t.Fatal(err)
	}
	New(Config{CanvasWidth: 300, CanvasHeight: 200}).Apply(f)

	for _, n := range f.Nodes() {
		if n.X < 0 || n.Y < 0 {
			t.Errorf("node %q at negative position (%g, %g)", n.Label, n.X, n.Y)
		}
	}
}

func TestApplyMultiRootSpread(t *testing.T) {
	f := forest.New()
	f.CreateNode("A", 0, 0, forest.Category)
	f.CreateNode("B", 0, 0, forest.Category)
	f.CreateNode("C", 0, 0, forest.Category)
	New(DefaultConfig()).Apply(f)

	nodes := f.Nodes()
	if !(nodes[0].X < nodes[1].X && nodes[1].X < nodes[2].X) {
		t.Errorf("roots not spread left to right: %g, %g, %g", nodes[0].X, nodes[1].X, nodes[2].X)
	}
	// Evenly spaced at canvasWidth/(rootCount+1) intervals.
	if d1, d2 := nodes[1].X-nodes[0].X, nodes[2].X-nodes[1].X; d1 != d2 {
		t.Errorf("uneven root spacing: %g vs %g", d1, d2)
	}
}

func TestApplyEmptyForest(t *testing.T) {
	New(DefaultConfig()).Apply(forest.New()) // must not panic
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[layout]
slot_width = 100
canvas_width = 1024
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SlotWidth != 100 || cfg.CanvasWidth != 1024 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.LevelGap != DefaultLevelGap || cfg.CanvasHeight != DefaultCanvasHeight {
		t.Errorf("missing keys lost defaults: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("want error for missing config file")
	}
}
