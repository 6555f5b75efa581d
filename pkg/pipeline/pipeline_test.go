package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/syntree/pkg/cache"
)

const sentence = "[S [NP [Det the] [N dog]] [VP barks]]"

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestExecuteProducesArtifacts(t *testing.T) {
	r := newFileRunner(t)
	res, err := r.Execute(context.Background(), Options{
		Source:  sentence,
		Formats: []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Stats.NodeCount != 8 {
		t.Errorf("node count = %d, want 8", res.Stats.NodeCount)
	}
	if res.TreeHash == "" {
		t.Error("tree hash not computed")
	}
	if dot := string(res.Artifacts[FormatDOT]); !strings.Contains(dot, "graph G {") {
		t.Errorf("dot artifact missing graph header:\n%s", dot)
	}
	if js := string(res.Artifacts[FormatJSON]); !strings.Contains(js, `"nodes"`) {
		t.Errorf("json artifact missing nodes:\n%s", js)
	}
}

func TestExecuteCacheHitsOnSecondRun(t *testing.T) {
	r := newFileRunner(t)
	opts := Options{Source: sentence, Formats: []string{FormatDOT}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ParseHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss everywhere: %+v", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), Options{Source: sentence, Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.ParseHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit everywhere: %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatDOT]) != string(second.Artifacts[FormatDOT]) {
		t.Error("cached artifact differs from computed one")
	}
}

func TestRefreshBypassesParseCache(t *testing.T) {
	r := newFileRunner(t)
	ctx := context.Background()

	if _, _, err := r.ParseWithCacheInfo(ctx, Options{Source: sentence}); err != nil {
		t.Fatal(err)
	}
	_, hit, err := r.ParseWithCacheInfo(ctx, Options{Source: sentence, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("refresh run should not report a cache hit")
	}
}

func TestGeometryChangesLayoutKey(t *testing.T) {
	r := newFileRunner(t)
	ctx := context.Background()

	f, err := r.Parse(ctx, Options{Source: sentence})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := r.LayoutWithCacheInfo(ctx, f, "", Options{Source: sentence}); err != nil {
		t.Fatal(err)
	}

	// Different canvas geometry must not reuse the cached layout.
	f2, err := r.Parse(ctx, Options{Source: sentence})
	if err != nil {
		t.Fatal(err)
	}
	_, hit, err := r.LayoutWithCacheInfo(ctx, f2, "", Options{Source: sentence, Width: 1200})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("layout cache hit despite different geometry")
	}
}

func TestExecuteInvalidSource(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	if _, err := r.Execute(context.Background(), Options{Source: "[NP oops", Formats: []string{FormatDOT}}); err == nil {
		t.Fatal("want parse error for unbalanced input")
	}
}

func TestExecuteEmptySource(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	if _, err := r.Execute(context.Background(), Options{Formats: []string{FormatDOT}}); err == nil {
		t.Fatal("want error for missing source")
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{FormatSVG, FormatPNG, FormatDOT, FormatJSON}); err != nil {
		t.Errorf("all supported formats rejected: %v", err)
	}
	if err := ValidateFormats([]string{"pdf"}); err == nil {
		t.Error("unsupported format accepted")
	}
}

func TestDefaultFormatIsSVG(t *testing.T) {
	opts := Options{Source: sentence}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("default formats = %v, want [svg]", opts.Formats)
	}
}
