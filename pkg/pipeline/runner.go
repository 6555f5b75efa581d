package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/syntree/pkg/bracket"
	"github.com/matzehuels/syntree/pkg/cache"
	"github.com/matzehuels/syntree/pkg/forest"
	"github.com/matzehuels/syntree/pkg/layout"
	"github.com/matzehuels/syntree/pkg/observability"
	"github.com/matzehuels/syntree/pkg/render"
	"github.com/matzehuels/syntree/pkg/treeio"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx, len(opts.Source))
	f, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	observability.Pipeline().OnParseComplete(ctx, nodeCountOf(f), time.Since(parseStart), err)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = f.NodeCount()
	result.Stats.EdgeCount = f.EdgeCount()
	result.CacheInfo.ParseHit = parseHit

	// Content hash of the structural forest, before layout
	if data, err := treeio.Marshal(f); err == nil {
		result.TreeHash = cache.Hash(data)
	}

	r.Logger.Info("parsed input",
		"nodes", f.NodeCount(),
		"edges", f.EdgeCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, f.NodeCount())
	f, layoutHit, err := r.LayoutWithCacheInfo(ctx, f, result.TreeHash, opts)
	observability.Pipeline().OnLayoutComplete(ctx, time.Since(layoutStart), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Forest = f
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"roots", len(f.Roots()),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, f, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo parses bracket notation with caching and reports
// whether the result came from cache.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*forest.Forest, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.ParseKey(opts.Source)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if f, err := treeio.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "parse")
				return f, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "parse")

	f := forest.New()
	if _, err := bracket.Import(f, opts.Source); err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		if data, err := treeio.Marshal(f); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.ParseTTL)
			observability.Cache().OnCacheSet(ctx, "parse", len(data))
		}
	}

	return f, false, nil
}

// Parse is a convenience wrapper that discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*forest.Forest, error) {
	f, _, err := r.ParseWithCacheInfo(ctx, opts)
	return f, err
}

// LayoutWithCacheInfo computes coordinates with caching and reports
// whether the result came from cache. treeHash identifies the structural
// forest; pass "" to have it computed.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, f *forest.Forest, treeHash string, opts Options) (*forest.Forest, bool, error) {
	r.applyLogger(&opts)

	if treeHash == "" {
		data, err := treeio.Marshal(f)
		if err != nil {
			return nil, false, fmt.Errorf("serialize forest for cache key: %w", err)
		}
		treeHash = cache.Hash(data)
	}
	cacheKey := r.Keyer.LayoutKey(treeHash, opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := treeio.Unmarshal(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil
		}
		// Corrupt entry: fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	layout.New(opts.LayoutConfig()).Apply(f)

	if data, err := treeio.Marshal(f); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return f, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, f *forest.Forest, opts Options) (*forest.Forest, error) {
	out, _, err := r.LayoutWithCacheInfo(ctx, f, "", opts)
	return out, err
}

// RenderWithCacheInfo generates artifacts with caching and reports
// whether all of them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f *forest.Forest, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := treeio.Marshal(f)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := r.renderFormats(ctx, f, layoutData, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, f *forest.Forest, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, f, opts)
	return artifacts, err
}

// renderFormats produces every requested format. The DOT source is built
// once and shared by the graphviz-backed formats.
func (r *Runner) renderFormats(ctx context.Context, f *forest.Forest, layoutData []byte, opts Options) (map[string][]byte, error) {
	dot := render.ToDOT(f, render.Options{ShowIDs: opts.ShowIDs})

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			artifacts[format] = []byte(dot)
		case FormatJSON:
			artifacts[format] = layoutData
		case FormatSVG:
			data, err := render.RenderSVG(ctx, dot)
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = data
		case FormatPNG:
			data, err := render.RenderPNG(ctx, dot)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = data
		}
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func nodeCountOf(f *forest.Forest) int {
	if f == nil {
		return 0
	}
	return f.NodeCount()
}
