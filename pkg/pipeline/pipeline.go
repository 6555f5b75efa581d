// Package pipeline provides the core processing pipeline for syntree.
//
// This package implements the complete parse → layout → render pipeline
// shared by the CLI and the API server. Centralizing it keeps behavior
// and caching consistent across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Build a forest from bracket notation
//  2. Layout: Compute 2-D coordinates for every node
//  3. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "[NP [Det the] [N dog]]",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/syntree/pkg/cache"
	"github.com/matzehuels/syntree/pkg/errors"
	"github.com/matzehuels/syntree/pkg/forest"
	"github.com/matzehuels/syntree/pkg/layout"
)

// Output format constants.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Source  string `json:"source"`            // Bracket notation input
	Refresh bool   `json:"refresh,omitempty"` // Bypass cached results

	// Layout options (zero values fall back to layout defaults)
	SlotWidth float64 `json:"slot_width,omitempty"`
	LevelGap  float64 `json:"level_gap,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	ShowIDs bool     `json:"show_ids,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Forest is the parsed, laid-out forest.
	Forest *forest.Forest

	// TreeHash is the content hash of the parsed forest, before layout.
	TreeHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool
	LayoutHit bool
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutConfig returns the layout geometry derived from the options.
// Zero-valued fields fall back to the layout package defaults.
func (o *Options) LayoutConfig() layout.Config {
	cfg := layout.Config{
		SlotWidth:    o.SlotWidth,
		LevelGap:     o.LevelGap,
		CanvasWidth:  o.Width,
		CanvasHeight: o.Height,
	}
	return cfg
}

// LayoutKeyOpts returns cache key options for layout computation.
// Defaults are resolved first so explicit and implicit geometry share keys.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := layout.DefaultConfig()
	if o.SlotWidth != 0 {
		cfg.SlotWidth = o.SlotWidth
	}
	if o.LevelGap != 0 {
		cfg.LevelGap = o.LevelGap
	}
	if o.Width != 0 {
		cfg.CanvasWidth = o.Width
	}
	if o.Height != 0 {
		cfg.CanvasHeight = o.Height
	}
	return cache.LayoutKeyOpts{
		SlotWidth:    cfg.SlotWidth,
		LevelGap:     cfg.LevelGap,
		CanvasWidth:  cfg.CanvasWidth,
		CanvasHeight: cfg.CanvasHeight,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, ShowIDs: o.ShowIDs}
}
