// Package cache provides pluggable byte caches for the syntree pipeline.
//
// Three backends are available:
//   - FileCache: hash-sharded files on disk, used by the CLI
//   - RedisCache: shared cache for the hosted API
//   - NullCache: no-op backend for tests and --no-cache runs
//
// Keys are derived through the Keyer interface so every pipeline stage
// (parse, layout, render) uses a consistent, collision-resistant scheme.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Parse results are cheap to recompute
// but layouts and rendered artifacts are worth keeping longer.
const (
	ParseTTL    = 24 * time.Hour
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures everything that influences computed coordinates.
type LayoutKeyOpts struct {
	SlotWidth    float64 `json:"slot_width"`
	LevelGap     float64 `json:"level_gap"`
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
}

// ArtifactKeyOpts captures everything that influences a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"` // "svg", "png", "dot", "json"
	ShowIDs bool   `json:"show_ids"`
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// ParseKey generates a key for a parsed bracket expression.
	ParseKey(source string) string

	// LayoutKey generates a key for computed coordinates. treeHash
	// identifies the forest structure the layout was applied to.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact. layoutHash
	// identifies the laid-out forest the artifact was rendered from.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer implements the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ParseKey hashes the raw bracket source.
func (k *DefaultKeyer) ParseKey(source string) string {
	return hashKey("parse", source)
}

// LayoutKey combines the forest hash with the layout geometry.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey combines the layout hash with the output format.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
