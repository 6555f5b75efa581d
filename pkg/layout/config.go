package layout

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Geometry defaults, chosen so a ten-word sentence fits an 800x600 canvas.
const (
	DefaultSlotWidth    = 80.0
	DefaultLevelGap     = 70.0
	DefaultCanvasWidth  = 800.0
	DefaultCanvasHeight = 600.0
)

// Config holds the layout geometry. All dimensions are in canvas units
// (pixels for the usual rendering collaborators).
type Config struct {
	// SlotWidth is the fixed horizontal slot reserved per child.
	SlotWidth float64 `toml:"slot_width"`
	// LevelGap is the vertical distance between depth rows.
	LevelGap float64 `toml:"level_gap"`
	// CanvasWidth and CanvasHeight bound the viewport used for spreading
	// multiple roots and for the final re-centering pass.
	CanvasWidth  float64 `toml:"canvas_width"`
	CanvasHeight float64 `toml:"canvas_height"`
}

// DefaultConfig returns the built-in geometry.
func DefaultConfig() Config {
	return Config{
		SlotWidth:    DefaultSlotWidth,
		LevelGap:     DefaultLevelGap,
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
	}
}

func (c *Config) applyDefaults() {
	if c.SlotWidth == 0 {
		c.SlotWidth = DefaultSlotWidth
	}
	if c.LevelGap == 0 {
		c.LevelGap = DefaultLevelGap
	}
	if c.CanvasWidth == 0 {
		c.CanvasWidth = DefaultCanvasWidth
	}
	if c.CanvasHeight == 0 {
		c.CanvasHeight = DefaultCanvasHeight
	}
}

// configFile is the top-level TOML document shape:
//
//	[layout]
//	slot_width = 80
//	level_gap = 70
//	canvas_width = 800
//	canvas_height = 600
type configFile struct {
	Layout Config `toml:"layout"`
}

// LoadConfig reads geometry from a TOML file. Missing keys keep their
// defaults; a missing file is an error (pass "" upstream to skip loading).
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	doc := configFile{Layout: DefaultConfig()}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	doc.Layout.applyDefaults()
	return doc.Layout, nil
}
