package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/syntree/pkg/layout"
	"github.com/matzehuels/syntree/pkg/pipeline"
	"github.com/matzehuels/syntree/pkg/treeio"
)

// layoutCommand creates the layout command for computing tree coordinates.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		configPath string
	)
	var geo layout.Config

	cmd := &cobra.Command{
		Use:   "layout <bracket-or-file>",
		Short: "Compute 2-D coordinates for a syntax forest",
		Long: `Compute 2-D coordinates for a syntax forest.

The input is an inline bracket expression, a bracket file, or a forest
JSON file produced by 'parse'. The output is the same forest JSON with
final coordinates filled in, ready for 'render' or 'view'.

Geometry can be set via flags or a TOML config file:

  [layout]
  slot_width = 80
  level_gap = 70
  canvas_width = 800
  canvas_height = 600

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				cfg, err := layout.LoadConfig(configPath)
				if err != nil {
					return err
				}
				// Flags override the config file
				if geo.SlotWidth == 0 {
					geo.SlotWidth = cfg.SlotWidth
				}
				if geo.LevelGap == 0 {
					geo.LevelGap = cfg.LevelGap
				}
				if geo.CanvasWidth == 0 {
					geo.CanvasWidth = cfg.CanvasWidth
				}
				if geo.CanvasHeight == 0 {
					geo.CanvasHeight = cfg.CanvasHeight
				}
			}

			f, err := loadForest(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := pipeline.Options{
				SlotWidth: geo.SlotWidth,
				LevelGap:  geo.LevelGap,
				Width:     geo.CanvasWidth,
				Height:    geo.CanvasHeight,
				Logger:    c.Logger,
			}

			spinner := newSpinnerWithContext(cmd.Context(), "Computing layout...")
			spinner.Start()
			f, cacheHit, err := runner.LayoutWithCacheInfo(cmd.Context(), f, "", opts)
			if err != nil {
				spinner.StopWithError("Layout failed")
				return fmt.Errorf("compute layout: %w", err)
			}
			spinner.Stop()

			if cmd.Context().Err() != nil {
				return cmd.Context().Err()
			}

			outputPath := output
			if outputPath == "" && looksLikeFile(args[0]) {
				base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				outputPath = base + ".layout.json"
			}

			out, err := openOutput(outputPath)
			if err != nil {
				return err
			}
			defer out.Close()
			if err := treeio.Write(f, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			if outputPath != "" {
				printSuccess("Layout complete")
				printFile(outputPath)
				printStats(f.NodeCount(), f.EdgeCount(), cacheHit)
				printNewline()
				printNextStep("Render", "syntree render "+outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json for file input, stdout otherwise)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with [layout] geometry")
	cmd.Flags().Float64Var(&geo.SlotWidth, "slot-width", 0, "horizontal slot per child (default 80)")
	cmd.Flags().Float64Var(&geo.LevelGap, "level-gap", 0, "vertical distance between rows (default 70)")
	cmd.Flags().Float64Var(&geo.CanvasWidth, "width", 0, "canvas width (default 800)")
	cmd.Flags().Float64Var(&geo.CanvasHeight, "height", 0, "canvas height (default 600)")

	return cmd
}
