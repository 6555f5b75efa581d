package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/syntree/pkg/pipeline"
)

// renderCommand creates the render command for producing diagram files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
		refresh bool
		showIDs bool
	)
	var geo struct{ slotWidth, levelGap, width, height float64 }

	cmd := &cobra.Command{
		Use:   "render <bracket-or-file>",
		Short: "Render a syntax tree diagram",
		Long: `Render a syntax tree diagram from bracket notation or a forest file.

Runs the full parse, layout, render pipeline. Category nodes are drawn
as rounded boxes and terminals as italic text, connected top-down.

Formats: svg (default), png, dot, json. Several formats can be rendered
at once with a comma-separated list.

Examples:
  syntree render "[NP [Det the] [N dog]]" -o dog.svg
  syntree render sentence.txt -f svg,png,dot
  syntree render sentence.txt -f json -o sentence.layout.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := pipeline.Options{
				Source:    source,
				Refresh:   refresh,
				SlotWidth: geo.slotWidth,
				LevelGap:  geo.levelGap,
				Width:     geo.width,
				Height:    geo.height,
				Formats:   parseFormats(formats),
				ShowIDs:   showIDs,
				Logger:    c.Logger,
			}

			spinner := newSpinnerWithContext(cmd.Context(), "Rendering...")
			spinner.Start()
			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				spinner.StopWithError("Render failed")
				return err
			}
			spinner.Stop()

			if cmd.Context().Err() != nil {
				return cmd.Context().Err()
			}

			base := outputBase(args[0], output, opts.Formats)
			printSuccess("Render complete")
			for _, format := range opts.Formats {
				path := base
				if filepath.Ext(path) == "" {
					path = base + "." + format
				}
				if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}
			printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base name (default: tree.<format>)")
	cmd.Flags().StringVarP(&formats, "formats", "f", "", "comma-separated output formats: svg, png, dot, json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached results")
	cmd.Flags().BoolVar(&showIDs, "show-ids", false, "append node ids to labels")
	cmd.Flags().Float64Var(&geo.slotWidth, "slot-width", 0, "horizontal slot per child (default 80)")
	cmd.Flags().Float64Var(&geo.levelGap, "level-gap", 0, "vertical distance between rows (default 70)")
	cmd.Flags().Float64Var(&geo.width, "width", 0, "canvas width (default 800)")
	cmd.Flags().Float64Var(&geo.height, "height", 0, "canvas height (default 600)")

	return cmd
}

// outputBase derives the artifact file base name. An explicit -o with an
// extension is used verbatim for single-format runs; otherwise the input
// file stem (or "tree" for inline input) gets per-format extensions.
func outputBase(input, output string, formats []string) string {
	if output != "" {
		if len(formats) == 1 && filepath.Ext(output) != "" {
			return output
		}
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	if looksLikeFile(input) {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return "tree"
}
