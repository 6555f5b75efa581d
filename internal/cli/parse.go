package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/syntree/pkg/bracket"
	"github.com/matzehuels/syntree/pkg/pipeline"
	"github.com/matzehuels/syntree/pkg/treeio"
)

// parseCommand creates the parse command for building forests from
// bracket notation.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "parse <bracket-or-file>",
		Short: "Build a syntax forest from bracket notation",
		Long: `Build a syntax forest from labeled bracket notation.

The argument is an inline bracket expression, a file containing one,
or "-" for stdin. The output is a forest JSON file that the layout,
render, and view commands consume.

Examples:
  syntree parse "[NP [Det the] [N dog]]"
  syntree parse sentence.txt -o sentence.json
  cat sentence.txt | syntree parse -`,
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

			prog := newProgress(c.Logger)
			f, cacheHit, err := runner.ParseWithCacheInfo(cmd.Context(), pipeline.Options{
				Source:  source,
				Refresh: refresh,
				Logger:  c.Logger,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Parsed %d nodes with %d edges", f.NodeCount(), f.EdgeCount()))

			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()
			if err := treeio.Write(f, out); err != nil {
				return err
			}

			if output != "" {
				printSuccess("Parse complete")
				printFile(output)
				printStats(f.NodeCount(), f.EdgeCount(), cacheHit)
				printNewline()
				printNextStep("Layout", "syntree layout "+output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached results")

	return cmd
}

// exportCommand creates the export command for serializing forests back
// to bracket notation.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <forest.json>",
		Short: "Serialize a forest back to bracket notation",
		Long: `Serialize a forest JSON file back to labeled bracket notation.

Children are emitted left to right by their laid-out X coordinate, so an
exported forest reads in the same order it is drawn. Forests with several
roots are wrapped in a synthetic [ROOT ...] expression.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := treeio.ReadFile(args[0])
			if err != nil {
				return err
			}

			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()

			if _, err := fmt.Fprintln(out, bracket.Serialize(f)); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Export complete")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
