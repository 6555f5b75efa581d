// Package cli implements the syntree command-line interface.
//
// This package provides commands for parsing bracket notation into syntax
// forests, computing tree layouts, rendering diagrams, browsing trees
// interactively, and serving the HTTP API. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - parse: Build a forest from bracket notation and emit JSON
//   - export: Serialize a forest JSON file back to bracket notation
//   - layout: Compute 2-D coordinates for a forest
//   - render: Generate SVG, PNG, or DOT diagrams
//   - view: Browse a tree interactively in the terminal
//   - serve: Run the HTTP API server
//   - cache: Manage the local result cache
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/syntree/pkg/bracket"
	"github.com/matzehuels/syntree/pkg/buildinfo"
	"github.com/matzehuels/syntree/pkg/cache"
	"github.com/matzehuels/syntree/pkg/forest"
	"github.com/matzehuels/syntree/pkg/pipeline"
	"github.com/matzehuels/syntree/pkg/treeio"
)

// appName is the application name used for directories and display.
const appName = "syntree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "syntree",
		Short:        "Syntree draws linguistic syntax trees from bracket notation",
		Long:         `Syntree is a CLI tool for turning labeled bracket notation like "[NP [Det the] [N dog]]" into laid-out syntax tree diagrams, with lossless JSON round-tripping for editor integrations.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	backend, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/syntree/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// readSource resolves a positional argument into bracket notation. An
// existing file is read; "-" reads stdin; anything else is taken as a
// literal bracket expression.
func readSource(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if looksLikeFile(arg) {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", arg, err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return arg, nil
}

// looksLikeFile reports whether arg is a file path rather than an inline
// bracket expression. Bracket input always starts with '['; anything else
// that exists on disk or carries a known extension is a file.
func looksLikeFile(arg string) bool {
	if strings.HasPrefix(arg, "[") {
		return false
	}
	if _, err := os.Stat(arg); err == nil {
		return true
	}
	lower := strings.ToLower(arg)
	return strings.HasSuffix(lower, ".txt") ||
		strings.HasSuffix(lower, ".json") ||
		strings.HasSuffix(lower, ".tree")
}

// loadForest reads a forest from either a treeio JSON file or a bracket
// notation source, detected by content.
func loadForest(arg string) (*forest.Forest, error) {
	source, err := readSource(arg)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(source, "{") {
		return treeio.Unmarshal([]byte(source))
	}
	f := forest.New()
	if _, err := bracket.Import(f, source); err != nil {
		return nil, err
	}
	return f, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// nopCloser wraps an io.Writer with a no-op Close method, making
// os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// An empty path means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
