package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/syntree/internal/api"
	"github.com/matzehuels/syntree/pkg/buildinfo"
	"github.com/matzehuels/syntree/pkg/cache"
	"github.com/matzehuels/syntree/pkg/pipeline"
)

// redisAddrEnv names the Redis server for the shared API cache.
// When unset the server falls back to the local file cache.
const redisAddrEnv = "SYNTREE_REDIS_ADDR"

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the syntree HTTP API server",
		Long: `Run the syntree HTTP API server.

The server is stateless; every request carries a complete bracket
expression or forest document. Endpoints:

  POST /v1/parse    bracket notation -> forest JSON
  POST /v1/export   forest JSON -> bracket notation
  POST /v1/layout   bracket notation -> forest JSON with coordinates
  POST /v1/render   bracket notation -> svg/png/dot/json artifact
  GET  /healthz     liveness probe

Set ` + redisAddrEnv + ` to share the result cache across replicas;
otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	backend, err := c.serveCache(ctx, noCache)
	if err != nil {
		return err
	}

	// Scope keys by version so releases that change output don't serve
	// stale artifacts from a shared backend.
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	runner := pipeline.NewRunner(backend, keyer, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(runner, c.Logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveCache picks the cache backend for the server: Redis when
// configured, the local file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := os.Getenv(redisAddrEnv); addr != "" {
		backend, err := cache.NewRedisCache(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", addr, err)
		}
		c.Logger.Info("using redis cache", "addr", addr)
		return backend, nil
	}
	return newCache(false)
}
