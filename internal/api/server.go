// Package api implements the hosted HTTP surface for syntree.
//
// The server is stateless: every request carries a complete bracket
// expression or forest document, runs through the shared pipeline, and
// returns the result. Horizontal scaling needs no coordination beyond
// the optional shared Redis cache.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/syntree/pkg/buildinfo"
	"github.com/matzehuels/syntree/pkg/pipeline"
)

// Server wires the pipeline runner to HTTP handlers.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server. The runner owns the cache; the server
// never touches it directly.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the chi router with the full middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(Logging(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/export", s.handleExport)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}
