package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/matzehuels/syntree/pkg/bracket"
	syntreeerrors "github.com/matzehuels/syntree/pkg/errors"
	"github.com/matzehuels/syntree/pkg/pipeline"
	"github.com/matzehuels/syntree/pkg/treeio"
)

// parseRequest is the body for POST /v1/parse.
type parseRequest struct {
	Source string `json:"source"`
}

// parseResponse echoes the canonical form plus the full forest document.
type parseResponse struct {
	Canonical string          `json:"canonical"`
	Forest    treeio.Document `json:"forest"`
}

// handleParse builds a forest from bracket notation and returns it.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, syntreeerrors.New(syntreeerrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}

	f, err := s.runner.Parse(r.Context(), pipeline.Options{Source: req.Source})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, parseResponse{
		Canonical: bracket.Serialize(f),
		Forest:    treeio.FromForest(f),
	})
}

// exportRequest is the body for POST /v1/export: a full forest document.
type exportRequest struct {
	Forest treeio.Document `json:"forest"`
}

type exportResponse struct {
	Source string `json:"source"`
}

// handleExport serializes a forest document back to bracket notation.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, syntreeerrors.New(syntreeerrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}

	f, err := treeio.ToForest(req.Forest)
	if err != nil {
		writeError(w, r, syntreeerrors.Wrap(syntreeerrors.ErrCodeInvalidInput, err, "invalid forest document"))
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{Source: bracket.Serialize(f)})
}

// handleLayout parses and lays out a bracket expression, returning the
// forest document with final coordinates.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, r, syntreeerrors.New(syntreeerrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}

	f, err := s.runner.Parse(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	f, err = s.runner.Layout(r.Context(), f, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, treeio.FromForest(f))
}

// handleRender runs the full pipeline and streams one rendered artifact.
// The format comes from the ?format query parameter, default svg.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, r, syntreeerrors.New(syntreeerrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/vnd.graphviz"
	}
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	writeJSON(w, status, errorResponse{
		Error: syntreeerrors.UserMessage(err),
		Code:  string(syntreeerrors.GetCode(err)),
	})
}

func statusFor(err error) int {
	var synErr *bracket.SyntaxError
	if errors.As(err, &synErr) {
		return http.StatusBadRequest
	}
	if code := syntreeerrors.GetCode(err); strings.HasPrefix(string(code), "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
