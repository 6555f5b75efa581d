package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/syntree/pkg/cache"
	"github.com/matzehuels/syntree/pkg/pipeline"
	"github.com/matzehuels/syntree/pkg/treeio"
)

const sentence = "[S [NP [Det the] [N dog]] [VP barks]]"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	srv := httptest.NewServer(NewServer(runner, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestParseEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/v1/parse", `{"source":"`+sentence+`"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Canonical != sentence {
		t.Errorf("canonical = %q, want %q", body.Canonical, sentence)
	}
	if len(body.Forest.Nodes) != 8 {
		t.Errorf("forest has %d nodes, want 8", len(body.Forest.Nodes))
	}
}

func TestParseEndpointSyntaxError(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/v1/parse", `{"source":"[NP oops"}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error == "" {
		t.Error("error body missing message")
	}
}

func TestExportRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	parse := postJSON(t, srv.URL+"/v1/parse", `{"source":"`+sentence+`"}`)
	var parsed parseResponse
	if err := json.NewDecoder(parse.Body).Decode(&parsed); err != nil {
		t.Fatal(err)
	}

	doc, err := json.Marshal(exportRequest{Forest: parsed.Forest})
	if err != nil {
		t.Fatal(err)
	}
	export := postJSON(t, srv.URL+"/v1/export", string(doc))
	if export.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", export.StatusCode)
	}
	var exported exportResponse
	if err := json.NewDecoder(export.Body).Decode(&exported); err != nil {
		t.Fatal(err)
	}
	if exported.Source != sentence {
		t.Errorf("exported source = %q, want %q", exported.Source, sentence)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/v1/layout", `{"source":"`+sentence+`"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var doc treeio.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}

	var placed bool
	for _, n := range doc.Nodes {
		if n.Y > 0 {
			placed = true
		}
	}
	if !placed {
		t.Error("no node below the root row; layout apparently not applied")
	}
}

func TestRenderDOT(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/v1/render?format=dot", `{"source":"`+sentence+`"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("content type = %q", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "graph G {") {
		t.Errorf("body missing DOT header:\n%s", body)
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/v1/render?format=gif", `{"source":"[S x]"}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response missing generated X-Request-ID")
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream-123")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if got := resp2.Header.Get("X-Request-ID"); got != "upstream-123" {
		t.Errorf("X-Request-ID = %q, want upstream-123", got)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/v1/parse", `{not json`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
