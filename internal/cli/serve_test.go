package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pearls/pkg/cache"
	"github.com/matzehuels/pearls/pkg/palette"
	"github.com/matzehuels/pearls/pkg/pipeline"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := log.New(io.Discard)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return newServer(pipeline.NewRunner(fc, nil, logger), logger, 10*time.Second)
}

func TestServeHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
	if got := rec.Header().Get("Server"); !strings.HasPrefix(got, "pearls/") {
		t.Errorf("Server header = %q", got)
	}
}

func TestServePalettes(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/palettes", nil))

	var got []palette.Palette
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(palette.Names()) {
		t.Errorf("got %d palettes, want %d", len(got), len(palette.Names()))
	}
}

func TestServeRenderQuery(t *testing.T) {
	tests := []struct {
		path        string
		contentType string
		prefix      string
	}{
		{"/render.svg?rows=3&cols=4&seed=7", "image/svg+xml", "<?xml"},
		{"/render.png?scale=0.5", "image/png", "\x89PNG"},
		{"/render.json?palette=mint", "application/json", "{"},
	}
	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if rec.Header().Get("X-Render-ID") == "" {
				t.Error("missing X-Render-ID header")
			}
			if !strings.HasPrefix(rec.Body.String(), tt.prefix) {
				t.Errorf("body starts with %q, want %q", rec.Body.String()[:min(8, rec.Body.Len())], tt.prefix)
			}
		})
	}
}

func TestServeRenderCaches(t *testing.T) {
	srv := newTestServer(t)
	get := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/render.svg?seed=42", nil))
		return rec
	}

	first, second := get(), get()
	if got := first.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}
	if got := second.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
	if first.Header().Get("X-Render-ID") == second.Header().Get("X-Render-ID") {
		t.Error("each run should get its own ID")
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached artifact differs from the fresh one")
	}
}

func TestServeRenderBody(t *testing.T) {
	body := `{"rows": 4, "cols": 4, "seed": 3, "palette": "ember", "formats": ["json"]}`
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var doc struct {
		Rows   int `json:"rows"`
		Layers []struct {
			Color string `json:"color"`
		} `json:"layers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	ember, _ := palette.Preset("ember")
	if doc.Rows != 4 || len(doc.Layers) != len(ember.Colors) {
		t.Errorf("rows %d with %d layers, want 4 with %d", doc.Rows, len(doc.Layers), len(ember.Colors))
	}
}

func TestServeErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"bad format", http.MethodGet, "/render.gif", "", http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad number", http.MethodGet, "/render.svg?rows=abc", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"too many rows", http.MethodGet, "/render.svg?rows=100000", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad color", http.MethodGet, "/render.svg?colors=" + url.QueryEscape("#zzz"), "", http.StatusBadRequest, "INVALID_COLOR"},
		{"unknown palette", http.MethodGet, "/render.svg?palette=nope", "", http.StatusNotFound, "NOT_FOUND"},
		{"unknown field", http.MethodPost, "/render", `{"rowz": 3}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed body", http.MethodPost, "/render", `{`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, body))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("error body: %v", err)
			}
			if resp.Code != tt.code || resp.Error == "" {
				t.Errorf("error response = %+v, want code %s", resp, tt.code)
			}
		})
	}
}

func TestOptionsFromQuery(t *testing.T) {
	q := url.Values{
		"rows":    {"6"},
		"density": {"0.5"},
		"seed":    {"18446744073709551615"},
		"fill":    {"scatter"},
		"colors":  {"#111,#222"},
	}
	opts, err := optionsFromQuery(q)
	if err != nil {
		t.Fatal(err)
	}
	want := pipeline.DefaultOptions()
	want.Rows = 6
	want.Density = 0.5
	want.Seed = 18446744073709551615
	want.Fill = "scatter"
	want.Colors = []string{"#111", "#222"}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("optionsFromQuery mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheStatus(t *testing.T) {
	tests := []struct {
		ci   pipeline.CacheInfo
		want string
	}{
		{pipeline.CacheInfo{}, "miss"},
		{pipeline.CacheInfo{GridHit: true}, "partial"},
		{pipeline.CacheInfo{GridHit: true, RenderHit: true}, "hit"},
	}
	for _, tt := range tests {
		if got := cacheStatus(tt.ci); got != tt.want {
			t.Errorf("cacheStatus(%+v) = %q, want %q", tt.ci, got, tt.want)
		}
	}
}
