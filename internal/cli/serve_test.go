package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/markout/pkg/cache"
)

func newTestRouter(t *testing.T, store cache.Cache) http.Handler {
	t.Helper()
	logger := newLogger(&bytes.Buffer{}, log.ErrorLevel)
	return newRouter(logger, store, time.Minute)
}

func postRender(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeRender(t *testing.T) {
	h := newTestRouter(t, cache.NewNullCache())

	body := `{"tree": {"children": [
		{"name": "div", "children": [{"name": "p"}, {"name": "p"}]}
	]}}`
	rec := postRender(t, h, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := "<div>\n\t<p></p>\n\t<p></p>\n</div>"
	if resp.Output != want {
		t.Errorf("output = %q, want %q", resp.Output, want)
	}
	if resp.Nodes != 4 {
		t.Errorf("nodes = %d, want 4", resp.Nodes)
	}
	if resp.Cached {
		t.Error("first render should not be cached")
	}
}

func TestServeRenderProfileOverrides(t *testing.T) {
	h := newTestRouter(t, cache.NewNullCache())

	body := `{
		"tree": {"children": [{"name": "br", "selfClosing": true}]},
		"profile": {"self_closing_style": "xhtml"}
	}`
	rec := postRender(t, h, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Output != "<br />" {
		t.Errorf("output = %q, want %q", resp.Output, "<br />")
	}
}

func TestServeRenderFieldsKeep(t *testing.T) {
	h := newTestRouter(t, cache.NewNullCache())

	body := `{
		"tree": {"children": [{"name": "div", "value": "say ${1:hi}"}]},
		"fields": "keep"
	}`
	rec := postRender(t, h, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Output != "<div>say ${1:hi}</div>" {
		t.Errorf("output = %q", resp.Output)
	}
}

func TestServeRenderErrors(t *testing.T) {
	h := newTestRouter(t, cache.NewNullCache())

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "malformed json",
			body:     `{"tree": `,
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_INPUT",
		},
		{
			name:     "missing tree",
			body:     `{"fields": "discard"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_INPUT",
		},
		{
			name:     "unknown top-level key",
			body:     `{"tree": {}, "bogus": 1}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_INPUT",
		},
		{
			name:     "invalid tree shape",
			body:     `{"tree": {"attributes": [{"value": "x"}]}}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_TREE",
		},
		{
			name:     "invalid profile override",
			body:     `{"tree": {}, "profile": {"attribute_quote": "backtick"}}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_PROFILE",
		},
		{
			name:     "invalid fields mode",
			body:     `{"tree": {}, "fields": "drop"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_INPUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postRender(t, h, tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			var errResp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != tt.wantErr {
				t.Errorf("code = %q, want %q", errResp.Code, tt.wantErr)
			}
		})
	}
}

func TestServeRenderCached(t *testing.T) {
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	h := newTestRouter(t, store)
	body := `{"tree": {"children": [{"name": "p", "value": "hello"}]}}`

	first := postRender(t, h, body)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
	var resp renderResponse
	if err := json.Unmarshal(first.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Cached {
		t.Error("first request should be a cache miss")
	}

	second := postRender(t, h, body)
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Cached {
		t.Error("second identical request should hit the cache")
	}
	if resp.Output != "<p>hello</p>" {
		t.Errorf("cached output = %q", resp.Output)
	}
}

func TestServeHealthz(t *testing.T) {
	h := newTestRouter(t, cache.NewNullCache())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q, want status ok", rec.Body.String())
	}
}

func TestServeRequestID(t *testing.T) {
	h := newTestRouter(t, cache.NewNullCache())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a generated X-Request-ID")
	}

	// A client-supplied ID is echoed back
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("X-Request-ID = %q, want %q", got, "req-42")
	}
}

func TestServeVersion(t *testing.T) {
	h := newTestRouter(t, cache.NewNullCache())

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if _, ok := body["version"]; !ok {
		t.Error("version response missing version key")
	}
}
