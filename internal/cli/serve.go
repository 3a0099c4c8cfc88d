package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/markout/pkg/buildinfo"
	"github.com/matzehuels/markout/pkg/cache"
	apperrors "github.com/matzehuels/markout/pkg/errors"
	"github.com/matzehuels/markout/pkg/io"
	"github.com/matzehuels/markout/pkg/observability"
	"github.com/matzehuels/markout/pkg/profile"
	"github.com/matzehuels/markout/pkg/render/markup"
)

const (
	cacheBackendNone  = "none"
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"

	shutdownTimeout = 10 * time.Second
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr         string        // listen address
	cacheBackend string        // "none", "file", or "redis"
	cacheDir     string        // file cache directory (XDG default if empty)
	redisAddr    string        // redis address for the redis backend
	cacheTTL     time.Duration // time-to-live for cached render results
}

// newServeCmd creates the serve command for running the HTTP render API.
//
// Endpoints:
//   - POST /render: render a tree with optional profile overrides
//   - GET /healthz: liveness probe
//   - GET /version: build information
//
// Render results are cached by request body hash. The cache backend is
// selected with --cache (none, file, redis).
func newServeCmd() *cobra.Command {
	opts := serveOpts{
		addr:         ":8080",
		cacheBackend: cacheBackendFile,
		cacheTTL:     time.Hour,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.cacheBackend, "cache", opts.cacheBackend, "cache backend: none, file, redis")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "file cache directory (defaults to XDG cache dir)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "redis address for --cache=redis")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", opts.cacheTTL, "cache entry time-to-live")

	return cmd
}

// newServeCache builds the cache backend selected by the flags.
// Backend failures degrade to a null cache rather than refusing to start.
func newServeCache(ctx context.Context, opts *serveOpts, logger *charmlog.Logger) cache.Cache {
	switch opts.cacheBackend {
	case cacheBackendRedis:
		c, err := cache.NewRedisCache(ctx, opts.redisAddr)
		if err != nil {
			logger.Warnf("Redis cache unavailable, caching disabled: %v", err)
			return cache.NewNullCache()
		}
		return c
	case cacheBackendFile:
		dir := opts.cacheDir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				logger.Warnf("Cache dir unavailable, caching disabled: %v", err)
				return cache.NewNullCache()
			}
			dir = d
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			logger.Warnf("File cache unavailable, caching disabled: %v", err)
			return cache.NewNullCache()
		}
		return c
	default:
		return cache.NewNullCache()
	}
}

// runServe starts the HTTP server and blocks until ctx is cancelled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	if opts.cacheBackend != cacheBackendNone && opts.cacheBackend != cacheBackendFile && opts.cacheBackend != cacheBackendRedis {
		return fmt.Errorf("invalid cache backend: %s (must be 'none', 'file', or 'redis')", opts.cacheBackend)
	}

	store := newServeCache(ctx, opts, logger)
	defer store.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newRouter(logger, store, opts.cacheTTL),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", opts.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// newRouter builds the chi router with request ID and logging middleware.
func newRouter(logger *charmlog.Logger, store cache.Cache, ttl time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))

	r.Post("/render", handleRender(store, ttl))
	r.Get("/healthz", handleHealth)
	r.Get("/version", handleVersion)

	return r
}

// requestIDKey is the context key for the per-request ID.
const requestIDKey ctxKey = 1

// requestID assigns each request a UUID, exposed via the X-Request-ID
// response header and the request context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(req.Context(), requestIDKey, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// requestLogger logs each request with its ID, method, path, and duration.
func requestLogger(logger *charmlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			observability.HTTP().OnRequest(req.Context(), req.Method, req.URL.Path)

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, req)

			elapsed := time.Since(start)
			observability.HTTP().OnResponse(req.Context(), req.Method, req.URL.Path, sw.status, elapsed)
			id, _ := req.Context().Value(requestIDKey).(string)
			logger.Debug("request",
				"id", id,
				"method", req.Method,
				"path", req.URL.Path,
				"status", sw.status,
				"duration", elapsed.Round(time.Millisecond))
		})
	}
}

// statusWriter records the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// renderRequest is the POST /render body. Tree is the wire form accepted
// by pkg/io; Profile holds optional overrides applied over the defaults.
type renderRequest struct {
	Tree    json.RawMessage   `json:"tree"`
	Profile *profileOverrides `json:"profile,omitempty"`
	Fields  string            `json:"fields,omitempty"`
}

// profileOverrides mirrors the profile knobs with pointer fields so
// absent keys leave the defaults untouched.
type profileOverrides struct {
	Format                   *bool    `json:"format,omitempty"`
	FormatForce              []string `json:"format_force,omitempty"`
	FormatSkip               []string `json:"format_skip,omitempty"`
	InlineBreak              *int     `json:"inline_break,omitempty"`
	BooleanAttributes        []string `json:"boolean_attributes,omitempty"`
	CompactBooleanAttributes *bool    `json:"compact_boolean_attributes,omitempty"`
	Indent                   *string  `json:"indent,omitempty"`
	TagCase                  *string  `json:"tag_case,omitempty"`
	AttributeCase            *string  `json:"attribute_case,omitempty"`
	AttributeQuote           *string  `json:"attribute_quote,omitempty"`
	SelfClosingStyle         *string  `json:"self_closing_style,omitempty"`
	InlineElements           []string `json:"inline_elements,omitempty"`
}

// apply merges the overrides into p.
func (o *profileOverrides) apply(p *profile.Profile) {
	if o == nil {
		return
	}
	if o.Format != nil {
		p.Format = *o.Format
	}
	if o.FormatForce != nil {
		p.FormatForce = o.FormatForce
	}
	if o.FormatSkip != nil {
		p.FormatSkip = o.FormatSkip
	}
	if o.InlineBreak != nil {
		p.InlineBreak = *o.InlineBreak
	}
	if o.BooleanAttributes != nil {
		p.BooleanAttributes = o.BooleanAttributes
	}
	if o.CompactBooleanAttributes != nil {
		p.CompactBooleanAttributes = *o.CompactBooleanAttributes
	}
	if o.Indent != nil {
		p.Indent = *o.Indent
	}
	if o.TagCase != nil {
		p.TagCase = profile.Case(*o.TagCase)
	}
	if o.AttributeCase != nil {
		p.AttributeCase = profile.Case(*o.AttributeCase)
	}
	if o.AttributeQuote != nil {
		p.AttributeQuote = profile.Quote(*o.AttributeQuote)
	}
	if o.SelfClosingStyle != nil {
		p.SelfClosingStyle = profile.SelfClosing(*o.SelfClosingStyle)
	}
	if o.InlineElements != nil {
		p.InlineElements = o.InlineElements
	}
}

// renderResponse is the POST /render response body.
type renderResponse struct {
	Output string `json:"output"`
	Nodes  int    `json:"nodes"`
	Cached bool   `json:"cached"`
}

// errorResponse is the JSON error body for all endpoints.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// handleRender renders a tree from the request body, consulting the cache
// keyed by the body hash before rendering.
func handleRender(store cache.Cache, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(http.MaxBytesReader(w, req.Body, 1<<20)); err != nil {
			writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read request body"))
			return
		}
		body := buf.Bytes()

		key := cache.RenderKey(body)
		if data, ok, err := store.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "render")
			var resp renderResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				resp.Cached = true
				writeJSON(w, http.StatusOK, resp)
				return
			}
		}
		observability.Cache().OnCacheMiss(ctx, "render")

		resp, err := renderFromBody(ctx, body)
		if err != nil {
			writeError(w, err)
			return
		}

		if data, err := json.Marshal(resp); err == nil {
			if err := store.Set(ctx, key, data, ttl); err == nil {
				observability.Cache().OnCacheSet(ctx, "render", len(data))
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// renderFromBody decodes the request body and renders the tree.
func renderFromBody(ctx context.Context, body []byte) (*renderResponse, error) {
	var req renderRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request")
	}
	if len(req.Tree) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "missing tree")
	}
	if req.Fields == "" {
		req.Fields = fieldsDiscard
	}
	if err := validateFields(req.Fields); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "fields")
	}

	tree, err := io.ReadJSON(bytes.NewReader(req.Tree))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidTree, err, "parse tree")
	}

	p := profile.Default()
	req.Profile.apply(p)
	if err := p.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidProfile, err, "profile")
	}

	nodes := countNodes(tree)
	start := time.Now()
	observability.Render().OnRenderStart(ctx, "api")
	out := markup.Render(tree, p, fieldRenderer(req.Fields))
	observability.Render().OnRenderComplete(ctx, "api", nodes, len(out), time.Since(start), nil)

	return &renderResponse{Output: out, Nodes: nodes}, nil
}

// handleHealth is the liveness probe.
func handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion reports build information.
func handleVersion(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured error response using the error's code.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.HTTPStatus(err), errorResponse{
		Code:  string(apperrors.GetCode(err)),
		Error: apperrors.UserMessage(err),
	})
}
