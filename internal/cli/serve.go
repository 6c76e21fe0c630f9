package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pearls/pkg/buildinfo"
	"github.com/matzehuels/pearls/pkg/errors"
	"github.com/matzehuels/pearls/pkg/observability"
	"github.com/matzehuels/pearls/pkg/palette"
	"github.com/matzehuels/pearls/pkg/pipeline"
)

const (
	defaultAddr     = ":8080"
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command, an HTTP front end to the pipeline.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders over HTTP",
		Long: `Serve renders over HTTP.

Endpoints:
  GET  /healthz                 liveness probe
  GET  /palettes                preset palettes as JSON
  GET  /render.{format}         render from query parameters
                                (rows, cols, density, margin, seed, stroke,
                                 palette, colors, background, width, fill,
                                 rng, scale)
  POST /render                  render from a JSON options body; the first
                                entry of "formats" selects the response

Every render response carries an X-Render-ID header that matches the
server log line of the run.`,
		Example: `  pearls serve --addr :9000
  curl 'localhost:9000/render.svg?rows=8&cols=8&seed=7&palette=dusk'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newServer(runner, c.Logger, timeout),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runServer(cmd.Context(), srv, c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request render timeout")

	return cmd
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// newServer builds the HTTP routes around runner.
func newServer(runner *pipeline.Runner, logger *log.Logger, timeout time.Duration) http.Handler {
	s := &server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/palettes", s.handlePalettes)
	r.Get("/render.{format}", s.handleRenderQuery)
	r.Post("/render", s.handleRenderBody)

	return r
}

// observe fires the HTTP hooks and logs each request.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		w.Header().Set("Server", buildinfo.UserAgent())
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
		s.logger.Debug("http", "method", r.Method, "path", r.URL.Path, "status", status, "bytes", ww.BytesWritten(), "duration", dur)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	names := palette.Names()
	out := make([]palette.Palette, 0, len(names))
	for _, name := range names {
		p, _ := palette.Preset(name)
		out = append(out, p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleRenderQuery(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{chi.URLParam(r, "format")}
	s.render(w, r, opts)
}

func (s *server) handleRenderBody(w http.ResponseWriter, r *http.Request) {
	// Colors and background stay empty unless sent, so a requested palette
	// can fill them.
	opts := pipeline.DefaultOptions()
	opts.Colors = nil
	opts.Background = ""

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode options"))
		return
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	s.render(w, r, opts)
}

// render runs the pipeline and writes the artifact of the first format.
func (s *server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		writeError(w, err)
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Render-ID", result.ID)
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func cacheStatus(ci pipeline.CacheInfo) string {
	switch {
	case ci.GridHit && ci.RenderHit:
		return "hit"
	case ci.GridHit:
		return "partial"
	default:
		return "miss"
	}
}

// =============================================================================
// Query Parsing
// =============================================================================

// optionsFromQuery overlays query parameters on the default options.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	var err error
	parseInt := func(name string, dst *int) {
		if v := q.Get(name); v != "" && err == nil {
			n, perr := strconv.Atoi(v)
			if perr != nil {
				err = errors.New(errors.ErrCodeInvalidInput, "%s: not an integer: %q", name, v)
				return
			}
			*dst = n
		}
	}
	parseFloat := func(name string, dst *float64) {
		if v := q.Get(name); v != "" && err == nil {
			f, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				err = errors.New(errors.ErrCodeInvalidInput, "%s: not a number: %q", name, v)
				return
			}
			*dst = f
		}
	}

	parseInt("rows", &opts.Rows)
	parseInt("cols", &opts.Cols)
	parseFloat("density", &opts.Density)
	parseFloat("margin", &opts.Margin)
	parseFloat("stroke", &opts.StrokeWeight)
	parseFloat("width", &opts.Width)
	parseFloat("scale", &opts.Scale)
	if err != nil {
		return pipeline.Options{}, err
	}

	if v := q.Get("seed"); v != "" {
		seed, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "seed: not an unsigned integer: %q", v)
		}
		opts.Seed = seed
	}
	if v := q.Get("fill"); v != "" {
		opts.Fill = v
	}
	if v := q.Get("rng"); v != "" {
		opts.RNG = v
	}
	if v := q.Get("palette"); v != "" {
		opts.Palette = v
		opts.Colors = nil
		opts.Background = ""
	}
	if v := q.Get("colors"); v != "" {
		opts.Colors = parseColors(v)
	}
	if v := q.Get("background"); v != "" {
		opts.Background = v
	}
	return opts, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
