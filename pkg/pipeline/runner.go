package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pearls/pkg/cache"
	"github.com/matzehuels/pearls/pkg/grid"
	"github.com/matzehuels/pearls/pkg/observability"
	"github.com/matzehuels/pearls/pkg/render"
)

// Runner executes the pipeline with caching. It keeps no per-run state, so
// one Runner can serve concurrent requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer selects the default keyer and a
// nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs generate → plan → render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{ID: uuid.NewString()}
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	logger = logger.With("run", result.ID[:8])

	// Stage 1: Generate
	start := time.Now()
	grids, hit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Grids = grids
	result.GridHash = hashGrids(grids)
	result.CacheInfo.GridHit = hit
	result.Stats.GenerateTime = time.Since(start)
	result.Stats.Layers = len(grids)
	result.Stats.Cells = countCells(grids)

	logger.Info("generated grids",
		"layers", len(grids),
		"cells", cellCounts(grids),
		"cached", hit,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Plan
	scene, err := Plan(grids, opts)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	result.Scene = scene
	result.Stats.Shapes = scene.ShapeCount()

	// Stage 3: Render
	start = time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, grids, result.GridHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(start)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"shapes", result.Stats.Shapes,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo returns the grids for opts, reading and filling the
// grid cache, and reports whether they came from cache. Options must already
// be validated.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) ([]*grid.Grid, bool, error) {
	key := r.Keyer.GridKey(opts.GridKeyOpts())

	if !opts.Refresh {
		if grids, ok := r.cachedGrids(ctx, key, opts); ok {
			return grids, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Rows, opts.Cols, opts.Layers())
	start := time.Now()
	grids, err := Generate(opts)
	hooks.OnGenerateComplete(ctx, len(grids), countCells(grids), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(grids); err == nil {
		r.store(ctx, "grid", key, data, cache.GridTTL)
	}
	return grids, false, nil
}

// Generate is GenerateWithCacheInfo without the cache hit flag.
func (r *Runner) Generate(ctx context.Context, opts Options) ([]*grid.Grid, error) {
	grids, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return grids, err
}

func (r *Runner) cachedGrids(ctx context.Context, key string, opts Options) ([]*grid.Grid, bool) {
	data, ok := r.load(ctx, "grid", key)
	if !ok {
		return nil, false
	}
	var grids []*grid.Grid
	if err := json.Unmarshal(data, &grids); err != nil {
		r.Logger.Debug("discarding unreadable grid cache entry", "err", err)
		return nil, false
	}
	if len(grids) != opts.Layers() {
		return nil, false
	}
	for _, g := range grids {
		if g == nil || g.Rows() != opts.Rows || g.Cols() != opts.Cols {
			return nil, false
		}
	}
	return grids, true
}

// RenderWithCacheInfo renders every requested format, reusing cached
// artifacts and rendering only the missing ones. It reports whether all of
// them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene render.Scene, grids []*grid.Grid, gridHash string, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(gridHash, opts.ArtifactKeyOpts(format))
			if data, ok := r.load(ctx, "artifact", key); ok {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	sub := opts
	sub.Formats = missing
	rendered, err := RenderScene(ctx, scene, grids, sub)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		r.store(ctx, "artifact", r.Keyer.ArtifactKey(gridHash, opts.ArtifactKeyOpts(format)), data, cache.ArtifactTTL)
	}
	return artifacts, false, nil
}

// load reads key and reports a hit. Backend errors count as misses.
func (r *Runner) load(ctx context.Context, keyType, key string) ([]byte, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		hooks.OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func hashGrids(grids []*grid.Grid) string {
	data, err := json.Marshal(grids)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

func cellCounts(grids []*grid.Grid) []int {
	counts := make([]int, len(grids))
	for i, g := range grids {
		counts[i] = g.Count()
	}
	return counts
}
