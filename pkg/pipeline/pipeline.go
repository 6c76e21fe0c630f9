// Package pipeline runs the generate → plan → render pipeline for pearls.
//
// The CLI, the explore UI and the HTTP server all go through this package so
// a parameter set produces the same composition everywhere.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Generate: seed a random source and grow one grid per layer color
//  2. Plan: turn the grids into a [render.Scene] of disks and connectors
//  3. Render: replay the scene into each requested output format
//
// Generation depends only on rows, cols, density, seed, fill, rng and the
// layer count. Colors, margin, width and stroke are applied afterwards, so
// recoloring a composition never changes its shapes.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Seed = 7
//	opts.Formats = []string{"svg", "png"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Without a runner:
//
//	grids, err := pipeline.Generate(opts)
//	artifacts, err := pipeline.Render(ctx, grids, opts)
package pipeline

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pearls/pkg/cache"
	"github.com/matzehuels/pearls/pkg/errors"
	"github.com/matzehuels/pearls/pkg/grid"
	"github.com/matzehuels/pearls/pkg/palette"
	"github.com/matzehuels/pearls/pkg/random"
	"github.com/matzehuels/pearls/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API and explore
// =============================================================================

const (
	DefaultRows         = 5
	DefaultCols         = 5
	DefaultDensity      = 0.25
	DefaultMargin       = 0.1
	DefaultSeed         = uint64(123456789)
	DefaultStrokeWeight = 0.0
	DefaultWidth        = 800.0
	DefaultScale        = 1.0
	DefaultFill         = string(grid.FillGrowth)
	DefaultRNG          = string(random.KindLCG)
)

// MaxLayers bounds the number of layer colors.
const MaxLayers = 64

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatText = "txt"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatJSON, FormatDOT, FormatText}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options is the full parameter set of a composition. It decodes from JSON
// (HTTP API) and TOML (sketch files); decode on top of [DefaultOptions] so
// that omitted fields keep their defaults.
type Options struct {
	// Generation
	Rows    int     `json:"rows" toml:"rows"`
	Cols    int     `json:"cols" toml:"cols"`
	Density float64 `json:"density" toml:"density"`
	Seed    uint64  `json:"seed" toml:"seed"`
	Fill    string  `json:"fill,omitempty" toml:"fill,omitempty"`
	RNG     string  `json:"rng,omitempty" toml:"rng,omitempty"`

	// Appearance
	Margin       float64  `json:"margin" toml:"margin"`
	StrokeWeight float64  `json:"stroke_weight" toml:"stroke_weight"`
	Palette      string   `json:"palette,omitempty" toml:"palette,omitempty"`
	Background   string   `json:"background,omitempty" toml:"background,omitempty"`
	Colors       []string `json:"colors,omitempty" toml:"colors,omitempty"`
	Width        float64  `json:"width" toml:"width"`

	// Output
	Formats []string `json:"formats,omitempty" toml:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty" toml:"scale,omitempty"`
	Refresh bool     `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized). Logger overrides the runner's
	// logger for this run.
	Logger *log.Logger `json:"-" toml:"-"`
}

// DefaultOptions returns the original sketch's parameters: a 5x5 grid at
// density 0.25, seed 123456789, the "pearl" palette on an 800px canvas.
func DefaultOptions() Options {
	p := palette.Default()
	return Options{
		Rows:         DefaultRows,
		Cols:         DefaultCols,
		Density:      DefaultDensity,
		Seed:         DefaultSeed,
		Fill:         DefaultFill,
		RNG:          DefaultRNG,
		Margin:       DefaultMargin,
		StrokeWeight: DefaultStrokeWeight,
		Background:   p.Background,
		Colors:       p.Colors,
		Width:        DefaultWidth,
		Formats:      []string{FormatSVG},
		Scale:        DefaultScale,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and the X-Render-ID header.
	ID string

	// Grids holds one occupancy grid per layer.
	Grids []*grid.Grid

	// GridHash is the content hash of the grids.
	GridHash string

	// Scene is the planned draw-call list.
	Scene render.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Layers       int
	Cells        int
	Shapes       int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GridHit   bool // Grids came from cache
	RenderHit bool // Every artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json, dot, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFill checks the fill strategy name.
func ValidateFill(fill string) error {
	if _, err := grid.ParseFill(fill); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFill, err, "invalid fill")
	}
	return nil
}

// ValidateRNG checks the random source name.
func ValidateRNG(rng string) error {
	if _, err := random.New(random.Kind(rng), 0); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRNG, err, "invalid rng")
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills fields whose zero value is never meaningful. Density,
// margin, seed and stroke weight are left alone: zero is valid for each.
// A named palette supplies colors and background that were not given
// explicitly.
func (o *Options) SetDefaults() error {
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.Cols == 0 {
		o.Cols = DefaultCols
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Fill == "" {
		o.Fill = DefaultFill
	}
	if o.RNG == "" {
		o.RNG = DefaultRNG
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Palette != "" {
		p, ok := palette.Preset(o.Palette)
		if !ok {
			return errors.New(errors.ErrCodeNotFound, "unknown palette %q (available: %v)", o.Palette, palette.Names())
		}
		if len(o.Colors) == 0 {
			o.Colors = p.Colors
		}
		if o.Background == "" {
			o.Background = p.Background
		}
	}
	if len(o.Colors) == 0 || o.Background == "" {
		p := palette.Default()
		if len(o.Colors) == 0 {
			o.Colors = p.Colors
		}
		if o.Background == "" {
			o.Background = p.Background
		}
	}
	return nil
}

// Validate checks every parameter against its allowed range.
func (o *Options) Validate() error {
	if err := errors.ValidateDimensions(o.Rows, o.Cols); err != nil {
		return err
	}
	if err := errors.ValidateFraction("density", o.Density); err != nil {
		return err
	}
	if err := errors.ValidateMargin(o.Margin); err != nil {
		return err
	}
	if err := errors.ValidateWidth(o.Width); err != nil {
		return err
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}
	if err := errors.ValidateStrokeWeight(o.StrokeWeight); err != nil {
		return err
	}
	if err := ValidateFill(o.Fill); err != nil {
		return err
	}
	if err := ValidateRNG(o.RNG); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if len(o.Colors) > MaxLayers {
		return errors.New(errors.ErrCodeInvalidInput, "too many layer colors (max %d)", MaxLayers)
	}
	if _, err := o.Style(); err != nil {
		return err
	}
	return nil
}

// ValidateAndSetDefaults applies defaults then validates.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.SetDefaults(); err != nil {
		return err
	}
	return o.Validate()
}

// Layers returns the number of grids generated, one per color.
func (o *Options) Layers() int { return len(o.Colors) }

// Style parses the colors into a render style.
func (o *Options) Style() (render.Style, error) {
	bg, err := palette.Parse(o.Background)
	if err != nil {
		return render.Style{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "background")
	}
	colors, err := palette.ParseAll(o.Colors)
	if err != nil {
		return render.Style{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "layer colors")
	}
	return render.Style{Background: bg, Colors: colors, StrokeWeight: o.StrokeWeight}, nil
}

// Geometry lays the grid out on the canvas.
func (o *Options) Geometry() render.Geometry {
	return render.NewGeometry(o.Width, o.Rows, o.Cols, o.Margin)
}

// GridKeyOpts returns the color-independent cache key options.
func (o *Options) GridKeyOpts() cache.GridKeyOpts {
	return cache.GridKeyOpts{
		Rows:    o.Rows,
		Cols:    o.Cols,
		Density: o.Density,
		Seed:    o.Seed,
		Fill:    o.Fill,
		RNG:     o.RNG,
		Layers:  o.Layers(),
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:       format,
		Width:        o.Width,
		Margin:       o.Margin,
		StrokeWeight: o.StrokeWeight,
		Background:   o.Background,
		Colors:       o.Colors,
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatJSON:
		k.Seed, k.Fill, k.RNG = o.Seed, o.Fill, o.RNG
	}
	return k
}
