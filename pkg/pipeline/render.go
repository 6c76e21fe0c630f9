package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/pearls/pkg/errors"
	"github.com/matzehuels/pearls/pkg/grid"
	"github.com/matzehuels/pearls/pkg/render"
	"github.com/matzehuels/pearls/pkg/render/sink"
)

// ContentType returns the MIME type of a format's artifact.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatDOT:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatText:
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}

// Extension returns the file extension written for a format. The DOT
// format is rendered through Graphviz, so it is saved as SVG.
func Extension(format string) string {
	if format == FormatDOT {
		return "dot.svg"
	}
	return format
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, grids []*grid.Grid, opts Options) (map[string][]byte, error) {
	scene, err := Plan(grids, opts)
	if err != nil {
		return nil, err
	}
	return RenderScene(ctx, scene, grids, opts)
}

// RenderScene replays a planned scene into every format in opts.Formats.
func RenderScene(ctx context.Context, scene render.Scene, grids []*grid.Grid, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(ctx, scene, grids, opts, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, scene render.Scene, grids []*grid.Grid, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(scene), nil
	case FormatPNG:
		return sink.RenderPNG(scene, sink.WithScale(opts.Scale))
	case FormatJSON:
		return sink.RenderJSON(scene,
			sink.WithJSONGrids(grids),
			sink.WithJSONSeed(opts.Seed, opts.Fill, opts.RNG))
	case FormatDOT:
		return sink.RenderDOT(ctx, sink.ToDOT(scene))
	case FormatText:
		return []byte(sink.RenderText(scene)), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}
