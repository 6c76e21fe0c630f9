// Package pkg provides the core libraries for pearls, a generator of seeded
// pearl-string compositions.
//
// # Overview
//
// Pearls grows clusters of occupied cells on a grid with a seeded random walk
// and draws each occupied cell as a disk, with connectors joining neighboring
// disks into strings. One grid is grown per palette color and the layers are
// painted in order. The pkg directory is organized into these areas:
//
//  1. [grid] - Occupancy grids and the growth and scatter fill strategies
//  2. [random] - Seedable random sources (p5-compatible LCG, PCG)
//  3. [render] - Geometry, shape planning and the drawing canvas interface
//  4. [pipeline] - Orchestration (generate → plan → render) with caching
//  5. [palette] - Color parsing, preset and generated palettes
//
// # Architecture
//
// The typical data flow:
//
//	seed + rows/cols/density
//	         ↓
//	    [random] source
//	         ↓
//	    [grid] package (one grid per layer)
//	         ↓
//	    [render] package (disks + connectors → Scene)
//	         ↓
//	    [render/sink] (SVG/PNG/JSON/DOT/text output)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/pearls/pkg/grid"
//	    "github.com/matzehuels/pearls/pkg/random"
//	    "github.com/matzehuels/pearls/pkg/render"
//	    "github.com/matzehuels/pearls/pkg/render/sink"
//	)
//
//	src := random.NewLCG(123456789)
//	grids := grid.FillGrowth.Layers(5, 5, 5, 0.25, src)
//	scene := render.Plan(grids, render.NewGeometry(800, 5, 5, 0.1), style)
//	svg := sink.RenderSVG(scene)
//
// # Main Packages
//
// [grid] - A Grid is a rows×cols occupancy matrix. [grid.Generate] grows a
// target number of cells, each new cell adjacent to an existing one;
// [grid.Scatter] fills cells independently. Both only read the random
// source, so the same seed reproduces the same grid.
//
// [render] - [render.Plan] turns grids into a Scene of disks and rounded
// connector rectangles; [render.Draw] replays a Scene on any Canvas.
//
// [render/sink] - Canvas implementations and exporters: SVG via svgo, PNG
// via gg, JSON, a Graphviz adjacency view and a colored terminal preview.
//
// ## Infrastructure
//
// [pipeline] - Parameter validation, sketch files (TOML) and a Runner that
// caches grids and artifacts. Used by the CLI, the explore UI and the HTTP
// server so every entry point renders the same composition.
//
// [cache] - File, Redis and null caches behind one interface.
//
// [errors] - Coded errors, input validators and HTTP status mapping.
//
// [observability] - Hook registries for pipeline, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/grid/...      # Specific package
//	go test -run Example ./...  # Examples only

package pkg
