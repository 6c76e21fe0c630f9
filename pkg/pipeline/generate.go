package pipeline

import (
	"github.com/matzehuels/pearls/pkg/errors"
	"github.com/matzehuels/pearls/pkg/grid"
	"github.com/matzehuels/pearls/pkg/random"
	"github.com/matzehuels/pearls/pkg/render"
)

// Generate grows one grid per layer color. A fresh random source is seeded
// from opts.Seed on every call and shared by the layers in order, so the
// same options always yield the same grids.
func Generate(opts Options) ([]*grid.Grid, error) {
	fill, err := grid.ParseFill(opts.Fill)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFill, err, "generate")
	}
	src, err := random.New(random.Kind(opts.RNG), opts.Seed)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRNG, err, "generate")
	}
	return fill.Layers(opts.Layers(), opts.Rows, opts.Cols, opts.Density, src), nil
}

// Plan lays out grids with the appearance options.
func Plan(grids []*grid.Grid, opts Options) (render.Scene, error) {
	style, err := opts.Style()
	if err != nil {
		return render.Scene{}, err
	}
	return render.Plan(grids, opts.Geometry(), style), nil
}

// countCells sums occupied cells across layers.
func countCells(grids []*grid.Grid) int {
	n := 0
	for _, g := range grids {
		n += g.Count()
	}
	return n
}
