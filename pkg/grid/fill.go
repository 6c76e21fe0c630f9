package grid

import (
	"fmt"

	"github.com/matzehuels/pearls/pkg/random"
)

// Fill selects a generation strategy.
type Fill string

const (
	// FillGrowth is the canonical organic growth of [Generate].
	FillGrowth Fill = "growth"
	// FillScatter is the uniform quarter-fill of [Scatter]. It ignores density.
	FillScatter Fill = "scatter"
)

// Fills lists the supported strategies.
var Fills = []Fill{FillGrowth, FillScatter}

// ParseFill validates a strategy name. The empty string selects growth.
func ParseFill(s string) (Fill, error) {
	switch Fill(s) {
	case FillGrowth, "":
		return FillGrowth, nil
	case FillScatter:
		return FillScatter, nil
	}
	return "", fmt.Errorf("unknown fill %q (must be one of: growth, scatter)", s)
}

// Generate runs the strategy once.
func (f Fill) Generate(rows, cols int, density float64, src random.Source) *Grid {
	if f == FillScatter {
		return Scatter(rows, cols, src)
	}
	return Generate(rows, cols, density, src)
}

// Layers generates n grids from one shared stream, in layer order.
func (f Fill) Layers(n, rows, cols int, density float64, src random.Source) []*Grid {
	grids := make([]*Grid, 0, max(n, 0))
	for range n {
		grids = append(grids, f.Generate(rows, cols, density, src))
	}
	return grids
}
