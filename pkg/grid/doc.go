// Package grid generates binary occupancy grids for pearl compositions.
//
// # Overview
//
// A [Grid] is a rows x cols array of cells, each either empty or occupied.
// One grid is generated per color layer; the renderer turns every occupied
// cell into a disk and bridges occupied neighbors with connectors.
//
// # Growth
//
// [Generate] grows the occupied region organically. A handful of seed cells
// are scattered first, then an active frontier repeatedly picks a random
// member and occupies one of its empty neighbors in any of the eight
// directions in [Neighbors]. Frontier members with no empty neighbors are
// retired. When the frontier runs dry before the quota from [Target] is met,
// the remaining cells are placed uniformly at random.
//
//	src := random.NewLCG(123456789)
//	g := grid.Generate(5, 5, 0.25, src) // exactly 6 occupied cells
//
// [Trace] runs the same process and additionally reports where and how each
// cell was placed, which is useful for debugging and for tests.
//
// # Scatter
//
// [Scatter] is the older, simpler fill: a quarter of the cell count is drawn
// uniformly with replacement, so overlapping draws leave fewer cells occupied.
//
// # Determinism
//
// Generators consume their [random.Source] in a fixed call order. The same
// parameters and the same stream position always produce the same grid, and
// successive layers drawn from one stream depend on layer order.
//
// [random.Source]: github.com/matzehuels/pearls/pkg/random.Source
package grid
