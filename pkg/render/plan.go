package render

import (
	"github.com/matzehuels/pearls/pkg/grid"
)

// Plan turns grids into a scene, one layer per grid in order. It is pure:
// grids are only read and nothing is drawn.
func Plan(grids []*grid.Grid, geo Geometry, style Style) Scene {
	scene := Scene{
		Geometry:     geo,
		Background:   style.Background,
		StrokeWeight: style.StrokeWeight,
		Layers:       make([]Layer, 0, len(grids)),
	}
	for i, g := range grids {
		scene.Layers = append(scene.Layers, Layer{
			Color:  style.layerColor(i),
			Shapes: planLayer(g, geo),
		})
	}
	return scene
}

// planLayer emits, per occupied cell in row-major order, the disk followed
// by its connectors in [grid.ConnectorDirections] order.
func planLayer(g *grid.Grid, geo Geometry) []Shape {
	var shapes []Shape
	r := geo.Radius
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if !g.At(row, col) {
				continue
			}
			cell := grid.Cell{Row: row, Col: col}
			x, y := geo.Center(row, col)
			shapes = append(shapes, Shape{Kind: KindDisk, Cell: cell, X: x, Y: y, W: 2 * r, H: 2 * r})

			for _, d := range grid.ConnectorDirections {
				n := cell.Add(d.Offset())
				if !g.At(n.Row, n.Col) {
					continue
				}
				shapes = append(shapes, connector(cell, d, x, y, r))
			}
		}
	}
	return shapes
}

// connector places the bridge between the cell centered at (x, y) and its
// neighbor in direction d. Its center is the midpoint of the two centers.
func connector(cell grid.Cell, d grid.Direction, x, y, r float64) Shape {
	off := d.Offset()
	s := Shape{
		Kind:      KindConnector,
		Cell:      cell,
		Direction: d,
		X:         x + float64(off.DCol)*r,
		Y:         y + float64(off.DRow)*r,
	}
	if !d.Diagonal() {
		s.W = 2 * orthogonalHalfExtent * r
		s.H = s.W
		return s
	}
	s.W = 2 * diagonalHalfExtent * r
	s.H = s.W
	s.Corner = diagonalCorner * r
	s.Angle = diagonalAngle
	if d == grid.DownLeft {
		s.Angle = -diagonalAngle
	}
	return s
}
