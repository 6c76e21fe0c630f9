package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/pearls/pkg/grid"
)

// Connector proportions relative to the cell radius. Orthogonal connectors
// are plain squares filling the gap between two disks; diagonal connectors
// are larger rounded squares turned 45 degrees.
const (
	orthogonalHalfExtent = 1.0
	diagonalHalfExtent   = 1.5
	diagonalCorner       = 0.5
	diagonalAngle        = 45.0
)

// Geometry maps grid cells onto the canvas.
type Geometry struct {
	Width, Height float64
	Margin        float64
	Radius        float64
	Rows, Cols    int
}

// NewGeometry lays out a rows x cols grid on a canvas of the given width.
// The margin is marginFraction of the width on every side, the cell radius is
// (width - 2*margin) / cols / 2, and the height grows with the row count so
// that a square grid yields a square canvas.
func NewGeometry(width float64, rows, cols int, marginFraction float64) Geometry {
	margin := width * marginFraction
	var radius float64
	if cols > 0 {
		radius = (width - 2*margin) / float64(cols) / 2
	}
	return Geometry{
		Width:  width,
		Height: 2*margin + float64(max(rows, 0))*2*radius,
		Margin: margin,
		Radius: radius,
		Rows:   rows,
		Cols:   cols,
	}
}

// Center returns the canvas position of a cell center.
func (g Geometry) Center(row, col int) (x, y float64) {
	x = g.Margin + g.Radius + float64(col)*2*g.Radius
	y = g.Margin + g.Radius + float64(row)*2*g.Radius
	return x, y
}

// Style carries the visual parameters that do not affect grid generation.
type Style struct {
	Background   colorful.Color
	Colors       []colorful.Color
	StrokeWeight float64
}

// layerColor cycles through the palette; an empty palette paints black.
func (s Style) layerColor(i int) colorful.Color {
	if len(s.Colors) == 0 {
		return colorful.Color{}
	}
	return s.Colors[i%len(s.Colors)]
}

// ShapeKind distinguishes disks from connectors.
type ShapeKind uint8

const (
	KindDisk ShapeKind = iota
	KindConnector
)

func (k ShapeKind) String() string {
	if k == KindDisk {
		return "disk"
	}
	return "connector"
}

// Shape is one draw call. X and Y are the shape center. Disks use W as
// their diameter; connectors are W x H rectangles with rounded corners of
// radius Corner, rotated by Angle degrees about their center.
type Shape struct {
	Kind      ShapeKind
	Cell      grid.Cell
	Direction grid.Direction
	X, Y      float64
	W, H      float64
	Corner    float64
	Angle     float64
}

// Layer is one grid drawn in one color, in draw order.
type Layer struct {
	Color  colorful.Color
	Shapes []Shape
}

// Disks returns the disk shapes of the layer.
func (l Layer) Disks() []Shape {
	return l.filter(func(s Shape) bool { return s.Kind == KindDisk })
}

// Connectors returns the connector shapes of the layer running in d.
func (l Layer) Connectors(d grid.Direction) []Shape {
	return l.filter(func(s Shape) bool { return s.Kind == KindConnector && s.Direction == d })
}

func (l Layer) filter(keep func(Shape) bool) []Shape {
	var out []Shape
	for _, s := range l.Shapes {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// Scene is the complete draw-call list for one composition. Layers are
// painted back to front over the background.
type Scene struct {
	Geometry     Geometry
	Background   colorful.Color
	StrokeWeight float64
	Layers       []Layer
}

// ShapeCount returns the total number of draw calls across layers.
func (s Scene) ShapeCount() int {
	n := 0
	for _, l := range s.Layers {
		n += len(l.Shapes)
	}
	return n
}
