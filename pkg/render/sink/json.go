package sink

import (
	"encoding/json"

	"github.com/matzehuels/pearls/pkg/grid"
	"github.com/matzehuels/pearls/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	grids []*grid.Grid
	seed  uint64
	fill  string
	rng   string
}

// WithJSONGrids embeds the occupancy grid of each layer. Grids are matched
// to layers by index.
func WithJSONGrids(grids []*grid.Grid) JSONOption {
	return func(r *jsonRenderer) { r.grids = grids }
}

// WithJSONSeed records the generation parameters needed to reproduce the
// composition.
func WithJSONSeed(seed uint64, fill, rng string) JSONOption {
	return func(r *jsonRenderer) { r.seed, r.fill, r.rng = seed, fill, rng }
}

type jsonOutput struct {
	Width        float64     `json:"width"`
	Height       float64     `json:"height"`
	Margin       float64     `json:"margin"`
	Radius       float64     `json:"radius"`
	Rows         int         `json:"rows"`
	Cols         int         `json:"cols"`
	Background   string      `json:"background"`
	StrokeWeight float64     `json:"stroke_weight,omitempty"`
	Seed         uint64      `json:"seed,omitempty"`
	Fill         string      `json:"fill,omitempty"`
	RNG          string      `json:"rng,omitempty"`
	Layers       []jsonLayer `json:"layers"`
}

type jsonLayer struct {
	Color  string      `json:"color"`
	Grid   *grid.Grid  `json:"grid,omitempty"`
	Shapes []jsonShape `json:"shapes"`
}

type jsonShape struct {
	Kind      string          `json:"kind"`
	Row       int             `json:"row"`
	Col       int             `json:"col"`
	Direction *grid.Direction `json:"direction,omitempty"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Corner    float64         `json:"corner,omitempty"`
	Angle     float64         `json:"angle,omitempty"`
}

// RenderJSON exports the scene as indented JSON.
func RenderJSON(s render.Scene, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	geo := s.Geometry
	out := jsonOutput{
		Width:        geo.Width,
		Height:       geo.Height,
		Margin:       geo.Margin,
		Radius:       geo.Radius,
		Rows:         geo.Rows,
		Cols:         geo.Cols,
		Background:   hex(s.Background),
		StrokeWeight: s.StrokeWeight,
		Seed:         r.seed,
		Fill:         r.fill,
		RNG:          r.rng,
		Layers:       make([]jsonLayer, 0, len(s.Layers)),
	}
	for i, l := range s.Layers {
		layer := jsonLayer{Color: hex(l.Color), Shapes: make([]jsonShape, 0, len(l.Shapes))}
		if i < len(r.grids) {
			layer.Grid = r.grids[i]
		}
		for _, sh := range l.Shapes {
			layer.Shapes = append(layer.Shapes, toJSONShape(sh))
		}
		out.Layers = append(out.Layers, layer)
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONShape(s render.Shape) jsonShape {
	js := jsonShape{
		Kind:   s.Kind.String(),
		Row:    s.Cell.Row,
		Col:    s.Cell.Col,
		X:      s.X,
		Y:      s.Y,
		Width:  s.W,
		Height: s.H,
		Corner: s.Corner,
		Angle:  s.Angle,
	}
	if s.Kind == render.KindConnector {
		d := s.Direction
		js.Direction = &d
	}
	return js
}
