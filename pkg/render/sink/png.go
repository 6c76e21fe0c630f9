package sink

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/pearls/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the pixel density (default 1.0; 2.0 for high-DPI output).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// PNGCanvas is a [render.Canvas] rasterizing into an image.
type PNGCanvas struct {
	dc     *gg.Context
	scale  float64
	fill   color.Color
	stroke color.Color
	weight float64
}

// NewPNGCanvas allocates a raster for a width x height scene drawn at the
// given scale.
func NewPNGCanvas(width, height, scale float64) *PNGCanvas {
	if scale <= 0 {
		scale = 1
	}
	w := max(1, int(math.Ceil(width*scale)))
	h := max(1, int(math.Ceil(height*scale)))
	dc := gg.NewContext(w, h)
	dc.Scale(scale, scale)
	return &PNGCanvas{dc: dc, scale: scale, fill: color.Black}
}

func (c *PNGCanvas) Clear(bg color.Color) {
	c.dc.SetColor(bg)
	c.dc.Clear()
}

func (c *PNGCanvas) SetFill(col color.Color) { c.fill = col }

func (c *PNGCanvas) SetStroke(col color.Color, weight float64) {
	c.stroke, c.weight = col, weight
}

func (c *PNGCanvas) Circle(x, y, d float64) {
	c.dc.DrawCircle(x, y, d/2)
	c.paint()
}

func (c *PNGCanvas) RoundRect(cx, cy, w, h, corner, angle float64) {
	c.dc.Push()
	defer c.dc.Pop()
	c.dc.Translate(cx, cy)
	if angle != 0 {
		c.dc.Rotate(gg.Radians(angle))
	}
	if corner > 0 {
		c.dc.DrawRoundedRectangle(-w/2, -h/2, w, h, corner)
	} else {
		c.dc.DrawRectangle(-w/2, -h/2, w, h)
	}
	c.paint()
}

// paint fills the current path and outlines it when a stroke is set.
func (c *PNGCanvas) paint() {
	c.dc.SetColor(c.fill)
	if c.weight <= 0 || c.stroke == nil {
		c.dc.Fill()
		return
	}
	c.dc.FillPreserve()
	c.dc.SetColor(c.stroke)
	// Line width is applied in device pixels.
	c.dc.SetLineWidth(c.weight * c.scale)
	c.dc.Stroke()
}

// Image returns the raster drawn so far.
func (c *PNGCanvas) Image() image.Image { return c.dc.Image() }

// RenderPNG rasterizes the scene and encodes it as PNG.
func RenderPNG(s render.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	c := NewPNGCanvas(s.Geometry.Width, s.Geometry.Height, r.scale)
	render.Draw(s, c)

	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
