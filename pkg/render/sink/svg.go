package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo/float"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/pearls/pkg/render"
)

// SVGCanvas is a [render.Canvas] writing SVG elements.
type SVGCanvas struct {
	doc           *svg.SVG
	width, height float64
	fill          string
	stroke        string
}

// NewSVGCanvas starts an SVG document of the given size on w. Call
// [SVGCanvas.Close] to finish it.
func NewSVGCanvas(w io.Writer, width, height float64) *SVGCanvas {
	c := &SVGCanvas{doc: svg.New(w), width: width, height: height, fill: "#000000"}
	c.doc.Start(width, height)
	return c
}

func (c *SVGCanvas) Clear(bg color.Color) {
	c.doc.Rect(0, 0, c.width, c.height, "fill:"+hex(bg))
}

func (c *SVGCanvas) SetFill(col color.Color) { c.fill = hex(col) }

func (c *SVGCanvas) SetStroke(col color.Color, weight float64) {
	if weight <= 0 {
		c.stroke = ""
		return
	}
	c.stroke = fmt.Sprintf("stroke:%s;stroke-width:%g", hex(col), weight)
}

func (c *SVGCanvas) Circle(x, y, d float64) {
	c.doc.Circle(x, y, d/2, c.style())
}

func (c *SVGCanvas) RoundRect(cx, cy, w, h, corner, angle float64) {
	x, y := cx-w/2, cy-h/2
	if angle != 0 {
		c.doc.Gtransform(fmt.Sprintf("translate(%g,%g) rotate(%g)", cx, cy, angle))
		x, y = -w/2, -h/2
	}
	if corner > 0 {
		c.doc.Roundrect(x, y, w, h, corner, corner, c.style())
	} else {
		c.doc.Rect(x, y, w, h, c.style())
	}
	if angle != 0 {
		c.doc.Gend()
	}
}

// Close writes the closing tag.
func (c *SVGCanvas) Close() { c.doc.End() }

func (c *SVGCanvas) style() string {
	if c.stroke == "" {
		return "fill:" + c.fill + ";stroke:none"
	}
	return "fill:" + c.fill + ";" + c.stroke
}

// RenderSVG draws the scene as a standalone SVG document.
func RenderSVG(s render.Scene) []byte {
	var buf bytes.Buffer
	c := NewSVGCanvas(&buf, s.Geometry.Width, s.Geometry.Height)
	render.Draw(s, c)
	c.Close()
	return buf.Bytes()
}

// hex formats c as #rrggbb, ignoring alpha.
func hex(c color.Color) string {
	if cc, ok := c.(colorful.Color); ok {
		return cc.Clamped().Hex()
	}
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}
