package render

import "image/color"

// Canvas is the drawing surface a scene is replayed onto.
type Canvas interface {
	// Clear paints the whole canvas with bg.
	Clear(bg color.Color)
	// SetFill sets the fill color for subsequent shapes.
	SetFill(c color.Color)
	// SetStroke sets the outline for subsequent shapes. A weight of zero
	// or less disables outlines.
	SetStroke(c color.Color, weight float64)
	// Circle draws a disk centered at (x, y) with diameter d.
	Circle(x, y, d float64)
	// RoundRect draws a w x h rectangle centered at (cx, cy) with corner
	// radius corner, rotated by angle degrees about its center.
	RoundRect(cx, cy, w, h, corner, angle float64)
}

// Draw replays the scene onto c: background first, then each layer with its
// own fill and stroke color.
func Draw(s Scene, c Canvas) {
	c.Clear(s.Background)
	for _, l := range s.Layers {
		c.SetFill(l.Color)
		c.SetStroke(l.Color, s.StrokeWeight)
		for _, sh := range l.Shapes {
			switch sh.Kind {
			case KindDisk:
				c.Circle(sh.X, sh.Y, sh.W)
			case KindConnector:
				c.RoundRect(sh.X, sh.Y, sh.W, sh.H, sh.Corner, sh.Angle)
			}
		}
	}
}
