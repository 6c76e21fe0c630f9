// Package sink turns planned scenes into output formats.
//
// # Overview
//
// A "sink" takes a [render.Scene] and produces bytes. This package provides:
//
//   - SVG: vector output through [SVGCanvas] (ajstarks/svgo)
//   - PNG: raster output through [PNGCanvas] (fogleman/gg)
//   - JSON: scene and grid data for external tools
//   - DOT: the cell adjacency graph, rendered to SVG by Graphviz
//   - Text: a colored block preview for terminals
//
// SVG and PNG both implement [render.Canvas], so the same draw calls
// produce both images:
//
//	scene := render.Plan(grids, geo, style)
//	svg := sink.RenderSVG(scene)
//	png, err := sink.RenderPNG(scene, sink.WithScale(2))
//
// # JSON Output
//
// [RenderJSON] exports the geometry, every layer color and every shape.
// With [WithJSONGrids] the occupancy grids are embedded too, which lets a
// composition be re-rendered without regenerating it.
//
// # DOT Output
//
// [ToDOT] describes each layer as a cluster of cells joined wherever the
// renderer would draw a connector. [RenderDOT] lays it out with the
// embedded Graphviz build.
package sink
