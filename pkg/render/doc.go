// Package render turns occupancy grids into pearl compositions.
//
// # Overview
//
// Rendering is split into a pure planning step and a replay step:
//
//   - [Plan] walks each grid and returns a [Scene], the ordered list of draw
//     calls for every layer. Nothing is drawn and no state is kept.
//   - [Draw] replays a scene onto any [Canvas]. The sink subpackage provides
//     SVG and PNG canvases.
//
//	geo := render.NewGeometry(800, 5, 5, 0.1)
//	scene := render.Plan(grids, geo, render.Style{Colors: colors})
//	svg := sink.RenderSVG(scene)
//
// # Shapes
//
// Every occupied cell becomes a disk of diameter 2r centered on its grid
// position. For each occupied cell the renderer then looks right, down,
// down-right and down-left ([grid.ConnectorDirections]); when that neighbor
// is occupied too a connector bridges the two centers:
//
//   - right and down: an axis-aligned 2r square centered on the midpoint,
//     filling the waist between the two disks
//   - down-right and down-left: a 3r square with 0.5r rounded corners,
//     rotated +45 or -45 degrees about the midpoint
//
// Looking only in these four directions visits each adjacency exactly once,
// from its upper or left member.
//
// [grid.ConnectorDirections]: github.com/matzehuels/pearls/pkg/grid.ConnectorDirections
package render
