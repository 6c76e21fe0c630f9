package render_test

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/pearls/pkg/grid"
	"github.com/matzehuels/pearls/pkg/render"
)

func ExampleNewGeometry() {
	geo := render.NewGeometry(800, 5, 5, 0.1)
	x, y := geo.Center(0, 0)
	fmt.Println(geo.Margin, geo.Radius, geo.Height)
	fmt.Println(x, y)
	// Output:
	// 80 64 800
	// 144 144
}

func ExamplePlan() {
	grids := []*grid.Grid{grid.MustParse("11")}
	style := render.Style{Colors: []colorful.Color{{R: 1}}}
	scene := render.Plan(grids, render.NewGeometry(400, 1, 2, 0), style)

	layer := scene.Layers[0]
	fmt.Println(len(layer.Disks()), len(layer.Connectors(grid.Right)), len(layer.Connectors(grid.Down)))
	// Output: 2 1 0
}
