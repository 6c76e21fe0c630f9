package grid_test

import (
	"fmt"

	"github.com/matzehuels/pearls/pkg/grid"
	"github.com/matzehuels/pearls/pkg/random"
)

func ExampleTarget() {
	fmt.Println(grid.Target(5, 5, 0.25))
	fmt.Println(grid.Target(5, 5, 0))
	fmt.Println(grid.Target(3, 3, 2))
	// Output:
	// 6
	// 1
	// 9
}

func ExampleGenerate() {
	g := grid.Generate(5, 5, 0.25, random.NewLCG(123456789))
	fmt.Println(g.Rows(), g.Cols(), g.Count())
	// Output: 5 5 6
}

func ExampleMustParse() {
	g := grid.MustParse(
		"010",
		"111",
	)
	fmt.Println(g.Count(), g.At(0, 1), g.At(0, 0))
	fmt.Println(g)
	// Output:
	// 4 true false
	// 010
	// 111
}
