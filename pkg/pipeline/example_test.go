package pipeline_test

import (
	"fmt"

	"github.com/matzehuels/pearls/pkg/pipeline"
)

func ExampleGenerate() {
	opts := pipeline.DefaultOptions()
	grids, err := pipeline.Generate(opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(grids), grids[0].Count())

	// Recoloring keeps the grids.
	opts.Colors = []string{"#000", "#111", "#222", "#333", "#444"}
	again, _ := pipeline.Generate(opts)
	fmt.Println(again[0].Equal(grids[0]))
	// Output:
	// 5 6
	// true
}
