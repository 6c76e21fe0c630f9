package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pearls/pkg/pipeline"
)

// paramFlags holds the composition flags shared by render and explore.
// Flags are applied on top of the base options (defaults or a sketch file)
// only when the user set them, so a sketch file keeps its values otherwise.
type paramFlags struct {
	config string
	opts   pipeline.Options
	colors string
}

// register binds the composition flags to cmd.
func (p *paramFlags) register(cmd *cobra.Command) {
	p.opts = pipeline.DefaultOptions()
	d := &p.opts

	f := cmd.Flags()
	f.StringVarP(&p.config, "config", "c", "", "sketch file (TOML) with base parameters")
	f.IntVar(&d.Rows, "rows", d.Rows, "grid rows")
	f.IntVar(&d.Cols, "cols", d.Cols, "grid columns")
	f.Float64VarP(&d.Density, "density", "d", d.Density, "fraction of cells to occupy per layer (0..1)")
	f.Float64Var(&d.Margin, "margin", d.Margin, "canvas margin as a fraction of the width")
	f.Uint64VarP(&d.Seed, "seed", "s", d.Seed, "random seed")
	f.StringVar(&d.Fill, "fill", d.Fill, "fill strategy: growth (default), scatter")
	f.StringVar(&d.RNG, "rng", d.RNG, "random source: lcg (default), pcg")
	f.Float64Var(&d.StrokeWeight, "stroke", d.StrokeWeight, "outline weight (0 disables outlines)")
	f.StringVarP(&d.Palette, "palette", "p", "", "preset palette name (see 'pearls palette list')")
	f.StringVar(&p.colors, "colors", "", "layer colors, comma-separated (one layer per color)")
	f.StringVar(&d.Background, "background", d.Background, "background color")
	f.Float64VarP(&d.Width, "width", "w", d.Width, "canvas width in pixels")
	f.Float64Var(&d.Scale, "scale", d.Scale, "PNG scale factor")
}

// resolve loads the base options and applies every flag the user set.
func (p *paramFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if p.config != "" {
		loaded, err := pipeline.LoadConfig(p.config)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts = loaded
	}

	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
		}
	}
	set("rows", func() { opts.Rows = p.opts.Rows })
	set("cols", func() { opts.Cols = p.opts.Cols })
	set("density", func() { opts.Density = p.opts.Density })
	set("margin", func() { opts.Margin = p.opts.Margin })
	set("seed", func() { opts.Seed = p.opts.Seed })
	set("fill", func() { opts.Fill = p.opts.Fill })
	set("rng", func() { opts.RNG = p.opts.RNG })
	set("stroke", func() { opts.StrokeWeight = p.opts.StrokeWeight })
	set("width", func() { opts.Width = p.opts.Width })
	set("scale", func() { opts.Scale = p.opts.Scale })
	set("palette", func() {
		opts.Palette = p.opts.Palette
		opts.Colors = nil
		opts.Background = ""
	})
	set("colors", func() { opts.Colors = parseColors(p.colors) })
	set("background", func() { opts.Background = p.opts.Background })

	return opts, nil
}
