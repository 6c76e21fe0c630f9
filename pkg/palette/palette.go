// Package palette parses, names and generates layer color palettes.
//
// Colors are accepted in any CSS notation understood by csscolorparser
// ("#2E294E", "rebeccapurple", "rgb(46, 41, 78)") and carried as
// go-colorful values, which satisfy image/color.Color and format back to
// hex for SVG output. Alpha is ignored: layers are always opaque.
package palette

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"github.com/matzehuels/pearls/pkg/random"
)

// Palette is a named background plus ordered layer colors.
type Palette struct {
	Name       string   `json:"name" toml:"name"`
	Background string   `json:"background" toml:"background"`
	Colors     []string `json:"colors" toml:"colors"`
}

// DefaultName is the preset used when no palette is requested.
const DefaultName = "pearl"

var presets = map[string]Palette{
	"pearl": {
		Name:       "pearl",
		Background: "#e8e4d9",
		Colors:     []string{"#F1E9DA", "#2E294E", "#541388", "#FFD400", "#D90368"},
	},
	"dusk": {
		Name:       "dusk",
		Background: "#1d1a2f",
		Colors:     []string{"#3D348B", "#7678ED", "#F7B801", "#F18701", "#F35B04"},
	},
	"mint": {
		Name:       "mint",
		Background: "#f4f1ea",
		Colors:     []string{"#CCE3DE", "#A4C3B2", "#6B9080", "#2F3E46"},
	},
	"ember": {
		Name:       "ember",
		Background: "#fff8f0",
		Colors:     []string{"#FFD6A5", "#FF9B54", "#CE4257", "#720026", "#4F000B"},
	},
}

// Names returns the preset names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Preset looks up a named palette. The returned palette owns its slice.
func Preset(name string) (Palette, bool) {
	p, ok := presets[name]
	if !ok {
		return Palette{}, false
	}
	p.Colors = slices.Clone(p.Colors)
	return p, true
}

// Default returns the sketch's original palette.
func Default() Palette {
	p, _ := Preset(DefaultName)
	return p
}

// Parse converts a CSS color string into an opaque color.
func Parse(s string) (colorful.Color, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped(), nil
}

// ParseAll parses every color, failing on the first invalid entry.
func ParseAll(ss []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, len(ss))
	for i, s := range ss {
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// Luminance returns the perceived brightness of c in [0, 1].
func Luminance(c colorful.Color) float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Contrast picks black or white, whichever reads better on c.
func Contrast(c colorful.Color) colorful.Color {
	if Luminance(c) >= 0.55 {
		return colorful.Color{}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}

const goldenAngle = 137.50776405003785

// Generate derives an n-color palette from seed. Hues advance by the golden
// angle from a random start; saturation and value are jittered within a
// pleasant band. The background is a pale tint of the first hue.
func Generate(n int, seed uint64) Palette {
	src := random.NewPCG(seed)
	start := random.Range(src, 0, 360)

	colors := make([]string, 0, max(n, 0))
	for i := range n {
		h := math.Mod(start+float64(i)*goldenAngle, 360)
		s := random.Range(src, 0.45, 0.8)
		v := random.Range(src, 0.55, 0.95)
		colors = append(colors, colorful.Hsv(h, s, v).Hex())
	}

	bg := colorful.Hsv(start, 0.08, 0.94)
	return Palette{
		Name:       fmt.Sprintf("generated-%d", seed),
		Background: bg.Hex(),
		Colors:     colors,
	}
}

// Blend returns n colors interpolated in Lab space from a to b, inclusive.
func Blend(a, b colorful.Color, n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []colorful.Color{a}
	}
	out := make([]colorful.Color, n)
	for i := range n {
		out[i] = a.BlendLab(b, float64(i)/float64(n-1)).Clamped()
	}
	return out
}
