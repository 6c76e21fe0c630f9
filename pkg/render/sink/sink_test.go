package sink

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/pearls/pkg/grid"
	"github.com/matzehuels/pearls/pkg/render"
)

var (
	cream = colorful.Color{R: 0.9, G: 0.9, B: 0.85}
	plum  = colorful.Color{R: 0.33, G: 0.07, B: 0.53}
	gold  = colorful.Color{R: 1, G: 0.83, B: 0}
)

func testScene(t *testing.T, stroke float64, lines ...[]string) (render.Scene, []*grid.Grid) {
	t.Helper()
	var grids []*grid.Grid
	for _, l := range lines {
		grids = append(grids, grid.MustParse(l...))
	}
	geo := render.NewGeometry(200, grids[0].Rows(), grids[0].Cols(), 0.1)
	style := render.Style{Background: cream, Colors: []colorful.Color{plum, gold}, StrokeWeight: stroke}
	return render.Plan(grids, geo, style), grids
}

func TestRenderSVG(t *testing.T) {
	scene, _ := testScene(t, 0, []string{"11", "01"})
	out := string(RenderSVG(scene))

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an SVG document:\n%s", out)
	}
	if n := strings.Count(out, "<circle"); n != 3 {
		t.Errorf("circles = %d, want 3", n)
	}
	// background + right + down + down-right
	if n := strings.Count(out, "<rect"); n != 4 {
		t.Errorf("rects = %d, want 4", n)
	}
	if !strings.Contains(out, "rotate(45)") {
		t.Error("diagonal connector should be rotated 45 degrees")
	}
	if !strings.Contains(out, plum.Hex()) {
		t.Errorf("missing layer color %s", plum.Hex())
	}
	if !strings.Contains(out, "stroke:none") {
		t.Error("zero stroke weight should disable outlines")
	}
}

func TestRenderSVGStroke(t *testing.T) {
	scene, _ := testScene(t, 2, []string{"1"})
	out := string(RenderSVG(scene))
	if !strings.Contains(out, "stroke-width:2") {
		t.Errorf("expected stroke-width:2 in output:\n%s", out)
	}
}

func TestRenderSVGDownLeft(t *testing.T) {
	scene, _ := testScene(t, 0, []string{"01", "10"})
	out := string(RenderSVG(scene))
	if !strings.Contains(out, "rotate(-45)") {
		t.Error("down-left connector should be rotated -45 degrees")
	}
}

func TestRenderPNG(t *testing.T) {
	scene, _ := testScene(t, 1, []string{"11", "01"})
	for _, scale := range []float64{1, 2} {
		data, err := RenderPNG(scene, WithScale(scale))
		if err != nil {
			t.Fatalf("RenderPNG(scale=%v): %v", scale, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		want := int(200 * scale)
		if b := img.Bounds(); b.Dx() != want || b.Dy() != want {
			t.Errorf("scale %v: size = %dx%d, want %dx%d", scale, b.Dx(), b.Dy(), want, want)
		}
	}
}

func TestPNGCanvasPaintsBackgroundAndDisk(t *testing.T) {
	c := NewPNGCanvas(100, 100, 1)
	c.Clear(color.White)
	c.SetFill(color.Black)
	c.SetStroke(color.Black, 0)
	c.Circle(50, 50, 40)

	img := c.Image()
	if r, _, _, _ := img.At(2, 2).RGBA(); r != 0xffff {
		t.Errorf("corner should be background white, got r=%#x", r)
	}
	if r, _, _, _ := img.At(50, 50).RGBA(); r != 0 {
		t.Errorf("center should be painted black, got r=%#x", r)
	}
}

func TestRenderJSON(t *testing.T) {
	scene, grids := testScene(t, 0, []string{"11", "00"}, []string{"00", "01"})
	data, err := RenderJSON(scene, WithJSONGrids(grids), WithJSONSeed(42, "growth", "lcg"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Width      float64 `json:"width"`
		Rows       int     `json:"rows"`
		Background string  `json:"background"`
		Seed       uint64  `json:"seed"`
		Fill       string  `json:"fill"`
		Layers     []struct {
			Color string `json:"color"`
			Grid  struct {
				Cells []string `json:"cells"`
			} `json:"grid"`
			Shapes []struct {
				Kind      string `json:"kind"`
				Direction string `json:"direction"`
			} `json:"shapes"`
		} `json:"layers"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, data)
	}
	if out.Width != 200 || out.Rows != 2 || out.Seed != 42 || out.Fill != "growth" {
		t.Errorf("header = %+v", out)
	}
	if out.Background != cream.Hex() {
		t.Errorf("background = %s, want %s", out.Background, cream.Hex())
	}
	if len(out.Layers) != 2 {
		t.Fatalf("layers = %d, want 2", len(out.Layers))
	}
	if diff := cmp.Diff([]string{"11", "00"}, out.Layers[0].Grid.Cells); diff != "" {
		t.Errorf("layer 0 grid (-want +got):\n%s", diff)
	}

	var kinds []string
	for _, s := range out.Layers[0].Shapes {
		kinds = append(kinds, s.Kind+":"+s.Direction)
	}
	if diff := cmp.Diff([]string{"disk:", "connector:right", "disk:"}, kinds); diff != "" {
		t.Errorf("layer 0 shapes (-want +got):\n%s", diff)
	}
	if out.Layers[1].Color != gold.Hex() {
		t.Errorf("layer 1 color = %s, want %s", out.Layers[1].Color, gold.Hex())
	}
}

func TestToDOT(t *testing.T) {
	scene, _ := testScene(t, 0, []string{"11", "01"})
	dot := ToDOT(scene)

	for _, want := range []string{
		"graph G {",
		"subgraph cluster_0 {",
		"l0_r0_c0 -- l0_r0_c1;",
		"l0_r0_c1 -- l0_r1_c1;",
		"l0_r0_c0 -- l0_r1_c1 [style=dashed];",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, " -- "); n != 3 {
		t.Errorf("edges = %d, want 3", n)
	}
}

func TestRenderText(t *testing.T) {
	scene, _ := testScene(t, 0, []string{"10", "01"}, []string{"11", "00"})
	out := RenderText(scene)

	if n := strings.Count(out, textPearl); n != 3 {
		t.Errorf("pearls = %d, want 3 (union of layers)", n)
	}
	if n := strings.Count(out, textEmpty); n != 1 {
		t.Errorf("empty = %d, want 1", n)
	}
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("lines = %d, want 2", n)
	}
}

func TestRenderTextEmptyGeometry(t *testing.T) {
	if out := RenderText(render.Scene{}); out != "" {
		t.Errorf("RenderText(empty) = %q, want empty", out)
	}
}
