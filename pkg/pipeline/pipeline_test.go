package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pearls/pkg/errors"
	"github.com/matzehuels/pearls/pkg/grid"
	"github.com/matzehuels/pearls/pkg/palette"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"dot", false},
		{"txt", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestDefaultOptionsAreValid(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if opts.Layers() != 5 {
		t.Errorf("Layers() = %d, want 5", opts.Layers())
	}
	if opts.Background != "#e8e4d9" {
		t.Errorf("Background = %s", opts.Background)
	}
}

func TestSetDefaultsFillsZeroValues(t *testing.T) {
	var opts Options
	if err := opts.SetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Rows != DefaultRows || opts.Cols != DefaultCols || opts.Width != DefaultWidth {
		t.Errorf("dimension defaults not applied: %+v", opts)
	}
	if opts.Fill != "growth" || opts.RNG != "lcg" {
		t.Errorf("fill/rng = %s/%s", opts.Fill, opts.RNG)
	}
	if diff := cmp.Diff(palette.Default().Colors, opts.Colors); diff != "" {
		t.Errorf("colors (-want +got):\n%s", diff)
	}
	// Zero is a legitimate density, margin and seed.
	if opts.Density != 0 || opts.Margin != 0 || opts.Seed != 0 {
		t.Error("SetDefaults must not override meaningful zero values")
	}
}

func TestSetDefaultsPalette(t *testing.T) {
	opts := Options{Palette: "dusk"}
	if err := opts.SetDefaults(); err != nil {
		t.Fatal(err)
	}
	dusk, _ := palette.Preset("dusk")
	if diff := cmp.Diff(dusk.Colors, opts.Colors); diff != "" {
		t.Errorf("colors (-want +got):\n%s", diff)
	}
	if opts.Background != dusk.Background {
		t.Errorf("background = %s, want %s", opts.Background, dusk.Background)
	}

	explicit := Options{Palette: "dusk", Colors: []string{"red"}}
	if err := explicit.SetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(explicit.Colors) != 1 {
		t.Error("explicit colors should win over the palette")
	}

	unknown := Options{Palette: "nope"}
	if err := unknown.SetDefaults(); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown palette: err = %v, want NOT_FOUND", err)
	}
}

func TestValidateErrorCodes(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"too many rows", func(o *Options) { o.Rows = 1000 }, errors.ErrCodeInvalidInput},
		{"negative cols", func(o *Options) { o.Cols = -2 }, errors.ErrCodeInvalidInput},
		{"density above one", func(o *Options) { o.Density = 1.5 }, errors.ErrCodeInvalidInput},
		{"margin too wide", func(o *Options) { o.Margin = 0.5 }, errors.ErrCodeInvalidInput},
		{"negative stroke", func(o *Options) { o.StrokeWeight = -1 }, errors.ErrCodeInvalidInput},
		{"bad color", func(o *Options) { o.Colors = []string{"#2E294E", "notacolor"} }, errors.ErrCodeInvalidColor},
		{"bad background", func(o *Options) { o.Background = "#zzz" }, errors.ErrCodeInvalidColor},
		{"bad fill", func(o *Options) { o.Fill = "spiral" }, errors.ErrCodeInvalidFill},
		{"bad rng", func(o *Options) { o.RNG = "mt19937" }, errors.ErrCodeInvalidRNG},
		{"bad format", func(o *Options) { o.Formats = []string{"gif"} }, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestGenerateMatchesOriginalSketch(t *testing.T) {
	grids, err := Generate(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(grids) != 5 {
		t.Fatalf("layers = %d, want 5", len(grids))
	}
	want := grid.MustParse("00100", "01100", "00000", "00100", "01100")
	if !grids[0].Equal(want) {
		t.Errorf("first layer =\n%s\nwant\n%s", grids[0], want)
	}
	for i, g := range grids {
		if g.Count() != 6 {
			t.Errorf("layer %d has %d cells, want 6", i, g.Count())
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	opts := DefaultOptions()
	opts.Rows, opts.Cols, opts.Density, opts.Seed = 9, 14, 0.35, 99
	for _, rng := range []string{"lcg", "pcg"} {
		opts.RNG = rng
		a, _ := Generate(opts)
		b, _ := Generate(opts)
		for i := range a {
			if !a[i].Equal(b[i]) {
				t.Errorf("%s: layer %d differs between runs", rng, i)
			}
		}
	}
}

func TestChangingColorsKeepsGrids(t *testing.T) {
	opts := DefaultOptions()
	before, _ := Generate(opts)

	opts.Colors = []string{"red", "green", "blue", "black", "white"}
	opts.Background = "#000"
	opts.Margin = 0.2
	opts.StrokeWeight = 3
	after, _ := Generate(opts)

	for i := range before {
		if !before[i].Equal(after[i]) {
			t.Errorf("layer %d changed when only appearance changed", i)
		}
	}
}

func TestRender(t *testing.T) {
	opts := DefaultOptions()
	opts.Formats = []string{FormatSVG, FormatPNG, FormatJSON, FormatText}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	grids, err := Generate(opts)
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(context.Background(), grids, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, f := range opts.Formats {
		if len(artifacts[f]) == 0 {
			t.Errorf("format %s produced no output", f)
		}
	}
	if !strings.Contains(string(artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact is not an SVG document")
	}
	if !strings.HasPrefix(string(artifacts[FormatPNG]), "\x89PNG") {
		t.Error("png artifact lacks the PNG signature")
	}
	if n := strings.Count(string(artifacts[FormatText]), "\n"); n != opts.Rows {
		t.Errorf("text preview has %d lines, want %d", n, opts.Rows)
	}
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := DefaultOptions()
	grids, _ := Generate(opts)
	if _, err := Render(ctx, grids, opts); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestContentTypeAndExtension(t *testing.T) {
	tests := []struct {
		format, contentType, ext string
	}{
		{FormatSVG, "image/svg+xml", "svg"},
		{FormatPNG, "image/png", "png"},
		{FormatJSON, "application/json", "json"},
		{FormatDOT, "image/svg+xml", "dot.svg"},
		{FormatText, "text/plain; charset=utf-8", "txt"},
	}
	for _, tt := range tests {
		if got := ContentType(tt.format); got != tt.contentType {
			t.Errorf("ContentType(%s) = %s, want %s", tt.format, got, tt.contentType)
		}
		if got := Extension(tt.format); got != tt.ext {
			t.Errorf("Extension(%s) = %s, want %s", tt.format, got, tt.ext)
		}
	}
}
