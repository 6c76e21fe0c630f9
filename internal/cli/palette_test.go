package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/pearls/pkg/errors"
	"github.com/matzehuels/pearls/pkg/palette"
)

func TestRenderHint(t *testing.T) {
	p := palette.Palette{Name: "x", Background: "#ffffff", Colors: []string{"#111111", "#222222"}}
	want := "pearls render --background '#ffffff' --colors '#111111,#222222'"
	if got := renderHint(p); got != want {
		t.Errorf("renderHint() = %q, want %q", got, want)
	}
}

func TestRenderHintRoundTrips(t *testing.T) {
	p := palette.Generate(4, 9)
	hint := renderHint(p)
	_, list, _ := strings.Cut(hint, "--colors '")
	list = strings.TrimSuffix(list, "'")
	if got := parseColors(list); strings.Join(got, ",") != strings.Join(p.Colors, ",") {
		t.Errorf("colors from hint = %v, want %v", got, p.Colors)
	}
}

func TestShowPaletteRejectsBadColors(t *testing.T) {
	err := showPalette(palette.Palette{Name: "bad", Background: "#fff", Colors: []string{"nope"}})
	if !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("showPalette() error = %v, want INVALID_COLOR", err)
	}
}

func TestPaletteCommands(t *testing.T) {
	tests := []struct {
		args []string
		code errors.Code
	}{
		{[]string{"palette", "list"}, ""},
		{[]string{"palette", "show", "dusk"}, ""},
		{[]string{"palette", "show", "plaid"}, errors.ErrCodeNotFound},
		{[]string{"palette", "generate", "-n", "3", "-s", "5"}, ""},
		{[]string{"palette", "generate", "-n", "0"}, errors.ErrCodeInvalidInput},
		{[]string{"palette", "blend", "#000", "#fff", "-n", "4"}, ""},
		{[]string{"palette", "blend", "#000", "teal-ish"}, errors.ErrCodeInvalidColor},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			err := runCLI(t, tt.args...)
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}
