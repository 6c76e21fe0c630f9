package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pearls/pkg/pipeline"
)

// =============================================================================
// Styles
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	// StyleTitle renders palette names and headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	// StyleValue renders paths and values.
	StyleValue = lipgloss.NewStyle().Foreground(colorValue)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorAccent).Italic(true)
)

// statusIcons maps each status kind to its glyph and color.
var statusIcons = map[statusKind]struct {
	glyph string
	style lipgloss.Style
}{
	statusOK:   {"✓", lipgloss.NewStyle().Foreground(colorOK)},
	statusFail: {"✗", lipgloss.NewStyle().Foreground(colorFail)},
	statusWarn: {"!", lipgloss.NewStyle().Foreground(colorWarn)},
	statusInfo: {"›", lipgloss.NewStyle().Foreground(colorLabel)},
}

type statusKind int

const (
	statusOK statusKind = iota
	statusFail
	statusWarn
	statusInfo
)

// =============================================================================
// Status Lines
// =============================================================================

func statusLine(kind statusKind, format string, args ...any) string {
	icon := statusIcons[kind]
	msg := fmt.Sprintf(format, args...)
	if kind == statusWarn {
		msg = icon.style.Render(msg)
	}
	return icon.style.Render(icon.glyph) + " " + msg
}

func printSuccess(format string, args ...any) { fmt.Println(statusLine(statusOK, format, args...)) }
func printError(format string, args ...any) { fmt.Println(statusLine(statusFail, format, args...)) }
func printWarning(format string, args ...any) { fmt.Println(statusLine(statusWarn, format, args...)) }
func printInfo(format string, args ...any) { fmt.Println(statusLine(statusInfo, format, args...)) }

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written artifact.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }

// =============================================================================
// Render Stats
// =============================================================================

// statsLine summarizes a render: layer, cell and shape counts, how much came
// from the cache, and the time spent on stages that actually ran.
func statsLine(stats pipeline.Stats, ci pipeline.CacheInfo) string {
	parts := []string{
		fmt.Sprintf("%d layers", stats.Layers),
		fmt.Sprintf("%d cells", stats.Cells),
		fmt.Sprintf("%d shapes", stats.Shapes),
	}
	switch {
	case ci.GridHit && ci.RenderHit:
		parts = append(parts, "cached")
	case ci.GridHit:
		parts = append(parts, "grids cached", "render "+round(stats.RenderTime))
	default:
		parts = append(parts, "fresh "+round(stats.GenerateTime+stats.RenderTime))
	}
	return "  " + StyleDim.Render(strings.Join(parts, " · "))
}

func printStats(stats pipeline.Stats, ci pipeline.CacheInfo) {
	fmt.Println(statsLine(stats, ci))
}

func round(d time.Duration) string {
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	return d.Round(time.Millisecond).String()
}

// =============================================================================
// Swatches
// =============================================================================

// swatch renders a block of background color; it needs a true-color terminal.
func swatch(hex string, width int) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", width))
}

// printPalette prints a palette as a row of swatches followed by its hex codes.
func printPalette(name, background string, colors []string) {
	var b strings.Builder
	b.WriteString(StyleTitle.Width(8).Render(name) + " " + swatch(background, 2) + " ")
	for _, c := range colors {
		b.WriteString(swatch(c, 4))
	}
	fmt.Println(b.String())
	printDetail("bg %s  %s", background, strings.Join(colors, " "))
}
