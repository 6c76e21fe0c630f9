package sink

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pearls/pkg/render"
)

const (
	textPearl = "●"
	textEmpty = "·"
)

// RenderText draws the scene as a character grid for terminals. Layers are
// composited in order, so a cell shows the color of the last layer that
// occupies it.
func RenderText(s render.Scene) string {
	rows, cols := s.Geometry.Rows, s.Geometry.Cols
	if rows <= 0 || cols <= 0 {
		return ""
	}
	owner := make([]int, rows*cols)
	for i := range owner {
		owner[i] = -1
	}
	for i, l := range s.Layers {
		for _, d := range l.Disks() {
			owner[d.Cell.Row*cols+d.Cell.Col] = i
		}
	}

	styles := make([]lipgloss.Style, len(s.Layers))
	for i, l := range s.Layers {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex(l.Color)))
	}
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color(hex(s.Background)))

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			if o := owner[r*cols+c]; o >= 0 {
				b.WriteString(styles[o].Render(textPearl))
			} else {
				b.WriteString(empty.Render(textEmpty))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
