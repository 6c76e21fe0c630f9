package grid

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Grid is a row-major binary occupancy grid.
//
// Grids are built by the generators in this package and treated as immutable
// afterwards. [Set] exists for generators and for callers assembling a grid
// by hand.
type Grid struct {
	rows, cols int
	cells      []uint8
}

// New allocates an empty grid. Negative dimensions are treated as zero.
func New(rows, cols int) *Grid {
	rows, cols = max(rows, 0), max(cols, 0)
	return &Grid{rows: rows, cols: cols, cells: make([]uint8, rows*cols)}
}

// Parse builds a grid from lines of '0' and '1' characters, one line per row.
// All lines must have the same length.
func Parse(lines ...string) (*Grid, error) {
	if len(lines) == 0 {
		return New(0, 0), nil
	}
	g := New(len(lines), len(lines[0]))
	for r, line := range lines {
		if len(line) != g.cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(line), g.cols)
		}
		for c, ch := range line {
			switch ch {
			case '0':
			case '1':
				g.Set(r, c)
			default:
				return nil, fmt.Errorf("row %d col %d: invalid cell %q", r, c, ch)
			}
		}
	}
	return g, nil
}

// MustParse is like [Parse] but panics on malformed input.
func MustParse(lines ...string) *Grid {
	g, err := Parse(lines...)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At reports whether (row, col) is occupied. Out-of-bounds cells are empty.
func (g *Grid) At(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	return g.cells[row*g.cols+col] == 1
}

// Set marks (row, col) as occupied. Out-of-bounds coordinates are ignored.
func (g *Grid) Set(row, col int) {
	if g.InBounds(row, col) {
		g.cells[row*g.cols+col] = 1
	}
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		n += int(c)
	}
	return n
}

// Occupied returns the coordinates of all occupied cells in row-major order.
func (g *Grid) Occupied() []Cell {
	var out []Cell
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r*g.cols+c] == 1 {
				out = append(out, Cell{Row: r, Col: c})
			}
		}
	}
	return out
}

// Equal reports whether two grids have the same shape and occupancy.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Lines returns one string of '0'/'1' characters per row.
func (g *Grid) Lines() []string {
	lines := make([]string, g.rows)
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		b.Reset()
		for c := 0; c < g.cols; c++ {
			b.WriteByte('0' + g.cells[r*g.cols+c])
		}
		lines[r] = b.String()
	}
	return lines
}

// String renders the grid as newline-separated rows of 0 and 1.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

type jsonGrid struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells []string `json:"cells"`
}

// MarshalJSON encodes the grid as its dimensions plus one string per row.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonGrid{Rows: g.rows, Cols: g.cols, Cells: g.Lines()})
}

// UnmarshalJSON decodes the form written by [Grid.MarshalJSON].
func (g *Grid) UnmarshalJSON(data []byte) error {
	var raw jsonGrid
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Cells) != raw.Rows {
		return fmt.Errorf("grid declares %d rows but has %d", raw.Rows, len(raw.Cells))
	}
	parsed, err := Parse(raw.Cells...)
	if err != nil {
		return err
	}
	if raw.Rows > 0 && parsed.cols != raw.Cols {
		return fmt.Errorf("grid declares %d cols but rows have %d", raw.Cols, parsed.cols)
	}
	if raw.Rows == 0 {
		parsed = New(0, raw.Cols)
	}
	*g = *parsed
	return nil
}
