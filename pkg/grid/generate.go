package grid

import (
	"math"
	"slices"

	"github.com/matzehuels/pearls/pkg/random"
)

// Seed attempts are drawn from random(minSeeds, maxSeeds) and floored.
const (
	minSeeds = 2
	maxSeeds = 6
)

// Origin records how a cell came to be occupied.
type Origin uint8

const (
	// OriginSeed marks the initial, independently placed cells.
	OriginSeed Origin = iota
	// OriginGrowth marks cells grown from an adjacent frontier cell.
	OriginGrowth
	// OriginFallback marks cells placed uniformly after growth stalled.
	OriginFallback
)

func (o Origin) String() string {
	switch o {
	case OriginSeed:
		return "seed"
	case OriginGrowth:
		return "growth"
	case OriginFallback:
		return "fallback"
	}
	return "unknown"
}

// MarshalText encodes the origin name.
func (o Origin) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Placement is one step of a generation trace.
type Placement struct {
	Cell   Cell   `json:"cell"`
	Origin Origin `json:"origin"`
	// Parent is the frontier cell a growth placement extended.
	// It is the zero cell for seeds and fallback placements.
	Parent Cell `json:"parent"`
}

// Target returns the number of cells growth occupies:
// max(1, floor(rows*cols*density)), capped at rows*cols.
// Empty grids have a target of zero.
func Target(rows, cols int, density float64) int {
	total := rows * cols
	if rows <= 0 || cols <= 0 {
		return 0
	}
	if math.IsNaN(density) || density < 0 {
		density = 0
	}
	n := math.Floor(float64(total) * density)
	if n >= float64(total) {
		return total
	}
	return max(1, int(n))
}

// Generate grows a rows x cols grid until [Target] cells are occupied.
// Seeding stops placing once the target is reached, so a target smaller
// than the number of seed attempts is met exactly rather than overshot.
func Generate(rows, cols int, density float64, src random.Source) *Grid {
	g, _ := grow(rows, cols, density, src, false)
	return g
}

// Trace is like [Generate] but also returns every placement in order.
// It consumes src identically to Generate.
func Trace(rows, cols int, density float64, src random.Source) (*Grid, []Placement) {
	return grow(rows, cols, density, src, true)
}

func grow(rows, cols int, density float64, src random.Source, record bool) (*Grid, []Placement) {
	g := New(rows, cols)
	if g.rows == 0 || g.cols == 0 {
		return g, nil
	}

	target := Target(rows, cols, density)
	var trace []Placement
	place := func(c Cell, origin Origin, parent Cell) {
		g.Set(c.Row, c.Col)
		if record {
			trace = append(trace, Placement{Cell: c, Origin: origin, Parent: parent})
		}
	}

	// Every attempt draws its coordinates even when the quota is already met,
	// so later layers see the same stream regardless of the target.
	attempts := max(1, int(math.Floor(random.Range(src, minSeeds, maxSeeds))))
	frontier := make([]Cell, 0, target)
	filled := 0
	for range attempts {
		c := randomCell(g, src)
		if g.At(c.Row, c.Col) || filled >= target {
			continue
		}
		place(c, OriginSeed, Cell{})
		frontier = append(frontier, c)
		filled++
	}

	empty := make([]Cell, 0, len(Neighbors))
	for filled < target && len(frontier) > 0 {
		idx := random.Below(src, len(frontier))
		cur := frontier[idx]

		empty = empty[:0]
		for _, off := range Neighbors {
			n := cur.Add(off)
			if g.InBounds(n.Row, n.Col) && !g.At(n.Row, n.Col) {
				empty = append(empty, n)
			}
		}
		if len(empty) == 0 {
			frontier = slices.Delete(frontier, idx, idx+1)
			continue
		}

		next := empty[random.Below(src, len(empty))]
		place(next, OriginGrowth, cur)
		frontier = append(frontier, next)
		filled++
	}

	for filled < target {
		c := randomCell(g, src)
		if g.At(c.Row, c.Col) {
			continue
		}
		place(c, OriginFallback, Cell{})
		filled++
	}

	return g, trace
}

// randomCell draws a row, then a column.
func randomCell(g *Grid, src random.Source) Cell {
	r := random.Below(src, g.rows)
	c := random.Below(src, g.cols)
	return Cell{Row: r, Col: c}
}

// Scatter occupies floor(rows*cols/4) uniformly drawn cells. Draws are not
// deduplicated, so collisions leave fewer cells occupied.
func Scatter(rows, cols int, src random.Source) *Grid {
	g := New(rows, cols)
	if g.rows == 0 || g.cols == 0 {
		return g
	}
	for range g.rows * g.cols / 4 {
		c := randomCell(g, src)
		g.Set(c.Row, c.Col)
	}
	return g
}
