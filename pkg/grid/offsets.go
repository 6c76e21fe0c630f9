package grid

// Cell addresses a single grid position.
type Cell struct {
	Row, Col int
}

// Offset is a relative move between cells.
type Offset struct {
	DRow, DCol int
}

// Add returns the cell reached by applying o to c.
func (c Cell) Add(o Offset) Cell {
	return Cell{Row: c.Row + o.DRow, Col: c.Col + o.DCol}
}

// Neighbors lists the eight growth directions. Growth enumerates empty
// neighbors in exactly this order, so reordering it changes every
// generated composition.
var Neighbors = [8]Offset{
	{1, 0},   // down
	{0, 1},   // right
	{-1, 0},  // up
	{0, -1},  // left
	{1, 1},   // down-right
	{-1, 1},  // up-right
	{1, -1},  // down-left
	{-1, -1}, // up-left
}

// Direction names one of the four connector directions.
type Direction uint8

const (
	Right Direction = iota
	Down
	DownRight
	DownLeft
)

// ConnectorDirections is the subset of [Neighbors] checked when rendering.
// Every undirected adjacency is visited once, from its upper or left member.
var ConnectorDirections = [4]Direction{Right, Down, DownRight, DownLeft}

var directionOffsets = [...]Offset{
	Right:     {0, 1},
	Down:      {1, 0},
	DownRight: {1, 1},
	DownLeft:  {1, -1},
}

var directionNames = [...]string{
	Right:     "right",
	Down:      "down",
	DownRight: "down-right",
	DownLeft:  "down-left",
}

// Offset returns the relative move for d.
func (d Direction) Offset() Offset { return directionOffsets[d] }

// Diagonal reports whether d bridges diagonal neighbors.
func (d Direction) Diagonal() bool { return d == DownRight || d == DownLeft }

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// MarshalText encodes the direction name.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
