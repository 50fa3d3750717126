// Package grid defines the maze geometry for the foraging task.
// This package is PURE and must NOT import any infrastructure packages.
package grid

import "fmt"

// Default grid dimensions (cols, rows).
const (
	DefaultCols = 20
	DefaultRows = 14

	// DefaultCellSize is the cell edge in pixels, used by render observers.
	DefaultCellSize = 40
)

// Cell is a grid coordinate (column, row), 0-based. Comparable, usable as a
// map key.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Add returns the cell one step away in the given direction.
func (c Cell) Add(d Direction) Cell {
	return Cell{Col: c.Col + d.DC, Row: c.Row + d.DR}
}

// ManhattanDistance returns |dc| + |dr| between two cells.
func (c Cell) ManhattanDistance(o Cell) int {
	return abs(c.Col-o.Col) + abs(c.Row-o.Row)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Direction is a unit step (dc, dr). The zero value means "no direction".
type Direction struct {
	DC int `json:"dc"`
	DR int `json:"dr"`
}

// IsZero reports whether the direction is unset.
func (d Direction) IsZero() bool {
	return d.DC == 0 && d.DR == 0
}

// Cardinal directions.
var (
	Up    = Direction{0, -1}
	Down  = Direction{0, 1}
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}

	// Cardinals lists the four movement directions in a fixed order.
	Cardinals = []Direction{Up, Down, Left, Right}
)

// GateSide selects the left or right gate column.
type GateSide string

const (
	GateLeft  GateSide = "left"
	GateRight GateSide = "right"
)

// HotZones describes the dense-pellet regions: two horizontal stripes plus a
// centered rectangular disk.
type HotZones struct {
	TopStripeRows    []int
	BottomStripeRows []int
	Center           Cell
	RadiusCols       int
	RadiusRows       int
}

// Grid is the static maze oracle: dimensions, wall set and zone
// classification. Immutable after construction; all methods are pure.
type Grid struct {
	Cols int
	Rows int

	walls map[Cell]struct{} // internal maze walls within the playable area
	hot   HotZones
}

// Playable area bounds. The outermost ring (row 0, last row, col 0, last col)
// is always wall; the gate columns are col 0 and the last col.
func (g *Grid) playableColMin() int { return 1 }
func (g *Grid) playableColMax() int { return g.Cols - 2 }
func (g *Grid) playableRowMin() int { return 1 }
func (g *Grid) playableRowMax() int { return g.Rows - 2 }

// New builds a grid from explicit dimensions, an internal wall layout and hot
// zones. mazeRows holds one string per playable row (row 1 upward); each '#'
// marks a wall at (1+index, row). A layout larger than the playable area is a
// configuration error.
func New(cols, rows int, mazeRows []string, hot HotZones) (*Grid, error) {
	if cols < 3 || rows < 3 {
		return nil, fmt.Errorf("grid %dx%d has no interior", cols, rows)
	}
	g := &Grid{
		Cols:  cols,
		Rows:  rows,
		walls: make(map[Cell]struct{}),
		hot:   hot,
	}
	if len(mazeRows) > g.playableRowMax()-g.playableRowMin()+1 {
		return nil, fmt.Errorf("maze layout has %d rows, playable area has %d", len(mazeRows), g.playableRowMax()-g.playableRowMin()+1)
	}
	for i, line := range mazeRows {
		if len(line) > g.playableColMax()-g.playableColMin()+1 {
			return nil, fmt.Errorf("maze row %d has %d cols, playable area has %d", i, len(line), g.playableColMax()-g.playableColMin()+1)
		}
		for j, ch := range line {
			if ch == '#' {
				g.walls[Cell{Col: g.playableColMin() + j, Row: g.playableRowMin() + i}] = struct{}{}
			}
		}
	}
	return g, nil
}

// defaultMazeRows is the standard Pac-Man-style layout for the 20x14 grid,
// rows 1 to 12, cols 1 to 18.
var defaultMazeRows = []string{
	"  ###    ###      ",
	"  #  #   #  #  #  ",
	"  #      #     #  ",
	"    ######  ###   ",
	"  #    #    #  #  ",
	"  #  #    #    #  ",
	"  #    #  #  #    ",
	"    ###  ######   ",
	"  #  #      #  #  ",
	"  #     #     #   ",
	"  #  #   #  #  #  ",
	"  ###      ###    ",
}

// Default returns the standard 20x14 experiment maze: hot stripes on the
// first and last two playable rows and a 5x5 disk centered at (10, 7).
func Default() *Grid {
	g, err := New(DefaultCols, DefaultRows, defaultMazeRows, HotZones{
		TopStripeRows:    []int{1, 2},
		BottomStripeRows: []int{11, 12},
		Center:           Cell{Col: 10, Row: 7},
		RadiusCols:       2,
		RadiusRows:       2,
	})
	if err != nil {
		// The built-in layout is statically valid.
		panic(err)
	}
	return g
}

// InBounds reports whether the cell lies inside the full grid, gate cells
// included.
func (g *Grid) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < g.Cols && c.Row >= 0 && c.Row < g.Rows
}

// IsWall reports whether the cell blocks ordinary movement: outside the grid,
// on the boundary ring (the gate columns included; gates are only reachable by
// teleport), or an internal maze wall.
func (g *Grid) IsWall(c Cell) bool {
	if !g.InBounds(c) {
		return true
	}
	if c.Row < g.playableRowMin() || c.Row > g.playableRowMax() {
		return true
	}
	if c.Col < g.playableColMin() || c.Col > g.playableColMax() {
		return true
	}
	_, blocked := g.walls[c]
	return blocked
}

// IsPlayable reports whether the cell can host pellets, spawns and movement.
func (g *Grid) IsPlayable(c Cell) bool {
	if c.Col < g.playableColMin() || c.Col > g.playableColMax() ||
		c.Row < g.playableRowMin() || c.Row > g.playableRowMax() {
		return false
	}
	_, blocked := g.walls[c]
	return !blocked
}

// IsHotZone reports whether the cell lies in a dense-pellet region. Zone
// membership is independent of playability.
func (g *Grid) IsHotZone(c Cell) bool {
	for _, r := range g.hot.TopStripeRows {
		if c.Row == r {
			return true
		}
	}
	for _, r := range g.hot.BottomStripeRows {
		if c.Row == r {
			return true
		}
	}
	return abs(c.Col-g.hot.Center.Col) <= g.hot.RadiusCols &&
		abs(c.Row-g.hot.Center.Row) <= g.hot.RadiusRows
}

// PlayableCells returns every playable cell, column-major. The order is fixed
// so seeded pellet placement is reproducible.
func (g *Grid) PlayableCells() []Cell {
	var out []Cell
	for col := g.playableColMin(); col <= g.playableColMax(); col++ {
		for row := g.playableRowMin(); row <= g.playableRowMax(); row++ {
			c := Cell{Col: col, Row: row}
			if _, blocked := g.walls[c]; !blocked {
				out = append(out, c)
			}
		}
	}
	return out
}

// HotZoneCells returns every playable cell inside a hot zone, column-major.
func (g *Grid) HotZoneCells() []Cell {
	var out []Cell
	for _, c := range g.PlayableCells() {
		if g.IsHotZone(c) {
			out = append(out, c)
		}
	}
	return out
}

// ColdZoneCells returns every playable cell outside the hot zones,
// column-major.
func (g *Grid) ColdZoneCells() []Cell {
	var out []Cell
	for _, c := range g.PlayableCells() {
		if !g.IsHotZone(c) {
			out = append(out, c)
		}
	}
	return out
}

// FallbackCell is the spawn substitute for a degenerate maze with no playable
// cells.
func (g *Grid) FallbackCell() Cell {
	return Cell{Col: g.Cols / 2, Row: g.Rows / 2}
}

// GateCell returns the teleport destination for a side and gate row: column 0
// on the left, the last column on the right.
func (g *Grid) GateCell(side GateSide, gateRow int) Cell {
	if side == GateLeft {
		return Cell{Col: 0, Row: gateRow}
	}
	return Cell{Col: g.Cols - 1, Row: gateRow}
}

// CellToPixel converts a cell to the pixel coordinates of its center, for the
// render feed.
func CellToPixel(c Cell, cellSize int) (x, y int) {
	return c.Col*cellSize + cellSize/2, c.Row*cellSize + cellSize/2
}
