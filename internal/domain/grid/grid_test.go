package grid

import "testing"

func TestWallsOutsideInterior(t *testing.T) {
	g := Default()

	// Everything outside the grid is wall.
	outside := []Cell{{-1, 5}, {20, 5}, {5, -1}, {5, 14}}
	for _, c := range outside {
		if !g.IsWall(c) {
			t.Errorf("Expected %v to be wall (out of grid)", c)
		}
	}

	// Boundary ring, gate columns included. Gate cells are walls for
	// ordinary movement even though a teleport can place the player there.
	for row := 0; row < g.Rows; row++ {
		if !g.IsWall(Cell{Col: 0, Row: row}) {
			t.Errorf("Expected left gate column cell (0,%d) to be wall", row)
		}
		if !g.IsWall(Cell{Col: g.Cols - 1, Row: row}) {
			t.Errorf("Expected right gate column cell (%d,%d) to be wall", g.Cols-1, row)
		}
	}
	for col := 0; col < g.Cols; col++ {
		if !g.IsWall(Cell{Col: col, Row: 0}) || !g.IsWall(Cell{Col: col, Row: g.Rows - 1}) {
			t.Errorf("Expected boundary rows to be wall at col %d", col)
		}
	}
}

func TestPlayableMatchesWallPredicate(t *testing.T) {
	g := Default()

	// A cell is playable iff it is inside the interior and not a wall.
	for col := 0; col < g.Cols; col++ {
		for row := 0; row < g.Rows; row++ {
			c := Cell{Col: col, Row: row}
			if g.IsPlayable(c) == g.IsWall(c) {
				t.Errorf("Cell %v: IsPlayable and IsWall must be complementary in the interior", c)
			}
		}
	}

	for _, c := range g.PlayableCells() {
		if !g.IsPlayable(c) {
			t.Errorf("PlayableCells returned non-playable %v", c)
		}
	}
}

func TestHotColdPartition(t *testing.T) {
	g := Default()

	hot := g.HotZoneCells()
	cold := g.ColdZoneCells()
	if len(hot)+len(cold) != len(g.PlayableCells()) {
		t.Errorf("Hot (%d) + cold (%d) must partition playable (%d)", len(hot), len(cold), len(g.PlayableCells()))
	}
	for _, c := range hot {
		if !g.IsHotZone(c) {
			t.Errorf("HotZoneCells returned non-hot %v", c)
		}
	}
	// Stripe rows and the central disk are hot.
	if !g.IsHotZone(Cell{Col: 5, Row: 1}) || !g.IsHotZone(Cell{Col: 5, Row: 12}) {
		t.Error("Expected stripe rows 1 and 12 to be hot")
	}
	if !g.IsHotZone(Cell{Col: 10, Row: 7}) || !g.IsHotZone(Cell{Col: 8, Row: 5}) {
		t.Error("Expected central disk cells to be hot")
	}
	if g.IsHotZone(Cell{Col: 5, Row: 6}) {
		t.Error("Expected (5,6) to be cold")
	}
}

func TestGateCell(t *testing.T) {
	g := Default()

	if got := g.GateCell(GateLeft, 6); got != (Cell{Col: 0, Row: 6}) {
		t.Errorf("Left gate at row 6: got %v", got)
	}
	if got := g.GateCell(GateRight, 6); got != (Cell{Col: 19, Row: 6}) {
		t.Errorf("Right gate at row 6: got %v", got)
	}
}

func TestDegenerateLayoutRejected(t *testing.T) {
	if _, err := New(2, 2, nil, HotZones{}); err == nil {
		t.Error("Expected error for a grid with no interior")
	}
	if _, err := New(5, 5, []string{"####", "####", "####", "####"}, HotZones{}); err == nil {
		t.Error("Expected error for maze layout larger than playable area")
	}
}

func TestManhattanDistance(t *testing.T) {
	a := Cell{Col: 2, Row: 3}
	b := Cell{Col: 5, Row: 1}
	if d := a.ManhattanDistance(b); d != 5 {
		t.Errorf("Expected distance 5, got %d", d)
	}
}

func TestCellToPixel(t *testing.T) {
	x, y := CellToPixel(Cell{Col: 2, Row: 1}, 40)
	if x != 100 || y != 60 {
		t.Errorf("Expected cell center (100,60), got (%d,%d)", x, y)
	}
}
