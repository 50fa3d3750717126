package pellet

import (
	"testing"

	"github.com/behavlab/forager/internal/domain/grid"
)

// corridorGrid builds a 12-cell single-row maze with exactly 2 hot cells and
// 10 cold cells.
func corridorGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(14, 3, nil, grid.HotZones{
		Center:     grid.Cell{Col: 1, Row: 1},
		RadiusCols: 1,
		RadiusRows: 0,
	})
	if err != nil {
		t.Fatalf("corridor grid: %v", err)
	}
	return g
}

func TestBuildDeterministic(t *testing.T) {
	g := grid.Default()

	a := Build(g, 42)
	b := Build(g, 42)

	if len(a) != len(b) {
		t.Fatalf("Same seed produced different sizes: %d vs %d", len(a), len(b))
	}
	for c, tier := range a {
		if other, ok := b[c]; !ok || other != tier {
			t.Errorf("Same seed diverged at %v: %q vs %q", c, tier, other)
		}
	}
}

func TestBuildCountInvariant(t *testing.T) {
	g := grid.Default()

	hot := len(g.HotZoneCells())
	cold := len(g.ColdZoneCells())
	want := hot + int(float64(cold)*ColdZoneFraction)
	if int(float64(cold)*ColdZoneFraction) < 1 {
		want = hot + 1
	}

	f := Build(g, 7)
	if len(f) != want {
		t.Errorf("Expected %d pellets (%d hot + sampled cold), got %d", want, hot, len(f))
	}

	// Every hot-zone playable cell carries a high-value pellet; everything
	// else in the field is low.
	for _, c := range g.HotZoneCells() {
		if f[c] != TierHigh {
			t.Errorf("Hot cell %v should hold a high pellet, got %q", c, f[c])
		}
	}
	for c, tier := range f {
		if !g.IsHotZone(c) && tier != TierLow {
			t.Errorf("Cold cell %v should hold a low pellet, got %q", c, tier)
		}
	}
}

func TestBuildSmallScenario(t *testing.T) {
	// 2 hot + 10 cold cells: field must hold 2 high + max(1, floor(3.5)) = 5.
	g := corridorGrid(t)
	if n := len(g.HotZoneCells()); n != 2 {
		t.Fatalf("Scenario grid should have 2 hot cells, got %d", n)
	}
	if n := len(g.ColdZoneCells()); n != 10 {
		t.Fatalf("Scenario grid should have 10 cold cells, got %d", n)
	}

	f := Build(g, 1)
	if len(f) != 5 {
		t.Errorf("Expected 5 pellets, got %d", len(f))
	}
	high, low := 0, 0
	for _, tier := range f {
		if tier == TierHigh {
			high++
		} else {
			low++
		}
	}
	if high != 2 || low != 3 {
		t.Errorf("Expected 2 high + 3 low, got %d high + %d low", high, low)
	}
}

func TestTakeRemoves(t *testing.T) {
	g := corridorGrid(t)
	f := Build(g, 1)

	var target grid.Cell
	for c := range f {
		target = c
		break
	}

	tier, ok := f.Take(target)
	if !ok {
		t.Fatalf("Expected pellet at %v", target)
	}
	if tier.Points() != PointsHigh && tier.Points() != PointsLow {
		t.Errorf("Unexpected points for tier %q", tier)
	}
	// The field never regains an entry once removed.
	if _, ok := f.Take(target); ok {
		t.Errorf("Second take at %v should find nothing", target)
	}
}

func TestTierPoints(t *testing.T) {
	if TierHigh.Points() != 10 {
		t.Errorf("High pellet worth %d, want 10", TierHigh.Points())
	}
	if TierLow.Points() != 1 {
		t.Errorf("Low pellet worth %d, want 1", TierLow.Points())
	}
}
