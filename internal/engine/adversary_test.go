package engine

import (
	"math/rand"
	"testing"

	"github.com/behavlab/forager/internal/domain/actor"
	"github.com/behavlab/forager/internal/domain/grid"
)

func TestMoveAdversariesStaysInBounds(t *testing.T) {
	g := grid.Default()
	rng := rand.New(rand.NewSource(3))

	adversaries := []*actor.Adversary{
		{ID: 0, Cell: grid.Cell{Col: 5, Row: 6}},
		{ID: 1, Cell: grid.Cell{Col: 10, Row: 10}, Facing: grid.Left},
	}

	for i := 0; i < 200; i++ {
		before := []grid.Cell{adversaries[0].Cell, adversaries[1].Cell}
		MoveAdversaries(g, adversaries, rng)
		for j, a := range adversaries {
			if !g.InBounds(a.Cell) {
				t.Fatalf("Adversary %d left the grid: %v", a.ID, a.Cell)
			}
			if d := a.Cell.ManhattanDistance(before[j]); d > 1 {
				t.Fatalf("Adversary %d moved %d cells in one tick", a.ID, d)
			}
		}
	}
}

func TestMoveAdversariesSkipsRemoved(t *testing.T) {
	g := grid.Default()
	rng := rand.New(rand.NewSource(1))

	a := &actor.Adversary{ID: 0, Cell: grid.Cell{Col: 5, Row: 6}, Removed: true}
	for i := 0; i < 50; i++ {
		MoveAdversaries(g, []*actor.Adversary{a}, rng)
	}
	if a.Cell != (grid.Cell{Col: 5, Row: 6}) {
		t.Errorf("Removed adversary must stay put, moved to %v", a.Cell)
	}
}

func TestCheckCollisions(t *testing.T) {
	player := grid.Cell{Col: 4, Row: 4}
	adversaries := []*actor.Adversary{
		{ID: 0, Cell: player},
		{ID: 1, Cell: grid.Cell{Col: 4, Row: 5}},
		{ID: 2, Cell: player, Removed: true},
		{ID: 3, Cell: player},
	}

	hit := CheckCollisions(adversaries, player)
	if len(hit) != 2 || hit[0] != 0 || hit[1] != 3 {
		t.Errorf("Expected hits [0 3], got %v", hit)
	}
}

func TestClearAdversariesNear(t *testing.T) {
	gateCell := grid.Cell{Col: 0, Row: 6}
	adversaries := []*actor.Adversary{
		{ID: 0, Cell: grid.Cell{Col: 0, Row: 6}}, // distance 0
		{ID: 1, Cell: grid.Cell{Col: 1, Row: 6}}, // distance 1
		{ID: 2, Cell: grid.Cell{Col: 1, Row: 7}}, // distance 2
		{ID: 3, Cell: grid.Cell{Col: 0, Row: 8}}, // distance 2
	}

	ClearAdversariesNear(adversaries, gateCell, GateClearRadius)

	if !adversaries[0].Removed || !adversaries[1].Removed {
		t.Error("Adversaries within radius 1 must be removed")
	}
	if adversaries[2].Removed || adversaries[3].Removed {
		t.Error("Adversaries beyond radius 1 must be unaffected")
	}
}
