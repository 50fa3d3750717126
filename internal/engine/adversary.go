package engine

import (
	"math/rand"

	"github.com/behavlab/forager/internal/domain/actor"
	"github.com/behavlab/forager/internal/domain/grid"
)

// TurnProbability is the per-move chance an adversary picks a fresh random
// direction instead of keeping its current facing.
const TurnProbability = 0.3

// GateClearRadius is the Manhattan radius around a vacated gate cell within
// which adversaries are removed after a completed quarantine.
const GateClearRadius = 1

// MoveAdversaries advances every non-removed adversary one biased-random
// step. An adversary keeps its facing with persistence, re-rolls once if the
// step hits a wall, and stays put if the retry lands out of bounds. Adversaries
// never read the player's position; this is mild aversive roaming, not
// pursuit.
func MoveAdversaries(g *grid.Grid, adversaries []*actor.Adversary, rng *rand.Rand) {
	for _, a := range adversaries {
		if a.Removed {
			continue
		}
		if a.Facing.IsZero() || rng.Float64() < TurnProbability {
			a.Facing = grid.Cardinals[rng.Intn(len(grid.Cardinals))]
		}
		next := a.Cell.Add(a.Facing)
		if g.IsWall(next) {
			// Single retry, no backtracking search.
			a.Facing = grid.Cardinals[rng.Intn(len(grid.Cardinals))]
			next = a.Cell.Add(a.Facing)
		}
		if g.InBounds(next) {
			a.Cell = next
		}
	}
}

// CheckCollisions returns the IDs of all non-removed adversaries occupying
// the player's cell.
func CheckCollisions(adversaries []*actor.Adversary, playerCell grid.Cell) []int {
	var hit []int
	for _, a := range adversaries {
		if a.Removed {
			continue
		}
		if a.Cell == playerCell {
			hit = append(hit, a.ID)
		}
	}
	return hit
}

// ClearAdversariesNear marks every non-removed adversary within the Manhattan
// radius of the given cell as removed. Removed adversaries are never revived
// within the block.
func ClearAdversariesNear(adversaries []*actor.Adversary, c grid.Cell, radius int) {
	for _, a := range adversaries {
		if a.Removed {
			continue
		}
		if a.Cell.ManhattanDistance(c) <= radius {
			a.Removed = true
		}
	}
}
