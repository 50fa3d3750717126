// Package pellet defines pellet tiers and the per-block pellet field.
// This package is PURE and must NOT import any infrastructure packages.
package pellet

import (
	"math/rand"

	"github.com/behavlab/forager/internal/domain/grid"
)

// Tier is the pellet value class.
type Tier string

const (
	TierHigh Tier = "high"
	TierLow  Tier = "low"
)

// Point values per tier.
const (
	PointsHigh = 10
	PointsLow  = 1
)

// ColdZoneFraction is the share of cold-zone playable cells that receive a
// low-value pellet.
const ColdZoneFraction = 0.35

// Points returns the score awarded for picking up a pellet of this tier.
func (t Tier) Points() int {
	if t == TierHigh {
		return PointsHigh
	}
	return PointsLow
}

// Field maps cells to pellet tiers. Entries are only ever removed, never
// re-added, for the life of a block.
type Field map[grid.Cell]Tier

// Build creates the pellet layout for one block. Every hot-zone playable cell
// gets a high-value pellet; max(1, floor(0.35*|cold|)) cold-zone cells, drawn
// without replacement from the seeded generator, get a low-value pellet.
// Deterministic for a given grid and seed.
func Build(g *grid.Grid, seed int64) Field {
	rng := rand.New(rand.NewSource(seed))
	f := make(Field)

	for _, c := range g.HotZoneCells() {
		f[c] = TierHigh
	}

	cold := g.ColdZoneCells()
	if len(cold) == 0 {
		return f
	}
	n := int(float64(len(cold)) * ColdZoneFraction)
	if n < 1 {
		n = 1
	}
	// Sample without replacement: partial Fisher-Yates over a copy.
	cells := make([]grid.Cell, len(cold))
	copy(cells, cold)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(cells)-i)
		cells[i], cells[j] = cells[j], cells[i]
		f[cells[i]] = TierLow
	}
	return f
}

// Take removes and returns the pellet at the cell, if any.
func (f Field) Take(c grid.Cell) (Tier, bool) {
	t, ok := f[c]
	if ok {
		delete(f, c)
	}
	return t, ok
}
