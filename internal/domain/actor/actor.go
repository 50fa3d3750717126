// Package actor defines the moving entities of a block: the player and the
// adversaries. This package is PURE and must NOT import any infrastructure
// packages.
package actor

import (
	"time"

	"github.com/behavlab/forager/internal/domain/grid"
)

// Player is the participant-controlled avatar for one block.
type Player struct {
	Cell   grid.Cell      `json:"cell"`
	Facing grid.Direction `json:"facing"` // zero value = no facing
	Frozen bool           `json:"frozen"` // true exactly while quarantined
	Score  int            `json:"score"`
	Lives  int            `json:"lives"`

	// InvincibleUntil is the deadline after which adversary contact harms
	// again. Zero means no active window.
	InvincibleUntil time.Time `json:"-"`
}

// NewPlayer places a player at the given cell with full lives.
func NewPlayer(c grid.Cell, lives int) *Player {
	return &Player{Cell: c, Lives: lives}
}

// Invincible reports whether contact is currently ignored.
func (p *Player) Invincible(now time.Time) bool {
	return now.Before(p.InvincibleUntil)
}

// Adversary is a wandering entity whose contact costs the player a life.
// Its identity is stable for the block.
type Adversary struct {
	ID     int            `json:"id"`
	Cell   grid.Cell      `json:"cell"`
	Facing grid.Direction `json:"facing"`

	// Removed is set once the adversary is cleared by the gate-exit cleanup.
	// Removed adversaries are inert for the rest of the block.
	Removed bool `json:"removed"`
}
