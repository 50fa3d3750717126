package engine

import (
	"time"

	"github.com/behavlab/forager/internal/domain/grid"
)

// Snapshot is a read-only view of one block's state at a tick boundary, fed
// to render observers. Nothing in it feeds back into the simulation.
type Snapshot struct {
	BlockID int    `json:"block_id"`
	State   string `json:"state"`
	Time    int64  `json:"ts_unix_ms"`

	Player      PlayerSnapshot      `json:"player"`
	Adversaries []AdversarySnapshot `json:"adversaries"`
	Pellets     []PelletSnapshot    `json:"pellets"`
	Gate        GateSnapshot        `json:"gate"`
}

// PlayerSnapshot mirrors the player state for rendering.
type PlayerSnapshot struct {
	Cell       grid.Cell      `json:"cell"`
	Facing     grid.Direction `json:"facing"`
	Frozen     bool           `json:"frozen"`
	Score      int            `json:"score"`
	Lives      int            `json:"lives"`
	Invincible bool           `json:"invincible"`
}

// AdversarySnapshot mirrors one adversary for rendering. Removed adversaries
// are omitted from snapshots.
type AdversarySnapshot struct {
	ID     int            `json:"id"`
	Cell   grid.Cell      `json:"cell"`
	Facing grid.Direction `json:"facing"`
}

// PelletSnapshot is one remaining pellet.
type PelletSnapshot struct {
	Cell grid.Cell `json:"cell"`
	Tier string    `json:"tier"`
}

// GateSnapshot mirrors the quarantine state for rendering. Side and row are
// stale while Active is false.
type GateSnapshot struct {
	Active        bool   `json:"active"`
	Side          string `json:"side,omitempty"`
	Row           int    `json:"row,omitempty"`
	EarlyTapCount int    `json:"early_tap_count"`
}

// Snapshot captures the block state at now for the render feed.
func (b *Block) Snapshot(now time.Time) Snapshot {
	s := Snapshot{
		BlockID: b.cfg.BlockID,
		State:   b.state.String(),
		Time:    now.UnixMilli(),
		Player: PlayerSnapshot{
			Cell:       b.player.Cell,
			Facing:     b.player.Facing,
			Frozen:     b.player.Frozen,
			Score:      b.player.Score,
			Lives:      b.player.Lives,
			Invincible: b.player.Invincible(now),
		},
		Gate: GateSnapshot{
			Active:        b.gate.Active(),
			EarlyTapCount: b.gate.EarlyTapCount(),
		},
	}
	if b.gate.Active() {
		s.Gate.Side = string(b.gate.Side())
		s.Gate.Row = b.gate.Row()
	}
	for _, a := range b.adversaries {
		if a.Removed {
			continue
		}
		s.Adversaries = append(s.Adversaries, AdversarySnapshot{ID: a.ID, Cell: a.Cell, Facing: a.Facing})
	}
	for c, t := range b.pellets {
		s.Pellets = append(s.Pellets, PelletSnapshot{Cell: c, Tier: string(t)})
	}
	return s
}
