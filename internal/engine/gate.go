package engine

import (
	"time"

	"github.com/behavlab/forager/internal/domain/actor"
	"github.com/behavlab/forager/internal/domain/grid"
)

// Quarantine timing rules.
const (
	// GateMinWait is the baseline wait before the exit key releases.
	GateMinWait = 3 * time.Second
	// GateEarlyTapPenalty extends the required wait per premature exit attempt.
	GateEarlyTapPenalty = 2 * time.Second
	// GateMaxWait is the hard cap; the player is auto-released at this point
	// regardless of key state, so nobody is stuck indefinitely.
	GateMaxWait = 12 * time.Second
)

// GateOutcome tags the result of one gate update.
type GateOutcome int

const (
	// GateNoChange: still quarantined (or gate inactive).
	GateNoChange GateOutcome = iota
	// GateExitedByKey: the exit key released the player after the required wait.
	GateExitedByKey
	// GateAutoReleased: the 12s cap expired without a valid key exit.
	GateAutoReleased
)

// GateExit describes a completed quarantine, returned by Update on a
// transition to inactive. The caller reacts to it (adversary clearing,
// logging) instead of the gate invoking callbacks.
type GateExit struct {
	Outcome       GateOutcome
	Duration      time.Duration
	EarlyTapCount int
	GateCell      grid.Cell
}

// Gate is the quarantine state machine. It cycles inactive <-> quarantined
// for the life of a block; there is no terminal state. While active it owns
// the player's position and frozen flag.
type Gate struct {
	active        bool
	side          grid.GateSide
	gateRow       int
	enteredAt     time.Time
	earlyTapCount int
	exitedByKey   bool
	returnCell    grid.Cell

	grid *grid.Grid
}

// NewGate creates an inactive gate bound to a maze.
func NewGate(g *grid.Grid) *Gate {
	return &Gate{grid: g}
}

// Active reports whether the player is currently quarantined.
func (gt *Gate) Active() bool { return gt.active }

// Side returns the gate side. Only meaningful while active.
func (gt *Gate) Side() grid.GateSide { return gt.side }

// Row returns the gate row. Only meaningful while active.
func (gt *Gate) Row() int { return gt.gateRow }

// EarlyTapCount returns the premature-exit attempts of the current (or most
// recent) quarantine.
func (gt *Gate) EarlyTapCount() int { return gt.earlyTapCount }

// ReturnCell returns the saved pre-teleport position. Only meaningful while
// active.
func (gt *Gate) ReturnCell() grid.Cell { return gt.returnCell }

// RequiredWait is the wait the exit key must outlast: 3s plus 2s per early
// tap, capped at the 12s hard limit.
func (gt *Gate) RequiredWait() time.Duration {
	required := GateMinWait + time.Duration(gt.earlyTapCount)*GateEarlyTapPenalty
	if required > GateMaxWait {
		required = GateMaxWait
	}
	return required
}

// Enter teleports the player to the gate cell and freezes them. The current
// position is saved for restoration on exit. Stale early-tap state from a
// previous quarantine is cleared.
func (gt *Gate) Enter(p *actor.Player, side grid.GateSide, gateRow int, now time.Time) {
	gt.active = true
	gt.side = side
	gt.gateRow = gateRow
	gt.enteredAt = now
	gt.earlyTapCount = 0
	gt.exitedByKey = false
	gt.returnCell = p.Cell

	p.Cell = gt.grid.GateCell(side, gateRow)
	p.Facing = grid.Direction{}
	p.Frozen = true
}

// Update advances the quarantine by one tick. A key press after the required
// wait releases the player; a premature press extends the next required wait
// by 2s; the 12s cap force-releases regardless of key state. On release the
// player is unfrozen and restored to the saved cell, and the exit details are
// returned for the caller to act on.
func (gt *Gate) Update(p *actor.Player, now time.Time, exitKeyPressed bool) (GateExit, bool) {
	if !gt.active {
		return GateExit{}, false
	}
	elapsed := now.Sub(gt.enteredAt)

	if exitKeyPressed {
		if elapsed >= gt.RequiredWait() {
			gt.exitedByKey = true
			return gt.release(p, now, elapsed, GateExitedByKey), true
		}
		gt.earlyTapCount++
	}
	if elapsed >= GateMaxWait {
		return gt.release(p, now, elapsed, GateAutoReleased), true
	}
	return GateExit{}, false
}

func (gt *Gate) release(p *actor.Player, now time.Time, elapsed time.Duration, outcome GateOutcome) GateExit {
	gateCell := gt.grid.GateCell(gt.side, gt.gateRow)
	gt.active = false
	p.Frozen = false
	p.Cell = gt.returnCell
	return GateExit{
		Outcome:       outcome,
		Duration:      elapsed,
		EarlyTapCount: gt.earlyTapCount,
		GateCell:      gateCell,
	}
}
