package engine

import (
	"math/rand"
	"time"

	"github.com/behavlab/forager/internal/domain/grid"
)

// Default teleport pacing.
const (
	DefaultTeleportInterval  = 30 * time.Second
	DefaultTeleportsPerBlock = 2
)

// TeleportScheduler triggers forced gate entries at jittered intervals, up to
// a fixed quota per block. Triggers are suppressed while the player is frozen;
// a pending trigger simply fires on a later tick. Unused quota at block end is
// dropped.
type TeleportScheduler struct {
	interval  time.Duration
	remaining int
	next      time.Time
	rng       *rand.Rand
}

// NewTeleportScheduler arms the first trigger inside a 70%-130% window of the
// nominal interval.
func NewTeleportScheduler(interval time.Duration, quota int, now time.Time, rng *rand.Rand) *TeleportScheduler {
	s := &TeleportScheduler{
		interval:  interval,
		remaining: quota,
		rng:       rng,
	}
	s.next = now.Add(s.jitter())
	return s
}

// jitter returns interval * (0.7 + 0.6*U), U uniform in [0,1).
func (s *TeleportScheduler) jitter() time.Duration {
	return time.Duration(float64(s.interval) * (0.7 + 0.6*s.rng.Float64()))
}

// Remaining returns the unspent trigger quota.
func (s *TeleportScheduler) Remaining() int { return s.remaining }

// Tick checks whether a teleport fires now. When it does, the quota is
// consumed, a side is drawn uniformly, and the next trigger is re-armed
// relative to now with fresh jitter.
func (s *TeleportScheduler) Tick(now time.Time, playerFrozen bool) (grid.GateSide, bool) {
	if s.remaining <= 0 || playerFrozen || now.Before(s.next) {
		return "", false
	}
	s.remaining--
	s.next = now.Add(s.jitter())
	if s.rng.Intn(2) == 0 {
		return grid.GateLeft, true
	}
	return grid.GateRight, true
}
