// Package engine contains the per-block real-time simulation: player
// movement, adversary roaming, the quarantine gate state machine, the
// teleport scheduler and the block orchestration loop.
//
// ARCHITECTURAL RULE: all mutable block state (player, adversaries, pellet
// field, gate, scheduler) is owned by a single Block and is never shared
// across blocks or goroutines. Timing decisions compare a wall-clock reading
// taken once per tick against absolute deadlines, never frame counts, so
// behavior is frame-rate independent.
package engine
