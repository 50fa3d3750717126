package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/behavlab/forager/internal/domain/actor"
	"github.com/behavlab/forager/internal/domain/grid"
	"github.com/behavlab/forager/internal/domain/pellet"
	"github.com/behavlab/forager/internal/events"
	"github.com/behavlab/forager/internal/platform/logger"
)

// Block pacing constants.
const (
	// PlayerMoveDelay is the minimum time between repeated steps while a
	// movement key is held.
	PlayerMoveDelay = 120 * time.Millisecond
	// AdversaryMoveDelay paces adversary roaming; slower than the player so
	// contact is avoidable.
	AdversaryMoveDelay = 550 * time.Millisecond
	// RespawnInvincibility is the contact-immunity window after losing a life.
	RespawnInvincibility = 2 * time.Second

	// PlayerLives at block start.
	PlayerLives = 3
	// AdversaryCount is the spawn target; smaller boards run with fewer.
	AdversaryCount = 3
)

// BlockState is the block engine's top-level state.
type BlockState int

const (
	// BlockRunning: steady-state play.
	BlockRunning BlockState = iota
	// BlockAwaitingRelease: all pellets consumed; waiting for acknowledgment
	// or quit. No further gameplay mutation.
	BlockAwaitingRelease
	// BlockTerminated: quit, lives exhausted, or acknowledged after
	// AwaitingRelease.
	BlockTerminated
)

func (s BlockState) String() string {
	switch s {
	case BlockRunning:
		return "running"
	case BlockAwaitingRelease:
		return "awaiting_release"
	case BlockTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// BlockConfig is the per-block configuration, read once at block start and
// immutable for the block.
type BlockConfig struct {
	BlockID           int
	LeftGateRow       int
	RightGateRow      int
	TeleportInterval  time.Duration
	TeleportsPerBlock int
}

// Outcome is a block's terminal result.
type Outcome struct {
	Score    int
	UserQuit bool
}

// TickInput is the drained input state for one tick, independent of the
// frontend that produced it.
type TickInput struct {
	// Keys holds the raw key names pressed this tick, in arrival order. Each
	// is logged.
	Keys []string
	// Moves holds the direction presses this tick; each causes one immediate
	// step.
	Moves []grid.Direction
	// Held is the movement direction currently held down, zero if none.
	Held grid.Direction
	// Exit is true if the exit/acknowledge key was pressed this tick.
	Exit bool
	// Quit is true on an operator quit signal.
	Quit bool
}

// Block runs one timed play session: its own pellet layout, gate rows and
// adversary set. All mutable state is owned here for the life of the block.
type Block struct {
	cfg  BlockConfig
	grid *grid.Grid

	pellets     pellet.Field
	player      *actor.Player
	adversaries []*actor.Adversary
	gate        *Gate
	scheduler   *TeleportScheduler

	startCell       grid.Cell
	lastMove        time.Time
	lastAdversaries time.Time

	state    BlockState
	userQuit bool

	eventLog *events.EventLog
	logger   *logger.Logger
	rng      *rand.Rand // free-running: spawns, AI, jitter. Layout uses its own seeded source.
}

// NewBlock builds a block's world: a pellet field seeded by the block ID, the
// player on a random playable cell, and up to three adversaries on distinct
// other cells. rng drives every non-reproducible draw; pass a seeded source
// in tests. A maze with no playable cells falls back to a single safe spawn
// cell.
func NewBlock(cfg BlockConfig, g *grid.Grid, eventLog *events.EventLog, log *logger.Logger, rng *rand.Rand, now time.Time) *Block {
	if cfg.TeleportInterval <= 0 {
		cfg.TeleportInterval = DefaultTeleportInterval
	}
	if cfg.TeleportsPerBlock < 0 {
		cfg.TeleportsPerBlock = DefaultTeleportsPerBlock
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := &Block{
		cfg:      cfg,
		grid:     g,
		pellets:  pellet.Build(g, int64(cfg.BlockID)),
		gate:     NewGate(g),
		eventLog: eventLog,
		logger:   log,
		rng:      rng,
		state:    BlockRunning,
	}

	playable := g.PlayableCells()
	if len(playable) == 0 {
		playable = []grid.Cell{g.FallbackCell()}
	}
	b.startCell = playable[rng.Intn(len(playable))]
	b.player = actor.NewPlayer(b.startCell, PlayerLives)

	// Adversaries spawn on distinct playable cells away from the player.
	var others []grid.Cell
	for _, c := range playable {
		if c != b.startCell {
			others = append(others, c)
		}
	}
	rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	n := AdversaryCount
	if len(others) < n {
		n = len(others)
	}
	for i := 0; i < n; i++ {
		b.adversaries = append(b.adversaries, &actor.Adversary{
			ID:     i,
			Cell:   others[i],
			Facing: grid.Cardinals[rng.Intn(len(grid.Cardinals))],
		})
	}

	b.scheduler = NewTeleportScheduler(cfg.TeleportInterval, cfg.TeleportsPerBlock, now, rng)
	b.lastMove = now
	b.lastAdversaries = now

	b.emit(events.EventTypeBlockStart, now, events.BlockStartPayload{
		BlockID:      cfg.BlockID,
		LeftGateRow:  cfg.LeftGateRow,
		RightGateRow: cfg.RightGateRow,
	})
	if log != nil {
		log.Event("BLOCK_START", fmt.Sprintf("block=%d gates=L%d/R%d pellets=%d", cfg.BlockID, cfg.LeftGateRow, cfg.RightGateRow, len(b.pellets)))
	}
	return b
}

// State returns the block's top-level state.
func (b *Block) State() BlockState { return b.state }

// Outcome returns the terminal result. Only meaningful once State is
// BlockTerminated.
func (b *Block) Outcome() Outcome {
	return Outcome{Score: b.player.Score, UserQuit: b.userQuit}
}

// Player returns the player state for read-only observers.
func (b *Block) Player() *actor.Player { return b.player }

// Adversaries returns the adversary list for read-only observers.
func (b *Block) Adversaries() []*actor.Adversary { return b.adversaries }

// Pellets returns the live pellet field for read-only observers.
func (b *Block) Pellets() pellet.Field { return b.pellets }

// Gate returns the quarantine state machine for read-only observers.
func (b *Block) Gate() *Gate { return b.gate }

// Tick advances the simulation by one frame. now is read once by the caller
// at tick start; every deadline comparison uses it. Order per tick: input,
// gate XOR (held movement, teleport, adversaries, collision), then the
// pellet-exhaustion check.
func (b *Block) Tick(now time.Time, in TickInput) {
	if b.state == BlockTerminated {
		return
	}

	for _, key := range in.Keys {
		b.emit(events.EventTypeKeyPress, now, events.KeyPressPayload{Key: key})
	}

	if in.Quit {
		b.terminate(now, true)
		return
	}

	if b.state == BlockAwaitingRelease {
		if in.Exit {
			b.terminate(now, false)
		}
		return
	}

	// Immediate single-cell steps from discrete presses.
	if !b.gate.Active() && !b.player.Frozen {
		for _, dir := range in.Moves {
			b.tryStep(dir, now)
		}
	}

	if b.gate.Active() {
		// The gate owns player position and freeze; everything else is
		// skipped this tick.
		if exit, done := b.gate.Update(b.player, now, in.Exit); done {
			b.onGateExit(now, exit)
		}
	} else {
		// Held-key repeat movement.
		if !b.player.Frozen && !in.Held.IsZero() && now.Sub(b.lastMove) >= PlayerMoveDelay {
			b.tryStep(in.Held, now)
		}

		if side, fire := b.scheduler.Tick(now, b.player.Frozen); fire {
			b.enterGate(side, now)
		}

		if now.Sub(b.lastAdversaries) >= AdversaryMoveDelay {
			b.lastAdversaries = now
			MoveAdversaries(b.grid, b.adversaries, b.rng)
		}

		if !b.player.Invincible(now) {
			if hit := CheckCollisions(b.adversaries, b.player.Cell); len(hit) > 0 {
				b.onContact(now, hit)
				if b.state == BlockTerminated {
					return
				}
			}
		}
	}

	// The field can empty mid-quarantine; the block still ends.
	if len(b.pellets) == 0 && b.state == BlockRunning {
		b.state = BlockAwaitingRelease
		if b.logger != nil {
			b.logger.Event("BLOCK_CLEARED", fmt.Sprintf("block=%d score=%d", b.cfg.BlockID, b.player.Score))
		}
	}
}

// tryStep attempts one single-cell move. Wall and out-of-bounds destinations
// are silently rejected; a successful step picks up any pellet on the
// destination.
func (b *Block) tryStep(dir grid.Direction, now time.Time) {
	next := b.player.Cell.Add(dir)
	if b.grid.IsWall(next) || !b.grid.InBounds(next) {
		return
	}
	b.player.Cell = next
	b.player.Facing = dir
	b.lastMove = now

	if tier, ok := b.pellets.Take(next); ok {
		pts := tier.Points()
		b.player.Score += pts
		b.emit(events.EventTypePellet, now, events.PelletPayload{
			Cell:       next,
			Tier:       string(tier),
			Points:     pts,
			TotalScore: b.player.Score,
		})
	}
}

func (b *Block) enterGate(side grid.GateSide, now time.Time) {
	prev := b.player.Cell
	gateRow := b.cfg.LeftGateRow
	if side == grid.GateRight {
		gateRow = b.cfg.RightGateRow
	}
	b.gate.Enter(b.player, side, gateRow, now)
	b.emit(events.EventTypeTeleport, now, events.TeleportPayload{
		Side:           string(side),
		GateRow:        gateRow,
		PlayerCellPrev: prev,
	})
	if b.logger != nil {
		b.logger.Event("TELEPORT", fmt.Sprintf("block=%d side=%s row=%d", b.cfg.BlockID, side, gateRow))
	}
}

// onGateExit handles a completed quarantine: logging and the safe-passage
// adversary clearing around the vacated gate cell.
func (b *Block) onGateExit(now time.Time, exit GateExit) {
	b.emit(events.EventTypeGateExit, now, events.GateExitPayload{
		DurationSec:   exit.Duration.Seconds(),
		EarlyTapCount: exit.EarlyTapCount,
		ExitedByKey:   exit.Outcome == GateExitedByKey,
	})
	ClearAdversariesNear(b.adversaries, exit.GateCell, GateClearRadius)
	if b.logger != nil {
		b.logger.Event("GATE_EXIT", fmt.Sprintf("block=%d waited=%.1fs taps=%d by_key=%t",
			b.cfg.BlockID, exit.Duration.Seconds(), exit.EarlyTapCount, exit.Outcome == GateExitedByKey))
	}
}

// onContact costs one life per tick regardless of how many adversaries
// overlap, then either ends the block or respawns the player with a brief
// invincibility window.
func (b *Block) onContact(now time.Time, hit []int) {
	for _, id := range hit {
		b.emit(events.EventTypeAdversaryContact, now, events.AdversaryContactPayload{AdversaryID: id})
	}
	b.player.Lives--
	if b.logger != nil {
		b.logger.Event("ADVERSARY_CONTACT", fmt.Sprintf("block=%d lives=%d", b.cfg.BlockID, b.player.Lives))
	}
	if b.player.Lives <= 0 {
		b.terminate(now, false)
		return
	}
	b.player.Cell = b.startCell
	b.player.InvincibleUntil = now.Add(RespawnInvincibility)
	b.player.Facing = grid.Direction{}
}

func (b *Block) terminate(now time.Time, userQuit bool) {
	b.state = BlockTerminated
	b.userQuit = userQuit
	b.emit(events.EventTypeBlockEnd, now, events.BlockEndPayload{
		BlockID:  b.cfg.BlockID,
		Score:    b.player.Score,
		UserQuit: userQuit,
	})
	if b.logger != nil {
		b.logger.Event("BLOCK_END", fmt.Sprintf("block=%d score=%d quit=%t", b.cfg.BlockID, b.player.Score, userQuit))
	}
}

func (b *Block) emit(t events.EventType, now time.Time, payload interface{}) {
	if b.eventLog == nil {
		return
	}
	b.eventLog.Append(events.Event{
		ID:        events.GenerateEventID(),
		Timestamp: now,
		Type:      t,
		BlockID:   b.cfg.BlockID,
		Payload:   payload,
	})
}
