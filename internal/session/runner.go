package session

import (
	"context"
	"fmt"
	"time"

	"github.com/behavlab/forager/internal/domain/grid"
	"github.com/behavlab/forager/internal/engine"
	"github.com/behavlab/forager/internal/events"
	"github.com/behavlab/forager/internal/platform/logger"
	"github.com/behavlab/forager/internal/platform/metrics"
)

// FrameInterval paces the tick loop. Timing inside the engine is wall-clock
// based, so the exact rate only affects input latency and feed smoothness.
const FrameInterval = time.Second / 60

// PracticeBlockID marks the optional warm-up block whose score is discarded.
const PracticeBlockID = -1

// Broadcaster receives one state snapshot per tick for render observers.
type Broadcaster interface {
	BroadcastSnapshot(v interface{})
}

// Result is the session's terminal outcome.
type Result struct {
	SessionID  string
	TotalScore int
	UserQuit   bool
}

// Runner sequences the configured blocks of one experiment session, feeding
// each block's engine from the input queue and publishing tick snapshots.
type Runner struct {
	cfg       Config
	grid      *grid.Grid
	eventLog  *events.EventLog
	logger    *logger.Logger
	inputs    *InputQueue
	broadcast Broadcaster
	sessionID string
}

// NewRunner wires a session runner. broadcast may be nil for headless tests.
func NewRunner(cfg Config, g *grid.Grid, el *events.EventLog, log *logger.Logger, inputs *InputQueue, broadcast Broadcaster) *Runner {
	return &Runner{
		cfg:       cfg,
		grid:      g,
		eventLog:  el,
		logger:    log,
		inputs:    inputs,
		broadcast: broadcast,
		sessionID: events.NewSessionID(),
	}
}

// SessionID returns the short identifier for this session.
func (r *Runner) SessionID() string { return r.sessionID }

// Run executes the optional practice block and every configured block in
// order, accumulating the total score. The session ends early on operator
// quit or context cancellation.
func (r *Runner) Run(ctx context.Context) Result {
	r.emit(events.EventTypeSessionStart, -1, events.SessionStartPayload{SessionID: r.sessionID})
	r.logger.Info("Session " + r.sessionID + " started")

	result := Result{SessionID: r.sessionID}

	if r.cfg.PracticeBlock {
		outcome := r.runBlock(ctx, PracticeBlockID, r.cfg.Blocks[0])
		if outcome.UserQuit {
			result.UserQuit = true
			r.end(result)
			return result
		}
		if !r.awaitAck(ctx) {
			result.UserQuit = true
			r.end(result)
			return result
		}
	}

	for i, b := range r.cfg.Blocks {
		outcome := r.runBlock(ctx, i, b)
		result.TotalScore += outcome.Score
		metrics.Get().RecordBlockCompleted()
		if outcome.UserQuit {
			result.UserQuit = true
			break
		}
		// Between-block pause: the summary screen waits for acknowledgment.
		if i < len(r.cfg.Blocks)-1 {
			if !r.awaitAck(ctx) {
				result.UserQuit = true
				break
			}
		}
	}

	r.end(result)
	return result
}

func (r *Runner) end(result Result) {
	r.emit(events.EventTypeSessionEnd, -1, events.SessionEndPayload{
		SessionID:  r.sessionID,
		TotalScore: result.TotalScore,
	})
	r.logger.Info(fmt.Sprintf("Session %s ended, total score %d", r.sessionID, result.TotalScore))
}

// runBlock ticks one block to termination at the frame rate. Context
// cancellation is delivered to the engine as an operator quit.
func (r *Runner) runBlock(ctx context.Context, blockID int, gates BlockGateRows) engine.Outcome {
	cfg := engine.BlockConfig{
		BlockID:           blockID,
		LeftGateRow:       gates.LeftGateRow,
		RightGateRow:      gates.RightGateRow,
		TeleportInterval:  time.Duration(r.cfg.TeleportIntervalSec * float64(time.Second)),
		TeleportsPerBlock: r.cfg.TeleportsPerBlock,
	}
	block := engine.NewBlock(cfg, r.grid, r.eventLog, r.logger, nil, time.Now())

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			block.Tick(time.Now(), engine.TickInput{Quit: true})
			return block.Outcome()
		case <-ticker.C:
			now := time.Now()
			block.Tick(now, r.inputs.Drain())
			metrics.Get().RecordTick(time.Since(now))
			if r.broadcast != nil {
				r.broadcast.BroadcastSnapshot(block.Snapshot(now))
			}
			if block.State() == engine.BlockTerminated {
				return block.Outcome()
			}
		}
	}
}

// awaitAck blocks until the exit key acknowledges the between-block summary.
// Returns false on quit or cancellation.
func (r *Runner) awaitAck(ctx context.Context) bool {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			in := r.inputs.Drain()
			if in.Quit {
				return false
			}
			if in.Exit {
				return true
			}
		}
	}
}

func (r *Runner) emit(t events.EventType, blockID int, payload interface{}) {
	r.eventLog.Append(events.Event{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      t,
		BlockID:   blockID,
		Payload:   payload,
	})
}
