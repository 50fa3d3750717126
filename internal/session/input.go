package session

import (
	"sync"

	"github.com/behavlab/forager/internal/domain/grid"
	"github.com/behavlab/forager/internal/engine"
)

// Key names understood by the input queue.
const (
	KeyUp    = "up"
	KeyDown  = "down"
	KeyLeft  = "left"
	KeyRight = "right"
	KeyExit  = "space"
	KeyQuit  = "q"
)

var moveKeys = map[string]grid.Direction{
	KeyUp:    grid.Up,
	KeyDown:  grid.Down,
	KeyLeft:  grid.Left,
	KeyRight: grid.Right,
}

// InputQueue accumulates key transitions between ticks and drains them into
// one engine.TickInput per tick. It satisfies network.KeySink. Safe for
// concurrent use: websocket readers push, the runner drains.
type InputQueue struct {
	mu sync.Mutex

	keys  []string
	moves []grid.Direction
	exit  bool
	quit  bool

	// down tracks movement keys currently held; heldOrder keeps the most
	// recent press last so the newest held key wins.
	down      map[string]bool
	heldOrder []string
}

// NewInputQueue creates an empty input queue.
func NewInputQueue() *InputQueue {
	return &InputQueue{down: make(map[string]bool)}
}

// KeyDown records a key press. Every press is logged by the engine.
func (q *InputQueue) KeyDown(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.keys = append(q.keys, key)
	if dir, ok := moveKeys[key]; ok {
		q.moves = append(q.moves, dir)
		if !q.down[key] {
			q.down[key] = true
			q.heldOrder = append(q.heldOrder, key)
		}
		return
	}
	switch key {
	case KeyExit:
		q.exit = true
	case KeyQuit:
		q.quit = true
	}
}

// KeyUp records a key release; only movement keys carry held state.
func (q *InputQueue) KeyUp(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.down[key] {
		return
	}
	delete(q.down, key)
	for i, k := range q.heldOrder {
		if k == key {
			q.heldOrder = append(q.heldOrder[:i], q.heldOrder[i+1:]...)
			break
		}
	}
}

// RequestQuit injects an operator quit signal (e.g. from SIGINT).
func (q *InputQueue) RequestQuit() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.quit = true
}

// Drain returns everything accumulated since the last drain, plus the
// currently held movement direction, and resets the per-tick accumulators.
func (q *InputQueue) Drain() engine.TickInput {
	q.mu.Lock()
	defer q.mu.Unlock()

	in := engine.TickInput{
		Keys:  q.keys,
		Moves: q.moves,
		Exit:  q.exit,
		Quit:  q.quit,
	}
	if n := len(q.heldOrder); n > 0 {
		in.Held = moveKeys[q.heldOrder[n-1]]
	}
	q.keys = nil
	q.moves = nil
	q.exit = false
	q.quit = false
	return in
}
