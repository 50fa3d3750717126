package session

import (
	"testing"

	"github.com/behavlab/forager/internal/domain/grid"
)

func TestDrainResetsAccumulators(t *testing.T) {
	q := NewInputQueue()
	q.KeyDown(KeyRight)
	q.KeyDown(KeyExit)
	q.KeyUp(KeyRight)

	in := q.Drain()
	if len(in.Keys) != 2 {
		t.Errorf("Expected 2 logged keys, got %v", in.Keys)
	}
	if len(in.Moves) != 1 || in.Moves[0] != grid.Right {
		t.Errorf("Expected one right move, got %v", in.Moves)
	}
	if !in.Exit {
		t.Error("Exit press must survive until the drain")
	}

	// Second drain sees a clean slate.
	in = q.Drain()
	if len(in.Keys) != 0 || len(in.Moves) != 0 || in.Exit || in.Quit {
		t.Errorf("Drain must reset the per-tick accumulators, got %+v", in)
	}
}

func TestHeldIsMostRecentDownKey(t *testing.T) {
	q := NewInputQueue()

	q.KeyDown(KeyLeft)
	if in := q.Drain(); in.Held != grid.Left {
		t.Errorf("Expected held left, got %v", in.Held)
	}

	// A second key pressed while the first stays down takes over.
	q.KeyDown(KeyUp)
	if in := q.Drain(); in.Held != grid.Up {
		t.Errorf("Newest held key must win, got %v", in.Held)
	}

	// Releasing it falls back to the still-held older key.
	q.KeyUp(KeyUp)
	if in := q.Drain(); in.Held != grid.Left {
		t.Errorf("Expected fallback to left, got %v", in.Held)
	}

	q.KeyUp(KeyLeft)
	if in := q.Drain(); !in.Held.IsZero() {
		t.Errorf("No keys down, held should be zero, got %v", in.Held)
	}
}

func TestRepeatedDownDoesNotDuplicateHeld(t *testing.T) {
	q := NewInputQueue()
	q.KeyDown(KeyRight)
	q.KeyDown(KeyRight) // key-repeat from the client
	q.KeyUp(KeyRight)

	if in := q.Drain(); !in.Held.IsZero() {
		t.Errorf("Single release must clear held state, got %v", in.Held)
	}
	// Both presses are still logged and both cause immediate steps.
	q.KeyDown(KeyRight)
	q.KeyDown(KeyRight)
	if in := q.Drain(); len(in.Moves) != 2 {
		t.Errorf("Each press is one immediate step, got %v", in.Moves)
	}
}

func TestUnknownKeyIsLoggedOnly(t *testing.T) {
	q := NewInputQueue()
	q.KeyDown("x")

	in := q.Drain()
	if len(in.Keys) != 1 || in.Keys[0] != "x" {
		t.Errorf("Unknown keys are still logged, got %v", in.Keys)
	}
	if len(in.Moves) != 0 || in.Exit || in.Quit || !in.Held.IsZero() {
		t.Errorf("Unknown keys must not drive gameplay, got %+v", in)
	}
}

func TestRequestQuit(t *testing.T) {
	q := NewInputQueue()
	q.RequestQuit()

	if in := q.Drain(); !in.Quit {
		t.Error("Operator quit must surface on the next drain")
	}
	q.KeyDown(KeyQuit)
	if in := q.Drain(); !in.Quit {
		t.Error("Quit key must surface on the next drain")
	}
}
