package engine

import (
	"math/rand"
	"testing"
	"time"
)

func TestTeleportFirstTriggerWindow(t *testing.T) {
	interval := 30 * time.Second
	rng := rand.New(rand.NewSource(5))
	s := NewTeleportScheduler(interval, 2, t0, rng)

	// Never before 70% of the interval.
	if _, fire := s.Tick(t0.Add(20*time.Second), false); fire {
		t.Error("Trigger fired before the 70% window opens")
	}
	// Always by 130% of the interval.
	if _, fire := s.Tick(t0.Add(39*time.Second), false); !fire {
		t.Error("Trigger must have fired by 130% of the interval")
	}
}

func TestTeleportQuotaExhausted(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	s := NewTeleportScheduler(30*time.Second, 2, t0, rng)

	fired := 0
	now := t0
	// Advance far past every possible trigger time, many times over.
	for i := 0; i < 100; i++ {
		now = now.Add(time.Minute)
		if _, fire := s.Tick(now, false); fire {
			fired++
		}
	}
	if fired != 2 {
		t.Errorf("Expected exactly 2 triggers for quota 2, got %d", fired)
	}
	if s.Remaining() != 0 {
		t.Errorf("Expected no remaining quota, got %d", s.Remaining())
	}
}

func TestTeleportSuppressedWhileFrozen(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	s := NewTeleportScheduler(time.Second, 1, t0, rng)

	// Due, but the player is frozen: the trigger is held, not consumed.
	if _, fire := s.Tick(t0.Add(time.Minute), true); fire {
		t.Fatal("Trigger must not fire while the player is frozen")
	}
	if s.Remaining() != 1 {
		t.Errorf("Suppressed trigger must not consume quota, got %d remaining", s.Remaining())
	}
	// Once unfrozen it fires on the next eligible tick.
	if _, fire := s.Tick(t0.Add(time.Minute), false); !fire {
		t.Error("Held trigger should fire once the player is unfrozen")
	}
}

func TestTeleportSidesBothOccur(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s := NewTeleportScheduler(time.Second, 50, t0, rng)

	sides := map[string]int{}
	now := t0
	for i := 0; i < 50; i++ {
		now = now.Add(time.Minute)
		if side, fire := s.Tick(now, false); fire {
			sides[string(side)]++
		}
	}
	if sides["left"] == 0 || sides["right"] == 0 {
		t.Errorf("Expected both sides over 50 draws, got %v", sides)
	}
}
