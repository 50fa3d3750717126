// Package events provides the append-only experiment log. Every meaningful
// event of a session (block boundaries, pickups, contacts, gate traffic,
// keypresses) is timestamped here for later analysis. Events are immutable
// once appended.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of an experiment event.
type EventType string

const (
	EventTypeSessionStart     EventType = "SESSION_START"
	EventTypeSessionEnd       EventType = "SESSION_END"
	EventTypeBlockStart       EventType = "BLOCK_START"
	EventTypeBlockEnd         EventType = "BLOCK_END"
	EventTypePellet           EventType = "PELLET"
	EventTypeAdversaryContact EventType = "ADVERSARY_CONTACT"
	EventTypeTeleport         EventType = "TELEPORT"
	EventTypeGateExit         EventType = "GATE_EXIT"
	EventTypeKeyPress         EventType = "KEY_PRESS"
)

// Event is an immutable record of something that happened during a session.
type Event struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	BlockID   int         `json:"block_id"` // -1 for session-level events and the practice block
	Payload   interface{} `json:"payload"`  // event-specific data
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event Event) error
}

// EventLog is the in-memory append-only log, optionally backed by a
// persister (SQLite in production).
type EventLog struct {
	mu        sync.RWMutex
	events    []Event
	persister EventPersister
}

// NewEventLog creates a new event log with an optional persister.
func NewEventLog(persister EventPersister) *EventLog {
	return &EventLog{
		events:    make([]Event, 0),
		persister: persister,
	}
}

// Append adds a new event to the log. No event is ever retracted or edited
// after emission.
func (el *EventLog) Append(event Event) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.events = append(el.events, event)

	if el.persister != nil {
		// Write through to persistent storage.
		go func(e Event) {
			_ = el.persister.Append(e)
		}(event)
	}
}

// Replay returns a copy of the full event history in append order.
func (el *EventLog) Replay() []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()
	out := make([]Event, len(el.events))
	copy(out, el.events)
	return out
}

// GetByType returns all events of one type, in append order.
func (el *EventLog) GetByType(t EventType) []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []Event
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// GetByBlock returns all events recorded for one block, in append order.
func (el *EventLog) GetByBlock(blockID int) []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []Event
	for _, e := range el.events {
		if e.BlockID == blockID {
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of events appended so far.
func (el *EventLog) Len() int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.events)
}

// GenerateEventID creates a unique event identifier.
func GenerateEventID() string {
	return uuid.NewString()
}

// NewSessionID creates a short session identifier.
func NewSessionID() string {
	return uuid.NewString()[:8]
}
