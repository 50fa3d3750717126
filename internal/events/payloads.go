package events

import "github.com/behavlab/forager/internal/domain/grid"

// SessionStartPayload brackets the start of a session.
type SessionStartPayload struct {
	SessionID string `json:"session_id"`
}

// SessionEndPayload carries the accumulated score across all blocks.
type SessionEndPayload struct {
	SessionID  string `json:"session_id"`
	TotalScore int    `json:"total_score"`
}

// BlockStartPayload records the gate configuration for one block.
type BlockStartPayload struct {
	BlockID      int `json:"block_id"`
	LeftGateRow  int `json:"left_gate_row"`
	RightGateRow int `json:"right_gate_row"`
}

// BlockEndPayload records the block's terminal outcome.
type BlockEndPayload struct {
	BlockID  int  `json:"block_id"`
	Score    int  `json:"score"`
	UserQuit bool `json:"user_quit"`
}

// PelletPayload records a pickup and the running score after it.
type PelletPayload struct {
	Cell       grid.Cell `json:"cell"`
	Tier       string    `json:"pellet_type"`
	Points     int       `json:"points"`
	TotalScore int       `json:"total_score"`
}

// AdversaryContactPayload records a collision that cost a life.
type AdversaryContactPayload struct {
	AdversaryID int `json:"adversary_id"`
}

// TeleportPayload records a forced gate entry and where the player was.
type TeleportPayload struct {
	Side           string    `json:"gate_side"`
	GateRow        int       `json:"gate_row"`
	PlayerCellPrev grid.Cell `json:"player_cell_before"`
}

// GateExitPayload records how a quarantine ended.
type GateExitPayload struct {
	DurationSec   float64 `json:"duration_at_gate_sec"`
	EarlyTapCount int     `json:"early_tap_count"`
	ExitedByKey   bool    `json:"exited_by_key"`
}

// KeyPressPayload records a raw keypress.
type KeyPressPayload struct {
	Key string `json:"key"`
}
