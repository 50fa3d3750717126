// Package session orchestrates a full experiment run: configuration, the
// participant input queue, block sequencing and the session log export.
package session

import (
	"encoding/json"
	"fmt"
	"os"
)

// BlockGateRows is the per-block gate configuration.
type BlockGateRows struct {
	LeftGateRow  int `json:"left_gate_row"`
	RightGateRow int `json:"right_gate_row"`
}

// Config is the experiment configuration, loaded once from JSON at startup
// and immutable afterwards.
type Config struct {
	Blocks              []BlockGateRows `json:"blocks"`
	TeleportIntervalSec float64         `json:"teleport_interval_sec"`
	TeleportsPerBlock   int             `json:"teleports_per_block"`
	CellSize            int             `json:"cell_size"`
	PracticeBlock       bool            `json:"practice_block"`
}

// DefaultConfig returns the standard two-block experiment.
func DefaultConfig() Config {
	return Config{
		Blocks: []BlockGateRows{
			{LeftGateRow: 1, RightGateRow: 12},
			{LeftGateRow: 6, RightGateRow: 7},
		},
		TeleportIntervalSec: 75,
		TeleportsPerBlock:   2,
		CellSize:            40,
		PracticeBlock:       false,
	}
}

// LoadConfig reads a JSON config file, filling absent fields from the
// defaults. A missing or malformed file is a pre-session fatal.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.Blocks) == 0 {
		cfg.Blocks = DefaultConfig().Blocks
	}
	if cfg.TeleportIntervalSec <= 0 {
		cfg.TeleportIntervalSec = DefaultConfig().TeleportIntervalSec
	}
	if cfg.TeleportsPerBlock <= 0 {
		cfg.TeleportsPerBlock = DefaultConfig().TeleportsPerBlock
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = DefaultConfig().CellSize
	}
	return cfg, nil
}
