package session

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFull(t *testing.T) {
	path := writeConfig(t, `{
		"blocks": [{"left_gate_row": 3, "right_gate_row": 9}],
		"teleport_interval_sec": 30,
		"teleports_per_block": 4,
		"cell_size": 32,
		"practice_block": true
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Blocks) != 1 || cfg.Blocks[0].LeftGateRow != 3 || cfg.Blocks[0].RightGateRow != 9 {
		t.Errorf("Unexpected blocks %+v", cfg.Blocks)
	}
	if cfg.TeleportIntervalSec != 30 || cfg.TeleportsPerBlock != 4 || cfg.CellSize != 32 {
		t.Errorf("Unexpected scalars %+v", cfg)
	}
	if !cfg.PracticeBlock {
		t.Error("practice_block should be honored")
	}
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	def := DefaultConfig()
	if len(cfg.Blocks) != len(def.Blocks) {
		t.Errorf("Expected default blocks, got %+v", cfg.Blocks)
	}
	if cfg.TeleportIntervalSec != def.TeleportIntervalSec {
		t.Errorf("Expected default interval %v, got %v", def.TeleportIntervalSec, cfg.TeleportIntervalSec)
	}
	if cfg.TeleportsPerBlock != def.TeleportsPerBlock || cfg.CellSize != def.CellSize {
		t.Errorf("Expected default scalars, got %+v", cfg)
	}
	if cfg.PracticeBlock {
		t.Error("Practice block defaults off")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, `{"blocks": [`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}
