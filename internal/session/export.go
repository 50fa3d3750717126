package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/behavlab/forager/internal/events"
)

// sessionFile is the on-disk layout of an exported session: keypresses are
// split out from the other events, as analysis scripts consume them
// separately.
type sessionFile struct {
	SessionID  string         `json:"session_id"`
	TotalScore int            `json:"total_score"`
	Events     []events.Event `json:"events"`
	Keypresses []events.Event `json:"keypresses"`
}

// ExportSession writes the full event history of a session to a JSON file in
// dir and returns its path.
func ExportSession(dir string, result Result, log *events.EventLog) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	file := sessionFile{
		SessionID:  result.SessionID,
		TotalScore: result.TotalScore,
	}
	for _, e := range log.Replay() {
		if e.Type == events.EventTypeKeyPress {
			file.Keypresses = append(file.Keypresses, e)
		} else {
			file.Events = append(file.Events, e)
		}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("session_%s_%s.json", result.SessionID, time.Now().UTC().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write session file: %w", err)
	}
	return path, nil
}
