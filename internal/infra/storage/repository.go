package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// ExperimentEvent is the storage representation of one experiment event.
type ExperimentEvent struct {
	ID        string
	SessionID string
	BlockID   int
	Timestamp time.Time
	EventType string
	Payload   map[string]interface{}
}

// SQLiteEventRepository appends and queries experiment events in SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event ExperimentEvent) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO events (id, session_id, block_id, timestamp, event_type, payload)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.SessionID, event.BlockID, event.Timestamp, event.EventType, string(payloadBytes),
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]ExperimentEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExperimentEvent
	for rows.Next() {
		var e ExperimentEvent
		var payloadStr string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.BlockID, &e.Timestamp, &e.EventType, &payloadStr); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteEventRepository) GetBySessionID(ctx context.Context, sessionID string) ([]ExperimentEvent, error) {
	query := `SELECT id, session_id, block_id, timestamp, event_type, payload FROM events WHERE session_id = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, sessionID)
}

func (r *SQLiteEventRepository) GetByBlockID(ctx context.Context, sessionID string, blockID int) ([]ExperimentEvent, error) {
	query := `SELECT id, session_id, block_id, timestamp, event_type, payload FROM events WHERE session_id = ? AND block_id = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, sessionID, blockID)
}

func (r *SQLiteEventRepository) GetByEventType(ctx context.Context, sessionID string, eventType string) ([]ExperimentEvent, error) {
	query := `SELECT id, session_id, block_id, timestamp, event_type, payload FROM events WHERE session_id = ? AND event_type = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, sessionID, eventType)
}

// ---------------------------------------------------------
// SQLiteSessionRepository
// ---------------------------------------------------------

// SQLiteSessionRepository tracks session lifetimes and final scores.
type SQLiteSessionRepository struct {
	db *sql.DB
}

func NewSQLiteSessionRepository(db *sql.DB) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{db: db}
}

func (r *SQLiteSessionRepository) Open(ctx context.Context, sessionID string, startedAt time.Time) error {
	query := `INSERT INTO sessions (session_id, started_at) VALUES (?, ?)
		ON CONFLICT(session_id) DO UPDATE SET started_at = excluded.started_at`
	_, err := r.db.ExecContext(ctx, query, sessionID, startedAt)
	return err
}

func (r *SQLiteSessionRepository) Close(ctx context.Context, sessionID string, endedAt time.Time, totalScore int) error {
	query := `UPDATE sessions SET ended_at = ?, total_score = ? WHERE session_id = ?`
	_, err := r.db.ExecContext(ctx, query, endedAt, totalScore, sessionID)
	return err
}
