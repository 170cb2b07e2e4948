package state

import (
	"fmt"
	"time"
)

// Turn is one persisted user/assistant exchange.
type Turn struct {
	// ID is the row identifier.
	ID int64 `json:"id"`
	// SessionID groups turns belonging to one conversation thread.
	SessionID string `json:"session_id"`
	// CorrelationID is the plan-execution identifier of the turn.
	CorrelationID string `json:"correlation_id"`
	// UserInput is the user's utterance.
	UserInput string `json:"user_input"`
	// Response is the assembled assistant answer.
	Response string `json:"response"`
	// PlanJSON is the serialized execution plan, for inspection.
	PlanJSON string `json:"plan_json,omitempty"`
	// CreatedAt is when the turn completed.
	CreatedAt time.Time `json:"created_at"`
}

// SaveTurn records a completed turn.
func (db *DB) SaveTurn(t *Turn) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	result, err := db.conn.Exec(`
		INSERT INTO turns (session_id, correlation_id, user_input, response, plan_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.SessionID, t.CorrelationID, t.UserInput, t.Response, t.PlanJSON, formatTime(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("save turn: %w", err)
	}

	t.ID, _ = result.LastInsertId()
	return nil
}

// History returns the most recent turns for a session, oldest first.
// A limit of 0 returns all turns.
func (db *DB) History(sessionID string, limit int) ([]*Turn, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	query := `
		SELECT id, session_id, correlation_id, user_input, response,
		       COALESCE(plan_json, ''), created_at
		FROM turns WHERE session_id = ? ORDER BY id`
	args := []interface{}{sessionID}
	if limit > 0 {
		query = `
			SELECT id, session_id, correlation_id, user_input, response,
			       COALESCE(plan_json, ''), created_at
			FROM (
				SELECT * FROM turns WHERE session_id = ? ORDER BY id DESC LIMIT ?
			) ORDER BY id`
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var turns []*Turn
	for rows.Next() {
		t := &Turn{}
		var createdAt string
		if err := rows.Scan(&t.ID, &t.SessionID, &t.CorrelationID, &t.UserInput, &t.Response, &t.PlanJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.CreatedAt, _ = parseTime(createdAt)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// formatTime formats a time.Time for SQLite storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime parses a time string from SQLite.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// Sessions returns the distinct session IDs, most recently active first.
func (db *DB) Sessions() ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT session_id FROM turns GROUP BY session_id ORDER BY MAX(id) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, id)
	}
	return sessions, rows.Err()
}
