package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aretw0/webterm/pkg/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS command_history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT    NOT NULL,
	command    TEXT    NOT NULL,
	output     TEXT,
	timestamp  TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_command_history_session ON command_history (session_id, id);
`

// HistoryLog implements ports.HistoryLog on a SQLite table.
// Each Append is a single-row INSERT.
type HistoryLog struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
// Use ":memory:" for a throwaway database.
func Open(path string) (*HistoryLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection serialises writers and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &HistoryLog{db: db}, nil
}

// Append inserts one row.
func (l *HistoryLog) Append(ctx context.Context, sessionID string, entry domain.HistoryEntry) error {
	if sessionID == "" {
		return domain.ErrEmptySessionID
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO command_history (session_id, command, output, timestamp) VALUES (?, ?, ?, ?)`,
		sessionID, entry.Command, entry.Output, entry.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// Recent selects the newest limit rows and returns them oldest first.
func (l *HistoryLog) Recent(ctx context.Context, sessionID string, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT command, output, timestamp FROM (
			SELECT id, command, output, timestamp FROM command_history
			WHERE session_id = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var (
			e      domain.HistoryEntry
			output sql.NullString
			ts     string
		)
		if err := rows.Scan(&e.Command, &output, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Output = output.String
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (l *HistoryLog) Close() error {
	return l.db.Close()
}
