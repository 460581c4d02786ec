package transcript

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jwebster45206/dungeon/pkg/session"
)

// SQLite keeps transcripts in a single table.
type SQLite struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (or creates) the database at path. ":memory:" works for
// throwaway transcripts.
func NewSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, logger: logger}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info("Opened SQLite transcript store", "path", path)
	return s, nil
}

func (s *SQLite) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		player TEXT NOT NULL,
		scene TEXT NOT NULL,
		input TEXT NOT NULL,
		messages TEXT NOT NULL,
		game_on INTEGER NOT NULL,
		at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, seq);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Record inserts one entry.
func (s *SQLite) Record(ctx context.Context, e session.Entry) error {
	msgs, err := json.Marshal(e.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO turns (session_id, seq, player, scene, input, messages, game_on, at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.SessionID.String(), e.Seq, e.Player, e.Scene, e.Input, string(msgs), e.GameOn, e.At)
	if err != nil {
		s.logger.Error("SQLite insert failed", "session_id", e.SessionID, "error", err)
		return fmt.Errorf("failed to record entry: %w", err)
	}
	return nil
}

// Load returns a session's entries ordered by sequence number.
func (s *SQLite) Load(ctx context.Context, sessionID uuid.UUID) ([]session.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, player, scene, input, messages, game_on, at
		FROM turns
		WHERE session_id = ?
		ORDER BY seq, id
	`, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer rows.Close()

	var entries []session.Entry
	for rows.Next() {
		e := session.Entry{SessionID: sessionID}
		var msgs string
		if err := rows.Scan(&e.Seq, &e.Player, &e.Scene, &e.Input, &msgs, &e.GameOn, &e.At); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if err := json.Unmarshal([]byte(msgs), &e.Messages); err != nil {
			return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
