// Package records keeps the archive of retired players in SQLite. The
// table mirrors what the leaderboard needs: one row per retirement keyed
// by uuid, indexed for the score-ordered listing.
package records

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"dogstory.ai/internal/sim/app"
)

type Store struct {
	db      *sql.DB
	timeout time.Duration
}

// Open creates or opens the records database. timeout bounds every call,
// including the wait for a pooled connection.
func Open(path string, timeout time.Duration) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty records db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	return &Store{db: db, timeout: timeout}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS retired_players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			play_time_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_score_playtime_name
			ON retired_players (score DESC, play_time_ms, name);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Add upserts one retirement row. Re-archiving the same uuid overwrites
// the previous row.
func (s *Store) Add(ctx context.Context, rec app.Record) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO retired_players (id, name, score, play_time_ms)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id)
		DO UPDATE SET name = excluded.name, score = excluded.score, play_time_ms = excluded.play_time_ms;`,
		rec.ID, rec.Name, rec.Score, rec.PlayTimeMs)
	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	return nil
}

// List returns records ordered by score descending, then play time, then
// name, skipping start rows and returning at most limit.
func (s *Store) List(ctx context.Context, start, limit int) ([]app.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, score, play_time_ms
		FROM retired_players
		ORDER BY score DESC, play_time_ms, name
		LIMIT ? OFFSET ?;`,
		limit, start)
	if err != nil {
		return nil, fmt.Errorf("fetching records: %w", err)
	}
	defer rows.Close()

	var out []app.Record
	for rows.Next() {
		var rec app.Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Score, &rec.PlayTimeMs); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Close() error { return s.db.Close() }
