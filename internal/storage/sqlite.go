// Package storage keeps per-run engine statistics in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Session is the summary of one engine run.
type Session struct {
	ID          int64
	Game        string
	Backend     string
	StartedAt   time.Time
	Duration    time.Duration
	Updates     int64
	AvgUpdateMS float64
	Frames      int64
	AvgFrameMS  float64
	Width       int // Final window size
	Height      int
	Fullscreen  bool
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game TEXT NOT NULL,
			backend TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			updates INTEGER NOT NULL DEFAULT 0,
			avg_update_ms REAL NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			avg_frame_ms REAL NOT NULL DEFAULT 0,
			width INTEGER NOT NULL DEFAULT 0,
			height INTEGER NOT NULL DEFAULT 0,
			fullscreen INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game ON sessions(game, started_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished run and returns its ID.
func (s *Store) SaveSession(sess Session) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (game, backend, started_at, duration_ms, updates, avg_update_ms,
		  frames, avg_frame_ms, width, height, fullscreen)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.Game, sess.Backend, sess.StartedAt.UnixMilli(), sess.Duration.Milliseconds(),
		sess.Updates, sess.AvgUpdateMS, sess.Frames, sess.AvgFrameMS,
		sess.Width, sess.Height, sess.Fullscreen,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions returns the latest runs of a game, newest first.
func (s *Store) RecentSessions(game string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game, backend, started_at, duration_ms, updates, avg_update_ms,
		        frames, avg_frame_ms, width, height, fullscreen
		 FROM sessions
		 WHERE game = ?
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`,
		game, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			sess       Session
			startedMS  int64
			durationMS int64
		)
		if err := rows.Scan(
			&sess.ID, &sess.Game, &sess.Backend, &startedMS, &durationMS,
			&sess.Updates, &sess.AvgUpdateMS, &sess.Frames, &sess.AvgFrameMS,
			&sess.Width, &sess.Height, &sess.Fullscreen,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.StartedAt = time.UnixMilli(startedMS)
		sess.Duration = time.Duration(durationMS) * time.Millisecond
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// SessionCount returns how many runs have been recorded for a game.
func (s *Store) SessionCount(game string) (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions WHERE game = ?", game).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count sessions: %w", err)
	}
	return n, nil
}
