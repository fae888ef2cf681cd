// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session persists completed research sessions in SQLite so
// presentation tooling can list and reload them.
// Implements: prd005-persistence (R1-R3);
//
//	docs/ARCHITECTURE § Session Store.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/deep-research/pkg/types"
)

const dbFile = "research.db"

// Session is one completed research request: the question, the executed
// plan, and both terminal reports.
type Session struct {
	ID        string
	Question  string
	Model     string
	Preset    string
	CreatedAt time.Time

	Queries      []string
	Results      []types.SearchResult
	Verification types.VerificationReport
	Synthesis    types.SynthesizedReport
}

// Summary is the listing row for a stored session.
type Summary struct {
	ID         string
	Question   string
	Preset     string
	CreatedAt  time.Time
	Confidence float64
	Risk       string
}

// Store manages the session SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	question     TEXT NOT NULL,
	model        TEXT NOT NULL DEFAULT '',
	preset       TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMP NOT NULL,
	confidence   REAL NOT NULL DEFAULT 0,
	risk         TEXT NOT NULL DEFAULT '',
	queries      TEXT NOT NULL,
	results      TEXT NOT NULL,
	verification TEXT NOT NULL,
	synthesis    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at);
`

// NewStore opens or creates the session database at
// sessionsDir/research.db and creates the schema if it does not exist.
func NewStore(cfg types.SessionConfig) (*Store, error) {
	if cfg.SessionsDir == "" {
		cfg.SessionsDir = "sessions"
	}
	if err := os.MkdirAll(cfg.SessionsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating sessions directory: %w", err)
	}

	dbPath := filepath.Join(cfg.SessionsDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating session schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a session. A missing ID is assigned; a missing CreatedAt
// is stamped with the current time.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}

	queries, err := json.Marshal(sess.Queries)
	if err != nil {
		return fmt.Errorf("encoding queries: %w", err)
	}
	results, err := json.Marshal(sess.Results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	verification, err := json.Marshal(sess.Verification)
	if err != nil {
		return fmt.Errorf("encoding verification report: %w", err)
	}
	synthesis, err := json.Marshal(sess.Synthesis)
	if err != nil {
		return fmt.Errorf("encoding synthesized report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions
			(id, question, model, preset, created_at, confidence, risk,
			 queries, results, verification, synthesis)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Question, sess.Model, sess.Preset, sess.CreatedAt,
		sess.Verification.Confidence.Overall,
		string(sess.Verification.Hallucination.RiskLevel),
		string(queries), string(results), string(verification), string(synthesis))
	if err != nil {
		return fmt.Errorf("inserting session %s: %w", sess.ID, err)
	}
	return nil
}

// Get loads one session by ID.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, question, model, preset, created_at,
		       queries, results, verification, synthesis
		FROM sessions WHERE id = ?`, id)

	var sess Session
	var queries, results, verification, synthesis string
	err := row.Scan(&sess.ID, &sess.Question, &sess.Model, &sess.Preset, &sess.CreatedAt,
		&queries, &results, &verification, &synthesis)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(queries), &sess.Queries); err != nil {
		return nil, fmt.Errorf("decoding queries for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(results), &sess.Results); err != nil {
		return nil, fmt.Errorf("decoding results for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(verification), &sess.Verification); err != nil {
		return nil, fmt.Errorf("decoding verification report for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(synthesis), &sess.Synthesis); err != nil {
		return nil, fmt.Errorf("decoding synthesized report for %s: %w", id, err)
	}
	return &sess, nil
}

// List returns session summaries, newest first, capped at limit
// (default 20).
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, preset, created_at, confidence, risk
		FROM sessions ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Question, &sum.Preset, &sum.CreatedAt,
			&sum.Confidence, &sum.Risk); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
