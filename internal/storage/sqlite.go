// Package storage persists profiles and the append-only history logs
// (health, meal plans, conversations) in SQLite.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no rows.
var ErrNotFound = errors.New("not found")

// Store wraps the SQLite database. History tables are append-only:
// rows are never updated in place, and deletion happens only through
// the explicit DeleteUser fan-out or the age-based Prune operations.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath and applies the schema.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// newID issues a ULID. ulid.Make uses the package-level locked entropy
// source, so it is safe for the concurrent request handlers that append
// history rows.
func (s *Store) newID() string {
	return ulid.Make().String()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		user_id             TEXT PRIMARY KEY,
		name                TEXT,
		age                 INTEGER,
		sex                 TEXT,
		weight_kg           REAL,
		height_cm           REAL,
		activity_level      TEXT,
		fitness_goal        TEXT,
		dietary_preferences TEXT NOT NULL DEFAULT '[]',
		equipment_available TEXT NOT NULL DEFAULT '[]',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS health_history (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		weight_kg       REAL NOT NULL,
		height_cm       REAL NOT NULL,
		bmi             REAL NOT NULL,
		bmi_category    TEXT NOT NULL,
		tdee            REAL NOT NULL,
		target_calories INTEGER NOT NULL,
		protein_g       INTEGER NOT NULL,
		carbs_g         INTEGER NOT NULL,
		fat_g           INTEGER NOT NULL,
		risk_level      TEXT NOT NULL,
		recommendations TEXT NOT NULL DEFAULT '[]',
		recorded_at     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_health_user_recorded ON health_history(user_id, recorded_at);

	CREATE TABLE IF NOT EXISTS meal_plan_history (
		id                  TEXT PRIMARY KEY,
		user_id             TEXT NOT NULL,
		meals               TEXT NOT NULL,
		total_calories      INTEGER NOT NULL,
		total_protein_g     INTEGER NOT NULL,
		total_carbs_g       INTEGER NOT NULL,
		total_fat_g         INTEGER NOT NULL,
		plan_type           TEXT,
		dietary_preferences TEXT NOT NULL DEFAULT '[]',
		notes               TEXT,
		status              TEXT NOT NULL DEFAULT 'active',
		created_at          TEXT NOT NULL,
		completed_at        TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_plans_user_created ON meal_plan_history(user_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_plans_user_status ON meal_plan_history(user_id, status);

	CREATE TABLE IF NOT EXISTS conversation_history (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		session_id TEXT NOT NULL,
		agent_type TEXT NOT NULL,
		role       TEXT NOT NULL,
		content    TEXT NOT NULL,
		metadata   TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_conv_user_session ON conversation_history(user_id, session_id);
	CREATE INDEX IF NOT EXISTS idx_conv_session_created ON conversation_history(session_id, created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
