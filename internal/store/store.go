package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for the shape catalog.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the catalog tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS shapes (
  id              INTEGER PRIMARY KEY,
  uid             TEXT NOT NULL UNIQUE,
  kind            TEXT NOT NULL CHECK (kind IN ('circle', 'rectangle')),
  radius          REAL NOT NULL DEFAULT 0,
  width           REAL NOT NULL DEFAULT 0,
  height          REAL NOT NULL DEFAULT 0,
  source          TEXT NOT NULL DEFAULT '',
  created_at      TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS scripts (
  path            TEXT PRIMARY KEY,
  hash            TEXT NOT NULL,
  shape_count     INTEGER NOT NULL DEFAULT 0,
  loaded_at       TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_shapes_kind ON shapes(kind);
CREATE INDEX IF NOT EXISTS idx_shapes_source ON shapes(source);
`
