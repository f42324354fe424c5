// Package index provides the SQLite-backed verdict index: for every proof
// document in the corpus it stores the last verification run and the verdict
// of each proof in that document.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	path        TEXT PRIMARY KEY,
	checksum    TEXT NOT NULL DEFAULT '',
	verified_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS verdicts (
	path         TEXT NOT NULL,
	position     INTEGER NOT NULL,
	name         TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL,
	failed_line  INTEGER NOT NULL DEFAULT 0,
	failure_kind TEXT NOT NULL DEFAULT '',
	detail       TEXT NOT NULL DEFAULT '',
	UNIQUE(path, position)
);

CREATE INDEX IF NOT EXISTS idx_verdicts_path ON verdicts(path);
CREATE INDEX IF NOT EXISTS idx_verdicts_status ON verdicts(status);
`

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
