package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SchemeStore holds the bulk registry master list in SQLite. It is built
// once from the national registry feed and reused across runs.
type SchemeStore struct {
	db     *sql.DB
	dbPath string
}

// NewSchemeStore opens (or creates) the master-list database at dbPath.
func NewSchemeStore(dbPath string) (*SchemeStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath is empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SchemeStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SchemeStore) Close() error {
	return s.db.Close()
}
