package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on an embedded SQLite database. It serves
// deployments without a reachable Redis; the same two fixed keys land in a
// single kv table.
type SQLiteStore struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed store at the given path. The file
// is opened lazily on Connect or first use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Connect opens the database and creates the schema
func (s *SQLiteStore) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.dbLocked(ctx)
	return err
}

// dbLocked returns the open handle, opening on first use.
// Caller must hold s.mu.
func (s *SQLiteStore) dbLocked(ctx context.Context) (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, &ConnError{Backend: "sqlite", Addr: s.path, Err: err}
	}

	openCtx, cancel := context.WithTimeout(ctx, OpTimeout)
	defer cancel()

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(openCtx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, &ConnError{Backend: "sqlite", Addr: s.path, Err: err}
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.ExecContext(openCtx, schema); err != nil {
		db.Close()
		return nil, &ConnError{Backend: "sqlite", Addr: s.path, Err: err}
	}

	s.db = db
	return s.db, nil
}

func (s *SQLiteStore) ensure(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dbLocked(ctx)
}

// Ping probes the database, swallowing all errors into false
func (s *SQLiteStore) Ping(ctx context.Context) bool {
	db, err := s.ensure(ctx)
	if err != nil {
		return false
	}

	pingCtx, cancel := context.WithTimeout(ctx, OpTimeout)
	defer cancel()

	return db.PingContext(pingCtx) == nil
}

// Get retrieves a value by key
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	db, err := s.ensure(ctx)
	if err != nil {
		return "", err
	}

	var value string
	err = db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv: get %s: %w", key, err)
	}
	return value, nil
}

// Set stores a value, overwriting any existing value
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	db, err := s.ensure(ctx)
	if err != nil {
		return err
	}

	query := `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("kv: set %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys
func (s *SQLiteStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	db, err := s.ensure(ctx)
	if err != nil {
		return err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	if _, err := db.ExecContext(ctx, "DELETE FROM kv WHERE key IN ("+placeholders+")", args...); err != nil {
		return fmt.Errorf("kv: delete: %w", err)
	}
	return nil
}

// Close closes the database if it was opened
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
