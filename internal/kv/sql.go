package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// SQLStore keeps keys in a single SQLite table.
type SQLStore struct {
	db     *sql.DB
	closed atomic.Bool
}

// OpenSQL opens (or creates) the SQLite database at path using driver
// ("sqlite3" for cgo, "sqlite" for the pure Go driver) and ensures the table.
func OpenSQL(driver, path string) (*SQLStore, error) {
	db, err := sql.Open(driver, sqliteDSN(driver, path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := NewSQLStore(db)
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// NewSQLStore wraps an already opened database. The schema is not created.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// sqliteDSN builds a DSN with a busy timeout and WAL journaling. The two
// drivers spell pragmas differently.
func sqliteDSN(driver, path string) string {
	if driver == DriverPureGo {
		return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	return path + "?_busy_timeout=5000&_journal_mode=WAL"
}

func (s *SQLStore) initSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`)
	return err
}

// Get returns the value for key.
func (s *SQLStore) Get(key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, ErrClosed
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query key: %w", err)
	}
	return value, true, nil
}

// Set stores value under key.
func (s *SQLStore) Set(key, value string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("upsert key: %w", err)
	}
	return nil
}

// Remove deletes key.
func (s *SQLStore) Remove(key string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete key: %w", err)
	}
	return nil
}

// Close closes the database connection. Later calls return ErrClosed
// from every operation; closing twice is a no-op.
func (s *SQLStore) Close() error {
	if s.closed.Swap(true) || s.db == nil {
		return nil
	}
	return s.db.Close()
}
