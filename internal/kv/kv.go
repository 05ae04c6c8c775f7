// Package kv provides the string key-value storage the notes store persists
// into. Backends mirror browser local storage semantics: string keys, string
// values, overwrite on Set.
package kv

import "errors"

// ErrClosed is returned by operations on a closed backend.
var ErrClosed = errors.New("kv: storage closed")

//go:generate mockgen -source=kv.go -destination=../mocks/kv/mock_storage.go -package=mock_kv

// Storage is a string key-value store.
type Storage interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Close releases backend resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQL driver names accepted by OpenSQL.
const (
	DriverCGO    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // modernc.org/sqlite
)
