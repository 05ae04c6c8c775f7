package kv

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Open returns the backend named by backend. path is the JSON file for the
// file backend or the database file for the sqlite backend; driver picks the
// SQLite driver and defaults to the cgo one.
func Open(backend, driver, path string) (Storage, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil

	case BackendSQLite:
		if driver == "" {
			driver = DriverCGO
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		return OpenSQL(driver, path)

	case BackendFile, "":
		return NewFileStore(afero.NewOsFs(), path), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
