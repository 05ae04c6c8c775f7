package kv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// tempFilePrefix names the scratch files used for atomic replacement.
const tempFilePrefix = ".notepane-tmp-"

// FileStore keeps every key in a single JSON object file.
// The file is re-read on each access so writes from other processes are seen.
type FileStore struct {
	fs     afero.Fs
	path   string
	mu     sync.Mutex
	closed bool
}

// NewFileStore returns a store backed by the JSON file at path on fs.
// The file and its directory are created on first write.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

// Get returns the value for key. A missing or unreadable file reads as empty.
func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}
	data, err := f.readAll()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set stores value under key and rewrites the file.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	data, err := f.readAll()
	if err != nil {
		return err
	}
	data[key] = value
	return f.writeAll(data)
}

// Remove deletes key and rewrites the file. Absent keys cause no write.
func (f *FileStore) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	data, err := f.readAll()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return f.writeAll(data)
}

// Close marks the store closed. The file itself needs no cleanup.
func (f *FileStore) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// readAll loads the whole map. Corrupt content is treated as an empty map;
// the next write replaces it.
func (f *FileStore) readAll() (map[string]string, error) {
	raw, err := afero.ReadFile(f.fs, f.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	data := make(map[string]string)
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return make(map[string]string), nil
	}
	return data, nil
}

// writeAll replaces the file via temp file + rename.
func (f *FileStore) writeAll(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := f.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	tmp, err := afero.TempFile(f.fs, dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer f.fs.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := f.fs.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", f.path, err)
	}
	return nil
}
