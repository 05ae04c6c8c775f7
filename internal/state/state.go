// Package state persists small UI preferences between runs, separate from
// user config.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// State holds persistent user preferences.
type State struct {
	PreviewStyle   string     `json:"previewStyle,omitempty"`   // glamour style picked at runtime
	NotesListWidth int        `json:"notesListWidth,omitempty"` // list pane percent, 0 for default
	Notes          NotesState `json:"notes,omitempty"`
}

// NotesState is where the notes panel left off.
type NotesState struct {
	SelectedID    int64  `json:"selectedId,omitempty"`
	Filter        string `json:"filter,omitempty"`
	ActivePane    string `json:"activePane,omitempty"` // "list" or "preview"
	PreviewScroll int    `json:"previewScroll,omitempty"`
}

var (
	mu      sync.RWMutex
	current State
	path    string
	fs      afero.Fs = afero.NewOsFs()
)

// Init loads state from ~/.config/notepane.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "notepane"))
}

// InitWithDir loads state from dir/state.json.
func InitWithDir(dir string) error {
	mu.Lock()
	path = filepath.Join(dir, "state.json")
	mu.Unlock()
	return Load()
}

// Load rereads the state file. A missing file yields empty state.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = State{}
	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &current)
}

// Save writes the state file through a temp file and rename.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()
	return saveLocked()
}

func saveLocked() error {
	if path == "" {
		return nil
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0644); err != nil {
		return err
	}
	return fs.Rename(tmp, path)
}

// update applies fn and saves.
func update(fn func(*State)) error {
	mu.Lock()
	defer mu.Unlock()
	fn(&current)
	return saveLocked()
}

func get() State {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// GetPreviewStyle returns the saved preview style, or "".
func GetPreviewStyle() string { return get().PreviewStyle }

func SetPreviewStyle(style string) error {
	return update(func(s *State) { s.PreviewStyle = style })
}

// GetNotesListWidth returns the saved list pane percent, 0 when unset.
func GetNotesListWidth() int { return get().NotesListWidth }

func SetNotesListWidth(width int) error {
	return update(func(s *State) { s.NotesListWidth = width })
}

func GetNotesState() NotesState { return get().Notes }

func SetNotesState(n NotesState) error {
	return update(func(s *State) { s.Notes = n })
}
