package config

import (
	"path/filepath"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Notes   NotesConfig   `json:"notes"`
	Keymap  KeymapConfig  `json:"keymap"`
	UI      UIConfig      `json:"ui"`
}

// StorageConfig selects where notes are persisted.
type StorageConfig struct {
	Backend string `json:"backend" validate:"oneof=file sqlite memory"`
	// Path defaults to a file under the data dir.
	Path string `json:"path"`
	// Driver picks the SQLite driver for the sqlite backend.
	Driver    string `json:"driver" validate:"omitempty,oneof=sqlite3 sqlite"`
	Namespace string `json:"namespace" validate:"required,max=64,excludesall= /"`
}

// NotesConfig configures the notes panel.
type NotesConfig struct {
	DateFormat   string `json:"dateFormat" validate:"required"`
	ExportDir    string `json:"exportDir" validate:"required"`
	ExportFormat string `json:"exportFormat" validate:"oneof=md html pdf"`
	// PreviewStyle and CodeTheme follow the UI theme when empty.
	PreviewStyle  string        `json:"previewStyle" validate:"omitempty,oneof=auto dark light notty"`
	CodeTheme     string        `json:"codeTheme"`
	ConfirmDelete bool          `json:"confirmDelete"`
	Watch         bool          `json:"watch"`
	WatchDebounce time.Duration `json:"watchDebounce" validate:"gte=0"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool        `json:"showFooter"`
	ShowClock  bool        `json:"showClock"`
	Theme      ThemeConfig `json:"theme"`
}

// ThemeConfig configures the color theme.
type ThemeConfig struct {
	Name      string                 `json:"name" validate:"required"`
	Overrides map[string]interface{} `json:"overrides,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:   "file",
			Namespace: "notepane",
		},
		Notes: NotesConfig{
			DateFormat:    "1/2/2006, 3:04:05 PM",
			ExportDir:     "~/notepane-export",
			ExportFormat:  "md",
			ConfirmDelete: true,
			Watch:         true,
			WatchDebounce: 150 * time.Millisecond,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter: true,
			ShowClock:  true,
			Theme: ThemeConfig{
				Name: "default",
			},
		},
	}
}

// StoragePath returns the configured store location, falling back to a
// backend specific file under the data directory.
func (s StorageConfig) StoragePath() string {
	if s.Path != "" {
		return ExpandPath(s.Path)
	}
	switch s.Backend {
	case "sqlite":
		return filepath.Join(DataDir(), "notes.db")
	case "memory":
		return ""
	}
	return filepath.Join(DataDir(), "storage.json")
}

// Validate normalizes out-of-range values and checks the rest.
func (c *Config) Validate() error {
	if c.Notes.WatchDebounce < 0 {
		c.Notes.WatchDebounce = 150 * time.Millisecond
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	return validateStruct(c)
}
