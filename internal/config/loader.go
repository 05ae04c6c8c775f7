package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/notepane"
	dataDir    = ".local/share/notepane"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Storage rawStorageConfig `json:"storage"`
	Notes   rawNotesConfig   `json:"notes"`
	Keymap  KeymapConfig     `json:"keymap"`
	UI      rawUIConfig      `json:"ui"`
}

type rawStorageConfig struct {
	Backend   string `json:"backend"`
	Path      string `json:"path"`
	Driver    string `json:"driver"`
	Namespace string `json:"namespace"`
}

type rawNotesConfig struct {
	DateFormat    string `json:"dateFormat"`
	ExportDir     string `json:"exportDir"`
	ExportFormat  string `json:"exportFormat"`
	PreviewStyle  string `json:"previewStyle"`
	CodeTheme     string `json:"codeTheme"`
	ConfirmDelete *bool  `json:"confirmDelete"`
	Watch         *bool  `json:"watch"`
	WatchDebounce string `json:"watchDebounce"`
}

type rawUIConfig struct {
	ShowFooter *bool       `json:"showFooter"`
	ShowClock  *bool       `json:"showClock"`
	Theme      ThemeConfig `json:"theme"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/notepane/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Return defaults on error
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	// Merge raw config into defaults
	mergeConfig(cfg, &raw)

	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Storage
	if raw.Storage.Backend != "" {
		cfg.Storage.Backend = raw.Storage.Backend
	}
	if raw.Storage.Path != "" {
		cfg.Storage.Path = raw.Storage.Path
	}
	if raw.Storage.Driver != "" {
		cfg.Storage.Driver = raw.Storage.Driver
	}
	if raw.Storage.Namespace != "" {
		cfg.Storage.Namespace = raw.Storage.Namespace
	}

	// Notes
	if raw.Notes.DateFormat != "" {
		cfg.Notes.DateFormat = raw.Notes.DateFormat
	}
	if raw.Notes.ExportDir != "" {
		cfg.Notes.ExportDir = raw.Notes.ExportDir
	}
	if raw.Notes.ExportFormat != "" {
		cfg.Notes.ExportFormat = raw.Notes.ExportFormat
	}
	if raw.Notes.PreviewStyle != "" {
		cfg.Notes.PreviewStyle = raw.Notes.PreviewStyle
	}
	if raw.Notes.CodeTheme != "" {
		cfg.Notes.CodeTheme = raw.Notes.CodeTheme
	}
	if raw.Notes.ConfirmDelete != nil {
		cfg.Notes.ConfirmDelete = *raw.Notes.ConfirmDelete
	}
	if raw.Notes.Watch != nil {
		cfg.Notes.Watch = *raw.Notes.Watch
	}
	if raw.Notes.WatchDebounce != "" {
		if d, err := time.ParseDuration(raw.Notes.WatchDebounce); err == nil {
			cfg.Notes.WatchDebounce = d
		}
	}

	// Keymap
	if raw.Keymap.Overrides != nil {
		for k, v := range raw.Keymap.Overrides {
			cfg.Keymap.Overrides[k] = v
		}
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.ShowClock != nil {
		cfg.UI.ShowClock = *raw.UI.ShowClock
	}
	if raw.UI.Theme.Name != "" {
		cfg.UI.Theme.Name = raw.UI.Theme.Name
	}
	if len(raw.UI.Theme.Overrides) > 0 {
		cfg.UI.Theme.Overrides = raw.UI.Theme.Overrides
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// ConfigDir returns the directory holding config, state and logs.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir)
}

// DataDir returns the directory holding the default note store.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, dataDir)
}
