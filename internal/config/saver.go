package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Storage StorageConfig   `json:"storage"`
	Notes   saveNotesConfig `json:"notes"`
	Keymap  KeymapConfig    `json:"keymap"`
	UI      UIConfig        `json:"ui"`
}

type saveNotesConfig struct {
	DateFormat    string `json:"dateFormat,omitempty"`
	ExportDir     string `json:"exportDir,omitempty"`
	ExportFormat  string `json:"exportFormat,omitempty"`
	PreviewStyle  string `json:"previewStyle,omitempty"`
	CodeTheme     string `json:"codeTheme,omitempty"`
	ConfirmDelete *bool  `json:"confirmDelete,omitempty"`
	Watch         *bool  `json:"watch,omitempty"`
	WatchDebounce string `json:"watchDebounce,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Storage: cfg.Storage,
		Notes: saveNotesConfig{
			DateFormat:    cfg.Notes.DateFormat,
			ExportDir:     cfg.Notes.ExportDir,
			ExportFormat:  cfg.Notes.ExportFormat,
			PreviewStyle:  cfg.Notes.PreviewStyle,
			CodeTheme:     cfg.Notes.CodeTheme,
			ConfirmDelete: &cfg.Notes.ConfirmDelete,
			Watch:         &cfg.Notes.Watch,
			WatchDebounce: cfg.Notes.WatchDebounce.String(),
		},
		Keymap: cfg.Keymap,
		UI:     cfg.UI,
	}
}

// testConfigPath overrides ConfigPath for Save in tests.
var testConfigPath string

// SetTestConfigPath points Save at path.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath restores the default Save location.
func ResetTestConfigPath() { testConfigPath = "" }

// savePath returns where Save writes.
func savePath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	return ConfigPath()
}

// Save writes the config to ~/.config/notepane/config.json
func Save(cfg *Config) error {
	return SaveTo(savePath(), cfg)
}

// SaveTo writes the config to path. Top-level keys in an existing file that
// Config does not manage are kept.
func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		// An unreadable file is replaced rather than blocking the save.
		if err := json.Unmarshal(existing, &merged); err != nil {
			merged = make(map[string]json.RawMessage)
		}
	}

	managed, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(managed, &sections); err != nil {
		return err
	}
	for k, v := range sections {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveTheme updates only the theme name in config and saves.
func SaveTheme(themeName string) error {
	cfg, err := LoadFrom(savePath())
	if err != nil {
		return err
	}
	cfg.UI.Theme.Name = themeName
	return Save(cfg)
}
