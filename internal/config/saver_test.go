package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSave_PreservesUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	// Write a config file that includes keys not managed by Save
	initial := []byte(`{
  "templates": [
    {"name": "Daily", "body": "# {{date}}"}
  ],
  "customKey": "should survive"
}`)
	if err := os.WriteFile(path, initial, 0644); err != nil {
		t.Fatal(err)
	}

	// Point Save() at our temp file
	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	cfg := Default()
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}

	if _, ok := raw["templates"]; !ok {
		t.Error("Save() deleted 'templates' key from config.json")
	}
	if _, ok := raw["customKey"]; !ok {
		t.Error("Save() deleted 'customKey' from config.json")
	}

	var templates []map[string]interface{}
	if err := json.Unmarshal(raw["templates"], &templates); err != nil {
		t.Fatalf("unmarshal templates: %v", err)
	}
	if len(templates) != 1 || templates[0]["name"] != "Daily" {
		t.Errorf("templates changed: %v", templates)
	}

	// Verify managed keys are also present
	for _, key := range []string{"storage", "notes", "keymap", "ui"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Save() did not write %q key", key)
		}
	}
}

func TestSave_WorksWithNoExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	cfg := Default()
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, ok := raw["storage"]; !ok {
		t.Error("missing 'storage' key")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Storage.Backend = "sqlite"
	cfg.Notes.ConfirmDelete = false
	cfg.Notes.WatchDebounce = 2 * time.Second
	cfg.Keymap.Overrides["x"] = "export-note"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Storage.Backend != "sqlite" {
		t.Errorf("got backend %q, want sqlite", loaded.Storage.Backend)
	}
	if loaded.Notes.ConfirmDelete {
		t.Error("confirmDelete should round-trip as false")
	}
	if loaded.Notes.WatchDebounce != 2*time.Second {
		t.Errorf("got debounce %v, want 2s", loaded.Notes.WatchDebounce)
	}
	if loaded.Keymap.Overrides["x"] != "export-note" {
		t.Errorf("override lost: %v", loaded.Keymap.Overrides)
	}
}

func TestSaveTheme_KeepsOtherSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	cfg := Default()
	cfg.Storage.Backend = "memory"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := SaveTheme("dracula"); err != nil {
		t.Fatalf("SaveTheme failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.UI.Theme.Name != "dracula" {
		t.Errorf("got theme %q, want dracula", loaded.UI.Theme.Name)
	}
	if loaded.Storage.Backend != "memory" {
		t.Errorf("got backend %q, want memory", loaded.Storage.Backend)
	}
}

func TestSave_ReplacesUnreadableFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated object", `{"customKey": "x", "storage": `},
		{"not an object", `["customKey"]`},
		{"trailing garbage", `{"customKey": "x"} trailing`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			if err := SaveTo(path, Default()); err != nil {
				t.Fatalf("SaveTo failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			var raw map[string]json.RawMessage
			if err := json.Unmarshal(data, &raw); err != nil {
				t.Fatalf("saved file is not valid JSON: %v", err)
			}
			if _, ok := raw["customKey"]; ok {
				t.Error("keys from an unreadable file should not survive")
			}
			if _, ok := raw["storage"]; !ok {
				t.Error("missing 'storage' key")
			}
			if _, err := LoadFrom(path); err != nil {
				t.Errorf("LoadFrom after replace: %v", err)
			}
		})
	}
}
