package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Backend != "file" {
		t.Errorf("got backend %q, want 'file'", cfg.Storage.Backend)
	}
	if cfg.Storage.Namespace != "notepane" {
		t.Errorf("got namespace %q, want 'notepane'", cfg.Storage.Namespace)
	}
	if !cfg.Notes.ConfirmDelete {
		t.Error("confirmDelete should be on by default")
	}
	if cfg.Notes.WatchDebounce != 150*time.Millisecond {
		t.Errorf("got debounce %v, want 150ms", cfg.Notes.WatchDebounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.json")
	if err != nil {
		t.Errorf("should not error on missing file: %v", err)
	}
	if cfg == nil {
		t.Error("should return default config")
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{
		"storage": {
			"backend": "sqlite",
			"driver": "sqlite"
		},
		"notes": {
			"confirmDelete": false,
			"watchDebounce": "1s",
			"exportFormat": "pdf"
		},
		"ui": {
			"showFooter": false
		}
	}`)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Driver != "sqlite" {
		t.Errorf("got storage %+v, want sqlite/sqlite", cfg.Storage)
	}
	if cfg.Notes.ConfirmDelete {
		t.Error("confirmDelete should be disabled")
	}
	if cfg.Notes.WatchDebounce != time.Second {
		t.Errorf("got debounce %v, want 1s", cfg.Notes.WatchDebounce)
	}
	if cfg.Notes.ExportFormat != "pdf" {
		t.Errorf("got export format %q, want pdf", cfg.Notes.ExportFormat)
	}
	if cfg.UI.ShowFooter {
		t.Error("showFooter should be false")
	}
	// Default values should still be present
	if !cfg.UI.ShowClock {
		t.Error("showClock should still be enabled (default)")
	}
	if cfg.Storage.Namespace != "notepane" {
		t.Errorf("namespace should keep its default, got %q", cfg.Storage.Namespace)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{invalid`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("should error on invalid JSON")
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"backend", `{"storage": {"backend": "redis"}}`, "storage.backend"},
		{"driver", `{"storage": {"backend": "sqlite", "driver": "postgres"}}`, "storage.driver"},
		{"namespace", `{"storage": {"namespace": "has space"}}`, "storage.namespace"},
		{"export format", `{"notes": {"exportFormat": "docx"}}`, "notes.exportFormat"},
		{"preview style", `{"notes": {"previewStyle": "neon"}}`, "notes.previewStyle"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadFrom(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q should mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input  string
		expect string
	}{
		{"~/notes", filepath.Join(home, "notes")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tc := range tests {
		got := ExpandPath(tc.input)
		if got != tc.expect {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.input, got, tc.expect)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Notes.WatchDebounce = -1

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	// Negative values should be corrected
	if cfg.Notes.WatchDebounce != 150*time.Millisecond {
		t.Errorf("got %v, want 150ms after validation", cfg.Notes.WatchDebounce)
	}
}

func TestStoragePath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		storage StorageConfig
		expect  string
	}{
		{StorageConfig{Backend: "file"}, filepath.Join(home, dataDir, "storage.json")},
		{StorageConfig{Backend: "sqlite"}, filepath.Join(home, dataDir, "notes.db")},
		{StorageConfig{Backend: "memory"}, ""},
		{StorageConfig{Backend: "sqlite", Path: "~/x.db"}, filepath.Join(home, "x.db")},
	}

	for _, tc := range tests {
		if got := tc.storage.StoragePath(); got != tc.expect {
			t.Errorf("StoragePath(%+v) = %q, want %q", tc.storage, got, tc.expect)
		}
	}
}

func TestLoadFrom_KeymapOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")

	content := []byte(`{
		"keymap": {
			"overrides": {"D": "delete-note", "ctrl+d": "delete-note"}
		}
	}`)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if len(cfg.Keymap.Overrides) != 2 {
		t.Errorf("got %d overrides, want 2", len(cfg.Keymap.Overrides))
	}
	if cfg.Keymap.Overrides["ctrl+d"] != "delete-note" {
		t.Errorf("got %q, want notes.delete", cfg.Keymap.Overrides["ctrl+d"])
	}
}
