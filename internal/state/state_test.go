package state

import (
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
)

// useMemFs points the package at an in-memory filesystem for one test.
func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	origFs, origPath, origCurrent := fs, path, current
	mem := afero.NewMemMapFs()
	fs = mem
	path = ""
	current = State{}
	t.Cleanup(func() {
		fs, path, current = origFs, origPath, origCurrent
	})
	return mem
}

func TestInitWithDir_MissingFile(t *testing.T) {
	useMemFs(t)

	if err := InitWithDir("/home/u/.config/notepane"); err != nil {
		t.Fatalf("InitWithDir: %v", err)
	}
	if path != filepath.Join("/home/u/.config/notepane", "state.json") {
		t.Errorf("path = %q", path)
	}
	if got := get(); got != (State{}) {
		t.Errorf("state = %+v, want zero", got)
	}
}

func TestLoad_ExistingFile(t *testing.T) {
	mem := useMemFs(t)
	data, _ := json.Marshal(State{NotesListWidth: 40, Notes: NotesState{SelectedID: 1700000000000, Filter: "todo"}})
	if err := afero.WriteFile(mem, "/cfg/state.json", data, 0644); err != nil {
		t.Fatal(err)
	}

	if err := InitWithDir("/cfg"); err != nil {
		t.Fatalf("InitWithDir: %v", err)
	}
	if got := GetNotesListWidth(); got != 40 {
		t.Errorf("NotesListWidth = %d, want 40", got)
	}
	if got := GetNotesState(); got.SelectedID != 1700000000000 || got.Filter != "todo" {
		t.Errorf("NotesState = %+v", got)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	mem := useMemFs(t)
	if err := afero.WriteFile(mem, "/cfg/state.json", []byte("invalid json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := InitWithDir("/cfg"); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestLoad_ResetsPreviousState(t *testing.T) {
	useMemFs(t)
	current = State{PreviewStyle: "light"}
	path = "/cfg/state.json"

	if err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if GetPreviewStyle() != "" {
		t.Error("stale state survived a reload of a missing file")
	}
}

func TestSave_CreatesDirectories(t *testing.T) {
	mem := useMemFs(t)
	path = "/deep/nested/notepane/state.json"

	if err := SetPreviewStyle("light"); err != nil {
		t.Fatalf("SetPreviewStyle: %v", err)
	}

	data, err := afero.ReadFile(mem, path)
	if err != nil {
		t.Fatalf("state file not written: %v", err)
	}
	var loaded State
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.PreviewStyle != "light" {
		t.Errorf("saved PreviewStyle = %q", loaded.PreviewStyle)
	}
	if ok, _ := afero.Exists(mem, path+".tmp"); ok {
		t.Error("temp file left behind")
	}
}

func TestSave_WithoutPath(t *testing.T) {
	useMemFs(t)
	if err := SetNotesListWidth(30); err != nil {
		t.Fatalf("save without a path should be a no-op, got %v", err)
	}
	if GetNotesListWidth() != 30 {
		t.Error("value should still be kept in memory")
	}
}

func TestSetters_RoundTrip(t *testing.T) {
	useMemFs(t)
	path = "/cfg/state.json"

	want := NotesState{SelectedID: 42, ActivePane: "preview", PreviewScroll: 3}
	if err := SetNotesState(want); err != nil {
		t.Fatal(err)
	}
	if err := SetNotesListWidth(35); err != nil {
		t.Fatal(err)
	}

	current = State{}
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	if got := GetNotesState(); got != want {
		t.Errorf("NotesState = %+v, want %+v", got, want)
	}
	if got := GetNotesListWidth(); got != 35 {
		t.Errorf("NotesListWidth = %d, want 35", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	useMemFs(t)
	path = "/cfg/state.json"

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 5; i++ {
		style := "dark"
		if i%2 == 0 {
			style = "light"
		}
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := SetPreviewStyle(style); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			_ = GetPreviewStyle()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent access: %v", err)
	}
	if s := GetPreviewStyle(); s != "dark" && s != "light" {
		t.Errorf("PreviewStyle = %q", s)
	}
}
