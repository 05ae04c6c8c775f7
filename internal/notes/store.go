// Package notes owns the ordered notes collection and its persistence.
package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/marcus/notepane/internal/kv"
)

const (
	// DefaultNamespace prefixes the storage key.
	DefaultNamespace = "notepane"

	// DefaultDateFormat renders dates like a US locale string.
	DefaultDateFormat = "1/2/2006, 3:04:05 PM"

	notesKeySuffix = ".notes"
)

// ErrPersist wraps failures writing the collection to storage.
// The in-memory mutation that triggered the write is kept.
var ErrPersist = errors.New("persist notes")

// Store is the single owner of the notes list. Every successful mutation
// re-serializes the whole list to storage.
type Store struct {
	mu         sync.Mutex
	storage    kv.Storage
	namespace  string
	dateFormat string
	now        func() time.Time
	logger     *slog.Logger

	notes  []Note
	lastID int64
}

// Option configures a Store.
type Option func(*Store)

// WithNamespace sets the storage key prefix.
func WithNamespace(ns string) Option {
	return func(s *Store) {
		if ns != "" {
			s.namespace = ns
		}
	}
}

// WithDateFormat sets the Go time layout used for Note.Date.
func WithDateFormat(layout string) Option {
	return func(s *Store) {
		if layout != "" {
			s.dateFormat = layout
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for soft failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a Store over storage. Call Load before use.
func NewStore(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage:    storage,
		namespace:  DefaultNamespace,
		dateFormat: DefaultDateFormat,
		now:        time.Now,
		logger:     slog.New(slog.DiscardHandler),
		notes:      []Note{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key holding the serialized list.
func (s *Store) Key() string { return s.namespace + notesKeySuffix }

// Load reads the collection from storage and returns a copy of it.
// Missing, unreadable, or corrupt data yields an empty list.
func (s *Store) Load() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = s.read()
	for _, n := range s.notes {
		if n.ID > s.lastID {
			s.lastID = n.ID
		}
	}
	return s.copyNotes()
}

// Reload re-reads storage, picking up writes from other processes.
func (s *Store) Reload() []Note { return s.Load() }

func (s *Store) read() []Note {
	raw, ok, err := s.storage.Get(s.Key())
	if err != nil {
		s.logger.Warn("notes: read storage failed", "key", s.Key(), "error", err)
		return []Note{}
	}
	if !ok || raw == "" {
		return []Note{}
	}

	var list []Note
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("notes: stored data is corrupt, starting empty", "key", s.Key(), "error", err)
		return []Note{}
	}
	if list == nil {
		list = []Note{}
	}
	return list
}

// Create prepends a note built from text and its rendered HTML.
// Blank text is rejected with a nil note and nil error.
func (s *Store) Create(text, renderedHTML string) (*Note, error) {
	if isBlank(text) {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, date := s.stamp()
	note := Note{ID: id, Date: date, Text: text, HTML: renderedHTML}
	s.notes = append([]Note{note}, s.notes...)

	created := note
	if err := s.persist(); err != nil {
		return &created, err
	}
	s.logger.Debug("notes: created", "id", id)
	return &created, nil
}

// Update replaces the text of the note with id. Unknown ids and unchanged
// text are no-ops returning nil. A changed note gets a new id and date but
// keeps its list position, so callers must not cache ids across an edit.
func (s *Store) Update(id int64, newText, newRenderedHTML string) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, nil
	}
	if s.notes[idx].Text == newText {
		return nil, nil
	}

	newID, date := s.stamp()
	s.notes[idx].ID = newID
	s.notes[idx].Date = date
	s.notes[idx].Text = newText
	s.notes[idx].HTML = newRenderedHTML

	updated := s.notes[idx]
	if err := s.persist(); err != nil {
		return &updated, err
	}
	s.logger.Debug("notes: updated", "old_id", id, "id", newID)
	return &updated, nil
}

// Delete removes the first note with id and reports whether one was removed.
func (s *Store) Delete(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)

	if err := s.persist(); err != nil {
		return true, err
	}
	s.logger.Debug("notes: deleted", "id", id)
	return true, nil
}

// Swap exchanges the list positions of notes a and b and persists the order.
func (s *Store) Swap(a, b int64) (bool, error) {
	if a == b {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, j := s.indexOf(a), s.indexOf(b)
	if i < 0 || j < 0 {
		return false, nil
	}
	s.notes[i], s.notes[j] = s.notes[j], s.notes[i]

	if err := s.persist(); err != nil {
		return true, err
	}
	s.logger.Debug("notes: swapped", "a", a, "b", b)
	return true, nil
}

// List returns a copy of the notes, newest first.
func (s *Store) List() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyNotes()
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// Get returns the note with id.
func (s *Store) Get(id int64) (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.notes[idx], true
	}
	return Note{}, false
}

// Index returns the list position of id, or -1.
func (s *Store) Index(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id)
}

func (s *Store) indexOf(id int64) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) copyNotes() []Note {
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// stamp returns a fresh id and its formatted date. Ids are milliseconds
// since the epoch, bumped past the last issued id so rapid calls never
// collide.
func (s *Store) stamp() (int64, string) {
	now := s.now()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id, time.UnixMilli(id).In(now.Location()).Format(s.dateFormat)
}

// persist overwrites the stored list: remove the old entry, then write.
func (s *Store) persist() error {
	data, err := json.Marshal(s.notes)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}
	if err := s.storage.Remove(s.Key()); err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrPersist, s.Key(), err)
	}
	if err := s.storage.Set(s.Key(), string(data)); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrPersist, s.Key(), err)
	}
	return nil
}
