package notes

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notepane/internal/markdown"
	notestore "github.com/marcus/notepane/internal/notes"
)

// NotesLoadedMsg carries a fresh copy of the store after a (re)load.
type NotesLoadedMsg struct {
	Notes []notestore.Note
	Epoch uint64
}

// GetEpoch implements plugin.EpochMessage.
func (m NotesLoadedMsg) GetEpoch() uint64 { return m.Epoch }

// NoteSavedMsg reports a Create or Update. Note is nil when the store
// treated the call as a no-op.
type NoteSavedMsg struct {
	Note    *notestore.Note
	OldID   int64 // id before the edit, 0 for creates
	Created bool
	Err     error
	Epoch   uint64
}

// GetEpoch implements plugin.EpochMessage.
func (m NoteSavedMsg) GetEpoch() uint64 { return m.Epoch }

// NoteDeletedMsg reports a Delete.
type NoteDeletedMsg struct {
	ID      int64
	Removed bool
	Err     error
	Epoch   uint64
}

// GetEpoch implements plugin.EpochMessage.
func (m NoteDeletedMsg) GetEpoch() uint64 { return m.Epoch }

// NotesSwappedMsg reports a committed drag.
type NotesSwappedMsg struct {
	A, B    int64
	Swapped bool
	Err     error
	Epoch   uint64
}

// GetEpoch implements plugin.EpochMessage.
func (m NotesSwappedMsg) GetEpoch() uint64 { return m.Epoch }

// NoteExportedMsg reports an export.
type NoteExportedMsg struct {
	Path string
	Err  error
}

// YankedMsg reports a clipboard copy.
type YankedMsg struct {
	What string
	Err  error
}

// StoreChangedMsg is sent when the backing file changes on disk.
type StoreChangedMsg struct{}

// loadNotes reloads from storage so writes by other processes show up.
func (p *Plugin) loadNotes() tea.Cmd {
	if p.store == nil {
		return nil
	}
	store := p.store
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		return NotesLoadedMsg{Notes: store.Reload(), Epoch: epoch}
	}
}

func (p *Plugin) createNote(text string) tea.Cmd {
	store, html := p.store, p.ctx.HTML
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		n, err := store.Create(text, renderHTML(html, text))
		return NoteSavedMsg{Note: n, Created: true, Err: err, Epoch: epoch}
	}
}

func (p *Plugin) updateNote(id int64, text string) tea.Cmd {
	store, html := p.store, p.ctx.HTML
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		n, err := store.Update(id, text, renderHTML(html, text))
		return NoteSavedMsg{Note: n, OldID: id, Err: err, Epoch: epoch}
	}
}

func (p *Plugin) deleteNote(id int64) tea.Cmd {
	store := p.store
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		removed, err := store.Delete(id)
		return NoteDeletedMsg{ID: id, Removed: removed, Err: err, Epoch: epoch}
	}
}

func (p *Plugin) swapNotes(a, b int64) tea.Cmd {
	store := p.store
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		swapped, err := store.Swap(a, b)
		return NotesSwappedMsg{A: a, B: b, Swapped: swapped, Err: err, Epoch: epoch}
	}
}

func (p *Plugin) exportNote(n notestore.Note, f notestore.Format) tea.Cmd {
	exporter := p.ctx.Exporter
	if exporter == nil {
		return nil
	}
	return func() tea.Msg {
		path, err := exporter.Export(n, f)
		return NoteExportedMsg{Path: path, Err: err}
	}
}

func renderHTML(h *markdown.HTML, text string) string {
	if h == nil {
		return ""
	}
	return h.MustRender(text)
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

func yank(what, content string) tea.Cmd {
	return func() tea.Msg {
		return YankedMsg{What: what, Err: writeClipboard(content)}
	}
}

// waitForChange blocks until the watcher fires. It returns nil once the
// channel closes, which ends the chain.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StoreChangedMsg{}
	}
}
