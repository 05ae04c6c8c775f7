package notes

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notepane/internal/markdown"
	"github.com/marcus/notepane/internal/msg"
	notestore "github.com/marcus/notepane/internal/notes"
	"github.com/marcus/notepane/internal/state"
)

// lookup resolves a key in the current focus context.
func (p *Plugin) lookup(k tea.KeyMsg) string {
	if p.ctx == nil || p.ctx.Keymap == nil {
		return ""
	}
	id, _ := p.ctx.Keymap.Lookup(k.String(), p.FocusContext())
	return id
}

// handleKey dispatches a key press outside modals.
func (p *Plugin) handleKey(k tea.KeyMsg) tea.Cmd {
	switch {
	case p.editing:
		return p.handleEditorKey(k)
	case p.searchMode:
		return p.handleSearchKey(k)
	}

	cmdID := p.lookup(k)
	if p.isDragging() {
		return p.handleDragKey(cmdID)
	}
	if p.activePane == PanePreview {
		if cmd, ok := p.handlePreviewKey(cmdID); ok {
			return cmd
		}
	}

	switch cmdID {
	case "cursor-down":
		p.moveCursor(1)
	case "cursor-up":
		p.moveCursor(-1)
	case "cursor-top":
		p.moveCursorTo(0)
	case "cursor-bottom":
		p.moveCursorTo(len(p.rows) - 1)
	case "refresh":
		return p.loadNotes()
	case "new-note":
		return p.openNewNoteModal()
	case "edit-note":
		return p.startEditing()
	case "delete-note":
		return p.requestDelete()
	case "move-note":
		p.beginKeyboardDrag()
	case "yank-markdown":
		if n := p.selectedNote(); n != nil {
			return yank("Markdown", n.Text)
		}
	case "yank-html":
		if n := p.selectedNote(); n != nil {
			return yank("HTML", p.noteHTML(*n))
		}
	case "export-note":
		return p.openExportModal()
	case "search":
		p.searchMode = true
		p.searchInput.SetValue(p.filter)
		p.searchInput.CursorEnd()
		return p.searchInput.Focus()
	case "clear-filter":
		p.setFilter("")
	case "switch-pane":
		if p.selectedNote() != nil {
			p.activePane = PanePreview
		}
	case "cycle-preview-style":
		return p.cyclePreviewStyle()
	}
	return nil
}

// handlePreviewKey handles keys specific to the focused preview. ok is
// false when the key should fall through to list handling.
func (p *Plugin) handlePreviewKey(cmdID string) (tea.Cmd, bool) {
	switch cmdID {
	case "switch-pane":
		p.activePane = PaneList
		return nil, true
	case "cursor-down":
		p.preview.ScrollDown(1)
		return nil, true
	case "cursor-up":
		p.preview.ScrollUp(1)
		return nil, true
	case "cursor-top":
		p.preview.GotoTop()
		return nil, true
	case "cursor-bottom":
		p.preview.GotoBottom()
		return nil, true
	case "page-down":
		p.preview.HalfPageDown()
		return nil, true
	case "page-up":
		p.preview.HalfPageUp()
		return nil, true
	}
	return nil, false
}

// handleEditorKey forwards typing to the inline editor. Only the editor's
// own commands are honored so letters never trigger list actions.
func (p *Plugin) handleEditorKey(k tea.KeyMsg) tea.Cmd {
	if p.lookup(k) == "save-edit" {
		return p.finishEditing()
	}
	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(k)
	return cmd
}

func (p *Plugin) handleSearchKey(k tea.KeyMsg) tea.Cmd {
	switch p.lookup(k) {
	case "apply-filter":
		p.searchMode = false
		p.searchInput.Blur()
		return nil
	case "clear-filter":
		p.searchMode = false
		p.searchInput.Blur()
		p.setFilter("")
		return nil
	}
	var cmd tea.Cmd
	p.searchInput, cmd = p.searchInput.Update(k)
	if v := p.searchInput.Value(); v != p.filter {
		p.setFilter(v)
	}
	return cmd
}

func (p *Plugin) setFilter(q string) {
	var keep int64
	if n := p.selectedNote(); n != nil {
		keep = n.ID
	}
	p.filter = q
	if q == "" {
		p.searchInput.SetValue("")
	}
	p.applyFilter()
	p.cursor = 0
	if keep != 0 {
		p.selectID(keep)
	}
	p.ensureCursorVisible()
	p.refreshPreview()
}

func (p *Plugin) moveCursor(delta int) {
	p.moveCursorTo(p.cursor + delta)
}

func (p *Plugin) moveCursorTo(row int) {
	if len(p.rows) == 0 {
		return
	}
	if row < 0 {
		row = 0
	}
	if row >= len(p.rows) {
		row = len(p.rows) - 1
	}
	p.cursor = row
	p.ensureCursorVisible()
	p.refreshPreview()
}

// startEditing opens the inline editor on the selected note.
func (p *Plugin) startEditing() tea.Cmd {
	n := p.selectedNote()
	if n == nil {
		return nil
	}
	p.editing = true
	p.editID = n.ID
	p.activePane = PanePreview
	p.editor.SetValue(n.Text)
	p.resize()
	return p.editor.Focus()
}

// finishEditing leaves the editor and saves when the text changed. The
// store decides what "changed" means; an unchanged note is a no-op.
func (p *Plugin) finishEditing() tea.Cmd {
	if !p.editing {
		return nil
	}
	p.editing = false
	p.editor.Blur()
	text := p.editor.Value()
	id := p.editID
	p.editID = 0

	// The edited note may have been deleted by another process.
	if _, ok := p.store.Get(id); !ok {
		return msg.ShowToast("Note no longer exists", toastDuration)
	}
	return p.updateNote(id, text)
}

// noteHTML returns the cached markup, rendering when it is missing.
func (p *Plugin) noteHTML(n notestore.Note) string {
	if n.HTML != "" {
		return n.HTML
	}
	return renderHTML(p.ctx.HTML, n.Text)
}

var previewStyles = []string{markdown.StyleDark, markdown.StyleLight, markdown.StyleNoTTY}

// cyclePreviewStyle switches the preview renderer and remembers the choice.
func (p *Plugin) cyclePreviewStyle() tea.Cmd {
	next := previewStyles[0]
	for i, s := range previewStyles {
		if s == p.previewStyle {
			next = previewStyles[(i+1)%len(previewStyles)]
			break
		}
	}
	p.previewStyle = next
	p.term = markdown.NewTerminal(next)
	p.previewFor = 0
	p.refreshPreview()
	if err := state.SetPreviewStyle(next); err != nil {
		p.ctx.Logger.Warn("notes: save preview style failed", "error", err)
	}
	return msg.ShowToast("Preview style: "+next, toastDuration)
}

