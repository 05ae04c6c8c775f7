// Package notes is the notes side panel: a newest-first list with a
// Markdown preview, inline editing, and drag-to-swap reordering.
package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notepane/internal/keymap"
	"github.com/marcus/notepane/internal/markdown"
	"github.com/marcus/notepane/internal/modal"
	"github.com/marcus/notepane/internal/mouse"
	"github.com/marcus/notepane/internal/msg"
	notestore "github.com/marcus/notepane/internal/notes"
	"github.com/marcus/notepane/internal/plugin"
	"github.com/marcus/notepane/internal/reorder"
	"github.com/marcus/notepane/internal/state"
	"github.com/marcus/notepane/internal/styles"
	"github.com/marcus/notepane/internal/watch"
)

const (
	pluginID   = "notes"
	pluginName = "Notes"
	pluginIcon = "N"

	// excerptLen is how much of a note the delete prompt quotes.
	excerptLen = 200

	toastDuration = 2 * time.Second
)

// FocusPane represents which pane is active.
type FocusPane int

const (
	PaneList FocusPane = iota
	PanePreview
)

func (f FocusPane) String() string {
	if f == PanePreview {
		return "preview"
	}
	return "list"
}

func parsePane(s string) FocusPane {
	if s == "preview" {
		return PanePreview
	}
	return PaneList
}

// Plugin implements the notes panel.
type Plugin struct {
	ctx     *plugin.Context
	store   *notestore.Store
	focused bool

	width  int
	height int

	activePane FocusPane
	listWidth  int // 0 means derive from width

	// notes mirrors the store; rows holds indexes into notes that pass the
	// filter, in display order.
	notes     []notestore.Note
	rows      []int
	cursor    int
	scrollOff int
	loaded    bool

	// Selection saved by the last session, applied on first load.
	restoreID     int64
	restoreScroll int

	// Search
	searchMode  bool
	searchInput textinput.Model
	filter      string

	// Inline editor
	editing bool
	editID  int64
	editor  textarea.Model

	// Preview
	term         *markdown.Terminal
	previewStyle string
	preview      viewport.Model
	previewFor   int64 // id rendered into preview
	previewWidth int

	// Drag to swap. Rows are keyed by display position.
	drag     *reorder.Reorderer[int]
	board    *reorder.Board[int]
	dragOver int
	dragID   int64 // note under the source row when the gesture began

	mouseHandler *mouse.Handler

	// Modals
	activeModal    modalKind
	modal          *modal.Modal
	modalMouse     *mouse.Handler
	newNoteInput   textarea.Model
	deleteTargetID int64
	exportTarget   notestore.Note
	exportIdx      int

	// Watcher
	watchCancel context.CancelFunc
	watchCh     <-chan struct{}
}

// New creates a new notes plugin.
func New() *Plugin {
	return &Plugin{
		mouseHandler: mouse.NewHandler(),
		modalMouse:   mouse.NewHandler(),
		drag:         reorder.New[int](),
		board:        reorder.NewBoard[int](),
		dragOver:     -1,
	}
}

// ID returns the plugin identifier.
func (p *Plugin) ID() string { return pluginID }

// Name returns the plugin display name.
func (p *Plugin) Name() string { return pluginName }

// Icon returns the plugin icon character.
func (p *Plugin) Icon() string { return pluginIcon }

// Init initializes the plugin with context.
func (p *Plugin) Init(ctx *plugin.Context) error {
	if ctx.Store == nil {
		return fmt.Errorf("notes: no store configured")
	}
	p.ctx = ctx
	p.store = ctx.Store
	p.notes = nil
	p.rows = nil
	p.cursor = 0
	p.scrollOff = 0
	p.loaded = false
	p.editing = false
	p.searchMode = false
	p.activeModal = modalNone
	p.modal = nil
	p.dragOver = -1
	_ = p.drag.End()
	p.board.Reset()

	saved := state.GetNotesState()
	p.activePane = parsePane(saved.ActivePane)
	p.filter = saved.Filter
	p.listWidth = state.GetNotesListWidth()

	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "filter notes"
	si.CharLimit = 200
	si.SetValue(p.filter)
	p.searchInput = si

	p.editor = newTextarea(true)
	p.newNoteInput = newTextarea(false)

	p.previewStyle = state.GetPreviewStyle()
	if p.previewStyle == "" && ctx.Config != nil {
		p.previewStyle = ctx.Config.Notes.PreviewStyle
	}
	if p.previewStyle == "" {
		p.previewStyle = styles.GetMarkdownTheme()
	}
	p.term = markdown.NewTerminal(p.previewStyle)
	p.preview = viewport.New(0, 0)
	p.previewFor = 0

	p.restoreID = saved.SelectedID
	p.restoreScroll = saved.PreviewScroll
	return nil
}

func newTextarea(lineNumbers bool) textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = lineNumbers
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.Placeholder = "Write a note in Markdown..."
	ta.FocusedStyle = textarea.Style{
		Base:             lipgloss.NewStyle(),
		CursorLine:       lipgloss.NewStyle(),
		CursorLineNumber: styles.Muted,
		EndOfBuffer:      styles.Muted,
		LineNumber:       styles.Muted,
		Placeholder:      styles.Muted,
		Prompt:           lipgloss.NewStyle(),
		Text:             lipgloss.NewStyle(),
	}
	ta.BlurredStyle = ta.FocusedStyle
	// alt+c is not a text edit here.
	ta.KeyMap.CapitalizeWordForward = key.NewBinding(key.WithDisabled())
	ta.Blur()
	return ta
}

// Start loads the notes and arms the store watcher.
func (p *Plugin) Start() tea.Cmd {
	cmds := []tea.Cmd{p.loadNotes()}

	cfg := p.ctx.Config
	if p.ctx.StorePath != "" && cfg != nil && cfg.Notes.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		ch, err := watch.File(ctx, p.ctx.StorePath, cfg.Notes.WatchDebounce, watch.WithLogger(p.ctx.Logger))
		if err != nil {
			cancel()
			p.ctx.Logger.Warn("notes: watcher disabled", "path", p.ctx.StorePath, "error", err)
		} else {
			p.watchCancel = cancel
			p.watchCh = ch
			cmds = append(cmds, waitForChange(ch))
		}
	}
	return tea.Batch(cmds...)
}

// Stop cancels the watcher and saves pane state.
func (p *Plugin) Stop() {
	if p.watchCancel != nil {
		p.watchCancel()
		p.watchCancel = nil
		p.watchCh = nil
	}
	s := state.NotesState{
		Filter:        p.filter,
		ActivePane:    p.activePane.String(),
		PreviewScroll: p.preview.YOffset,
	}
	if n := p.selectedNote(); n != nil {
		s.SelectedID = n.ID
	}
	if err := state.SetNotesState(s); err != nil && p.ctx != nil {
		p.ctx.Logger.Warn("notes: save state failed", "error", err)
	}
}

// Update handles messages.
func (p *Plugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch m := m.(type) {
	case tea.WindowSizeMsg:
		p.width = m.Width
		p.height = m.Height
		p.resize()
		return p, nil

	case NotesLoadedMsg:
		if plugin.IsStale(p.ctx, m) {
			return p, nil
		}
		p.loaded = true
		p.setNotes(m.Notes)
		if p.restoreID != 0 {
			p.selectID(p.restoreID)
			p.refreshPreview()
			p.preview.SetYOffset(p.restoreScroll)
			p.restoreID, p.restoreScroll = 0, 0
		}
		return p, nil

	case NoteSavedMsg:
		if plugin.IsStale(p.ctx, m) {
			return p, nil
		}
		p.setNotes(p.store.List())
		if m.Note != nil {
			p.selectID(m.Note.ID)
			p.refreshPreview()
		}
		if m.Err != nil {
			p.ctx.Logger.Error("notes: save failed", "error", m.Err)
			return p, msg.ShowError("Save failed", m.Err)
		}
		switch {
		case m.Note == nil:
			return p, nil
		case m.Created:
			return p, msg.ShowToast("Note added", toastDuration)
		default:
			return p, msg.ShowToast("Saved", toastDuration)
		}

	case NoteDeletedMsg:
		if plugin.IsStale(p.ctx, m) {
			return p, nil
		}
		p.setNotes(p.store.List())
		if m.Err != nil {
			p.ctx.Logger.Error("notes: delete failed", "id", m.ID, "error", m.Err)
			return p, msg.ShowError("Delete failed", m.Err)
		}
		if m.Removed {
			return p, msg.ShowToast("Note deleted", toastDuration)
		}
		return p, nil

	case NotesSwappedMsg:
		if plugin.IsStale(p.ctx, m) {
			return p, nil
		}
		p.setNotes(p.store.List())
		if m.Swapped {
			// The cursor follows the dragged note to its new row.
			p.selectID(m.A)
			p.refreshPreview()
		}
		if m.Err != nil {
			p.ctx.Logger.Error("notes: reorder failed", "error", m.Err)
			return p, msg.ShowError("Reorder failed", m.Err)
		}
		return p, nil

	case NoteExportedMsg:
		if m.Err != nil {
			p.ctx.Logger.Error("notes: export failed", "error", m.Err)
			return p, msg.ShowError("Export failed", m.Err)
		}
		return p, msg.ShowToast("Exported to "+m.Path, 3*time.Second)

	case YankedMsg:
		if m.Err != nil {
			return p, msg.ShowError("Copy failed", m.Err)
		}
		return p, msg.ShowToast("Copied "+m.What, toastDuration)

	case StoreChangedMsg:
		p.ctx.Logger.Debug("notes: store changed on disk")
		return p, tea.Batch(p.loadNotes(), waitForChange(p.watchCh))

	case msg.RefreshMsg:
		return p, p.loadNotes()

	case msg.ThemeChangedMsg:
		p.followTheme()
		return p, nil

	case tea.KeyMsg:
		if p.activeModal != modalNone {
			return p, p.handleModalKey(m)
		}
		return p, p.handleKey(m)

	case tea.MouseMsg:
		if p.activeModal != modalNone {
			return p, p.handleModalMouse(m)
		}
		return p, p.handleMouse(m)
	}

	// Cursor blink and other textarea ticks.
	var cmd tea.Cmd
	switch {
	case p.activeModal == modalNewNote:
		p.newNoteInput, cmd = p.newNoteInput.Update(m)
	case p.editing:
		p.editor, cmd = p.editor.Update(m)
	case p.searchMode:
		p.searchInput, cmd = p.searchInput.Update(m)
	}
	return p, cmd
}

// followTheme switches the preview to the theme's Markdown style unless a
// style was chosen explicitly.
func (p *Plugin) followTheme() {
	if state.GetPreviewStyle() != "" || (p.ctx.Config != nil && p.ctx.Config.Notes.PreviewStyle != "") {
		return
	}
	style := styles.GetMarkdownTheme()
	if style == p.previewStyle {
		return
	}
	p.previewStyle = style
	p.term = markdown.NewTerminal(style)
	p.previewFor = 0
	p.refreshPreview()
}

// setNotes replaces the mirror and keeps the cursor on the same note when
// it still exists.
func (p *Plugin) setNotes(list []notestore.Note) {
	var keep int64
	if n := p.selectedNote(); n != nil {
		keep = n.ID
	}
	p.notes = list
	p.applyFilter()
	p.revalidateDrag()
	if keep != 0 {
		p.selectID(keep)
	}
	p.clampCursor()
	p.refreshPreview()
}

// applyFilter rebuilds rows from notes and the current filter. Matching is
// a case-insensitive substring test on the note text.
func (p *Plugin) applyFilter() {
	p.rows = p.rows[:0]
	q := strings.ToLower(strings.TrimSpace(p.filter))
	for i, n := range p.notes {
		if q == "" || strings.Contains(strings.ToLower(n.Text), q) {
			p.rows = append(p.rows, i)
		}
	}
	p.board.Reset()
	for row, idx := range p.rows {
		p.board.Set(row, p.notes[idx].Text)
	}
	p.clampCursor()
}

func (p *Plugin) clampCursor() {
	if p.cursor >= len(p.rows) {
		p.cursor = len(p.rows) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.ensureCursorVisible()
}

func (p *Plugin) selectID(id int64) {
	for row, idx := range p.rows {
		if p.notes[idx].ID == id {
			p.cursor = row
			p.ensureCursorVisible()
			return
		}
	}
}

// noteAt returns the note displayed at row.
func (p *Plugin) noteAt(row int) *notestore.Note {
	if row < 0 || row >= len(p.rows) {
		return nil
	}
	return &p.notes[p.rows[row]]
}

func (p *Plugin) selectedNote() *notestore.Note {
	return p.noteAt(p.cursor)
}

// IsFocused returns whether the plugin is focused.
func (p *Plugin) IsFocused() bool { return p.focused }

// SetFocused sets the focus state.
func (p *Plugin) SetFocused(f bool) { p.focused = f }

// Status implements plugin.StatusProvider.
func (p *Plugin) Status() string {
	total := len(p.notes)
	label := "notes"
	if total == 1 {
		label = "note"
	}
	if p.filter != "" {
		return fmt.Sprintf("%d of %d %s", len(p.rows), total, label)
	}
	return fmt.Sprintf("%d %s", total, label)
}

// FocusContext returns the current keymap context.
func (p *Plugin) FocusContext() string {
	switch {
	case p.activeModal != modalNone:
		return keymap.ContextNotesModal
	case p.editing:
		return keymap.ContextNotesEditor
	case p.searchMode:
		return keymap.ContextNotesSearch
	case p.isDragging():
		return keymap.ContextNotesDrag
	case p.activePane == PanePreview:
		return keymap.ContextNotesPreview
	}
	return keymap.ContextNotesList
}

// ConsumesTextInput reports whether printable keys should reach the plugin
// instead of app shortcuts.
func (p *Plugin) ConsumesTextInput() bool {
	return p.editing || p.searchMode || p.activeModal == modalNewNote
}

// Commands returns the commands shown in the footer for the current context.
func (p *Plugin) Commands() []plugin.Command {
	switch p.FocusContext() {
	case "notes-modal":
		return []plugin.Command{
			{ID: "cancel", Name: "Cancel", Description: "Close dialog", Context: "notes-modal", Priority: 2},
		}
	case "notes-editor":
		return []plugin.Command{
			{ID: "save-edit", Name: "Done", Description: "Save and leave the editor", Context: "notes-editor", Priority: 1},
		}
	case "notes-search":
		return []plugin.Command{
			{ID: "apply-filter", Name: "Apply", Description: "Keep filter and return to list", Context: "notes-search", Priority: 1},
			{ID: "clear-filter", Name: "Clear", Description: "Clear filter", Context: "notes-search", Priority: 2},
		}
	case "notes-drag":
		return []plugin.Command{
			{ID: "drop-note", Name: "Drop", Description: "Swap with the row under the cursor", Context: "notes-drag", Priority: 1},
			{ID: "cancel-move", Name: "Cancel", Description: "Cancel move", Context: "notes-drag", Priority: 2},
		}
	case "notes-preview":
		return []plugin.Command{
			{ID: "edit-note", Name: "Edit", Description: "Edit note", Context: "notes-preview", Priority: 1},
			{ID: "switch-pane", Name: "List", Description: "Back to the list", Context: "notes-preview", Priority: 2},
			{ID: "yank-markdown", Name: "Yank", Description: "Copy Markdown", Context: "notes-preview", Priority: 3},
			{ID: "page-down", Name: "PgDn", Description: "Scroll down", Context: "notes-preview", Priority: 6},
		}
	}

	cmds := []plugin.Command{
		{ID: "new-note", Name: "New", Description: "Create a note", Context: "notes-list", Priority: 1},
		{ID: "search", Name: "Filter", Description: "Filter notes", Context: "notes-list", Priority: 4},
		{ID: "refresh", Name: "Refresh", Description: "Reload from storage", Context: "notes-list", Priority: 9},
	}
	if p.selectedNote() != nil {
		cmds = append(cmds,
			plugin.Command{ID: "edit-note", Name: "Edit", Description: "Edit selected note", Context: "notes-list", Priority: 2},
			plugin.Command{ID: "delete-note", Name: "Delete", Description: "Delete selected note", Context: "notes-list", Priority: 3},
			plugin.Command{ID: "move-note", Name: "Move", Description: "Swap with another note", Context: "notes-list", Priority: 5},
			plugin.Command{ID: "yank-markdown", Name: "Yank", Description: "Copy Markdown", Context: "notes-list", Priority: 6},
			plugin.Command{ID: "yank-html", Name: "YankHTML", Description: "Copy HTML", Context: "notes-list", Priority: 7},
			plugin.Command{ID: "export-note", Name: "Export", Description: "Export to a file", Context: "notes-list", Priority: 8},
			plugin.Command{ID: "switch-pane", Name: "Preview", Description: "Focus the preview", Context: "notes-list", Priority: 10},
			plugin.Command{ID: "cycle-preview-style", Name: "Style", Description: "Cycle preview style", Context: "notes-list", Priority: 11},
		)
	}
	if p.filter != "" {
		cmds = append(cmds, plugin.Command{ID: "clear-filter", Name: "Unfilter", Description: "Clear filter", Context: "notes-list", Priority: 4})
	}
	return cmds
}
