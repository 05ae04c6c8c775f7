package keymap

// Contexts used by the notes panel.
const (
	ContextNotesList    = "notes-list"
	ContextNotesPreview = "notes-preview"
	ContextNotesEditor  = "notes-editor"
	ContextNotesSearch  = "notes-search"
	ContextNotesDrag    = "notes-drag"
	ContextNotesModal   = "notes-modal"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "q", Command: "quit", Context: "global"},
		{Key: "ctrl+c", Command: "quit", Context: "global"},
		{Key: "?", Command: "toggle-help", Context: "global"},
		{Key: "ctrl+h", Command: "toggle-footer", Context: "global"},
		{Key: "ctrl+t", Command: "toggle-theme", Context: "global"},
		{Key: "r", Command: "refresh", Context: "global"},
		{Key: "j", Command: "cursor-down", Context: "global"},
		{Key: "down", Command: "cursor-down", Context: "global"},
		{Key: "k", Command: "cursor-up", Context: "global"},
		{Key: "up", Command: "cursor-up", Context: "global"},
		{Key: "g", Command: "cursor-top", Context: "global"},
		{Key: "G", Command: "cursor-bottom", Context: "global"},

		// Notes list
		{Key: "n", Command: "new-note", Context: ContextNotesList},
		{Key: "e", Command: "edit-note", Context: ContextNotesList},
		{Key: "enter", Command: "edit-note", Context: ContextNotesList},
		{Key: "D", Command: "delete-note", Context: ContextNotesList},
		{Key: "m", Command: "move-note", Context: ContextNotesList},
		{Key: "y", Command: "yank-markdown", Context: ContextNotesList},
		{Key: "Y", Command: "yank-html", Context: ContextNotesList},
		{Key: "x", Command: "export-note", Context: ContextNotesList},
		{Key: "/", Command: "search", Context: ContextNotesList},
		{Key: "tab", Command: "switch-pane", Context: ContextNotesList},
		{Key: "l", Command: "switch-pane", Context: ContextNotesList},
		{Key: "v", Command: "cycle-preview-style", Context: ContextNotesList},
		{Key: "esc", Command: "clear-filter", Context: ContextNotesList},

		// Notes preview
		{Key: "tab", Command: "switch-pane", Context: ContextNotesPreview},
		{Key: "h", Command: "switch-pane", Context: ContextNotesPreview},
		{Key: "esc", Command: "switch-pane", Context: ContextNotesPreview},
		{Key: "e", Command: "edit-note", Context: ContextNotesPreview},
		{Key: "y", Command: "yank-markdown", Context: ContextNotesPreview},
		{Key: "Y", Command: "yank-html", Context: ContextNotesPreview},
		{Key: "ctrl+d", Command: "page-down", Context: ContextNotesPreview},
		{Key: "ctrl+u", Command: "page-up", Context: ContextNotesPreview},

		// Inline editor
		{Key: "esc", Command: "save-edit", Context: ContextNotesEditor},
		{Key: "tab", Command: "save-edit", Context: ContextNotesEditor},
		{Key: "ctrl+s", Command: "save-edit", Context: ContextNotesEditor},

		// Filter input
		{Key: "enter", Command: "apply-filter", Context: ContextNotesSearch},
		{Key: "esc", Command: "clear-filter", Context: ContextNotesSearch},

		// Keyboard drag
		{Key: "j", Command: "cursor-down", Context: ContextNotesDrag},
		{Key: "down", Command: "cursor-down", Context: ContextNotesDrag},
		{Key: "k", Command: "cursor-up", Context: ContextNotesDrag},
		{Key: "up", Command: "cursor-up", Context: ContextNotesDrag},
		{Key: "enter", Command: "drop-note", Context: ContextNotesDrag},
		{Key: "m", Command: "drop-note", Context: ContextNotesDrag},
		{Key: "esc", Command: "cancel-move", Context: ContextNotesDrag},

		// Modals
		{Key: "ctrl+s", Command: "save-note", Context: ContextNotesModal},
		{Key: "esc", Command: "cancel", Context: ContextNotesModal},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
