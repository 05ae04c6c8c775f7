package plugin

import tea "github.com/charmbracelet/bubbletea"

// Plugin defines the interface for panels hosted by the app.
type Plugin interface {
	ID() string
	Name() string
	Icon() string
	Init(ctx *Context) error
	Start() tea.Cmd
	Stop()
	Update(msg tea.Msg) (Plugin, tea.Cmd)
	View(width, height int) string
	IsFocused() bool
	SetFocused(bool)
	Commands() []Command
	FocusContext() string
}

// TextInputConsumer is an optional capability for plugins that need
// alphanumeric key input to be forwarded as typed text instead of being
// intercepted by app-level shortcuts.
type TextInputConsumer interface {
	ConsumesTextInput() bool
}

// Command describes a bound action a plugin advertises in the footer
// and help overlay.
type Command struct {
	ID          string // keymap command ID, e.g. "new-note"
	Name        string // short footer label
	Description string // help overlay text
	Context     string // keymap context the command is active in
	Priority    int    // footer order, 1 first; 0 sorts last
}

// StatusProvider is implemented by plugins that report a one-line status
// for the app header, such as an item count.
type StatusProvider interface {
	Status() string
}

// EpochMessage is implemented by async messages that need staleness detection.
// Messages from async operations should embed an Epoch field and implement this interface.
type EpochMessage interface {
	GetEpoch() uint64
}

// IsStale returns true if the message's epoch doesn't match the current context epoch.
// Use this in Update() handlers to discard messages from before the last reload:
//
//	if plugin.IsStale(p.ctx, msg) { return p, nil }
func IsStale(ctx *Context, msg EpochMessage) bool {
	return ctx != nil && msg.GetEpoch() != ctx.Epoch
}
