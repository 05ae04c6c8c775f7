// Package app is the root Bubble Tea model. It hosts the registered
// plugins and owns the header, footer, help overlay and quit prompt.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notepane/internal/config"
	"github.com/marcus/notepane/internal/keymap"
	"github.com/marcus/notepane/internal/modal"
	"github.com/marcus/notepane/internal/mouse"
	"github.com/marcus/notepane/internal/plugin"
	"github.com/marcus/notepane/internal/ui"
)

// ModalKind identifies an app-level modal. Lower values win when more than
// one is open.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalQuitConfirm
	ModalHelp
)

// saveTheme persists the theme choice; replaced in tests.
var saveTheme = config.SaveTheme

// Model is the root Bubble Tea model.
type Model struct {
	cfg *config.Config

	registry     *plugin.Registry
	activePlugin int

	keymap        *keymap.Registry
	activeContext string

	width, height int
	ready         bool
	showHelp      bool
	showFooter    bool

	showQuitConfirm bool
	quitModal       *modal.Modal
	quitMouse       *mouse.Handler

	// Toast
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	clock time.Time
	now   func() time.Time

	currentVersion string
}

// New creates the application model.
func New(reg *plugin.Registry, km *keymap.Registry, cfg *config.Config, currentVersion string) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	m := Model{
		cfg:            cfg,
		registry:       reg,
		keymap:         km,
		activeContext:  keymap.GlobalContext,
		showFooter:     cfg.UI.ShowFooter,
		quitMouse:      mouse.NewHandler(),
		now:            time.Now,
		currentVersion: currentVersion,
	}
	m.clock = m.now()
	if p := m.ActivePlugin(); p != nil {
		p.SetFocused(true)
		m.activeContext = p.FocusContext()
	}
	return m
}

// Init starts the clock and every registered plugin.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	for _, cmd := range m.registry.Start() {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// ActivePlugin returns the plugin that owns the content area.
func (m Model) ActivePlugin() plugin.Plugin {
	plugins := m.registry.Plugins()
	if len(plugins) == 0 {
		return nil
	}
	if m.activePlugin >= len(plugins) {
		return plugins[0]
	}
	return plugins[m.activePlugin]
}

// activeModal returns the highest-priority open modal.
func (m *Model) activeModal() ModalKind {
	switch {
	case m.showQuitConfirm:
		return ModalQuitConfirm
	case m.showHelp:
		return ModalHelp
	}
	return ModalNone
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(msg string, duration time.Duration, isError bool) {
	m.statusMsg = msg
	m.statusIsError = isError
	m.statusExpiry = m.now().Add(duration)
}

// ClearToast clears the toast once it has expired.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && m.now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

func (m *Model) openQuitConfirm() {
	d := ui.NewConfirmDialog("Quit notepane?", "Are you sure you want to quit?")
	d.ConfirmLabel = " Quit "
	d.Width = ui.ModalWidthSmall + 6
	m.quitModal = d.ToModal()
	m.showQuitConfirm = true
}

func (m *Model) closeQuitConfirm() {
	m.showQuitConfirm = false
	m.quitModal = nil
	m.quitMouse.Clear()
}

// contentHeight is the height left for the plugin.
func (m Model) contentHeight() int {
	h := m.height - headerHeight
	if m.showFooter {
		h -= footerHeight
	}
	return max(h, 0)
}

// updateContext sets activeContext from the active plugin.
func (m *Model) updateContext() {
	if p := m.ActivePlugin(); p != nil {
		m.activeContext = p.FocusContext()
		return
	}
	m.activeContext = keymap.GlobalContext
}
