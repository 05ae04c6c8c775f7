package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notepane/internal/keymap"
	"github.com/marcus/notepane/internal/msg"
	"github.com/marcus/notepane/internal/plugin"
	"github.com/marcus/notepane/internal/styles"
	"github.com/marcus/notepane/internal/theme"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(message)

	case tea.MouseMsg:
		return m.handleMouseMsg(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		return m, m.resizePlugins()

	case TickMsg:
		m.clock = time.Time(message)
		m.ClearToast()
		return m, tickCmd()

	case msg.ToastMsg:
		m.ShowToast(message.Message, message.Duration, message.IsError)
		return m, nil
	}

	// Everything else goes to every plugin so async results reach their
	// owner.
	var cmds []tea.Cmd
	for _, p := range m.registry.Plugins() {
		next, cmd := p.Update(message)
		m.registry.Replace(next)
		cmds = append(cmds, cmd)
	}
	m.updateContext()
	return m, tea.Batch(cmds...)
}

// resizePlugins tells plugins the size of the content area.
func (m Model) resizePlugins() tea.Cmd {
	size := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
	var cmds []tea.Cmd
	for _, p := range m.registry.Plugins() {
		next, cmd := p.Update(size)
		m.registry.Replace(next)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.activeModal() {
	case ModalQuitConfirm:
		return m.handleQuitKey(k)
	case ModalHelp:
		switch m.lookup(k) {
		case "toggle-help", "quit":
			m.showHelp = false
		}
		if k.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	// ctrl+c always asks, even while typing.
	if k.String() == "ctrl+c" {
		m.openQuitConfirm()
		return m, nil
	}

	p := m.ActivePlugin()
	if tc, ok := p.(plugin.TextInputConsumer); ok && tc.ConsumesTextInput() {
		return m.forwardKey(p, k)
	}

	switch m.lookup(k) {
	case "quit":
		if isRootContext(m.activeContext) {
			m.openQuitConfirm()
			return m, nil
		}
	case "toggle-help":
		m.showHelp = true
		return m, nil
	case "toggle-footer":
		m.showFooter = !m.showFooter
		return m, m.resizePlugins()
	case "toggle-theme":
		return m, m.cycleTheme()
	}

	if cmd := m.keymap.Handle(k, m.activeContext); cmd != nil {
		return m, cmd
	}
	return m.forwardKey(p, k)
}

func (m Model) forwardKey(p plugin.Plugin, k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if p == nil {
		return m, nil
	}
	next, cmd := p.Update(k)
	m.registry.Replace(next)
	m.updateContext()
	return m, cmd
}

func (m Model) lookup(k tea.KeyMsg) string {
	if m.keymap == nil {
		return ""
	}
	id, _ := m.keymap.Lookup(k.String(), m.activeContext)
	return id
}

// isRootContext reports whether q quits in ctx. Dialogs and sub-modes use
// their own keys.
func isRootContext(ctx string) bool {
	switch ctx {
	case keymap.GlobalContext, "", keymap.ContextNotesList, keymap.ContextNotesPreview:
		return true
	}
	return false
}

func (m Model) handleQuitKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "y":
		return m.quit()
	case "n":
		m.closeQuitConfirm()
		return m, nil
	}
	action, cmd := m.quitModal.HandleKey(k)
	return m.quitAction(action, cmd)
}

func (m Model) quitAction(action string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch action {
	case "confirm":
		return m.quit()
	case "cancel":
		m.closeQuitConfirm()
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.closeQuitConfirm()
	m.registry.Stop()
	return m, tea.Quit
}

// cycleTheme switches to the next theme and saves the choice.
func (m Model) cycleTheme() tea.Cmd {
	next := theme.Next(styles.GetCurrentThemeName())
	styles.ApplyTheme(next)
	m.cfg.UI.Theme.Name = next

	cmds := []tea.Cmd{
		func() tea.Msg { return msg.ThemeChangedMsg{Name: next} },
		msg.ShowToast("Theme: "+next, 2*time.Second),
	}
	if err := saveTheme(next); err != nil {
		cmds = append(cmds, msg.ShowError("Theme not saved", err))
	}
	return tea.Batch(cmds...)
}

// handleMouseMsg routes mouse input to the open modal or, shifted into
// content coordinates, to the active plugin.
func (m Model) handleMouseMsg(mm tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.activeModal() {
	case ModalQuitConfirm:
		return m.quitAction(m.quitModal.HandleMouse(mm, m.quitMouse), nil)
	case ModalHelp:
		if mm.Action == tea.MouseActionPress && mm.Button == tea.MouseButtonLeft {
			m.showHelp = false
		}
		return m, nil
	}

	p := m.ActivePlugin()
	if p == nil {
		return m, nil
	}
	top := headerHeight
	if mm.Y < top || mm.Y >= top+m.contentHeight() {
		// Releases outside the content still end drags.
		if mm.Action != tea.MouseActionRelease {
			return m, nil
		}
	}
	mm.Y -= top
	next, cmd := p.Update(mm)
	m.registry.Replace(next)
	m.updateContext()
	return m, cmd
}
