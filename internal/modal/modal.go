// Package modal builds keyboard and mouse driven dialogs out of stacked
// sections. A modal learns where its focusable elements are only when it
// is rendered, so call Render before routing input to it.
package modal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notepane/internal/mouse"
)

// Region IDs registered behind the focusable elements.
const (
	regionBackdrop = "modal-backdrop"
	regionBody     = "modal-body"
)

// Modal is a dialog made of sections.
type Modal struct {
	title           string
	variant         Variant
	width           int
	sections        []Section
	showHints       bool
	primaryAction   string
	closeOnBackdrop bool

	focusIdx int
	focusIDs []string // in render order, rebuilt by Render
	hoverID  string

	scroll    int
	viewportH int
	focusY    map[string]span // content line span of each focusable
}

type span struct{ top, height int }

// New creates a modal.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:           title,
		width:           DefaultWidth,
		showHints:       true,
		closeOnBackdrop: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends a section and returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// HandleKey routes a key press. It returns "cancel" for Esc, the focused
// element's action for Enter, and otherwise whatever the focused section
// reports.
func (m *Modal) HandleKey(msg tea.KeyMsg) (string, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return "cancel", nil
	case "tab":
		m.moveFocus(1)
		return "", nil
	case "shift+tab":
		m.moveFocus(-1)
		return "", nil
	case "enter":
		return m.enter(msg)
	}
	return m.routeKey(msg)
}

func (m *Modal) enter(msg tea.KeyMsg) (string, tea.Cmd) {
	id := m.FocusedID()
	if id == "" {
		return "", nil
	}
	if m.consumesEnter(id) {
		_, cmd := m.routeKey(msg)
		return "", cmd
	}
	action, cmd := m.routeKey(msg)
	switch {
	case action != "":
		return action, cmd
	case m.primaryAction != "":
		return m.primaryAction, cmd
	}
	return id, cmd
}

// HandleMouse routes a mouse event using the regions from the last Render.
// It returns the ID of a clicked focusable, "cancel" for a backdrop click
// when enabled, or "".
func (m *Modal) HandleMouse(msg tea.MouseMsg, handler *mouse.Handler) string {
	if handler == nil {
		return ""
	}
	action := handler.HandleMouse(msg)
	id := ""
	if action.Region != nil {
		id = action.Region.ID
	}

	switch action.Type {
	case mouse.ActionClick, mouse.ActionDoubleClick:
		switch id {
		case "", regionBody:
			return ""
		case regionBackdrop:
			if m.closeOnBackdrop {
				return "cancel"
			}
			return ""
		}
		if i := m.indexOf(id); i >= 0 {
			m.focusIdx = i
			return id
		}

	case mouse.ActionHover:
		m.hoverID = ""
		if id != regionBackdrop && id != regionBody {
			m.hoverID = id
		}

	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		if id != regionBackdrop && id != "" {
			m.scroll = max(0, m.scroll+action.Delta) // Render clamps the bottom
		}
	}
	return ""
}

// SetFocus focuses the element with the given ID, if it exists.
func (m *Modal) SetFocus(id string) {
	if i := m.indexOf(id); i >= 0 {
		m.focusIdx = i
	}
}

// FocusedID returns the focused element, or "" before the first Render.
func (m *Modal) FocusedID() string {
	if len(m.focusIDs) == 0 {
		return ""
	}
	if m.focusIdx < 0 || m.focusIdx >= len(m.focusIDs) {
		return m.focusIDs[0]
	}
	return m.focusIDs[m.focusIdx]
}

func (m *Modal) HoveredID() string { return m.hoverID }

// Reset clears focus, hover and scroll.
func (m *Modal) Reset() {
	m.focusIdx = 0
	m.hoverID = ""
	m.scroll = 0
}

func (m *Modal) indexOf(id string) int {
	for i, fid := range m.focusIDs {
		if fid == id {
			return i
		}
	}
	return -1
}

func (m *Modal) moveFocus(delta int) {
	n := len(m.focusIDs)
	if n == 0 {
		return
	}
	m.focusIdx = ((m.focusIdx+delta)%n + n) % n
	m.revealFocused()
}

// revealFocused scrolls just enough to show the focused element.
func (m *Modal) revealFocused() {
	s, ok := m.focusY[m.FocusedID()]
	if !ok || m.viewportH <= 0 {
		return
	}
	if s.top < m.scroll {
		m.scroll = s.top
	}
	if bottom := s.top + s.height; bottom > m.scroll+m.viewportH {
		m.scroll = bottom - m.viewportH
	}
}

func (m *Modal) routeKey(msg tea.KeyMsg) (string, tea.Cmd) {
	id := m.FocusedID()
	if id == "" {
		return "", nil
	}
	for _, s := range m.sections {
		if action, cmd := s.Update(msg, id); action != "" || cmd != nil {
			return action, cmd
		}
	}
	return "", nil
}

func (m *Modal) consumesEnter(id string) bool {
	for _, s := range m.sections {
		if c, ok := s.(enterConsumer); ok && c.consumesEnter(id) {
			return true
		}
	}
	return false
}
