package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/notepane/internal/styles"
)

// Section is one block of modal content.
type Section interface {
	Render(contentWidth int, focusID, hoverID string) RenderedSection
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// enterConsumer is implemented by sections that handle Enter themselves
// instead of triggering the modal's action.
type enterConsumer interface {
	consumesEnter(focusID string) bool
}

// RenderedSection is the output of Section.Render.
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
}

// FocusableInfo locates a focusable element relative to its section.
type FocusableInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// Text

type textSection struct {
	text string
}

// Text renders wrapped plain text.
func Text(s string) Section {
	return &textSection{text: s}
}

func (s *textSection) Render(contentWidth int, _, _ string) RenderedSection {
	return RenderedSection{Content: lipgloss.NewStyle().Width(contentWidth).Render(s.text)}
}

func (s *textSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// Spacer

type spacerSection struct{}

// Spacer renders one blank line.
func Spacer() Section { return spacerSection{} }

func (spacerSection) Render(int, string, string) RenderedSection {
	return RenderedSection{Content: " "}
}

func (spacerSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// Buttons

// ButtonDef describes one button in a Buttons row.
type ButtonDef struct {
	Label  string
	ID     string
	danger bool
}

// ButtonOption configures a ButtonDef.
type ButtonOption func(*ButtonDef)

// BtnDanger styles the button as destructive.
func BtnDanger() ButtonOption {
	return func(b *ButtonDef) { b.danger = true }
}

// Btn creates a button definition.
func Btn(label, id string, opts ...ButtonOption) ButtonDef {
	b := ButtonDef{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type buttonsSection struct {
	buttons []ButtonDef
}

// Buttons renders a horizontal row of buttons. Each button is focusable and
// its ID is returned as the action when pressed.
func Buttons(buttons ...ButtonDef) Section {
	return &buttonsSection{buttons: buttons}
}

func (s *buttonsSection) Render(_ int, focusID, hoverID string) RenderedSection {
	var parts []string
	var focusables []FocusableInfo
	x := 0
	for i, b := range s.buttons {
		if i > 0 {
			parts = append(parts, "  ")
			x += 2
		}
		rendered := buttonStyle(b, focusID, hoverID).Render(b.Label)
		w := ansi.StringWidth(rendered)
		parts = append(parts, rendered)
		focusables = append(focusables, FocusableInfo{ID: b.ID, OffsetX: x, Width: w, Height: 1})
		x += w
	}
	return RenderedSection{Content: strings.Join(parts, ""), Focusables: focusables}
}

func buttonStyle(b ButtonDef, focusID, hoverID string) lipgloss.Style {
	switch {
	case b.danger && b.ID == focusID:
		return styles.ButtonDangerFocused
	case b.danger && b.ID == hoverID:
		return styles.ButtonDangerHover
	case b.danger:
		return styles.ButtonDanger
	case b.ID == focusID:
		return styles.ButtonFocused
	case b.ID == hoverID:
		return styles.ButtonHover
	}
	return styles.Button
}

// Update returns the focused button's ID on Enter so that a focused Cancel
// is never overridden by the modal's primary action.
func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || k.String() != "enter" {
		return "", nil
	}
	for _, b := range s.buttons {
		if b.ID == focusID {
			return b.ID, nil
		}
	}
	return "", nil
}

// Custom

// RenderFunc renders a Custom section.
type RenderFunc func(contentWidth int, focusID, hoverID string) RenderedSection

// UpdateFunc handles messages for a Custom section.
type UpdateFunc func(msg tea.Msg, focusID string) (string, tea.Cmd)

type customSection struct {
	render RenderFunc
	update UpdateFunc
}

// Custom wraps arbitrary render and update functions. update may be nil.
func Custom(render RenderFunc, update UpdateFunc) Section {
	return &customSection{render: render, update: update}
}

func (s *customSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return s.render(contentWidth, focusID, hoverID)
}

func (s *customSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if s.update == nil {
		return "", nil
	}
	return s.update(msg, focusID)
}

// Textarea

type textareaSection struct {
	id     string
	label  string
	model  *textarea.Model
	height int
}

// Textarea renders a multi-line editor. Enter inserts a newline while it is
// focused, so the modal needs a button or key binding to submit.
func Textarea(id, label string, model *textarea.Model, height int) Section {
	return &textareaSection{id: id, label: label, model: model, height: max(1, height)}
}

func (s *textareaSection) Render(contentWidth int, focusID, _ string) RenderedSection {
	if focusID == s.id {
		s.model.Focus()
	} else {
		s.model.Blur()
	}
	s.model.SetWidth(max(1, contentWidth-2))
	s.model.SetHeight(s.height)

	offsetY := 0
	var sb strings.Builder
	if s.label != "" {
		sb.WriteString(styles.Muted.Render(s.label))
		sb.WriteString("\n")
		offsetY = 1
	}
	box := inputBox(focusID == s.id).Render(s.model.View())
	sb.WriteString(box)

	return RenderedSection{
		Content: sb.String(),
		Focusables: []FocusableInfo{{
			ID:      s.id,
			OffsetY: offsetY,
			Width:   contentWidth,
			Height:  lipgloss.Height(box),
		}},
	}
}

func (s *textareaSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

func (s *textareaSection) consumesEnter(focusID string) bool { return focusID == s.id }

func inputBox(focused bool) lipgloss.Style {
	border := styles.TextSubtle
	if focused {
		border = styles.Primary
	}
	return lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(border)
}
