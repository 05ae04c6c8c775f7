package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notepane/internal/modal"
	"github.com/marcus/notepane/internal/plugin"
	"github.com/marcus/notepane/internal/styles"
	"github.com/marcus/notepane/internal/ui"
)

const (
	headerHeight = 2 // bar plus a blank line
	footerHeight = 1
	minWidth     = 40
	minHeight    = 10
	appTitle     = " notepane"
)

// View renders the whole screen: bar, plugin area, footer, then any modal.
func (m Model) View() string {
	switch {
	case !m.ready:
		return "Loading..."
	case m.width < minWidth || m.height < minHeight:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.StatusError.Render(fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
				m.width, m.height, minWidth, minHeight)))
	}

	rows := []string{m.renderHeader(), "", m.renderContent(m.width, m.contentHeight())}
	if m.showFooter {
		rows = append(rows, m.renderFooter())
	}
	screen := strings.Join(rows, "\n")

	var box string
	switch m.activeModal() {
	case ModalQuitConfirm:
		if m.quitModal == nil {
			return screen
		}
		box = m.quitModal.Render(m.width, m.height, m.quitMouse)
	case ModalHelp:
		box = m.helpModal().Render(m.width, m.height, nil)
	default:
		return screen
	}
	return ui.OverlayModal(screen, box, m.width, m.height)
}

// renderHeader lays out the title on the left, the plugin tabs centered and
// the clock on the right.
func (m Model) renderHeader() string {
	left := styles.BarTitle.Render(appTitle) + " "

	plugins := m.registry.Plugins()
	tabs := make([]string, len(plugins))
	for i, p := range plugins {
		tabs[i] = styles.RenderTab(p.Name(), i, len(plugins), i == m.activePlugin)
		if i != m.activePlugin {
			continue
		}
		if sp, ok := p.(plugin.StatusProvider); ok && sp.Status() != "" {
			tabs[i] += styles.BarText.Render(" " + sp.Status())
		}
	}
	middle := strings.Join(tabs, " ")

	right := ""
	if m.cfg.UI.ShowClock {
		right = styles.BarText.Render(m.clock.Format("15:04"))
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(middle)-lipgloss.Width(right), 0)
	bar := left + strings.Repeat(" ", gap/2) + middle + strings.Repeat(" ", gap-gap/2) + right
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(bar)
}

// renderContent draws the active plugin clipped to width x height, or the
// reason there is nothing to draw.
func (m Model) renderContent(width, height int) string {
	if height <= 0 {
		return ""
	}
	p := m.ActivePlugin()
	if p == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styles.Muted.Render(m.emptyReason()))
	}
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(p.View(width, height))
}

func (m Model) emptyReason() string {
	for id, err := range m.registry.Failures() {
		return fmt.Sprintf("%s failed to start: %v", id, err)
	}
	return "No plugins loaded"
}

// renderFooter puts key hints on the left and the toast on the right.
func (m Model) renderFooter() string {
	toast := ""
	if m.statusMsg != "" {
		if m.statusIsError {
			toast = styles.ToastError.Render(m.statusMsg)
		} else {
			toast = styles.ToastSuccess.Render(m.statusMsg)
		}
	}
	room := m.width - lipgloss.Width(toast)
	line := fitHints(m.footerHints(), room-2)
	line += strings.Repeat(" ", max(room-lipgloss.Width(line), 0)) + toast
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(line)
}

// helpModal builds the shortcut sheet for the focused context and the
// global one.
func (m Model) helpModal() *modal.Modal {
	footer := fmt.Sprintf("notepane %s · press ? or esc to close", m.currentVersion)
	return modal.New("Keyboard shortcuts",
		modal.WithWidth(ui.ModalWidthMedium),
		modal.WithHints(false),
	).
		AddSection(modal.Text(m.helpText())).
		AddSection(modal.Spacer()).
		AddSection(modal.Text(styles.Subtle.Render(footer)))
}
