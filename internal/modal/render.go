package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notepane/internal/mouse"
	"github.com/marcus/notepane/internal/styles"
)

const hintText = "Tab to switch · Enter to confirm · Esc to cancel"

type placed struct {
	content    string
	top        int // first content line
	focusables []FocusableInfo
}

// Render draws the modal box for a screen of screenW x screenH and, when
// handler is non-nil, replaces its regions with the modal's own.
func (m *Modal) Render(screenW, screenH int, handler *mouse.Handler) string {
	boxW := min(max(m.width, MinModalWidth), max(screenW-4, 1))
	contentW := max(boxW-ModalPadding, 1)

	blocks, lines := m.layoutSections(contentW)

	chrome := 0
	if m.title != "" {
		chrome += 2
	}
	if m.showHints {
		chrome++
	}
	maxViewport := max(screenH-6-chrome, 1)
	m.viewportH = min(max(len(lines), 1), maxViewport)
	m.scroll = min(max(m.scroll, 0), max(len(lines)-m.viewportH, 0))

	visible := lines[m.scroll:min(m.scroll+m.viewportH, len(lines))]
	var body strings.Builder
	if m.title != "" {
		body.WriteString(m.titleStyle().Render(m.title))
		body.WriteString("\n")
	}
	body.WriteString(strings.Join(visible, "\n"))
	for i := len(visible); i < m.viewportH; i++ {
		body.WriteString("\n")
	}
	if m.showHints {
		body.WriteString("\n")
		body.WriteString(styles.Muted.Render(hintText))
	}

	box := m.boxStyle(boxW).Render(body.String())
	if handler != nil {
		m.registerRegions(handler, blocks, screenW, screenH, boxW, lipgloss.Height(box))
	}
	return box
}

// layoutSections renders every section and records focus order and
// positions. Empty sections take no space.
func (m *Modal) layoutSections(width int) ([]placed, []string) {
	focused := m.FocusedID()
	m.focusIDs = m.focusIDs[:0]
	m.focusY = make(map[string]span)

	var blocks []placed
	var lines []string
	for _, s := range m.sections {
		r := s.Render(width, focused, m.hoverID)
		if r.Content == "" {
			continue
		}
		b := placed{content: r.Content, top: len(lines), focusables: r.Focusables}
		for _, f := range r.Focusables {
			m.focusIDs = append(m.focusIDs, f.ID)
			m.focusY[f.ID] = span{top: b.top + f.OffsetY, height: f.Height}
		}
		blocks = append(blocks, b)
		lines = append(lines, strings.Split(r.Content, "\n")...)
	}
	if m.focusIdx >= len(m.focusIDs) {
		m.focusIdx = 0
	}
	return blocks, lines
}

// registerRegions adds the backdrop, the box and every visible focusable.
// Focusables are added last so they win hit tests.
func (m *Modal) registerRegions(h *mouse.Handler, blocks []placed, screenW, screenH, boxW, boxH int) {
	h.HitMap.Clear()
	x := (screenW - boxW) / 2
	y := (screenH - boxH) / 2
	h.HitMap.AddRect(regionBackdrop, 0, 0, screenW, screenH, nil)
	h.HitMap.AddRect(regionBody, x, y, boxW, boxH, nil)

	contentX := x + 3 // border plus horizontal padding
	contentY := y + 2 // border plus vertical padding
	if m.title != "" {
		contentY += 2
	}
	for _, b := range blocks {
		for _, f := range b.focusables {
			line := b.top + f.OffsetY - m.scroll
			if line+f.Height <= 0 || line >= m.viewportH {
				continue
			}
			h.HitMap.AddRect(f.ID, contentX+f.OffsetX, contentY+line, f.Width, f.Height, f.ID)
		}
	}
}

func (m *Modal) accent() lipgloss.Color {
	switch m.variant {
	case VariantDanger:
		return styles.Error
	case VariantWarning:
		return styles.Warning
	case VariantInfo:
		return styles.Info
	}
	return styles.Primary
}

func (m *Modal) boxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.accent()).
		Background(styles.BgSecondary).
		Padding(1, 2).
		Width(width - 2)
}

func (m *Modal) titleStyle() lipgloss.Style {
	if m.variant == VariantDefault {
		return styles.ModalTitle
	}
	return styles.ModalTitle.Foreground(m.accent())
}
