package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/notepane/internal/keymap"
	notestore "github.com/marcus/notepane/internal/notes"
	"github.com/marcus/notepane/internal/reorder"
	"github.com/marcus/notepane/internal/styles"
)

const (
	rowHeight = 2 // title line + date line

	defaultListPercent = 35
	minListWidth       = 24
	minPreviewWidth    = 20

	// panel border plus the list header line
	listChromeTop = 2
)

var (
	rowMovingStyle   = lipgloss.NewStyle().Foreground(styles.Warning).Bold(true)
	rowDropStyle     = lipgloss.NewStyle().Foreground(styles.Success).Underline(true)
	editingBadge     = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	previewHeadStyle = lipgloss.NewStyle().Foreground(styles.TextMuted)
)

// View renders the plugin.
func (p *Plugin) View(width, height int) string {
	if width != p.width || height != p.height {
		p.width, p.height = width, height
		p.resize()
	}

	listW, previewW := p.paneWidths()
	p.mouseHandler.Clear()
	p.mouseHandler.HitMap.AddRect(regionList, 0, 0, listW, height, nil)
	p.mouseHandler.HitMap.AddRect(regionPreview, listW, 0, previewW, height, nil)

	list := styles.RenderPanel(p.renderList(listW-4), listW, height, p.activePane == PaneList && !p.editing)
	content := list
	if previewW > 0 {
		preview := styles.RenderPanel(p.renderPreview(), previewW, height, p.activePane == PanePreview || p.editing)
		content = lipgloss.JoinHorizontal(lipgloss.Top, list, preview)
	}

	if p.activeModal != modalNone {
		content = p.renderModal(content)
	}
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

// paneWidths splits the width between list and preview. Narrow terminals
// show only the list.
func (p *Plugin) paneWidths() (int, int) {
	pct := p.listWidth
	if pct <= 0 || pct >= 90 {
		pct = defaultListPercent
	}
	listW := max(p.width*pct/100, minListWidth)
	if p.width-listW < minPreviewWidth {
		return p.width, 0
	}
	return listW, p.width - listW
}

// resize propagates the current size to the preview and editor.
func (p *Plugin) resize() {
	_, previewW := p.paneWidths()
	innerW := max(previewW-4, 1)
	innerH := max(p.height-3, 1) // borders plus the preview header

	if innerW != p.previewWidth {
		p.previewWidth = innerW
		p.previewFor = 0
	}
	p.preview.Width = innerW
	p.preview.Height = innerH
	p.editor.SetWidth(innerW)
	p.editor.SetHeight(innerH)
	p.ensureCursorVisible()
	p.refreshPreview()
}

func (p *Plugin) visibleRows() int {
	return max((p.height-listChromeTop-1)/rowHeight, 1)
}

func (p *Plugin) ensureCursorVisible() {
	n := p.visibleRows()
	if p.cursor < p.scrollOff {
		p.scrollOff = p.cursor
	}
	if p.cursor >= p.scrollOff+n {
		p.scrollOff = p.cursor - n + 1
	}
	if maxOff := max(len(p.rows)-n, 0); p.scrollOff > maxOff {
		p.scrollOff = maxOff
	}
	if p.scrollOff < 0 {
		p.scrollOff = 0
	}
}

// refreshPreview renders the selected note into the viewport when the
// selection, its text, or the renderer changed.
func (p *Plugin) refreshPreview() {
	if p.term == nil || p.editing {
		return
	}
	n := p.selectedNote()
	if n == nil {
		p.preview.SetContent("")
		p.previewFor = 0
		return
	}
	rendered := p.term.RenderOrPlain(n.Text, p.previewWidth)
	if n.ID != p.previewFor {
		p.preview.SetContent(rendered)
		p.preview.GotoTop()
		p.previewFor = n.ID
		return
	}
	p.preview.SetContent(rendered)
}

func (p *Plugin) renderList(width int) string {
	var b strings.Builder
	b.WriteString(p.renderListHeader(width))

	if !p.loaded {
		b.WriteString("\n" + styles.Muted.Render("Loading..."))
		return b.String()
	}
	if len(p.rows) == 0 {
		b.WriteString("\n")
		if p.filter != "" {
			b.WriteString(styles.Muted.Render("No notes match the filter."))
		} else {
			b.WriteString(styles.Muted.Render(fmt.Sprintf("No notes yet. Press %s to add one.", p.keyFor("new-note", keymap.ContextNotesList))))
		}
		return b.String()
	}

	end := min(p.scrollOff+p.visibleRows(), len(p.rows))
	for row := p.scrollOff; row < end; row++ {
		y := listChromeTop + (row-p.scrollOff)*rowHeight
		p.mouseHandler.HitMap.AddRect(regionRow, 1, y, width+2, rowHeight, row)
		b.WriteString("\n")
		b.WriteString(p.renderRow(row, width))
	}
	if end < len(p.rows) {
		b.WriteString("\n" + styles.Subtle.Render(fmt.Sprintf("  %d more", len(p.rows)-end)))
	}
	return b.String()
}

func (p *Plugin) renderListHeader(width int) string {
	switch {
	case p.searchMode:
		p.searchInput.Width = max(width-4, 1)
		return p.searchInput.View()
	case p.filter != "":
		return styles.Title.Render("/"+p.filter) + " " + styles.Muted.Render(p.Status())
	}
	return styles.Title.Render("Notes") + " " + styles.Muted.Render(fmt.Sprintf("(%d)", len(p.notes)))
}

// renderRow draws one note. The title comes from the board so a committed
// drop shows immediately, before the store confirms.
func (p *Plugin) renderRow(row, width int) string {
	n := p.noteAt(row)
	title := notestore.Note{Text: p.board.Content(row)}.Title()
	if title == "" {
		title = "(empty)"
	}

	marks := p.drag.Marks(row)
	prefix := "  "
	titleStyle := styles.ListItemNormal
	switch {
	case marks.Has(reorder.MarkMoving):
		prefix = rowMovingStyle.Render("↕ ")
		titleStyle = rowMovingStyle
	case marks.Has(reorder.MarkDropEligible):
		prefix = rowDropStyle.Render("⇄ ")
		titleStyle = rowDropStyle
	case row == p.cursor:
		prefix = styles.ListCursor.Render("▸ ")
		titleStyle = styles.ListItemSelected
	}

	line1 := prefix + titleStyle.Render(ansi.Truncate(title, max(width-2, 1), "…"))
	line2 := "  " + styles.Muted.Render(ansi.Truncate(n.Date, max(width-2, 1), "…"))
	return line1 + "\n" + line2
}

func (p *Plugin) renderPreview() string {
	n := p.selectedNote()
	if p.editing {
		head := editingBadge.Render("editing") + "  " +
			styles.Muted.Render(p.keyFor("save-edit", keymap.ContextNotesEditor)+" to save")
		return head + "\n" + p.editor.View()
	}
	if n == nil {
		return styles.Muted.Render("Nothing selected")
	}
	head := previewHeadStyle.Render(n.Date)
	if pct := p.preview.ScrollPercent(); p.preview.TotalLineCount() > p.preview.Height {
		head += styles.Subtle.Render(fmt.Sprintf("  %3.0f%%", pct*100))
	}
	return head + "\n" + p.preview.View()
}

// keyFor returns the first key bound to cmd, for inline hints.
func (p *Plugin) keyFor(cmd, ctx string) string {
	if p.ctx != nil && p.ctx.Keymap != nil {
		if keys := p.ctx.Keymap.KeysFor(cmd, ctx); len(keys) > 0 {
			return keys[0]
		}
	}
	return cmd
}
