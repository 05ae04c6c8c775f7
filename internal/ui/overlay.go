// Package ui holds dialogs and compositing helpers shared by the app shell
// and plugins.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/notepane/internal/styles"
)

// dim renders background text in a single muted color. Existing styling is
// stripped first because faint does not combine reliably with other colors.
func dim(s string) string {
	if s == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(styles.TextSubtle).Render(ansi.Strip(s))
}

// OverlayModal centers box over a dimmed copy of background, producing
// exactly height lines.
func OverlayModal(background, box string, width, height int) string {
	bg := strings.Split(background, "\n")
	fg := strings.Split(box, "\n")

	boxW := 0
	for _, line := range fg {
		boxW = max(boxW, ansi.StringWidth(line))
	}
	x := max((width-boxW)/2, 0)
	y := max((height-len(fg))/2, 0)

	out := make([]string, height)
	for row := range out {
		line := ""
		if row < len(bg) {
			line = bg[row]
		}
		if row < y || row >= y+len(fg) {
			out[row] = dim(line)
			continue
		}
		out[row] = splice(line, fg[row-y], x, boxW)
	}
	return strings.Join(out, "\n")
}

// splice replaces columns [x, x+w) of bgLine with fgLine, dimming what
// remains of the background on either side.
func splice(bgLine, fgLine string, x, w int) string {
	plain := ansi.Strip(bgLine)
	plainW := ansi.StringWidth(plain)

	var b strings.Builder
	left := ansi.Truncate(plain, x, "")
	b.WriteString(dim(left))
	if pad := x - ansi.StringWidth(left); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(fgLine)
	if pad := w - ansi.StringWidth(fgLine); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	if plainW > x+w {
		b.WriteString(dim(ansi.Cut(plain, x+w, plainW)))
	}
	return b.String()
}
