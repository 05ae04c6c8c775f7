// Package styles holds the shared colors and lipgloss styles. Every style is
// rebuilt when a theme is applied, so callers must read the package
// variables at render time rather than caching them.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

// Colors, set from the active theme.
var (
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextSubtle    lipgloss.Color

	BgPrimary   lipgloss.Color
	BgSecondary lipgloss.Color
	BgTertiary  lipgloss.Color

	BorderNormal lipgloss.Color
	BorderActive lipgloss.Color

	ButtonHoverColor      lipgloss.Color
	ToastSuccessTextColor lipgloss.Color
	ToastErrorTextColor   lipgloss.Color

	// CurrentMarkdownTheme is the glamour style matching the theme.
	CurrentMarkdownTheme string
	// CurrentSyntaxTheme is the chroma style matching the theme.
	CurrentSyntaxTheme string

	tabColors []string
)

// Text styles
var (
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style

	KeyHint lipgloss.Style
)

// List item styles
var (
	ListItemNormal   lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemFocused  lipgloss.Style
	ListCursor       lipgloss.Style
)

// Bar styles shared by the header and footer.
var (
	Header   lipgloss.Style
	Footer   lipgloss.Style
	BarTitle lipgloss.Style
	BarText  lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	StatusError  lipgloss.Style
)

// Modal and button styles
var (
	ModalTitle lipgloss.Style

	Button              lipgloss.Style
	ButtonFocused       lipgloss.Style
	ButtonHover         lipgloss.Style
	ButtonDanger        lipgloss.Style
	ButtonDangerFocused lipgloss.Style
	ButtonDangerHover   lipgloss.Style
)

func init() {
	ApplyTheme(DefaultThemeName)
}

// rebuildStyles recreates every style from the current colors.
func rebuildStyles() {
	Title = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Subtle = lipgloss.NewStyle().Foreground(TextSubtle)
	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	ListItemNormal = lipgloss.NewStyle().Foreground(TextPrimary)
	ListItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary)
	ListItemFocused = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary)
	ListCursor = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	Header = lipgloss.NewStyle().Background(BgSecondary)
	Footer = lipgloss.NewStyle().Foreground(TextMuted).Background(BgSecondary)
	BarTitle = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	BarText = lipgloss.NewStyle().Foreground(TextMuted)

	ToastSuccess = lipgloss.NewStyle().
		Background(Success).
		Foreground(ToastSuccessTextColor).
		Bold(true).
		Padding(0, 1)
	ToastError = lipgloss.NewStyle().
		Background(Error).
		Foreground(ToastErrorTextColor).
		Bold(true).
		Padding(0, 1)
	StatusError = lipgloss.NewStyle().Foreground(Error)

	ModalTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true).
		MarginBottom(1)

	Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgTertiary).
		Padding(0, 2)
	ButtonFocused = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary).
		Padding(0, 2).
		Bold(true)
	ButtonHover = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(ButtonHoverColor).
		Padding(0, 2)

	ButtonDanger = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FCA5A5")).
		Background(lipgloss.Color("#7F1D1D")).
		Padding(0, 2)
	ButtonDangerFocused = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#DC2626")).
		Padding(0, 2).
		Bold(true)
	ButtonDangerHover = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#B91C1C")).
		Padding(0, 2)
}

// RenderPanel draws content in a rounded panel of exactly width x height
// cells, borders included. Lines that do not fit are cut, not wrapped.
func RenderPanel(content string, width, height int, active bool) string {
	if width < 4 || height < 2 {
		return ""
	}
	innerW := width - 4 // borders plus one cell of padding each side
	innerH := height - 2

	lines := strings.Split(content, "\n")
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, innerW, "")
	}

	border := BorderNormal
	if active {
		border = BorderActive
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2).
		Height(innerH).
		Render(strings.Join(lines, "\n"))
}

// RenderTab draws a tab label. Tabs take consecutive stops of the theme's
// tab gradient; inactive tabs are dimmed toward the bar background.
func RenderTab(label string, tabIndex, totalTabs int, isActive bool) string {
	padded := "  " + label + "  "
	bg := tabColor(tabIndex, totalTabs)
	if !isActive {
		bg = blendHex(bg, string(BgSecondary), 0.65)
	}

	style := lipgloss.NewStyle().Background(lipgloss.Color(bg))
	if isActive {
		style = style.Foreground(TextPrimary).Bold(true)
	} else {
		style = style.Foreground(TextSecondary)
	}
	return style.Render(padded)
}

// tabColor picks the gradient color at the middle of tab i.
func tabColor(i, total int) string {
	switch len(tabColors) {
	case 0:
		return string(Primary)
	case 1:
		return tabColors[0]
	}
	if total < 1 {
		total = 1
	}
	pos := (float64(i) + 0.5) / float64(total) * float64(len(tabColors)-1)
	idx := min(int(pos), len(tabColors)-2)
	return blendHex(tabColors[idx], tabColors[idx+1], pos-float64(idx))
}

// blendHex mixes two hex colors in Lab space. Unparseable input returns a.
func blendHex(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}
