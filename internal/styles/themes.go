package styles

import (
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultThemeName is applied at startup and for unknown names.
const DefaultThemeName = "default"

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds all theme colors. The json names are the keys
// accepted in ui.theme.overrides.
type ColorPalette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`

	Success string `json:"success"`
	Warning string `json:"warning"`
	Error   string `json:"error"`
	Info    string `json:"info"`

	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	TextMuted     string `json:"textMuted"`
	TextSubtle    string `json:"textSubtle"`

	BgPrimary   string `json:"bgPrimary"`
	BgSecondary string `json:"bgSecondary"`
	BgTertiary  string `json:"bgTertiary"`

	BorderNormal string `json:"borderNormal"`
	BorderActive string `json:"borderActive"`

	TabColors []string `json:"tabColors"` // gradient stops across the header tabs

	ButtonHover      string `json:"buttonHover"`
	ToastSuccessText string `json:"toastSuccessText"`
	ToastErrorText   string `json:"toastErrorText"`

	SyntaxTheme   string `json:"syntaxTheme"`   // chroma style
	MarkdownTheme string `json:"markdownTheme"` // glamour style
}

// Theme is a named palette.
type Theme struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Colors      ColorPalette `json:"colors"`
}

var (
	DefaultTheme = Theme{
		Name:        DefaultThemeName,
		DisplayName: "Default Dark",
		Colors: ColorPalette{
			Primary:   "#7C3AED",
			Secondary: "#3B82F6",
			Accent:    "#F59E0B",

			Success: "#10B981",
			Warning: "#F59E0B",
			Error:   "#EF4444",
			Info:    "#3B82F6",

			TextPrimary:   "#F9FAFB",
			TextSecondary: "#9CA3AF",
			TextMuted:     "#6B7280",
			TextSubtle:    "#4B5563",

			BgPrimary:   "#111827",
			BgSecondary: "#1F2937",
			BgTertiary:  "#374151",

			BorderNormal: "#374151",
			BorderActive: "#7C3AED",

			TabColors: []string{"#7C3AED", "#3B82F6"},

			ButtonHover:      "#9D174D",
			ToastSuccessText: "#000000",
			ToastErrorText:   "#FFFFFF",

			SyntaxTheme:   "monokai",
			MarkdownTheme: "dark",
		},
	}

	DraculaTheme = Theme{
		Name:        "dracula",
		DisplayName: "Dracula",
		Colors: ColorPalette{
			Primary:   "#BD93F9",
			Secondary: "#8BE9FD",
			Accent:    "#FFB86C",

			Success: "#50FA7B",
			Warning: "#FFB86C",
			Error:   "#FF5555",
			Info:    "#8BE9FD",

			TextPrimary:   "#F8F8F2",
			TextSecondary: "#BFBFBF",
			TextMuted:     "#6272A4",
			TextSubtle:    "#44475A",

			BgPrimary:   "#282A36",
			BgSecondary: "#343746",
			BgTertiary:  "#44475A",

			BorderNormal: "#44475A",
			BorderActive: "#BD93F9",

			TabColors: []string{"#BD93F9", "#FF79C6", "#8BE9FD"},

			ButtonHover:      "#FF79C6",
			ToastSuccessText: "#282A36",
			ToastErrorText:   "#F8F8F2",

			SyntaxTheme:   "dracula",
			MarkdownTheme: "dark",
		},
	}

	// LightTheme pairs with the light glamour style for bright terminals.
	LightTheme = Theme{
		Name:        "light",
		DisplayName: "Light",
		Colors: ColorPalette{
			Primary:   "#6D28D9",
			Secondary: "#2563EB",
			Accent:    "#B45309",

			Success: "#047857",
			Warning: "#B45309",
			Error:   "#B91C1C",
			Info:    "#2563EB",

			TextPrimary:   "#111827",
			TextSecondary: "#374151",
			TextMuted:     "#6B7280",
			TextSubtle:    "#9CA3AF",

			BgPrimary:   "#FFFFFF",
			BgSecondary: "#F3F4F6",
			BgTertiary:  "#E5E7EB",

			BorderNormal: "#D1D5DB",
			BorderActive: "#6D28D9",

			TabColors: []string{"#C4B5FD", "#93C5FD"},

			ButtonHover:      "#F9A8D4",
			ToastSuccessText: "#FFFFFF",
			ToastErrorText:   "#FFFFFF",

			SyntaxTheme:   "github",
			MarkdownTheme: "light",
		},
	}
)

var (
	themeMu       sync.RWMutex
	themeRegistry = map[string]Theme{
		DefaultTheme.Name: DefaultTheme,
		DraculaTheme.Name: DraculaTheme,
		LightTheme.Name:   LightTheme,
	}
	// current is the applied theme, overrides included.
	current = DefaultTheme
)

// IsValidHexColor reports whether hex is #RRGGBB or #RRGGBBAA.
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a registered theme, or the default theme.
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if t, ok := themeRegistry[name]; ok {
		return t
	}
	return DefaultTheme
}

// GetCurrentTheme returns the applied theme including config overrides.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return current
}

func GetCurrentThemeName() string {
	return GetCurrentTheme().Name
}

// ListThemes returns the registered theme names, sorted.
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyTheme applies a theme by name. Unknown names apply the default.
func ApplyTheme(name string) {
	applyThemeColors(GetTheme(name))
}

// ApplyThemeWithGenericOverrides applies a theme with overrides decoded
// from config. Values may be strings or, for tabColors, string arrays.
// Invalid colors are ignored.
func ApplyThemeWithGenericOverrides(name string, overrides map[string]interface{}) {
	t := GetTheme(name)
	t.Colors.TabColors = append([]string(nil), t.Colors.TabColors...)
	for key, value := range overrides {
		switch v := value.(type) {
		case string:
			applyStringOverride(&t.Colors, key, v)
		case []string:
			applyListOverride(&t.Colors, key, v)
		case []interface{}:
			list := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					list = append(list, s)
				}
			}
			applyListOverride(&t.Colors, key, list)
		}
	}
	applyThemeColors(t)
}

// colorFields maps override keys to palette fields.
func colorFields(p *ColorPalette) map[string]*string {
	return map[string]*string{
		"primary":          &p.Primary,
		"secondary":        &p.Secondary,
		"accent":           &p.Accent,
		"success":          &p.Success,
		"warning":          &p.Warning,
		"error":            &p.Error,
		"info":             &p.Info,
		"textPrimary":      &p.TextPrimary,
		"textSecondary":    &p.TextSecondary,
		"textMuted":        &p.TextMuted,
		"textSubtle":       &p.TextSubtle,
		"bgPrimary":        &p.BgPrimary,
		"bgSecondary":      &p.BgSecondary,
		"bgTertiary":       &p.BgTertiary,
		"borderNormal":     &p.BorderNormal,
		"borderActive":     &p.BorderActive,
		"buttonHover":      &p.ButtonHover,
		"toastSuccessText": &p.ToastSuccessText,
		"toastErrorText":   &p.ToastErrorText,
	}
}

func applyStringOverride(p *ColorPalette, key, value string) {
	switch key {
	case "syntaxTheme":
		p.SyntaxTheme = value
		return
	case "markdownTheme":
		p.MarkdownTheme = value
		return
	}
	if !IsValidHexColor(value) {
		return
	}
	if field, ok := colorFields(p)[key]; ok {
		*field = value
	}
}

// applyListOverride replaces a color list. One bad color rejects the list.
func applyListOverride(p *ColorPalette, key string, colors []string) {
	for _, c := range colors {
		if !IsValidHexColor(c) {
			return
		}
	}
	if key == "tabColors" {
		p.TabColors = colors
	}
}

// applyThemeColors updates the package colors and rebuilds every style.
// Call it from the UI goroutine only; renders read the variables unlocked.
func applyThemeColors(t Theme) {
	c := t.Colors

	Primary = lipgloss.Color(c.Primary)
	Secondary = lipgloss.Color(c.Secondary)
	Accent = lipgloss.Color(c.Accent)

	Success = lipgloss.Color(c.Success)
	Warning = lipgloss.Color(c.Warning)
	Error = lipgloss.Color(c.Error)
	Info = lipgloss.Color(c.Info)

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextSecondary = lipgloss.Color(c.TextSecondary)
	TextMuted = lipgloss.Color(c.TextMuted)
	TextSubtle = lipgloss.Color(c.TextSubtle)

	BgPrimary = lipgloss.Color(c.BgPrimary)
	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgTertiary = lipgloss.Color(c.BgTertiary)

	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)

	ButtonHoverColor = lipgloss.Color(c.ButtonHover)
	ToastSuccessTextColor = lipgloss.Color(c.ToastSuccessText)
	ToastErrorTextColor = lipgloss.Color(c.ToastErrorText)

	CurrentSyntaxTheme = c.SyntaxTheme
	CurrentMarkdownTheme = c.MarkdownTheme
	tabColors = c.TabColors

	rebuildStyles()

	themeMu.Lock()
	current = t
	themeMu.Unlock()
}

// GetMarkdownTheme returns the glamour style of the applied theme.
func GetMarkdownTheme() string {
	return CurrentMarkdownTheme
}
