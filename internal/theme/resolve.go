// Package theme resolves the configured color theme and the renderer
// styles that follow from it.
package theme

import (
	"github.com/marcus/notepane/internal/config"
	"github.com/marcus/notepane/internal/styles"
)

// ResolvedTheme represents a fully-determined theme configuration.
type ResolvedTheme struct {
	BaseName     string
	Overrides    map[string]interface{}
	CodeTheme    string // chroma style for exported HTML
	PreviewStyle string // glamour style for the preview pane
}

// ResolveTheme determines the effective theme.
// Preview style priority: saved UI state > config > theme default.
// Code theme priority: config > theme default.
func ResolveTheme(cfg *config.Config, savedPreviewStyle string) ResolvedTheme {
	resolved := ResolvedTheme{
		BaseName:     cfg.UI.Theme.Name,
		Overrides:    cfg.UI.Theme.Overrides,
		CodeTheme:    cfg.Notes.CodeTheme,
		PreviewStyle: cfg.Notes.PreviewStyle,
	}

	if resolved.BaseName == "" || !styles.IsValidTheme(resolved.BaseName) {
		resolved.BaseName = styles.DefaultThemeName
	}

	palette := styles.GetTheme(resolved.BaseName).Colors
	if resolved.CodeTheme == "" {
		resolved.CodeTheme = palette.SyntaxTheme
	}
	if savedPreviewStyle != "" {
		resolved.PreviewStyle = savedPreviewStyle
	}
	if resolved.PreviewStyle == "" {
		resolved.PreviewStyle = palette.MarkdownTheme
	}

	return resolved
}

// ApplyResolved applies a resolved theme to the styles system.
func ApplyResolved(r ResolvedTheme) {
	if len(r.Overrides) > 0 {
		styles.ApplyThemeWithGenericOverrides(r.BaseName, r.Overrides)
	} else {
		styles.ApplyTheme(r.BaseName)
	}
}

// Next returns the theme after name in sorted order, wrapping around.
func Next(name string) string {
	names := styles.ListThemes()
	if len(names) == 0 {
		return name
	}
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
