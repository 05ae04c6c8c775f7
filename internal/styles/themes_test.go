package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF5500", true},
		{"#aabbcc", true},
		{"#00000080", true},
		{"#FFF", false},
		{"#FF55001", false},
		{"FF5500", false},
		{"#GGGGGG", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidHexColor(tt.input); got != tt.valid {
			t.Errorf("IsValidHexColor(%q) = %v, want %v", tt.input, got, tt.valid)
		}
	}
}

func TestApplyTheme(t *testing.T) {
	defer ApplyTheme(DefaultThemeName)

	ApplyTheme("dracula")
	if GetCurrentThemeName() != "dracula" {
		t.Fatalf("current = %q, want dracula", GetCurrentThemeName())
	}
	if Primary != lipgloss.Color("#BD93F9") {
		t.Errorf("Primary = %q, want dracula purple", Primary)
	}

	ApplyTheme("light")
	if GetMarkdownTheme() != "light" {
		t.Errorf("markdown theme = %q, want light", GetMarkdownTheme())
	}

	ApplyTheme("no-such-theme")
	if GetCurrentThemeName() != DefaultThemeName {
		t.Errorf("unknown theme applied %q, want default", GetCurrentThemeName())
	}
}

func TestApplyThemeWithGenericOverrides(t *testing.T) {
	defer ApplyTheme(DefaultThemeName)

	ApplyThemeWithGenericOverrides("default", map[string]interface{}{
		"primary":       "#ff0000",
		"error":         "not-a-color",
		"markdownTheme": "notty",
		"tabColors":     []interface{}{"#111111", "#222222"},
	})

	got := GetCurrentTheme().Colors
	if got.Primary != "#ff0000" {
		t.Errorf("Primary = %q, want override", got.Primary)
	}
	if got.Error != DefaultTheme.Colors.Error {
		t.Errorf("invalid color applied: %q", got.Error)
	}
	if got.MarkdownTheme != "notty" {
		t.Errorf("MarkdownTheme = %q, want notty", got.MarkdownTheme)
	}
	if len(got.TabColors) != 2 || got.TabColors[1] != "#222222" {
		t.Errorf("TabColors = %v", got.TabColors)
	}
	if DefaultTheme.Colors.Primary != "#7C3AED" {
		t.Error("overrides leaked into the registered theme")
	}
}

func TestListOverride_RejectsBadColor(t *testing.T) {
	p := DefaultTheme.Colors
	applyListOverride(&p, "tabColors", []string{"#111111", "nope"})
	if len(p.TabColors) != len(DefaultTheme.Colors.TabColors) {
		t.Errorf("TabColors = %v, want unchanged", p.TabColors)
	}
}

func TestListThemes(t *testing.T) {
	got := strings.Join(ListThemes(), ",")
	if got != "default,dracula,light" {
		t.Errorf("ListThemes = %s", got)
	}
}

func TestRenderPanel(t *testing.T) {
	out := RenderPanel("one\n"+strings.Repeat("x", 50)+"\nthree\nfour", 20, 4, true)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 20 {
			t.Errorf("line %d width = %d, want 20", i, w)
		}
	}
	if strings.Contains(out, "three") {
		t.Error("content beyond the panel height was kept")
	}
	if RenderPanel("x", 3, 4, false) != "" {
		t.Error("panel narrower than its chrome should render empty")
	}
}

func TestRenderTab(t *testing.T) {
	active := RenderTab("notes", 0, 1, true)
	if !strings.Contains(active, "notes") {
		t.Errorf("tab lost its label: %q", active)
	}
	if w := lipgloss.Width(active); w != len("notes")+4 {
		t.Errorf("tab width = %d", w)
	}
}

func TestBlendHex(t *testing.T) {
	if got := blendHex("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("blend at 0 = %s", got)
	}
	if got := blendHex("bad", "#ffffff", 0.5); got != "bad" {
		t.Errorf("blend with bad input = %s, want input back", got)
	}
}
