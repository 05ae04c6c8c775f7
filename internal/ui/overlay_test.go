package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestOverlayModal_CentersBox(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 20)+"\n", 9) + strings.Repeat(".", 20)
	box := "+--+\n|ok|\n+--+"

	out := strings.Split(ansi.Strip(OverlayModal(bg, box, 20, 10)), "\n")
	if len(out) != 10 {
		t.Fatalf("got %d lines, want 10", len(out))
	}
	want := []string{
		"........+--+........",
		"........|ok|........",
		"........+--+........",
	}
	for i, w := range want {
		if got := out[3+i]; got != w {
			t.Errorf("row %d = %q, want %q", 3+i, got, w)
		}
	}
	if out[0] != strings.Repeat(".", 20) {
		t.Errorf("background row changed: %q", out[0])
	}
}

func TestOverlayModal_ShortBackground(t *testing.T) {
	out := strings.Split(ansi.Strip(OverlayModal("ab", "XY", 6, 3)), "\n")
	if len(out) != 3 {
		t.Fatalf("got %d lines, want 3", len(out))
	}
	if out[1] != "  XY" {
		t.Errorf("middle row = %q, want box padded from the left", out[1])
	}
	if out[0] != "ab" {
		t.Errorf("first row = %q", out[0])
	}
}

func TestOverlayModal_StripsBackgroundStyling(t *testing.T) {
	bg := "\x1b[31mred text here\x1b[0m"
	out := OverlayModal(bg, "box", 13, 3)
	if strings.Contains(out, "\x1b[31m") {
		t.Error("background color leaked through the dimming")
	}
}

func TestSplice_WideRunes(t *testing.T) {
	got := ansi.Strip(splice("日本語テキスト", "ab", 2, 2))
	if got != "日ab語テキスト" {
		t.Errorf("splice = %q", got)
	}
}
