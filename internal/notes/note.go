package notes

import (
	"strings"
	"unicode/utf8"
)

// Note represents a single note.
// JSON names match the persisted layout shared with earlier releases.
type Note struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Text string `json:"note"`
	HTML string `json:"noteMarkup"`
}

// Title returns the first non-blank line of the note text.
func (n Note) Title() string {
	for _, line := range strings.Split(n.Text, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return strings.TrimLeft(t, "# ")
		}
	}
	return ""
}

// Excerpt returns the first max runes of the text followed by "...".
// The ellipsis is always appended, matching the delete prompt.
func (n Note) Excerpt(max int) string {
	text := n.Text
	if utf8.RuneCountInString(text) > max {
		runes := []rune(text)
		text = string(runes[:max])
	}
	return text + "..."
}

// isBlank reports whether s is empty or only whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
