package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notepane/internal/styles"
)

// ListItem is one row of a List section.
type ListItem struct {
	ID    string
	Label string
	Data  any
}

// ListOption configures a List section.
type ListOption func(*listSection)

// WithMaxVisible caps the number of rows shown at once.
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

type listSection struct {
	id         string
	items      []ListItem
	selected   *int
	maxVisible int
	offset     int
}

// List renders a single-select list bound to selected. The list is one
// focus stop: up/down move the selection and Enter returns the selected
// item's ID as the action.
func List(id string, items []ListItem, selected *int, opts ...ListOption) Section {
	s := &listSection{id: id, items: items, selected: selected, maxVisible: 5}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *listSection) sel() int {
	if s.selected == nil {
		return -1
	}
	return *s.selected
}

func (s *listSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if len(s.items) == 0 {
		return RenderedSection{Content: styles.Muted.Render("(no items)")}
	}
	n := min(s.maxVisible, len(s.items))
	if sel := s.sel(); sel >= 0 {
		if sel < s.offset {
			s.offset = sel
		} else if sel >= s.offset+n {
			s.offset = sel - n + 1
		}
	}
	s.offset = min(max(s.offset, 0), len(s.items)-n)

	var rows []string
	if s.offset > 0 {
		rows = append(rows, styles.Muted.Render("↑ more above"))
	}
	top := len(rows)
	for i := s.offset; i < s.offset+n; i++ {
		rows = append(rows, s.renderItem(i, focusID == s.id, hoverID))
	}
	if s.offset+n < len(s.items) {
		rows = append(rows, styles.Muted.Render("↓ more below"))
	}

	return RenderedSection{
		Content: strings.Join(rows, "\n"),
		Focusables: []FocusableInfo{{
			ID:      s.id,
			OffsetY: top,
			Width:   contentWidth,
			Height:  n,
		}},
	}
}

func (s *listSection) renderItem(i int, focused bool, hoverID string) string {
	item := s.items[i]
	cursor := "  "
	style := styles.ListItemNormal
	switch {
	case i == s.sel():
		style = styles.ListItemFocused
		cursor = styles.ListCursor.Render("> ")
		if focused {
			cursor = styles.ListCursor.Render("▸ ")
		}
	case item.ID == hoverID:
		style = styles.ListItemSelected
	}
	return cursor + style.Render(item.Label)
}

func (s *listSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || focusID != s.id || s.selected == nil || len(s.items) == 0 {
		return "", nil
	}
	switch k.String() {
	case "up", "k":
		*s.selected = max(*s.selected-1, 0)
	case "down", "j":
		*s.selected = min(*s.selected+1, len(s.items)-1)
	case "home", "g":
		*s.selected = 0
	case "end", "G":
		*s.selected = len(s.items) - 1
	case "enter":
		if sel := *s.selected; sel >= 0 && sel < len(s.items) {
			return s.items[sel].ID, nil
		}
	}
	return "", nil
}
