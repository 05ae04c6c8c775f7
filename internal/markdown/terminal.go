package markdown

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"
)

const (
	defaultWidth = 80
	maxCached    = 256
)

// Preview styles accepted by NewTerminal.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

type cacheKey struct {
	hash  uint64
	width int
}

// Terminal renders Markdown for display in the panel. Renderers are built
// per width and results are cached by content hash.
type Terminal struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
	cache     map[cacheKey]string
}

// NewTerminal returns a renderer using the given glamour style name.
func NewTerminal(style string) *Terminal {
	if style == "" {
		style = StyleDark
	}
	return &Terminal{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
		cache:     make(map[cacheKey]string),
	}
}

// Render returns markdown styled and wrapped to width.
func (t *Terminal) Render(markdown string, width int) (string, error) {
	if width <= 0 {
		width = defaultWidth
	}
	key := cacheKey{hash: xxhash.Sum64String(markdown), width: width}

	t.mu.Lock()
	defer t.mu.Unlock()

	if out, ok := t.cache[key]; ok {
		return out, nil
	}

	r, err := t.renderer(width)
	if err != nil {
		return "", err
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	out = strings.Trim(out, "\n")

	if len(t.cache) >= maxCached {
		clear(t.cache)
	}
	t.cache[key] = out
	return out, nil
}

// RenderOrPlain renders markdown, falling back to the raw text on error.
func (t *Terminal) RenderOrPlain(markdown string, width int) string {
	out, err := t.Render(markdown, width)
	if err != nil {
		return markdown
	}
	return out
}

// Invalidate drops cached output.
func (t *Terminal) Invalidate() {
	t.mu.Lock()
	clear(t.cache)
	t.mu.Unlock()
}

func (t *Terminal) renderer(width int) (*glamour.TermRenderer, error) {
	if r, ok := t.renderers[width]; ok {
		return r, nil
	}

	styleOpt := glamour.WithStandardStyle(t.style)
	if t.style == StyleAuto {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	t.renderers[width] = r
	return r, nil
}

func (t *Terminal) cached() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.cache)
}
