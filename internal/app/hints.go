package app

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notepane/internal/keymap"
	"github.com/marcus/notepane/internal/styles"
)

// defaultHintPriority places commands without a priority after the rest.
const defaultHintPriority = 99

type footerHint struct {
	keys  string
	label string
}

func (h footerHint) render() string {
	return styles.KeyHint.Render(h.keys) + " " + h.label
}

// footerHints returns the focused context's commands, by priority, followed
// by help and quit.
func (m Model) footerHints() []footerHint {
	hints := m.contextHints(m.activeContext)

	global := keysByCommand(m.keymap.BindingsForContext(keymap.GlobalContext))
	for _, g := range []struct{ cmd, label string }{{"toggle-help", "help"}, {"quit", "quit"}} {
		if keys := global[g.cmd]; len(keys) > 0 {
			hints = append(hints, footerHint{keys: keys[0], label: g.label})
		}
	}
	return hints
}

func (m Model) contextHints(context string) []footerHint {
	p := m.ActivePlugin()
	if p == nil || context == "" || context == keymap.GlobalContext {
		return nil
	}

	type ranked struct {
		hint     footerHint
		priority int
	}
	var list []ranked
	for _, c := range p.Commands() {
		if c.Context != context {
			continue
		}
		keys := m.keymap.KeysFor(c.ID, context)
		if len(keys) == 0 {
			continue
		}
		prio := c.Priority
		if prio == 0 {
			prio = defaultHintPriority
		}
		list = append(list, ranked{footerHint{keys: joinKeys(keys), label: c.Name}, prio})
	}
	slices.SortStableFunc(list, func(a, b ranked) int { return a.priority - b.priority })

	hints := make([]footerHint, len(list))
	for i, r := range list {
		hints[i] = r.hint
	}
	return hints
}

// fitHints joins hints left to right and drops the ones that would overflow
// width.
func fitHints(hints []footerHint, width int) string {
	line := ""
	for _, h := range hints {
		if h.keys == "" || h.label == "" {
			continue
		}
		next := h.render()
		if line != "" {
			next = line + "  " + next
		}
		if lipgloss.Width(next) > width {
			break
		}
		line = next
	}
	return line
}

func keysByCommand(bindings []keymap.Binding) map[string][]string {
	out := make(map[string][]string, len(bindings))
	for _, b := range bindings {
		out[b.Command] = append(out[b.Command], b.Key)
	}
	return out
}

// helpText lists every bound command, focused context first.
func (m Model) helpText() string {
	var sections []string
	if p := m.ActivePlugin(); p != nil {
		if ctx := p.FocusContext(); ctx != "" && ctx != keymap.GlobalContext {
			sections = append(sections, m.helpSection(p.Name(), ctx))
		}
	}
	sections = append(sections, m.helpSection("Global", keymap.GlobalContext))
	return strings.Join(sections, "\n\n")
}

func (m Model) helpSection(title, context string) string {
	bindings := m.keymap.BindingsForContext(context)
	keys := keysByCommand(bindings)
	described := m.commandDescriptions()

	lines := []string{styles.Title.Render(title)}
	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		if seen[b.Command] {
			continue
		}
		seen[b.Command] = true
		label, ok := described[b.Command]
		if !ok {
			label = strings.ReplaceAll(b.Command, "-", " ")
		}
		lines = append(lines, fmt.Sprintf("  %s %s", styles.Muted.Render(fmt.Sprintf("%-11s", joinKeys(keys[b.Command]))), label))
	}
	return strings.Join(lines, "\n")
}

// commandDescriptions maps the active plugin's command IDs to help text.
func (m Model) commandDescriptions() map[string]string {
	out := make(map[string]string)
	p := m.ActivePlugin()
	if p == nil {
		return out
	}
	for _, c := range p.Commands() {
		if c.Description != "" {
			out[c.ID] = c.Description
		}
	}
	return out
}

// joinKeys shows at most two keys.
func joinKeys(keys []string) string {
	return strings.Join(keys[:min(len(keys), 2)], ", ")
}
