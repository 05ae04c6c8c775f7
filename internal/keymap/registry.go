// Package keymap resolves key presses to command IDs per focus context.
package keymap

import (
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// GlobalContext holds bindings that apply in every context.
const GlobalContext = "global"

// Binding maps a key to a command within a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Command is an executable action a binding can point at.
type Command struct {
	ID      string
	Name    string
	Context string
	Handler func() tea.Cmd
}

// Registry stores bindings, commands, and user overrides.
type Registry struct {
	mu        sync.RWMutex
	bindings  map[string]map[string]string // context -> key -> command
	order     map[string][]string          // context -> keys in registration order
	commands  map[string]Command
	overrides map[string]string // key -> command
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:  make(map[string]map[string]string),
		order:     make(map[string][]string),
		commands:  make(map[string]Command),
		overrides: make(map[string]string),
	}
}

// RegisterBinding adds or replaces a binding.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctx := b.Context
	if ctx == "" {
		ctx = GlobalContext
	}
	keys, ok := r.bindings[ctx]
	if !ok {
		keys = make(map[string]string)
		r.bindings[ctx] = keys
	}
	if _, exists := keys[b.Key]; !exists {
		r.order[ctx] = append(r.order[ctx], b.Key)
	}
	keys[b.Key] = b.Command
}

// RegisterCommand registers a command so Handle can run it.
func (r *Registry) RegisterCommand(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[c.ID] = c
}

// GetCommand returns a registered command.
func (r *Registry) GetCommand(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[id]
	return c, ok
}

// SetUserOverride binds key to cmdID in every context where cmdID already
// has a default binding.
func (r *Registry) SetUserOverride(key, cmdID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[key] = cmdID
}

// ApplyOverrides installs a key -> command map, as read from config.
func (r *Registry) ApplyOverrides(overrides map[string]string) {
	for key, cmd := range overrides {
		r.SetUserOverride(key, cmd)
	}
}

// Lookup resolves key in ctx. Overrides win, then context bindings, then
// global bindings.
func (r *Registry) Lookup(key, ctx string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, ok := r.overrides[key]; ok && (r.boundIn(cmd, ctx) || r.boundIn(cmd, GlobalContext)) {
		return cmd, true
	}
	if cmd, ok := r.bindings[ctx][key]; ok {
		return cmd, true
	}
	if cmd, ok := r.bindings[GlobalContext][key]; ok {
		return cmd, true
	}
	return "", false
}

// boundIn reports whether cmd has any default binding in ctx.
func (r *Registry) boundIn(cmd, ctx string) bool {
	for _, c := range r.bindings[ctx] {
		if c == cmd {
			return true
		}
	}
	return false
}

// Handle resolves a key press and returns the command's handler result, or
// nil when nothing is bound or the command has no handler.
func (r *Registry) Handle(msg tea.KeyMsg, ctx string) tea.Cmd {
	id, ok := r.Lookup(msg.String(), ctx)
	if !ok {
		return nil
	}
	c, ok := r.GetCommand(id)
	if !ok || c.Handler == nil {
		return nil
	}
	return c.Handler()
}

// BindingsForContext returns the effective bindings of ctx, overrides
// included, in registration order.
func (r *Registry) BindingsForContext(ctx string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	for _, key := range r.order[ctx] {
		out = append(out, Binding{Key: key, Command: r.bindings[ctx][key], Context: ctx})
	}

	var extra []string
	for key, cmd := range r.overrides {
		if r.boundIn(cmd, ctx) {
			if _, shadowed := r.bindings[ctx][key]; !shadowed {
				extra = append(extra, key)
			}
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		out = append(out, Binding{Key: key, Command: r.overrides[key], Context: ctx})
	}

	// Overridden keys resolve to the override's command.
	for i, b := range out {
		if cmd, ok := r.overrides[b.Key]; ok && r.boundIn(cmd, ctx) {
			out[i].Command = cmd
		}
	}
	return out
}

// KeysFor returns the keys that trigger cmd in ctx.
func (r *Registry) KeysFor(cmd, ctx string) []string {
	var keys []string
	for _, b := range r.BindingsForContext(ctx) {
		if b.Command == cmd {
			keys = append(keys, b.Key)
		}
	}
	return keys
}
