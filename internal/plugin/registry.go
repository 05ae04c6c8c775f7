package plugin

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Registry owns the set of plugins and their lifecycle.
type Registry struct {
	mu       sync.RWMutex
	ctx      *Context
	plugins  []Plugin
	started  bool
	failures map[string]error
}

// NewRegistry creates a registry bound to ctx.
func NewRegistry(ctx *Context) *Registry {
	return &Registry{ctx: ctx, failures: make(map[string]error)}
}

// Register initializes p and adds it. A plugin whose Init fails is recorded
// and skipped rather than aborting startup.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.ID() == p.ID() {
			return fmt.Errorf("plugin %q already registered", p.ID())
		}
	}
	if err := p.Init(r.ctx); err != nil {
		r.failures[p.ID()] = err
		if r.ctx != nil && r.ctx.Logger != nil {
			r.ctx.Logger.Warn("plugin init failed", "plugin", p.ID(), "err", err)
		}
		return nil
	}
	r.plugins = append(r.plugins, p)
	return nil
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// Get returns the plugin with id.
func (r *Registry) Get(id string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.plugins {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

// Replace swaps in an updated plugin value after Update.
func (r *Registry) Replace(p Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.plugins {
		if existing.ID() == p.ID() {
			r.plugins[i] = p
			return
		}
	}
}

// Failures returns plugins that failed to initialize.
func (r *Registry) Failures() map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]error, len(r.failures))
	for k, v := range r.failures {
		out[k] = v
	}
	return out
}

// Context returns the shared plugin context.
func (r *Registry) Context() *Context { return r.ctx }

// Start returns the start commands of every plugin.
func (r *Registry) Start() []tea.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmds := make([]tea.Cmd, 0, len(r.plugins))
	for _, p := range r.plugins {
		cmds = append(cmds, p.Start())
	}
	r.started = true
	return cmds
}

// Stop stops every plugin once.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return
	}
	for _, p := range r.plugins {
		p.Stop()
	}
	r.started = false
}
