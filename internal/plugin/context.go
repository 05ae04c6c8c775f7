package plugin

import (
	"log/slog"

	"github.com/marcus/notepane/internal/config"
	"github.com/marcus/notepane/internal/keymap"
	"github.com/marcus/notepane/internal/markdown"
	"github.com/marcus/notepane/internal/notes"
)

// Context carries shared dependencies into plugins.
type Context struct {
	WorkDir   string
	ConfigDir string
	Config    *config.Config
	Logger    *slog.Logger
	Keymap    *keymap.Registry

	Store     *notes.Store
	StorePath string // file watched for external changes, "" to disable
	HTML      *markdown.HTML
	Exporter  *notes.Exporter

	// Epoch increments whenever shared state is replaced wholesale, so
	// in-flight async results can be discarded.
	Epoch uint64
}

// BumpEpoch invalidates all in-flight async messages.
func (c *Context) BumpEpoch() uint64 {
	c.Epoch++
	return c.Epoch
}
