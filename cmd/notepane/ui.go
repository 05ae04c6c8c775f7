package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/notepane/internal/app"
	"github.com/marcus/notepane/internal/config"
	"github.com/marcus/notepane/internal/keymap"
	"github.com/marcus/notepane/internal/plugin"
	notesplugin "github.com/marcus/notepane/internal/plugins/notes"
	"github.com/marcus/notepane/internal/state"
	"github.com/marcus/notepane/internal/theme"
)

func newUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Run the notes panel (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(opts)
		},
	}
}

func runUI(opts *options) error {
	logFile, logPath := openLogFile()
	defer logFile.Close()

	// State is optional; a broken file just means defaults.
	stateErr := state.Init()

	e, err := opts.open(logFile, state.GetPreviewStyle())
	if err != nil {
		return err
	}
	defer e.Close()
	if stateErr != nil {
		e.logger.Warn("ui state not loaded", "error", stateErr)
	}
	e.logger.Debug("starting ui", "backend", e.cfg.Storage.Backend, "store", e.storePath, "log", logPath)

	theme.ApplyResolved(e.theme)

	pluginCtx := &plugin.Context{
		ConfigDir: config.ConfigDir(),
		Config:    e.cfg,
		Logger:    e.logger,
		Store:     e.store,
		StorePath: e.storePath,
		HTML:      e.html,
		Exporter:  e.exporter,
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	km.ApplyOverrides(e.cfg.Keymap.Overrides)
	pluginCtx.Keymap = km

	registry := plugin.NewRegistry(pluginCtx)
	if err := registry.Register(notesplugin.New()); err != nil {
		return err
	}
	if err, ok := registry.Failures()["notes"]; ok {
		return fmt.Errorf("notes panel: %w", err)
	}
	defer registry.Stop()

	model := app.New(registry, km, e.cfg, effectiveVersion(Version))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
