package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marcus/notepane/internal/config"
	"github.com/marcus/notepane/internal/kv"
	"github.com/marcus/notepane/internal/markdown"
	"github.com/marcus/notepane/internal/notes"
	"github.com/marcus/notepane/internal/theme"
)

// options holds the persistent flags.
type options struct {
	configPath string
	debug      bool
	ephemeral  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "notepane",
		Short: "A Markdown notes panel for the terminal",
		Long: `notepane keeps a newest-first list of Markdown notes.
Run it without arguments for the panel, or use the subcommands to script
the same store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "keep notes in memory only")

	root.AddCommand(
		newUICmd(opts),
		newAddCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newEditCmd(opts),
		newRmCmd(opts),
		newSwapCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newVersionCmd(),
	)
	return root
}

// env is everything a command needs to work with the store.
type env struct {
	cfg       *config.Config
	logger    *slog.Logger
	storage   kv.Storage
	storePath string
	store     *notes.Store
	html      *markdown.HTML
	exporter  *notes.Exporter
	theme     theme.ResolvedTheme
}

func (o *options) logLevel() slog.Level {
	if o.debug {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// open loads config and opens the store. Logs go to logOut.
func (o *options) open(logOut io.Writer, savedPreviewStyle string) (*env, error) {
	cfg, err := config.LoadFrom(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.ephemeral {
		cfg.Storage.Backend = kv.BackendMemory
	}

	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: o.logLevel()}))

	path := cfg.Storage.StoragePath()
	storage, err := kv.Open(cfg.Storage.Backend, cfg.Storage.Driver, path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	store := notes.NewStore(storage,
		notes.WithNamespace(cfg.Storage.Namespace),
		notes.WithDateFormat(cfg.Notes.DateFormat),
		notes.WithLogger(logger),
	)
	store.Load()

	resolved := theme.ResolveTheme(cfg, savedPreviewStyle)
	html := markdown.NewHTML(resolved.CodeTheme)

	e := &env{
		cfg:     cfg,
		logger:  logger,
		storage: storage,
		store:   store,
		html:    html,
		exporter: &notes.Exporter{
			Dir:      config.ExpandPath(cfg.Notes.ExportDir),
			Renderer: html,
		},
		theme: resolved,
	}
	if cfg.Storage.Backend != kv.BackendMemory {
		e.storePath = path
	}
	return e, nil
}

func (e *env) Close() error {
	return e.storage.Close()
}

// openLogFile returns the TUI log file under the config dir, falling back
// to discarding output when it cannot be created.
func openLogFile() (io.WriteCloser, string) {
	dir := config.ConfigDir()
	if dir == "" {
		return nopCloser{io.Discard}, ""
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nopCloser{io.Discard}, ""
	}
	path := filepath.Join(dir, "notepane.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nopCloser{io.Discard}, ""
	}
	return f, path
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
