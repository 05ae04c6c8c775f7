package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/marcus/notepane/internal/config"
	"github.com/marcus/notepane/internal/notes"
)

// errNothingRemoved makes rm exit non-zero without an extra error line.
var errNothingRemoved = errors.New("nothing removed")

const listTitleWidth = 60

// withEnv opens the store for a CLI command, logging to stderr.
func withEnv(opts *options, cmd *cobra.Command, fn func(*env) error) error {
	e, err := opts.open(cmd.ErrOrStderr(), "")
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add [text...]",
		Short: "Add a note; reads stdin when no text is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = strings.TrimRight(string(data), "\n")
			}
			return withEnv(opts, cmd, func(e *env) error {
				n, err := e.store.Create(text, e.html.MustRender(text))
				if err != nil {
					return err
				}
				if n == nil {
					return errors.New("note is empty")
				}
				fmt.Fprintln(cmd.OutOrStdout(), n.ID)
				return nil
			})
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, cmd, func(e *env) error {
				list := e.store.List()
				if limit > 0 && len(list) > limit {
					list = list[:limit]
				}
				w := cmd.OutOrStdout()
				for _, n := range list {
					fmt.Fprintln(w, formatListRow(n))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most N notes")
	return cmd
}

var (
	idColor   = color.New(color.FgCyan).SprintFunc()
	dateColor = color.New(color.Faint).SprintFunc()
)

// formatListRow renders "id  date  title" with the title cut to fit.
func formatListRow(n notes.Note) string {
	title := n.Title()
	if title == "" {
		title = "(empty)"
	}
	return fmt.Sprintf("%s  %s  %s",
		idColor(n.ID),
		dateColor(n.Date),
		runewidth.Truncate(title, listTitleWidth, "…"))
}

func newShowCmd(opts *options) *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withEnv(opts, cmd, func(e *env) error {
				n, ok := e.store.Get(id)
				if !ok {
					return fmt.Errorf("no note with id %d", id)
				}
				out := n.Text
				if asHTML {
					out = n.HTML
					if out == "" {
						if out, err = e.html.Render(n.Text); err != nil {
							return fmt.Errorf("render note: %w", err)
						}
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "print the rendered HTML")
	return cmd
}

func newEditCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace a note's text; prints the new id",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			return withEnv(opts, cmd, func(e *env) error {
				if _, ok := e.store.Get(id); !ok {
					return fmt.Errorf("no note with id %d", id)
				}
				n, err := e.store.Update(id, text, e.html.MustRender(text))
				if err != nil {
					return err
				}
				if n == nil {
					// Unchanged text keeps the id.
					fmt.Fprintln(cmd.OutOrStdout(), id)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), n.ID)
				return nil
			})
		},
	}
}

func newRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withEnv(opts, cmd, func(e *env) error {
				removed, err := e.store.Delete(id)
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintf(cmd.ErrOrStderr(), "no note with id %d\n", id)
					return errNothingRemoved
				}
				return nil
			})
		},
	}
}

func newSwapCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <idA> <idB>",
		Short: "Swap the positions of two notes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, err := parseID(args[1])
			if err != nil {
				return err
			}
			return withEnv(opts, cmd, func(e *env) error {
				swapped, err := e.store.Swap(a, b)
				if err != nil {
					return err
				}
				if !swapped {
					return fmt.Errorf("cannot swap %d and %d", a, b)
				}
				return nil
			})
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var format, dir string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a note to a Markdown, HTML or PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withEnv(opts, cmd, func(e *env) error {
				n, ok := e.store.Get(id)
				if !ok {
					return fmt.Errorf("no note with id %d", id)
				}
				name := format
				if name == "" {
					name = e.cfg.Notes.ExportFormat
				}
				f, err := notes.ParseFormat(name)
				if err != nil {
					return err
				}
				if dir != "" {
					e.exporter.Dir = config.ExpandPath(dir)
				}
				path, err := e.exporter.Export(n, f)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "md, html or pdf (default from config)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "output directory (default from config)")
	return cmd
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file...>",
		Short: "Add notes from Markdown files, such as ones written by export",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts, cmd, func(e *env) error {
				for _, path := range args {
					data, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("read %s: %w", path, err)
					}
					parsed, err := notes.ParseMarkdownDocument(data)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					n, err := e.store.Create(parsed.Text, e.html.MustRender(parsed.Text))
					if err != nil {
						return err
					}
					if n == nil {
						e.logger.Warn("import: skipped empty note", "path", path)
						continue
					}
					fmt.Fprintln(cmd.OutOrStdout(), n.ID)
				}
				return nil
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "notepane version %s\n", effectiveVersion(Version))
		},
	}
}
