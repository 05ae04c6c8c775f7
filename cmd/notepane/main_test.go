package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t      *testing.T
	config string
	dir    string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	cfg := map[string]any{
		"storage": map[string]any{"backend": "file", "path": filepath.Join(dir, "storage.json")},
		"notes":   map[string]any{"exportDir": filepath.Join(dir, "out")},
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return &cli{t: t, config: path, dir: dir}
}

// run executes one command and returns stdout.
func (c *cli) run(stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", c.config}, args...))
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	require.NoError(c.t, err, "notepane %v", args)
	return out
}

func TestAddListShow(t *testing.T) {
	c := newCLI(t)

	first := c.mustRun("add", "first", "note")
	second := c.mustRun("add", "# Second")
	require.NotEqual(t, first, second)

	lines := strings.Split(c.mustRun("list"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], second))
	assert.Contains(t, lines[0], "# Second")
	assert.Contains(t, lines[1], "first note")

	assert.Len(t, strings.Split(c.mustRun("list", "--limit", "1"), "\n"), 1)
	assert.Equal(t, "first note", c.mustRun("show", first))
	assert.Contains(t, c.mustRun("show", second, "--html"), "<h1")
}

func TestAdd_ReadsStdin(t *testing.T) {
	c := newCLI(t)

	id, err := c.run("from stdin\n", "add")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", c.mustRun("show", id))
}

func TestAdd_BlankFails(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "add", "   ")
	assert.EqualError(t, err, "note is empty")
}

func TestEdit_IssuesNewID(t *testing.T) {
	c := newCLI(t)
	id := c.mustRun("add", "draft")

	newID := c.mustRun("edit", id, "final")
	assert.NotEqual(t, id, newID)
	assert.Equal(t, "final", c.mustRun("show", newID))

	_, err := c.run("", "show", id)
	assert.Error(t, err)

	assert.Equal(t, newID, c.mustRun("edit", newID, "final"), "unchanged text keeps the id")
}

func TestRm_MissingIsError(t *testing.T) {
	c := newCLI(t)
	id := c.mustRun("add", "bye")

	c.mustRun("rm", id)
	assert.Empty(t, c.mustRun("list"))

	_, err := c.run("", "rm", id)
	assert.ErrorIs(t, err, errNothingRemoved)
}

func TestSwap(t *testing.T) {
	c := newCLI(t)
	a := c.mustRun("add", "a")
	b := c.mustRun("add", "b")

	c.mustRun("swap", a, b)

	lines := strings.Split(c.mustRun("list"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], a))

	_, err := c.run("", "swap", a, a)
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	c := newCLI(t)
	id := c.mustRun("add", "export me")

	path := c.mustRun("export", id, "--format", "html")
	assert.Equal(t, filepath.Join(c.dir, "out", "note-"+id+".html"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "export me")

	other := filepath.Join(c.dir, "elsewhere")
	path = c.mustRun("export", id, "--dir", other)
	assert.Equal(t, filepath.Join(other, "note-"+id+".md"), path)

	_, err = c.run("", "export", id, "--format", "docx")
	assert.Error(t, err)
}

func TestImport_RestoresExportedNote(t *testing.T) {
	c := newCLI(t)
	id, err := c.run("# Groceries\n\n- milk\n", "add")
	require.NoError(t, err)

	path := c.mustRun("export", id, "--format", "md")
	c.mustRun("rm", id)

	newID := c.mustRun("import", path)
	assert.NotEqual(t, id, newID)
	assert.Equal(t, "# Groceries\n\n- milk", c.mustRun("show", newID))
	assert.Contains(t, c.mustRun("show", newID, "--html"), "<h1")
}

func TestImport_PlainFileAndErrors(t *testing.T) {
	c := newCLI(t)
	plain := filepath.Join(c.dir, "plain.md")
	require.NoError(t, os.WriteFile(plain, []byte("just text"), 0644))
	blank := filepath.Join(c.dir, "blank.md")
	require.NoError(t, os.WriteFile(blank, []byte("  \n"), 0644))

	out := c.mustRun("import", plain, blank)
	ids := strings.Fields(out)
	require.Len(t, ids, 1, "blank files are skipped")
	assert.Equal(t, "just text", c.mustRun("show", ids[0]))

	_, err := c.run("", "import", filepath.Join(c.dir, "missing.md"))
	assert.Error(t, err)

	broken := filepath.Join(c.dir, "broken.md")
	require.NoError(t, os.WriteFile(broken, []byte("---\nid: 1\n"), 0644))
	_, err = c.run("", "import", broken)
	assert.ErrorContains(t, err, "unterminated front matter")
}

func TestEphemeral_DoesNotPersist(t *testing.T) {
	c := newCLI(t)

	id := c.mustRun("--ephemeral", "add", "gone")
	_, err := strconv.ParseInt(id, 10, 64)
	require.NoError(t, err)

	assert.Empty(t, c.mustRun("list"))
	_, err = os.Stat(filepath.Join(c.dir, "storage.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestInvalidID(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "show", "abc")
	assert.EqualError(t, err, `invalid note id "abc"`)
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	orig := Version
	Version = "v9.9.9"
	defer func() { Version = orig }()

	assert.Equal(t, "notepane version v9.9.9", c.mustRun("version"))
}
