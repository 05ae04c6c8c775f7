package app

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/notepane/internal/config"
	"github.com/marcus/notepane/internal/keymap"
	"github.com/marcus/notepane/internal/msg"
	"github.com/marcus/notepane/internal/plugin"
	"github.com/marcus/notepane/internal/styles"
)

type fakePlugin struct {
	context string
	typing  bool
	focused bool
	stopped bool
	got     []tea.Msg
}

func (f *fakePlugin) ID() string { return "notes" }
func (f *fakePlugin) Name() string { return "Notes" }
func (f *fakePlugin) Icon() string { return "N" }
func (f *fakePlugin) Init(*plugin.Context) error { return nil }
func (f *fakePlugin) Start() tea.Cmd { return nil }
func (f *fakePlugin) Stop() { f.stopped = true }
func (f *fakePlugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	f.got = append(f.got, m)
	return f, nil
}
func (f *fakePlugin) View(w, h int) string { return "content" }
func (f *fakePlugin) IsFocused() bool { return f.focused }
func (f *fakePlugin) SetFocused(b bool) { f.focused = b }
func (f *fakePlugin) FocusContext() string { return f.context }
func (f *fakePlugin) ConsumesTextInput() bool { return f.typing }
func (f *fakePlugin) Status() string { return "3 notes" }
func (f *fakePlugin) Commands() []plugin.Command {
	return []plugin.Command{
		{ID: "new-note", Name: "New", Context: keymap.ContextNotesList, Priority: 1},
		{ID: "delete-note", Name: "Delete", Description: "Remove the note", Context: keymap.ContextNotesList, Priority: 3},
	}
}

func (f *fakePlugin) last() tea.Msg {
	if len(f.got) == 0 {
		return nil
	}
	return f.got[len(f.got)-1]
}

func newTestModel(t *testing.T) (Model, *fakePlugin) {
	t.Helper()
	fp := &fakePlugin{context: keymap.ContextNotesList}
	reg := plugin.NewRegistry(&plugin.Context{})
	require.NoError(t, reg.Register(fp))
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)

	m := New(reg, km, config.Default(), "v1.2.3")
	m.Init()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), fp
}

func press(m Model, s string) (Model, tea.Cmd) {
	var k tea.KeyMsg
	switch s {
	case "esc":
		k = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		k = tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		k = tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+h":
		k = tea.KeyMsg{Type: tea.KeyCtrlH}
	case "ctrl+t":
		k = tea.KeyMsg{Type: tea.KeyCtrlT}
	default:
		k = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func TestWindowSize_PluginGetsContentArea(t *testing.T) {
	m, fp := newTestModel(t)

	assert.Equal(t, tea.WindowSizeMsg{Width: 100, Height: 27}, fp.last())
	assert.True(t, fp.focused)

	m, _ = press(m, "ctrl+h")
	assert.False(t, m.showFooter)
	assert.Equal(t, tea.WindowSizeMsg{Width: 100, Height: 28}, fp.last())
}

func TestQuit_ConfirmStopsPlugins(t *testing.T) {
	m, fp := newTestModel(t)

	m, _ = press(m, "q")
	require.Equal(t, ModalQuitConfirm, m.activeModal())
	assert.Contains(t, m.View(), "Quit notepane?")

	m, cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, fp.stopped)
	assert.Equal(t, ModalNone, m.activeModal())
}

func TestQuit_CancelKeepsRunning(t *testing.T) {
	m, fp := newTestModel(t)

	m, _ = press(m, "q")
	m.View()
	m, _ = press(m, "esc")
	assert.Equal(t, ModalNone, m.activeModal())

	m, _ = press(m, "q")
	m, cmd := press(m, "n")
	assert.Nil(t, cmd)
	assert.Equal(t, ModalNone, m.activeModal())
	assert.False(t, fp.stopped)
}

func TestQuit_OnlyFromRootContexts(t *testing.T) {
	m, fp := newTestModel(t)
	fp.context = keymap.ContextNotesDrag
	m.updateContext()

	m, _ = press(m, "q")

	assert.Equal(t, ModalNone, m.activeModal())
	assert.Equal(t, "q", fp.last().(tea.KeyMsg).String())
}

func TestTextInput_KeysReachPlugin(t *testing.T) {
	m, fp := newTestModel(t)
	fp.typing = true

	m, _ = press(m, "q")
	assert.Equal(t, ModalNone, m.activeModal())
	assert.Equal(t, "q", fp.last().(tea.KeyMsg).String())

	m, _ = press(m, "?")
	assert.False(t, m.showHelp)

	m, _ = press(m, "ctrl+c")
	assert.Equal(t, ModalQuitConfirm, m.activeModal())
}

func TestHelp_ListsContextBindings(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, "?")
	require.True(t, m.showHelp)
	view := m.View()
	assert.Contains(t, view, "Keyboard shortcuts")
	assert.Contains(t, view, "new note")
	assert.Contains(t, view, "Remove the note", "plugin descriptions replace command ids")
	assert.Contains(t, view, "v1.2.3")

	m, _ = press(m, "esc")
	assert.False(t, m.showHelp)
}

func TestToggleTheme_AppliesAndSaves(t *testing.T) {
	orig := saveTheme
	defer func() { saveTheme = orig }()
	var saved string
	saveTheme = func(name string) error {
		saved = name
		return nil
	}
	styles.ApplyTheme("default")
	defer styles.ApplyTheme("default")

	m, _ := newTestModel(t)
	m, cmd := press(m, "ctrl+t")

	require.NotNil(t, cmd)
	assert.Equal(t, "dracula", styles.GetCurrentThemeName())
	assert.Equal(t, "dracula", saved)
	assert.Equal(t, "dracula", m.cfg.UI.Theme.Name)
}

func TestToggleTheme_SaveErrorIsReported(t *testing.T) {
	orig := saveTheme
	defer func() { saveTheme = orig }()
	saveTheme = func(string) error { return errors.New("read-only") }
	defer styles.ApplyTheme("default")

	m, _ := newTestModel(t)
	_, cmd := press(m, "ctrl+t")

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var toasts []msg.ToastMsg
	for _, c := range batch {
		if toast, ok := c().(msg.ToastMsg); ok {
			toasts = append(toasts, toast)
		}
	}
	require.Len(t, toasts, 2)
	assert.True(t, toasts[1].IsError)
	assert.Contains(t, toasts[1].Message, "read-only")
}

func TestToast_ShowsThenExpires(t *testing.T) {
	m, _ := newTestModel(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.now = func() time.Time { return now }

	next, _ := m.Update(msg.ToastMsg{Message: "Saved", Duration: time.Second})
	m = next.(Model)
	assert.Contains(t, m.renderFooter(), "Saved")

	now = now.Add(2 * time.Second)
	next, _ = m.Update(TickMsg(now))
	m = next.(Model)
	assert.Empty(t, m.statusMsg)
}

func TestMouse_TranslatedIntoContent(t *testing.T) {
	m, fp := newTestModel(t)

	next, _ := m.Update(tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	got, ok := fp.last().(tea.MouseMsg)
	require.True(t, ok)
	assert.Equal(t, 4, got.Y)

	fp.got = nil
	m.Update(tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Empty(t, fp.got, "header clicks stay in the app")
}

func TestOtherMessages_ReachPlugins(t *testing.T) {
	m, fp := newTestModel(t)

	m.Update(msg.RefreshMsg{})

	assert.Equal(t, msg.RefreshMsg{}, fp.last())
}

func TestView_HeaderAndFooter(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "notepane")
	assert.Contains(t, view, "3 notes")
	assert.Contains(t, view, "content")
	assert.Contains(t, view, "New")
	assert.Contains(t, view, "quit")
}

func TestView_TooSmall(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})

	assert.Contains(t, next.(Model).View(), "Terminal too small")
}
