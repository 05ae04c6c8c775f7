package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastMsg displays a temporary message.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	IsError  bool // true for error toasts (red), false for success (green)
}

// ShowToast returns a command to show a toast message.
func ShowToast(message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  message,
			Duration: duration,
		}
	}
}

// ShowError returns a command that shows err as an error toast.
func ShowError(prefix string, err error) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  prefix + ": " + err.Error(),
			Duration: 5 * time.Second,
			IsError:  true,
		}
	}
}

// RefreshMsg asks the active plugin to reload its data.
type RefreshMsg struct{}

// Refresh returns a command that emits RefreshMsg.
func Refresh() tea.Cmd {
	return func() tea.Msg { return RefreshMsg{} }
}

// ThemeChangedMsg is broadcast after the color theme changes.
type ThemeChangedMsg struct {
	Name string
}
