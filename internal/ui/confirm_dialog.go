package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notepane/internal/modal"
	"github.com/marcus/notepane/internal/styles"
)

// Modal widths shared by the app and plugins.
const (
	ModalWidthSmall  = 40
	ModalWidthMedium = 50
	ModalWidthLarge  = 72
)

// ConfirmDialog is a reusable confirmation modal with interactive buttons.
type ConfirmDialog struct {
	Title        string
	Message      string
	Subtitle     string         // muted line under the message, e.g. a timestamp
	Quote        string         // quoted excerpt of the thing being confirmed
	ConfirmLabel string         // e.g., " Confirm ", " Delete ", " Yes "
	CancelLabel  string         // e.g., " Cancel ", " No "
	BorderColor  lipgloss.Color // Modal border color
	Width        int
}

// NewConfirmDialog creates a dialog with sensible defaults.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		BorderColor:  styles.Primary,
		Width:        ModalWidthMedium,
	}
}

// NewDeleteDialog creates a danger-styled dialog for removing something.
func NewDeleteDialog(title, message string) *ConfirmDialog {
	d := NewConfirmDialog(title, message)
	d.ConfirmLabel = " Delete "
	d.BorderColor = styles.Error
	return d
}

// ToModal adapts the dialog configuration into a modal.Modal instance.
func (d *ConfirmDialog) ToModal() *modal.Modal {
	variant := modal.VariantDefault
	switch d.BorderColor {
	case styles.Error:
		variant = modal.VariantDanger
	case styles.Warning:
		variant = modal.VariantWarning
	case styles.Info:
		variant = modal.VariantInfo
	}

	confirm := modal.Btn(d.ConfirmLabel, "confirm")
	if variant == modal.VariantDanger {
		confirm = modal.Btn(d.ConfirmLabel, "confirm", modal.BtnDanger())
	}

	m := modal.New(d.Title,
		modal.WithWidth(d.Width),
		modal.WithVariant(variant),
		modal.WithPrimaryAction("confirm"),
		modal.WithHints(false),
	).
		AddSection(modal.Text(d.Message))

	if d.Subtitle != "" {
		m.AddSection(modal.Text(styles.Muted.Render(d.Subtitle)))
	}
	if d.Quote != "" {
		m.AddSection(modal.Spacer()).
			AddSection(modal.Text(quoteStyle().Render(d.Quote)))
	}

	return m.
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			confirm,
			modal.Btn(d.CancelLabel, "cancel"),
		))
}

func quoteStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(styles.TextSubtle).
		PaddingLeft(1).
		Italic(true)
}
