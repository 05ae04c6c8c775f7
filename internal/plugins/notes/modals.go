package notes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notepane/internal/modal"
	notestore "github.com/marcus/notepane/internal/notes"
	"github.com/marcus/notepane/internal/styles"
	"github.com/marcus/notepane/internal/ui"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNewNote
	modalDelete
	modalExport
)

const newNoteInputHeight = 6

// openNewNoteModal shows the composer: a textarea with a live preview.
func (p *Plugin) openNewNoteModal() tea.Cmd {
	p.newNoteInput.Reset()
	p.newNoteInput.SetWidth(ui.ModalWidthLarge - modal.ModalPadding - 2)
	p.newNoteInput.SetHeight(newNoteInputHeight)

	p.modal = modal.New("New note",
		modal.WithWidth(ui.ModalWidthLarge),
		modal.WithPrimaryAction("save"),
		modal.WithCloseOnBackdropClick(false),
		modal.WithHints(false),
	).
		AddSection(modal.Textarea("body", "Markdown", &p.newNoteInput, newNoteInputHeight)).
		AddSection(modal.Spacer()).
		AddSection(modal.Custom(p.renderLivePreview, nil)).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Save ", "save"),
			modal.Btn(" Cancel ", "cancel"),
		))
	p.activeModal = modalNewNote
	return p.newNoteInput.Focus()
}

func (p *Plugin) renderLivePreview(contentWidth int, _, _ string) modal.RenderedSection {
	text := p.newNoteInput.Value()
	if text == "" {
		return modal.RenderedSection{Content: styles.Muted.Render("Preview appears here")}
	}
	rendered := p.term.RenderOrPlain(text, contentWidth)
	return modal.RenderedSection{Content: lipgloss.NewStyle().MaxHeight(8).Render(rendered)}
}

// requestDelete deletes the selected note, asking first when configured to.
func (p *Plugin) requestDelete() tea.Cmd {
	n := p.selectedNote()
	if n == nil {
		return nil
	}
	if p.ctx.Config != nil && !p.ctx.Config.Notes.ConfirmDelete {
		return p.deleteNote(n.ID)
	}

	d := ui.NewDeleteDialog("Delete note?", "This note will be removed permanently.")
	d.Subtitle = n.Date
	d.Quote = n.Excerpt(excerptLen)
	d.Width = ui.ModalWidthMedium + 10
	p.modal = d.ToModal()
	p.deleteTargetID = n.ID
	p.activeModal = modalDelete
	return nil
}

var exportFormats = []notestore.Format{notestore.FormatMarkdown, notestore.FormatHTML, notestore.FormatPDF}

func (p *Plugin) openExportModal() tea.Cmd {
	n := p.selectedNote()
	if n == nil {
		return nil
	}
	p.exportTarget = *n
	p.exportIdx = 0
	if p.ctx.Config != nil {
		for i, f := range exportFormats {
			if string(f) == p.ctx.Config.Notes.ExportFormat {
				p.exportIdx = i
			}
		}
	}

	items := make([]modal.ListItem, len(exportFormats))
	for i, f := range exportFormats {
		items[i] = modal.ListItem{ID: "format-" + string(f), Label: notestore.FileName(*n, f), Data: f}
	}
	dir := ""
	if p.ctx.Exporter != nil {
		dir = p.ctx.Exporter.Dir
	}

	p.modal = modal.New("Export note",
		modal.WithWidth(ui.ModalWidthMedium),
		modal.WithPrimaryAction("export"),
		modal.WithVariant(modal.VariantInfo),
	).
		AddSection(modal.Text(styles.Muted.Render(fmt.Sprintf("Into %s", dir)))).
		AddSection(modal.Spacer()).
		AddSection(modal.List("formats", items, &p.exportIdx)).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Export ", "export"),
			modal.Btn(" Cancel ", "cancel"),
		))
	p.activeModal = modalExport
	return nil
}

func (p *Plugin) closeModal() {
	p.activeModal = modalNone
	p.modal = nil
	p.deleteTargetID = 0
	p.newNoteInput.Blur()
	p.modalMouse.Clear()
}

func (p *Plugin) handleModalKey(k tea.KeyMsg) tea.Cmd {
	if p.modal == nil {
		p.closeModal()
		return nil
	}
	if p.activeModal == modalNewNote && p.lookup(k) == "save-note" {
		return p.modalAction("save")
	}
	action, cmd := p.modal.HandleKey(k)
	if action == "" {
		return cmd
	}
	return tea.Batch(cmd, p.modalAction(action))
}

func (p *Plugin) handleModalMouse(m tea.MouseMsg) tea.Cmd {
	if p.modal == nil {
		p.closeModal()
		return nil
	}
	action := p.modal.HandleMouse(m, p.modalMouse)
	if action == "" {
		return nil
	}
	return p.modalAction(action)
}

// modalAction runs a modal's button or list action.
func (p *Plugin) modalAction(action string) tea.Cmd {
	switch p.activeModal {
	case modalNewNote:
		switch action {
		case "save":
			text := p.newNoteInput.Value()
			p.closeModal()
			return p.createNote(text)
		case "cancel":
			p.closeModal()
		}

	case modalDelete:
		switch action {
		case "confirm":
			id := p.deleteTargetID
			p.closeModal()
			return p.deleteNote(id)
		case "cancel":
			p.closeModal()
		}

	case modalExport:
		switch {
		case action == "cancel":
			p.closeModal()
		case action == "export", strings.HasPrefix(action, "format-"):
			n := p.exportTarget
			f := exportFormats[p.exportIdx]
			p.closeModal()
			return p.exportNote(n, f)
		}
	}
	return nil
}

// renderModal draws the active modal over background.
func (p *Plugin) renderModal(background string) string {
	if p.modal == nil {
		return background
	}
	box := p.modal.Render(p.width, p.height, p.modalMouse)
	return ui.OverlayModal(background, box, p.width, p.height)
}
