package notes

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notepane/internal/mouse"
	"github.com/marcus/notepane/internal/reorder"
)

// Hit region IDs.
const (
	regionRow     = "note-row"
	regionList    = "list-pane"
	regionPreview = "preview-pane"
)

func (p *Plugin) isDragging() bool {
	return p.drag.State() == reorder.Dragging
}

// beginKeyboardDrag marks the selected row as the drag source.
func (p *Plugin) beginKeyboardDrag() {
	if p.selectedNote() == nil {
		return
	}
	if err := p.board.Begin(p.drag, p.cursor); err != nil {
		p.ctx.Logger.Debug("notes: begin drag", "error", err)
		return
	}
	p.dragID = p.selectedNote().ID
	p.dragOver = -1
}

// handleDragKey moves the drop target with the cursor, drops, or cancels.
func (p *Plugin) handleDragKey(cmdID string) tea.Cmd {
	switch cmdID {
	case "cursor-down":
		p.dragMoveTo(p.cursor + 1)
	case "cursor-up":
		p.dragMoveTo(p.cursor - 1)
	case "cursor-top":
		p.dragMoveTo(0)
	case "cursor-bottom":
		p.dragMoveTo(len(p.rows) - 1)
	case "drop-note":
		return p.dropOn(p.cursor)
	case "cancel-move":
		p.cancelDrag()
	}
	return nil
}

// dragMoveTo moves the cursor during a keyboard drag, leaving the old
// candidate row and entering the new one.
func (p *Plugin) dragMoveTo(row int) {
	if row < 0 || row >= len(p.rows) {
		return
	}
	p.hover(row)
	p.cursor = row
	p.ensureCursorVisible()
}

// hover updates which row is the drop candidate.
func (p *Plugin) hover(row int) {
	if row == p.dragOver {
		return
	}
	if p.dragOver >= 0 {
		p.drag.Leave(p.dragOver)
	}
	p.dragOver = -1
	if row >= 0 && p.drag.Enter(row) {
		p.dragOver = row
	}
}

// dropOn finishes the gesture on target. Dropping on the source row, or
// off the list, cancels.
func (p *Plugin) dropOn(target int) tea.Cmd {
	p.dragOver = -1
	if target < 0 || target >= len(p.rows) {
		p.cancelDrag()
		return nil
	}
	src, dst, ok := p.board.Drop(p.drag, target)
	p.dragID = 0
	if !ok {
		return nil
	}
	a, b := p.noteAt(src), p.noteAt(dst)
	if a == nil || b == nil {
		return nil
	}
	p.cursor = dst
	p.ensureCursorVisible()
	return p.swapNotes(a.ID, b.ID)
}

func (p *Plugin) cancelDrag() {
	p.dragOver = -1
	p.dragID = 0
	if err := p.drag.End(); err != nil {
		p.ctx.Logger.Debug("notes: cancel drag", "error", err)
	}
	p.mouseHandler.EndDrag()
}

// revalidateDrag runs after the rows are rebuilt. Rows are keyed by
// position, so a gesture whose source row now shows another note is
// cancelled rather than swapping the wrong pair.
func (p *Plugin) revalidateDrag() {
	if !p.isDragging() {
		return
	}
	src, _ := p.drag.Source()
	if n := p.noteAt(src); n == nil || n.ID != p.dragID {
		p.ctx.Logger.Debug("notes: rows changed under drag, cancelling", "source", src)
		p.cancelDrag()
		return
	}
	if p.dragOver >= len(p.rows) {
		p.hover(-1)
	}
}

// handleMouse handles mouse input outside modals. Coordinates are relative
// to the plugin's view.
func (p *Plugin) handleMouse(m tea.MouseMsg) tea.Cmd {
	action := p.mouseHandler.HandleMouse(m)
	switch action.Type {
	case mouse.ActionClick:
		cmd := p.handleClick(action)
		// A press on a row also starts a drag gesture; releasing on the
		// same row cancels it.
		if row, ok := rowOf(action.Region); ok && !p.editing && !p.isDragging() {
			p.startMouseDrag(row)
		}
		return cmd

	case mouse.ActionDoubleClick:
		return p.handleClick(action)

	case mouse.ActionDrag:
		if row, ok := rowOf(action.Region); ok {
			p.hover(row)
		} else {
			p.hover(-1)
		}

	case mouse.ActionDragEnd:
		if !p.isDragging() {
			return nil
		}
		row, ok := rowOf(action.Region)
		if !ok {
			p.cancelDrag()
			return nil
		}
		return p.dropOn(row)

	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		if action.Region == nil {
			return nil
		}
		if action.Region.ID == regionPreview {
			if action.Delta < 0 {
				p.preview.ScrollUp(-action.Delta)
			} else {
				p.preview.ScrollDown(action.Delta)
			}
			return nil
		}
		if action.Delta < 0 {
			p.moveCursor(-1)
		} else {
			p.moveCursor(1)
		}
	}
	return nil
}

func (p *Plugin) startMouseDrag(row int) {
	n := p.noteAt(row)
	if n == nil {
		return
	}
	if err := p.board.Begin(p.drag, row); err != nil {
		return
	}
	p.mouseHandler.StartDrag(regionRow, row)
	p.dragID = n.ID
	p.dragOver = -1
}

func (p *Plugin) handleClick(action mouse.MouseAction) tea.Cmd {
	if action.Region == nil {
		return nil
	}
	switch action.Region.ID {
	case regionRow:
		row, _ := rowOf(action.Region)
		if p.editing {
			// Clicking away from the editor saves it.
			cmd := p.finishEditing()
			p.activePane = PaneList
			p.moveCursorTo(row)
			return cmd
		}
		p.activePane = PaneList
		p.moveCursorTo(row)
		if action.Type == mouse.ActionDoubleClick {
			return p.startEditing()
		}
	case regionList:
		if p.editing {
			p.activePane = PaneList
			return p.finishEditing()
		}
		p.activePane = PaneList
	case regionPreview:
		if p.selectedNote() != nil {
			p.activePane = PanePreview
		}
	}
	return nil
}

func rowOf(r *mouse.Region) (int, bool) {
	if r == nil || r.ID != regionRow {
		return 0, false
	}
	row, ok := r.Data.(int)
	return row, ok
}
