// Package mouse maps terminal mouse events onto named screen regions.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	doubleClickWindow = 400 * time.Millisecond
	scrollStep        = 3
)

// Rect is a screen rectangle. The right and bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named clickable area with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions in paint order. Later regions sit on top.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty HitMap.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region.
func (h *HitMap) Add(id string, r Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect registers a region from coordinates.
func (h *HitMap) AddRect(id string, x, y, w, hgt int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: hgt}, data)
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Regions returns a copy of all regions.
func (h *HitMap) Regions() []Region {
	out := make([]Region, len(h.regions))
	copy(out, h.regions)
	return out
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// ActionType classifies a handled mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionScrollUp
	ActionScrollDown
	ActionDrag
	ActionDragEnd
	ActionHover
)

// MouseAction is the result of HandleMouse.
type MouseAction struct {
	Type   ActionType
	Region *Region
	X, Y   int
	Delta  int // scroll lines, negative is up
}

// ClickResult is the result of HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler turns raw mouse messages into actions and tracks drags.
type Handler struct {
	HitMap *HitMap

	lastClickRegion string
	lastClickTime   time.Time

	dragging  bool
	dragFrom  string
	dragValue int
}

// NewHandler returns a Handler with an empty HitMap.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// Clear drops all regions. Call before rebuilding them for a new frame.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleClick resolves a click at (x, y) and detects double clicks on the
// same region.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	if region == nil {
		h.lastClickRegion = ""
		return ClickResult{}
	}

	now := time.Now()
	double := region.ID == h.lastClickRegion && now.Sub(h.lastClickTime) <= doubleClickWindow
	if double {
		h.lastClickRegion = ""
		h.lastClickTime = time.Time{}
	} else {
		h.lastClickRegion = region.ID
		h.lastClickTime = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// HandleMouse converts a bubbletea mouse message into an action.
func (h *Handler) HandleMouse(msg tea.MouseMsg) MouseAction {
	action := MouseAction{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			action.Type, action.Delta = ActionScrollUp, -scrollStep
		case tea.MouseButtonWheelDown:
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			action.Type, action.Delta = ActionScrollDown, scrollStep
		case tea.MouseButtonLeft:
			click := h.HandleClick(msg.X, msg.Y)
			if click.Region == nil {
				return action
			}
			action.Region = click.Region
			action.Type = ActionClick
			if click.IsDoubleClick {
				action.Type = ActionDoubleClick
			}
		}

	case tea.MouseActionMotion:
		if h.dragging {
			action.Type = ActionDrag
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			return action
		}
		action.Type = ActionHover
		action.Region = h.HitMap.Test(msg.X, msg.Y)

	case tea.MouseActionRelease:
		if h.dragging {
			action.Type = ActionDragEnd
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			h.EndDrag()
		}
	}

	return action
}

// StartDrag begins tracking a drag on region. value is whatever the
// caller needs back when the drag ends, such as the source row.
func (h *Handler) StartDrag(region string, value int) {
	h.dragging = true
	h.dragFrom = region
	h.dragValue = value
}

// EndDrag stops tracking the current drag.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragFrom = ""
	h.dragValue = 0
}

func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the region the drag started on.
func (h *Handler) DragRegion() string { return h.dragFrom }

// DragValue returns the value passed to StartDrag.
func (h *Handler) DragValue() int { return h.dragValue }
