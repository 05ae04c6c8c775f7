package mouse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}
	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left corner", 2, 3, true},
		{"inside", 4, 4, true},
		{"right edge exclusive", 6, 3, false},
		{"bottom edge exclusive", 2, 5, false},
		{"left of rect", 1, 3, false},
		{"above rect", 2, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitMap_TopmostWins(t *testing.T) {
	hm := NewHitMap()
	hm.AddRect("panel", 0, 0, 20, 10, nil)
	hm.AddRect("row", 1, 2, 18, 2, 7)

	r := hm.Test(5, 3)
	if r == nil || r.ID != "row" {
		t.Fatalf("got %+v, want row", r)
	}
	if r.Data.(int) != 7 {
		t.Errorf("got data %v, want 7", r.Data)
	}
	if r := hm.Test(5, 8); r == nil || r.ID != "panel" {
		t.Errorf("got %+v, want panel", r)
	}
	if r := hm.Test(30, 30); r != nil {
		t.Errorf("got %+v outside every region", r)
	}
}

func TestHitMap_ClearAndRegions(t *testing.T) {
	hm := NewHitMap()
	hm.Add("a", Rect{W: 1, H: 1}, nil)
	hm.Add("b", Rect{X: 1, W: 1, H: 1}, nil)

	regions := hm.Regions()
	if len(regions) != 2 || regions[0].ID != "a" || regions[1].ID != "b" {
		t.Fatalf("unexpected regions %+v", regions)
	}
	regions[0].ID = "changed"
	if hm.Regions()[0].ID != "a" {
		t.Error("Regions should return a copy")
	}

	hm.Clear()
	if len(hm.Regions()) != 0 {
		t.Error("Clear should drop every region")
	}
	if hm.Test(0, 0) != nil {
		t.Error("Test after Clear should miss")
	}
}

func TestHandleClick_DoubleClick(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("row", 0, 0, 10, 1, nil)

	first := h.HandleClick(1, 0)
	if first.Region == nil || first.IsDoubleClick {
		t.Fatalf("first click: %+v", first)
	}
	second := h.HandleClick(2, 0)
	if !second.IsDoubleClick {
		t.Error("second click on the same region should be a double click")
	}
	third := h.HandleClick(2, 0)
	if third.IsDoubleClick {
		t.Error("a double click should reset the click sequence")
	}
}

func TestHandleClick_DifferentRegions(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("a", 0, 0, 5, 1, nil)
	h.HitMap.AddRect("b", 5, 0, 5, 1, nil)

	h.HandleClick(1, 0)
	if res := h.HandleClick(6, 0); res.IsDoubleClick {
		t.Error("clicks on different regions are not a double click")
	}
}

func TestHandleClick_Miss(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("a", 0, 0, 5, 1, nil)

	h.HandleClick(1, 0)
	if res := h.HandleClick(20, 20); res.Region != nil {
		t.Errorf("got region %+v for a miss", res.Region)
	}
	if res := h.HandleClick(1, 0); res.IsDoubleClick {
		t.Error("a miss should break the double click sequence")
	}
}

func press(x, y int, b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: b, Action: tea.MouseActionPress}
}

func TestHandleMouse_Click(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("row", 0, 0, 10, 2, 3)

	a := h.HandleMouse(press(4, 1, tea.MouseButtonLeft))
	if a.Type != ActionClick {
		t.Fatalf("got type %v, want ActionClick", a.Type)
	}
	if a.Region == nil || a.Region.ID != "row" || a.X != 4 || a.Y != 1 {
		t.Errorf("unexpected action %+v", a)
	}

	a = h.HandleMouse(press(4, 1, tea.MouseButtonLeft))
	if a.Type != ActionDoubleClick {
		t.Errorf("got type %v, want ActionDoubleClick", a.Type)
	}
}

func TestHandleMouse_ClickOutside(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("row", 0, 0, 10, 2, nil)

	a := h.HandleMouse(press(40, 40, tea.MouseButtonLeft))
	if a.Type != ActionNone || a.Region != nil {
		t.Errorf("got %+v, want no action", a)
	}
}

func TestHandleMouse_Wheel(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("preview", 0, 0, 10, 10, nil)

	up := h.HandleMouse(press(2, 2, tea.MouseButtonWheelUp))
	if up.Type != ActionScrollUp || up.Delta != -3 {
		t.Errorf("wheel up: got %+v", up)
	}
	if up.Region == nil || up.Region.ID != "preview" {
		t.Errorf("wheel up region: got %+v", up.Region)
	}

	down := h.HandleMouse(press(2, 2, tea.MouseButtonWheelDown))
	if down.Type != ActionScrollDown || down.Delta != 3 {
		t.Errorf("wheel down: got %+v", down)
	}

	outside := h.HandleMouse(press(50, 50, tea.MouseButtonWheelDown))
	if outside.Type != ActionScrollDown || outside.Region != nil {
		t.Errorf("wheel outside regions: got %+v", outside)
	}
}

func TestHandleMouse_Hover(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("button", 3, 3, 4, 1, nil)

	a := h.HandleMouse(tea.MouseMsg{X: 4, Y: 3, Action: tea.MouseActionMotion})
	if a.Type != ActionHover || a.Region == nil || a.Region.ID != "button" {
		t.Errorf("got %+v, want hover over button", a)
	}

	a = h.HandleMouse(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	if a.Type != ActionHover || a.Region != nil {
		t.Errorf("got %+v, want hover over nothing", a)
	}
}

func TestHandleMouse_ReleaseWithoutDrag(t *testing.T) {
	h := NewHandler()
	a := h.HandleMouse(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if a.Type != ActionNone {
		t.Errorf("got %v, want ActionNone", a.Type)
	}
}

func TestHandler_DragLifecycle(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("row", 0, 0, 10, 2, 0)
	h.HitMap.AddRect("row", 0, 2, 10, 2, 1)

	if h.IsDragging() {
		t.Fatal("new handler should not be dragging")
	}
	h.StartDrag("row", 0)
	if !h.IsDragging() || h.DragRegion() != "row" || h.DragValue() != 0 {
		t.Fatalf("after StartDrag: dragging=%v region=%q value=%d", h.IsDragging(), h.DragRegion(), h.DragValue())
	}

	move := h.HandleMouse(tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if move.Type != ActionDrag {
		t.Fatalf("got %v, want ActionDrag", move.Type)
	}
	if move.Region == nil || move.Region.Data.(int) != 1 {
		t.Errorf("drag should report the region under the pointer, got %+v", move.Region)
	}

	end := h.HandleMouse(tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if end.Type != ActionDragEnd {
		t.Fatalf("got %v, want ActionDragEnd", end.Type)
	}
	if end.Region == nil || end.Region.Data.(int) != 1 {
		t.Errorf("drag end region: got %+v", end.Region)
	}
	if h.IsDragging() || h.DragRegion() != "" || h.DragValue() != 0 {
		t.Error("release should end the drag")
	}
}

func TestHandler_StartDragKeepsValue(t *testing.T) {
	h := NewHandler()
	h.StartDrag("row", 4)
	if h.DragValue() != 4 {
		t.Errorf("got %d, want 4", h.DragValue())
	}
	h.EndDrag()
	if h.IsDragging() {
		t.Error("EndDrag should stop the drag")
	}
}

func TestHandler_Clear(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("a", 0, 0, 1, 1, nil)
	h.Clear()
	if h.HitMap.Test(0, 0) != nil {
		t.Error("Clear should empty the hit map")
	}
}
