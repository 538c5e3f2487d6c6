package engine

import (
	"testing"

	"LocalAnnotate/internal/render"
	"LocalAnnotate/internal/state"
)

func TestPointerIgnoredUnlessAnnotating(t *testing.T) {
	for _, m := range []state.Mode{state.ModeOff, state.ModePassthrough} {
		r := newRig()
		r.e.SetMode(m)
		if r.e.PointerDown(pt(1, 1), ButtonPrimary) {
			t.Errorf("%v: PointerDown consumed", m)
		}
		if r.e.Store().Len() != 0 {
			t.Errorf("%v: stroke recorded", m)
		}
	}
}

func TestSecondaryButtonIgnored(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	if r.e.PointerDown(pt(1, 1), ButtonSecondary) {
		t.Error("secondary button should not draw")
	}
}

func TestPenStrokeInWorldCoordinates(t *testing.T) {
	r := newRig()
	r.root.y = 100
	r.e.SetMode(state.ModeAnnotating)

	r.e.PointerDown(pt(10, 10), ButtonPrimary)
	r.e.PointerMove(pt(20, 10))
	r.e.PointerMove(pt(30, 15))
	r.e.PointerUp()

	s, ok := r.e.Store().Last()
	if !ok {
		t.Fatal("no stroke recorded")
	}
	want := []state.Point{{X: 10, Y: 110}, {X: 20, Y: 110}, {X: 30, Y: 115}}
	if len(s.Points) != len(want) {
		t.Fatalf("points = %v, want %v", s.Points, want)
	}
	for i := range want {
		if s.Points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, s.Points[i], want[i])
		}
	}
	if s.Color != state.DefaultColor || s.Width != 3 {
		t.Errorf("style = %v/%v", s.Color, s.Width)
	}
}

func TestCurrentStrokeIsLastInStore(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	r.e.PointerDown(pt(0, 0), ButtonPrimary)
	last, _ := r.e.Store().Last()
	if r.e.current != last || !r.e.Drawing() {
		t.Error("current stroke should be the last stored stroke while drawing")
	}
	r.e.PointerUp()
	if r.e.current != nil || r.e.Drawing() {
		t.Error("pointer up should finalise the stroke")
	}
	if r.e.PointerMove(pt(3, 3)) {
		t.Error("move after pointer up should be ignored")
	}
	if len(last.Points) != 1 {
		t.Errorf("finalised stroke changed: %v", last.Points)
	}
}

func TestPenMoveDrawsIncrementally(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	r.frames.Tick()
	paints := r.e.Scheduler().Paints()

	r.e.PointerDown(pt(0, 0), ButtonPrimary)
	r.e.PointerMove(pt(5, 0))

	if r.e.Scheduler().Paints() != paints {
		t.Fatal("full repaint ran before the frame")
	}
	if n := len(r.rec.Ops); n != 1 || r.rec.Ops[0].Kind != render.OpPolyline {
		t.Fatalf("ops = %+v, want one incremental segment", r.rec.Ops)
	}

	r.frames.Tick()
	if r.e.Scheduler().Paints() != paints+1 {
		t.Errorf("Paints() = %d, want %d after the frame", r.e.Scheduler().Paints(), paints+1)
	}
}

func TestArrowMoveWaitsForFrame(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	r.e.SetTool(state.ToolArrow)
	r.frames.Tick()

	r.e.PointerDown(pt(0, 0), ButtonPrimary)
	r.e.PointerMove(pt(50, 0))
	r.e.PointerMove(pt(100, 0))
	if len(r.rec.Ops) != 0 {
		t.Errorf("arrow drew %d ops before the frame", len(r.rec.Ops))
	}
	r.e.PointerUp()
	r.frames.Tick()

	s, _ := r.e.Store().Last()
	if s.Tool != state.ToolArrow || len(s.Points) != 2 {
		t.Fatalf("stroke = %+v, want two-point arrow", s)
	}
	if len(r.rec.Ops) != 2 {
		t.Errorf("got %d ops, want shaft and head", len(r.rec.Ops))
	}
}

func TestToolFixedAtStrokeStart(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	r.e.PointerDown(pt(0, 0), ButtonPrimary)
	r.e.SetTool(state.ToolArrow)
	r.e.PointerMove(pt(1, 0))
	r.e.PointerMove(pt(2, 0))
	r.e.PointerUp()
	s, _ := r.e.Store().Last()
	if s.Tool != state.ToolPen || len(s.Points) != 3 {
		t.Errorf("stroke = %v with %d points, want pen with 3", s.Tool, len(s.Points))
	}
}

func TestLeavingAnnotatingAbandonsStroke(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	r.e.PointerDown(pt(0, 0), ButtonPrimary)
	r.e.PointerMove(pt(4, 4))
	r.e.SetMode(state.ModePassthrough)
	if r.e.Drawing() {
		t.Error("stroke should end when leaving annotating")
	}
	if r.e.Store().Len() != 1 {
		t.Errorf("Len() = %d, want the partial stroke kept", r.e.Store().Len())
	}
}

func TestCaptureLostKeepsStroke(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	r.e.PointerDown(pt(0, 0), ButtonPrimary)
	r.e.PointerMove(pt(4, 4))
	r.e.CaptureLost()
	s, _ := r.e.Store().Last()
	if r.e.Drawing() || len(s.Points) != 2 {
		t.Errorf("drawing=%v points=%d, want finished stroke with 2 points", r.e.Drawing(), len(s.Points))
	}
}

func TestWheelRedirect(t *testing.T) {
	r := newRig()
	if r.e.Wheel(0, 40) {
		t.Error("wheel consumed while off")
	}

	r.e.SetMode(state.ModeAnnotating)
	if !r.e.Wheel(0, 40) || r.root.y != 40 {
		t.Errorf("root y = %v, want 40", r.root.y)
	}

	pane := &fakePane{}
	r.e.Scrolled(pane)
	r.e.Wheel(5, 60)
	if pane.x != 5 || pane.y != 60 {
		t.Errorf("pane = (%v, %v), want (5, 60)", pane.x, pane.y)
	}
}

func TestScrolledRepaintsUnlessOff(t *testing.T) {
	r := newRig()
	r.e.Scrolled(nil)
	if r.e.Scheduler().Pending() {
		t.Error("scroll while off should not repaint")
	}
	r.e.SetMode(state.ModePassthrough)
	r.frames.Tick()
	r.e.Scrolled(&fakePane{y: 30})
	if !r.e.Scheduler().Pending() {
		t.Error("scroll while visible should repaint")
	}
}

func TestStrokesFollowNestedScroll(t *testing.T) {
	r := newRig()
	pane := &fakePane{}
	r.e.Scrolled(pane)
	r.e.SetMode(state.ModeAnnotating)
	r.e.PointerDown(pt(50, 50), ButtonPrimary)
	r.e.PointerUp()

	pane.y = 30
	r.e.Scrolled(pane)
	r.frames.Tick()

	if len(r.rec.Ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(r.rec.Ops))
	}
	if got := r.rec.Ops[0].Points[0]; got != pt(50, 20) {
		t.Errorf("dot drawn at %v, want (50, 20)", got)
	}
}

func TestHandleKey(t *testing.T) {
	r := newRig()

	if r.e.HandleKey(KeyEvent{Name: "Z", Ctrl: true}) {
		t.Error("undo consumed while off")
	}
	if r.e.HandleKey(KeyEvent{Name: "Escape"}) {
		t.Error("escape consumed while off")
	}

	r.e.HandleKey(KeyEvent{Name: "A", Alt: true})
	if r.e.Mode() != state.ModeAnnotating {
		t.Fatalf("Alt+A: mode = %v, want annotating", r.e.Mode())
	}

	r.e.HandleKey(KeyEvent{Name: "R"})
	if r.e.Tool() != state.ToolArrow {
		t.Errorf("R: tool = %v, want arrow", r.e.Tool())
	}
	r.e.HandleKey(KeyEvent{Name: "P"})
	if r.e.Tool() != state.ToolPen {
		t.Errorf("P: tool = %v, want pen", r.e.Tool())
	}

	r.e.PointerDown(pt(1, 1), ButtonPrimary)
	r.e.PointerUp()
	if !r.e.HandleKey(KeyEvent{Name: "Z", Super: true}) || r.e.Store().Len() != 0 {
		t.Errorf("Super+Z: Len() = %d, want 0", r.e.Store().Len())
	}

	r.e.ToggleToolbar()
	r.e.HandleKey(KeyEvent{Name: "Escape"})
	if r.e.Mode() != state.ModeOff || r.panel.visible {
		t.Errorf("Escape: mode=%v panel=%v, want off and hidden", r.e.Mode(), r.panel.visible)
	}
}
