package engine

import (
	"testing"

	"LocalAnnotate/internal/state"
)

func TestInitialState(t *testing.T) {
	r := newRig()
	e := r.e
	if e.Mode() != state.ModeOff {
		t.Errorf("Mode() = %v, want off", e.Mode())
	}
	if e.Color() != state.DefaultColor || e.Size() != 3 || e.Tool() != state.ToolPen {
		t.Errorf("brush = %v/%d/%v, want default red pen size 3", e.Color(), e.Size(), e.Tool())
	}
	if len(r.host.modes) != 1 || r.host.modes[0] != state.ModeOff {
		t.Errorf("host modes = %v, want [off]", r.host.modes)
	}
}

func TestWithConfig(t *testing.T) {
	r := newRig(WithConfig(Config{Color: state.Color{B: 0xff}, Size: 99, Tool: state.ToolArrow}))
	if r.e.Size() != MaxSize {
		t.Errorf("Size() = %d, want clamped %d", r.e.Size(), MaxSize)
	}
	if r.e.Tool() != state.ToolArrow {
		t.Errorf("Tool() = %v, want arrow", r.e.Tool())
	}
}

func TestCycleMode(t *testing.T) {
	r := newRig()
	want := []state.Mode{state.ModeAnnotating, state.ModePassthrough, state.ModeOff}
	for i, w := range want {
		r.e.CycleMode()
		if r.e.Mode() != w {
			t.Errorf("after %d cycles mode = %v, want %v", i+1, r.e.Mode(), w)
		}
	}
	if got := r.host.modes[1:]; len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("host saw %v, want %v", got, want)
	}
}

func TestSetModeOffFromAnyState(t *testing.T) {
	for _, from := range []state.Mode{state.ModeOff, state.ModeAnnotating, state.ModePassthrough} {
		r := newRig()
		r.e.SetMode(from)
		r.e.SetMode(state.ModeOff)
		if r.e.Mode() != state.ModeOff {
			t.Errorf("SetMode(off) from %v = %v", from, r.e.Mode())
		}
		if last := r.host.modes[len(r.host.modes)-1]; last.Captures() {
			t.Errorf("from %v: host still capturing input", from)
		}
	}
}

func TestModeChangedNotification(t *testing.T) {
	r := newRig()
	var got []Event
	r.e.Events().Subscribe(func(ev Event) { got = append(got, ev) })

	r.e.SetMode(state.ModePassthrough)
	r.e.CycleMode()
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0] != (Event{Type: EventModeChanged, Mode: "passthrough"}) || got[1].Mode != "off" {
		t.Errorf("events = %+v", got)
	}
}

func TestTransitionWithoutSubscribers(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	if r.e.Mode() != state.ModeAnnotating {
		t.Error("transition should succeed with no listener")
	}
}

func TestTransitionSurvivesPanickingSubscriber(t *testing.T) {
	r := newRig()
	r.e.Events().Subscribe(func(Event) { panic("receiver gone") })
	r.e.SetMode(state.ModeAnnotating)
	if r.e.Mode() != state.ModeAnnotating {
		t.Error("transition should succeed when a listener fails")
	}
}

func TestTransitionRepaints(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	if !r.e.Scheduler().Pending() {
		t.Fatal("transition should schedule a repaint")
	}
	r.frames.Tick()
	if r.e.Scheduler().Paints() != 1 {
		t.Errorf("Paints() = %d, want 1", r.e.Scheduler().Paints())
	}
	if r.host.presents != 1 {
		t.Errorf("presents = %d, want 1", r.host.presents)
	}
}

func TestTransitionResyncsViewport(t *testing.T) {
	r := newRig()
	r.root.y = 250
	r.e.SetMode(state.ModeAnnotating)
	if _, y := r.e.Tracker().Offset(); y != 250 {
		t.Errorf("offset y = %v, want 250 after transition", y)
	}
}

func TestSetSizeClamps(t *testing.T) {
	r := newRig()
	tests := []struct{ in, want int }{{0, 1}, {-5, 1}, {1, 1}, {12, 12}, {20, 20}, {21, 20}}
	for _, tt := range tests {
		if got := r.e.SetSize(tt.in); got != tt.want {
			t.Errorf("SetSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSetColorNotifiesHost(t *testing.T) {
	r := newRig()
	blue := state.Color{B: 0xff}
	r.e.SetColor(blue)
	if r.e.Color() != blue || r.host.brush != blue {
		t.Errorf("color = %v, host brush = %v, want %v", r.e.Color(), r.host.brush, blue)
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	r := newRig()
	r.e.Undo()
	if r.e.Store().Len() != 0 {
		t.Error("undo on empty store changed it")
	}
	if r.e.Scheduler().Pending() {
		t.Error("undo on empty store should not repaint")
	}
}

func TestUndoAndClear(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	for i := 0; i < 3; i++ {
		r.e.PointerDown(pt(float64(i), 0), ButtonPrimary)
		r.e.PointerUp()
	}
	r.e.Undo()
	if r.e.Store().Len() != 2 {
		t.Errorf("Len() after undo = %d, want 2", r.e.Store().Len())
	}
	r.e.Clear()
	r.frames.Tick()
	if r.e.Store().Len() != 0 {
		t.Errorf("Len() after clear = %d, want 0", r.e.Store().Len())
	}
	if len(r.rec.Ops) != 0 {
		t.Errorf("surface has %d ops after clear, want 0", len(r.rec.Ops))
	}
}

func TestUndoWhileDrawingDropsCurrent(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	r.e.PointerDown(pt(0, 0), ButtonPrimary)
	r.e.Undo()
	if r.e.Drawing() {
		t.Error("undo should end the stroke in progress")
	}
	if r.e.PointerMove(pt(5, 5)) {
		t.Error("move after undo should not extend a detached stroke")
	}
	if r.e.Store().Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.e.Store().Len())
	}
}

func TestResetDuringStroke(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	r.e.PointerDown(pt(0, 0), ButtonPrimary)
	r.e.PointerMove(pt(10, 10))

	r.e.Reset()

	if r.e.Mode() != state.ModeOff {
		t.Errorf("Mode() = %v, want off", r.e.Mode())
	}
	if r.e.Store().Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.e.Store().Len())
	}
	if r.e.Drawing() {
		t.Error("reset should end the stroke in progress")
	}
}

func TestToggleToolbar(t *testing.T) {
	r := newRig()
	r.e.ToggleToolbar()
	if !r.panel.visible || r.e.Mode() != state.ModeAnnotating {
		t.Errorf("show: panel=%v mode=%v, want visible annotating", r.panel.visible, r.e.Mode())
	}
	r.e.ToggleToolbar()
	if r.panel.visible || r.e.Mode() != state.ModeOff {
		t.Errorf("hide: panel=%v mode=%v, want hidden off", r.panel.visible, r.e.Mode())
	}
}

func TestToggleToolbarKeepsPassthrough(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModePassthrough)
	r.e.ToggleToolbar()
	if r.e.Mode() != state.ModePassthrough {
		t.Errorf("showing the panel changed mode to %v", r.e.Mode())
	}
}

func TestToggleToolbarWithoutPanel(t *testing.T) {
	r := newRig(WithPanel(nil))
	r.e.ToggleToolbar()
	if !r.e.ToolbarVisible() || r.e.Mode() != state.ModeAnnotating {
		t.Errorf("toolbar=%v mode=%v", r.e.ToolbarVisible(), r.e.Mode())
	}
}

func TestResizeRepaintsNow(t *testing.T) {
	r := newRig()
	r.e.SetMode(state.ModeAnnotating)
	r.e.PointerDown(pt(10, 10), ButtonPrimary)
	r.e.PointerUp()
	before := r.e.Scheduler().Paints()

	r.e.Resize(1024, 768)
	if r.e.Scheduler().Paints() != before+1 {
		t.Errorf("Paints() = %d, want %d", r.e.Scheduler().Paints(), before+1)
	}
	if len(r.rec.Ops) != 1 {
		t.Errorf("surface has %d ops, want the stroke redrawn", len(r.rec.Ops))
	}

	r.e.Resize(1024, 768)
	if r.e.Scheduler().Paints() != before+1 {
		t.Error("same-size resize should not repaint")
	}
}
