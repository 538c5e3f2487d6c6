package engine

import (
	"log/slog"

	"LocalAnnotate/internal/state"
	"LocalAnnotate/internal/viewport"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

// KeyEvent is a key press with its modifier state. Name uses fyne key names
// ("A", "Z", "Escape").
type KeyEvent struct {
	Name  string
	Alt   bool
	Ctrl  bool
	Super bool
	Shift bool
}

// PointerDown starts a stroke at the viewport position p. It reports whether
// the event was consumed.
func (e *Engine) PointerDown(p state.Point, b Button) bool {
	if e.mode != state.ModeAnnotating || b != ButtonPrimary {
		return false
	}
	e.endStroke()
	s := state.NewStroke(e.view.ToWorld(p), e.color, float64(e.size), e.tool)
	e.store.Append(s)
	e.current = s
	e.drawing = true
	Logger().Debug("stroke started", slog.String("stroke", s.ID), slog.String("tool", s.Tool.String()))
	e.sched.Invalidate()
	return true
}

// PointerMove extends the current stroke. Pen strokes get the newest segment
// drawn straight away; the scheduled repaint then redraws it from the store.
func (e *Engine) PointerMove(p state.Point) bool {
	if e.mode != state.ModeAnnotating || !e.drawing || e.current == nil {
		return false
	}
	s := e.current
	prev := s.End()
	s.Extend(e.view.ToWorld(p))

	if s.Tool == state.ToolPen {
		x, y := e.view.Offset()
		e.renderer.RenderSegment(prev, s.End(), s.Color, s.Width, state.Point{X: x, Y: y})
		e.host.Present()
	}
	e.sched.Invalidate()
	return true
}

// PointerUp finalises the current stroke.
func (e *Engine) PointerUp() {
	e.endStroke()
}

// CaptureLost ends the current stroke when the pointer is released outside
// tracked events. The stroke stays in the store as drawn so far.
func (e *Engine) CaptureLost() {
	e.endStroke()
}

func (e *Engine) endStroke() {
	if !e.drawing {
		return
	}
	if e.current != nil {
		Logger().Debug("stroke finished", slog.String("stroke", e.current.ID), slog.Int("points", len(e.current.Points)))
	}
	e.drawing = false
	e.current = nil
	e.sched.Invalidate()
}

// Wheel redirects wheel deltas to the content under the overlay while
// annotating. It reports whether the event was consumed.
func (e *Engine) Wheel(dx, dy float64) bool {
	if e.mode != state.ModeAnnotating {
		return false
	}
	e.view.ScrollBy(dx, dy)
	return true
}

// Scrolled is called for every scroll notification. target is the element
// that scrolled, or nil for the document.
func (e *Engine) Scrolled(target viewport.Element) {
	e.view.OnScroll(target)
	if e.mode != state.ModeOff {
		e.sched.Invalidate()
	}
}

// HandleKey applies the local keyboard shortcuts:
// Alt+A cycles the mode, Ctrl/Super+Z undoes, Escape turns the overlay off
// and hides the panel, and P / R pick pen or arrow while annotating.
// It reports whether the key was consumed.
func (e *Engine) HandleKey(k KeyEvent) bool {
	switch {
	case k.Alt && k.Name == "A":
		e.CycleMode()
		return true
	case (k.Ctrl || k.Super) && k.Name == "Z" && e.mode != state.ModeOff:
		e.Undo()
		return true
	case k.Name == "Escape" && e.mode != state.ModeOff:
		e.setToolbar(false)
		e.SetMode(state.ModeOff)
		return true
	case !k.Alt && !k.Ctrl && !k.Super && e.mode == state.ModeAnnotating:
		switch k.Name {
		case "P":
			e.SetTool(state.ToolPen)
			return true
		case "R":
			e.SetTool(state.ToolArrow)
			return true
		}
	}
	return false
}
