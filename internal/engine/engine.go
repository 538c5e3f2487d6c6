// Package engine ties the stroke store, viewport tracker, renderer and redraw
// scheduler together behind the mode/tool state machine and input router.
//
// An Engine is not safe for concurrent use. Every call, including frame
// callbacks, must come from the goroutine that owns the overlay.
package engine

import (
	"log/slog"

	"LocalAnnotate/internal/render"
	"LocalAnnotate/internal/state"
	"LocalAnnotate/internal/viewport"
)

// Brush size limits.
const (
	MinSize = 1
	MaxSize = 20
)

// Host is the overlay the engine drives.
type Host interface {
	// ApplyMode shows or hides the overlay and turns pointer capture and the
	// drawing cursor on or off to match m.
	ApplyMode(m state.Mode)
	// BrushChanged reports a new brush color, for mode indicators.
	BrushChanged(c state.Color)
	// Present pushes the surface to the screen after it changed.
	Present()
}

// Panel is the external control panel. Only its visibility is managed here.
type Panel interface {
	Visible() bool
	SetVisible(bool)
}

// Config holds the initial brush settings.
type Config struct {
	Color state.Color
	Size  int
	Tool  state.Tool
}

// DefaultConfig matches a fresh overlay: red pen, size 3.
func DefaultConfig() Config {
	return Config{Color: state.DefaultColor, Size: 3, Tool: state.ToolPen}
}

type Engine struct {
	store    *state.Store
	view     *viewport.Tracker
	renderer *render.Renderer
	sched    *Scheduler
	events   *Publisher
	host     Host
	panel    Panel

	mode    state.Mode
	tool    state.Tool
	color   state.Color
	size    int
	current *state.Stroke
	drawing bool
	toolbar bool
}

// Option configures an Engine during New.
type Option func(*Engine)

// WithHost sets the overlay host.
func WithHost(h Host) Option { return func(e *Engine) { e.host = h } }

// WithPanel sets the control panel whose visibility follows ToggleToolbar.
func WithPanel(p Panel) Option { return func(e *Engine) { e.panel = p } }

// WithConfig sets the initial brush.
func WithConfig(c Config) Option {
	return func(e *Engine) {
		e.color = c.Color
		e.size = clampSize(c.Size)
		e.tool = c.Tool
	}
}

// New builds an engine in mode Off with an empty store.
func New(view *viewport.Tracker, r *render.Renderer, frames FrameSource, opts ...Option) *Engine {
	cfg := DefaultConfig()
	e := &Engine{
		store:    state.NewStore(),
		view:     view,
		renderer: r,
		events:   NewPublisher(),
		host:     nopHost{},
		mode:     state.ModeOff,
		color:    cfg.Color,
		size:     cfg.Size,
		tool:     cfg.Tool,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.panel != nil {
		e.toolbar = e.panel.Visible()
	}
	e.sched = NewScheduler(frames, e.paint)
	e.view.Sync()
	e.host.ApplyMode(e.mode)
	return e
}

type nopHost struct{}

func (nopHost) ApplyMode(state.Mode)     {}
func (nopHost) BrushChanged(state.Color) {}
func (nopHost) Present()                 {}

func (e *Engine) paint() {
	x, y := e.view.Offset()
	e.renderer.RenderAll(e.store, state.Point{X: x, Y: y})
	e.host.Present()
}

// Events returns the publisher for outbound notifications.
func (e *Engine) Events() *Publisher { return e.events }

// Store returns the stroke store. Callers must treat it as read-only.
func (e *Engine) Store() *state.Store { return e.store }

// Tracker returns the viewport tracker.
func (e *Engine) Tracker() *viewport.Tracker { return e.view }

// Scheduler returns the redraw scheduler.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

func (e *Engine) Mode() state.Mode     { return e.mode }
func (e *Engine) Tool() state.Tool     { return e.tool }
func (e *Engine) Color() state.Color   { return e.color }
func (e *Engine) Size() int            { return e.size }
func (e *Engine) Drawing() bool        { return e.drawing }
func (e *Engine) ToolbarVisible() bool { return e.toolbar }

// SetMode transitions to m. Every call, including one to the current mode,
// re-syncs the viewport, schedules a repaint and publishes modeChanged.
func (e *Engine) SetMode(m state.Mode) {
	prev := e.mode
	if m != state.ModeAnnotating {
		e.endStroke()
	}
	e.mode = m
	e.host.ApplyMode(m)
	e.view.Sync()
	e.sched.Invalidate()
	Logger().Info("mode changed", slog.String("from", prev.String()), slog.String("to", m.String()))
	e.events.Publish(Event{Type: EventModeChanged, Mode: m.String()})
}

// CycleMode advances Off -> Annotating -> Passthrough -> Off.
func (e *Engine) CycleMode() {
	e.SetMode(e.mode.Next())
}

// SetTool selects the tool for the next stroke. A stroke in progress keeps
// the tool it started with.
func (e *Engine) SetTool(t state.Tool) {
	e.tool = t
}

// SetColor sets the brush color for the next stroke.
func (e *Engine) SetColor(c state.Color) {
	e.color = c
	e.host.BrushChanged(c)
}

// SetSize sets the brush width, clamped to [MinSize, MaxSize]. It returns
// the size in effect.
func (e *Engine) SetSize(n int) int {
	e.size = clampSize(n)
	return e.size
}

func clampSize(n int) int {
	return min(max(n, MinSize), MaxSize)
}

// Undo removes the most recent stroke. It is a no-op on an empty store.
func (e *Engine) Undo() {
	e.endStroke()
	s, ok := e.store.PopLast()
	if !ok {
		return
	}
	Logger().Debug("undo", slog.String("stroke", s.ID))
	e.sched.Invalidate()
}

// Clear removes every stroke.
func (e *Engine) Clear() {
	e.endStroke()
	e.store.Clear()
	e.sched.Invalidate()
}

// Reset clears the store and forces mode Off.
func (e *Engine) Reset() {
	Logger().Info("reset")
	e.Clear()
	e.SetMode(state.ModeOff)
}

// ToggleToolbar flips the control panel. Showing it turns Off into
// Annotating; hiding it turns the overlay Off.
func (e *Engine) ToggleToolbar() {
	e.setToolbar(!e.toolbar)
	switch {
	case e.toolbar && e.mode == state.ModeOff:
		e.SetMode(state.ModeAnnotating)
	case !e.toolbar && e.mode != state.ModeOff:
		e.SetMode(state.ModeOff)
	}
}

func (e *Engine) setToolbar(visible bool) {
	e.toolbar = visible
	if e.panel != nil {
		e.panel.SetVisible(visible)
	}
}

// Resize matches the overlay surface to a new viewport size and repaints
// immediately, since resizing discards the pixel buffer.
func (e *Engine) Resize(w, h int) {
	if cw, ch := e.renderer.Surface().Size(); cw == w && ch == h {
		return
	}
	e.renderer.Resize(w, h)
	e.sched.Flush()
}
