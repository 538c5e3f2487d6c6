package engine

import (
	"LocalAnnotate/internal/render"
	"LocalAnnotate/internal/state"
	"LocalAnnotate/internal/viewport"
)

type fakePane struct{ x, y float64 }

func (p *fakePane) ScrollOffset() (float64, float64) { return p.x, p.y }
func (p *fakePane) ScrollBy(dx, dy float64)          { p.x += dx; p.y += dy }

type fakeRoot struct{ x, y float64 }

func (r *fakeRoot) WindowOffset() (float64, float64)   { return r.x, r.y }
func (r *fakeRoot) ScrollingElement() viewport.Element { return nil }
func (r *fakeRoot) ScrollBy(dx, dy float64)            { r.x += dx; r.y += dy }

type fakeHost struct {
	modes    []state.Mode
	brush    state.Color
	presents int
}

func (h *fakeHost) ApplyMode(m state.Mode)     { h.modes = append(h.modes, m) }
func (h *fakeHost) BrushChanged(c state.Color) { h.brush = c }
func (h *fakeHost) Present()                   { h.presents++ }

type fakePanel struct{ visible bool }

func (p *fakePanel) Visible() bool     { return p.visible }
func (p *fakePanel) SetVisible(v bool) { p.visible = v }

type rig struct {
	e      *Engine
	root   *fakeRoot
	rec    *render.Recorder
	frames *ManualFrames
	host   *fakeHost
	panel  *fakePanel
}

func newRig(opts ...Option) *rig {
	r := &rig{
		root:   &fakeRoot{},
		rec:    render.NewRecorder(800, 600),
		frames: &ManualFrames{},
		host:   &fakeHost{},
		panel:  &fakePanel{},
	}
	opts = append([]Option{WithHost(r.host), WithPanel(r.panel)}, opts...)
	r.e = New(viewport.NewTracker(r.root), render.NewRenderer(r.rec), r.frames, opts...)
	return r
}

func pt(x, y float64) state.Point { return state.Point{X: x, Y: y} }
