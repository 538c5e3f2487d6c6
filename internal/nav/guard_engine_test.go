package nav

import (
	"testing"

	"LocalAnnotate/internal/engine"
	"LocalAnnotate/internal/render"
	"LocalAnnotate/internal/state"
	"LocalAnnotate/internal/viewport"
)

type stillRoot struct{}

func (stillRoot) WindowOffset() (float64, float64)   { return 0, 0 }
func (stillRoot) ScrollingElement() viewport.Element { return nil }
func (stillRoot) ScrollBy(float64, float64)          {}

func TestNavigationResetsEngineMidStroke(t *testing.T) {
	e := engine.New(viewport.NewTracker(stillRoot{}), render.NewRenderer(render.NewRecorder(50, 50)), &engine.ManualFrames{})
	h := NewHistory("https://example.test/a")
	Watch(h, h.URL(), e)

	e.SetMode(state.ModeAnnotating)
	e.PointerDown(state.Point{X: 1, Y: 1}, engine.ButtonPrimary)
	e.PointerMove(state.Point{X: 9, Y: 9})

	h.PushState("https://example.test/b")

	if e.Mode() != state.ModeOff {
		t.Errorf("Mode() = %v, want off", e.Mode())
	}
	if e.Store().Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Store().Len())
	}
	if e.Drawing() {
		t.Error("stroke still in progress after navigation")
	}
}
