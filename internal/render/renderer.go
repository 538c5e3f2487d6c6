// Package render paints the stroke store onto an overlay surface.
package render

import (
	"math"

	"LocalAnnotate/internal/state"
)

const (
	// MinArrowHead is the smallest arrow head length, so heads stay legible
	// at thin widths.
	MinArrowHead      = 12
	arrowHeadPerWidth = 4
	arrowHeadAngle    = math.Pi / 6
)

type Renderer struct {
	surface Surface
}

func NewRenderer(s Surface) *Renderer {
	return &Renderer{surface: s}
}

// Surface returns the surface being drawn on.
func (r *Renderer) Surface() Surface { return r.surface }

// Resize matches the surface to the viewport. The pixel buffer is lost, so
// the caller must follow with RenderAll.
func (r *Renderer) Resize(w, h int) {
	if cw, ch := r.surface.Size(); cw == w && ch == h {
		return
	}
	r.surface.Resize(w, h)
}

// RenderAll clears the surface and draws every stroke in store order,
// translated into viewport space by off.
func (r *Renderer) RenderAll(st *state.Store, off state.Point) {
	r.surface.Clear()
	st.Each(func(s *state.Stroke) {
		r.drawStroke(s, off)
	})
}

// RenderSegment draws only the segment a-b of an in-progress pen stroke on
// top of whatever is already on the surface.
func (r *Renderer) RenderSegment(a, b state.Point, c state.Color, width float64, off state.Point) {
	r.surface.StrokePolyline([]state.Point{project(a, off), project(b, off)}, width, c)
}

func (r *Renderer) drawStroke(s *state.Stroke, off state.Point) {
	switch s.Tool {
	case state.ToolPen:
		r.drawPen(s, off)
	case state.ToolArrow:
		r.drawArrow(s, off)
	}
}

func (r *Renderer) drawPen(s *state.Stroke, off state.Point) {
	if len(s.Points) == 1 {
		r.surface.FillCircle(project(s.Points[0], off), s.Width/2, s.Color)
		return
	}
	pts := make([]state.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = project(p, off)
	}
	r.surface.StrokePolyline(pts, s.Width, s.Color)
}

func (r *Renderer) drawArrow(s *state.Stroke, off state.Point) {
	start, end := project(s.Start(), off), project(s.End(), off)
	if start == end {
		r.surface.FillCircle(start, s.Width/2, s.Color)
		return
	}
	r.surface.StrokePolyline([]state.Point{start, end}, s.Width, s.Color)
	apex, left, right := ArrowHead(start, end, s.Width)
	r.surface.FillPolygon([]state.Point{apex, left, right}, s.Color)
}

// ArrowHead returns the triangle capping an arrow from start to end: the apex
// at end and two legs of length max(12, width*4) at ±30° either side of the
// reversed shaft direction.
func ArrowHead(start, end state.Point, width float64) (apex, left, right state.Point) {
	length := ArrowHeadLength(width)
	angle := math.Atan2(end.Y-start.Y, end.X-start.X)
	left = state.Point{
		X: end.X - length*math.Cos(angle-arrowHeadAngle),
		Y: end.Y - length*math.Sin(angle-arrowHeadAngle),
	}
	right = state.Point{
		X: end.X - length*math.Cos(angle+arrowHeadAngle),
		Y: end.Y - length*math.Sin(angle+arrowHeadAngle),
	}
	return end, left, right
}

// ArrowHeadLength is the leg length of an arrow head for a brush width.
func ArrowHeadLength(width float64) float64 {
	return math.Max(MinArrowHead, width*arrowHeadPerWidth)
}

func project(p, off state.Point) state.Point {
	return state.Point{X: p.X - off.X, Y: p.Y - off.Y}
}
