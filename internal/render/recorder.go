package render

import (
	"image/color"

	"LocalAnnotate/internal/state"
)

// OpKind names a recorded draw call.
type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpPolyline
	OpPolygon
)

// Op is one recorded draw call.
type Op struct {
	Kind   OpKind
	Points []state.Point
	Radius float64
	Width  float64
	Color  color.Color
}

// Recorder is a Surface that keeps a log of draw calls instead of pixels.
// Clear empties the log, so Ops always describes what is visible.
type Recorder struct {
	W, H   int
	Ops    []Op
	Clears int
}

func NewRecorder(w, h int) *Recorder { return &Recorder{W: w, H: h} }

func (r *Recorder) Resize(w, h int) {
	r.W, r.H = w, h
	r.Ops = nil
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.Ops = nil
	r.Clears++
}

func (r *Recorder) FillCircle(c state.Point, rad float64, col color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Points: []state.Point{c}, Radius: rad, Color: col})
}

func (r *Recorder) StrokePolyline(pts []state.Point, width float64, col color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpPolyline, Points: append([]state.Point(nil), pts...), Width: width, Color: col})
}

func (r *Recorder) FillPolygon(pts []state.Point, col color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpPolygon, Points: append([]state.Point(nil), pts...), Color: col})
}
