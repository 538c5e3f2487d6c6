package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"LocalAnnotate/internal/state"
)

// Surface is the pixel target the renderer draws on. Coordinates are in
// viewport space.
type Surface interface {
	Resize(w, h int)
	Size() (w, h int)
	Clear()
	FillCircle(c state.Point, r float64, col color.Color)
	// StrokePolyline draws one continuous path with round caps and joins.
	StrokePolyline(pts []state.Point, width float64, col color.Color)
	FillPolygon(pts []state.Point, col color.Color)
}

// GGSurface rasterises onto an RGBA image.
type GGSurface struct {
	dc *gg.Context
}

func NewGGSurface(w, h int) *GGSurface {
	return &GGSurface{dc: gg.NewContext(max(w, 1), max(h, 1))}
}

// Resize replaces the pixel buffer; previous content is lost.
func (s *GGSurface) Resize(w, h int) {
	s.dc = gg.NewContext(max(w, 1), max(h, 1))
}

func (s *GGSurface) Size() (int, int) { return s.dc.Width(), s.dc.Height() }

// Clear makes every pixel fully transparent.
func (s *GGSurface) Clear() {
	s.dc.SetRGBA(0, 0, 0, 0)
	s.dc.Clear()
}

func (s *GGSurface) FillCircle(c state.Point, r float64, col color.Color) {
	s.dc.SetColor(col)
	s.dc.DrawCircle(c.X, c.Y, r)
	s.dc.Fill()
}

func (s *GGSurface) StrokePolyline(pts []state.Point, width float64, col color.Color) {
	if len(pts) < 2 {
		return
	}
	s.dc.SetColor(col)
	s.dc.SetLineWidth(width)
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.Stroke()
}

func (s *GGSurface) FillPolygon(pts []state.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	s.dc.SetColor(col)
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.ClosePath()
	s.dc.Fill()
}

// Image returns the backing image. It is replaced on Resize.
func (s *GGSurface) Image() image.Image { return s.dc.Image() }
