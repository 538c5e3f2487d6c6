package state

import (
	"fmt"
	"math"
)

// Point is a position in world coordinates: content space measured from the
// top-left of the full scrollable area, independent of the current scroll.
type Point struct{ X, Y float64 }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// Tool selects how a stroke is recorded and rendered.
type Tool int

const (
	ToolPen Tool = iota
	ToolArrow
)

func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolArrow:
		return "arrow"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool maps a wire name to a Tool.
func ParseTool(s string) (Tool, bool) {
	switch s {
	case "pen":
		return ToolPen, true
	case "arrow":
		return ToolArrow, true
	}
	return ToolPen, false
}

func (t Tool) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tool) UnmarshalText(b []byte) error {
	v, ok := ParseTool(string(b))
	if !ok {
		return fmt.Errorf("unknown tool %q", b)
	}
	*t = v
	return nil
}

// Mode is the overlay input mode.
type Mode int

const (
	ModeOff Mode = iota
	ModeAnnotating
	ModePassthrough
)

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeAnnotating:
		return "annotating"
	case ModePassthrough:
		return "passthrough"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Next returns the successor of m in the cycle Off -> Annotating -> Passthrough -> Off.
func (m Mode) Next() Mode {
	switch m {
	case ModeOff:
		return ModeAnnotating
	case ModeAnnotating:
		return ModePassthrough
	case ModePassthrough:
		return ModeOff
	}
	return ModeOff
}

// Visible reports whether the overlay is shown in this mode.
func (m Mode) Visible() bool { return m != ModeOff }

// Captures reports whether the overlay takes pointer input in this mode.
func (m Mode) Captures() bool { return m == ModeAnnotating }

// ParseMode maps a wire name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "off":
		return ModeOff, true
	case "annotating":
		return ModeAnnotating, true
	case "passthrough":
		return ModePassthrough, true
	}
	return ModeOff, false
}

// Stroke is one continuous mark. Points is never empty once the stroke is in
// a Store. An arrow keeps only its start and its latest end point.
type Stroke struct {
	ID     string
	Points []Point
	Color  Color
	Width  float64
	Tool   Tool
}

// NewStroke starts a stroke at p.
func NewStroke(p Point, c Color, width float64, tool Tool) *Stroke {
	return &Stroke{
		ID:     NewID(),
		Points: []Point{p},
		Color:  c,
		Width:  width,
		Tool:   tool,
	}
}

// Extend adds a sample to the stroke. Pen strokes grow a path; arrow strokes
// replace their end point so that only (start, end) is retained.
func (s *Stroke) Extend(p Point) {
	switch s.Tool {
	case ToolArrow:
		s.Points = append(s.Points[:1], p)
	case ToolPen:
		s.Points = append(s.Points, p)
	}
}

// Start returns the first point.
func (s *Stroke) Start() Point { return s.Points[0] }

// End returns the most recent point.
func (s *Stroke) End() Point { return s.Points[len(s.Points)-1] }
