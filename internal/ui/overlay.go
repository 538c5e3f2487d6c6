package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LocalAnnotate/internal/engine"
	"LocalAnnotate/internal/render"
	"LocalAnnotate/internal/state"
)

// Overlay stacks the annotation surface over the page. The surface image
// never takes input; the capture layer above it is only shown while
// annotating, so in passthrough the page beneath receives pointer events.
type Overlay struct {
	widget.BaseWidget

	surface   *render.GGSurface
	display   *canvas.Image
	capture   *captureLayer
	indicator *fyne.Container
	badge     *canvas.Rectangle
	label     *canvas.Text

	engine *engine.Engine
	mode   state.Mode
	brush  state.Color
}

var _ engine.Host = (*Overlay)(nil)

func NewOverlay(surface *render.GGSurface) *Overlay {
	o := &Overlay{
		surface: surface,
		brush:   state.DefaultColor,
	}
	o.display = canvas.NewImageFromImage(surface.Image())
	o.display.FillMode = canvas.ImageFillStretch
	o.display.ScaleMode = canvas.ImageScalePixels
	o.capture = newCaptureLayer(o)

	o.badge = canvas.NewRectangle(color.Black)
	o.badge.CornerRadius = 14
	o.label = canvas.NewText("", color.White)
	o.label.TextStyle = fyne.TextStyle{Bold: true}
	o.label.TextSize = theme.TextSize()
	pill := container.NewStack(o.badge, container.NewPadded(o.label))
	o.indicator = container.NewVBox(layout.NewSpacer(), container.NewHBox(layout.NewSpacer(), pill))

	o.ExtendBaseWidget(o)
	o.ApplyMode(state.ModeOff)
	return o
}

// Attach connects the overlay to the engine that drives it.
func (o *Overlay) Attach(e *engine.Engine) {
	o.engine = e
}

// ApplyMode implements engine.Host.
func (o *Overlay) ApplyMode(m state.Mode) {
	o.mode = m
	switch m {
	case state.ModeOff:
		o.display.Hide()
		o.capture.Hide()
		o.indicator.Hide()
	case state.ModeAnnotating:
		o.display.Show()
		o.capture.Show()
		o.indicator.Show()
	case state.ModePassthrough:
		o.display.Show()
		o.capture.Hide()
		o.indicator.Show()
	}
	o.updateIndicator()
}

// BrushChanged implements engine.Host.
func (o *Overlay) BrushChanged(c state.Color) {
	o.brush = c
	o.updateIndicator()
}

func (o *Overlay) updateIndicator() {
	switch o.mode {
	case state.ModeOff:
		return
	case state.ModeAnnotating:
		o.label.Text = "Annotating"
		o.badge.FillColor = o.brush
		o.label.Color = o.brush.Contrast()
	case state.ModePassthrough:
		o.label.Text = "Viewing"
		o.badge.FillColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
		o.label.Color = color.White
	}
	o.badge.Refresh()
	o.label.Refresh()
}

// Present implements engine.Host.
func (o *Overlay) Present() {
	o.display.Image = o.surface.Image()
	o.display.Refresh()
}

// Image returns what is currently on the overlay surface.
func (o *Overlay) Image() image.Image { return o.surface.Image() }

func (o *Overlay) resized(size fyne.Size) {
	if o.engine == nil {
		return
	}
	o.engine.Resize(int(size.Width), int(size.Height))
}

func (o *Overlay) CreateRenderer() fyne.WidgetRenderer {
	return &overlayRenderer{overlay: o}
}

type overlayRenderer struct {
	overlay *Overlay
}

func (r *overlayRenderer) Objects() []fyne.CanvasObject {
	o := r.overlay
	return []fyne.CanvasObject{o.display, o.capture, o.indicator}
}

func (r *overlayRenderer) Layout(size fyne.Size) {
	o := r.overlay
	for _, obj := range r.Objects() {
		obj.Move(fyne.NewPos(0, 0))
	}
	o.display.Resize(size)
	o.capture.Resize(size)
	pad := theme.Padding() * 4
	o.indicator.Move(fyne.NewPos(0, 0))
	o.indicator.Resize(size.SubtractWidthHeight(pad, pad))
	o.resized(size)
}

func (r *overlayRenderer) MinSize() fyne.Size { return fyne.NewSize(1, 1) }

func (r *overlayRenderer) Refresh() {
	canvas.Refresh(r.overlay.display)
}

func (r *overlayRenderer) Destroy() {}

// captureLayer is the transparent input sheet shown while annotating.
type captureLayer struct {
	widget.BaseWidget
	overlay *Overlay
}

var _ fyne.Draggable = (*captureLayer)(nil)
var _ fyne.Scrollable = (*captureLayer)(nil)
var _ desktop.Mouseable = (*captureLayer)(nil)
var _ desktop.Cursorable = (*captureLayer)(nil)

func newCaptureLayer(o *Overlay) *captureLayer {
	c := &captureLayer{overlay: o}
	c.ExtendBaseWidget(c)
	return c
}

func (c *captureLayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (c *captureLayer) Cursor() desktop.Cursor { return desktop.CrosshairCursor }

func toPoint(p fyne.Position) state.Point {
	return state.Point{X: float64(p.X), Y: float64(p.Y)}
}

func toButton(b desktop.MouseButton) engine.Button {
	switch b {
	case desktop.MouseButtonSecondary:
		return engine.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return engine.ButtonTertiary
	}
	return engine.ButtonPrimary
}

func (c *captureLayer) MouseDown(e *desktop.MouseEvent) {
	if eng := c.overlay.engine; eng != nil {
		eng.PointerDown(toPoint(e.Position), toButton(e.Button))
	}
}

func (c *captureLayer) MouseUp(*desktop.MouseEvent) {
	if eng := c.overlay.engine; eng != nil {
		eng.PointerUp()
	}
}

func (c *captureLayer) Dragged(e *fyne.DragEvent) {
	if eng := c.overlay.engine; eng != nil {
		eng.PointerMove(toPoint(e.Position))
	}
}

func (c *captureLayer) DragEnd() {
	if eng := c.overlay.engine; eng != nil {
		eng.PointerUp()
	}
}

// Scrolled redirects the wheel to the content beneath. Fyne deltas are
// positive when scrolling up, the opposite of content offsets.
func (c *captureLayer) Scrolled(e *fyne.ScrollEvent) {
	if eng := c.overlay.engine; eng != nil {
		eng.Wheel(float64(-e.Scrolled.DX), float64(-e.Scrolled.DY))
	}
}
