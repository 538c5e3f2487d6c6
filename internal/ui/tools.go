package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LocalAnnotate/internal/command"
	"LocalAnnotate/internal/engine"
	"LocalAnnotate/internal/state"
)

// Sender delivers a request to the engine. done, if not nil, runs on the UI
// goroutine with the response; ok is false when nothing answered. Send never
// blocks on the network.
type Sender interface {
	Send(req command.Request, done func(resp command.Response, ok bool))
}

// LocalSender talks to a channel in the same process, on the UI goroutine.
type LocalSender struct {
	Channel *command.Channel
}

func (s *LocalSender) Send(req command.Request, done func(command.Response, bool)) {
	resp, ok := s.Channel.Handle(req)
	if done != nil {
		done(resp, ok)
	}
}

var palette = []state.Color{
	{R: 0xff},
	{R: 0xff, G: 0x99},
	{R: 0xff, G: 0xd7},
	{G: 0xb0, B: 0x50},
	{B: 0xff},
	{R: 0x80, B: 0x80},
	{},
	{R: 0xff, G: 0xff, B: 0xff},
}

var modeLabels = []struct {
	mode  state.Mode
	label string
}{
	{state.ModeOff, "Off"},
	{state.ModeAnnotating, "Annotate"},
	{state.ModePassthrough, "View"},
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    state.Color
	OnTapped func(state.Color)
}

func newColorSwatch(c state.Color, tapped func(state.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// ControlPanel is the floating tool strip: mode, tool, color, size, undo
// and clear. It only issues requests; the engine is the source of truth.
type ControlPanel struct {
	send Sender

	modes   *widget.RadioGroup
	tools   *widget.RadioGroup
	current *canvas.Rectangle
	hex     *widget.Entry
	size    *widget.Slider
	sizeVal *widget.Label
	status  *widget.Label
	root    *fyne.Container

	syncing bool
}

var _ engine.Panel = (*ControlPanel)(nil)

func NewControlPanel(send Sender) *ControlPanel {
	p := &ControlPanel{send: send}

	labels := make([]string, len(modeLabels))
	for i, m := range modeLabels {
		labels[i] = m.label
	}
	p.modes = widget.NewRadioGroup(labels, p.onModePicked)
	p.modes.Horizontal = true
	p.modes.Required = true

	p.tools = widget.NewRadioGroup([]string{"Pen", "Arrow"}, p.onToolPicked)
	p.tools.Horizontal = true
	p.tools.Required = true

	p.current = canvas.NewRectangle(state.DefaultColor)
	p.current.SetMinSize(fyne.NewSize(24, 24))
	p.current.CornerRadius = 12

	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, p.pickColor))
	}
	p.hex = widget.NewEntry()
	p.hex.SetPlaceHolder("#rrggbb")
	p.hex.OnSubmitted = func(s string) {
		col, err := state.ParseColor(s)
		if err != nil {
			p.SetStatus(err.Error())
			return
		}
		p.pickColor(col)
	}

	p.size = widget.NewSlider(engine.MinSize, engine.MaxSize)
	p.size.Step = 1
	p.sizeVal = widget.NewLabel("3")
	p.size.OnChanged = p.onSizeChanged
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), p.size)

	undo := widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() {
		p.send.Send(command.Request{Type: command.TypeUndo}, nil)
	})
	clearBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		p.send.Send(command.Request{Type: command.TypeClear}, nil)
	})
	p.status = widget.NewLabel("")

	p.root = container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Mode:"), p.modes,
			widget.NewSeparator(),
			widget.NewLabel("Tool:"), p.tools,
			widget.NewSeparator(),
			undo, clearBtn,
			layout.NewSpacer(),
			p.status,
		),
		container.NewHBox(
			widget.NewLabel("Color:"), p.current, colorBox,
			container.New(layout.NewGridWrapLayout(fyne.NewSize(100, 35)), p.hex),
			widget.NewSeparator(),
			widget.NewLabel("Size:"), sliderContainer, p.sizeVal,
		),
	)
	return p
}

// Object returns the panel's canvas object.
func (p *ControlPanel) Object() fyne.CanvasObject { return p.root }

// Visible implements engine.Panel.
func (p *ControlPanel) Visible() bool { return p.root.Visible() }

// SetVisible implements engine.Panel.
func (p *ControlPanel) SetVisible(v bool) {
	if v {
		p.root.Show()
	} else {
		p.root.Hide()
	}
}

// SetStatus shows a short message at the end of the strip.
func (p *ControlPanel) SetStatus(text string) {
	p.status.SetText(text)
}

// Sync loads the current engine state into the widgets.
func (p *ControlPanel) Sync() {
	p.send.Send(command.Request{Type: command.TypeGetState}, func(resp command.Response, ok bool) {
		if !ok {
			p.SetStatus("No annotator")
			return
		}
		p.apply(resp)
	})
}

// SetMode reflects a mode change that happened elsewhere.
func (p *ControlPanel) SetMode(mode string) {
	p.apply(command.Response{Mode: mode})
}

func (p *ControlPanel) apply(resp command.Response) {
	p.syncing = true
	defer func() { p.syncing = false }()

	if m, ok := state.ParseMode(resp.Mode); ok {
		p.modes.SetSelected(modeLabel(m))
	}
	if t, ok := state.ParseTool(resp.Tool); ok {
		switch t {
		case state.ToolPen:
			p.tools.SetSelected("Pen")
		case state.ToolArrow:
			p.tools.SetSelected("Arrow")
		}
	}
	if col, err := state.ParseColor(resp.Color); err == nil {
		p.showColor(col)
	}
	if resp.Size > 0 {
		p.size.SetValue(float64(resp.Size))
		p.sizeVal.SetText(fmt.Sprintf("%d", resp.Size))
	}
}

func modeLabel(m state.Mode) string {
	for _, ml := range modeLabels {
		if ml.mode == m {
			return ml.label
		}
	}
	return ""
}

func (p *ControlPanel) onModePicked(label string) {
	if p.syncing {
		return
	}
	for _, ml := range modeLabels {
		if ml.label == label {
			p.send.Send(command.Request{Type: command.TypeSetMode, Mode: ml.mode.String()}, nil)
			return
		}
	}
}

func (p *ControlPanel) onToolPicked(label string) {
	if p.syncing {
		return
	}
	tool := state.ToolPen
	if label == "Arrow" {
		tool = state.ToolArrow
	}
	p.send.Send(command.Request{Type: command.TypeSetTool, Tool: tool.String()}, nil)
}

func (p *ControlPanel) pickColor(c state.Color) {
	p.send.Send(command.Request{Type: command.TypeSetColor, Color: c.String()}, func(resp command.Response, ok bool) {
		if !ok {
			return
		}
		if col, err := state.ParseColor(resp.Color); err == nil {
			p.showColor(col)
		}
	})
}

func (p *ControlPanel) showColor(c state.Color) {
	p.current.FillColor = c
	p.current.Refresh()
	p.hex.SetText(c.String())
}

func (p *ControlPanel) onSizeChanged(v float64) {
	p.sizeVal.SetText(fmt.Sprintf("%d", int(v)))
	if p.syncing {
		return
	}
	p.send.Send(command.Request{Type: command.TypeSetSize, Size: int(v)}, nil)
}
