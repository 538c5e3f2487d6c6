package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LocalAnnotate/internal/command"
	"LocalAnnotate/internal/config"
	"LocalAnnotate/internal/engine"
	"LocalAnnotate/internal/nav"
	annonet "LocalAnnotate/internal/net"
	"LocalAnnotate/internal/render"
	"LocalAnnotate/internal/viewport"
)

// HomeRoute is the route the page opens on.
const HomeRoute = "/"

var routes = []struct{ label, url string }{
	{"Home", HomeRoute},
	{"Docs", "/docs"},
	{"Split", "/split"},
}

// Host is the annotator window: page, overlay, control panel and the
// command channel they share.
type Host struct {
	App     fyne.App
	Window  fyne.Window
	Engine  *engine.Engine
	Channel *command.Channel
	Panel   *ControlPanel
	Overlay *Overlay
	Page    *Page
	History *nav.History
	Guard   *nav.Guard
}

// NewHost builds the annotator. It must be called on the fyne UI goroutine.
func NewHost(a fyne.App, cfg config.Config) *Host {
	h := &Host{App: a, Window: a.NewWindow("LocalAnnotate")}
	h.Window.Resize(fyne.NewSize(1024, 768))

	surface := render.NewGGSurface(1024, 640)
	h.Overlay = NewOverlay(surface)
	h.Page = NewPage()

	local := &LocalSender{}
	h.Panel = NewControlPanel(local)
	h.Panel.SetVisible(false)

	h.Engine = engine.New(
		viewport.NewTracker(h.Page),
		render.NewRenderer(surface),
		newFrameClock(FrameInterval),
		engine.WithHost(h.Overlay),
		engine.WithPanel(h.Panel),
		engine.WithConfig(cfg.Brush()),
	)
	h.Overlay.Attach(h.Engine)
	h.Overlay.BrushChanged(h.Engine.Color())
	h.Page.OnScroll(h.Engine.Scrolled)

	h.Channel = command.NewChannel(h.Engine)
	local.Channel = h.Channel
	h.Engine.Events().Subscribe(func(ev engine.Event) { h.Panel.SetMode(ev.Mode) })
	h.Panel.Sync()

	h.History = nav.NewHistory(HomeRoute)
	h.History.OnRouteChange(h.Page.Load)
	h.Page.Load(h.History.URL())
	h.Guard = nav.Watch(h.History, h.History.URL(), h.Engine)

	content := container.NewBorder(
		container.NewVBox(h.navBar(), h.Panel.Object()),
		nil, nil, nil,
		container.NewStack(h.Page.Object(), h.Overlay),
	)
	h.Window.SetContent(content)
	h.bindKeys()
	h.bindTray()
	return h
}

// Dispatch runs fn on the UI goroutine and waits, for use by the network
// layer.
func (h *Host) Dispatch(fn func()) {
	fyne.DoAndWait(fn)
}

// Request runs req through the command channel. It must be called on the UI
// goroutine.
func (h *Host) Request(req command.Request) command.Response {
	resp, _ := h.Channel.Handle(req)
	return resp
}

func (h *Host) navBar() fyne.CanvasObject {
	url := widget.NewLabel(h.History.URL())
	back := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { h.History.Back() })
	forward := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { h.History.Forward() })
	refresh := func(u string) {
		url.SetText(u)
		if h.History.CanGoBack() {
			back.Enable()
		} else {
			back.Disable()
		}
		if h.History.CanGoForward() {
			forward.Enable()
		} else {
			forward.Disable()
		}
	}
	h.History.OnRouteChange(refresh)
	refresh(h.History.URL())

	bar := container.NewHBox(back, forward, url, widget.NewSeparator())
	for _, r := range routes {
		r := r
		bar.Add(widget.NewButton(r.label, func() { h.History.PushState(r.url) }))
	}
	bar.Add(widget.NewSeparator())
	bar.Add(widget.NewButtonWithIcon("Annotate", theme.DocumentCreateIcon(), func() {
		h.Request(command.Request{Type: command.TypeToggleToolbar})
	}))
	return bar
}

func (h *Host) bindKeys() {
	c := h.Window.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyA, Modifier: fyne.KeyModifierAlt}, func(fyne.Shortcut) {
		h.Engine.HandleKey(engine.KeyEvent{Name: string(fyne.KeyA), Alt: true})
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		h.Engine.HandleKey(engine.KeyEvent{Name: string(fyne.KeyZ), Ctrl: true})
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) {
		h.Engine.HandleKey(engine.KeyEvent{Name: string(fyne.KeyZ), Super: true})
	})
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		h.Engine.HandleKey(engine.KeyEvent{Name: string(ev.Name)})
	})
}

// bindTray adds the global triggers: cycling the mode and toggling the
// toolbar, both routed through the command channel.
func (h *Host) bindTray() {
	desk, ok := h.App.(desktop.App)
	if !ok {
		return
	}
	desk.SetSystemTrayMenu(fyne.NewMenu("LocalAnnotate",
		fyne.NewMenuItem("Cycle mode", func() {
			h.Request(command.Request{Type: command.TypeCycleMode})
		}),
		fyne.NewMenuItem("Toggle toolbar", func() {
			h.Request(command.Request{Type: command.TypeToggleToolbar})
		}),
		fyne.NewMenuItem("Show window", func() { h.Window.Show() }),
	))
}

// SetShareLink shows how a remote control panel can connect.
func (h *Host) SetShareLink(link string) {
	h.Window.SetTitle(fmt.Sprintf("LocalAnnotate - %s", link))
}

// RunPanel opens a remote control panel window bound to client.
func RunPanel(a fyne.App, client *annonet.Client, addr string) {
	w := a.NewWindow("LocalAnnotate panel - " + addr)
	panel := NewControlPanel(NewRemoteSender(client))
	client.OnEvent(func(ev engine.Event) {
		if ev.Type != engine.EventModeChanged {
			return
		}
		fyne.Do(func() { panel.SetMode(ev.Mode) })
	})
	go func() {
		<-client.Done()
		fyne.Do(func() { panel.SetStatus("Disconnected") })
	}()

	toggle := widget.NewButton("Toggle toolbar", func() {
		panel.send.Send(command.Request{Type: command.TypeToggleToolbar}, nil)
	})
	w.SetContent(container.NewVBox(panel.Object(), toggle))
	panel.Sync()
	panel.SetStatus("Connected to " + addr)
	w.ShowAndRun()
}
