package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LocalAnnotate/internal/viewport"
)

// ScrollPane adapts a nested scroll container to viewport.Element.
type ScrollPane struct {
	*container.Scroll
}

var _ viewport.Element = (*ScrollPane)(nil)

func (p *ScrollPane) ScrollOffset() (float64, float64) {
	return float64(p.Offset.X), float64(p.Offset.Y)
}

func (p *ScrollPane) ScrollBy(dx, dy float64) {
	scrollBy(p.Scroll, dx, dy)
}

// scrollBy moves s by a content delta the same way a mouse wheel would, so
// clamping and OnScrolled behave as for user scrolling.
func scrollBy(s *container.Scroll, dx, dy float64) {
	s.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(float32(-dx), float32(-dy))})
}

// Page is the scrollable content the overlay annotates. The outer scroll is
// the document; routes may add nested panes that scroll on their own.
type Page struct {
	outer    *container.Scroll
	panes    []*ScrollPane
	route    string
	onScroll func(viewport.Element)
}

var _ viewport.Root = (*Page)(nil)

func NewPage() *Page {
	p := &Page{}
	p.outer = container.NewScroll(widget.NewLabel(""))
	p.outer.OnScrolled = func(fyne.Position) { p.notify(nil) }
	return p
}

// Object returns the page's canvas object.
func (p *Page) Object() fyne.CanvasObject { return p.outer }

// OnScroll sets the scroll observer. Document scrolls pass nil.
func (p *Page) OnScroll(fn func(viewport.Element)) { p.onScroll = fn }

func (p *Page) notify(e viewport.Element) {
	if p.onScroll != nil {
		p.onScroll(e)
	}
}

func (p *Page) WindowOffset() (float64, float64) {
	return float64(p.outer.Offset.X), float64(p.outer.Offset.Y)
}

// ScrollingElement is nil: the outer scroll is the window itself.
func (p *Page) ScrollingElement() viewport.Element { return nil }

func (p *Page) ScrollBy(dx, dy float64) { scrollBy(p.outer, dx, dy) }

// Route returns the route currently loaded.
func (p *Page) Route() string { return p.route }

// Panes returns the nested scroll panes of the current route.
func (p *Page) Panes() []*ScrollPane { return p.panes }

// Load replaces the content with the given route and scrolls to the top.
func (p *Page) Load(route string) {
	p.route = route
	p.panes = nil
	p.outer.Content = p.build(route)
	p.outer.Offset = fyne.NewPos(0, 0)
	p.outer.Refresh()
	p.notify(nil)
}

func (p *Page) newPane(content fyne.CanvasObject, size fyne.Size) fyne.CanvasObject {
	s := container.NewScroll(content)
	s.SetMinSize(size)
	pane := &ScrollPane{Scroll: s}
	s.OnScrolled = func(fyne.Position) { p.notify(pane) }
	p.panes = append(p.panes, pane)
	return s
}

func (p *Page) build(route string) fyne.CanvasObject {
	title := canvas.NewText(routeTitle(route), theme.Color(theme.ColorNameForeground))
	title.TextSize = theme.TextHeadingSize()
	title.TextStyle = fyne.TextStyle{Bold: true}

	body := container.NewVBox(title)
	switch {
	case strings.HasPrefix(route, "/docs"):
		body.Add(paragraphs(4))
		body.Add(widget.NewLabel("Reference (scrolls on its own):"))
		body.Add(p.newPane(listing("ref", 80), fyne.NewSize(500, 220)))
		body.Add(paragraphs(8))
	case strings.HasPrefix(route, "/split"):
		left := p.newPane(listing("left", 120), fyne.NewSize(300, 480))
		right := p.newPane(paragraphs(20), fyne.NewSize(400, 480))
		body.Add(container.NewGridWithColumns(2, left, right))
	default:
		body.Add(paragraphs(30))
	}
	return body
}

func routeTitle(route string) string {
	switch {
	case strings.HasPrefix(route, "/docs"):
		return "Documentation"
	case strings.HasPrefix(route, "/split"):
		return "Split view"
	}
	return "Home"
}

const filler = "Scroll the page, then switch to annotating and draw over it. " +
	"Marks stay attached to the text underneath as it moves."

func paragraphs(n int) fyne.CanvasObject {
	box := container.NewVBox()
	for i := 1; i <= n; i++ {
		l := widget.NewLabel(fmt.Sprintf("%d. %s", i, filler))
		l.Wrapping = fyne.TextWrapWord
		box.Add(l)
	}
	return box
}

func listing(prefix string, n int) fyne.CanvasObject {
	box := container.NewVBox()
	for i := 1; i <= n; i++ {
		box.Add(widget.NewLabel(fmt.Sprintf("%s-%03d", prefix, i)))
	}
	return box
}
