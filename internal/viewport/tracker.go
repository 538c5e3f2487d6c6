// Package viewport tracks which scroll source currently drives the content
// offset and maps between viewport and world coordinates.
package viewport

import "LocalAnnotate/internal/state"

// Element is a nested scrollable container.
type Element interface {
	ScrollOffset() (x, y float64)
	ScrollBy(dx, dy float64)
}

// Root is the top-level document. ScrollingElement may return nil when the
// host has no separate scrolling root.
type Root interface {
	WindowOffset() (x, y float64)
	ScrollingElement() Element
	ScrollBy(dx, dy float64)
}

// Tracker holds the current scroll offset and the container that produced it.
// The most recent scroll event wins; at most one container is active.
type Tracker struct {
	root   Root
	x, y   float64
	active Element
}

func NewTracker(root Root) *Tracker {
	return &Tracker{root: root}
}

// Sync refreshes the offset. An active nested container is re-read in
// place. Otherwise the root is probed for a nonzero offset: window scroll
// first, then the scrolling element. When both read zero the offset is
// (0,0) and no container is active until a live scroll event arrives.
func (t *Tracker) Sync() {
	if t.active != nil && !t.isDocument(t.active) {
		t.x, t.y = t.active.ScrollOffset()
		return
	}
	if wx, wy := t.root.WindowOffset(); wx != 0 || wy != 0 {
		t.x, t.y = wx, wy
		return
	}
	if se := t.root.ScrollingElement(); se != nil {
		if sx, sy := se.ScrollOffset(); sx != 0 || sy != 0 {
			t.x, t.y = sx, sy
			t.active = se
			return
		}
	}
	t.x, t.y = 0, 0
	t.active = nil
}

// OnScroll attributes a scroll notification. A nil target, or the root's
// scrolling element, is a document-level event and returns control to the
// window offset. Any other element becomes the active container.
func (t *Tracker) OnScroll(target Element) {
	if target == nil || t.isDocument(target) {
		t.x, t.y = t.root.WindowOffset()
		t.active = nil
		return
	}
	t.x, t.y = target.ScrollOffset()
	t.active = target
}

func (t *Tracker) isDocument(e Element) bool {
	se := t.root.ScrollingElement()
	return se != nil && se == e
}

// Offset returns the current scroll offset.
func (t *Tracker) Offset() (x, y float64) { return t.x, t.y }

// Active returns the nested container driving the offset, or nil for the root.
func (t *Tracker) Active() Element { return t.active }

// ToWorld maps a viewport point to world coordinates.
func (t *Tracker) ToWorld(p state.Point) state.Point { return p.Add(t.x, t.y) }

// ToViewport maps a world point to viewport coordinates.
func (t *Tracker) ToViewport(p state.Point) state.Point { return p.Add(-t.x, -t.y) }

// ScrollBy scrolls whatever currently drives the offset: the active nested
// container, otherwise the root.
func (t *Tracker) ScrollBy(dx, dy float64) {
	if t.active != nil && !t.isDocument(t.active) {
		t.active.ScrollBy(dx, dy)
		return
	}
	t.root.ScrollBy(dx, dy)
}
