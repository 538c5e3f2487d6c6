// Package nav resets the overlay when the host page changes route.
package nav

// RouteSource emits the new URL whenever the host's route may have changed.
type RouteSource interface {
	OnRouteChange(fn func(url string)) (cancel func())
}

// History is an in-process route stack. Its three entry points (push,
// replace and back/forward traversal) all feed one route-changed event.
type History struct {
	entries []string
	index   int
	subs    map[int]func(string)
	nextID  int
}

func NewHistory(initial string) *History {
	return &History{
		entries: []string{initial},
		subs:    make(map[int]func(string)),
	}
}

// URL returns the current entry.
func (h *History) URL() string { return h.entries[h.index] }

// PushState adds url after the current entry, dropping any forward entries.
func (h *History) PushState(url string) {
	h.entries = append(h.entries[:h.index+1], url)
	h.index++
	h.emit()
}

// ReplaceState overwrites the current entry.
func (h *History) ReplaceState(url string) {
	h.entries[h.index] = url
	h.emit()
}

// Back moves one entry back. It returns false at the first entry.
func (h *History) Back() bool { return h.Go(-1) }

// Forward moves one entry forward. It returns false at the last entry.
func (h *History) Forward() bool { return h.Go(1) }

// Go moves delta entries and emits a change. Out of range moves do nothing.
func (h *History) Go(delta int) bool {
	i := h.index + delta
	if delta == 0 || i < 0 || i >= len(h.entries) {
		return false
	}
	h.index = i
	h.emit()
	return true
}

// CanGoBack reports whether Back would move.
func (h *History) CanGoBack() bool { return h.index > 0 }

// CanGoForward reports whether Forward would move.
func (h *History) CanGoForward() bool { return h.index < len(h.entries)-1 }

func (h *History) OnRouteChange(fn func(url string)) (cancel func()) {
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() { delete(h.subs, id) }
}

func (h *History) emit() {
	url := h.URL()
	for _, fn := range h.subs {
		fn(url)
	}
}
