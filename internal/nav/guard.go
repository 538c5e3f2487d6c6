package nav

import "log"

// Resetter is what the guard resets on a route change.
type Resetter interface {
	Reset()
}

// Guard resets the overlay whenever the route source reports a URL that
// differs from the last one seen.
type Guard struct {
	current string
	target  Resetter
	cancel  func()
}

// Watch starts guarding target against route changes from src.
func Watch(src RouteSource, initial string, target Resetter) *Guard {
	g := &Guard{current: initial, target: target}
	g.cancel = src.OnRouteChange(g.check)
	return g
}

func (g *Guard) check(url string) {
	if url == g.current {
		return
	}
	log.Printf("[NAV] Route changed %s -> %s, resetting overlay", g.current, url)
	g.current = url
	g.target.Reset()
}

// URL returns the last URL the guard saw.
func (g *Guard) URL() string { return g.current }

// Stop unsubscribes from the route source.
func (g *Guard) Stop() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}
