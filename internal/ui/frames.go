package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// FrameInterval is the repaint cadence of the overlay.
const FrameInterval = time.Second / 60

// frameClock is an engine.FrameSource that batches requests and delivers
// them together on the fyne UI goroutine once per interval.
type frameClock struct {
	interval time.Duration

	mu    sync.Mutex
	queue []func()
	armed bool
}

func newFrameClock(interval time.Duration) *frameClock {
	return &frameClock{interval: interval}
}

func (f *frameClock) RequestFrame(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fn)
	if !f.armed {
		f.armed = true
		time.AfterFunc(f.interval, f.fire)
	}
}

func (f *frameClock) fire() {
	f.mu.Lock()
	q := f.queue
	f.queue = nil
	f.armed = false
	f.mu.Unlock()

	fyne.Do(func() {
		for _, fn := range q {
			fn()
		}
	})
}
