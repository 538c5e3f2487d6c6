package engine

// FrameSource delivers a callback on the next display refresh.
type FrameSource interface {
	RequestFrame(fn func())
}

// Scheduler coalesces repaint requests: any number of Invalidate calls
// before the next frame produce exactly one paint on that frame.
type Scheduler struct {
	frames  FrameSource
	paint   func()
	pending bool
	paints  int
}

func NewScheduler(frames FrameSource, paint func()) *Scheduler {
	return &Scheduler{frames: frames, paint: paint}
}

// Invalidate requests a full repaint on the next frame.
func (s *Scheduler) Invalidate() {
	if s.pending {
		return
	}
	s.pending = true
	s.frames.RequestFrame(s.onFrame)
}

func (s *Scheduler) onFrame() {
	s.pending = false
	s.run()
}

// Flush paints now, for cases where the surface is already invalid
// (resize). A pending frame still fires.
func (s *Scheduler) Flush() {
	s.run()
}

func (s *Scheduler) run() {
	s.paints++
	s.paint()
}

// Pending reports whether a frame has been requested but not delivered.
func (s *Scheduler) Pending() bool { return s.pending }

// Paints returns how many full repaints have run.
func (s *Scheduler) Paints() int { return s.paints }

// ManualFrames is a FrameSource advanced by explicit ticks.
type ManualFrames struct {
	queue []func()
}

func (m *ManualFrames) RequestFrame(fn func()) {
	m.queue = append(m.queue, fn)
}

// Tick runs the callbacks requested before this call. Callbacks requested
// while ticking wait for the next tick.
func (m *ManualFrames) Tick() {
	q := m.queue
	m.queue = nil
	for _, fn := range q {
		fn()
	}
}

// Queued returns the number of callbacks waiting for the next tick.
func (m *ManualFrames) Queued() int { return len(m.queue) }
