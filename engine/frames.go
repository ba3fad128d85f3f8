package engine

// FrameScheduler runs a callback at the next rendering-frame boundary.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// FrameQueue is a FrameScheduler driven by the host: every Advance call is
// one frame boundary. Callbacks requested while a frame runs land in the
// next frame.
type FrameQueue struct {
	pending []func()
}

// RequestFrame queues fn for the next Advance.
func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// Advance runs the callbacks queued before this call and reports how many ran.
func (q *FrameQueue) Advance() int {
	batch := q.pending
	q.pending = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// immediateFrames runs callbacks synchronously. Used when no scheduler is
// configured, which makes the re-entry lock a no-op.
type immediateFrames struct{}

func (immediateFrames) RequestFrame(fn func()) { fn() }

// scrollLock suppresses scroll-driven recomputation until two frame
// boundaries have passed. Re-arming supersedes any earlier release.
type scrollLock struct {
	held bool
	gen  uint64
}

func (l *scrollLock) arm(s FrameScheduler, released func()) {
	l.gen++
	gen := l.gen
	l.held = true
	s.RequestFrame(func() {
		s.RequestFrame(func() {
			if l.gen != gen {
				return
			}
			l.held = false
			if released != nil {
				released()
			}
		})
	})
}
