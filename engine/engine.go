package engine

import (
	"io"
	"log/slog"
)

// DefaultAssumedItemHeight is used when no assumed height is configured.
const DefaultAssumedItemHeight = 15

// Container is the scrollable viewport the engine positions items in.
type Container interface {
	ScrollOffset() float64
	SetScrollOffset(offset float64)
	ViewportHeight() float64
}

// Measurer reports the rendered height of a mounted item.
type Measurer interface {
	Measure(key string) (height float64, ok bool)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(key string) (float64, bool)

func (f MeasureFunc) Measure(key string) (float64, bool) { return f(key) }

// Config holds the recognised engine options.
type Config struct {
	ItemCount         int
	AssumedItemHeight float64
	// ViewportHeight overrides the container's height when positive. When
	// both are zero the engine is unconstrained and renders every item.
	ViewportHeight float64
	// Disabled freezes all recomputation. Items and config are still stored.
	Disabled bool
}

type settings struct {
	cfg       Config
	frames    FrameScheduler
	logger    *slog.Logger
	missLimit int
}

// Option configures an Engine.
type Option func(*settings)

func WithAssumedItemHeight(h float64) Option {
	return func(s *settings) {
		if h > 0 {
			s.cfg.AssumedItemHeight = h
		}
	}
}

func WithViewportHeight(h float64) Option {
	return func(s *settings) { s.cfg.ViewportHeight = h }
}

func WithDisabled(d bool) Option {
	return func(s *settings) { s.cfg.Disabled = d }
}

// WithFrameScheduler sets the frame source for the post-scroll re-entry lock.
func WithFrameScheduler(f FrameScheduler) Option {
	return func(s *settings) { s.frames = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMissLimit overrides the Scroll-To search's consecutive-miss bound.
func WithMissLimit(k int) Option {
	return func(s *settings) {
		if k > 0 {
			s.missLimit = k
		}
	}
}

// Engine positions a thin window of items of type T inside a Container.
//
// All methods run on the host's UI goroutine; the engine does no locking.
type Engine[T any] struct {
	keyOf     func(T) string
	items     []T
	keys      []string
	container Container
	frames    FrameScheduler
	ledger    *Ledger
	cfg       Config
	missLimit int
	logger    *slog.Logger

	lock       scrollLock
	state      State
	lastOffset float64
}

// New creates an engine in the Idle state.
func New[T any](keyOf func(T) string, container Container, opts ...Option) *Engine[T] {
	s := settings{
		cfg:       Config{AssumedItemHeight: DefaultAssumedItemHeight},
		frames:    immediateFrames{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		missLimit: DefaultMissLimit,
	}
	for _, o := range opts {
		o(&s)
	}
	e := &Engine[T]{
		keyOf:     keyOf,
		container: container,
		frames:    s.frames,
		ledger:    NewLedger(s.cfg.AssumedItemHeight),
		cfg:       s.cfg,
		missLimit: s.missLimit,
		logger:    s.logger,
	}
	e.state = State{Status: StatusIdle, End: -1}
	e.lastOffset = container.ScrollOffset()
	return e
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (e *Engine[T]) State() State    { return e.state }
func (e *Engine[T]) Config() Config  { return e.cfg }
func (e *Engine[T]) Ledger() *Ledger { return e.ledger }
func (e *Engine[T]) Len() int        { return len(e.items) }

// Items returns the current collection. Callers must not modify it.
func (e *Engine[T]) Items() []T { return e.items }

// Locked reports whether scroll notifications are currently suppressed.
func (e *Engine[T]) Locked() bool { return e.lock.held }

// Window returns the inclusive render window.
func (e *Engine[T]) Window() (start, end int) { return e.state.Start, e.state.End }

// Key returns the stable key of item i.
func (e *Engine[T]) Key(i int) (string, bool) { return KeysOf(e.keys)(i) }

// ViewportHeight is the effective viewport height.
func (e *Engine[T]) ViewportHeight() float64 {
	if e.cfg.ViewportHeight > 0 {
		return e.cfg.ViewportHeight
	}
	return e.container.ViewportHeight()
}

// Unconstrained reports whether there is no viewport to virtualise into.
func (e *Engine[T]) Unconstrained() bool { return e.ViewportHeight() <= 0 }

// ContentHeight is the scrollable height hint for the filler: item count
// times the assumed item height.
func (e *Engine[T]) ContentHeight() float64 {
	return float64(len(e.items)) * e.cfg.AssumedItemHeight
}

// MaxScrollOffset is the largest offset the container can be scrolled to.
func (e *Engine[T]) MaxScrollOffset() float64 {
	return MaxScrollOffset(e.ContentHeight(), e.ViewportHeight())
}

// WindowOffset is where the first rendered item starts in content
// coordinates.
func (e *Engine[T]) WindowOffset() float64 { return e.state.WindowOffset }

// RelativeTopOf returns item i's distance from the viewport top for the
// current state. ok is false outside the render window.
func (e *Engine[T]) RelativeTopOf(i int) (float64, bool) {
	if e.state.Status == StatusIdle {
		return 0, false
	}
	return e.layout(e.state.Location(), e.state.Fraction).RelativeTopOf(i)
}

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// SetConfig applies every field of c except ItemCount, which always follows
// the collection.
func (e *Engine[T]) SetConfig(c Config) {
	if c.AssumedItemHeight > 0 && c.AssumedItemHeight != e.cfg.AssumedItemHeight {
		e.cfg.AssumedItemHeight = c.AssumedItemHeight
		e.ledger.SetDefault(c.AssumedItemHeight)
	}
	e.cfg.ViewportHeight = c.ViewportHeight
	e.cfg.Disabled = c.Disabled
	if !e.cfg.Disabled {
		e.relocate(e.container.ScrollOffset(), EventRetarget)
	}
}

// SetDisabled freezes or unfreezes recomputation. Unfreezing relocates at
// the container's current offset.
func (e *Engine[T]) SetDisabled(d bool) {
	if e.cfg.Disabled == d {
		return
	}
	e.cfg.Disabled = d
	if !d {
		e.relocate(e.container.ScrollOffset(), EventRetarget)
	}
}

// SetAssumedItemHeight changes the slice size and the ledger default.
func (e *Engine[T]) SetAssumedItemHeight(h float64) {
	if h <= 0 || h == e.cfg.AssumedItemHeight {
		return
	}
	e.cfg.AssumedItemHeight = h
	e.ledger.SetDefault(h)
	if !e.cfg.Disabled {
		e.relocate(e.container.ScrollOffset(), EventRetarget)
	}
}

// SetViewportHeight changes the configured viewport override.
func (e *Engine[T]) SetViewportHeight(h float64) {
	e.cfg.ViewportHeight = h
	if !e.cfg.Disabled {
		e.relocate(e.container.ScrollOffset(), EventRetarget)
	}
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// SetItems replaces the collection. When the length changed and a window was
// already on screen, the old position is re-anchored on the last unchanged
// item before the change so visible items above it do not move.
func (e *Engine[T]) SetItems(items []T) {
	oldKeys := e.keys
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = e.keyOf(it)
	}
	e.items = items
	e.keys = keys
	e.cfg.ItemCount = len(items)

	if e.cfg.Disabled {
		return
	}
	if e.Unconstrained() {
		e.relocate(0, EventItemsChanged)
		return
	}

	if len(oldKeys) != len(keys) && len(oldKeys) > 0 && e.state.Status != StatusIdle {
		target, ok := Reconcile(ReconcileRequest{
			Old:               SnapshotOf(oldKeys),
			New:               SnapshotOf(keys),
			ScrollOffset:      e.state.ScrollOffset,
			ViewportHeight:    e.ViewportHeight(),
			AssumedItemHeight: e.cfg.AssumedItemHeight,
			Ledger:            e.ledger,
			Logger:            e.logger,
		})
		if ok && e.scrollToRelative(target) {
			return
		}
	}

	offset := clampf(e.container.ScrollOffset(), 0, e.MaxScrollOffset())
	if offset != e.container.ScrollOffset() {
		e.container.SetScrollOffset(offset)
	}
	e.lastOffset = offset
	e.relocate(offset, EventItemsChanged)
}

// OnScroll handles a scroll notification from the container. It reports
// whether the render window was recomputed.
//
// An unchanged offset is a no-op, which also swallows the notification a
// programmatic scroll re-fires. While the re-entry lock is held the new
// offset is recorded as the baseline but nothing is recomputed.
func (e *Engine[T]) OnScroll() bool {
	offset := e.container.ScrollOffset()
	if offset == e.lastOffset && e.state.Status != StatusIdle {
		return false
	}
	e.lastOffset = offset
	if e.lock.held || e.cfg.Disabled {
		return false
	}
	e.relocate(offset, EventScroll)
	return true
}

// CommitMeasurements records the height of every item in the render window
// and settles the pixel offsets. It reports whether any height changed.
func (e *Engine[T]) CommitMeasurements(m Measurer) bool {
	if e.cfg.Disabled || e.state.Status == StatusIdle {
		return false
	}
	changed := false
	for i := e.state.Start; i <= e.state.End; i++ {
		key, ok := e.Key(i)
		if !ok {
			e.logger.Debug("measure skipped", "err", &MissingItemError{Index: i, Len: len(e.keys)})
			continue
		}
		if h, ok := m.Measure(key); ok && e.ledger.Record(key, h) {
			changed = true
		}
	}
	e.settle(EventRenderCommitted)
	return changed
}

// ScrollToOffset scrolls the container to px, clamped to the valid range.
func (e *Engine[T]) ScrollToOffset(px float64) {
	px = clampf(px, 0, e.MaxScrollOffset())
	e.container.SetScrollOffset(px)
	e.lastOffset = px
	if e.cfg.Disabled {
		return
	}
	e.relocate(px, EventRetarget)
}

// ScrollToRelative searches for the offset that puts t.ItemIndex at
// t.RelativeTop and applies it. An unreachable target is a silent no-op
// reported as false.
func (e *Engine[T]) ScrollToRelative(t RelativeTarget) bool {
	if e.cfg.Disabled || e.Unconstrained() {
		return false
	}
	return e.scrollToRelative(t)
}

// Unmount returns the engine to Idle and drops the ledger.
func (e *Engine[T]) Unmount() {
	e.ledger.Reset()
	e.lock.gen++
	e.lock.held = false
	e.state = State{Status: Dispatch(e.state.Status, EventUnmount), End: -1}
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (e *Engine[T]) scrollToRelative(t RelativeTarget) bool {
	res := Search(SearchRequest{
		Target:            t,
		Collection:        SnapshotOf(e.keys),
		Ledger:            e.ledger,
		AssumedItemHeight: e.cfg.AssumedItemHeight,
		ViewportHeight:    e.ViewportHeight(),
		Current:           e.container.ScrollOffset(),
		MissLimit:         e.missLimit,
		Logger:            e.logger,
	})
	if !res.Found {
		e.logger.Debug("scroll-to skipped", "err", ErrUnreachableTarget, "item", t.ItemIndex)
		return false
	}
	e.container.SetScrollOffset(res.Offset)
	e.lastOffset = res.Offset
	e.relocate(res.Offset, EventRetarget)
	e.lock.arm(e.frames, e.afterUnlock)
	return true
}

// afterUnlock catches up with scrolling that happened while locked.
func (e *Engine[T]) afterUnlock() {
	offset := e.container.ScrollOffset()
	if e.cfg.Disabled || offset == e.state.ScrollOffset {
		return
	}
	e.lastOffset = offset
	e.relocate(offset, EventScroll)
}

func (e *Engine[T]) relocate(offset float64, ev Event) {
	n := len(e.items)
	if e.Unconstrained() {
		e.state = State{
			Status: Dispatch(e.state.Status, ev),
			Start:  0,
			End:    n - 1,
		}
		if n == 0 {
			e.state.Located = 0
		}
		return
	}

	vh := e.ViewportHeight()
	if err := CheckGeometry(e.ContentHeight(), vh); err != nil {
		e.logger.Debug("scroll fraction clamped", "err", err, "items", n)
	}
	f := ScrollFraction(offset, e.ContentHeight(), vh)
	loc := Locate(f, n, Capacity(vh, e.cfg.AssumedItemHeight))
	e.state = State{
		Status:         Dispatch(e.state.Status, ev),
		ScrollOffset:   offset,
		Fraction:       f,
		Located:        loc.Index,
		OffsetFraction: loc.Offset,
		Start:          loc.Start,
		End:            loc.End,
	}
	e.applyLayout(loc, f)
}

func (e *Engine[T]) settle(ev Event) {
	e.state.Status = Dispatch(e.state.Status, ev)
	if e.Unconstrained() {
		return
	}
	e.applyLayout(e.state.Location(), e.state.Fraction)
}

func (e *Engine[T]) applyLayout(loc Location, f float64) {
	l := e.layout(loc, f)
	e.state.LocatedTop = l.LocatedTop()
	e.state.WindowOffset = e.state.ScrollOffset + l.WindowTop()
}

func (e *Engine[T]) layout(loc Location, f float64) Layout {
	l := NewLayout(loc, f, e.ViewportHeight(), len(e.keys), e.ledger, KeysOf(e.keys))
	l.logger = e.logger
	return l
}
