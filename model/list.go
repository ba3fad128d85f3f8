package model

import (
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/miosa/osa-vlist/engine"
	"github.com/miosa/osa-vlist/msg"
	"github.com/miosa/osa-vlist/style"
)

// ---------------------------------------------------------------------------
// Public interfaces
// ---------------------------------------------------------------------------

// Item is anything the list can render.
type Item interface {
	// ID returns a unique, stable identifier. It keys the render cache and
	// the engine's height ledger, so it must survive reloads of the source.
	ID() string

	// Render returns the item rendered for the given width. The number of
	// lines in the result is the item's measured height.
	Render(width int) string
}

// Versioned items drop their cached render when ContentVersion changes.
type Versioned interface {
	ContentVersion() int
}

const (
	frameInterval = time.Second / 60
	wheelLines    = 3
)

// ---------------------------------------------------------------------------
// Container
// ---------------------------------------------------------------------------

// scrollPort is the container the engine positions items in. Offsets are in
// terminal lines.
type scrollPort struct {
	offset        float64
	rows          int
	unconstrained bool
}

func (p *scrollPort) ScrollOffset() float64          { return p.offset }
func (p *scrollPort) SetScrollOffset(offset float64) { p.offset = offset }

func (p *scrollPort) ViewportHeight() float64 {
	if p.unconstrained {
		return 0
	}
	return float64(p.rows)
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// ListOption configures NewList.
type ListOption func(*ListModel)

// WithListSize sets the initial width and height.
func WithListSize(w, h int) ListOption {
	return func(m *ListModel) { m.width, m.height = w, h }
}

// WithItemHeight sets the assumed item height in lines.
func WithItemHeight(lines int) ListOption {
	return func(m *ListModel) {
		if lines > 0 {
			m.itemHeight = lines
		}
	}
}

// WithListViewport caps the number of visible rows at the list height.
// Negative renders every item without virtualisation.
func WithListViewport(rows int) ListOption {
	return func(m *ListModel) { m.viewport = rows }
}

func WithListDisabled(d bool) ListOption {
	return func(m *ListModel) { m.disabled = d }
}

func WithListLogger(l *slog.Logger) ListOption {
	return func(m *ListModel) {
		if l != nil {
			m.logger = l
		}
	}
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

type cachedRender struct {
	content string
	height  int
	width   int
	version int
}

// ListModel renders a virtual list: only the engine's render window is ever
// rendered, shifted by the engine's window offset.
type ListModel struct {
	eng    *engine.Engine[Item]
	port   *scrollPort
	frames *engine.FrameQueue
	cache  map[string]cachedRender
	logger *slog.Logger

	width      int
	height     int
	itemHeight int
	viewport   int
	disabled   bool

	frameQueued bool
}

// NewList constructs a ListModel with the supplied options.
func NewList(opts ...ListOption) ListModel {
	m := ListModel{
		port:       &scrollPort{},
		frames:     &engine.FrameQueue{},
		cache:      make(map[string]cachedRender),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		itemHeight: 3,
	}
	for _, o := range opts {
		o(&m)
	}
	m.port.rows = m.rows()
	m.port.unconstrained = m.viewport < 0

	eopts := []engine.Option{
		engine.WithAssumedItemHeight(float64(m.itemHeight)),
		engine.WithFrameScheduler(m.frames),
		engine.WithLogger(m.logger),
		engine.WithDisabled(m.disabled),
	}
	m.eng = engine.New(Item.ID, m.port, eopts...)
	return m
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// SetSize updates the dimensions. A width change invalidates every cached
// render and every measured height.
func (m *ListModel) SetSize(w, h int) {
	if w != m.width {
		m.cache = make(map[string]cachedRender)
		m.eng.Ledger().Reset()
	}
	m.width, m.height = w, h
	m.port.rows = m.rows()
	if m.port.unconstrained {
		m.port.offset = clampf(m.port.offset, 0, m.maxOffset())
		return
	}
	m.eng.ScrollToOffset(m.port.offset)
	m.commit()
}

// SetItems replaces the collection. Items that stay on screen keep their
// position. The returned command drives the post-scroll frames.
func (m *ListModel) SetItems(items []Item) tea.Cmd {
	m.eng.SetItems(items)
	if m.port.unconstrained {
		m.port.offset = clampf(m.port.offset, 0, m.maxOffset())
	}
	m.commit()
	return m.scheduleFrame()
}

// SetDisabled freezes or unfreezes the list.
func (m *ListModel) SetDisabled(d bool) {
	m.disabled = d
	m.eng.SetDisabled(d)
	m.commit()
}

// Disabled reports whether the list is frozen.
func (m ListModel) Disabled() bool { return m.disabled }

// ---------------------------------------------------------------------------
// Scroll
// ---------------------------------------------------------------------------

// ScrollBy moves the viewport by delta lines the way a user scroll does.
func (m *ListModel) ScrollBy(delta int) { m.scrollTo(m.port.offset + float64(delta)) }

func (m *ListModel) PageDown()     { m.ScrollBy(m.rows()) }
func (m *ListModel) PageUp()       { m.ScrollBy(-m.rows()) }
func (m *ListModel) ScrollTop()    { m.scrollTo(0) }
func (m *ListModel) ScrollBottom() { m.scrollTo(m.maxOffset()) }

// JumpTo scrolls so that item index starts offset lines below the top edge.
// It reports false, and leaves the view alone, when the item cannot be
// brought into view.
func (m *ListModel) JumpTo(index int, offset float64) (bool, tea.Cmd) {
	if m.port.unconstrained {
		if index < 0 || index >= m.eng.Len() {
			return false, nil
		}
		top := 0
		for _, it := range m.eng.Items()[:index] {
			top += m.render(it).height
		}
		m.scrollTo(float64(top) - offset)
		return true, nil
	}
	ok := m.eng.ScrollToRelative(engine.RelativeTarget{ItemIndex: index, RelativeTop: offset})
	if ok {
		m.commit()
	}
	return ok, m.scheduleFrame()
}

func (m *ListModel) scrollTo(offset float64) {
	m.port.SetScrollOffset(clampf(offset, 0, m.maxOffset()))
	if m.port.unconstrained {
		return
	}
	if m.eng.OnScroll() {
		m.commit()
	}
}

func (m ListModel) maxOffset() float64 {
	if m.port.unconstrained {
		total := 0
		for _, it := range m.eng.Items() {
			total += m.render(it).height
		}
		return math.Max(0, float64(total-m.height))
	}
	return m.eng.MaxScrollOffset()
}

// ---------------------------------------------------------------------------
// Update (bubbletea)
// ---------------------------------------------------------------------------

// Update handles mouse wheel scrolling and frame ticks. Callers forward
// whichever messages they want the list to respond to.
func (m ListModel) Update(message tea.Msg) (ListModel, tea.Cmd) {
	switch v := message.(type) {
	case tea.MouseMsg:
		if v.Action != tea.MouseActionPress {
			return m, nil
		}
		switch v.Button {
		case tea.MouseButtonWheelUp:
			m.ScrollBy(-wheelLines)
		case tea.MouseButtonWheelDown:
			m.ScrollBy(wheelLines)
		}
	case msg.FrameMsg:
		m.frameQueued = false
		m.frames.Advance()
		m.commit()
		return m, m.scheduleFrame()
	}
	return m, nil
}

// scheduleFrame keeps one frame tick in flight while the frame queue has
// work.
func (m *ListModel) scheduleFrame() tea.Cmd {
	if m.frameQueued || m.frames.Pending() == 0 {
		return nil
	}
	m.frameQueued = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return msg.FrameMsg{} })
}

// commit is the render pass: every item in the render window is rendered,
// its line count reported to the engine, and the pixel offsets settled.
func (m *ListModel) commit() {
	if m.contentWidth() <= 0 || m.port.unconstrained {
		return
	}
	items := m.eng.Items()
	start, end := m.eng.Window()
	for i := start; i <= end && i < len(items); i++ {
		m.render(items[i])
	}
	cw := m.contentWidth()
	changed := m.eng.CommitMeasurements(engine.MeasureFunc(func(key string) (float64, bool) {
		cr, ok := m.cache[key]
		if !ok || cr.width != cw {
			return 0, false
		}
		return float64(cr.height), true
	}))
	if changed {
		m.logger.Debug("render committed", "start", start, "end", end, "measured", m.eng.Ledger().Len())
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the render window into the visible rows plus a scrollbar.
func (m ListModel) View() string {
	rows := m.rows()
	cw := m.contentWidth()
	if rows <= 0 || cw <= 0 {
		return ""
	}

	var lines []string
	top := 0
	switch {
	case m.eng.Len() == 0:
		lines = []string{style.Faint.Render("  No items.")}
	case m.port.unconstrained:
		for _, it := range m.eng.Items() {
			lines = append(lines, splitLines(m.render(it).content)...)
		}
		top = -int(m.port.offset)
	case m.eng.State().Status == engine.StatusIdle:
		lines = []string{style.Faint.Render("  Virtualisation disabled.")}
	default:
		items := m.eng.Items()
		start, end := m.eng.Window()
		for i := start; i <= end && i < len(items); i++ {
			lines = append(lines, splitLines(m.render(items[i]).content)...)
		}
		st := m.eng.State()
		top = int(math.Round(st.WindowOffset - st.ScrollOffset))
	}

	clip := lipgloss.NewStyle().MaxWidth(cw)
	out := make([]string, rows)
	for r := range out {
		if li := r - top; li >= 0 && li < len(lines) {
			out[r] = clip.Render(lines[li])
		}
	}
	body := lipgloss.NewStyle().Width(cw).Render(strings.Join(out, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, body, m.scrollbar(rows))
}

func (m ListModel) scrollbar(rows int) string {
	if m.port.unconstrained {
		maxOff := m.maxOffset()
		f := 0.0
		if maxOff > 0 {
			f = m.port.offset / maxOff
		}
		return style.ScrollbarRender(f, rows, rows+int(maxOff), rows)
	}
	return style.ScrollbarRender(m.eng.State().Fraction, rows, int(m.eng.ContentHeight()), rows)
}

// rows is the number of visible list rows.
func (m ListModel) rows() int {
	if m.viewport > 0 && m.viewport < m.height {
		return m.viewport
	}
	return m.height
}

// contentWidth leaves one column for the scrollbar.
func (m ListModel) contentWidth() int { return m.width - 1 }

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// ListStats summarises the positioning state for the status line.
type ListStats struct {
	Len           int
	Located       int
	Start, End    int
	Status        engine.Status
	Fraction      float64
	Measured      int
	Locked        bool
	Disabled      bool
	Unconstrained bool
}

func (m ListModel) Stats() ListStats {
	st := m.eng.State()
	s := ListStats{
		Len:           m.eng.Len(),
		Located:       st.Located,
		Start:         st.Start,
		End:           st.End,
		Status:        st.Status,
		Fraction:      st.Fraction,
		Measured:      m.eng.Ledger().Len(),
		Locked:        m.eng.Locked(),
		Disabled:      m.disabled,
		Unconstrained: m.port.unconstrained,
	}
	if s.Unconstrained {
		if maxOff := m.maxOffset(); maxOff > 0 {
			s.Fraction = m.port.offset / maxOff
		}
	}
	return s
}

func (m ListModel) Len() int { return m.eng.Len() }

// ScrollOffset is the viewport's offset in lines.
func (m ListModel) ScrollOffset() float64 { return m.port.offset }

// ---------------------------------------------------------------------------
// Rendering cache
// ---------------------------------------------------------------------------

func (m ListModel) render(item Item) cachedRender {
	cw := m.contentWidth()
	if cw <= 0 {
		return cachedRender{height: 1}
	}
	id := item.ID()
	ver := 0
	if v, ok := item.(Versioned); ok {
		ver = v.ContentVersion()
	}
	if cr, ok := m.cache[id]; ok && cr.width == cw && cr.version == ver {
		return cr
	}
	content := item.Render(cw)
	cr := cachedRender{
		content: content,
		height:  lipgloss.Height(content),
		width:   cw,
		version: ver,
	}
	m.cache[id] = cr
	return cr
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
