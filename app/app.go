package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/miosa/osa-vlist/config"
	"github.com/miosa/osa-vlist/model"
	"github.com/miosa/osa-vlist/msg"
	"github.com/miosa/osa-vlist/source"
)

const loadTimeout = 30 * time.Second

type itemsLoaded struct {
	gen   int
	items []model.Item
}

type Model struct {
	list   model.ListModel
	status model.StatusModel
	toasts model.ToastsModel
	jump   model.GotoModel
	src    source.Source
	cfg    config.Config
	logger *slog.Logger
	state  State
	keys   KeyMap
	width  int
	height int

	// gen identifies the current load cycle. A reload bumps it so results
	// and refresh ticks from an older cycle are ignored.
	gen int
}

// New builds the root model for src. A nil logger discards.
func New(cfg config.Config, src source.Source, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	status := model.NewStatus()
	status.SetSource(src.Name())
	status.SetLoading(true)
	return Model{
		list: model.NewList(
			model.WithItemHeight(cfg.AssumedItemHeight),
			model.WithListViewport(cfg.ViewportHeight),
			model.WithListDisabled(cfg.Disabled),
			model.WithListLogger(logger),
			model.WithListSize(80, 23),
		),
		status: status,
		toasts: model.NewToasts(),
		jump:   model.NewGoto(),
		src:    src,
		cfg:    cfg,
		logger: logger,
		state:  StateLoading,
		keys:   DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), tickCmd(), tea.WindowSize())
}

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch v := rawMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.list.SetSize(v.Width, m.listHeight())
		m.status.SetWidth(v.Width)
	case tea.KeyMsg:
		if m.state == StateJumping {
			m.jump, cmd = m.jump.Update(v)
			break
		}
		return m.handleKey(v)
	case tea.MouseMsg, msg.FrameMsg:
		m.list, cmd = m.list.Update(v)
	case msg.TickMsg:
		m.toasts.Tick()
		cmd = tickCmd()
	case itemsLoaded:
		if v.gen != m.gen {
			return m, nil
		}
		m.state = StateBrowsing
		m.status.SetLoading(false)
		m.logger.Debug("items loaded", "source", m.src.Name(), "count", len(v.items))
		cmd = tea.Batch(m.list.SetItems(v.items), m.scheduleRefresh())
	case msg.SourceError:
		if v.Gen != m.gen {
			return m, nil
		}
		if m.state == StateLoading {
			m.state = StateBrowsing
		}
		m.status.SetLoading(false)
		m.logger.Warn("source load failed", "source", v.Source, "err", v.Err)
		m.toasts.AddError(v.Source, v.Err)
		cmd = m.scheduleRefresh()
	case msg.RefreshMsg:
		if v.Gen != m.gen {
			return m, nil
		}
		cmd = m.load()
	case msg.JumpRequest:
		m.state = StateBrowsing
		var ok bool
		ok, cmd = m.list.JumpTo(v.Index, v.Offset)
		if !ok {
			m.toasts.Add(fmt.Sprintf("item %d is out of reach", v.Index), model.ToastWarning)
		}
	case msg.JumpCancelled:
		m.state = StateBrowsing
	}
	m.status.SetStats(m.list.Stats())
	return m, cmd
}

func (m Model) View() string {
	listView := m.list.View()
	if m.toasts.HasToasts() {
		listView = overlayBottom(listView, m.toasts.View(m.width))
	}
	bottom := m.status.View()
	if m.state == StateJumping {
		bottom = m.jump.View()
	}
	return listView + "\n" + bottom
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(k, m.keys.ScrollUp):
		m.list.ScrollBy(-1)
	case key.Matches(k, m.keys.ScrollDown):
		m.list.ScrollBy(1)
	case key.Matches(k, m.keys.PageUp):
		m.list.PageUp()
	case key.Matches(k, m.keys.PageDown):
		m.list.PageDown()
	case key.Matches(k, m.keys.Top):
		m.list.ScrollTop()
	case key.Matches(k, m.keys.Bottom):
		m.list.ScrollBottom()
	case key.Matches(k, m.keys.Jump):
		m.state = StateJumping
		cmd = m.jump.Open()
	case key.Matches(k, m.keys.Reload):
		m.gen++
		m.status.SetLoading(true)
		cmd = m.load()
	case key.Matches(k, m.keys.ToggleFreeze):
		m.list.SetDisabled(!m.list.Disabled())
		if m.list.Disabled() {
			m.toasts.Add("list frozen", model.ToastInfo)
		} else {
			m.toasts.Add("list unfrozen", model.ToastInfo)
		}
	}
	m.status.SetStats(m.list.Stats())
	return m, cmd
}

// load runs the source off the UI goroutine.
func (m Model) load() tea.Cmd {
	src, gen := m.src, m.gen
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		items, err := src.Load(ctx)
		if err != nil {
			return msg.SourceError{Source: src.Name(), Gen: gen, Err: err}
		}
		return itemsLoaded{gen: gen, items: items}
	}
}

// scheduleRefresh queues the next reload of a live source.
func (m Model) scheduleRefresh() tea.Cmd {
	live, ok := m.src.(source.Live)
	if !ok {
		return nil
	}
	gen := m.gen
	return tea.Tick(live.Interval(), func(time.Time) tea.Msg { return msg.RefreshMsg{Gen: gen} })
}

func (m Model) listHeight() int {
	return max(m.height-1, 1)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return msg.TickMsg(t) })
}

// overlayBottom replaces the last lines of base with overlay.
func overlayBottom(base, overlay string) string {
	lines := strings.Split(base, "\n")
	over := strings.Split(overlay, "\n")
	start := max(len(lines)-len(over), 0)
	for i := start; i < len(lines); i++ {
		lines[i] = over[i-start]
	}
	return strings.Join(lines, "\n")
}
