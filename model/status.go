package model

import (
	"fmt"
	"strings"

	"github.com/miosa/osa-vlist/style"
)

// StatusModel renders the bottom status line:
//
//	git · 1204 items · #500 [495–505] · measure_settled · 50%
type StatusModel struct {
	source  string
	stats   ListStats
	loading bool
	width   int
}

// NewStatus returns a zero-value StatusModel.
func NewStatus() StatusModel {
	return StatusModel{}
}

func (m *StatusModel) SetSource(name string)   { m.source = name }
func (m *StatusModel) SetStats(s ListStats)    { m.stats = s }
func (m *StatusModel) SetLoading(loading bool) { m.loading = loading }
func (m *StatusModel) SetWidth(w int)          { m.width = w }

// View renders the status line.
func (m StatusModel) View() string {
	s := m.stats
	parts := []string{style.StatusAccent.Render(m.source)}
	if m.loading {
		parts = append(parts, "loading…")
	}
	parts = append(parts, fmt.Sprintf("%d items", s.Len))

	switch {
	case s.Unconstrained:
		parts = append(parts, "all rendered")
	case s.End >= s.Start:
		parts = append(parts, fmt.Sprintf("#%d [%d–%d]", s.Located, s.Start, s.End))
	}
	parts = append(parts, s.Status.String(), fmt.Sprintf("%d%%", int(s.Fraction*100+0.5)))

	if s.Locked {
		parts = append(parts, style.StatusLocked.Render("locked"))
	}
	if s.Disabled {
		parts = append(parts, style.StatusLocked.Render("frozen"))
	}
	line := strings.Join(parts, " · ")
	if m.width > 0 {
		return style.StatusBar.MaxWidth(m.width).Render(line)
	}
	return style.StatusBar.Render(line)
}
