package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/miosa/osa-vlist/style"
)

// ToastLevel classifies toast severity.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastWarning
	ToastError
)

const (
	maxToasts = 3
	toastTTL  = 4 * time.Second
)

type toast struct {
	message string
	level   ToastLevel
	expiry  time.Time
}

// ToastsModel manages a queue of auto-dismissing notifications. Source errors
// land here so the list itself keeps its last good items.
type ToastsModel struct {
	queue []toast
	now   func() time.Time
}

// NewToasts creates an empty ToastsModel.
func NewToasts() ToastsModel {
	return ToastsModel{now: time.Now}
}

// Add enqueues a toast. The oldest toasts are dropped past maxToasts.
func (m *ToastsModel) Add(message string, level ToastLevel) {
	m.queue = append(m.queue, toast{
		message: message,
		level:   level,
		expiry:  m.clock().Add(toastTTL),
	})
	if len(m.queue) > maxToasts {
		m.queue = m.queue[len(m.queue)-maxToasts:]
	}
}

// AddError enqueues err as an error toast.
func (m *ToastsModel) AddError(context string, err error) {
	m.Add(fmt.Sprintf("%s: %v", context, err), ToastError)
}

// Tick prunes expired toasts. Call on every msg.TickMsg.
func (m *ToastsModel) Tick() {
	now := m.clock()
	alive := m.queue[:0]
	for _, t := range m.queue {
		if now.Before(t.expiry) {
			alive = append(alive, t)
		}
	}
	m.queue = alive
}

// HasToasts reports whether any toasts are visible.
func (m ToastsModel) HasToasts() bool {
	return len(m.queue) > 0
}

// View renders visible toasts as right-aligned colored lines.
func (m ToastsModel) View(termWidth int) string {
	if len(m.queue) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.queue))
	for _, t := range m.queue {
		icon, color := toastIconColor(t.level)
		rendered := lipgloss.NewStyle().
			Foreground(color).
			MaxWidth(termWidth).
			Render(fmt.Sprintf(" %s %s ", icon, t.message))
		pad := max(termWidth-lipgloss.Width(rendered), 0)
		lines = append(lines, strings.Repeat(" ", pad)+rendered)
	}
	return strings.Join(lines, "\n")
}

func (m ToastsModel) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

func toastIconColor(level ToastLevel) (string, lipgloss.TerminalColor) {
	switch level {
	case ToastWarning:
		return "⚠", style.Warning
	case ToastError:
		return "✘", style.Error
	default:
		return "✓", style.Success
	}
}
