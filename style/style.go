package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors. SetTheme replaces them.
var (
	Primary   lipgloss.TerminalColor = lipgloss.Color("#7C3AED")
	Secondary lipgloss.TerminalColor = lipgloss.Color("#06B6D4")
	Success   lipgloss.TerminalColor = lipgloss.Color("#22C55E")
	Warning   lipgloss.TerminalColor = lipgloss.Color("#F59E0B")
	Error     lipgloss.TerminalColor = lipgloss.Color("#EF4444")
	Muted     lipgloss.TerminalColor = lipgloss.Color("#6B7280")
	Dim       lipgloss.TerminalColor = lipgloss.Color("#374151")
	Border    lipgloss.TerminalColor = lipgloss.Color("#4B5563")

	RoleUser      lipgloss.TerminalColor = lipgloss.Color("#06B6D4")
	RoleAssistant lipgloss.TerminalColor = lipgloss.Color("#7C3AED")
	RoleSystem    lipgloss.TerminalColor = lipgloss.Color("#6B7280")
)

// Base styles.
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style

	// Items
	ItemTitle lipgloss.Style
	ItemMeta  lipgloss.Style
	ItemHash  lipgloss.Style
	ItemBody  lipgloss.Style

	// Process rows
	ProcName lipgloss.Style
	ProcHot  lipgloss.Style
	ProcCmd  lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusAccent lipgloss.Style
	StatusLocked lipgloss.Style

	// Scrollbar
	ScrollThumb lipgloss.Style
	ScrollTrack lipgloss.Style

	// Jump prompt
	PromptChar lipgloss.Style

	Hint lipgloss.Style
)

func init() { rebuild() }

func rebuild() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	ItemTitle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
	ItemMeta = lipgloss.NewStyle().
		Foreground(Muted)
	ItemHash = lipgloss.NewStyle().
		Foreground(Warning)
	ItemBody = lipgloss.NewStyle().
		PaddingLeft(2)

	ProcName = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
	ProcHot = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
	ProcCmd = lipgloss.NewStyle().
		Foreground(Muted).
		PaddingLeft(2)

	StatusBar = lipgloss.NewStyle().
		Foreground(Muted).
		PaddingLeft(1)
	StatusAccent = lipgloss.NewStyle().
		Foreground(Secondary)
	StatusLocked = lipgloss.NewStyle().
		Foreground(Warning)

	ScrollThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollTrack = lipgloss.NewStyle().Foreground(Dim)

	PromptChar = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Hint = lipgloss.NewStyle().
		Foreground(Dim)
}

// RoleLabel renders a transcript role name in its role color.
func RoleLabel(role string) string {
	c := RoleSystem
	switch role {
	case "user":
		c = RoleUser
	case "assistant":
		c = RoleAssistant
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(role)
}

// ScrollbarRender renders a one-column scrollbar of the given height with the
// thumb placed at fraction (0 = top, 1 = bottom).
//
//	│
//	┃
//	│
func ScrollbarRender(fraction float64, visible, total, height int) string {
	if height <= 0 {
		return ""
	}
	thumb := height
	if total > 0 && visible < total {
		thumb = height * visible / total
	}
	if thumb < 1 {
		thumb = 1
	}
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	top := int(fraction * float64(height-thumb))

	rows := make([]string, height)
	for i := range rows {
		if i >= top && i < top+thumb {
			rows[i] = ScrollThumb.Render("┃")
		} else {
			rows[i] = ScrollTrack.Render("│")
		}
	}
	return strings.Join(rows, "\n")
}
