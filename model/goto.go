package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/miosa/osa-vlist/msg"
	"github.com/miosa/osa-vlist/style"
)

// GotoModel is the jump prompt opened with ":". It accepts an item index,
// optionally followed by a signed line offset from the viewport top:
//
//	:120      item 120 at the top edge
//	:120+5    item 120 five lines below the top edge
//	:120-2    item 120 starting two lines above the top edge
type GotoModel struct {
	ti     textinput.Model
	active bool
	err    string
}

// NewGoto returns a closed prompt.
func NewGoto() GotoModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "index[+offset]"
	ti.CharLimit = 32
	return GotoModel{ti: ti}
}

// Open shows and focuses the prompt.
func (m *GotoModel) Open() tea.Cmd {
	m.active = true
	m.err = ""
	m.ti.SetValue("")
	return m.ti.Focus()
}

// Close hides the prompt.
func (m *GotoModel) Close() {
	m.active = false
	m.ti.Blur()
}

// Active reports whether the prompt is shown and takes key input.
func (m GotoModel) Active() bool { return m.active }

// Update handles keys while the prompt is open. Enter emits msg.JumpRequest,
// Esc emits msg.JumpCancelled.
func (m GotoModel) Update(message tea.Msg) (GotoModel, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	if k, ok := message.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			req, err := ParseJump(m.ti.Value())
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.Close()
			return m, func() tea.Msg { return req }
		case tea.KeyEsc:
			m.Close()
			return m, func() tea.Msg { return msg.JumpCancelled{} }
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(message)
	m.err = ""
	return m, cmd
}

// View renders the prompt line, or nothing when closed.
func (m GotoModel) View() string {
	if !m.active {
		return ""
	}
	line := style.PromptChar.Render(":") + m.ti.View()
	if m.err != "" {
		line += "  " + style.ErrorText.Render(m.err)
	}
	return line
}

// ParseJump parses "index", "index+offset" or "index-offset".
func ParseJump(s string) (msg.JumpRequest, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return msg.JumpRequest{}, fmt.Errorf("empty jump target")
	}
	idxPart, offPart, sign := s, "", 0.0
	if i := strings.IndexAny(s[1:], "+-"); i >= 0 {
		idxPart, offPart = s[:i+1], strings.TrimSpace(s[i+2:])
		sign = 1
		if s[i+1] == '-' {
			sign = -1
		}
	}
	idx, err := strconv.Atoi(strings.TrimSpace(idxPart))
	if err != nil || idx < 0 {
		return msg.JumpRequest{}, fmt.Errorf("invalid item index %q", idxPart)
	}
	req := msg.JumpRequest{Index: idx}
	if sign == 0 {
		return req, nil
	}
	// The sign belongs to the separator; the offset itself is unsigned.
	if offPart == "" || strings.ContainsAny(offPart[:1], "+-") {
		return msg.JumpRequest{}, fmt.Errorf("invalid offset %q", offPart)
	}
	off, err := strconv.ParseFloat(offPart, 64)
	if err != nil || math.IsNaN(off) || math.IsInf(off, 0) {
		return msg.JumpRequest{}, fmt.Errorf("invalid offset %q", offPart)
	}
	req.Offset = sign * off
	return req, nil
}
