package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/miosa/osa-vlist/markdown"
	"github.com/miosa/osa-vlist/model"
	"github.com/miosa/osa-vlist/style"
)

const defaultEncoding = "cl100k_base"

// Transcript is a JSONL chat log, one message per line:
//
//	{"id":"m1","role":"user","content":"hello","time":"2024-05-01T10:00:00Z"}
//
// The file is re-read every Interval, so a transcript that is still being
// written grows on screen.
type Transcript struct {
	Path     string
	Encoding string
	Every    time.Duration

	// Count overrides the tiktoken counter.
	Count func(text string) int

	once    sync.Once
	counter func(string) int
	encErr  error
}

// NewTranscript returns a transcript source counting tokens with encoding.
func NewTranscript(path, encoding string, every time.Duration) *Transcript {
	return &Transcript{Path: path, Encoding: encoding, Every: every}
}

func (t *Transcript) Name() string { return "transcript" }

func (t *Transcript) Interval() time.Duration {
	if t.Every <= 0 {
		return defaultProcInterval
	}
	return t.Every
}

type transcriptLine struct {
	ID      string    `json:"id"`
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// Load parses the whole file. A malformed final line is taken to be a write
// in progress and skipped; a malformed line anywhere else is an error.
func (t *Transcript) Load(ctx context.Context) ([]model.Item, error) {
	count, err := t.tokenCounter()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(t.Path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// 10MB buffer to handle large messages in a single line.
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var (
		items   []model.Item
		pending error
		lineNo  int
	)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		if pending != nil {
			return nil, pending
		}
		var tl transcriptLine
		if err := json.Unmarshal([]byte(raw), &tl); err != nil {
			pending = fmt.Errorf("%s:%d: %w", t.Path, lineNo, err)
			continue
		}
		items = append(items, Message{
			Line:    lineNo,
			Key:     tl.ID,
			Role:    tl.Role,
			Content: tl.Content,
			Time:    tl.Time,
			Tokens:  count(tl.Content),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return items, nil
}

func (t *Transcript) tokenCounter() (func(string) int, error) {
	if t.Count != nil {
		return t.Count, nil
	}
	t.once.Do(func() {
		name := t.Encoding
		if name == "" {
			name = defaultEncoding
		}
		enc, err := tiktoken.GetEncoding(name)
		if err != nil {
			t.encErr = fmt.Errorf("load encoding %s: %w", name, err)
			return
		}
		t.counter = func(s string) int { return len(enc.Encode(s, nil, nil)) }
	})
	return t.counter, t.encErr
}

// Message is one transcript entry annotated with its token count.
type Message struct {
	Line    int
	Key     string
	Role    string
	Content string
	Time    time.Time
	Tokens  int
}

// ID is the message id, or its line number for messages without one.
func (m Message) ID() string {
	if m.Key != "" {
		return m.Key
	}
	return fmt.Sprintf("line-%d", m.Line)
}

func (m Message) Render(width int) string {
	meta := fmt.Sprintf(" · %d tokens", m.Tokens)
	if !m.Time.IsZero() {
		meta += " · " + m.Time.Local().Format("15:04:05")
	}
	head := lipgloss.NewStyle().MaxWidth(width).Render(
		style.RoleLabel(m.Role) + style.ItemMeta.Render(meta))
	body := markdown.RenderWidth(m.Content, width-2)
	if m.Role == "system" {
		body = style.Faint.Render(body)
	}
	return head + "\n" + style.ItemBody.Render(body)
}
