package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/miosa/osa-vlist/markdown"
	"github.com/miosa/osa-vlist/model"
	"github.com/miosa/osa-vlist/style"
)

const defaultMaxCommits = 5000

// Git lists the commit history reachable from HEAD, newest first.
type Git struct {
	Path  string
	Limit int
}

func (g *Git) Name() string { return "git" }

// Load walks the log from HEAD. A repository without commits yields no items.
func (g *Git) Load(ctx context.Context) ([]model.Item, error) {
	repo, err := openRepo(g.Path)
	if err != nil {
		return nil, fmt.Errorf("open repo %q: %w", g.Path, err)
	}
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	defer iter.Close()

	limit := g.Limit
	if limit <= 0 {
		limit = defaultMaxCommits
	}
	items := make([]model.Item, 0, min(limit, 256))
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(items) >= limit {
			return storer.ErrStop
		}
		items = append(items, commitFrom(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}
	return items, nil
}

// openRepo opens the repository containing path. Falls back to ".".
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		path = "."
	}
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}

// Commit is one history entry. Its body is rendered as markdown, so commit
// heights vary with message length and terminal width.
type Commit struct {
	Hash    string
	Author  string
	When    time.Time
	Subject string
	Body    string
}

func commitFrom(c *object.Commit) Commit {
	subject, body, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return Commit{
		Hash:    c.Hash.String(),
		Author:  c.Author.Name,
		When:    c.Author.When,
		Subject: strings.TrimSpace(subject),
		Body:    strings.TrimSpace(body),
	}
}

func (c Commit) ID() string { return c.Hash }

func (c Commit) Render(width int) string {
	short := c.Hash
	if len(short) > 8 {
		short = short[:8]
	}
	title := lipgloss.NewStyle().MaxWidth(width).Render(
		style.ItemHash.Render(short) + " " + style.ItemTitle.Render(c.Subject))
	meta := style.ItemMeta.MaxWidth(width).Render(
		fmt.Sprintf("%s · %s", c.Author, c.When.UTC().Format("2006-01-02 15:04")))
	if c.Body == "" {
		return title + "\n" + meta
	}
	body := style.ItemBody.Render(markdown.RenderWidth(c.Body, width-2))
	return title + "\n" + meta + "\n" + body
}
