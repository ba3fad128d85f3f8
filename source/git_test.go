package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitFile(t *testing.T, wt *git.Worktree, dir, name, message string, when time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(message), 0o644))
	_, err := wt.Add(name)
	require.NoError(t, err)
	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "Ada", Email: "ada@example.com", When: when},
	})
	require.NoError(t, err)
}

func TestGit_LoadNewestFirst(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	commitFile(t, wt, dir, "a.txt", "first commit", base)
	commitFile(t, wt, dir, "b.txt", "second commit\n\nwith a *body*", base.Add(time.Hour))
	commitFile(t, wt, dir, "c.txt", "third commit", base.Add(2*time.Hour))

	items, err := (&Git{Path: dir}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	newest := items[0].(Commit)
	assert.Equal(t, "third commit", newest.Subject)
	assert.Len(t, newest.ID(), 40)

	second := items[1].(Commit)
	assert.Equal(t, "second commit", second.Subject)
	assert.Equal(t, "with a *body*", second.Body)
	assert.Greater(t, strings.Count(second.Render(60), "\n"), strings.Count(newest.Render(60), "\n"))

	limited, err := (&Git{Path: dir, Limit: 2}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGit_SubdirectoryFindsRepo(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	commitFile(t, wt, dir, "a.txt", "only", time.Now())

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	items, err := (&Git{Path: sub}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestGit_EmptyRepoHasNoItems(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	items, err := (&Git{Path: dir}).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGit_NotARepository(t *testing.T) {
	_, err := (&Git{Path: t.TempDir()}).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, git.ErrRepositoryNotExists)
}
