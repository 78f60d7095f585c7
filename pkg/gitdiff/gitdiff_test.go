package gitdiff

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitFiles(t *testing.T, repo *git.Repository, dir string, files map[string]string, msg string) {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, err := wt.Add(name)
		require.NoError(t, err)
	}
	_, err = wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestAddedLines(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	commitFiles(t, repo, dir, map[string]string{
		"notes/plan.md": "# Plan\n- [ ] old task\n",
		"main.go":       "package main\n",
	}, "initial")
	commitFiles(t, repo, dir, map[string]string{
		"notes/plan.md": "# Plan\n- [ ] old task\n- [ ] new task\n- [x] shipped\n",
		"main.go":       "package main\n\n// TODO: not markdown\n",
	}, "second")

	lines, err := New(filepath.Join(dir, "notes")).AddedLines(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []AddedLine{
		{Path: "notes/plan.md", Text: "- [ ] new task"},
		{Path: "notes/plan.md", Text: "- [x] shipped"},
	}, lines)
	assert.Equal(t, "- [ ] new task\n- [x] shipped\n", Content(lines))
}

func TestAddedLines_RootCommit(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	commitFiles(t, repo, dir, map[string]string{"README.md": "- [ ] first\n"}, "root")

	lines, err := New(dir).AddedLines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "- [ ] first", lines[0].Text)
}

func TestAddedLines_Errors(t *testing.T) {
	_, err := New(t.TempDir()).AddedLines(context.Background())
	assert.ErrorIs(t, err, ErrNotRepository)

	dir := t.TempDir()
	_, err = git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = New(dir).AddedLines(context.Background())
	assert.ErrorIs(t, err, ErrNoHead)
}
