package gitdiff

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const markdownExt = ".md"

type gitDiff struct {
	repoPath string
}

// AddedLines diffs HEAD~1..HEAD. A root commit is diffed against the empty tree.
func (g *gitDiff) AddedLines(ctx context.Context) ([]AddedLine, error) {
	repo, err := git.PlainOpenWithOptions(g.repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, g.repoPath)
		}
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoHead
		}
		return nil, err
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	var parentTree *object.Tree
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, err
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, err
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, err
	}
	patch, err := changes.PatchContext(ctx)
	if err != nil {
		return nil, err
	}

	var out []AddedLine
	for _, fp := range patch.FilePatches() {
		if fp.IsBinary() {
			continue
		}
		_, to := fp.Files()
		if to == nil || !strings.EqualFold(filepath.Ext(to.Path()), markdownExt) {
			continue
		}
		for _, chunk := range fp.Chunks() {
			if chunk.Type() != diff.Add {
				continue
			}
			for _, line := range splitLines(chunk.Content()) {
				out = append(out, AddedLine{Path: to.Path(), Text: line})
			}
		}
	}
	return out, nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Content joins the added lines into one document for the extractor.
func Content(lines []AddedLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
