package gitdiff

import "context"

// IGitDiff reads the lines added to markdown files by the last commit.
type IGitDiff interface {
	AddedLines(ctx context.Context) ([]AddedLine, error)
}

// New opens the repository containing repoPath (parents are searched for .git).
func New(repoPath string) IGitDiff {
	return &gitDiff{repoPath: repoPath}
}
