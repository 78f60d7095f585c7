package gitdiff

import "errors"

var (
	ErrNotRepository = errors.New("not a git repository")
	ErrNoHead        = errors.New("repository has no commits")
)
