package taskfile

import "errors"

var (
	ErrEmptySource = errors.New("merge source is required")
)
