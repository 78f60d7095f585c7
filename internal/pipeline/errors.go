package pipeline

import "errors"

var (
	ErrInvalidEncoding  = errors.New("document is not valid UTF-8")
	ErrExcluded         = errors.New("document is excluded")
	ErrSessionNotFound  = errors.New("session not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrEmptyDocument    = errors.New("document name is required")
)
