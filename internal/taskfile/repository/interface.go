package repository

import "context"

// Repository is the append-only task document.
type Repository interface {
	// Read returns the whole document; a missing file reads as "".
	Read(ctx context.Context) (string, error)
	// Append writes block at the end of the document in one step. On failure
	// the document is left as it was.
	Append(ctx context.Context, block string) error
	Path() string
}
