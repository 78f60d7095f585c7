package taskfile

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Merge filters, dedups and appends candidates to the task document.
	Merge(ctx context.Context, input MergeInput) (MergeOutput, error)

	// ExistingTasks returns the normalized text of every checkbox already in
	// the task document. A missing document yields an empty set.
	ExistingTasks(ctx context.Context) (map[string]struct{}, error)

	// Progress counts checked and unchecked boxes in the task document.
	Progress(ctx context.Context) (Progress, error)
}
