package repository

import (
	"time"

	"github.com/thedomainai/task-picker-agent/internal/model"
)

// CreateOptions holds parameters for appending a ledger entry.
type CreateOptions struct {
	TaskText     string
	SourceText   string
	SourceFile   string
	Judgment     model.Judgment
	ModifiedText *string
	Reason       *string
	Confidence   model.Confidence
	Tags         []string
	CreatedAt    time.Time // zero = now
}

// ListOptions filters entries newest-first.
type ListOptions struct {
	Judgment model.Judgment // empty = all kinds
	Limit    int            // <= 0 = DefaultLimit
}

// SearchOptions holds a case-preserving substring query over task and source text.
type SearchOptions struct {
	Text  string
	Limit int
}

const DefaultLimit = 10
