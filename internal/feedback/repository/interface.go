package repository

import (
	"context"

	"github.com/thedomainai/task-picker-agent/internal/model"
)

// Repository is the append-only feedback ledger.
type Repository interface {
	Create(ctx context.Context, opt CreateOptions) (model.FeedbackEntry, error)
	List(ctx context.Context, opt ListOptions) ([]model.FeedbackEntry, error)
	Stats(ctx context.Context) (model.FeedbackStats, error)
	Search(ctx context.Context, opt SearchOptions) ([]model.FeedbackEntry, error)
	RejectionReasons(ctx context.Context, limit int) ([]model.RejectionReason, error)
	Clear(ctx context.Context) (int64, error)
}
