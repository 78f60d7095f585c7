package feedback

import (
	"context"

	"github.com/thedomainai/task-picker-agent/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Judgments
	Record(ctx context.Context, input RecordInput) (model.FeedbackEntry, error)
	ReportMissed(ctx context.Context, input MissedInput) (model.FeedbackEntry, error)

	// Queries
	List(ctx context.Context, input ListInput) ([]model.FeedbackEntry, error)
	BalancedSample(ctx context.Context, perKind int) (map[model.Judgment][]model.FeedbackEntry, error)
	Stats(ctx context.Context) (model.FeedbackStats, error)
	Search(ctx context.Context, input SearchInput) ([]model.FeedbackEntry, error)
	RejectionReasons(ctx context.Context, limit int) ([]model.RejectionReason, error)
	Clear(ctx context.Context) (int64, error)

	// BuildContext assembles the conditioning block for the reasoning engine.
	// It never fails: an unreadable or too small ledger yields an empty context.
	BuildContext(ctx context.Context) model.FeedbackContext
}
