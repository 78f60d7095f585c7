package usecase

import (
	"context"

	"github.com/thedomainai/task-picker-agent/internal/feedback"
	repo "github.com/thedomainai/task-picker-agent/internal/feedback/repository"
	"github.com/thedomainai/task-picker-agent/internal/model"
)

func (uc *implUseCase) List(ctx context.Context, input feedback.ListInput) ([]model.FeedbackEntry, error) {
	if input.Judgment != "" && !input.Judgment.IsValid() {
		return nil, feedback.ErrInvalidJudgment
	}
	return uc.repo.List(ctx, repo.ListOptions{Judgment: input.Judgment, Limit: input.Limit})
}

// BalancedSample returns up to perKind newest entries of every judgment kind.
// Kinds with fewer entries are not padded.
func (uc *implUseCase) BalancedSample(ctx context.Context, perKind int) (map[model.Judgment][]model.FeedbackEntry, error) {
	if perKind <= 0 {
		perKind = uc.samplePerKind
	}

	sample := make(map[model.Judgment][]model.FeedbackEntry, len(model.AllJudgments))
	for _, j := range model.AllJudgments {
		entries, err := uc.repo.List(ctx, repo.ListOptions{Judgment: j, Limit: perKind})
		if err != nil {
			uc.l.Errorf(ctx, "uc.BalancedSample List(%s): %v", j, err)
			return nil, err
		}
		sample[j] = entries
	}
	return sample, nil
}

func (uc *implUseCase) Stats(ctx context.Context) (model.FeedbackStats, error) {
	return uc.repo.Stats(ctx)
}

func (uc *implUseCase) Search(ctx context.Context, input feedback.SearchInput) ([]model.FeedbackEntry, error) {
	return uc.repo.Search(ctx, repo.SearchOptions{Text: input.Text, Limit: input.Limit})
}

func (uc *implUseCase) RejectionReasons(ctx context.Context, limit int) ([]model.RejectionReason, error) {
	return uc.repo.RejectionReasons(ctx, limit)
}

func (uc *implUseCase) Clear(ctx context.Context) (int64, error) {
	return uc.repo.Clear(ctx)
}
