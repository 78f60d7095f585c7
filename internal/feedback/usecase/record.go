package usecase

import (
	"context"
	"strings"

	"github.com/thedomainai/task-picker-agent/internal/feedback"
	repo "github.com/thedomainai/task-picker-agent/internal/feedback/repository"
	"github.com/thedomainai/task-picker-agent/internal/model"
)

// Record stores a human judgment on a candidate.
func (uc *implUseCase) Record(ctx context.Context, input feedback.RecordInput) (model.FeedbackEntry, error) {
	var modified *string
	if input.Judgment == model.JudgmentModified {
		text := strings.TrimSpace(input.ModifiedText)
		modified = &text
	} else if strings.TrimSpace(input.ModifiedText) != "" {
		return model.FeedbackEntry{}, feedback.ErrModifiedTextNotAllowed
	}

	confidence := input.Candidate.Confidence
	if confidence == "" {
		confidence = model.ConfidenceMedium
	}

	opt := repo.CreateOptions{
		TaskText:     strings.TrimSpace(input.Candidate.Text),
		SourceText:   input.Candidate.SourceExcerpt,
		SourceFile:   input.SourceFile,
		Judgment:     input.Judgment,
		ModifiedText: modified,
		Reason:       optional(input.Reason),
		Confidence:   confidence,
		Tags:         input.Tags,
	}
	if err := feedback.ValidateEntry(opt.TaskText, opt.Judgment, opt.ModifiedText); err != nil {
		return model.FeedbackEntry{}, err
	}

	entry, err := uc.repo.Create(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Record Create: %v", err)
		return model.FeedbackEntry{}, err
	}

	uc.l.Info(ctx, "feedback recorded", "id", entry.ID, "judgment", string(entry.Judgment))
	return entry, nil
}

// ReportMissed stores a task the engine should have inferred.
func (uc *implUseCase) ReportMissed(ctx context.Context, input feedback.MissedInput) (model.FeedbackEntry, error) {
	return uc.Record(ctx, feedback.RecordInput{
		Candidate: model.TaskCandidate{
			Text:          input.TaskText,
			Origin:        model.OriginImplicit,
			Confidence:    model.ConfidenceUser,
			SourceExcerpt: input.SourceText,
		},
		Judgment:   model.JudgmentMissed,
		Reason:     input.Reason,
		SourceFile: input.SourceFile,
		Tags:       input.Tags,
	})
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
