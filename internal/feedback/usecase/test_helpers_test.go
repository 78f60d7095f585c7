package usecase

import (
	"context"
	"errors"

	repo "github.com/thedomainai/task-picker-agent/internal/feedback/repository"
	"github.com/thedomainai/task-picker-agent/internal/model"
)

// Mock logger for testing
type mockLogger struct {
	warnings []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.warnings = append(m.warnings, template)
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

var errLedgerDown = errors.New("database is locked")

// mockRepository is an in-memory ledger.
type mockRepository struct {
	entries  []model.FeedbackEntry
	created  []repo.CreateOptions
	failRead bool
}

func (m *mockRepository) Create(ctx context.Context, opt repo.CreateOptions) (model.FeedbackEntry, error) {
	m.created = append(m.created, opt)
	e := model.FeedbackEntry{
		ID:           int64(len(m.entries) + 1),
		TaskText:     opt.TaskText,
		SourceText:   opt.SourceText,
		SourceFile:   opt.SourceFile,
		Judgment:     opt.Judgment,
		ModifiedText: opt.ModifiedText,
		Reason:       opt.Reason,
		Confidence:   opt.Confidence,
		Tags:         opt.Tags,
	}
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *mockRepository) List(ctx context.Context, opt repo.ListOptions) ([]model.FeedbackEntry, error) {
	if m.failRead {
		return nil, errLedgerDown
	}
	out := []model.FeedbackEntry{}
	for i := len(m.entries) - 1; i >= 0 && len(out) < opt.Limit; i-- {
		if opt.Judgment == "" || m.entries[i].Judgment == opt.Judgment {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

func (m *mockRepository) Stats(ctx context.Context) (model.FeedbackStats, error) {
	if m.failRead {
		return model.FeedbackStats{}, errLedgerDown
	}
	counts := map[model.Judgment]int{}
	for _, e := range m.entries {
		counts[e.Judgment]++
	}
	return model.NewFeedbackStats(
		counts[model.JudgmentAccepted],
		counts[model.JudgmentRejected],
		counts[model.JudgmentModified],
		counts[model.JudgmentMissed],
	), nil
}

func (m *mockRepository) Search(ctx context.Context, opt repo.SearchOptions) ([]model.FeedbackEntry, error) {
	return nil, nil
}

func (m *mockRepository) RejectionReasons(ctx context.Context, limit int) ([]model.RejectionReason, error) {
	return nil, nil
}

func (m *mockRepository) Clear(ctx context.Context) (int64, error) {
	n := int64(len(m.entries))
	m.entries = nil
	return n, nil
}

func strPtr(s string) *string { return &s }
