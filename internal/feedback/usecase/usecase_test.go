package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/thedomainai/task-picker-agent/internal/feedback"
	"github.com/thedomainai/task-picker-agent/internal/model"
)

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted candidate keeps its confidence", func(t *testing.T) {
		r := &mockRepository{}
		uc := New(r, &mockLogger{}, Config{})

		entry, err := uc.Record(ctx, feedback.RecordInput{
			Candidate: model.TaskCandidate{
				Text:          "  Book flights ",
				Confidence:    model.ConfidenceHigh,
				SourceExcerpt: "we need to book flights",
			},
			Judgment:   model.JudgmentAccepted,
			SourceFile: "trip.md",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.TaskText != "Book flights" {
			t.Errorf("TaskText = %q", entry.TaskText)
		}
		if entry.Confidence != model.ConfidenceHigh {
			t.Errorf("Confidence = %q", entry.Confidence)
		}
		if r.created[0].Reason != nil {
			t.Errorf("empty reason should be stored as null")
		}
	})

	t.Run("deterministic candidate defaults to medium", func(t *testing.T) {
		r := &mockRepository{}
		uc := New(r, &mockLogger{}, Config{})

		entry, err := uc.Record(ctx, feedback.RecordInput{
			Candidate: model.TaskCandidate{Text: "Write tests", Origin: model.OriginUnchecked},
			Judgment:  model.JudgmentRejected,
			Reason:    "already done",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Confidence != model.ConfidenceMedium {
			t.Errorf("Confidence = %q", entry.Confidence)
		}
		if entry.Reason == nil || *entry.Reason != "already done" {
			t.Errorf("Reason = %v", entry.Reason)
		}
	})

	t.Run("modified requires text", func(t *testing.T) {
		uc := New(&mockRepository{}, &mockLogger{}, Config{})
		_, err := uc.Record(ctx, feedback.RecordInput{
			Candidate: model.TaskCandidate{Text: "x"},
			Judgment:  model.JudgmentModified,
		})
		if !errors.Is(err, feedback.ErrModifiedTextRequired) {
			t.Errorf("expected ErrModifiedTextRequired, got %v", err)
		}
	})

	t.Run("modified text on accepted is rejected", func(t *testing.T) {
		r := &mockRepository{}
		uc := New(r, &mockLogger{}, Config{})
		_, err := uc.Record(ctx, feedback.RecordInput{
			Candidate:    model.TaskCandidate{Text: "x"},
			Judgment:     model.JudgmentAccepted,
			ModifiedText: "y",
		})
		if !errors.Is(err, feedback.ErrModifiedTextNotAllowed) {
			t.Errorf("expected ErrModifiedTextNotAllowed, got %v", err)
		}
		if len(r.created) != 0 {
			t.Errorf("nothing should be written")
		}
	})

	t.Run("unknown judgment", func(t *testing.T) {
		uc := New(&mockRepository{}, &mockLogger{}, Config{})
		_, err := uc.Record(ctx, feedback.RecordInput{
			Candidate: model.TaskCandidate{Text: "x"},
			Judgment:  "skipped",
		})
		if !errors.Is(err, feedback.ErrInvalidJudgment) {
			t.Errorf("expected ErrInvalidJudgment, got %v", err)
		}
	})
}

func TestReportMissed(t *testing.T) {
	r := &mockRepository{}
	uc := New(r, &mockLogger{}, Config{})

	entry, err := uc.ReportMissed(context.Background(), feedback.MissedInput{
		TaskText:   "Renew passport",
		SourceText: "passport expires in May",
		Reason:     "expiry dates imply renewal",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Judgment != model.JudgmentMissed {
		t.Errorf("Judgment = %q", entry.Judgment)
	}
	if entry.Confidence != model.ConfidenceUser {
		t.Errorf("Confidence = %q, want user", entry.Confidence)
	}
	if entry.ModifiedText != nil {
		t.Errorf("missed entries carry no modified text")
	}
}

func TestBalancedSample(t *testing.T) {
	r := &mockRepository{}
	for i := 0; i < 5; i++ {
		r.entries = append(r.entries, model.FeedbackEntry{TaskText: "a", Judgment: model.JudgmentAccepted})
	}
	for i := 0; i < 3; i++ {
		r.entries = append(r.entries, model.FeedbackEntry{TaskText: "r", Judgment: model.JudgmentRejected})
	}
	r.entries = append(r.entries, model.FeedbackEntry{TaskText: "m", Judgment: model.JudgmentModified, ModifiedText: strPtr("m2")})

	uc := New(r, &mockLogger{}, Config{})
	sample, err := uc.BalancedSample(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[model.Judgment]int{
		model.JudgmentAccepted: 2,
		model.JudgmentRejected: 2,
		model.JudgmentModified: 1,
		model.JudgmentMissed:   0,
	}
	for j, n := range want {
		if len(sample[j]) != n {
			t.Errorf("len(sample[%s]) = %d, want %d", j, len(sample[j]), n)
		}
	}
}

func TestBuildContext(t *testing.T) {
	ctx := context.Background()

	t.Run("below minimum yields empty context", func(t *testing.T) {
		r := &mockRepository{entries: []model.FeedbackEntry{
			{TaskText: "a", Judgment: model.JudgmentAccepted},
			{TaskText: "b", Judgment: model.JudgmentAccepted},
		}}
		uc := New(r, &mockLogger{}, Config{})
		if got := uc.BuildContext(ctx); !got.Empty() {
			t.Errorf("expected empty context, got %+v", got)
		}
	})

	t.Run("enough history", func(t *testing.T) {
		r := &mockRepository{entries: []model.FeedbackEntry{
			{TaskText: "a", Judgment: model.JudgmentAccepted, Confidence: model.ConfidenceHigh},
			{TaskText: "b", Judgment: model.JudgmentRejected},
			{TaskText: "c", Judgment: model.JudgmentMissed},
		}}
		uc := New(r, &mockLogger{}, Config{})
		got := uc.BuildContext(ctx)
		if got.Empty() {
			t.Fatal("expected context")
		}
		if got.Stats.Total != 3 || got.Stats.Missed != 1 {
			t.Errorf("unexpected stats: %+v", got.Stats)
		}
	})

	t.Run("ledger failure degrades to empty", func(t *testing.T) {
		l := &mockLogger{}
		uc := New(&mockRepository{failRead: true}, l, Config{})
		if got := uc.BuildContext(ctx); !got.Empty() {
			t.Errorf("expected empty context, got %+v", got)
		}
		if len(l.warnings) == 0 {
			t.Error("expected a warning to be logged")
		}
	})
}
