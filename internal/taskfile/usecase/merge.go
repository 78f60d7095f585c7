package usecase

import (
	"context"

	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/taskfile"
)

func (uc *implUseCase) ExistingTasks(ctx context.Context) (map[string]struct{}, error) {
	content, err := uc.repo.Read(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "taskfile.usecase.ExistingTasks.Read: %v", err)
		return nil, err
	}

	existing := make(map[string]struct{})
	add := func(text string) {
		if key := taskfile.Normalize(text, uc.cfg.CaseInsensitive); key != "" {
			existing[key] = struct{}{}
		}
	}
	for _, cb := range uc.boxes.ParseCheckboxes(content) {
		add(cb.Text)
		// Implicit tasks are written with a confidence marker in front.
		if bare := taskfile.StripGlyph(cb.Text); bare != cb.Text {
			add(bare)
		}
	}
	return existing, nil
}

func (uc *implUseCase) Merge(ctx context.Context, input taskfile.MergeInput) (taskfile.MergeOutput, error) {
	if input.Source == "" {
		return taskfile.MergeOutput{}, taskfile.ErrEmptySource
	}

	var out taskfile.MergeOutput
	implicit := make([]model.ImplicitTask, 0, len(input.Implicit))
	for _, t := range input.Implicit {
		if t.Confidence.Rank() < uc.cfg.MinConfidence.Rank() {
			out.Filtered++
			continue
		}
		implicit = append(implicit, t)
	}

	ext := input.Extraction
	dedup := uc.cfg.Dedup
	if input.SkipDuplicates != nil {
		dedup = *input.SkipDuplicates
	}
	if dedup {
		existing, err := uc.ExistingTasks(ctx)
		if err != nil {
			return taskfile.MergeOutput{}, err
		}

		var skipped int
		ext.Added, skipped = uc.filter(ext.Added, existing)
		out.Skipped += skipped
		ext.Completed, skipped = uc.filter(ext.Completed, existing)
		out.Skipped += skipped
		ext.Todos, skipped = uc.filter(ext.Todos, existing)
		out.Skipped += skipped

		kept := implicit[:0]
		for _, t := range implicit {
			if _, ok := existing[taskfile.Normalize(t.Task, uc.cfg.CaseInsensitive)]; ok {
				out.Skipped++
				continue
			}
			kept = append(kept, t)
		}
		implicit = kept
	}

	out.Added = len(ext.Added)
	out.Completed = len(ext.Completed)
	out.Todos = len(ext.Todos)
	out.Implicit = len(implicit)
	out.IncompleteSections = len(input.IncompleteSections)
	out.UnansweredQuestions = len(input.UnansweredQuestions)

	if out.Empty() {
		uc.l.Infof(ctx, "taskfile.usecase.Merge: no new tasks from %s (skipped %d)", input.Source, out.Skipped)
		return out, nil
	}

	out.Section = render(section{
		source:     input.Source,
		at:         uc.now(),
		ext:        ext,
		implicit:   implicit,
		incomplete: input.IncompleteSections,
		questions:  input.UnansweredQuestions,
	})
	if input.DryRun {
		return out, nil
	}

	if err := uc.repo.Append(ctx, out.Section); err != nil {
		uc.l.Errorf(ctx, "taskfile.usecase.Merge.Append: %v", err)
		return taskfile.MergeOutput{}, err
	}
	out.Written = true

	uc.l.Infof(ctx, "taskfile.usecase.Merge: appended %d new, %d completed, %d todos, %d implicit from %s to %s",
		out.Added, out.Completed, out.Todos, out.Implicit, input.Source, uc.repo.Path())
	return out, nil
}

// filter drops texts already present; repeats inside one batch are kept.
func (uc *implUseCase) filter(texts []string, existing map[string]struct{}) ([]string, int) {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if _, ok := existing[taskfile.Normalize(t, uc.cfg.CaseInsensitive)]; ok {
			continue
		}
		out = append(out, t)
	}
	return out, len(texts) - len(out)
}
