package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/thedomainai/task-picker-agent/internal/analyzer"
	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/pipeline"
	"github.com/thedomainai/task-picker-agent/internal/taskfile"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

func (uc *implUseCase) Run(ctx context.Context, input pipeline.RunInput) (pipeline.RunOutput, error) {
	doc := input.Document
	if doc.Name == "" {
		return pipeline.RunOutput{}, pipeline.ErrEmptyDocument
	}

	ext := uc.boxes.Extract(doc.Content)
	if doc.Kind == model.SourceGitDiff {
		// Markers are not collected from diffs.
		ext.Todos = []string{}
	}

	out := pipeline.RunOutput{Source: doc.Name, Extraction: ext}
	mergeIn := taskfile.MergeInput{
		Source:         doc.Name,
		Extraction:     ext,
		SkipDuplicates: input.SkipDuplicates,
		DryRun:         input.DryRun,
	}

	if input.UseLLM {
		if doc.Kind == model.SourceGitDiff {
			uc.l.Infof(ctx, "pipeline.usecase.Run: skipping analysis for %s", doc.Name)
		} else {
			res := uc.Analyze(ctx, doc)
			out.Analysis = &res
			mergeIn = mergeIn.WithAnalysis(res)
		}
	}

	merged, err := uc.taskfile.Merge(ctx, mergeIn)
	if err != nil {
		uc.metrics.Runs.WithLabelValues(string(doc.Kind), resultError).Inc()
		uc.l.Errorf(ctx, "pipeline.usecase.Run.Merge: %v", err)
		return pipeline.RunOutput{}, err
	}
	out.Merge = merged

	uc.metrics.Runs.WithLabelValues(string(doc.Kind), resultOK).Inc()
	uc.metrics.Skipped.Add(float64(merged.Skipped))
	if merged.Written {
		uc.observeAppended(merged)
	}
	return out, nil
}

func (uc *implUseCase) observeAppended(m taskfile.MergeOutput) {
	for category, n := range map[string]int{
		"added":                m.Added,
		"completed":            m.Completed,
		"todos":                m.Todos,
		"implicit":             m.Implicit,
		"incomplete_sections":  m.IncompleteSections,
		"unanswered_questions": m.UnansweredQuestions,
	} {
		if n > 0 {
			uc.metrics.Appended.WithLabelValues(category).Add(float64(n))
		}
	}
}

func (uc *implUseCase) Analyze(ctx context.Context, doc model.Document) model.AnalysisResult {
	start := time.Now()
	res := uc.analyzer.Analyze(ctx, analyzer.AnalyzeInput{
		Content:  doc.Content,
		FileName: doc.Name,
		Feedback: uc.feedback.BuildContext(ctx),
	})
	if uc.analyzer.Enabled() {
		uc.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	}
	return res
}

func (uc *implUseCase) RunBatch(ctx context.Context, input pipeline.BatchInput) pipeline.BatchOutput {
	out := pipeline.BatchOutput{Items: make([]pipeline.BatchItem, 0, len(input.Paths))}
	for _, path := range input.Paths {
		item := pipeline.BatchItem{Path: path}
		if err := ctx.Err(); err != nil {
			item.Err = err
		} else if doc, err := uc.LoadFile(ctx, path); errors.Is(err, pipeline.ErrExcluded) {
			item.Skipped = true
			out.Skipped++
			uc.l.Infof(ctx, "pipeline.usecase.RunBatch: skipped excluded %s", path)
		} else if err != nil {
			item.Err = err
		} else {
			item.Output, item.Err = uc.Run(ctx, pipeline.RunInput{
				Document:       doc,
				UseLLM:         input.UseLLM,
				DryRun:         input.DryRun,
				SkipDuplicates: input.SkipDuplicates,
			})
		}
		if item.Err != nil {
			out.Failed++
			uc.l.Warnf(ctx, "pipeline.usecase.RunBatch: %s: %v", path, item.Err)
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func (uc *implUseCase) Check(ctx context.Context, doc model.Document) (pipeline.CheckOutput, error) {
	if doc.Name == "" {
		return pipeline.CheckOutput{}, pipeline.ErrEmptyDocument
	}
	ext := uc.boxes.Extract(doc.Content)
	explicit := make([]string, 0, len(ext.Added)+len(ext.Todos))
	explicit = append(explicit, ext.Added...)
	explicit = append(explicit, ext.Todos...)

	res := uc.Analyze(ctx, doc)
	return pipeline.CheckOutput{
		Explicit: explicit,
		Analysis: res,
		Missed:   pipeline.FindPotentiallyMissed(explicit, res.ImplicitTasks),
	}, nil
}

func (uc *implUseCase) Progress(ctx context.Context) (taskfile.Progress, error) {
	return uc.taskfile.Progress(ctx)
}
