package http

import (
	"strings"
	"unicode/utf8"

	"github.com/thedomainai/task-picker-agent/internal/feedback"
	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/pipeline"
	"github.com/thedomainai/task-picker-agent/internal/taskfile"
	"github.com/thedomainai/task-picker-agent/pkg/response"
)

const defaultDocumentName = "inline"

// --- Request DTOs ---

type documentReq struct {
	Content  string `json:"content"`
	FileName string `json:"file_name"`
}

func (r documentReq) validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return errEmptyContent
	}
	if !utf8.ValidString(r.Content) {
		return pipeline.ErrInvalidEncoding
	}
	return nil
}

func (r documentReq) toDocument() model.Document {
	name := strings.TrimSpace(r.FileName)
	if name == "" {
		name = defaultDocumentName
	}
	return model.Document{Kind: model.SourceInline, Name: name, Content: r.Content}
}

type extractionReq struct {
	documentReq
	UseLLM         bool  `json:"use_llm"`
	DryRun         bool  `json:"dry_run"`
	SkipDuplicates *bool `json:"skip_duplicates"`
}

func (r extractionReq) toInput() pipeline.RunInput {
	return pipeline.RunInput{
		Document:       r.toDocument(),
		UseLLM:         r.UseLLM,
		DryRun:         r.DryRun,
		SkipDuplicates: r.SkipDuplicates,
	}
}

type judgmentReq struct {
	Index        *int     `json:"index"    binding:"required"`
	Judgment     string   `json:"judgment" binding:"required"`
	ModifiedText string   `json:"modified_text"`
	Reason       string   `json:"reason"`
	Tags         []string `json:"tags"`
}

// validate accepts only judgments on an inferred candidate; missed tasks are
// reported through the feedback endpoint.
func (r judgmentReq) validate() error {
	j, err := model.ParseJudgment(r.Judgment)
	if err != nil || j == model.JudgmentMissed {
		return feedback.ErrInvalidJudgment
	}
	return nil
}

func (r judgmentReq) toInput(a analysis, task model.ImplicitTask) feedback.RecordInput {
	j, _ := model.ParseJudgment(r.Judgment)
	return feedback.RecordInput{
		Candidate:    task.Candidate(),
		Judgment:     j,
		ModifiedText: r.ModifiedText,
		Reason:       r.Reason,
		SourceFile:   a.source,
		Tags:         r.Tags,
	}
}

// --- Response DTOs ---

type implicitTaskResp struct {
	Index      int    `json:"index"`
	Task       string `json:"task"`
	Reason     string `json:"reason,omitempty"`
	Confidence string `json:"confidence"`
	SourceText string `json:"source_text,omitempty"`
}

type analysisResp struct {
	ID                  string             `json:"id"`
	Source              string             `json:"source"`
	Summary             string             `json:"summary"`
	Diagnostic          string             `json:"diagnostic,omitempty"`
	ImplicitTasks       []implicitTaskResp `json:"implicit_tasks"`
	IncompleteSections  []string           `json:"incomplete_sections"`
	UnansweredQuestions []string           `json:"unanswered_questions"`
}

func (h *handler) newAnalysisResp(id string, a analysis) analysisResp {
	tasks := make([]implicitTaskResp, len(a.result.ImplicitTasks))
	for i, t := range a.result.ImplicitTasks {
		tasks[i] = implicitTaskResp{
			Index:      i,
			Task:       t.Task,
			Reason:     t.Reason,
			Confidence: string(t.Confidence),
			SourceText: t.SourceText,
		}
	}
	return analysisResp{
		ID:                  id,
		Source:              a.source,
		Summary:             a.result.Summary,
		Diagnostic:          a.result.Diagnostic,
		ImplicitTasks:       tasks,
		IncompleteSections:  nonNil(a.result.IncompleteSections),
		UnansweredQuestions: nonNil(a.result.UnansweredQuestions),
	}
}

type judgmentResp struct {
	ID         int64             `json:"id"`
	AnalysisID string            `json:"analysis_id"`
	Index      int               `json:"index"`
	TaskText   string            `json:"task_text"`
	Judgment   string            `json:"judgment"`
	CreatedAt  response.DateTime `json:"created_at"`
}

type mergeResp struct {
	Added               int    `json:"added"`
	Completed           int    `json:"completed"`
	Todos               int    `json:"todos"`
	Implicit            int    `json:"implicit"`
	IncompleteSections  int    `json:"incomplete_sections"`
	UnansweredQuestions int    `json:"unanswered_questions"`
	Skipped             int    `json:"skipped"`
	Filtered            int    `json:"filtered"`
	Written             bool   `json:"written"`
	Section             string `json:"section,omitempty"`
}

type extractionResp struct {
	Source     string    `json:"source"`
	Added      []string  `json:"added"`
	Completed  []string  `json:"completed"`
	Todos      []string  `json:"todos"`
	Diagnostic string    `json:"diagnostic,omitempty"`
	Merge      mergeResp `json:"merge"`
}

func newMergeResp(m taskfile.MergeOutput) mergeResp {
	return mergeResp{
		Added:               m.Added,
		Completed:           m.Completed,
		Todos:               m.Todos,
		Implicit:            m.Implicit,
		IncompleteSections:  m.IncompleteSections,
		UnansweredQuestions: m.UnansweredQuestions,
		Skipped:             m.Skipped,
		Filtered:            m.Filtered,
		Written:             m.Written,
		Section:             m.Section,
	}
}

func (h *handler) newExtractionResp(out pipeline.RunOutput) extractionResp {
	resp := extractionResp{
		Source:    out.Source,
		Added:     nonNil(out.Extraction.Added),
		Completed: nonNil(out.Extraction.Completed),
		Todos:     nonNil(out.Extraction.Todos),
		Merge:     newMergeResp(out.Merge),
	}
	if out.Analysis != nil {
		resp.Diagnostic = out.Analysis.Diagnostic
	}
	return resp
}

type checkResp struct {
	Explicit []string `json:"explicit"`
	Missed   []string `json:"missed"`
	Summary  string   `json:"summary"`
}

type progressResp struct {
	Total     int      `json:"total"`
	Completed int      `json:"completed"`
	Pending   int      `json:"pending"`
	Percent   float64  `json:"percent"`
	Open      []string `json:"open"`
}

func newProgressResp(p taskfile.Progress) progressResp {
	return progressResp{
		Total:     p.Stats.Total,
		Completed: p.Stats.Completed,
		Pending:   p.Stats.Pending,
		Percent:   p.Stats.Progress,
		Open:      nonNil(p.Pending),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
