package taskfile

import (
	"github.com/thedomainai/task-picker-agent/internal/checklist"
	"github.com/thedomainai/task-picker-agent/internal/model"
)

type MergeInput struct {
	Source              string // shown in the section heading
	Extraction          model.ExtractionResult
	Implicit            []model.ImplicitTask
	IncompleteSections  []string
	UnansweredQuestions []string
	SkipDuplicates      *bool // nil = configured default
	DryRun              bool
}

// WithAnalysis copies the engine output into the input.
func (in MergeInput) WithAnalysis(r model.AnalysisResult) MergeInput {
	in.Implicit = r.ImplicitTasks
	in.IncompleteSections = r.IncompleteSections
	in.UnansweredQuestions = r.UnansweredQuestions
	return in
}

// MergeOutput reports what was (or, for a dry run, would be) appended.
type MergeOutput struct {
	Added               int
	Completed           int
	Todos               int
	Implicit            int
	IncompleteSections  int
	UnansweredQuestions int
	Skipped             int // dropped as duplicates
	Filtered            int // implicit tasks below the confidence threshold
	Written             bool
	Section             string
}

// Empty reports whether nothing would be appended.
func (o MergeOutput) Empty() bool {
	return o.Added+o.Completed+o.Todos+o.Implicit+o.IncompleteSections+o.UnansweredQuestions == 0
}

// Progress summarizes the task document. Pending keeps document order.
type Progress struct {
	Stats   checklist.ChecklistStats
	Pending []string
}
