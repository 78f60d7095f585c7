package pipeline

import (
	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/taskfile"
)

type RunInput struct {
	Document       model.Document
	UseLLM         bool
	DryRun         bool
	SkipDuplicates *bool // nil = configured default
}

type RunOutput struct {
	Source     string
	Extraction model.ExtractionResult
	Analysis   *model.AnalysisResult // nil when the engine was not used
	Merge      taskfile.MergeOutput
}

type BatchInput struct {
	Paths          []string
	UseLLM         bool
	DryRun         bool
	SkipDuplicates *bool
}

type BatchItem struct {
	Path    string
	Output  RunOutput
	Err     error
	// Skipped is set for excluded paths; Output is empty and Err is nil.
	Skipped bool
}

type BatchOutput struct {
	Items   []BatchItem
	Failed  int
	Skipped int
}

type CheckOutput struct {
	Explicit []string
	Analysis model.AnalysisResult
	Missed   []string
}
