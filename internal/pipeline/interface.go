package pipeline

import (
	"context"

	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/taskfile"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Sources
	LoadFile(ctx context.Context, path string) (model.Document, error)
	LoadSession(ctx context.Context, sessionID string) (model.Document, error)
	LoadGitDiff(ctx context.Context, repoPath string) (model.Document, error)

	// Run extracts, optionally analyzes, and merges one document.
	Run(ctx context.Context, input RunInput) (RunOutput, error)
	// RunBatch loads and runs every path; a failing document does not stop the batch.
	// Excluded paths are reported as skipped, not failed.
	RunBatch(ctx context.Context, input BatchInput) BatchOutput

	// Analyze runs the reasoning engine only, without merging.
	Analyze(ctx context.Context, doc model.Document) model.AnalysisResult
	// Check lists explicit tasks in doc that the engine did not infer.
	Check(ctx context.Context, doc model.Document) (CheckOutput, error)

	// Progress reports completion of the task document.
	Progress(ctx context.Context) (taskfile.Progress, error)
}
