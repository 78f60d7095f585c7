package analyzer

import (
	"context"

	"github.com/thedomainai/task-picker-agent/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Analyze asks the reasoning engine for implicit tasks. It never fails:
	// every engine or parse problem yields the empty result with a Diagnostic.
	Analyze(ctx context.Context, input AnalyzeInput) model.AnalysisResult

	// Enabled reports whether a reasoning engine is configured.
	Enabled() bool
}
