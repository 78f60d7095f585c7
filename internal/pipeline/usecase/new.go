package usecase

import (
	"github.com/thedomainai/task-picker-agent/internal/analyzer"
	"github.com/thedomainai/task-picker-agent/internal/checklist"
	"github.com/thedomainai/task-picker-agent/internal/feedback"
	"github.com/thedomainai/task-picker-agent/internal/pipeline"
	"github.com/thedomainai/task-picker-agent/internal/taskfile"
	"github.com/thedomainai/task-picker-agent/pkg/gitdiff"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

// Excluder decides whether a path must be skipped. *config.Config implements it.
type Excluder interface {
	IsExcluded(path string) bool
}

type Config struct {
	SessionsDir string
	Excluder    Excluder
}

type implUseCase struct {
	l        log.Logger
	cfg      Config
	boxes    checklist.Service
	analyzer analyzer.UseCase
	feedback feedback.UseCase
	taskfile taskfile.UseCase
	metrics  *pipeline.Metrics
	openDiff func(repoPath string) gitdiff.IGitDiff
}

var _ pipeline.UseCase = (*implUseCase)(nil)

func New(
	l log.Logger,
	cfg Config,
	boxes checklist.Service,
	analyzerUC analyzer.UseCase,
	feedbackUC feedback.UseCase,
	taskfileUC taskfile.UseCase,
	metrics *pipeline.Metrics,
) pipeline.UseCase {
	if metrics == nil {
		metrics = pipeline.NewMetrics(nil)
	}
	return &implUseCase{
		l:        l,
		cfg:      cfg,
		boxes:    boxes,
		analyzer: analyzerUC,
		feedback: feedbackUC,
		taskfile: taskfileUC,
		metrics:  metrics,
		openDiff: gitdiff.New,
	}
}
