package usecase

import (
	"github.com/thedomainai/task-picker-agent/internal/feedback"
	"github.com/thedomainai/task-picker-agent/internal/feedback/repository"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

const (
	DefaultMinExamples   = 3
	DefaultSamplePerKind = 3
)

// Config tunes how much history is used to condition the reasoning engine.
type Config struct {
	MinExamples   int // minimum ledger size before any context is produced
	SamplePerKind int
}

// implUseCase is the private implementation of feedback.UseCase.
type implUseCase struct {
	repo          repository.Repository
	l             log.Logger
	minExamples   int
	samplePerKind int
}

var _ feedback.UseCase = (*implUseCase)(nil)

// New creates a new feedback UseCase implementation.
func New(repo repository.Repository, l log.Logger, cfg Config) feedback.UseCase {
	if cfg.MinExamples <= 0 {
		cfg.MinExamples = DefaultMinExamples
	}
	if cfg.SamplePerKind <= 0 {
		cfg.SamplePerKind = DefaultSamplePerKind
	}
	return &implUseCase{
		repo:          repo,
		l:             l,
		minExamples:   cfg.MinExamples,
		samplePerKind: cfg.SamplePerKind,
	}
}
