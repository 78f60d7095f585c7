package usecase

import (
	"time"

	"github.com/thedomainai/task-picker-agent/internal/checklist"
	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/taskfile"
	"github.com/thedomainai/task-picker-agent/internal/taskfile/repository"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

const timestampLayout = "2006-01-02 15:04"

type Config struct {
	Dedup           bool
	CaseInsensitive bool
	MinConfidence   model.Confidence
}

type implUseCase struct {
	l     log.Logger
	repo  repository.Repository
	boxes checklist.Service
	cfg   Config
	now   func() time.Time
}

var _ taskfile.UseCase = (*implUseCase)(nil)

// New wires the merge engine. boxes parses existing checkbox lines; pass the
// same checklist service the extractor uses so custom patterns apply to both.
func New(l log.Logger, repo repository.Repository, boxes checklist.Service, cfg Config) taskfile.UseCase {
	if cfg.MinConfidence == "" {
		cfg.MinConfidence = model.ConfidenceLow
	}
	return &implUseCase{
		l:     l,
		repo:  repo,
		boxes: boxes,
		cfg:   cfg,
		now:   time.Now,
	}
}
