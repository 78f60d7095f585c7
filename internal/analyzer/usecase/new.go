package usecase

import (
	"context"

	"github.com/thedomainai/task-picker-agent/internal/analyzer"
	"github.com/thedomainai/task-picker-agent/pkg/llmprovider"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

const (
	DefaultMaxDocumentChars = 8000
	DefaultMaxTokens        = 2000
)

// Engine is the slice of llmprovider.Manager the analyzer needs.
type Engine interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

type Config struct {
	MaxDocumentChars int // runes
	MaxTokens        int
	Temperature      float64
}

type implUseCase struct {
	l      log.Logger
	engine Engine
	cfg    Config
}

var _ analyzer.UseCase = (*implUseCase)(nil)

// New creates an analyzer. A nil engine is allowed: Analyze then reports
// that analysis is unavailable.
func New(l log.Logger, engine Engine, cfg Config) analyzer.UseCase {
	if cfg.MaxDocumentChars <= 0 {
		cfg.MaxDocumentChars = DefaultMaxDocumentChars
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return &implUseCase{
		l:      l,
		engine: engine,
		cfg:    cfg,
	}
}

func (uc *implUseCase) Enabled() bool {
	return uc.engine != nil
}
