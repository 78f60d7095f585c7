package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/thedomainai/task-picker-agent/internal/feedback"
	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/pipeline"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 30 * time.Minute
)

type Config struct {
	CacheSize int
	CacheTTL  time.Duration
}

// Handler serves extraction and review endpoints.
type Handler interface {
	Extract(c *gin.Context)
	Check(c *gin.Context)
	Analyze(c *gin.Context)
	GetAnalysis(c *gin.Context)
	Judge(c *gin.Context)
	Progress(c *gin.Context)
}

// analysis is a cached engine result awaiting judgments.
type analysis struct {
	source string
	result model.AnalysisResult
}

type handler struct {
	l          log.Logger
	uc         pipeline.UseCase
	feedbackUC feedback.UseCase
	analyses   *expirable.LRU[string, analysis]
}

// New creates the HTTP handler for extraction and review endpoints.
func New(l log.Logger, uc pipeline.UseCase, feedbackUC feedback.UseCase, cfg Config) Handler {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return &handler{
		l:          l,
		uc:         uc,
		feedbackUC: feedbackUC,
		analyses:   expirable.NewLRU[string, analysis](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}
