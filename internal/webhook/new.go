// Package webhook runs git-diff extraction when a GitHub or GitLab push
// arrives for the repository checked out at Config.RepoPath.
package webhook

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/thedomainai/task-picker-agent/internal/pipeline"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

const DefaultRateLimitPerMin = 30

var ErrNoSecret = errors.New("webhook secret is required")

type Config struct {
	Secret          string
	RateLimitPerMin int
	RepoPath        string
	Branch          string // empty = every branch
}

type Handler interface {
	GitHub(c *gin.Context)
	GitLab(c *gin.Context)
}

type handler struct {
	l        log.Logger
	uc       pipeline.UseCase
	cfg      Config
	security *securityValidator
}

func New(l log.Logger, uc pipeline.UseCase, cfg Config) (Handler, error) {
	if cfg.Secret == "" {
		return nil, ErrNoSecret
	}
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = DefaultRateLimitPerMin
	}
	if cfg.RepoPath == "" {
		cfg.RepoPath = "."
	}
	return &handler{
		l:        l,
		uc:       uc,
		cfg:      cfg,
		security: newSecurityValidator(cfg.Secret, cfg.RateLimitPerMin),
	}, nil
}

// RegisterRoutes maps the push endpoints under rg.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	rg.POST("/github", h.GitHub)
	rg.POST("/gitlab", h.GitLab)
}
