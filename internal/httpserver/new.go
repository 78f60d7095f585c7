package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	feedbackHTTP "github.com/thedomainai/task-picker-agent/internal/feedback/delivery/http"
	pipelineHTTP "github.com/thedomainai/task-picker-agent/internal/pipeline/delivery/http"
	"github.com/thedomainai/task-picker-agent/internal/webhook"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

const DefaultShutdownTimeout = 10 * time.Second

// ReadinessCheck reports named dependencies that are not ready.
type ReadinessCheck func(ctx context.Context) map[string]string

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Domains
	feedbackHandler feedbackHTTP.Handler
	pipelineHandler pipelineHTTP.Handler
	webhookHandler  webhook.Handler

	metrics http.Handler
	ready   ReadinessCheck
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	FeedbackHandler feedbackHTTP.Handler
	PipelineHandler pipelineHTTP.Handler
	// WebhookHandler is mounted at /webhooks when set.
	WebhookHandler  webhook.Handler

	// Metrics is served at /metrics when set.
	Metrics http.Handler
	Ready   ReadinessCheck
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		feedbackHandler: cfg.FeedbackHandler,
		pipelineHandler: cfg.PipelineHandler,
		webhookHandler:  cfg.WebhookHandler,
		metrics:         cfg.Metrics,
		ready:           cfg.Ready,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv HTTPServer) Handler() http.Handler {
	return srv.gin
}
