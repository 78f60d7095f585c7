package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	feedbackHTTP "github.com/thedomainai/task-picker-agent/internal/feedback/delivery/http"
	"github.com/thedomainai/task-picker-agent/internal/middleware"
	pipelineHTTP "github.com/thedomainai/task-picker-agent/internal/pipeline/delivery/http"
	"github.com/thedomainai/task-picker-agent/internal/webhook"
	"github.com/thedomainai/task-picker-agent/pkg/response"
)

func (srv HTTPServer) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
}

func (srv HTTPServer) registerMiddlewares() {
	mw := middleware.New(srv.l)
	srv.gin.Use(gin.Recovery(), mw.RequestID(), mw.Logger())

	srv.l.Infof(context.Background(), "HTTP mode: %s, environment: %s", srv.mode, srv.environment)
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.metrics != nil {
		srv.gin.GET("/metrics", gin.WrapH(srv.metrics))
	}

	srv.gin.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})
}

// registerDomainRoutes registers all domain routes under /api/v1.
func (srv HTTPServer) registerDomainRoutes() {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	if srv.feedbackHandler != nil {
		feedbackHTTP.RegisterRoutes(api, srv.feedbackHandler)
		srv.l.Infof(ctx, "Feedback routes registered at /api/v1/feedback")
	}
	if srv.pipelineHandler != nil {
		pipelineHTTP.RegisterRoutes(api, srv.pipelineHandler)
		srv.l.Infof(ctx, "Pipeline routes registered at /api/v1/extractions, /api/v1/checks, /api/v1/analyses")
	}
	if srv.webhookHandler != nil {
		webhook.RegisterRoutes(srv.gin.Group("/webhooks"), srv.webhookHandler)
		srv.l.Infof(ctx, "Webhook routes registered at /webhooks/github, /webhooks/gitlab")
	}
}
