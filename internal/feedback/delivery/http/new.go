package http

import (
	"github.com/gin-gonic/gin"

	"github.com/thedomainai/task-picker-agent/internal/feedback"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

// Handler serves the feedback ledger endpoints.
type Handler interface {
	Record(c *gin.Context)
	List(c *gin.Context)
	Stats(c *gin.Context)
	Search(c *gin.Context)
	Rejections(c *gin.Context)
	Context(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc feedback.UseCase
}

// New creates a new HTTP handler for the feedback ledger.
func New(l log.Logger, uc feedback.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
