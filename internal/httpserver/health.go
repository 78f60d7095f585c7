package httpserver

import (
	"github.com/gin-gonic/gin"

	"github.com/thedomainai/task-picker-agent/pkg/response"
)

const (
	HealthVersion = "1.0.0"
	ServiceName   = "task-picker-agent"
)

func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck returns 503 listing the dependencies that are not ready.
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if srv.ready != nil {
		if failing := srv.ready(c.Request.Context()); len(failing) > 0 {
			response.Unavailable(c, gin.H{"status": "not ready", "checks": failing})
			return
		}
	}
	response.OK(c, gin.H{
		"status":  "ready",
		"version": HealthVersion,
		"service": ServiceName,
	})
}

func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": HealthVersion,
		"service": ServiceName,
	})
}
