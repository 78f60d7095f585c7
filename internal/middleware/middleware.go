package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thedomainai/task-picker-agent/pkg/log"
)

// RequestID reuses an incoming X-Request-ID or generates one, stores it in the
// request context for the logger and echoes it in the response.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// Logger logs one line per request after it is served.
func (m Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		ctx := c.Request.Context()
		switch {
		case status >= 500:
			m.l.Warn(ctx, "request failed", "method", c.Request.Method, "path", path, "status", status, "latency", time.Since(start).String())
		default:
			m.l.Info(ctx, "request", "method", c.Request.Method, "path", path, "status", status, "latency", time.Since(start).String())
		}
	}
}
