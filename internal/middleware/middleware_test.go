package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/thedomainai/task-picker-agent/pkg/log"
)

func newRouter(l log.Logger, seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := New(l)
	r := gin.New()
	r.Use(mw.RequestID(), mw.Logger())
	r.GET("/ping", func(c *gin.Context) {
		*seen = log.RequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestID_Generated(t *testing.T) {
	var seen string
	r := newRouter(log.NewNop(), &seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, seen)
}

func TestRequestID_Propagated(t *testing.T) {
	var seen string
	r := newRouter(log.NewNop(), &seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", seen)
}

func TestLogger_WritesRequestLine(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var seen string
	r := newRouter(log.NewZap(zap.New(core)), &seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/ping", fields["path"])
	assert.EqualValues(t, http.StatusNoContent, fields["status"])
	assert.Equal(t, seen, fields["request_id"])
}
