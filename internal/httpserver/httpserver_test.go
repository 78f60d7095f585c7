package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedomainai/task-picker-agent/internal/middleware"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

type stubFeedback struct{}

func (stubFeedback) Record(c *gin.Context)     { c.Status(http.StatusCreated) }
func (stubFeedback) List(c *gin.Context)       { c.Status(http.StatusOK) }
func (stubFeedback) Stats(c *gin.Context)      { c.Status(http.StatusOK) }
func (stubFeedback) Search(c *gin.Context)     { c.Status(http.StatusOK) }
func (stubFeedback) Rejections(c *gin.Context) { c.Status(http.StatusOK) }
func (stubFeedback) Context(c *gin.Context)    { c.Status(http.StatusOK) }

func newTestServer(t *testing.T, ready ReadinessCheck) *HTTPServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"}))

	srv, err := New(log.NewNop(), Config{
		Port:            18080,
		Mode:            gin.TestMode,
		Environment:     "test",
		FeedbackHandler: stubFeedback{},
		Metrics:         promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Ready:           ready,
	})
	require.NoError(t, err)
	return srv
}

func get(srv *HTTPServer, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNew_Validation(t *testing.T) {
	_, err := New(log.NewNop(), Config{Mode: gin.TestMode})
	assert.EqualError(t, err, "port is required")

	_, err = New(nil, Config{Mode: gin.TestMode, Port: 1})
	assert.EqualError(t, err, "logger is required")
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := get(srv, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID), path)
	}

	w := get(srv, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_total")
}

func TestReadyCheck_Unavailable(t *testing.T) {
	srv := newTestServer(t, func(context.Context) map[string]string {
		return map[string]string{"feedback_ledger": "database is locked"}
	})

	w := get(srv, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "database is locked")
}

func TestDomainRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	assert.Equal(t, http.StatusOK, get(srv, "/api/v1/feedback/stats").Code)
	// No pipeline handler configured.
	assert.Equal(t, http.StatusNotFound, get(srv, "/api/v1/analyses/x").Code)
	assert.Equal(t, http.StatusNotFound, get(srv, "/webhooks/github").Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.port = 0 // any free port

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
