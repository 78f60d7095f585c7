package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/pipeline"
	"github.com/thedomainai/task-picker-agent/internal/taskfile"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

const (
	testSecret = "s3cret"
	githubPush = `{"ref":"refs/heads/main","after":"abc123","repository":{"full_name":"me/notes"}}`
	gitlabPush = `{"ref":"refs/heads/dev","checkout_sha":"def456","project":{"path_with_namespace":"me/notes"}}`
)

type fakePipeline struct {
	pipeline.UseCase
	repoPath string
	runs     int
}

func (f *fakePipeline) LoadGitDiff(_ context.Context, repoPath string) (model.Document, error) {
	f.repoPath = repoPath
	return model.Document{Kind: model.SourceGitDiff, Name: "git-diff", Content: "- [ ] from diff"}, nil
}

func (f *fakePipeline) Run(_ context.Context, in pipeline.RunInput) (pipeline.RunOutput, error) {
	f.runs++
	return pipeline.RunOutput{
		Source: in.Document.Name,
		Merge:  taskfile.MergeOutput{Added: 1, Written: true},
	}, nil
}

func newTestRouter(t *testing.T, p pipeline.UseCase, cfg Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h, err := New(log.NewNop(), p, cfg)
	require.NoError(t, err)
	r := gin.New()
	RegisterRoutes(r.Group("/webhooks"), h)
	return r
}

func sign(body string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(body))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func post(r *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(log.NewNop(), &fakePipeline{}, Config{})
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestGitHub_Push(t *testing.T) {
	p := &fakePipeline{}
	r := newTestRouter(t, p, Config{Secret: testSecret, RepoPath: "/srv/notes"})

	w := post(r, "/webhooks/github", githubPush, map[string]string{
		"X-Hub-Signature-256": sign(githubPush),
		"X-GitHub-Event":      "push",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"processed"`)
	assert.Contains(t, w.Body.String(), `"commit":"abc123"`)
	assert.Equal(t, "/srv/notes", p.repoPath)
	assert.Equal(t, 1, p.runs)
}

func TestGitHub_BadSignature(t *testing.T) {
	p := &fakePipeline{}
	r := newTestRouter(t, p, Config{Secret: testSecret})

	for _, sig := range []string{"", "sha256=zz", "sha256=" + strings.Repeat("0", 64)} {
		w := post(r, "/webhooks/github", githubPush, map[string]string{
			"X-Hub-Signature-256": sig,
			"X-GitHub-Event":      "push",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code, sig)
	}
	assert.Zero(t, p.runs)
}

func TestGitHub_IgnoresOtherEvents(t *testing.T) {
	p := &fakePipeline{}
	r := newTestRouter(t, p, Config{Secret: testSecret})

	w := post(r, "/webhooks/github", `{}`, map[string]string{
		"X-Hub-Signature-256": sign(`{}`),
		"X-GitHub-Event":      "issues",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ignored"`)
	assert.Zero(t, p.runs)
}

func TestGitLab_BranchFilter(t *testing.T) {
	p := &fakePipeline{}
	r := newTestRouter(t, p, Config{Secret: testSecret, Branch: "main"})
	headers := map[string]string{"X-Gitlab-Token": testSecret, "X-Gitlab-Event": "Push Hook"}

	w := post(r, "/webhooks/gitlab", gitlabPush, headers)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ignored"`)
	assert.Zero(t, p.runs)

	onMain := strings.Replace(gitlabPush, "refs/heads/dev", "refs/heads/main", 1)
	w = post(r, "/webhooks/gitlab", onMain, headers)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, p.runs)
}

func TestGitLab_BadToken(t *testing.T) {
	r := newTestRouter(t, &fakePipeline{}, Config{Secret: testSecret})

	w := post(r, "/webhooks/gitlab", gitlabPush, map[string]string{
		"X-Gitlab-Token": "nope",
		"X-Gitlab-Event": "Push Hook",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimit(t *testing.T) {
	p := &fakePipeline{}
	// burst of 1
	r := newTestRouter(t, p, Config{Secret: testSecret, RateLimitPerMin: 1})
	headers := map[string]string{"X-Gitlab-Token": testSecret, "X-Gitlab-Event": "Push Hook"}

	assert.Equal(t, http.StatusOK, post(r, "/webhooks/gitlab", gitlabPush, headers).Code)
	assert.Equal(t, http.StatusTooManyRequests, post(r, "/webhooks/gitlab", gitlabPush, headers).Code)
	assert.Equal(t, 1, p.runs)
}

func TestParsePush(t *testing.T) {
	gh, err := parseGitHubPush([]byte(githubPush))
	require.NoError(t, err)
	assert.Equal(t, pushEvent{Provider: ProviderGitHub, Repository: "me/notes", Branch: "main", Commit: "abc123"}, gh)

	gl, err := parseGitLabPush([]byte(gitlabPush))
	require.NoError(t, err)
	assert.Equal(t, "dev", gl.Branch)
	assert.Equal(t, "def456", gl.Commit)

	_, err = parseGitHubPush([]byte("{"))
	assert.Error(t, err)
}
