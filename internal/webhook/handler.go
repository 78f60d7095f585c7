package webhook

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thedomainai/task-picker-agent/internal/pipeline"
	"github.com/thedomainai/task-picker-agent/pkg/response"
)

const maxPayloadBytes = 1 << 20

var (
	errUnauthorized = response.NewHTTPError(40101, "invalid webhook signature", http.StatusUnauthorized)
	errRateLimited  = response.NewHTTPError(42901, "rate limit exceeded", http.StatusTooManyRequests)
	errBadPayload   = response.NewHTTPError(40020, "invalid push payload", http.StatusBadRequest)
)

func (h *handler) GitHub(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := readBody(c)
	if err != nil {
		response.Error(c, errBadPayload, nil)
		return
	}
	if err := h.security.validateGitHubSignature(body, c.GetHeader("X-Hub-Signature-256")); err != nil {
		h.l.Warnf(ctx, "webhook.GitHub: %v", err)
		response.Error(c, errUnauthorized, nil)
		return
	}
	if c.GetHeader("X-GitHub-Event") != "push" {
		response.OK(c, pushResp{Status: "ignored"})
		return
	}

	event, err := parseGitHubPush(body)
	if err != nil {
		h.l.Warnf(ctx, "webhook.GitHub: %v", err)
		response.Error(c, errBadPayload, nil)
		return
	}
	h.handlePush(c, event)
}

func (h *handler) GitLab(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.validateGitLabToken(c.GetHeader("X-Gitlab-Token")); err != nil {
		h.l.Warnf(ctx, "webhook.GitLab: %v", err)
		response.Error(c, errUnauthorized, nil)
		return
	}
	if c.GetHeader("X-Gitlab-Event") != "Push Hook" {
		response.OK(c, pushResp{Status: "ignored"})
		return
	}

	body, err := readBody(c)
	if err != nil {
		response.Error(c, errBadPayload, nil)
		return
	}
	event, err := parseGitLabPush(body)
	if err != nil {
		h.l.Warnf(ctx, "webhook.GitLab: %v", err)
		response.Error(c, errBadPayload, nil)
		return
	}
	h.handlePush(c, event)
}

// handlePush extracts tasks from the markdown added by the last local
// commit. The checkout at RepoPath is expected to be at the pushed commit.
func (h *handler) handlePush(c *gin.Context, event pushEvent) {
	ctx := c.Request.Context()

	resp := pushResp{Repository: event.Repository, Branch: event.Branch, Commit: event.Commit}
	if h.cfg.Branch != "" && event.Branch != h.cfg.Branch {
		resp.Status = "ignored"
		response.OK(c, resp)
		return
	}
	if !h.security.allow(event.Provider) {
		h.l.Warnf(ctx, "webhook.handlePush: rate limit exceeded for %s", event.Provider)
		response.Error(c, errRateLimited, nil)
		return
	}

	doc, err := h.uc.LoadGitDiff(ctx, h.cfg.RepoPath)
	if err != nil {
		h.l.Errorf(ctx, "webhook.handlePush.LoadGitDiff: %v", err)
		response.InternalError(c, err)
		return
	}
	out, err := h.uc.Run(ctx, pipeline.RunInput{Document: doc})
	if err != nil {
		h.l.Errorf(ctx, "webhook.handlePush.Run: %v", err)
		response.InternalError(c, err)
		return
	}

	h.l.Info(ctx, "push processed", "provider", event.Provider, "repository", event.Repository, "commit", event.Commit, "added", out.Merge.Added)
	resp.Status = "processed"
	resp.Added = out.Merge.Added
	resp.Completed = out.Merge.Completed
	resp.Skipped = out.Merge.Skipped
	resp.Written = out.Merge.Written
	response.OK(c, resp)
}

func readBody(c *gin.Context) ([]byte, error) {
	return io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadBytes))
}
