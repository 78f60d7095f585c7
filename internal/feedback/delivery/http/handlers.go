package http

import (
	"github.com/gin-gonic/gin"

	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/pkg/response"
)

// Record appends one judgment to the ledger. A "missed" judgment is routed
// to ReportMissed so the entry carries user confidence.
func (h *handler) Record(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRecordReq(c)
	if err != nil {
		h.respondBindError(c, err)
		return
	}

	var entry model.FeedbackEntry
	if req.judgment() == model.JudgmentMissed {
		entry, err = h.uc.ReportMissed(ctx, req.toMissedInput())
	} else {
		entry, err = h.uc.Record(ctx, req.toInput())
	}
	if err != nil {
		h.l.Errorf(ctx, "feedback.http.Record: %v", err)
		h.respondError(c, err)
		return
	}

	response.Created(c, newEntryResp(entry))
}

func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		h.respondBindError(c, err)
		return
	}

	entries, err := h.uc.List(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "feedback.http.List: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newListResp(entries))
}

func (h *handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.uc.Stats(ctx)
	if err != nil {
		h.l.Errorf(ctx, "feedback.http.Stats: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newStatsResp(stats))
}

func (h *handler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSearchReq(c)
	if err != nil {
		h.respondBindError(c, err)
		return
	}

	entries, err := h.uc.Search(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "feedback.http.Search: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newListResp(entries))
}

func (h *handler) Rejections(c *gin.Context) {
	ctx := c.Request.Context()

	limit, err := h.processLimit(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	reasons, err := h.uc.RejectionReasons(ctx, limit)
	if err != nil {
		h.l.Errorf(ctx, "feedback.http.Rejections: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newRejectionsResp(reasons))
}

// Context returns the conditioning block the analyzer would receive now.
func (h *handler) Context(c *gin.Context) {
	response.OK(c, h.newContextResp(h.uc.BuildContext(c.Request.Context())))
}

// respondBindError reports binding and validation failures. Domain
// validation errors keep their specific code.
func (h *handler) respondBindError(c *gin.Context, err error) {
	if mapped := h.mapError(err); mapped != nil {
		response.Error(c, mapped, nil)
		return
	}
	response.Error(c, err, nil)
}
