package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thedomainai/task-picker-agent/pkg/response"
)

// Analyze runs the reasoning engine on a posted document and keeps the
// result so its implicit tasks can be judged by index.
func (h *handler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processDocumentReq(c)
	if err != nil {
		h.respondBindError(c, err)
		return
	}

	doc := req.toDocument()
	a := analysis{source: doc.Name, result: h.uc.Analyze(ctx, doc)}
	id := uuid.NewString()
	h.analyses.Add(id, a)

	response.Created(c, h.newAnalysisResp(id, a))
}

func (h *handler) GetAnalysis(c *gin.Context) {
	id := c.Param("id")
	a, ok := h.analyses.Get(id)
	if !ok {
		response.Error(c, errAnalysisNotFound, nil)
		return
	}
	response.OK(c, h.newAnalysisResp(id, a))
}

// Judge records a judgment on one implicit task of a cached analysis.
func (h *handler) Judge(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	a, ok := h.analyses.Get(id)
	if !ok {
		response.Error(c, errAnalysisNotFound, nil)
		return
	}

	req, err := h.processJudgmentReq(c)
	if err != nil {
		h.respondBindError(c, err)
		return
	}
	idx := *req.Index
	if idx < 0 || idx >= len(a.result.ImplicitTasks) {
		response.Error(c, errIndexOutOfRange, nil)
		return
	}
	task := a.result.ImplicitTasks[idx]

	entry, err := h.feedbackUC.Record(ctx, req.toInput(a, task))
	if err != nil {
		h.l.Errorf(ctx, "pipeline.http.Judge: %v", err)
		h.respondError(c, err)
		return
	}

	response.Created(c, judgmentResp{
		ID:         entry.ID,
		AnalysisID: id,
		Index:      idx,
		TaskText:   entry.TaskText,
		Judgment:   string(entry.Judgment),
		CreatedAt:  response.DateTime(entry.CreatedAt),
	})
}

// Extract runs the full pipeline on posted content.
func (h *handler) Extract(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processExtractionReq(c)
	if err != nil {
		h.respondBindError(c, err)
		return
	}

	out, err := h.uc.Run(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "pipeline.http.Extract: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newExtractionResp(out))
}

// Check lists explicit tasks of a posted document that the engine missed.
func (h *handler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processDocumentReq(c)
	if err != nil {
		h.respondBindError(c, err)
		return
	}

	out, err := h.uc.Check(ctx, req.toDocument())
	if err != nil {
		h.l.Errorf(ctx, "pipeline.http.Check: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, checkResp{
		Explicit: nonNil(out.Explicit),
		Missed:   nonNil(out.Missed),
		Summary:  out.Analysis.Summary,
	})
}

// Progress reports completion of the task document.
func (h *handler) Progress(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.uc.Progress(ctx)
	if err != nil {
		h.l.Errorf(ctx, "pipeline.http.Progress: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newProgressResp(p))
}
