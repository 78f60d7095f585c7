package http

import "github.com/gin-gonic/gin"

func (h *handler) processDocumentReq(c *gin.Context) (documentReq, error) {
	var req documentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processExtractionReq(c *gin.Context) (extractionReq, error) {
	var req extractionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processJudgmentReq(c *gin.Context) (judgmentReq, error) {
	var req judgmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
