package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thedomainai/task-picker-agent/internal/feedback"
	"github.com/thedomainai/task-picker-agent/internal/pipeline"
	"github.com/thedomainai/task-picker-agent/pkg/response"
)

var (
	errInvalidJudgment  = response.NewHTTPError(40001, "judgment must be one of accepted, rejected, modified", http.StatusBadRequest)
	errModifiedText     = response.NewHTTPError(40003, "modified_text is required for modified judgments and forbidden otherwise", http.StatusBadRequest)
	errEmptyContent     = response.NewHTTPError(40010, "content is required", http.StatusBadRequest)
	errInvalidEncoding  = response.NewHTTPError(40011, "content is not valid UTF-8", http.StatusBadRequest)
	errIndexOutOfRange  = response.NewHTTPError(40012, "index does not match an implicit task of this analysis", http.StatusBadRequest)
	errAnalysisNotFound = response.NewHTTPError(40401, "analysis not found or expired", http.StatusNotFound)
)

// mapError translates use-case errors into HTTP errors. A nil result means
// the error is internal.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, pipeline.ErrInvalidEncoding):
		return errInvalidEncoding
	case errors.Is(err, feedback.ErrInvalidJudgment):
		return errInvalidJudgment
	case errors.Is(err, feedback.ErrModifiedTextRequired), errors.Is(err, feedback.ErrModifiedTextNotAllowed):
		return errModifiedText
	default:
		return nil
	}
}

func (h *handler) respondError(c *gin.Context, err error) {
	if mapped := h.mapError(err); mapped != nil {
		response.Error(c, mapped, nil)
		return
	}
	response.InternalError(c, err)
}

func (h *handler) respondBindError(c *gin.Context, err error) {
	if mapped := h.mapError(err); mapped != nil {
		response.Error(c, mapped, nil)
		return
	}
	response.Error(c, err, nil)
}
