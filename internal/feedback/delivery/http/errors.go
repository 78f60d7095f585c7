package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thedomainai/task-picker-agent/internal/feedback"
	"github.com/thedomainai/task-picker-agent/pkg/response"
)

var (
	errInvalidJudgment = response.NewHTTPError(40001, "judgment must be one of accepted, rejected, modified, missed", http.StatusBadRequest)
	errEmptyTaskText   = response.NewHTTPError(40002, "task_text is required", http.StatusBadRequest)
	errModifiedText    = response.NewHTTPError(40003, "modified_text is required for modified judgments and forbidden otherwise", http.StatusBadRequest)
	errEmptyQuery      = response.NewHTTPError(40004, "q is required", http.StatusBadRequest)
)

// mapError translates use-case errors into HTTP errors. A nil result means
// the error is internal.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, feedback.ErrInvalidJudgment):
		return errInvalidJudgment
	case errors.Is(err, feedback.ErrEmptyTaskText):
		return errEmptyTaskText
	case errors.Is(err, feedback.ErrModifiedTextRequired), errors.Is(err, feedback.ErrModifiedTextNotAllowed):
		return errModifiedText
	case errors.Is(err, feedback.ErrEmptySearch):
		return errEmptyQuery
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
