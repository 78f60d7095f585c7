package feedback

import (
	"errors"
	"strings"

	"github.com/thedomainai/task-picker-agent/internal/model"
)

var (
	ErrEmptyTaskText          = errors.New("task text is required")
	ErrInvalidJudgment        = errors.New("invalid judgment")
	ErrModifiedTextRequired   = errors.New("modified judgment requires modified text")
	ErrModifiedTextNotAllowed = errors.New("modified text is only allowed for modified judgments")
	ErrEmptySearch            = errors.New("search text is required")
)

// ValidateEntry enforces the ledger invariants shared by every write path.
func ValidateEntry(taskText string, judgment model.Judgment, modifiedText *string) error {
	if strings.TrimSpace(taskText) == "" {
		return ErrEmptyTaskText
	}
	if !judgment.IsValid() {
		return ErrInvalidJudgment
	}
	if judgment == model.JudgmentModified && (modifiedText == nil || strings.TrimSpace(*modifiedText) == "") {
		return ErrModifiedTextRequired
	}
	if judgment != model.JudgmentModified && modifiedText != nil {
		return ErrModifiedTextNotAllowed
	}
	return nil
}
