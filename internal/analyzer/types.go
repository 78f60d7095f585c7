package analyzer

import "github.com/thedomainai/task-picker-agent/internal/model"

type AnalyzeInput struct {
	Content  string
	FileName string
	Feedback model.FeedbackContext // zero value = unconditioned prompt
}
