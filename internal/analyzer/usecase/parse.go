package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/thedomainai/task-picker-agent/internal/analyzer"
	"github.com/thedomainai/task-picker-agent/internal/model"
)

type rawTask struct {
	Task       string `json:"task"`
	Reason     string `json:"reason"`
	Confidence string `json:"confidence"`
	SourceText string `json:"source_text"`
}

type rawResult struct {
	ImplicitTasks       []rawTask `json:"implicit_tasks"`
	IncompleteSections  []string  `json:"incomplete_sections"`
	UnansweredQuestions []string  `json:"unanswered_questions"`
	Summary             string    `json:"summary"`
}

// ParseResponse extracts the JSON object from an engine reply. It looks for a
// ```json fence, then a plain ``` fence, then the span from the first "{" to
// the last "}". Missing keys become empty values.
func ParseResponse(text string) (model.AnalysisResult, error) {
	payload, err := extractJSON(text)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return model.AnalysisResult{}, fmt.Errorf("invalid JSON: %w", err)
	}

	result := model.EmptyAnalysis(raw.Summary)
	for _, t := range raw.ImplicitTasks {
		if strings.TrimSpace(t.Task) == "" {
			continue
		}
		result.ImplicitTasks = append(result.ImplicitTasks, model.ImplicitTask{
			Task:       t.Task,
			Reason:     t.Reason,
			Confidence: model.ParseConfidence(t.Confidence),
			SourceText: t.SourceText,
		})
	}
	if raw.IncompleteSections != nil {
		result.IncompleteSections = raw.IncompleteSections
	}
	if raw.UnansweredQuestions != nil {
		result.UnansweredQuestions = raw.UnansweredQuestions
	}
	return result, nil
}

func extractJSON(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", analyzer.ErrEmptyReply
	}
	if body, ok := fenced(text, "```json"); ok {
		return body, nil
	}
	if body, ok := fenced(text, "```"); ok {
		return body, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", analyzer.ErrNoJSONObject
	}
	return text[start : end+1], nil
}

// fenced returns the trimmed body after the first opening fence, up to the
// next ``` or the end of text.
func fenced(text, open string) (string, bool) {
	i := strings.Index(text, open)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(open):]
	if j := strings.Index(rest, "```"); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest), true
}
