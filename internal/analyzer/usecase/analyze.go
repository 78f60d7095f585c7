package usecase

import (
	"context"
	"strings"

	"github.com/thedomainai/task-picker-agent/internal/analyzer"
	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/pkg/llmprovider"
)

func (uc *implUseCase) Analyze(ctx context.Context, input analyzer.AnalyzeInput) model.AnalysisResult {
	if strings.TrimSpace(input.Content) == "" {
		return model.EmptyAnalysis(analyzer.SummaryEmptyDocument)
	}
	if uc.engine == nil {
		return model.Degraded(analyzer.DiagnosticNoEngine)
	}

	req := &llmprovider.Request{
		System: BuildSystemPrompt(input.Feedback),
		Messages: []llmprovider.Message{
			llmprovider.UserMessage(UserMessage(input.FileName, truncate(input.Content, uc.cfg.MaxDocumentChars))),
		},
		MaxTokens:   uc.cfg.MaxTokens,
		Temperature: uc.cfg.Temperature,
		JSONMode:    true,
	}

	resp, err := uc.engine.GenerateContent(ctx, req)
	if err != nil {
		uc.l.Warnf(ctx, "analyzer.usecase.Analyze: %s: %v", input.FileName, err)
		return model.Degraded(apiDiagnostic(err))
	}

	result, err := ParseResponse(resp.Text)
	if err != nil {
		uc.l.Warnf(ctx, "analyzer.usecase.Analyze: unparseable reply for %s: %v", input.FileName, err)
		uc.l.Debugf(ctx, "analyzer.usecase.Analyze: reply was: %s", head(resp.Text, 500))
		return model.Degraded(parseDiagnostic(err))
	}

	uc.l.Info(ctx, "analysis complete",
		"file", input.FileName,
		"provider", resp.ProviderName,
		"implicit_tasks", len(result.ImplicitTasks),
		"conditioned", !input.Feedback.Empty(),
	)
	return result
}

func apiDiagnostic(err error) string {
	return "API error: " + err.Error()
}

func parseDiagnostic(err error) string {
	return "Failed to parse response: " + err.Error()
}

func head(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
