package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/thedomainai/task-picker-agent/internal/analyzer"
	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/pkg/llmprovider"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

type fakeEngine struct {
	reply string
	err   error
	calls int
	req   *llmprovider.Request
}

func (f *fakeEngine) GenerateContent(_ context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.calls++
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Response{Text: f.reply, ProviderName: "fake"}, nil
}

func newObserved() (log.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return log.NewZap(zap.New(core)), logs
}

func TestAnalyze_EmptyDocument(t *testing.T) {
	engine := &fakeEngine{}
	uc := New(log.NewNop(), engine, Config{})

	got := uc.Analyze(context.Background(), analyzer.AnalyzeInput{Content: " \n\t"})

	assert.Equal(t, analyzer.SummaryEmptyDocument, got.Summary)
	assert.Empty(t, got.Diagnostic)
	assert.Empty(t, got.ImplicitTasks)
	assert.Zero(t, engine.calls)
}

func TestAnalyze_NoEngine(t *testing.T) {
	uc := New(log.NewNop(), nil, Config{})

	assert.False(t, uc.Enabled())
	got := uc.Analyze(context.Background(), analyzer.AnalyzeInput{Content: "text"})
	assert.Equal(t, analyzer.DiagnosticNoEngine, got.Diagnostic)
}

func TestAnalyze_NotJSON(t *testing.T) {
	l, logs := newObserved()
	uc := New(l, &fakeEngine{reply: "not json"}, Config{})

	got := uc.Analyze(context.Background(), analyzer.AnalyzeInput{Content: "Call Bob later", FileName: "a.md"})

	assert.Empty(t, got.ImplicitTasks)
	assert.NotNil(t, got.IncompleteSections)
	assert.True(t, strings.HasPrefix(got.Diagnostic, "Failed to parse response: "), got.Diagnostic)
	assert.Equal(t, got.Diagnostic, got.Summary)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestAnalyze_TransportError(t *testing.T) {
	uc := New(log.NewNop(), &fakeEngine{err: errors.New("401 unauthorized")}, Config{})

	got := uc.Analyze(context.Background(), analyzer.AnalyzeInput{Content: "x"})

	assert.Equal(t, "API error: 401 unauthorized", got.Diagnostic)
	assert.Empty(t, got.ImplicitTasks)
}

func TestAnalyze_Success(t *testing.T) {
	engine := &fakeEngine{reply: "```json\n{\"implicit_tasks\":[{\"task\":\"Send notes\",\"confidence\":\"high\"}],\"summary\":\"mostly done\"}\n```"}
	uc := New(log.NewNop(), engine, Config{MaxDocumentChars: 5, MaxTokens: 123})

	fc := model.FeedbackContext{Examples: "## Examples", Stats: model.NewFeedbackStats(3, 1, 1, 0)}
	got := uc.Analyze(context.Background(), analyzer.AnalyzeInput{
		Content:  "0123456789",
		FileName: "notes.md",
		Feedback: fc,
	})

	require.Len(t, got.ImplicitTasks, 1)
	assert.Equal(t, model.ConfidenceHigh, got.ImplicitTasks[0].Confidence)
	assert.Equal(t, "mostly done", got.Summary)
	assert.Empty(t, got.Diagnostic)

	require.NotNil(t, engine.req)
	assert.Equal(t, 123, engine.req.MaxTokens)
	assert.Contains(t, engine.req.System, "# User Feedback History\n## Examples")
	require.Len(t, engine.req.Messages, 1)
	assert.Equal(t, "user", engine.req.Messages[0].Role)
	assert.Equal(t, "File: notes.md\n\n```markdown\n01234\n\n[...truncated...]\n```", engine.req.Messages[0].Text)
}
