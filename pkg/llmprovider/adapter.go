package llmprovider

import (
	"context"

	"github.com/thedomainai/task-picker-agent/pkg/anthropic"
	"github.com/thedomainai/task-picker-agent/pkg/deepseek"
	"github.com/thedomainai/task-picker-agent/pkg/gemini"
	"github.com/thedomainai/task-picker-agent/pkg/qwen"
)

// AnthropicAdapter adapts pkg/anthropic to the Provider interface
type AnthropicAdapter struct {
	client anthropic.IAnthropic
}

// NewAnthropicAdapter creates a new Anthropic adapter
func NewAnthropicAdapter(client anthropic.IAnthropic) *AnthropicAdapter {
	return &AnthropicAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *AnthropicAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	msgs := make([]anthropic.Message, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = anthropic.Message{Role: m.Role, Text: m.Text}
	}

	resp, err := a.client.GenerateContent(ctx, &anthropic.Request{
		System:      req.System,
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		Text:         resp.Text,
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}

// Name returns provider name
func (a *AnthropicAdapter) Name() string { return "anthropic" }

// Model returns model name
func (a *AnthropicAdapter) Model() string { return a.client.Model() }

// GeminiAdapter adapts pkg/gemini to the Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	msgs := make([]gemini.Message, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = gemini.Message{Role: m.Role, Text: m.Text}
	}

	resp, err := a.client.GenerateContent(ctx, &gemini.Request{
		SystemInstruction: req.System,
		Messages:          msgs,
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		Text:         resp.Text,
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string { return "gemini" }

// Model returns model name
func (a *GeminiAdapter) Model() string { return a.client.Model() }

// QwenAdapter adapts pkg/qwen to the Provider interface
type QwenAdapter struct {
	client qwen.IQwen
}

// NewQwenAdapter creates a new Qwen adapter
func NewQwenAdapter(client qwen.IQwen) *QwenAdapter {
	return &QwenAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *QwenAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	msgs := make([]qwen.Message, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = qwen.Message{Role: m.Role, Text: m.Text}
	}

	resp, err := a.client.GenerateContent(ctx, &qwen.Request{
		SystemInstruction: req.System,
		Messages:          msgs,
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
		JSONMode:          req.JSONMode,
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		Text:         resp.Text,
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *QwenAdapter) Name() string { return "qwen" }

// Model returns model name
func (a *QwenAdapter) Model() string { return a.client.Model() }

// DeepSeekAdapter adapts pkg/deepseek to the Provider interface
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

// NewDeepSeekAdapter creates a new DeepSeek adapter
func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	dsReq := &deepseek.Request{
		Messages:    make([]deepseek.Message, 0, len(req.Messages)+1),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.System != "" {
		dsReq.Messages = append(dsReq.Messages, deepseek.Message{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		dsReq.Messages = append(dsReq.Messages, deepseek.Message{Role: m.Role, Content: m.Text})
	}

	resp, err := a.client.GenerateContent(ctx, dsReq)
	if err != nil {
		return nil, err
	}

	out := &Response{
		ProviderName: a.Name(),
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) > 0 {
		out.Text = resp.Choices[0].Message.Content
	}
	return out, nil
}

// Name returns the provider name
func (a *DeepSeekAdapter) Name() string { return "deepseek" }

// Model returns the model name
func (a *DeepSeekAdapter) Model() string { return a.client.Model() }
