package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

func newAnthropicImpl(cfg Config) *anthropicImpl {
	return &anthropicImpl{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}
}

// GenerateContent sends a request to the Messages API
func (a *anthropicImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(a.transformRequest(req))
	if err != nil {
		return nil, fmt.Errorf("anthropic: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("anthropic: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", a.apiKey)
	httpReq.Header.Set("anthropic-version", APIVersion)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("anthropic: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(raw)
		var errResp errorResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error.Message != "" {
			msg = errResp.Error.Message
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	var result messagesResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("anthropic: failed to decode response: %w", err)
	}

	return transformResponse(&result), nil
}

// Model returns the model being used
func (a *anthropicImpl) Model() string {
	return a.model
}

func (a *anthropicImpl) transformRequest(req *Request) messagesRequest {
	out := messagesRequest{
		Model:     a.model,
		MaxTokens: req.MaxTokens,
		System:    req.System,
		Messages:  make([]messageParam, len(req.Messages)),
	}
	if out.MaxTokens <= 0 {
		out.MaxTokens = DefaultMaxTokens
	}
	if req.Temperature > 0 {
		t := req.Temperature
		out.Temperature = &t
	}
	for i, m := range req.Messages {
		out.Messages[i] = messageParam{Role: m.Role, Content: m.Text}
	}
	return out
}

func transformResponse(resp *messagesResponse) *Response {
	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return &Response{
		Text:       sb.String(),
		StopReason: resp.StopReason,
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		},
	}
}
