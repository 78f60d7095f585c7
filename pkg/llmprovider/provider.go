package llmprovider

import "context"

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "anthropic", "gemini")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized text-only generation request
type Request struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
	// JSONMode is a hint for providers that support a JSON response format.
	JSONMode bool
}

// Message represents a conversation turn. Role is "user" or "assistant".
type Message struct {
	Role string
	Text string
}

// UserMessage builds a single user turn.
func UserMessage(text string) Message {
	return Message{Role: "user", Text: text}
}

// Response represents a normalized generation response
type Response struct {
	Text         string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
