package anthropic

import "time"

const (
	// DefaultModel is the default Claude model
	DefaultModel = "claude-sonnet-4-20250514"

	// DefaultBaseURL is the default Anthropic API endpoint
	DefaultBaseURL = "https://api.anthropic.com"

	// APIVersion is sent as the anthropic-version header
	APIVersion = "2023-06-01"

	// DefaultMaxTokens caps the response when a request leaves it unset
	DefaultMaxTokens = 2000

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second
)
