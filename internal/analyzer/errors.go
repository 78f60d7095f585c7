package analyzer

import "errors"

var (
	ErrNoJSONObject = errors.New("no JSON object found in response")
	ErrEmptyReply   = errors.New("empty response from engine")
)

const (
	SummaryEmptyDocument = "Empty document"
	DiagnosticNoEngine   = "LLM analysis unavailable"
)
