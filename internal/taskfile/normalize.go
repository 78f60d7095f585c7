package taskfile

import (
	"strings"

	"github.com/thedomainai/task-picker-agent/internal/model"
)

// Normalize trims text and lower-cases it when caseInsensitive is set.
func Normalize(text string, caseInsensitive bool) string {
	n := strings.TrimSpace(text)
	if caseInsensitive {
		n = strings.ToLower(n)
	}
	return n
}

// Glyph is the confidence marker written before an implicit task.
func Glyph(c model.Confidence) string {
	switch c {
	case model.ConfidenceHigh:
		return "!"
	case model.ConfidenceLow:
		return "~"
	default:
		return "?"
	}
}

// StripGlyph removes a leading "[!] ", "[?] " or "[~] " marker so previously
// appended implicit tasks compare equal to fresh candidates.
func StripGlyph(text string) string {
	t := strings.TrimSpace(text)
	if len(t) >= 3 && t[0] == '[' && t[2] == ']' {
		switch t[1] {
		case '!', '?', '~':
			return strings.TrimSpace(t[3:])
		}
	}
	return t
}
