package usecase

import (
	"fmt"
	"strings"

	"github.com/thedomainai/task-picker-agent/internal/model"
)

// AnalysisPrompt is the fixed task specification sent as the system prompt.
const AnalysisPrompt = `You are an expert at analyzing documents.
Analyze the given document and detect implicit tasks and unfinished parts.

Look for:
1. **Implicit tasks**: sentences that imply something needs to be done but are not marked with "- [ ]"
   - e.g. "check this later", "needs discussion", "X is required", "we should X"
2. **Incomplete sections**: empty sections, or sections marked "TBD", "WIP", "Draft"
3. **Unanswered questions**: sentences ending in "?" that have no answer
4. **Follow-up items**: actions with time expressions such as "next time", "tomorrow", "next week"

Reply in JSON:
` + "```json" + `
{
  "implicit_tasks": [
    {
      "task": "what needs to be done",
      "reason": "why this was judged to be a task",
      "confidence": "high/medium/low",
      "source_text": "the original text"
    }
  ],
  "incomplete_sections": ["section 1", "section 2"],
  "unanswered_questions": ["question 1", "question 2"],
  "summary": "a short summary of how complete the document is"
}
` + "```" + `

Notes:
- Exclude tasks already marked with "- [ ]" or "- [x]"
- Exclude explicit markers such as TODO:, FIXME: (they are handled separately)
- Include low-confidence items too, so the user can decide
`

const (
	conservativeThreshold = 0.5
	missRatioThreshold    = 0.1
	truncationMarker      = "\n\n[...truncated...]"
)

// BuildSystemPrompt appends the feedback history, its statistics, and the
// directives derived from them to AnalysisPrompt.
func BuildSystemPrompt(fc model.FeedbackContext) string {
	if fc.Empty() {
		return AnalysisPrompt
	}

	var sb strings.Builder
	sb.WriteString(AnalysisPrompt)
	sb.WriteString("\n\n# User Feedback History\n")
	sb.WriteString(fc.Examples)
	sb.WriteString(StatsBlock(fc.Stats))
	sb.WriteString(Directives(fc.Stats))
	return sb.String()
}

// StatsBlock renders the ledger statistics section.
func StatsBlock(s model.FeedbackStats) string {
	return fmt.Sprintf("\n\n## Feedback Statistics:\n- Total feedback: %d\n- Acceptance rate: %.1f%%\n- Missed tasks reported: %d\n",
		s.Total, s.AcceptanceRate*100, s.Missed)
}

// Directives returns the behavioural notes implied by the statistics.
func Directives(s model.FeedbackStats) string {
	var sb strings.Builder
	if s.AcceptanceRate < conservativeThreshold {
		sb.WriteString("\nNote: Low acceptance rate suggests being more conservative with task detection. " +
			"Focus on high-confidence detections.\n")
	}
	if s.Missed > 0 && s.MissRatio() > missRatioThreshold {
		fmt.Fprintf(&sb, "\nIMPORTANT: %d tasks were missed (not detected). "+
			"Be more aggressive in detecting implicit tasks. "+
			"Look carefully at the MISSED examples above and detect similar patterns.\n", s.Missed)
	}
	return sb.String()
}

// UserMessage frames the document for the engine.
func UserMessage(fileName, content string) string {
	return fmt.Sprintf("File: %s\n\n```markdown\n%s\n```", fileName, content)
}

// truncate caps content at max runes and marks the cut.
func truncate(content string, max int) string {
	if max <= 0 {
		return content
	}
	n := 0
	for i := range content {
		if n == max {
			return content[:i] + truncationMarker
		}
		n++
	}
	return content
}
