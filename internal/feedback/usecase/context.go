package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/thedomainai/task-picker-agent/internal/model"
)

const sourceExcerptLimit = 100

// BuildContext returns the few-shot block for the reasoning engine, or the
// empty context when the ledger is small or unreadable.
func (uc *implUseCase) BuildContext(ctx context.Context) model.FeedbackContext {
	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		uc.l.Warnf(ctx, "uc.BuildContext: feedback unavailable: %v", err)
		return model.FeedbackContext{}
	}
	if stats.Total < uc.minExamples {
		return model.FeedbackContext{}
	}

	sample, err := uc.BalancedSample(ctx, uc.samplePerKind)
	if err != nil {
		uc.l.Warnf(ctx, "uc.BuildContext: feedback unavailable: %v", err)
		return model.FeedbackContext{}
	}

	examples := FormatExamples(sample)
	if examples == "" {
		return model.FeedbackContext{}
	}
	return model.FeedbackContext{Examples: examples, Stats: stats}
}

// FormatExamples renders a balanced sample as prompt text. Sections appear in
// the order accepted, rejected, modified, missed and only when non-empty.
func FormatExamples(sample map[model.Judgment][]model.FeedbackEntry) string {
	var lines []string

	if entries := sample[model.JudgmentAccepted]; len(entries) > 0 {
		lines = append(lines, "## Examples of GOOD task detections (user accepted):")
		for _, e := range entries {
			lines = append(lines,
				fmt.Sprintf("- Source: \"%s\"...", excerpt(e.SourceText)),
				fmt.Sprintf("  Task: \"%s\"", e.TaskText),
				fmt.Sprintf("  Confidence: %s", e.Confidence),
				"",
			)
		}
	}

	if entries := sample[model.JudgmentRejected]; len(entries) > 0 {
		lines = append(lines, "## Examples of FALSE POSITIVES (user rejected):")
		for _, e := range entries {
			lines = append(lines,
				fmt.Sprintf("- Source: \"%s\"...", excerpt(e.SourceText)),
				fmt.Sprintf("  Suggested task: \"%s\"", e.TaskText),
			)
			if e.Reason != nil && *e.Reason != "" {
				lines = append(lines, fmt.Sprintf("  Reason for rejection: %s", *e.Reason))
			}
			lines = append(lines, "")
		}
	}

	if entries := sample[model.JudgmentModified]; len(entries) > 0 {
		lines = append(lines, "## Examples of MODIFIED tasks (user improved):")
		for _, e := range entries {
			modified := ""
			if e.ModifiedText != nil {
				modified = *e.ModifiedText
			}
			lines = append(lines,
				fmt.Sprintf("- Original: \"%s\"", e.TaskText),
				fmt.Sprintf("  User's version: \"%s\"", modified),
				"",
			)
		}
	}

	if entries := sample[model.JudgmentMissed]; len(entries) > 0 {
		lines = append(lines,
			"## Examples of MISSED tasks (should have been detected):",
			"IMPORTANT: These are tasks the user had to add manually because they were not detected.",
			"Look for similar patterns and make sure to detect them!",
			"",
		)
		for _, e := range entries {
			lines = append(lines, fmt.Sprintf("- Missed task: \"%s\"", e.TaskText))
			if e.SourceText != "" {
				lines = append(lines, fmt.Sprintf("  Source text: \"%s\"...", excerpt(e.SourceText)))
			}
			if e.Reason != nil && *e.Reason != "" {
				lines = append(lines, fmt.Sprintf("  Why it should be detected: %s", *e.Reason))
			}
			lines = append(lines, "")
		}
	}

	return strings.Join(lines, "\n")
}

// excerpt truncates to the first sourceExcerptLimit runes.
func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= sourceExcerptLimit {
		return s
	}
	return string(r[:sourceExcerptLimit])
}
