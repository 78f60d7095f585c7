package usecase

import (
	"strings"
	"testing"

	"github.com/thedomainai/task-picker-agent/internal/model"
)

func TestBuildSystemPrompt_EmptyContext(t *testing.T) {
	if got := BuildSystemPrompt(model.FeedbackContext{}); got != AnalysisPrompt {
		t.Errorf("expected bare prompt for empty context")
	}
}

func TestBuildSystemPrompt_Conditioned(t *testing.T) {
	fc := model.FeedbackContext{
		Examples: "## Examples of GOOD task detections (user accepted):\n- Source: \"x\"...",
		Stats:    model.NewFeedbackStats(3, 1, 1, 0),
	}
	got := BuildSystemPrompt(fc)

	for _, want := range []string{
		AnalysisPrompt + "\n\n# User Feedback History\n",
		fc.Examples,
		"## Feedback Statistics:\n- Total feedback: 5\n- Acceptance rate: 60.0%\n- Missed tasks reported: 0\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(got, "more conservative") || strings.Contains(got, "IMPORTANT") {
		t.Errorf("no directive expected at 60%% acceptance and zero misses")
	}
}

func TestDirectives(t *testing.T) {
	tests := []struct {
		name         string
		stats        model.FeedbackStats
		conservative bool
		aggressive   bool
	}{
		{"healthy", model.NewFeedbackStats(8, 2, 0, 0), false, false},
		{"low acceptance", model.NewFeedbackStats(1, 3, 0, 0), true, false},
		{"many misses", model.NewFeedbackStats(3, 0, 0, 1), false, true},
		{"few misses", model.NewFeedbackStats(20, 0, 0, 1), false, false},
		{"only misses", model.NewFeedbackStats(0, 0, 0, 4), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Directives(tt.stats)
			if c := strings.Contains(got, "Low acceptance rate suggests being more conservative"); c != tt.conservative {
				t.Errorf("conservative = %v, want %v", c, tt.conservative)
			}
			if a := strings.Contains(got, "tasks were missed (not detected)"); a != tt.aggressive {
				t.Errorf("aggressive = %v, want %v", a, tt.aggressive)
			}
		})
	}
}

func TestDirectives_MissedCount(t *testing.T) {
	got := Directives(model.NewFeedbackStats(3, 0, 0, 2))
	if !strings.Contains(got, "IMPORTANT: 2 tasks were missed") {
		t.Errorf("unexpected directive: %q", got)
	}
}

func TestUserMessage(t *testing.T) {
	got := UserMessage("notes.md", "body")
	want := "File: notes.md\n\n```markdown\nbody\n```"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		max     int
		want    string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii", "abcdef", 3, "abc" + truncationMarker},
		{"multibyte counts runes", "ab日本語", 3, "ab日" + truncationMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.content, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.content, tt.max, got, tt.want)
			}
		})
	}
}
