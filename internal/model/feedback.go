package model

import (
	"fmt"
	"strings"
	"time"
)

// Judgment is a human verdict on a candidate. Stored as a free-form string and
// validated against AllJudgments so new kinds need no schema change.
type Judgment string

const (
	JudgmentAccepted Judgment = "accepted"
	JudgmentRejected Judgment = "rejected"
	JudgmentModified Judgment = "modified"
	JudgmentMissed   Judgment = "missed"
)

// AllJudgments is the accepted set, in context-rendering order.
var AllJudgments = []Judgment{JudgmentAccepted, JudgmentRejected, JudgmentModified, JudgmentMissed}

// IsValid reports whether j is in the allow-list.
func (j Judgment) IsValid() bool {
	for _, k := range AllJudgments {
		if j == k {
			return true
		}
	}
	return false
}

// ParseJudgment validates s against the allow-list.
func ParseJudgment(s string) (Judgment, error) {
	j := Judgment(strings.ToLower(strings.TrimSpace(s)))
	if !j.IsValid() {
		return "", fmt.Errorf("unknown judgment %q", s)
	}
	return j, nil
}

// FeedbackEntry is one immutable ledger row.
// ModifiedText is set exactly when Judgment is JudgmentModified.
type FeedbackEntry struct {
	ID           int64
	TaskText     string
	SourceText   string
	SourceFile   string
	Judgment     Judgment
	ModifiedText *string
	Reason       *string
	Confidence   Confidence
	CreatedAt    time.Time
	Tags         []string
}

// FeedbackStats is derived from the ledger on every call.
type FeedbackStats struct {
	Total          int
	Accepted       int
	Rejected       int
	Modified       int
	Missed         int
	AcceptanceRate float64
	RecallIssues   int
}

// NewFeedbackStats computes the derived fields from raw counts.
func NewFeedbackStats(accepted, rejected, modified, missed int) FeedbackStats {
	s := FeedbackStats{
		Total:        accepted + rejected + modified + missed,
		Accepted:     accepted,
		Rejected:     rejected,
		Modified:     modified,
		Missed:       missed,
		RecallIssues: missed,
	}
	if judged := accepted + rejected + modified; judged > 0 {
		s.AcceptanceRate = float64(accepted) / float64(judged)
	}
	return s
}

// MissRatio is missed/(accepted+missed), 0 when both are zero.
func (s FeedbackStats) MissRatio() float64 {
	d := s.Accepted + s.Missed
	if d == 0 {
		return 0
	}
	return float64(s.Missed) / float64(d)
}

// RejectionReason is a grouped rejection reason with its frequency.
type RejectionReason struct {
	Reason string
	Count  int
}

// FeedbackContext is the conditioning material handed to the reasoning adapter.
// The zero value means "no context".
type FeedbackContext struct {
	Examples string
	Stats    FeedbackStats
}

// Empty reports whether there is nothing to condition on.
func (c FeedbackContext) Empty() bool {
	return c.Examples == ""
}
