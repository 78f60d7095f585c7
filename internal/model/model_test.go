package model

import "testing"

func TestNewFeedbackStats(t *testing.T) {
	tests := []struct {
		name     string
		a, r, m  int
		missed   int
		wantRate float64
		wantMiss float64
	}{
		{name: "empty ledger", wantRate: 0, wantMiss: 0},
		{name: "three accepted one rejected one modified", a: 3, r: 1, m: 1, wantRate: 0.6},
		{name: "only missed", missed: 4, wantRate: 0, wantMiss: 1},
		{name: "accepted and missed", a: 9, missed: 1, wantRate: 1, wantMiss: 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFeedbackStats(tt.a, tt.r, tt.m, tt.missed)
			if s.Total != tt.a+tt.r+tt.m+tt.missed {
				t.Errorf("Total = %d", s.Total)
			}
			if s.RecallIssues != s.Missed {
				t.Errorf("RecallIssues = %d, Missed = %d", s.RecallIssues, s.Missed)
			}
			if s.AcceptanceRate != tt.wantRate {
				t.Errorf("AcceptanceRate = %v, want %v", s.AcceptanceRate, tt.wantRate)
			}
			if s.MissRatio() != tt.wantMiss {
				t.Errorf("MissRatio = %v, want %v", s.MissRatio(), tt.wantMiss)
			}
		})
	}
}

func TestParseJudgment(t *testing.T) {
	for _, s := range []string{"accepted", "Rejected", " modified ", "MISSED"} {
		if _, err := ParseJudgment(s); err != nil {
			t.Errorf("ParseJudgment(%q) error: %v", s, err)
		}
	}
	if _, err := ParseJudgment("maybe"); err == nil {
		t.Error("expected error for unknown judgment")
	}
}

func TestParseConfidence(t *testing.T) {
	cases := map[string]Confidence{
		"high":   ConfidenceHigh,
		"LOW":    ConfidenceLow,
		"medium": ConfidenceMedium,
		"":       ConfidenceMedium,
		"weird":  ConfidenceMedium,
	}
	for in, want := range cases {
		if got := ParseConfidence(in); got != want {
			t.Errorf("ParseConfidence(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractionResult_Candidates(t *testing.T) {
	r := ExtractionResult{Added: []string{"a"}, Completed: []string{"b"}, Todos: []string{"c"}}
	got := r.Candidates()
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Origin != OriginUnchecked || got[1].Origin != OriginChecked || got[2].Origin != OriginMarker {
		t.Errorf("unexpected origins: %+v", got)
	}
}
