package model

import "strings"

// Origin tells which extractor produced a candidate.
type Origin string

const (
	OriginUnchecked Origin = "checkbox-unchecked"
	OriginChecked   Origin = "checkbox-checked"
	OriginMarker    Origin = "marker"
	OriginImplicit  Origin = "implicit"
)

// Confidence is the engine's self-reported certainty for an implicit task.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	// ConfidenceUser marks tasks a person reported as missed.
	ConfidenceUser Confidence = "user"
)

// ParseConfidence maps free text to a Confidence, defaulting to medium.
func ParseConfidence(s string) Confidence {
	switch Confidence(strings.ToLower(strings.TrimSpace(s))) {
	case ConfidenceHigh:
		return ConfidenceHigh
	case ConfidenceLow:
		return ConfidenceLow
	case ConfidenceUser:
		return ConfidenceUser
	default:
		return ConfidenceMedium
	}
}

// Rank orders confidences low < medium < high. User-reported tasks rank highest.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceLow:
		return 1
	case ConfidenceMedium:
		return 2
	case ConfidenceHigh:
		return 3
	case ConfidenceUser:
		return 4
	default:
		return 2
	}
}

// TaskCandidate is one extracted item before it is merged or judged.
type TaskCandidate struct {
	Text          string
	Origin        Origin
	Confidence    Confidence // empty for deterministic origins
	SourceExcerpt string
	Reason        string
}

// ExtractionResult is the output of the pattern extractor. Slices are never nil.
type ExtractionResult struct {
	Added     []string
	Completed []string
	Todos     []string
}

// Empty reports whether nothing was extracted.
func (r ExtractionResult) Empty() bool {
	return len(r.Added) == 0 && len(r.Completed) == 0 && len(r.Todos) == 0
}

// Candidates flattens the result into TaskCandidates in added, completed, todo order.
func (r ExtractionResult) Candidates() []TaskCandidate {
	out := make([]TaskCandidate, 0, len(r.Added)+len(r.Completed)+len(r.Todos))
	for _, t := range r.Added {
		out = append(out, TaskCandidate{Text: t, Origin: OriginUnchecked})
	}
	for _, t := range r.Completed {
		out = append(out, TaskCandidate{Text: t, Origin: OriginChecked})
	}
	for _, t := range r.Todos {
		out = append(out, TaskCandidate{Text: t, Origin: OriginMarker})
	}
	return out
}
