package model

// ImplicitTask is a task inferred by the reasoning engine.
type ImplicitTask struct {
	Task       string     `json:"task"`
	Reason     string     `json:"reason"`
	Confidence Confidence `json:"confidence"`
	SourceText string     `json:"source_text"`
}

// Candidate converts the implicit task into a TaskCandidate.
func (t ImplicitTask) Candidate() TaskCandidate {
	return TaskCandidate{
		Text:          t.Task,
		Origin:        OriginImplicit,
		Confidence:    t.Confidence,
		SourceExcerpt: t.SourceText,
		Reason:        t.Reason,
	}
}

// AnalysisResult is the parsed engine reply. Diagnostic is set only for the
// degraded empty result (parse or transport failure, engine unavailable).
type AnalysisResult struct {
	ImplicitTasks       []ImplicitTask `json:"implicit_tasks"`
	IncompleteSections  []string       `json:"incomplete_sections"`
	UnansweredQuestions []string       `json:"unanswered_questions"`
	Summary             string         `json:"summary"`
	Diagnostic          string         `json:"diagnostic,omitempty"`
}

// EmptyAnalysis returns a result with non-nil empty slices.
func EmptyAnalysis(summary string) AnalysisResult {
	return AnalysisResult{
		ImplicitTasks:       []ImplicitTask{},
		IncompleteSections:  []string{},
		UnansweredQuestions: []string{},
		Summary:             summary,
	}
}

// Degraded returns the empty result carrying a diagnostic.
func Degraded(diagnostic string) AnalysisResult {
	r := EmptyAnalysis(diagnostic)
	r.Diagnostic = diagnostic
	return r
}
