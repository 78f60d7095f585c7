package feedback

import "github.com/thedomainai/task-picker-agent/internal/model"

// RecordInput is a human judgment on an extracted or inferred candidate.
type RecordInput struct {
	Candidate    model.TaskCandidate
	Judgment     model.Judgment
	ModifiedText string // required for JudgmentModified, rejected otherwise
	Reason       string
	SourceFile   string
	Tags         []string
}

// MissedInput reports a task the engine should have inferred but did not.
type MissedInput struct {
	TaskText   string
	SourceText string
	SourceFile string
	Reason     string
	Tags       []string
}

type ListInput struct {
	Judgment model.Judgment // empty = all kinds
	Limit    int
}

type SearchInput struct {
	Text  string
	Limit int
}
