package http

import (
	"strings"
	"time"

	"github.com/thedomainai/task-picker-agent/internal/feedback"
	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/pkg/response"
)

// --- Request DTOs ---

type recordReq struct {
	TaskText     string   `json:"task_text"     binding:"required"`
	SourceText   string   `json:"source_text"`
	SourceFile   string   `json:"source_file"`
	Judgment     string   `json:"judgment"      binding:"required"`
	ModifiedText string   `json:"modified_text"`
	Reason       string   `json:"reason"`
	Confidence   string   `json:"confidence"`
	Tags         []string `json:"tags"`
}

func (r recordReq) validate() error {
	if strings.TrimSpace(r.TaskText) == "" {
		return feedback.ErrEmptyTaskText
	}
	if _, err := model.ParseJudgment(r.Judgment); err != nil {
		return feedback.ErrInvalidJudgment
	}
	return nil
}

func (r recordReq) judgment() model.Judgment {
	j, _ := model.ParseJudgment(r.Judgment)
	return j
}

func (r recordReq) toInput() feedback.RecordInput {
	conf := model.Confidence("")
	if r.Confidence != "" {
		conf = model.ParseConfidence(r.Confidence)
	}
	return feedback.RecordInput{
		Candidate: model.TaskCandidate{
			Text:          r.TaskText,
			Origin:        model.OriginImplicit,
			Confidence:    conf,
			SourceExcerpt: r.SourceText,
		},
		Judgment:     r.judgment(),
		ModifiedText: r.ModifiedText,
		Reason:       r.Reason,
		SourceFile:   r.SourceFile,
		Tags:         r.Tags,
	}
}

func (r recordReq) toMissedInput() feedback.MissedInput {
	return feedback.MissedInput{
		TaskText:   r.TaskText,
		SourceText: r.SourceText,
		SourceFile: r.SourceFile,
		Reason:     r.Reason,
		Tags:       r.Tags,
	}
}

// ---

type listReq struct {
	Judgment string `form:"judgment"`
	Limit    int    `form:"limit"`
}

func (r listReq) validate() error {
	if r.Judgment == "" {
		return nil
	}
	if _, err := model.ParseJudgment(r.Judgment); err != nil {
		return feedback.ErrInvalidJudgment
	}
	return nil
}

func (r listReq) toInput() feedback.ListInput {
	in := feedback.ListInput{Limit: r.Limit}
	if r.Judgment != "" {
		in.Judgment, _ = model.ParseJudgment(r.Judgment)
	}
	return in
}

// ---

type searchReq struct {
	Query string `form:"q"`
	Limit int    `form:"limit"`
}

func (r searchReq) validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return feedback.ErrEmptySearch
	}
	return nil
}

func (r searchReq) toInput() feedback.SearchInput {
	return feedback.SearchInput{Text: r.Query, Limit: r.Limit}
}

// --- Response DTOs ---

type entryResp struct {
	ID           int64             `json:"id"`
	TaskText     string            `json:"task_text"`
	SourceText   string            `json:"source_text,omitempty"`
	SourceFile   string            `json:"source_file,omitempty"`
	Judgment     string            `json:"judgment"`
	ModifiedText *string           `json:"modified_text,omitempty"`
	Reason       *string           `json:"reason,omitempty"`
	Confidence   string            `json:"confidence,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	CreatedAt    response.DateTime `json:"created_at"`
}

func newEntryResp(e model.FeedbackEntry) entryResp {
	return entryResp{
		ID:           e.ID,
		TaskText:     e.TaskText,
		SourceText:   e.SourceText,
		SourceFile:   e.SourceFile,
		Judgment:     string(e.Judgment),
		ModifiedText: e.ModifiedText,
		Reason:       e.Reason,
		Confidence:   string(e.Confidence),
		Tags:         e.Tags,
		CreatedAt:    response.DateTime(e.CreatedAt),
	}
}

type listResp struct {
	Entries []entryResp `json:"entries"`
	Count   int         `json:"count"`
}

func (h *handler) newListResp(entries []model.FeedbackEntry) listResp {
	out := make([]entryResp, len(entries))
	for i, e := range entries {
		out[i] = newEntryResp(e)
	}
	return listResp{Entries: out, Count: len(out)}
}

type statsResp struct {
	Total          int     `json:"total"`
	Accepted       int     `json:"accepted"`
	Rejected       int     `json:"rejected"`
	Modified       int     `json:"modified"`
	Missed         int     `json:"missed"`
	AcceptanceRate float64 `json:"acceptance_rate"`
	RecallIssues   int     `json:"recall_issues"`
}

func (h *handler) newStatsResp(s model.FeedbackStats) statsResp {
	return statsResp{
		Total:          s.Total,
		Accepted:       s.Accepted,
		Rejected:       s.Rejected,
		Modified:       s.Modified,
		Missed:         s.Missed,
		AcceptanceRate: s.AcceptanceRate,
		RecallIssues:   s.RecallIssues,
	}
}

type rejectionResp struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

func (h *handler) newRejectionsResp(reasons []model.RejectionReason) []rejectionResp {
	out := make([]rejectionResp, len(reasons))
	for i, r := range reasons {
		out[i] = rejectionResp{Reason: r.Reason, Count: r.Count}
	}
	return out
}

type contextResp struct {
	Examples    string    `json:"examples"`
	Stats       statsResp `json:"stats"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (h *handler) newContextResp(fc model.FeedbackContext) contextResp {
	return contextResp{
		Examples:    fc.Examples,
		Stats:       h.newStatsResp(fc.Stats),
		GeneratedAt: time.Now().UTC(),
	}
}
