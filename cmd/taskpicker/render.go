package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/pipeline"
	"github.com/thedomainai/task-picker-agent/internal/taskfile"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func confidenceStyle(c model.Confidence) lipgloss.Style {
	switch c {
	case model.ConfidenceHigh, model.ConfidenceUser:
		return successStyle
	case model.ConfidenceLow:
		return mutedStyle
	default:
		return warningStyle
	}
}

func printRun(w io.Writer, out pipeline.RunOutput, dryRun bool) {
	m := out.Merge
	if out.Analysis != nil && out.Analysis.Diagnostic != "" {
		fmt.Fprintln(w, warningStyle.Render("Analysis unavailable: "+out.Analysis.Diagnostic))
	}
	if m.Empty() {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%s: no new tasks", out.Source)))
		return
	}

	verb := "Appended"
	if dryRun {
		verb = "Would append"
	}
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("%s %d item(s) from %s", verb, total(m), out.Source)))
	printCounts(w, m)
	if dryRun {
		fmt.Fprintln(w)
		fmt.Fprint(w, m.Section)
	}
}

func printSkipped(w io.Writer, path string) {
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%s: skipped (excluded)", path)))
}

func printCounts(w io.Writer, m taskfile.MergeOutput) {
	rows := []struct {
		label string
		n     int
	}{
		{"new tasks", m.Added},
		{"completed", m.Completed},
		{"todos", m.Todos},
		{"implicit", m.Implicit},
		{"incomplete sections", m.IncompleteSections},
		{"unanswered questions", m.UnansweredQuestions},
		{"skipped duplicates", m.Skipped},
		{"below confidence", m.Filtered},
	}
	for _, r := range rows {
		if r.n == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-22s %d\n", r.label, r.n)
	}
}

func total(m taskfile.MergeOutput) int {
	return m.Added + m.Completed + m.Todos + m.Implicit + m.IncompleteSections + m.UnansweredQuestions
}

func printAnalysis(w io.Writer, r model.AnalysisResult) {
	if r.Diagnostic != "" {
		fmt.Fprintln(w, warningStyle.Render("Analysis unavailable: "+r.Diagnostic))
		return
	}
	if r.Summary != "" {
		fmt.Fprintln(w, titleStyle.Render("Summary"))
		fmt.Fprintln(w, "  "+r.Summary)
	}
	printImplicit(w, r.ImplicitTasks)
	printList(w, "Incomplete sections", r.IncompleteSections)
	printList(w, "Unanswered questions", r.UnansweredQuestions)
}

func printImplicit(w io.Writer, tasks []model.ImplicitTask) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No implicit tasks found"))
		return
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Implicit tasks (%d)", len(tasks))))
	for i, t := range tasks {
		conf := confidenceStyle(t.Confidence).Render(string(t.Confidence))
		fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, conf, t.Task)
		if t.Reason != "" {
			fmt.Fprintln(w, mutedStyle.Render("     "+t.Reason))
		}
	}
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, headerStyle.Render(title))
	for _, it := range items {
		fmt.Fprintln(w, "  - "+it)
	}
}

func printEntries(w io.Writer, entries []model.FeedbackEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No feedback recorded"))
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s %s\n",
			mutedStyle.Render(fmt.Sprintf("#%d", e.ID)),
			judgmentLabel(e.Judgment),
			e.TaskText,
		)
		if e.ModifiedText != nil {
			fmt.Fprintln(w, "     -> "+*e.ModifiedText)
		}
		if e.Reason != nil && *e.Reason != "" {
			fmt.Fprintln(w, mutedStyle.Render("     reason: "+*e.Reason))
		}
		if len(e.Tags) > 0 {
			fmt.Fprintln(w, mutedStyle.Render("     tags: "+strings.Join(e.Tags, ", ")))
		}
	}
}

func judgmentLabel(j model.Judgment) string {
	label := fmt.Sprintf("%-9s", j)
	switch j {
	case model.JudgmentAccepted:
		return successStyle.Render(label)
	case model.JudgmentRejected:
		return errorStyle.Render(label)
	default:
		return warningStyle.Render(label)
	}
}
