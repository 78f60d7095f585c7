package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thedomainai/task-picker-agent/internal/feedback"
	feedbackUC "github.com/thedomainai/task-picker-agent/internal/feedback/usecase"
	"github.com/thedomainai/task-picker-agent/internal/model"
)

const missRatioWarning = 0.2

var errClearNotConfirmed = errors.New("refusing to clear the ledger without --yes")

func newFeedbackCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Record and inspect judgments on extracted tasks",
	}
	cmd.AddCommand(
		newFeedbackAddCmd(root),
		newFeedbackMissedCmd(root),
		newFeedbackListCmd(root),
		newFeedbackStatsCmd(root),
		newFeedbackSearchCmd(root),
		newFeedbackRejectionsCmd(root),
		newFeedbackCheckCmd(root),
		newFeedbackReviewCmd(root),
		newFeedbackExportCmd(root),
		newFeedbackClearCmd(root),
	)
	return cmd
}

func newFeedbackAddCmd(root *rootOptions) *cobra.Command {
	var (
		task, judgment, sourceText, sourceFile string
		reason, modified, confidence           string
		tags                                   []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a judgment on a task",
		Example: `  taskpicker feedback add --task "Write tests" --judgment accepted
  taskpicker feedback add --task "Ship" --judgment modified --modified "Ship v2" --reason "scope"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := model.ParseJudgment(judgment)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withApp(ctx, root, false, func(a *app) error {
				var entry model.FeedbackEntry
				if j == model.JudgmentMissed {
					entry, err = a.feedback.ReportMissed(ctx, feedback.MissedInput{
						TaskText:   task,
						SourceText: sourceText,
						SourceFile: sourceFile,
						Reason:     reason,
						Tags:       tags,
					})
				} else {
					entry, err = a.feedback.Record(ctx, feedback.RecordInput{
						Candidate: model.TaskCandidate{
							Text:          task,
							Origin:        model.OriginImplicit,
							Confidence:    model.ParseConfidence(confidence),
							SourceExcerpt: sourceText,
						},
						Judgment:     j,
						ModifiedText: modified,
						Reason:       reason,
						SourceFile:   sourceFile,
						Tags:         tags,
					})
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Recorded #%d (%s)", entry.ID, entry.Judgment)))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&task, "task", "t", "", "task text")
	f.StringVarP(&judgment, "judgment", "j", "", "accepted, rejected, modified or missed")
	f.StringVar(&sourceText, "source-text", "", "excerpt the task came from")
	f.StringVar(&sourceFile, "source-file", "", "document the task came from")
	f.StringVarP(&reason, "reason", "r", "", "why")
	f.StringVarP(&modified, "modified", "m", "", "corrected text for a modified judgment")
	f.StringVar(&confidence, "confidence", "medium", "engine confidence of the task")
	f.StringSliceVar(&tags, "tags", nil, "comma separated tags")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("judgment")
	return cmd
}

func newFeedbackMissedCmd(root *rootOptions) *cobra.Command {
	var sourceText, sourceFile, reason string

	cmd := &cobra.Command{
		Use:   "missed TASK",
		Short: "Report a task the engine should have inferred",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, root, false, func(a *app) error {
				entry, err := a.feedback.ReportMissed(ctx, feedback.MissedInput{
					TaskText:   args[0],
					SourceText: sourceText,
					SourceFile: sourceFile,
					Reason:     reason,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Recorded missed task #%d", entry.ID)))
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&sourceText, "source-text", "", "excerpt the task should have come from")
	f.StringVar(&sourceFile, "source-file", "", "document the task should have come from")
	f.StringVarP(&reason, "reason", "r", "", "why")
	return cmd
}

func newFeedbackListCmd(root *rootOptions) *cobra.Command {
	var (
		judgment string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent judgments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := feedback.ListInput{Limit: limit}
			if judgment != "" {
				j, err := model.ParseJudgment(judgment)
				if err != nil {
					return err
				}
				in.Judgment = j
			}
			ctx := cmd.Context()
			return withApp(ctx, root, false, func(a *app) error {
				entries, err := a.feedback.List(ctx, in)
				if err != nil {
					return err
				}
				printEntries(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&judgment, "type", "t", "", "only this judgment kind")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum entries")
	return cmd
}

func newFeedbackStatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show judgment counts and rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			return withApp(ctx, root, false, func(a *app) error {
				s, err := a.feedback.Stats(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, titleStyle.Render("Feedback statistics"))
				fmt.Fprintf(out, "  %-16s %d\n", "total", s.Total)
				fmt.Fprintf(out, "  %-16s %d\n", "accepted", s.Accepted)
				fmt.Fprintf(out, "  %-16s %d\n", "rejected", s.Rejected)
				fmt.Fprintf(out, "  %-16s %d\n", "modified", s.Modified)
				fmt.Fprintf(out, "  %-16s %d\n", "missed", s.Missed)
				fmt.Fprintf(out, "  %-16s %.1f%%\n", "acceptance rate", s.AcceptanceRate*100)

				if ratio := s.MissRatio(); ratio > missRatioWarning {
					fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf(
						"  %.0f%% of useful tasks were missed by the engine", ratio*100)))
				}

				reasons, err := a.feedback.RejectionReasons(ctx, 5)
				if err != nil {
					return err
				}
				if len(reasons) > 0 {
					fmt.Fprintln(out, headerStyle.Render("Top rejection reasons"))
					for _, r := range reasons {
						fmt.Fprintf(out, "  %3d  %s\n", r.Count, r.Reason)
					}
				}
				return nil
			})
		},
	}
}

func newFeedbackSearchCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search task and source text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, root, false, func(a *app) error {
				entries, err := a.feedback.Search(ctx, feedback.SearchInput{Text: args[0], Limit: limit})
				if err != nil {
					return err
				}
				printEntries(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum entries")
	return cmd
}

func newFeedbackRejectionsCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "rejections",
		Short: "Group rejection reasons by frequency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, root, false, func(a *app) error {
				reasons, err := a.feedback.RejectionReasons(ctx, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(reasons) == 0 {
					fmt.Fprintln(out, mutedStyle.Render("No rejection reasons recorded"))
					return nil
				}
				for _, r := range reasons {
					fmt.Fprintf(out, "%3d  %s\n", r.Count, r.Reason)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum reasons")
	return cmd
}

// newFeedbackCheckCmd lists explicit tasks the engine did not infer and
// records the chosen ones as missed.
func newFeedbackCheckCmd(root *rootOptions) *cobra.Command {
	var report string

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Find explicit tasks the reasoning engine did not infer",
		Example: `  taskpicker feedback check notes.md
  taskpicker feedback check notes.md --report all
  taskpicker feedback check notes.md --report 1,3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			return withApp(ctx, root, true, func(a *app) error {
				doc, err := a.pipeline.LoadFile(ctx, args[0])
				if err != nil {
					return err
				}
				res, err := a.pipeline.Check(ctx, doc)
				if err != nil {
					return err
				}
				if res.Analysis.Diagnostic != "" {
					fmt.Fprintln(out, warningStyle.Render("Analysis unavailable: "+res.Analysis.Diagnostic))
				}
				if len(res.Missed) == 0 {
					fmt.Fprintln(out, successStyle.Render("Every explicit task was inferred"))
					return nil
				}

				fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Potentially missed (%d)", len(res.Missed))))
				for i, t := range res.Missed {
					fmt.Fprintf(out, "  %d. %s\n", i+1, t)
				}

				if report == "" {
					fmt.Fprint(out, "Report as missed (all, none, or 1,3): ")
					line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
					if err != nil && !errors.Is(err, io.EOF) {
						return err
					}
					report = line
				}
				picked, err := pickIndices(report, len(res.Missed))
				if err != nil {
					return err
				}

				for _, i := range picked {
					if _, err := a.feedback.ReportMissed(ctx, feedback.MissedInput{
						TaskText:   res.Missed[i],
						SourceFile: doc.Path,
					}); err != nil {
						return err
					}
				}
				fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Recorded %d missed task(s)", len(picked))))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&report, "report", "", `tasks to record as missed: "all" or 1-based indices like "1,3"`)
	return cmd
}

// pickIndices parses "all", "none", "" or a comma separated list of 1-based
// indices into 0-based indices below n.
func pickIndices(s string, n int) ([]int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "n":
		return nil, nil
	case "all", "a":
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}

	seen := make(map[int]bool)
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i, err := strconv.Atoi(part)
		if err != nil || i < 1 || i > n {
			return nil, fmt.Errorf("invalid index %q (want 1-%d)", part, n)
		}
		if !seen[i-1] {
			seen[i-1] = true
			out = append(out, i-1)
		}
	}
	return out, nil
}

// newFeedbackReviewCmd walks through inferred tasks and records a judgment
// for each one.
func newFeedbackReviewCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "review FILE",
		Short: "Interactively judge the tasks the engine infers from FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())
			return withApp(ctx, root, true, func(a *app) error {
				doc, err := a.pipeline.LoadFile(ctx, args[0])
				if err != nil {
					return err
				}
				res := a.pipeline.Analyze(ctx, doc)
				if res.Diagnostic != "" {
					fmt.Fprintln(out, warningStyle.Render("Analysis unavailable: "+res.Diagnostic))
					return nil
				}
				if len(res.ImplicitTasks) == 0 {
					fmt.Fprintln(out, mutedStyle.Render("No implicit tasks to review"))
					return nil
				}

				recorded := 0
			loop:
				for i, t := range res.ImplicitTasks {
					fmt.Fprintf(out, "\n%s %s\n", titleStyle.Render(fmt.Sprintf("[%d/%d]", i+1, len(res.ImplicitTasks))), t.Task)
					fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("  confidence: %s  reason: %s", t.Confidence, t.Reason)))

					input := feedback.RecordInput{Candidate: t.Candidate(), SourceFile: doc.Path}
					switch prompt(out, in, "(a)ccept (r)eject (m)odify (s)kip (q)uit: ") {
					case "a":
						input.Judgment = model.JudgmentAccepted
					case "r":
						input.Judgment = model.JudgmentRejected
						input.Reason = prompt(out, in, "reason: ")
					case "m":
						input.Judgment = model.JudgmentModified
						input.ModifiedText = prompt(out, in, "corrected text: ")
						input.Reason = prompt(out, in, "reason: ")
					case "q":
						break loop
					default:
						continue
					}

					if _, err := a.feedback.Record(ctx, input); err != nil {
						fmt.Fprintln(out, errorStyle.Render(err.Error()))
						continue
					}
					recorded++
				}
				fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("\nRecorded %d judgment(s)", recorded)))
				return nil
			})
		},
	}
}

func prompt(w io.Writer, r *bufio.Reader, label string) string {
	fmt.Fprint(w, label)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

type exportEntry struct {
	ID           int64     `json:"id" yaml:"id"`
	TaskText     string    `json:"task_text" yaml:"task_text"`
	SourceText   string    `json:"source_text,omitempty" yaml:"source_text,omitempty"`
	SourceFile   string    `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	Judgment     string    `json:"judgment" yaml:"judgment"`
	ModifiedText *string   `json:"modified_text,omitempty" yaml:"modified_text,omitempty"`
	Reason       *string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Confidence   string    `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Tags         []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

func newExportEntry(e model.FeedbackEntry) exportEntry {
	return exportEntry{
		ID:           e.ID,
		TaskText:     e.TaskText,
		SourceText:   e.SourceText,
		SourceFile:   e.SourceFile,
		Judgment:     string(e.Judgment),
		ModifiedText: e.ModifiedText,
		Reason:       e.Reason,
		Confidence:   string(e.Confidence),
		Tags:         e.Tags,
		CreatedAt:    e.CreatedAt,
	}
}

// newFeedbackExportCmd dumps the ledger. The text format prints the
// few-shot block the engine would be conditioned on.
func newFeedbackExportCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger as text, json or yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			return withApp(ctx, root, false, func(a *app) error {
				if format == "text" {
					sample, err := a.feedback.BalancedSample(ctx, 0)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, feedbackUC.FormatExamples(sample))
					return nil
				}

				stats, err := a.feedback.Stats(ctx)
				if err != nil {
					return err
				}
				entries := []model.FeedbackEntry{}
				if stats.Total > 0 {
					entries, err = a.feedback.List(ctx, feedback.ListInput{Limit: stats.Total})
					if err != nil {
						return err
					}
				}
				rows := make([]exportEntry, len(entries))
				for i, e := range entries {
					rows[i] = newExportEntry(e)
				}

				switch format {
				case "json":
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(rows)
				case "yaml":
					enc := yaml.NewEncoder(out)
					defer enc.Close()
					enc.SetIndent(2)
					return enc.Encode(rows)
				default:
					return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
				}
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "text, json or yaml")
	return cmd
}

func newFeedbackClearCmd(root *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every judgment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errClearNotConfirmed
			}
			ctx := cmd.Context()
			return withApp(ctx, root, false, func(a *app) error {
				n, err := a.feedback.Clear(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Deleted %d entries", n)))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
