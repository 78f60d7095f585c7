package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/pipeline"
)

var errNoSource = errors.New("one of --file, --session or --git-diff is required")

type extractOptions struct {
	files   []string
	session string
	gitDiff bool
	repo    string
	llm     bool
	dryRun  bool
	noDedup bool
}

// skipDuplicates is nil unless --no-dedup overrides the configured default.
func (o extractOptions) skipDuplicates() *bool {
	if !o.noDedup {
		return nil
	}
	skip := false
	return &skip
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract tasks from a document and append them to the task file",
		Example: `  taskpicker extract --file notes.md
  taskpicker extract -f a.md -f b.md --llm
  taskpicker extract --session 20260110-1200
  taskpicker extract --git-diff --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExtract(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&opts.files, "file", "f", nil, "markdown file to extract from (repeatable)")
	f.StringVarP(&opts.session, "session", "s", "", "session id to extract from")
	f.BoolVarP(&opts.gitDiff, "git-diff", "g", false, "extract from lines added by the last commit")
	f.StringVar(&opts.repo, "repo", ".", "repository for --git-diff")
	f.BoolVarP(&opts.llm, "llm", "l", false, "also infer implicit tasks with the reasoning engine")
	f.BoolVarP(&opts.dryRun, "dry-run", "n", false, "print the section instead of appending it")
	f.BoolVar(&opts.noDedup, "no-dedup", false, "append tasks already present in the task file")
	cmd.MarkFlagsMutuallyExclusive("file", "session", "git-diff")
	return cmd
}

func runExtract(cmd *cobra.Command, root *rootOptions, opts *extractOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withApp(ctx, root, opts.llm, func(a *app) error {
		if len(opts.files) > 1 {
			res := a.pipeline.RunBatch(ctx, pipeline.BatchInput{
				Paths:          opts.files,
				UseLLM:         opts.llm,
				DryRun:         opts.dryRun,
				SkipDuplicates: opts.skipDuplicates(),
			})
			for _, it := range res.Items {
				if it.Skipped {
					printSkipped(out, it.Path)
					continue
				}
				if it.Err != nil {
					fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("%s: %v", it.Path, it.Err)))
					continue
				}
				printRun(out, it.Output, opts.dryRun)
			}
			if res.Failed > 0 {
				return fmt.Errorf("%d of %d document(s) failed", res.Failed, len(res.Items))
			}
			return nil
		}

		var (
			doc model.Document
			err error
		)
		switch {
		case len(opts.files) == 1:
			doc, err = a.pipeline.LoadFile(ctx, opts.files[0])
			if errors.Is(err, pipeline.ErrExcluded) {
				printSkipped(out, opts.files[0])
				return nil
			}
		case opts.session != "":
			doc, err = a.pipeline.LoadSession(ctx, opts.session)
		case opts.gitDiff:
			doc, err = a.pipeline.LoadGitDiff(ctx, opts.repo)
		default:
			return errNoSource
		}
		if err != nil {
			return err
		}

		res, err := a.pipeline.Run(ctx, pipeline.RunInput{
			Document:       doc,
			UseLLM:         opts.llm,
			DryRun:         opts.dryRun,
			SkipDuplicates: opts.skipDuplicates(),
		})
		if err != nil {
			return err
		}
		printRun(out, res, opts.dryRun)
		return nil
	})
}
