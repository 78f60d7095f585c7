package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "taskpicker",
		Short: "Extract tasks from markdown notes",
		Long: `taskpicker collects checklist items, TODO markers and (optionally) tasks
inferred by a language model from markdown documents, deduplicates them against
the task document and appends the rest.

Examples:
  # Extract from a note
  taskpicker extract --file notes.md

  # Include inferred tasks and preview without writing
  taskpicker extract --file notes.md --llm --dry-run

  # Review inferred tasks
  taskpicker feedback review notes.md`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config.yaml")

	root.AddCommand(
		newExtractCmd(opts),
		newAnalyzeCmd(opts),
		newFeedbackCmd(opts),
		newServeCmd(opts),
		newWatchCmd(opts),
		newStatusCmd(opts),
	)
	return root
}
