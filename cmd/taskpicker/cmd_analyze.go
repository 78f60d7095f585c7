package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Show implicit tasks the reasoning engine infers, without merging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, root, true, func(a *app) error {
				doc, err := a.pipeline.LoadFile(ctx, args[0])
				if err != nil {
					return err
				}
				res := a.pipeline.Analyze(ctx, doc)
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(res)
				}
				printAnalysis(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw analysis as JSON")
	return cmd
}
