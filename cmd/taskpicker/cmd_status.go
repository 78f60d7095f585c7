package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd(root *rootOptions) *cobra.Command {
	var showOpen bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show completion of the task document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			return withApp(ctx, root, false, func(a *app) error {
				p, err := a.pipeline.Progress(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, titleStyle.Render(a.cfg.Output))
				if p.Stats.Total == 0 {
					fmt.Fprintln(out, mutedStyle.Render("No tasks yet"))
					return nil
				}
				fmt.Fprintf(out, "  %d/%d done (%.0f%%), %d open\n",
					p.Stats.Completed, p.Stats.Total, p.Stats.Progress, p.Stats.Pending)
				if showOpen {
					for _, t := range p.Pending {
						fmt.Fprintln(out, "  - [ ] "+t)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&showOpen, "open", false, "list open tasks")
	return cmd
}
