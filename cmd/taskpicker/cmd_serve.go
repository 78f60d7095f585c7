package main

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	feedbackHTTP "github.com/thedomainai/task-picker-agent/internal/feedback/delivery/http"
	"github.com/thedomainai/task-picker-agent/internal/httpserver"
	"github.com/thedomainai/task-picker-agent/internal/pipeline"
	pipelineHTTP "github.com/thedomainai/task-picker-agent/internal/pipeline/delivery/http"
	"github.com/thedomainai/task-picker-agent/internal/watcher"
	"github.com/thedomainai/task-picker-agent/internal/webhook"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the extraction and feedback HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, root, false, func(a *app) error {
				var hooks webhook.Handler
				if a.cfg.Webhook.Secret != "" {
					h, err := webhook.New(a.l, a.pipeline, webhook.Config{
						Secret:          a.cfg.Webhook.Secret,
						RateLimitPerMin: a.cfg.Webhook.RateLimitPerMin,
						RepoPath:        a.cfg.Webhook.RepoPath,
						Branch:          a.cfg.Webhook.Branch,
					})
					if err != nil {
						return err
					}
					hooks = h
				}

				srv, err := httpserver.New(a.l, httpserver.Config{
					Port:            a.cfg.HTTPServer.Port,
					Mode:            a.cfg.HTTPServer.Mode,
					Environment:     a.cfg.Environment.Name,
					FeedbackHandler: feedbackHTTP.New(a.l, a.feedback),
					PipelineHandler: pipelineHTTP.New(a.l, a.pipeline, a.feedback, pipelineHTTP.Config{}),
					WebhookHandler:  hooks,
					Metrics:         promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}),
					Ready:           a.readiness,
				})
				if err != nil {
					return err
				}

				if !watch {
					return srv.Run(ctx)
				}

				w, err := a.newWatcher()
				if err != nil {
					return err
				}
				g, gctx := errgroup.WithContext(ctx)
				g.Go(func() error { return srv.Run(gctx) })
				g.Go(func() error { return w.Run(gctx) })
				return g.Wait()
			})
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "also watch the workspace for changes")
	return cmd
}

func newWatchCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Extract tasks whenever a markdown file in the workspace changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, root, false, func(a *app) error {
				w, err := a.newWatcher()
				if err != nil {
					return err
				}
				a.l.Infof(ctx, "watching %s", a.cfg.Workspace)
				return w.Run(ctx)
			})
		},
	}
}

// readiness reports the ledger as not ready when the database is unreachable.
func (a *app) readiness(ctx context.Context) map[string]string {
	if err := a.db.PingContext(ctx); err != nil {
		return map[string]string{"feedback_db": err.Error()}
	}
	return nil
}

func (a *app) newWatcher() (*watcher.Watcher, error) {
	return watcher.New(a.l, watcher.Config{
		Root:     a.cfg.Workspace,
		Debounce: a.cfg.Watch.Debounce,
		Excluder: a.cfg,
	}, a.onChange)
}

// onChange runs the pipeline for one saved file. Failures are logged, the
// watcher keeps going.
func (a *app) onChange(ctx context.Context, path string) {
	doc, err := a.pipeline.LoadFile(ctx, path)
	if err != nil {
		if !errors.Is(err, pipeline.ErrExcluded) {
			a.l.Warnf(ctx, "taskpicker.watch: %s: %v", path, err)
		}
		return
	}

	res, err := a.pipeline.Run(ctx, pipeline.RunInput{
		Document: doc,
		UseLLM:   a.cfg.LLM.AnalyzeOnSave && a.analyzer.Enabled(),
	})
	if err != nil {
		a.l.Errorf(ctx, "taskpicker.watch: %s: %v", path, err)
		return
	}
	if !res.Merge.Empty() {
		a.l.Info(ctx, "tasks appended", "source", res.Source, "count", total(res.Merge), "skipped", res.Merge.Skipped)
	}
}
