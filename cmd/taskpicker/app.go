package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/thedomainai/task-picker-agent/config"
	"github.com/thedomainai/task-picker-agent/internal/analyzer"
	analyzerUC "github.com/thedomainai/task-picker-agent/internal/analyzer/usecase"
	"github.com/thedomainai/task-picker-agent/internal/checklist"
	"github.com/thedomainai/task-picker-agent/internal/feedback"
	feedbackSQLite "github.com/thedomainai/task-picker-agent/internal/feedback/repository/sqlite"
	feedbackUC "github.com/thedomainai/task-picker-agent/internal/feedback/usecase"
	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/pipeline"
	pipelineUC "github.com/thedomainai/task-picker-agent/internal/pipeline/usecase"
	"github.com/thedomainai/task-picker-agent/internal/taskfile/repository/markdown"
	taskfileUC "github.com/thedomainai/task-picker-agent/internal/taskfile/usecase"
	"github.com/thedomainai/task-picker-agent/pkg/llmprovider"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

// app is the dependency bag shared by every command.
type app struct {
	cfg      *config.Config
	l        log.Logger
	db       *sql.DB
	registry *prometheus.Registry

	feedback feedback.UseCase
	analyzer analyzer.UseCase
	pipeline pipeline.UseCase
}

// newApp wires the whole system. The reasoning engine is built when
// withEngine is set or llm.enabled is on; failing to build it degrades
// analysis instead of failing the command.
func newApp(ctx context.Context, opts *rootOptions, withEngine bool) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	l := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	db, err := feedbackSQLite.Open(ctx, cfg.Feedback.DBPath, cfg.Feedback.BusyTimeout)
	if err != nil {
		return nil, err
	}

	boxes, err := checklist.NewWithPatterns(checklist.Patterns{
		Unchecked: cfg.Patterns.Unchecked,
		Checked:   cfg.Patterns.Checked,
		Todo:      cfg.Patterns.Todo,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	fbUC := feedbackUC.New(feedbackSQLite.New(db, l), l, feedbackUC.Config{
		MinExamples:   cfg.Feedback.MinExamples,
		SamplePerKind: cfg.Feedback.SamplePerKind,
	})

	var engine analyzerUC.Engine
	if withEngine || cfg.LLM.Enabled {
		manager, err := llmprovider.NewManagerFromConfig(&cfg.LLM, l)
		if err != nil {
			l.Warnf(ctx, "LLM analysis unavailable: %v", err)
		} else {
			engine = manager
		}
	}
	anUC := analyzerUC.New(l, engine, analyzerUC.Config{
		MaxDocumentChars: cfg.LLM.MaxDocumentChars,
		MaxTokens:        cfg.LLM.MaxTokens,
		Temperature:      cfg.LLM.Temperature,
	})

	tfUC := taskfileUC.New(l, markdown.New(cfg.Output, l), boxes, taskfileUC.Config{
		Dedup:           cfg.Dedup.Enabled,
		CaseInsensitive: cfg.Dedup.CaseInsensitive,
		MinConfidence:   model.ParseConfidence(cfg.LLM.MinConfidence),
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	pUC := pipelineUC.New(l,
		pipelineUC.Config{SessionsDir: cfg.SessionsDir, Excluder: cfg},
		boxes, anUC, fbUC, tfUC,
		pipeline.NewMetrics(registry),
	)

	return &app{
		cfg:      cfg,
		l:        l,
		db:       db,
		registry: registry,
		feedback: fbUC,
		analyzer: anUC,
		pipeline: pUC,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// withApp builds the app, runs fn and closes the app.
func withApp(ctx context.Context, opts *rootOptions, withEngine bool, fn func(a *app) error) error {
	a, err := newApp(ctx, opts, withEngine)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
