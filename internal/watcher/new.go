package watcher

import (
	"context"
	"errors"
	"time"

	"github.com/thedomainai/task-picker-agent/pkg/log"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	DefaultExt      = ".md"
)

var ErrNoRoot = errors.New("watch root is required")

// Handler is called once per settled file change. Calls are serialized.
type Handler func(ctx context.Context, path string)

// Excluder decides whether a path must be skipped. *config.Config implements it.
type Excluder interface {
	IsExcluded(path string) bool
}

type Config struct {
	Root     string
	Debounce time.Duration
	Ext      string
	Excluder Excluder
}

type Watcher struct {
	l      log.Logger
	cfg    Config
	handle Handler
}

func New(l log.Logger, cfg Config, handle Handler) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, ErrNoRoot
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Ext == "" {
		cfg.Ext = DefaultExt
	}
	return &Watcher{l: l, cfg: cfg, handle: handle}, nil
}
