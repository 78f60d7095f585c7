package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const minTick = 25 * time.Millisecond

// Run watches the root tree until ctx is cancelled. New directories are
// picked up as they appear; hidden and excluded directories are skipped.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := w.addTree(ctx, fw, w.cfg.Root); err != nil {
		return err
	}
	w.l.Infof(ctx, "watcher.Run: watching %s for *%s changes", w.cfg.Root, w.cfg.Ext)

	tick := w.cfg.Debounce / 2
	if tick < minTick {
		tick = minTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			w.l.Infof(ctx, "watcher.Run: stopped")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.onEvent(ctx, fw, ev, pending)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.l.Warnf(ctx, "watcher.Run: %v", err)

		case now := <-ticker.C:
			w.flush(ctx, now, pending)
		}
	}
}

func (w *Watcher) onEvent(ctx context.Context, fw *fsnotify.Watcher, ev fsnotify.Event, pending map[string]time.Time) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ctx, fw, ev.Name); err != nil {
				w.l.Warnf(ctx, "watcher.onEvent: %v", err)
			}
			return
		}
	}
	if !strings.EqualFold(filepath.Ext(ev.Name), w.cfg.Ext) || w.excluded(ev.Name) {
		return
	}
	pending[ev.Name] = time.Now()
}

// flush runs the handler for every path quiet for at least the debounce window.
func (w *Watcher) flush(ctx context.Context, now time.Time, pending map[string]time.Time) {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= w.cfg.Debounce {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)
	for _, path := range ready {
		delete(pending, path)
		if ctx.Err() != nil {
			return
		}
		w.handle(ctx, path)
	}
}

func (w *Watcher) addTree(ctx context.Context, fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Vanished or unreadable subtrees are skipped.
			if path == root {
				return err
			}
			return fs.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || w.excluded(path)) {
			return fs.SkipDir
		}
		if err := fw.Add(path); err != nil {
			w.l.Warnf(ctx, "watcher.addTree: %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) excluded(path string) bool {
	return w.cfg.Excluder != nil && w.cfg.Excluder.IsExcluded(path)
}
