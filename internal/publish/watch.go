/*
PURPOSE:
  Keeps the published tree current: watches the source tree and runs a
  full publish after every burst of changes.

REQUIREMENTS:
  Implementation-discovered:
  - Directories created after startup must be watched too.
  - Stylesheet edits must be picked up, so each pass builds a new Publisher.
  - Writes into a target nested in the source must not retrigger a pass.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli/watch.go
  - Uses: Publisher (New, Run), github.com/fsnotify/fsnotify

ERROR HANDLING:
  - Setup errors (bad config, unreadable source) are returned.
  - Publish errors are logged and passed to RunFunc; watching continues.

IMPLEMENTATION RULES:
  - One event loop goroutine; publishes never overlap.
  - Debounce with a single timer reset on every event.

USAGE:
  err := publish.Watch(ctx, cfg, nil)
*/

package publish

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/daryltucker/cc-publish/internal/config"
	"github.com/daryltucker/cc-publish/internal/model"
	"github.com/fsnotify/fsnotify"
)

// RunFunc is called after every publish pass in watch mode.
type RunFunc func(sum *model.Summary, err error)

// watcher republishes the whole tree after changes settle.
type watcher struct {
	cfg      *config.Config
	opts     []Option
	log      *slog.Logger
	fsw      *fsnotify.Watcher
	onRun    RunFunc
	skipRoot string
}

// Watch publishes once, then publishes again every time the source tree
// changes and stays quiet for cfg.Debounce. A fresh Publisher is built for
// each pass so stylesheet edits are picked up. Publish failures are logged
// and do not stop the watcher. Watch returns nil when ctx is done.
func Watch(ctx context.Context, cfg *config.Config, onRun RunFunc, opts ...Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	w := &watcher{
		cfg:   cfg,
		opts:  opts,
		log:   withOptions(opts).log,
		fsw:   fsw,
		onRun: onRun,
	}

	if w.skipRoot, err = nestedTarget(cfg.SourceDir, cfg.TargetDir); err != nil {
		return err
	}
	if err := w.addTree(cfg.SourceDir); err != nil {
		return err
	}

	w.log.Info("Watching for changes", "source", cfg.SourceDir, "debounce", cfg.Debounce)
	w.publish()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Stopping watcher")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) {
				continue
			}
			w.log.Debug("Change detected", "file", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.log.Error("Failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			if timer == nil {
				timer = time.NewTimer(cfg.Debounce)
			} else {
				timer.Reset(cfg.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.publish()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("File watcher error", "error", err)
		}
	}
}

func (w *watcher) publish() {
	p, err := New(w.cfg, w.opts...)
	if err != nil {
		w.log.Error("Publish failed", "error", err)
		w.report(nil, err)
		return
	}
	sum, err := p.Run()
	if err != nil {
		w.log.Error("Publish failed", "error", err)
	}
	w.report(sum, err)
}

func (w *watcher) report(sum *model.Summary, err error) {
	if w.onRun != nil {
		w.onRun(sum, err)
	}
}

// addTree watches root and every directory below it.
func (w *watcher) addTree(root string) error {
	return filepath.WalkDir(walkRoot(root), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// ignored reports whether path lies in a target tree nested in the source.
func (w *watcher) ignored(path string) bool {
	if w.skipRoot == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == w.skipRoot || strings.HasPrefix(abs, w.skipRoot+string(filepath.Separator))
}
