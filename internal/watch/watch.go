// Package watch reruns a full build whenever the source corpus changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/logfields"
)

// DefaultDebounce is how long the corpus must stay quiet before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc performs one complete build.
type RebuildFunc func(ctx context.Context) error

// Watcher watches a directory tree and calls a RebuildFunc after changes.
// Rebuilds run one at a time on the watcher's own goroutine.
type Watcher struct {
	root     string
	debounce time.Duration
	rebuild  RebuildFunc
}

// New creates a watcher for root.
func New(root string, rebuild RebuildFunc) *Watcher {
	return &Watcher{root: root, debounce: DefaultDebounce, rebuild: rebuild}
}

// WithDebounce overrides the quiet period.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Run builds once, then rebuilds after each burst of changes until ctx is
// canceled. Build failures are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := addDirsRecursive(fsw, w.root); err != nil {
		return err
	}
	slog.Info("Watching for changes", logfields.Path(w.root))

	w.runBuild(ctx, "initial")

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
			slog.Info("Watcher stopped")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.handleEvent(fsw, ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-fire:
			fire = nil
			w.runBuild(ctx, "change")
		}
	}
}

func (w *Watcher) runBuild(ctx context.Context, trigger string) {
	start := time.Now()
	if err := w.rebuild(ctx); err != nil {
		slog.Warn("Rebuild failed", logfields.Reason(trigger), logfields.Error(err))
		return
	}
	slog.Info("Rebuild complete", logfields.Reason(trigger), logfields.Duration(time.Since(start)))
}

// handleEvent reports whether ev should trigger a rebuild. New directories
// are added to the watch set.
func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event) bool {
	if ShouldIgnore(ev.Name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(fsw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	return true
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// latexByproducts are files a TeX toolchain writes next to its sources.
var latexByproducts = []string{
	".aux", ".log", ".out", ".toc", ".fls", ".fdb_latexmk", ".synctex.gz", ".bbl", ".blg", ".pdf",
}

// ShouldIgnore returns true for paths whose changes never affect the build.
func ShouldIgnore(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	for _, ext := range latexByproducts {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}
