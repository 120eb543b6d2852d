// Package watch re-lints the docs tree whenever markdown files change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"flowdocs/internal/docs"
	"flowdocs/internal/lint"
	"flowdocs/internal/logging"
)

// Watcher watches a docs root and re-runs the lint runner after changes
// settle. Subdirectories are picked up as they appear.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	root     string
	runner   *lint.Runner
	onResult func(*lint.Result)

	pending     map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// New creates a watcher over root. onResult receives every fresh lint
// result, including the initial run.
func New(root string, runner *lint.Runner, onResult func(*lint.Result)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fsw,
		root:        root,
		runner:      runner,
		onResult:    onResult,
		pending:     map[string]time.Time{},
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start runs an initial lint pass, registers the directory tree, and begins
// watching. Non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	logging.Get(logging.CategoryWatch).Info("watching %s", w.root)

	w.relint(ctx)
	go w.run(ctx)
	return nil
}

// Stop halts the watcher and waits for the event loop to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

// addTree registers root and every non-hidden subdirectory.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return w.watcher.Add(p)
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatch).Error("watch error: %v", err)
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !strings.HasPrefix(filepath.Base(event.Name), ".") {
				_ = w.addTree(event.Name)
			}
			return
		}
	}
	if !isMarkdown(event.Name) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	logging.Get(logging.CategoryWatch).Debug("%s %s", event.Op, event.Name)
	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// flush re-lints once all pending events are older than the debounce
// window, so a burst of editor saves triggers a single run.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	now := time.Now()
	for _, at := range w.pending {
		if now.Sub(at) < w.debounceDur {
			w.mu.Unlock()
			return
		}
	}
	w.pending = map[string]time.Time{}
	w.mu.Unlock()

	w.relint(ctx)
}

func (w *Watcher) relint(ctx context.Context) {
	log := logging.Get(logging.CategoryWatch)
	corpus, err := docs.LoadCorpus(w.root)
	if err != nil {
		log.Error("reload failed: %v", err)
		return
	}
	result, err := w.runner.Run(ctx, corpus)
	if err != nil {
		log.Error("lint failed: %v", err)
		return
	}
	log.Info("linted %d pages: %d errors, %d warnings", result.Pages, result.Errors, result.Warnings)
	if w.onResult != nil {
		w.onResult(result)
	}
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
