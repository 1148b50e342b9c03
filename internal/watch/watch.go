// Package watch turns filesystem churn under a document tree into
// debounced recompression triggers.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/romdo/go-debounce"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/verdant/internal/logging"
	"github.com/fyrsmithlabs/verdant/internal/scan"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialize.
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

const (
	// DefaultDebounce is the quiet period before a trigger fires.
	DefaultDebounce = 500 * time.Millisecond

	// DefaultMaxWait bounds how long a busy tree can postpone a trigger.
	DefaultMaxWait = 2 * time.Second
)

// Config controls trigger debouncing.
type Config struct {
	Debounce time.Duration
	MaxWait  time.Duration
}

// NewDefaultConfig returns the default watch settings.
func NewDefaultConfig() *Config {
	return &Config{
		Debounce: DefaultDebounce,
		MaxWait:  DefaultMaxWait,
	}
}

// Validate checks the debounce windows.
func (c *Config) Validate() error {
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", c.Debounce)
	}
	if c.MaxWait < c.Debounce {
		return fmt.Errorf("max wait %s must not be below debounce %s", c.MaxWait, c.Debounce)
	}
	return nil
}

// Watcher watches a directory tree and emits a trigger after markdown
// content changes settle. Rapid bursts of events collapse into one
// trigger per debounce window.
type Watcher struct {
	root    string
	logger  *logging.Logger
	watcher *fsnotify.Watcher

	triggers chan time.Time
	stop     chan struct{}

	debounced func()
	cancel    func()
}

// New creates a watcher for the tree rooted at root.
func New(root string, cfg *Config, logger *logging.Logger) (*Watcher, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid watch config: %w", err)
	}
	if logger == nil {
		logger = logging.Nop()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("watch root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, scan.ErrNotDirectory)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}

	w := &Watcher{
		root:     root,
		logger:   logger,
		watcher:  fw,
		triggers: make(chan time.Time, 1),
		stop:     make(chan struct{}),
	}
	w.debounced, w.cancel = debounce.NewWithMaxWait(cfg.Debounce, cfg.MaxWait, w.fire)
	return w, nil
}

// Start adds every directory under the root to the watcher and begins
// processing events in a background goroutine. Call Stop to clean up.
func (w *Watcher) Start(ctx context.Context) error {
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if scan.SkippedDir(d.Name()) && path != w.root {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and cleans up resources.
func (w *Watcher) Stop() {
	select {
	case <-w.stop:
		// Already stopped
		return
	default:
		close(w.stop)
		w.cancel()
		_ = w.watcher.Close()
	}
}

// Triggers returns the channel recompression triggers arrive on. The
// channel holds at most one pending trigger; triggers arriving while a
// run is in flight coalesce.
func (w *Watcher) Triggers() <-chan time.Time {
	return w.triggers
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(ctx, "filesystem watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	// New directories join the watch set so files created inside them
	// are seen.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if scan.SkippedDir(filepath.Base(event.Name)) {
				return
			}
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Warn(ctx, "failed to watch new directory",
					zap.String("path", event.Name),
					zap.Error(err))
			}
			return
		}
	}

	if !isMarkdown(event.Name) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.logger.Trace(ctx, "markdown change detected",
		zap.String("path", event.Name),
		zap.String("op", event.Op.String()))
	w.debounced()
}

// fire sends a trigger without blocking the debounce goroutine.
func (w *Watcher) fire() {
	select {
	case w.triggers <- time.Now():
	default:
		// A trigger is already pending
	}
}

func isMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}
