// Package watch triggers a debounced reload when content or configuration
// files change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Options configures a Watcher.
type Options struct {
	// ContentDir is watched recursively; directories created later are added.
	ContentDir string
	// ConfigPath is watched through its directory. Changes to the file and to
	// .env files next to it trigger a reload.
	ConfigPath string
	Debounce   time.Duration
	Logger     *slog.Logger
	// OnChange runs after a quiet period following a burst of events. Calls
	// never overlap; events arriving during a call schedule one more call.
	OnChange func(ctx context.Context)
}

// Watcher wraps an fsnotify watcher with debounce and serial reloads.
type Watcher struct {
	fsw        *fsnotify.Watcher
	contentDir string
	configDir  string
	configFile string
	logger     *slog.Logger
	deb        *debouncer
	onChange   func(ctx context.Context)
}

// New creates a Watcher and registers the watched directories.
func New(opts Options) (*Watcher, error) {
	if opts.OnChange == nil {
		return nil, errors.InternalError("watch: OnChange is required").Build()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}

	w := &Watcher{fsw: fsw, logger: logger, onChange: opts.OnChange, deb: newDebouncer(opts.Debounce)}
	if opts.ContentDir != "" {
		abs, err := filepath.Abs(opts.ContentDir)
		if err != nil {
			_ = fsw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve content dir").Build()
		}
		w.contentDir = abs
		if err := w.addRecursive(abs); err != nil {
			_ = fsw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to watch content dir").
				WithContext("path", abs).
				Build()
		}
	}
	if opts.ConfigPath != "" {
		abs, err := filepath.Abs(opts.ConfigPath)
		if err != nil {
			_ = fsw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve config path").Build()
		}
		w.configDir, w.configFile = filepath.Dir(abs), filepath.Base(abs)
		if err := fsw.Add(w.configDir); err != nil {
			_ = fsw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to watch config directory").
				WithContext("path", w.configDir).
				Build()
		}
	}
	return w, nil
}

// Run processes events until ctx is done, then closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()
	defer w.deb.stop()

	reloads := make(chan struct{}, 1)
	go w.reloadLoop(ctx, reloads)

	w.logger.Info("Watching for changes", logfields.Path(w.contentDir), logfields.File(w.configFile))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() && w.inContent(ev.Name) {
					_ = w.addRecursive(ev.Name)
				}
			}
			w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			w.deb.trigger(func() {
				select {
				case reloads <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// reloadLoop runs OnChange serially; a request that arrives mid-call is kept
// in the buffered channel and runs right after.
func (w *Watcher) reloadLoop(ctx context.Context, reloads <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-reloads:
			w.onChange(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	dir, base := filepath.Dir(ev.Name), filepath.Base(ev.Name)
	if w.configFile != "" && dir == w.configDir {
		if base == w.configFile || base == ".env" || base == ".env.local" {
			return true
		}
	}
	return w.inContent(ev.Name) && !shouldIgnore(ev.Name)
}

func (w *Watcher) inContent(path string) bool {
	if w.contentDir == "" {
		return false
	}
	rel, err := filepath.Rel(w.contentDir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnore reports editor temp files and hidden entries.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db", base == "4913":
		return true
	}
	return false
}

// debouncer runs the most recent function once no trigger arrived for delay.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
