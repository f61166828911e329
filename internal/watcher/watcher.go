// Package watcher watches drop folders with fsnotify and reports debounced file changes.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last write before a file is reported.
const DefaultDebounce = 400 * time.Millisecond

// Config selects what to watch.
type Config struct {
	Roots      []string
	Extensions []string // empty matches every file
	Recursive  bool
	Debounce   time.Duration
}

// Watcher reports created or modified files through onChange and removed or renamed
// files through onRemove.
type Watcher struct {
	cfg      Config
	onChange func(path string)
	onRemove func(path string)
	logger   *zap.Logger

	fsw      *fsnotify.Watcher
	mu       sync.Mutex
	timers   map[string]*time.Timer
	done     chan struct{}
	stopOnce sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the watcher logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher and registers its roots. Missing roots are created.
func New(cfg Config, onChange, onRemove func(path string), opts ...Option) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		cfg:      cfg,
		onChange: onChange,
		onRemove: onRemove,
		logger:   zap.NewNop(),
		fsw:      fsw,
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.cfg.Roots = make([]string, 0, len(cfg.Roots))
	for _, root := range cfg.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			_ = fsw.Close()
			return nil, err
		}
		w.cfg.Roots = append(w.cfg.Roots, abs)
		if err := w.addTree(abs); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	w.logger.Debug("watcher created",
		zap.Strings("roots", w.cfg.Roots),
		zap.Strings("extensions", cfg.Extensions),
		zap.Bool("recursive", cfg.Recursive))
	return w, nil
}

// Run processes events until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// Sync reports every matching file already present under the roots.
func (w *Watcher) Sync() {
	for _, root := range w.cfg.Roots {
		w.syncTree(root)
	}
}

// Roots returns the absolute watched roots.
func (w *Watcher) Roots() []string {
	return append([]string(nil), w.cfg.Roots...)
}

// Close stops the watcher and cancels pending reports.
func (w *Watcher) Close() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		for path, t := range w.timers {
			t.Stop()
			delete(w.timers, path)
		}
		w.mu.Unlock()
		_ = w.fsw.Close()
	})
}

func (w *Watcher) handle(ev fsnotify.Event) {
	w.logger.Debug("watcher event", zap.String("op", ev.Op.String()), zap.String("path", ev.Name))
	switch {
	case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
		w.cancel(ev.Name)
		if w.matches(ev.Name) && w.onRemove != nil {
			w.onRemove(ev.Name)
		}
	case ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write):
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if w.cfg.Recursive {
				if err := w.addTree(ev.Name); err != nil {
					w.logger.Warn("watcher failed to add directory", zap.String("path", ev.Name), zap.Error(err))
				}
				w.syncTree(ev.Name)
			}
			return
		}
		if w.matches(ev.Name) {
			w.schedule(ev.Name)
		}
	}
}

func (w *Watcher) addTree(root string) error {
	if !w.cfg.Recursive {
		return w.fsw.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) syncTree(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && !w.cfg.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if w.matches(path) && w.onChange != nil {
			w.onChange(path)
		}
		return nil
	})
}

// schedule reports path once no event for it arrived during the debounce period.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.cfg.Debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		select {
		case <-w.done:
			return
		default:
		}
		if w.onChange != nil {
			w.onChange(path)
		}
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
		delete(w.timers, path)
	}
}

func (w *Watcher) matches(path string) bool {
	return matchExtension(path, w.cfg.Extensions)
}

func matchExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, e := range extensions {
		if strings.EqualFold(strings.TrimPrefix(e, "."), ext) {
			return true
		}
	}
	return false
}
