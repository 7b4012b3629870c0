package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/foomo/autositemap/pkg/sitemap"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type (
	// Watcher runs a function whenever files below a directory change
	Watcher struct {
		l        *zap.Logger
		dir      string
		debounce time.Duration
		ignore   []func(string) bool
	}
	Option func(*Watcher)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func New(l *zap.Logger, dir string, opts ...Option) *Watcher {
	inst := &Watcher{
		l:        l.Named("watch"),
		dir:      dir,
		debounce: 300 * time.Millisecond,
		ignore:   []func(string) bool{sitemap.IsSitemapFile},
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func WithDebounce(v time.Duration) Option {
	return func(o *Watcher) {
		o.debounce = v
	}
}

// WithIgnore skips events for paths matching fn
func WithIgnore(fn func(string) bool) Option {
	return func(o *Watcher) {
		o.ignore = append(o.ignore, fn)
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// Run calls fn after every burst of changes until ctx is canceled.
// Errors returned by fn are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer func() { _ = watcher.Close() }()

	if err := w.addRecursive(watcher, w.dir); err != nil {
		return err
	}
	w.l.Info("watching for changes", zap.String("dir", w.dir), zap.Duration("debounce", w.debounce))

	trigger := make(chan struct{}, 1)
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			select {
			case trigger <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			w.l.Debug("watch canceled", zap.Error(ctx.Err()))
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				w.watchIfDir(watcher, event.Name)
			}
			w.l.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			schedule()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.l.Warn("watcher error", zap.Error(err))
		case <-trigger:
			if err := fn(ctx); err != nil {
				w.l.Error("run after change failed", zap.Error(err))
			}
		}
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (w *Watcher) ignored(name string) bool {
	for _, fn := range w.ignore {
		if fn(name) {
			return true
		}
	}
	return false
}

func (w *Watcher) watchIfDir(watcher *fsnotify.Watcher, name string) {
	if err := w.addRecursive(watcher, name); err != nil {
		w.l.Debug("failed to watch created path", zap.String("path", name), zap.Error(err))
	}
}

func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(p); err != nil {
			return errors.Wrapf(err, "failed to watch %s", p)
		}
		return nil
	})
}
