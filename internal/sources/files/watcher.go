package files

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/agentstation/snipdeck/pkg/constants"
	pkgerrors "github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/logging"
)

// ReloadFunc is called after the watched source settles.
type ReloadFunc func(ctx context.Context)

// Watcher calls a ReloadFunc when YAML under a source path changes.
// Bursts of events within Debounce collapse into one reload.
type Watcher struct {
	path     string
	dir      string
	file     string // empty when watching a whole directory
	reload   ReloadFunc
	debounce time.Duration
	logger   *zerolog.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatchLogger sets the watcher logger.
func WithWatchLogger(logger *zerolog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a watcher for path, which may be a directory of
// modules or a single static file.
func NewWatcher(path string, reload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	if reload == nil {
		return nil, pkgerrors.NewValidationError("reload", nil, "reload func cannot be nil")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, pkgerrors.WrapIO("stat", path, err)
	}

	w := &Watcher{
		path:     path,
		dir:      path,
		reload:   reload,
		debounce: constants.WatchDebounce,
		logger:   logging.Default(),
	}
	// Editors often replace files by rename, so a single file is watched via its directory.
	if !info.IsDir() {
		w.dir = filepath.Dir(path)
		w.file = filepath.Clean(path)
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return pkgerrors.WrapIO("watch", w.path, err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(w.dir); err != nil {
		return pkgerrors.WrapIO("watch", w.dir, err)
	}
	w.logger.Info().Str("path", w.path).Msg("Watching snippet source")

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

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Str("path", w.path).Msg("Stopping snippet watcher")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().
				Str("file", event.Name).
				Str("operation", event.Op.String()).
				Msg("Snippet source changed")

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				w.logger.Info().Str("path", w.path).Msg("Reloading snippet catalog")
				w.reload(ctx)
			})
			mu.Unlock()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Str("path", w.path).Msg("File watcher error")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if w.file != "" {
		return filepath.Clean(event.Name) == w.file
	}
	return strings.HasSuffix(event.Name, ".yaml")
}
