// Package watcher monitors a directory for newly created media files in
// watch mode, using fsnotify with a polling fallback.
//
// Matching files are delivered as absolute paths, each at most once per
// invocation; the caller hands them off to the running player.
package watcher

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// ///////////////////////////////////////////////
// Watcher
// ///////////////////////////////////////////////

// Watcher monitors a single directory (non-recursive) for new files whose
// base name matches one of the configured patterns.
type Watcher struct {
	// dir is the absolute path of the watched directory.
	dir string
	// patterns are doublestar globs applied to the file base name.
	patterns []string
	// files delivers matching absolute file paths.
	files chan string
	// done is closed by [Watcher.Close] to signal goroutines to exit.
	done chan struct{}
	// fsw is the underlying fsnotify watcher; nil when polling.
	fsw *fsnotify.Watcher
	// once ensures [Watcher.Close] is idempotent.
	once sync.Once
	// polling is true when the watcher has fallen back to stat-based polling.
	polling atomic.Bool
	// pollInterval is the duration between directory scans in polling mode.
	pollInterval time.Duration
	// started marks the watch start; in polling mode only files modified
	// after it are reported.
	started time.Time

	// mu guards seen.
	mu sync.Mutex
	// seen records already-delivered paths so create+write event storms for
	// one file produce a single delivery.
	seen map[string]struct{}
}

// New creates a Watcher for dir. It uses fsnotify as the primary change
// detection mechanism and falls back to polling if fsnotify is unavailable
// or the directory cannot be watched natively.
func New(dir string, patterns []string) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve watch dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watch dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch dir %s is not a directory", abs)
	}

	w := &Watcher{
		dir:          abs,
		patterns:     patterns,
		files:        make(chan string, 16),
		done:         make(chan struct{}),
		pollInterval: 2 * time.Second,
		started:      time.Now(),
		seen:         make(map[string]struct{}),
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Info("fsnotify unavailable, falling back to polling", "error", err)
		w.polling.Store(true)
		go w.poll()
		return w, nil
	}

	w.fsw = fsw
	if err := fsw.Add(abs); err != nil {
		slog.Info("cannot watch directory, falling back to polling", "dir", abs, "error", err)
		fsw.Close()
		w.fsw = nil
		w.polling.Store(true)
		go w.poll()
		return w, nil
	}

	go w.watch()
	return w, nil
}

// Files returns the channel delivering matching file paths.
func (w *Watcher) Files() <-chan string {
	return w.files
}

// Polling reports whether the watcher is using polling instead of fsnotify.
func (w *Watcher) Polling() bool {
	return w.polling.Load()
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		if w.fsw != nil {
			if closeErr := w.fsw.Close(); closeErr != nil {
				err = fmt.Errorf("closing fsnotify watcher: %w", closeErr)
			}
		}
	})
	return err
}

// ///////////////////////////////////////////////
// Matching
// ///////////////////////////////////////////////

// matches reports whether the base name of path matches any configured
// pattern. Patterns were validated at config load, so match errors are
// treated as non-matches.
func (w *Watcher) matches(path string) bool {
	base := filepath.Base(path)
	for _, p := range w.patterns {
		if ok, err := doublestar.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}

// markSeen records path and reports whether it was new.
func (w *Watcher) markSeen(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.seen[path]; ok {
		return false
	}
	w.seen[path] = struct{}{}
	return true
}

// deliver pushes one path to the files channel, giving up when the watcher
// is closed while the consumer is away.
func (w *Watcher) deliver(path string) {
	select {
	case w.files <- path:
	case <-w.done:
	}
}

// ///////////////////////////////////////////////
// Event Loop
// ///////////////////////////////////////////////

// watch loops over fsnotify events, forwarding create/write notifications
// for matching files. If fsnotify reports an error, watch closes the native
// watcher and falls back to [Watcher.poll].
func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if w.matches(event.Name) && w.markSeen(event.Name) {
				w.deliver(event.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Info("fsnotify error, switching to polling", "error", err)
			w.fsw.Close()
			w.fsw = nil
			w.polling.Store(true)
			go w.poll()
			return
		}
	}
}

// poll periodically scans the directory and reports matching files whose
// modification time is after the watch started.
func (w *Watcher) poll() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

// scan walks the directory once, delivering new matching files.
func (w *Watcher) scan() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, e.Name())
		if !w.matches(path) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(w.started) {
			continue
		}
		if w.markSeen(path) {
			w.deliver(path)
		}
	}
}
