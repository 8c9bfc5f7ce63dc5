// Package watcher reports changes to the examples directory on the event bus.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"showcase/internal/eventbus"
	"showcase/internal/logging"
)

// DefaultDebounce is how long the directory must stay quiet before a change
// is published.
const DefaultDebounce = 300 * time.Millisecond

var watchedExts = map[string]bool{
	".go": true, ".toml": true, ".yaml": true, ".yml": true, ".txt": true,
}

// Watcher monitors an examples directory and its package subdirectories.
type Watcher struct {
	dir      string
	bus      eventbus.EventBus
	debounce time.Duration
	log      *zerolog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
}

// New creates a watcher for dir. A zero debounce uses DefaultDebounce.
func New(dir string, bus eventbus.EventBus, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		bus:      bus,
		debounce: debounce,
		log:      logging.Logger("watcher"),
		pending:  make(map[string]struct{}),
	}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addTree(fsw); err != nil {
		return err
	}
	w.log.Info().Str("dir", w.dir).Msg("watching examples")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				// New package examples need their own watch
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && filepath.Dir(event.Name) == w.dir {
					if err := fsw.Add(event.Name); err != nil {
						w.log.Warn().Err(err).Str("path", event.Name).Msg("failed to watch directory")
					}
					w.mark(event.Name)
					timer.Reset(w.debounce)
					continue
				}
			}
			if !relevant(event) {
				continue
			}
			w.mark(event.Name)
			timer.Reset(w.debounce)

		case <-timer.C:
			w.flush()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("watch error")
			w.bus.Publish(eventbus.ErrorEvent{Message: "watch error", Err: err})
		}
	}
}

// addTree watches dir and its direct, visible subdirectories.
func (w *Watcher) addTree(fsw *fsnotify.Watcher) error {
	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", w.dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() || hidden(e.Name()) {
			continue
		}
		if err := fsw.Add(filepath.Join(w.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to watch %s: %w", e.Name(), err)
		}
	}
	return nil
}

func (w *Watcher) mark(path string) {
	w.mu.Lock()
	w.pending[path] = struct{}{}
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	w.log.Debug().Strs("paths", paths).Msg("examples changed")
	w.bus.Publish(eventbus.CatalogChangedEvent{Dir: w.dir, Paths: paths})
}

// relevant reports whether event can change the catalog.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if hidden(name) || strings.HasSuffix(name, "~") {
		return false
	}
	return watchedExts[filepath.Ext(name)]
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
