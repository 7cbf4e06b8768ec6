package stylecraft

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow is the quiet window for coalescing save bursts: a
// changed path is processed once no further events arrive for it within
// the window, so truncate-then-write saves are seen as one change with
// the final content.
const debounceWindow = 200 * time.Millisecond

// debouncer tracks pending paths for quiet-window coalescing. Every
// event restarts its path's window; a path becomes due only after its
// window elapses with no further events, which means the last write of
// a burst is the one that gets processed.
type debouncer struct {
	window  time.Duration
	pending map[string]time.Time
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window, pending: make(map[string]time.Time)}
}

// note records an event for path, restarting its quiet window.
func (d *debouncer) note(path string, now time.Time) {
	d.pending[path] = now
}

// due removes and returns the paths whose quiet window has elapsed.
func (d *debouncer) due(now time.Time) []string {
	var paths []string
	for path, last := range d.pending {
		if now.Sub(last) >= d.window {
			delete(d.pending, path)
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

func (d *debouncer) empty() bool { return len(d.pending) == 0 }

// Watch processes file-change events until ctx is cancelled. Each due
// path runs the same per-file pipeline as a one-shot build,
// synchronously and against the session's shared cache, so a
// declaration first seen during the run keeps its tokens across later
// saves. Filesystem failures are logged and the loop continues with
// subsequent events.
func (s *Session) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	root := s.cfg.SourceDir
	if root == "" {
		root = "."
	}
	if err := s.addWatchDirs(watcher, root); err != nil {
		return err
	}

	slog.Info("watching for style changes", "dir", root, "extensions", s.cfg.Extensions)

	deb := newDebouncer(debounceWindow)
	quietTimer := time.NewTimer(time.Hour)
	if !quietTimer.Stop() {
		select {
		case <-quietTimer.C:
		default:
		}
	}
	var quietC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// New directories join the watch as they appear.
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if !s.filter.Excluded(relativeTo(root, event.Name)) {
					if err := watcher.Add(event.Name); err != nil {
						slog.Error("failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
				continue
			}
			if !s.watchable(root, event.Name) {
				continue
			}
			deb.note(event.Name, time.Now())
			resetTimer(quietTimer, debounceWindow)
			quietC = quietTimer.C
		case <-quietC:
			for _, path := range deb.due(time.Now()) {
				s.processEvent(path)
			}
			if deb.empty() {
				quietC = nil
			} else {
				resetTimer(quietTimer, debounceWindow)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		}
	}
}

func resetTimer(t *time.Timer, after time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(after)
}

// processEvent runs the per-file pipeline for one settled path.
func (s *Session) processEvent(path string) {
	result := &BuildResult{}
	if err := s.ProcessFile(path, result); err != nil {
		slog.Error("transform failed", "file", path, "error", err)
		return
	}
	for _, issue := range result.Issues {
		slog.Warn("property skipped", "file", issue.Pos.Filename, "property", issue.Property, "reason", issue.Text)
	}
	slog.Info("transformed", "file", path, "call_sites", result.CallSites, "cache_hits", result.CacheHits)
}

// addWatchDirs registers root and every non-excluded subdirectory.
func (s *Session) addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		rel := relativeTo(root, path)
		if rel != "." && s.filter.Excluded(rel) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// watchable reports whether a changed path should be reprocessed: a
// watched extension and not excluded.
func (s *Session) watchable(root, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	matched := false
	for _, want := range s.cfg.Extensions {
		if ext == strings.ToLower(want) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	return !s.filter.Excluded(relativeTo(root, path))
}
