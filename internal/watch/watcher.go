// SPDX-License-Identifier: MPL-2.0

// Package watch monitors search locations for suite manifest changes and
// invokes a callback after a debounce window. Events inside the window are
// coalesced so the callback fires once with the full set of changed paths.
package watch

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period after the last filesystem event before
// the callback fires, coalescing editor write/rename bursts.
const defaultDebounce = 500 * time.Millisecond

// defaultIgnores are always excluded: VCS metadata, dependency caches and
// editor temp files generate high-frequency noise.
var defaultIgnores = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/*.swp",
	"**/*~",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Roots are the directories to watch. Missing roots are skipped.
		Roots []string

		// Patterns are doublestar globs selecting which files trigger the
		// callback (e.g. "**/*.suite.cue"). Empty watches all non-ignored
		// files.
		Patterns []string

		// Ignore are additional doublestar globs merged with the defaults.
		Ignore []string

		// Debounce is the quiet period before the callback fires. Zero or
		// negative falls back to defaultDebounce.
		Debounce time.Duration

		// OnChange receives the deduplicated changed paths (relative to the
		// root that produced them). A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Stderr receives warnings; nil defaults to os.Stderr.
		Stderr io.Writer
	}

	// Watcher monitors the configured roots. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		ignores  []string
		stderr   io.Writer
		debounce time.Duration
		roots    []string
		started  atomic.Bool
	}
)

// New creates a Watcher, registering every non-ignored directory below each
// root with the underlying fsnotify watcher.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Roots) == 0 {
		return nil, fmt.Errorf("watch: no roots to watch")
	}

	if err := validatePatterns(cfg.Patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	ignores := make([]string, 0, len(defaultIgnores)+len(cfg.Ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  ignores,
		stderr:   stderr,
		debounce: debounce,
	}

	for _, root := range cfg.Roots {
		absRoot, absErr := filepath.Abs(root)
		if absErr != nil {
			fmt.Fprintf(stderr, "watch: skipping root %q: %v\n", root, absErr)
			continue
		}
		if _, statErr := os.Stat(absRoot); statErr != nil {
			continue
		}
		if addErr := w.addTree(absRoot); addErr != nil {
			fsw.Close() //nolint:errcheck // best-effort cleanup
			return nil, addErr
		}
		w.roots = append(w.roots, absRoot)
	}

	if len(w.roots) == 0 {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("watch: none of the roots exist")
	}

	return w, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on clean cancellation. A second call returns an error.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire drains the pending set and invokes OnChange. The skip-if-busy
	// guard prevents overlapping callbacks when re-discovery outlasts the
	// debounce window; a reset keeps skipped events from being lost.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Collect(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		slices.Sort(changed)
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				fmt.Fprintf(w.stderr, "watch: callback error: %v\n", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		localTimer := timer
		mu.Unlock()
		if localTimer != nil && !localTimer.Stop() {
			select {
			case <-localTimer.C:
			default:
			}
		}
		if closeErr := w.fsw.Close(); closeErr != nil {
			fmt.Fprintf(w.stderr, "watch: close fsnotify: %v\n", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}

			rel := w.relToRoot(evt.Name)
			if w.isIgnored(rel) || !w.matchesPatterns(rel) {
				// Still track new directories so recursive watches extend.
				if evt.Has(fsnotify.Create) {
					w.maybeAddDir(evt.Name)
				}
				continue
			}

			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			fmt.Fprintf(w.stderr, "watch: fsnotify error: %v\n", err)
		}
	}
}

// addTree registers every non-ignored directory under root.
func (w *Watcher) addTree(root string) error {
	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			fmt.Fprintf(w.stderr, "watch: skipping inaccessible path %q: %v\n", path, walkDirErr)
			return nil //nolint:nilerr // intentional skip of inaccessible paths
		}
		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil //nolint:nilerr // skip paths that cannot be made relative
		}
		if w.isIgnored(rel) || w.isIgnored(rel+"/") {
			return filepath.SkipDir
		}

		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk directory tree: %w", walkErr)
	}
	return nil
}

// maybeAddDir registers a newly created, non-ignored directory.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	rel := w.relToRoot(path)
	if w.isIgnored(rel) || w.isIgnored(rel+"/") {
		return
	}

	if addErr := w.fsw.Add(path); addErr != nil {
		fmt.Fprintf(w.stderr, "watch: add new directory %q: %v\n", path, addErr)
	}
}

// relToRoot makes path relative to the first root containing it; paths
// outside every root pass through unchanged.
func (w *Watcher) relToRoot(path string) string {
	for _, root := range w.roots {
		if rel, err := filepath.Rel(root, path); err == nil && !isOutside(rel) {
			return rel
		}
	}
	return path
}

func isOutside(rel string) bool {
	return rel == ".." || len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}

// isIgnored reports whether rel matches any ignore pattern.
func (w *Watcher) isIgnored(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.ignores {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// matchesPatterns reports whether rel matches at least one watch pattern;
// an empty pattern list matches everything.
func (w *Watcher) matchesPatterns(rel string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.cfg.Patterns {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// validatePatterns rejects invalid doublestar globs at construction time.
func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if _, err := doublestar.Match(pat, ""); err != nil {
			return fmt.Errorf("watch: invalid %s pattern %q: %w", label, pat, err)
		}
	}
	return nil
}
