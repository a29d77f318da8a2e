// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"suitectl/pkg/suite"
)

type (
	// Options bound what the engine's full scan may touch. They are fixed at
	// construction time.
	Options struct {
		// SearchLocations are the roots handed to the Scanner.
		SearchLocations []string
		// ExcludedPrefixes are dotted package prefixes the scan skips.
		ExcludedPrefixes []string
		// SkipNestedArchives disables scanning inside archive files.
		SkipNestedArchives bool
		// DisableScan short-circuits the full scan to an empty candidate set.
		// Fast-path resolution is unaffected.
		DisableScan bool
	}

	// Engine orchestrates request resolution. All caches live on the engine
	// instance, so tests construct isolated engines with fresh state; nothing
	// is package-global.
	Engine struct {
		scanner    Scanner
		loader     Loader
		extensions []Extension
		opts       Options

		// scanOnce guards the lazily computed full-scan candidate set. A scan
		// failure is memoized exactly like a success and never retried.
		scanOnce sync.Once
		scanned  []suite.Descriptor
		scanErr  error

		// mu guards results only around lookups and stores. Resolution runs
		// outside the lock: two goroutines racing on an uncached key may both
		// compute, and one result silently overwrites the other. Both
		// computations are idempotent, and holding the lock across
		// caller-supplied extension code could deadlock.
		mu      sync.Mutex
		results map[string]Result
	}
)

// NewEngine builds an engine over the given collaborators. Extensions run in
// the order supplied.
func NewEngine(scanner Scanner, loader Loader, opts Options, extensions ...Extension) *Engine {
	return &Engine{
		scanner:    scanner,
		loader:     loader,
		extensions: extensions,
		opts:       opts,
		results:    make(map[string]Result),
	}
}

// Discover resolves the request into an ordered suite list. It is total:
// every failure is captured into Result.Err, nothing escapes as a panic.
// Results, including failures, are memoized per request value for the
// engine's lifetime, so an identical second call does no scanning or loading.
func (e *Engine) Discover(ctx context.Context, req Request) Result {
	key := req.key()

	e.mu.Lock()
	if cached, ok := e.results[key]; ok {
		e.mu.Unlock()
		return cached
	}
	e.mu.Unlock()

	result := e.resolve(ctx, req)

	e.mu.Lock()
	e.results[key] = result
	e.mu.Unlock()

	return result
}

// resolve runs the end-to-end algorithm: candidate resolution, filter chain,
// extension pipeline, deterministic ordering. The recover guard converts a
// panic out of any collaborator or extension into an error result.
func (e *Engine) resolve(ctx context.Context, req Request) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = errorResult(fmt.Errorf("discovery panicked: %v", r))
		}
	}()

	var candidates []suite.Descriptor
	if fastPathApplicable(req.Selectors) {
		candidates = e.resolveByName(ctx, req.Selectors)
	} else {
		all, err := e.scanCandidates(ctx)
		if err != nil {
			return errorResult(err)
		}
		for _, d := range all {
			if d.Abstract || !matchesAny(req.Selectors, d) {
				continue
			}
			candidates = append(candidates, d)
		}
	}

	// The filter chain runs on both paths.
	filtered := make([]suite.Descriptor, 0, len(candidates))
	for _, d := range candidates {
		if passesAll(req.Filters, d) {
			filtered = append(filtered, d)
		}
	}

	out, err := applyExtensions(e.extensions, filtered)
	if err != nil {
		return errorResult(err)
	}

	// Ascending name sort keeps output reproducible across runs and platforms
	// regardless of scan or selector evaluation order.
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return Result{Suites: out}
}

// scanCandidates returns the memoized full-scan candidate set, computing it
// on first use. The set is never invalidated within the engine's lifetime.
func (e *Engine) scanCandidates(ctx context.Context) ([]suite.Descriptor, error) {
	e.scanOnce.Do(func() {
		e.scanned, e.scanErr = e.runScan(ctx)
	})
	return e.scanned, e.scanErr
}

// runScan performs the full scan: enumerate symbols, keep recognized suites,
// load each fully. Unlike the fast path, a load failure of any scanned symbol
// is fatal and rejects the whole candidate set.
func (e *Engine) runScan(ctx context.Context) ([]suite.Descriptor, error) {
	if e.opts.DisableScan {
		slog.Warn("full suite scan is disabled; scan-path requests resolve to no candidates")
		return nil, nil
	}

	symbols, err := e.scanner.Scan(ctx, e.opts.SearchLocations, ScanOptions{
		ExcludedPrefixes:   e.opts.ExcludedPrefixes,
		SkipNestedArchives: e.opts.SkipNestedArchives,
	})
	if err != nil {
		return nil, fmt.Errorf("suite scan failed: %w", err)
	}

	seen := make(map[string]bool, len(symbols))
	out := make([]suite.Descriptor, 0, len(symbols))
	for _, sym := range symbols {
		if !sym.IsSuite() {
			continue
		}
		// First occurrence wins when two locations declare the same name.
		if seen[sym.Name()] {
			slog.Debug("duplicate suite name during scan", "name", sym.Name())
			continue
		}
		seen[sym.Name()] = true

		d, err := sym.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load scanned suite %s: %w", sym.Name(), err)
		}
		out = append(out, d)
	}

	slog.Debug("full suite scan complete", "symbols", len(symbols), "suites", len(out))
	return out, nil
}
