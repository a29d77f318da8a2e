// SPDX-License-Identifier: MPL-2.0

// Package discovery resolves declarative requests into ordered, deduplicated
// suite descriptor lists. Resolution either loads explicitly named suites
// directly (the fast path) or filters a memoized full scan of the configured
// search locations; results are cached per request for the engine's lifetime.
package discovery
