// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"log/slog"

	"suitectl/pkg/suite"
)

// fastPathApplicable reports whether the request can skip the scanner
// entirely: the selector set must be non-empty and made solely of identifier
// selectors.
func fastPathApplicable(selectors []Selector) bool {
	if len(selectors) == 0 {
		return false
	}
	for _, s := range selectors {
		if s.Kind != SelectByName {
			return false
		}
	}
	return true
}

// resolveByName loads each named suite directly. Every name goes through a
// two-step load: a non-initializing probe first, so manifests that turn out
// not to be suites never pay for the full load. Names that do not resolve,
// are not suites, fail to load or are abstract are silently dropped;
// an unresolved explicit name is "not selected", never an error.
func (e *Engine) resolveByName(ctx context.Context, selectors []Selector) []suite.Descriptor {
	seen := make(map[string]bool, len(selectors))
	var out []suite.Descriptor

	for _, s := range selectors {
		name := s.Value
		if seen[name] {
			continue
		}
		seen[name] = true

		probe, err := e.loader.Load(ctx, name, false)
		if err != nil {
			slog.Debug("explicit suite name did not resolve", "name", name, "error", err)
			continue
		}
		if !probe.IsSuite() {
			slog.Debug("explicit name is not a suite", "name", name, "kind", probe.Kind)
			continue
		}

		d, err := e.loader.Load(ctx, name, true)
		if err != nil {
			slog.Debug("explicit suite failed to load", "name", name, "error", err)
			continue
		}
		if d.Abstract {
			continue
		}

		out = append(out, d)
	}

	return out
}
