// SPDX-License-Identifier: MPL-2.0

package discovery

import "suitectl/pkg/suite"

// Result is the outcome of a single Discover call. When Err is set, Suites
// and Scripts are empty; an empty suite list with a nil Err means "nothing
// matched" and is a valid outcome.
type Result struct {
	// Suites is the deduplicated, name-sorted list of resolved suites.
	Suites []suite.Descriptor
	// Scripts is reserved for script-style discovery. The engine never
	// populates it.
	Scripts []suite.Script
	// Err holds the captured failure when discovery itself could not complete.
	Err error
}

func errorResult(err error) Result {
	return Result{Err: err}
}
