// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"

	"suitectl/pkg/suite"
)

// Extension is an externally supplied post-filter transform. Extensions run
// strictly after filtering, in registration order, each receiving the
// previous extension's output. They may reorder, drop or add descriptors.
type Extension interface {
	// Name identifies the extension in logs and error messages.
	Name() string
	// AfterScan transforms the candidate list.
	AfterScan(suites []suite.Descriptor) ([]suite.Descriptor, error)
}

// applyExtensions folds the candidates through every extension left to right.
// The first failing extension aborts the fold; no partial results are kept.
func applyExtensions(extensions []Extension, suites []suite.Descriptor) ([]suite.Descriptor, error) {
	out := suites
	for _, ext := range extensions {
		next, err := ext.AfterScan(out)
		if err != nil {
			return nil, fmt.Errorf("extension %s failed: %w", ext.Name(), err)
		}
		out = next
	}
	return out, nil
}
