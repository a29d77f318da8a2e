// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"

	"suitectl/pkg/suite"
)

type (
	// ScanOptions bound what a full scan is allowed to touch.
	ScanOptions struct {
		// ExcludedPrefixes are dotted package prefixes skipped during the scan.
		ExcludedPrefixes []string
		// SkipNestedArchives disables descending into archive files.
		SkipNestedArchives bool
	}

	// Symbol is a scanned manifest that has not been fully loaded yet. IsSuite
	// must be answerable without the initializing load.
	Symbol interface {
		// Name returns the fully-qualified suite name.
		Name() string
		// IsSuite reports whether the symbol satisfies the suite marker contract.
		IsSuite() bool
		// Load performs the full, initializing load.
		Load() (suite.Descriptor, error)
	}

	// Scanner enumerates every loadable symbol under the given search
	// locations. Implementations own all I/O; the engine never touches the
	// filesystem itself.
	Scanner interface {
		Scan(ctx context.Context, locations []string, opts ScanOptions) ([]Symbol, error)
	}

	// Loader resolves a fully-qualified name directly, bypassing the scanner.
	// With initialize=false the returned descriptor only needs Name, Kind and
	// Abstract populated; initialize=true performs the full load.
	Loader interface {
		Load(ctx context.Context, name string, initialize bool) (suite.Descriptor, error)
	}
)
