// SPDX-License-Identifier: MPL-2.0

package suitefs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"suitectl/internal/issue"
	"suitectl/pkg/suite"
	"suitectl/pkg/suitefile"
)

// Loader resolves fully-qualified suite names directly from search locations
// by naming convention, without any scanning. It implements discovery.Loader.
//
// The name "acme.checkout.Smoke" maps to "acme/checkout/Smoke.suite.cue"
// below each location; the first location that has the file wins. Archive
// contents are not reachable through direct resolution.
type Loader struct {
	locations []string
}

// NewLoader creates a loader over the given search locations.
func NewLoader(locations []string) *Loader {
	return &Loader{locations: locations}
}

// Load resolves one suite by name. With initialize=false only the manifest
// header is probed, a cheap existence and marker check that skips schema
// validation and defaults. With initialize=true the manifest is fully parsed.
func (l *Loader) Load(ctx context.Context, name string, initialize bool) (suite.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return suite.Descriptor{}, fmt.Errorf("load canceled: %w", err)
	}

	path, err := l.resolvePath(name)
	if err != nil {
		return suite.Descriptor{}, err
	}

	if !initialize {
		header, probeErr := suitefile.Probe(path)
		if probeErr != nil {
			return suite.Descriptor{}, probeErr
		}
		if header.FullName() != name {
			return suite.Descriptor{}, fmt.Errorf("manifest at %s declares %q, expected %q", path, header.FullName(), name)
		}

		kind := suite.KindSuite
		if !header.IsSuite() {
			kind = suite.Kind(header.Kind)
		}
		return suite.Descriptor{
			Name:     header.FullName(),
			Package:  header.Package,
			Kind:     kind,
			Abstract: header.Abstract,
			Source:   path,
		}, nil
	}

	sf, err := suitefile.Parse(path)
	if err != nil {
		return suite.Descriptor{}, err
	}
	if sf.FullName() != name {
		return suite.Descriptor{}, fmt.Errorf("manifest at %s declares %q, expected %q", path, sf.FullName(), name)
	}

	return sf.Descriptor(), nil
}

// resolvePath maps a fully-qualified name onto the first existing manifest
// file across the configured locations.
func (l *Loader) resolvePath(name string) (string, error) {
	rel, err := manifestRelPath(name)
	if err != nil {
		return "", err
	}

	for _, loc := range l.locations {
		path := filepath.Join(loc, rel)
		if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", issue.Wrap(
		fmt.Errorf("no manifest in any search location: %w", os.ErrNotExist),
		"resolve suite", name,
		"verify the fully-qualified name, including its package",
		"run `suitectl list` to see every discoverable suite",
	)
}

// manifestRelPath converts "pkg.sub.Name" into "pkg/sub/Name.suite.cue".
func manifestRelPath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty suite name")
	}

	simple := name
	pkg := ""
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		pkg = name[:idx]
		simple = name[idx+1:]
	}
	if simple == "" {
		return "", fmt.Errorf("invalid suite name %q", name)
	}

	rel := simple + suitefile.Suffix
	if pkg != "" {
		rel = filepath.Join(filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")), rel)
	}
	return rel, nil
}
