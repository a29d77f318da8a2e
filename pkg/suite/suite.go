// SPDX-License-Identifier: MPL-2.0

// Package suite defines the descriptor types shared between the discovery
// engine and the manifest loading layer.
package suite

import "strings"

// Kind tags what a loaded manifest declares. Only KindSuite participates in
// discovery; other kinds are skipped during scans and fast-path resolution.
type Kind string

const (
	// KindSuite marks a runnable test suite.
	KindSuite Kind = "suite"
	// KindScript marks a script-style entry. Scripts are carried as an opaque
	// placeholder in results and are never populated by the discovery engine.
	KindScript Kind = "script"
)

// Descriptor is an immutable handle to a discoverable test suite. Descriptors
// are produced once by the loader and never mutated afterwards; the engine
// treats them as plain values.
type Descriptor struct {
	// Name is the unique fully-qualified suite name, e.g. "acme.checkout.Smoke".
	Name string
	// Package is the dotted package portion of Name.
	Package string
	// Kind is the capability tag from the manifest.
	Kind Kind
	// Abstract marks a template suite that cannot be run directly.
	Abstract bool
	// Tags are free-form labels used by filters.
	Tags []string
	// Annotations carry key=value metadata used by selectors and filters.
	Annotations map[string]string
	// Description is optional markdown shown by `suitectl show`.
	Description string
	// Source is where the manifest was loaded from (path, or archive!entry).
	Source string
}

// IsSuite reports whether the descriptor satisfies the suite marker contract.
func (d Descriptor) IsSuite() bool {
	return d.Kind == KindSuite
}

// SimpleName returns the last dotted segment of the fully-qualified name.
func (d Descriptor) SimpleName() string {
	if idx := strings.LastIndex(d.Name, "."); idx >= 0 {
		return d.Name[idx+1:]
	}
	return d.Name
}

// HasTag reports whether the descriptor carries the given tag.
func (d Descriptor) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Annotation returns the annotation value for key and whether it is present.
func (d Descriptor) Annotation(key string) (string, bool) {
	v, ok := d.Annotations[key]
	return v, ok
}

// Script is an opaque handle for script-style entries. The discovery engine
// reserves a slot for scripts in its results but never fills it; script
// resolution lives outside the engine.
type Script struct {
	// Name is the fully-qualified script name.
	Name string
	// Source is where the script manifest was found.
	Source string
}
