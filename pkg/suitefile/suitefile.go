// SPDX-License-Identifier: MPL-2.0

// Package suitefile parses suite manifest files. A manifest declares one
// suite (or script) in CUE form and is validated against an embedded schema.
package suitefile

import (
	"fmt"
	"sort"

	"suitectl/pkg/suite"
)

// Suffix is the file suffix every suite manifest carries.
const Suffix = ".suite.cue"

// Suitefile is the decoded form of a manifest.
type Suitefile struct {
	// Name is the simple suite name (last segment of the fully-qualified name).
	Name string `json:"name"`
	// Package is the dotted package the suite belongs to.
	Package string `json:"package,omitempty"`
	// Kind is "suite" or "script"; defaults to "suite" via the schema.
	Kind string `json:"kind,omitempty"`
	// Abstract marks a template manifest meant to be referenced, not run.
	Abstract bool `json:"abstract,omitempty"`
	// Tags are free-form labels.
	Tags []string `json:"tags,omitempty"`
	// Annotations carry key/value metadata.
	Annotations map[string]string `json:"annotations,omitempty"`
	// Description is optional markdown.
	Description string `json:"description,omitempty"`

	// FilePath records where the manifest was loaded from (not in CUE).
	FilePath string `json:"-"`
}

// FullName returns the fully-qualified suite name.
func (s *Suitefile) FullName() string {
	return qualifiedName(s.Package, s.Name)
}

// Descriptor converts the parsed manifest into the immutable handle used by
// the discovery engine. Tags are sorted so descriptors compare predictably.
func (s *Suitefile) Descriptor() suite.Descriptor {
	tags := make([]string, len(s.Tags))
	copy(tags, s.Tags)
	sort.Strings(tags)

	annotations := make(map[string]string, len(s.Annotations))
	for k, v := range s.Annotations {
		annotations[k] = v
	}

	return suite.Descriptor{
		Name:        s.FullName(),
		Package:     s.Package,
		Kind:        suite.Kind(s.Kind),
		Abstract:    s.Abstract,
		Tags:        tags,
		Annotations: annotations,
		Description: s.Description,
		Source:      s.FilePath,
	}
}

// validate applies the structural checks the schema cannot express.
func (s *Suitefile) validate() error {
	seen := make(map[string]struct{}, len(s.Tags))
	for _, tag := range s.Tags {
		if _, dup := seen[tag]; dup {
			return fmt.Errorf("duplicate tag %q", tag)
		}
		seen[tag] = struct{}{}
	}
	return nil
}

// qualifiedName joins a dotted package and a simple name.
func qualifiedName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
