// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"strings"

	"suitectl/pkg/suite"
)

// matchesAny implements selector OR semantics: an empty selector set selects
// every candidate.
func matchesAny(selectors []Selector, d suite.Descriptor) bool {
	if len(selectors) == 0 {
		return true
	}
	for _, s := range selectors {
		if selectorMatches(s, d) {
			return true
		}
	}
	return false
}

// passesAll implements filter AND semantics: an empty filter set rejects
// nothing.
func passesAll(filters []Filter, d suite.Descriptor) bool {
	for _, f := range filters {
		if !filterMatches(f, d) {
			return false
		}
	}
	return true
}

func selectorMatches(s Selector, d suite.Descriptor) bool {
	switch s.Kind {
	case SelectByName:
		return d.Name == s.Value
	case SelectByPackage:
		return d.Package == s.Value
	case SelectByTag:
		return d.HasTag(s.Value)
	case SelectByAnnotation:
		return annotationMatches(s.Value, d)
	default:
		return false
	}
}

func filterMatches(f Filter, d suite.Descriptor) bool {
	switch f.Kind {
	case FilterByTag:
		return d.HasTag(f.Value)
	case FilterByPackage:
		return d.Package == f.Value
	case FilterByNamePrefix:
		return strings.HasPrefix(d.Name, f.Value)
	case FilterByAnnotation:
		return annotationMatches(f.Value, d)
	default:
		return false
	}
}

// annotationMatches checks a "key=value" constraint against the descriptor's
// annotations. A constraint without "=" matches mere presence of the key.
func annotationMatches(constraint string, d suite.Descriptor) bool {
	key, want, exact := strings.Cut(constraint, "=")
	got, ok := d.Annotation(key)
	if !ok {
		return false
	}
	if !exact {
		return true
	}
	return got == want
}
