// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"slices"
	"strings"
)

type (
	// SelectorKind tags the selector variant.
	SelectorKind string

	// Selector is a named inclusion criterion over a descriptor. Selectors are
	// plain comparable values rather than predicate functions so that requests
	// keep value equality and can serve as cache keys.
	Selector struct {
		Kind  SelectorKind
		Value string
	}

	// FilterKind tags the filter variant.
	FilterKind string

	// Filter is a named exclusion criterion over a descriptor.
	Filter struct {
		Kind  FilterKind
		Value string
	}

	// Request is the value object handed to Engine.Discover. Two requests are
	// equal iff their selector sets and filter sets are equal; ordering and
	// duplicates do not matter.
	Request struct {
		Selectors []Selector
		Filters   []Filter
	}
)

const (
	// SelectByName matches a single suite by exact fully-qualified name. A
	// request made solely of name selectors takes the fast path.
	SelectByName SelectorKind = "name"
	// SelectByPackage matches every suite in the given dotted package.
	SelectByPackage SelectorKind = "package"
	// SelectByTag matches suites carrying the given tag.
	SelectByTag SelectorKind = "tag"
	// SelectByAnnotation matches suites with the given "key=value" annotation.
	SelectByAnnotation SelectorKind = "annotation"
)

const (
	// FilterByTag keeps suites carrying the given tag.
	FilterByTag FilterKind = "tag"
	// FilterByPackage keeps suites in the given dotted package.
	FilterByPackage FilterKind = "package"
	// FilterByNamePrefix keeps suites whose fully-qualified name has the prefix.
	FilterByNamePrefix FilterKind = "name-prefix"
	// FilterByAnnotation keeps suites with the given "key=value" annotation.
	FilterByAnnotation FilterKind = "annotation"
)

// ByName builds an identifier selector.
func ByName(name string) Selector {
	return Selector{Kind: SelectByName, Value: name}
}

// ByPackage builds a package selector.
func ByPackage(pkg string) Selector {
	return Selector{Kind: SelectByPackage, Value: pkg}
}

// ByTag builds a tag selector.
func ByTag(tag string) Selector {
	return Selector{Kind: SelectByTag, Value: tag}
}

// ByAnnotation builds an annotation selector.
func ByAnnotation(key, value string) Selector {
	return Selector{Kind: SelectByAnnotation, Value: key + "=" + value}
}

// ByAnnotationConstraint builds an annotation selector from a raw constraint
// string, either "key" (presence check) or "key=value".
func ByAnnotationConstraint(constraint string) Selector {
	return Selector{Kind: SelectByAnnotation, Value: constraint}
}

// WithTag builds a tag filter.
func WithTag(tag string) Filter {
	return Filter{Kind: FilterByTag, Value: tag}
}

// WithPackage builds a package filter.
func WithPackage(pkg string) Filter {
	return Filter{Kind: FilterByPackage, Value: pkg}
}

// WithNamePrefix builds a name-prefix filter.
func WithNamePrefix(prefix string) Filter {
	return Filter{Kind: FilterByNamePrefix, Value: prefix}
}

// WithAnnotation builds an annotation filter.
func WithAnnotation(key, value string) Filter {
	return Filter{Kind: FilterByAnnotation, Value: key + "=" + value}
}

// WithAnnotationConstraint builds an annotation filter from a raw constraint
// string, either "key" (presence check) or "key=value".
func WithAnnotationConstraint(constraint string) Filter {
	return Filter{Kind: FilterByAnnotation, Value: constraint}
}

// key canonicalizes the request into the cache key: both sets are sorted and
// deduplicated, so requests that differ only in ordering or repetition map to
// the same entry.
func (r Request) key() string {
	selectors := make([]string, 0, len(r.Selectors))
	for _, s := range r.Selectors {
		selectors = append(selectors, string(s.Kind)+"\x00"+s.Value)
	}
	slices.Sort(selectors)
	selectors = slices.Compact(selectors)

	filters := make([]string, 0, len(r.Filters))
	for _, f := range r.Filters {
		filters = append(filters, string(f.Kind)+"\x00"+f.Value)
	}
	slices.Sort(filters)
	filters = slices.Compact(filters)

	var sb strings.Builder
	sb.WriteString("sel:")
	sb.WriteString(strings.Join(selectors, "\x1f"))
	sb.WriteString("|flt:")
	sb.WriteString(strings.Join(filters, "\x1f"))
	return sb.String()
}
