// SPDX-License-Identifier: MPL-2.0

package suitefile

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"suitectl/pkg/cueschema"
)

//go:embed suitefile_schema.cue
var suiteSchema string

// Header is the cheap view of a manifest produced by Probe. It carries just
// enough to decide whether the file is worth a full parse: no schema
// unification, no defaults, no validation.
type Header struct {
	Name     string
	Package  string
	Kind     string
	Abstract bool
}

// FullName returns the fully-qualified suite name.
func (h Header) FullName() string {
	return qualifiedName(h.Package, h.Name)
}

// IsSuite reports whether the header declares a recognized suite. An absent
// kind counts as a suite, mirroring the schema default applied by Parse.
func (h Header) IsSuite() bool {
	return h.Kind == "" || h.Kind == "suite"
}

// Parse reads and fully parses a manifest from the given path.
func Parse(path string) (*Suitefile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite manifest at %s: %w", path, err)
	}

	return ParseBytes(data, path)
}

// ParseBytes fully parses manifest content: schema unification, defaults,
// validation. This is the initializing load.
func ParseBytes(data []byte, path string) (*Suitefile, error) {
	s, err := cueschema.Decode[Suitefile](suiteSchema, data, "#Suite", cueschema.WithFilename(path))
	if err != nil {
		return nil, err
	}

	s.FilePath = path

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Probe reads a manifest and extracts its header without running schema
// validation or applying defaults.
func Probe(path string) (Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Header{}, fmt.Errorf("failed to read suite manifest at %s: %w", path, err)
	}

	return ProbeBytes(data, path)
}

// ProbeBytes extracts the header fields from raw manifest content. The file
// is compiled but not unified with the schema, so malformed optional fields
// do not fail the probe; only a syntactically broken file does.
func ProbeBytes(data []byte, path string) (Header, error) {
	ctx := cuecontext.New()

	v := ctx.CompileBytes(data, cue.Filename(path))
	if v.Err() != nil {
		return Header{}, cueschema.FormatError(v.Err(), path)
	}

	var h Header
	h.Name, _ = lookupString(v, "name")
	if h.Name == "" {
		return Header{}, fmt.Errorf("%s: manifest has no name", path)
	}
	h.Package, _ = lookupString(v, "package")
	h.Kind, _ = lookupString(v, "kind")
	h.Abstract = lookupBool(v, "abstract")

	return h, nil
}

func lookupString(v cue.Value, field string) (string, bool) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", false
	}
	s, err := fv.String()
	if err != nil {
		return "", false
	}
	return s, true
}

func lookupBool(v cue.Value, field string) bool {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return false
	}
	b, err := fv.Bool()
	if err != nil {
		return false
	}
	return b
}
