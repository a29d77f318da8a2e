// SPDX-License-Identifier: MPL-2.0

// Package cueschema wraps the CUE evaluator with the schema-validated parse
// flow used for suite manifests and configuration files.
package cueschema

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// MaxFileSize is the largest file the parser accepts. The limit keeps a
// malformed or hostile file from exhausting memory during evaluation.
const MaxFileSize int64 = 5 * 1024 * 1024

type (
	// options holds per-parse configuration.
	options struct {
		filename string
		concrete bool
	}

	// Option configures a parse call.
	Option func(*options)
)

// WithFilename sets the filename reported in CUE error messages.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithConcrete controls whether all values must be concrete after
// unification. Defaults to true; config files with optional fields set it
// to false.
func WithConcrete(concrete bool) Option {
	return func(o *options) {
		o.concrete = concrete
	}
}

// Decode compiles schema, compiles data, unifies the two at defPath (e.g.
// "#Suite"), validates, and decodes the unified value into T.
func Decode[T any](schema string, data []byte, defPath string, opts ...Option) (*T, error) {
	o := options{concrete: true}
	for _, opt := range opts {
		opt(&o)
	}

	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	if int64(len(data)) > MaxFileSize {
		return nil, fmt.Errorf("%s: file exceeds maximum size of %d bytes", filename, MaxFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(defPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", defPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &result, nil
}
