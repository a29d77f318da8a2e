// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// ActionableError is an error carrying user-facing context: the operation
// that failed, the resource involved, and suggestions for fixing it.
type ActionableError struct {
	// Operation describes what was being attempted (e.g., "resolve suite").
	Operation string
	// Resource identifies the file, path, or entity involved (optional).
	Resource string
	// Suggestions are hints on how to fix the issue (optional).
	Suggestions []string
	// Cause is the underlying error (optional).
	Cause error
}

// Wrap builds an ActionableError around err. A nil err yields nil.
func Wrap(err error, operation, resource string, suggestions ...string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{
		Operation:   operation,
		Resource:    resource,
		Suggestions: slices.Clone(suggestions),
		Cause:       err,
	}
}

// Error returns the concise, non-verbose message.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap exposes the cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the error for terminal display. Verbose mode appends the
// suggestion list.
func (e *ActionableError) Format(verbose bool) string {
	if !verbose || len(e.Suggestions) == 0 {
		return e.Error()
	}

	var sb strings.Builder
	sb.WriteString(e.Error())
	sb.WriteString("\n")
	for _, s := range e.Suggestions {
		fmt.Fprintf(&sb, "  - %s\n", s)
	}
	return strings.TrimRight(sb.String(), "\n")
}
