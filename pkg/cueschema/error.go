// SPDX-License-Identifier: MPL-2.0

package cueschema

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// FormatError rewrites a CUE evaluation error into one line per failure,
// prefixed with the file path and the dotted path of the offending field:
//
//	acme/checkout/Smoke.suite.cue: tags[1]: conflicting values
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(cueErrors))
	for _, e := range cueErrors {
		pathStr := joinPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the field path inside the message itself.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}

		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	return fmt.Errorf("%s: %s", filePath, strings.Join(lines, "; "))
}

// joinPath renders a CUE error path as a dotted string with list indices in
// brackets, e.g. "tags[1]" or "annotations.owner".
func joinPath(path []string) string {
	var sb strings.Builder
	for _, seg := range path {
		if isListIndex(seg) {
			sb.WriteString("[" + seg + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(seg)
	}
	return sb.String()
}

func isListIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
