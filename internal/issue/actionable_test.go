// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestWrapNilIsNil(t *testing.T) {
	if Wrap(nil, "resolve suite", "acme.Smoke") != nil {
		t.Fatal("wrapping a nil error must yield nil")
	}
}

func TestActionableErrorMessage(t *testing.T) {
	err := Wrap(errors.New("manifest missing"), "resolve suite", "acme.Smoke")
	want := "failed to resolve suite: acme.Smoke: manifest missing"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestActionableErrorWithoutResource(t *testing.T) {
	err := Wrap(errors.New("disk gone"), "scan suites", "")
	want := "failed to scan suites: disk gone"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestActionableErrorUnwraps(t *testing.T) {
	err := Wrap(os.ErrNotExist, "resolve suite", "acme.Smoke")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatal("cause must be reachable through errors.Is")
	}
}

func TestActionableErrorFormat(t *testing.T) {
	err := Wrap(errors.New("manifest missing"), "resolve suite", "acme.Smoke",
		"check the fully-qualified name",
		"run `suitectl list`")

	plain := err.Format(false)
	if strings.Contains(plain, "check the fully-qualified name") {
		t.Fatalf("non-verbose format must omit suggestions: %q", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "check the fully-qualified name") {
		t.Fatalf("verbose format must list suggestions: %q", verbose)
	}
	if !strings.Contains(verbose, "- run `suitectl list`") {
		t.Fatalf("suggestions must be bulleted: %q", verbose)
	}
}
