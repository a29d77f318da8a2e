// SPDX-License-Identifier: MPL-2.0

package suitefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"suitectl/internal/issue"
	"suitectl/internal/testutil"
	"suitectl/pkg/suite"
)

func TestLoadProbeReturnsHeaderOnly(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, root, "acme.checkout", "Smoke", smokeManifest)

	loader := NewLoader([]string{root})
	d, err := loader.Load(context.Background(), "acme.checkout.Smoke", false)
	if err != nil {
		t.Fatalf("probe load failed: %v", err)
	}

	if d.Name != "acme.checkout.Smoke" {
		t.Fatalf("got name %q", d.Name)
	}
	if d.Kind != suite.KindSuite {
		t.Fatalf("got kind %q, want suite", d.Kind)
	}
	if d.Abstract {
		t.Fatal("manifest is not abstract")
	}
	// The probe must not pay for the full parse.
	if len(d.Tags) != 0 || d.Description != "" {
		t.Fatalf("probe descriptor should be header-only, got %+v", d)
	}
}

func TestLoadInitializingReturnsFullDescriptor(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, root, "acme.checkout", "Smoke", smokeManifest)

	loader := NewLoader([]string{root})
	d, err := loader.Load(context.Background(), "acme.checkout.Smoke", true)
	if err != nil {
		t.Fatalf("full load failed: %v", err)
	}

	if !d.HasTag("smoke") || !d.HasTag("fast") {
		t.Fatalf("tags missing from full load: %v", d.Tags)
	}
	if d.Description != "Checkout smoke checks" {
		t.Fatalf("got description %q", d.Description)
	}
}

func TestLoadFirstLocationWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	testutil.WriteManifest(t, first, "acme", "Smoke", `
name: "Smoke"
package: "acme"
tags: ["first"]
`)
	testutil.WriteManifest(t, second, "acme", "Smoke", `
name: "Smoke"
package: "acme"
tags: ["second"]
`)

	loader := NewLoader([]string{first, second})
	d, err := loader.Load(context.Background(), "acme.Smoke", true)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !d.HasTag("first") {
		t.Fatalf("expected the first location to win, got tags %v", d.Tags)
	}
}

func TestLoadUnknownNameIsNotExist(t *testing.T) {
	loader := NewLoader([]string{t.TempDir()})
	_, err := loader.Load(context.Background(), "acme.Missing", false)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadUnknownNameIsActionable(t *testing.T) {
	loader := NewLoader([]string{t.TempDir()})
	_, err := loader.Load(context.Background(), "acme.Missing", false)

	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("expected an actionable error, got %T: %v", err, err)
	}
	if actionable.Resource != "acme.Missing" {
		t.Fatalf("got resource %q", actionable.Resource)
	}
	if len(actionable.Suggestions) == 0 {
		t.Fatal("expected fix suggestions on the error")
	}
}

func TestLoadRejectsNameMismatch(t *testing.T) {
	root := t.TempDir()
	// The file sits at acme/Smoke.suite.cue but declares a different package.
	testutil.WriteManifest(t, root, "acme", "Smoke", `
name: "Smoke"
package: "elsewhere"
`)

	loader := NewLoader([]string{root})
	if _, err := loader.Load(context.Background(), "acme.Smoke", false); err == nil {
		t.Fatal("expected a declared-name mismatch error on probe")
	}
	if _, err := loader.Load(context.Background(), "acme.Smoke", true); err == nil {
		t.Fatal("expected a declared-name mismatch error on full load")
	}
}

func TestLoadHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader([]string{t.TempDir()})
	if _, err := loader.Load(ctx, "acme.Smoke", false); err == nil {
		t.Fatal("expected a canceled context to abort the load")
	}
}

func TestManifestRelPath(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"qualified name", "acme.checkout.Smoke", "acme/checkout/Smoke.suite.cue", false},
		{"unqualified name", "Smoke", "Smoke.suite.cue", false},
		{"empty name", "", "", true},
		{"trailing dot", "acme.", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := manifestRelPath(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != filepath.FromSlash(tt.want) {
				t.Fatalf("manifestRelPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
