// SPDX-License-Identifier: MPL-2.0

// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// MustSetenv sets an environment variable and returns a function restoring
// the previous value.
func MustSetenv(t testing.TB, key, value string) func() {
	t.Helper()

	prev, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}

	return func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	}
}

// SetHomeDir points the platform home variable at dir and returns a cleanup
// function. Windows uses USERPROFILE, everything else HOME.
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		return MustSetenv(t, "USERPROFILE", dir)
	default:
		return MustSetenv(t, "HOME", dir)
	}
}

// MustChdir changes the working directory and returns a function restoring
// the previous one.
func MustChdir(t testing.TB, dir string) func() {
	t.Helper()

	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}

	return func() {
		_ = os.Chdir(prev)
	}
}

// WriteManifest writes a suite manifest under root following the package
// naming convention and returns its path.
func WriteManifest(t testing.TB, root, pkg, name, content string) string {
	t.Helper()

	dir := root
	if pkg != "" {
		dir = filepath.Join(root, filepath.FromSlash(dottedToPath(pkg)))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create manifest dir %s: %v", dir, err)
	}

	path := filepath.Join(dir, name+".suite.cue")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest %s: %v", path, err)
	}
	return path
}

func dottedToPath(pkg string) string {
	out := make([]rune, 0, len(pkg))
	for _, r := range pkg {
		if r == '.' {
			out = append(out, '/')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
