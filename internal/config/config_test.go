// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"suitectl/internal/testutil"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenNoConfigFile(t *testing.T) {
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(cfg.SearchPaths) != 0 {
		t.Fatalf("expected no default search paths, got %v", cfg.SearchPaths)
	}
	if len(cfg.ExcludedPrefixes) != 2 {
		t.Fatalf("expected default excluded prefixes, got %v", cfg.ExcludedPrefixes)
	}
	if cfg.DisableScan || cfg.SkipNestedArchives {
		t.Fatal("scan switches must default to off")
	}
	if cfg.Watch.DebounceMS != 500 {
		t.Fatalf("got debounce %d, want 500", cfg.Watch.DebounceMS)
	}
}

func TestLoadMergesConfigFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
search_paths: ["/srv/suites"]
skip_nested_archives: true
watch: debounce_ms: 250
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(cfg.SearchPaths) != 1 || cfg.SearchPaths[0] != "/srv/suites" {
		t.Fatalf("got search paths %v", cfg.SearchPaths)
	}
	if !cfg.SkipNestedArchives {
		t.Fatal("skip_nested_archives not applied")
	}
	if cfg.Watch.DebounceMS != 250 {
		t.Fatalf("got debounce %d, want 250", cfg.Watch.DebounceMS)
	}
	// Untouched fields keep their defaults.
	if len(cfg.ExcludedPrefixes) != 2 {
		t.Fatalf("defaults lost during merge: %v", cfg.ExcludedPrefixes)
	}
}

func TestLoadExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, `excluded_prefixes: ["generated"]`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.ExcludedPrefixes) != 1 || cfg.ExcludedPrefixes[0] != "generated" {
		t.Fatalf("got excluded prefixes %v", cfg.ExcludedPrefixes)
	}
}

func TestLoadExplicitConfigFileMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.cue")
	if _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: missing}); err == nil {
		t.Fatal("an explicitly requested config file must exist")
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong type", `disable_scan: "yes"`},
		{"unknown field", `scan_mode: "full"`},
		{"syntax error", `search_paths: [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfigFile(t, dir, tt.content)
			if _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir}); err == nil {
				t.Fatalf("expected config %q to be rejected", tt.content)
			}
		})
	}
}

func TestDisableScanEnvironmentOverride(t *testing.T) {
	restore := testutil.MustSetenv(t, "SUITECTL_DISABLE_SCAN", "true")
	defer restore()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.DisableScan {
		t.Fatal("SUITECTL_DISABLE_SCAN must flip disable_scan")
	}
}

func TestLoadHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); err == nil {
		t.Fatal("expected a canceled context to abort the load")
	}
}

func TestSuitesDirUnderHome(t *testing.T) {
	home := t.TempDir()
	restore := testutil.SetHomeDir(t, home)
	defer restore()

	dir, err := SuitesDir()
	if err != nil {
		t.Fatalf("SuitesDir failed: %v", err)
	}
	want := filepath.Join(home, ".suitectl", "suites")
	if dir != want {
		t.Fatalf("got %q, want %q", dir, want)
	}
}
