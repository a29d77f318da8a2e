// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"suitectl/internal/config"
	"suitectl/internal/discovery"
	"suitectl/internal/issue"
	"suitectl/internal/suitefs"
)

// app bundles the configuration and the discovery engine for one CLI
// invocation. Each invocation gets a fresh engine, so the engine's
// process-lifetime caches span exactly one command run.
type app struct {
	cfg    *config.Config
	engine *discovery.Engine
}

// newApp loads configuration and wires the engine over the filesystem
// scanner and loader. A broken config file is downgraded to a warning and
// defaults keep the command operational.
func newApp(ctx context.Context) *app {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("warning: ")+fmt.Sprintf("failed to load config, using defaults: %v", err))
		printIssue(issue.ConfigLoadFailedId)
		cfg = config.DefaultConfig()
	}

	// Config may turn on verbosity even when the flag is absent.
	if cfg.UI.Verbose && !verbose {
		verbose = true
		initLogging()
	}

	locations := searchLocations(cfg)

	engine := discovery.NewEngine(
		suitefs.NewScanner(),
		suitefs.NewLoader(locations),
		discovery.Options{
			SearchLocations:    locations,
			ExcludedPrefixes:   cfg.ExcludedPrefixes,
			SkipNestedArchives: cfg.SkipNestedArchives,
			DisableScan:        cfg.DisableScan,
		},
	)

	return &app{cfg: cfg, engine: engine}
}

// searchLocations assembles the effective location list in precedence order:
// current directory, user suites directory, configured extra paths.
func searchLocations(cfg *config.Config) []string {
	locations := []string{"."}

	if userDir, err := config.SuitesDir(); err == nil {
		if _, statErr := os.Stat(userDir); statErr == nil {
			locations = append(locations, userDir)
		}
	}

	locations = append(locations, cfg.SearchPaths...)
	return locations
}
