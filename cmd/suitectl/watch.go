// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"suitectl/internal/config"
	"suitectl/internal/discovery"
	"suitectl/internal/suitefs"
	"suitectl/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-discover suites when manifests change",
	Long: `Watch every search location for suite manifest changes and print the
refreshed suite list after each change burst. Edits within the debounce
window are coalesced into a single re-discovery.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		locations := searchLocations(a.cfg)

		w, err := watch.New(watch.Config{
			Roots:    locations,
			Patterns: []string{"**/*.suite.cue", "**/*.zip"},
			Debounce: time.Duration(a.cfg.Watch.DebounceMS) * time.Millisecond,
			OnChange: func(ctx context.Context, changed []string) error {
				fmt.Println(SubtitleStyle.Render("changed: " + strings.Join(changed, ", ")))
				rediscover(ctx, a.cfg)
				return nil
			},
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("watch failed: ")+err.Error())
			return &ExitError{Code: 1}
		}

		fmt.Println(TitleStyle.Render("Watching for suite changes") +
			SubtitleStyle.Render(" (press Ctrl+C to stop)"))
		rediscover(cmd.Context(), a.cfg)

		return w.Run(cmd.Context())
	},
}

// rediscover runs an unselected discovery over a fresh engine so the scan
// cache reflects the filesystem as of this change, then prints the result.
func rediscover(ctx context.Context, cfg *config.Config) {
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

	result := engine.Discover(ctx, discovery.Request{})
	if result.Err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("discovery failed: ")+result.Err.Error())
		return
	}
	if len(result.Suites) == 0 {
		fmt.Println(SubtitleStyle.Render("no suites found"))
		return
	}
	printSuites(result.Suites)
}
