// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for suitectl.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Build metadata set via SetBuildInfo from main.
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"

	// verbose enables verbose output and debug logging.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "suitectl",
		Short: "Discover executable test suites",
		Long: TitleStyle.Render("suitectl") + SubtitleStyle.Render(" - declarative test-suite discovery") + `

suitectl resolves which test suites to run from suite manifests
(*.suite.cue files) found under configured search locations. Requests
combine selectors (OR) and filters (AND); explicitly named suites are
resolved directly without scanning.

` + SubtitleStyle.Render("Examples:") + `
  suitectl list                         List every discoverable suite
  suitectl list --tag smoke             Suites carrying the smoke tag
  suitectl resolve acme.checkout.Smoke  Resolve explicit names (no scan)
  suitectl show acme.checkout.Smoke     Render a suite's description
  suitectl watch                        Re-discover on manifest changes`,
	}
)

// ExitError carries a specific process exit code through fang.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/suitectl/config.cue)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(watchCmd)
}

// SetBuildInfo records the ldflags-injected build metadata.
func SetBuildInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

func versionString() string {
	if buildVersion == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate)
}

// Execute runs the root command through fang for styled output and signal
// handling. It is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initLogging installs a charmbracelet handler as the slog default so the
// internals' structured logs share the CLI's styling.
func initLogging() {
	opts := charmlog.Options{ReportTimestamp: false}
	handler := charmlog.NewWithOptions(os.Stderr, opts)
	if verbose {
		handler.SetLevel(charmlog.DebugLevel)
	} else {
		handler.SetLevel(charmlog.WarnLevel)
	}
	slog.SetDefault(slog.New(handler))
}
