// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"suitectl/internal/discovery"
	"suitectl/internal/issue"
)

var (
	resolveFilterTags        []string
	resolveFilterPackages    []string
	resolveFilterNamePrefix  string
	resolveFilterAnnotations []string

	resolveCmd = &cobra.Command{
		Use:   "resolve NAME...",
		Short: "Resolve explicitly named suites without scanning",
		Long: `Resolve one or more fully-qualified suite names directly against the
search locations. No full scan runs: each name maps onto a manifest path,
so resolution stays fast even in large trees. Names that do not resolve
to a concrete suite are dropped silently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd.Context())

			selectors := make([]discovery.Selector, 0, len(args))
			for _, name := range args {
				selectors = append(selectors, discovery.ByName(name))
			}

			result := a.engine.Discover(cmd.Context(), discovery.Request{
				Selectors: selectors,
				Filters:   buildFilters(resolveFilterTags, resolveFilterPackages, resolveFilterNamePrefix, resolveFilterAnnotations),
			})
			if result.Err != nil {
				return reportDiscoveryError(result.Err)
			}

			if len(result.Suites) == 0 {
				fmt.Fprintln(os.Stderr, WarningStyle.Render("none of the requested suites resolved"))
				printIssue(issue.SuiteNotFoundId)
				return &ExitError{Code: 1}
			}

			printSuites(result.Suites)

			if len(result.Suites) < len(args) {
				fmt.Fprintln(os.Stderr, WarningStyle.Render(
					fmt.Sprintf("%d of %d requested suites did not resolve", len(args)-len(result.Suites), len(args))))
			}
			return nil
		},
	}
)

func init() {
	resolveCmd.Flags().StringArrayVar(&resolveFilterTags, "filter-tag", nil, "require a tag on every result (repeatable)")
	resolveCmd.Flags().StringArrayVar(&resolveFilterPackages, "filter-package", nil, "require an exact package on every result (repeatable)")
	resolveCmd.Flags().StringVar(&resolveFilterNamePrefix, "filter-name-prefix", "", "require a name prefix on every result")
	resolveCmd.Flags().StringArrayVar(&resolveFilterAnnotations, "filter-annotation", nil, "require an annotation on every result (repeatable)")
}
