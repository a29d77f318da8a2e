// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"suitectl/internal/discovery"
	"suitectl/internal/issue"
	"suitectl/pkg/suite"
)

var (
	listSelectNames       []string
	listSelectPackages    []string
	listSelectTags        []string
	listSelectAnnotations []string

	listFilterTags        []string
	listFilterPackages    []string
	listFilterNamePrefix  string
	listFilterAnnotations []string

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List discoverable test suites",
		Long: `List the test suites discoverable under the configured search locations.

Selector flags widen the result (a suite matching any selector is kept);
filter flags narrow it (a suite must pass every filter). With no selector
flags, every non-template suite is listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd.Context())

			result := a.engine.Discover(cmd.Context(), discovery.Request{
				Selectors: buildSelectors(listSelectNames, listSelectPackages, listSelectTags, listSelectAnnotations),
				Filters:   buildFilters(listFilterTags, listFilterPackages, listFilterNamePrefix, listFilterAnnotations),
			})
			if result.Err != nil {
				return reportDiscoveryError(result.Err)
			}

			if len(result.Suites) == 0 {
				printIssue(issue.NoSuitesFoundId)
				return nil
			}

			printSuites(result.Suites)
			return nil
		},
	}
)

func init() {
	listCmd.Flags().StringArrayVar(&listSelectNames, "name", nil, "select suites by fully-qualified name (repeatable)")
	listCmd.Flags().StringArrayVar(&listSelectPackages, "package", nil, "select suites by exact package (repeatable)")
	listCmd.Flags().StringArrayVar(&listSelectTags, "tag", nil, "select suites carrying a tag (repeatable)")
	listCmd.Flags().StringArrayVar(&listSelectAnnotations, "annotation", nil, "select suites by annotation key or key=value (repeatable)")

	listCmd.Flags().StringArrayVar(&listFilterTags, "filter-tag", nil, "require a tag on every result (repeatable)")
	listCmd.Flags().StringArrayVar(&listFilterPackages, "filter-package", nil, "require an exact package on every result (repeatable)")
	listCmd.Flags().StringVar(&listFilterNamePrefix, "filter-name-prefix", "", "require a name prefix on every result")
	listCmd.Flags().StringArrayVar(&listFilterAnnotations, "filter-annotation", nil, "require an annotation on every result (repeatable)")
}

// buildSelectors translates the repeatable selector flags into request
// selectors. Empty input yields nil, which selects everything.
func buildSelectors(names, packages, tags, annotations []string) []discovery.Selector {
	var out []discovery.Selector
	for _, n := range names {
		out = append(out, discovery.ByName(n))
	}
	for _, p := range packages {
		out = append(out, discovery.ByPackage(p))
	}
	for _, t := range tags {
		out = append(out, discovery.ByTag(t))
	}
	for _, a := range annotations {
		out = append(out, discovery.ByAnnotationConstraint(a))
	}
	return out
}

// buildFilters translates the filter flags into request filters.
func buildFilters(tags, packages []string, namePrefix string, annotations []string) []discovery.Filter {
	var out []discovery.Filter
	for _, t := range tags {
		out = append(out, discovery.WithTag(t))
	}
	for _, p := range packages {
		out = append(out, discovery.WithPackage(p))
	}
	if namePrefix != "" {
		out = append(out, discovery.WithNamePrefix(namePrefix))
	}
	for _, a := range annotations {
		out = append(out, discovery.WithAnnotationConstraint(a))
	}
	return out
}

// printSuites renders the suite list grouped under a header line.
func printSuites(suites []suite.Descriptor) {
	fmt.Println(TitleStyle.Render(fmt.Sprintf("Found %d suite(s):", len(suites))))
	for _, d := range suites {
		line := "  " + SuiteStyle.Render(d.Name)
		if len(d.Tags) > 0 {
			line += " " + TagStyle.Render("["+strings.Join(d.Tags, ", ")+"]")
		}
		fmt.Println(line)
		if d.Description != "" {
			fmt.Println("    " + SubtitleStyle.Render(firstLine(d.Description)))
		}
	}
}

// firstLine truncates a multi-line description to its first line for the
// compact listing.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// reportDiscoveryError prints the failure with its suggestions, renders the
// scan-failure help card and maps the error onto a non-zero exit code.
func reportDiscoveryError(err error) error {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+discoveryFailureMessage(err, verbose))
	printIssue(issue.ScanFailedId)
	return &ExitError{Code: 1}
}

// discoveryFailureMessage renders a discovery failure as an actionable error;
// verbose mode appends the suggestion list.
func discoveryFailureMessage(err error, verbose bool) string {
	return issue.Wrap(err, "discover suites", "",
		"check the error output for the offending file",
		"exclude vendored trees via excluded_prefixes in your config file",
	).Format(verbose)
}

// printIssue renders a help card to stderr.
func printIssue(id issue.Id) {
	fprintIssue(os.Stderr, id)
}

// fprintIssue renders a help card, falling back to the raw markdown when the
// renderer cannot initialize.
func fprintIssue(w io.Writer, id issue.Id) {
	card := issue.Lookup(id)
	if card == nil {
		return
	}
	rendered, err := card.Render()
	if err != nil {
		rendered = card.MarkdownMsg()
	}
	fmt.Fprintln(w, rendered)
}
