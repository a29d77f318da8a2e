// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"suitectl/internal/discovery"
	"suitectl/internal/issue"
	"suitectl/pkg/suite"
)

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a single suite's details",
	Long: `Show the full details of one suite: package, tags, annotations, source
location and its markdown description rendered for the terminal. The name
is resolved directly, no full scan runs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())

		result := a.engine.Discover(cmd.Context(), discovery.Request{
			Selectors: []discovery.Selector{discovery.ByName(args[0])},
		})
		if result.Err != nil {
			return reportDiscoveryError(result.Err)
		}

		if len(result.Suites) == 0 {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("suite not found: ")+args[0])
			printIssue(issue.SuiteNotFoundId)
			return &ExitError{Code: 1}
		}

		printSuiteDetails(result.Suites[0])
		return nil
	},
}

// printSuiteDetails renders one suite's metadata followed by its rendered
// description.
func printSuiteDetails(d suite.Descriptor) {
	fmt.Println(TitleStyle.Render(d.Name))
	if d.Package != "" {
		fmt.Println(SubtitleStyle.Render("package: ") + d.Package)
	}
	if len(d.Tags) > 0 {
		fmt.Println(SubtitleStyle.Render("tags:    ") + TagStyle.Render(strings.Join(d.Tags, ", ")))
	}
	if len(d.Annotations) > 0 {
		keys := make([]string, 0, len(d.Annotations))
		for k := range d.Annotations {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, k+"="+d.Annotations[k])
		}
		fmt.Println(SubtitleStyle.Render("annotations: ") + strings.Join(pairs, ", "))
	}
	if d.Source != "" {
		fmt.Println(SubtitleStyle.Render("source:  ") + d.Source)
	}

	if d.Description == "" {
		return
	}
	rendered, err := glamour.Render(d.Description, "auto")
	if err != nil {
		rendered = d.Description
	}
	fmt.Println(rendered)
}
