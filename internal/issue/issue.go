// SPDX-License-Identifier: MPL-2.0

// Package issue holds user-facing error rendering: actionable errors with
// suggestions, and markdown help cards for well-known failure situations.
package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a well-known issue with a help card.
type Id int

const (
	NoSuitesFoundId Id = iota + 1
	SuiteNotFoundId
	ScanFailedId
	ConfigLoadFailedId
)

// Issue pairs an id with a markdown help card rendered on demand.
type Issue struct {
	id    Id
	mdMsg string
}

// Id returns the issue identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw markdown body.
func (i *Issue) MarkdownMsg() string {
	return i.mdMsg
}

// Render produces the terminal rendering of the help card.
func (i *Issue) Render() (string, error) {
	return render(i.mdMsg)
}

// render is swappable in tests to avoid terminal detection.
var render = func(md string) (string, error) {
	return glamour.Render(md, "auto")
}

var registry = map[Id]*Issue{
	NoSuitesFoundId: {
		id: NoSuitesFoundId,
		mdMsg: `
# No suites found

The scan completed but no suite manifests matched.

## Search locations (in order of precedence):
1. Current directory
2. ~/.suitectl/suites/
3. Paths configured under ` + "`search_paths`" + ` in your config file

## Things you can try:
- Create a manifest next to your tests:
~~~cue
name: "Smoke"
package: "acme.checkout"
tags: ["smoke"]
~~~
  saved as ` + "`acme/checkout/Smoke.suite.cue`" + `
- Check that ` + "`excluded_prefixes`" + ` does not hide your packages
- Check that ` + "`disable_scan`" + ` (or SUITECTL_DISABLE_SCAN) is off`,
	},
	SuiteNotFoundId: {
		id: SuiteNotFoundId,
		mdMsg: `
# Suite not found

An explicitly named suite did not resolve. Names map onto manifest paths:
` + "`acme.checkout.Smoke` → `acme/checkout/Smoke.suite.cue`" + `

## Things you can try:
- Verify the fully-qualified name, including its package
- Run ` + "`suitectl list`" + ` to see every discoverable suite`,
	},
	ScanFailedId: {
		id: ScanFailedId,
		mdMsg: `
# Suite scan failed

The scan over the search locations could not complete. A single malformed
manifest or archive fails the whole scan.

## Things you can try:
- Check the error output for the offending file
- Exclude vendored trees via ` + "`excluded_prefixes`" + `
- Set ` + "`skip_nested_archives: true`" + ` if an archive is at fault`,
	},
	ConfigLoadFailedId: {
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

suitectl keeps working with built-in defaults when the config file is
missing, but a malformed file is reported.

## Things you can try:
- Validate the CUE syntax of your config file
- Remove the file to fall back to defaults`,
	},
}

// Lookup returns the help card for id, or nil when none is registered.
func Lookup(id Id) *Issue {
	return registry[id]
}

// KnownIds lists every registered issue id in ascending order.
func KnownIds() []Id {
	ids := maps.Keys(registry)
	slices.Sort(ids)
	return ids
}
