// SPDX-License-Identifier: MPL-2.0

// Package main is the entry point for the suitectl CLI.
package main

import (
	cmd "suitectl/cmd/suitectl"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.SetBuildInfo(version, commit, date)
	cmd.Execute()
}
