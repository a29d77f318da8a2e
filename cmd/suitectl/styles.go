// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared across all CLI output, tuned for dark terminals.
const (
	// ColorPrimary is purple - titles and primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - subtitles and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - positive outcomes.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - caution states.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - suite names and interactive elements.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// SuiteStyle is for fully-qualified suite names.
	SuiteStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// TagStyle is for suite tags.
	TagStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)
