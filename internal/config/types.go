// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Config is the decoded suitectl configuration.
	Config struct {
		// SearchPaths are extra search locations for suite manifests, on top
		// of the current directory and the user suites directory.
		SearchPaths []string `mapstructure:"search_paths"`
		// ExcludedPrefixes are dotted package prefixes skipped by the full
		// scan. Defaults cover vendored trees.
		ExcludedPrefixes []string `mapstructure:"excluded_prefixes"`
		// SkipNestedArchives disables scanning inside .zip archives.
		SkipNestedArchives bool `mapstructure:"skip_nested_archives"`
		// DisableScan turns off the full scan entirely; explicit-name
		// resolution keeps working. Also settable via SUITECTL_DISABLE_SCAN.
		DisableScan bool `mapstructure:"disable_scan"`
		// UI holds presentation settings.
		UI UIConfig `mapstructure:"ui"`
		// Watch holds settings for `suitectl watch`.
		Watch WatchConfig `mapstructure:"watch"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose enables verbose output.
		Verbose bool `mapstructure:"verbose"`
	}

	// WatchConfig holds file-watching settings.
	WatchConfig struct {
		// DebounceMS is the quiet period in milliseconds before a change batch
		// triggers re-discovery.
		DebounceMS int `mapstructure:"debounce_ms"`
	}
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		SearchPaths:      []string{},
		ExcludedPrefixes: []string{"vendor", "third_party"},
		Watch:            WatchConfig{DebounceMS: 500},
	}
}
