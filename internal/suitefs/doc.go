// SPDX-License-Identifier: MPL-2.0

// Package suitefs implements the discovery engine's Scanner and Loader
// collaborators on top of the filesystem. Suites are manifest files named
// "<Name>.suite.cue" whose directory path below a search location spells the
// dotted package; archives with a .zip suffix are scanned as nested
// locations unless disabled.
package suitefs
