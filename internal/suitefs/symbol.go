// SPDX-License-Identifier: MPL-2.0

package suitefs

import (
	"suitectl/pkg/suite"
	"suitectl/pkg/suitefile"
)

// manifestSymbol is a scanned manifest awaiting its full load. The header
// comes from the cheap probe performed during the scan; load runs the full
// schema parse on demand.
type manifestSymbol struct {
	header   suitefile.Header
	source   string
	probeErr error
	load     func() (suite.Descriptor, error)
}

// Name returns the fully-qualified name declared by the manifest header.
func (s *manifestSymbol) Name() string {
	return s.header.FullName()
}

// IsSuite reports whether the probed header carries the suite marker. A
// manifest whose probe failed is reported as a suite so the engine's full
// load surfaces the failure instead of silently dropping the file.
func (s *manifestSymbol) IsSuite() bool {
	if s.probeErr != nil {
		return true
	}
	return s.header.IsSuite()
}

// Load performs the initializing load.
func (s *manifestSymbol) Load() (suite.Descriptor, error) {
	if s.probeErr != nil {
		return suite.Descriptor{}, s.probeErr
	}
	return s.load()
}

// parsedDescriptor runs the full parse of manifest content and stamps the
// symbol's source on the resulting descriptor.
func parsedDescriptor(data []byte, source string) (suite.Descriptor, error) {
	sf, err := suitefile.ParseBytes(data, source)
	if err != nil {
		return suite.Descriptor{}, err
	}
	d := sf.Descriptor()
	d.Source = source
	return d, nil
}
