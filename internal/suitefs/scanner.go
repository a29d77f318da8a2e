// SPDX-License-Identifier: MPL-2.0

package suitefs

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"suitectl/internal/discovery"
	"suitectl/pkg/suite"
	"suitectl/pkg/suitefile"
)

// archiveSuffix marks files treated as nested archives during a scan.
const archiveSuffix = ".zip"

// Scanner enumerates suite manifests under search locations. It implements
// discovery.Scanner.
type Scanner struct{}

// NewScanner creates a filesystem scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan walks every location and returns a symbol per discovered manifest.
// Locations that do not exist are skipped with a debug log; unreadable
// directory entries are skipped with a warning. A malformed archive is fatal
// to the whole scan.
func (s *Scanner) Scan(ctx context.Context, locations []string, opts discovery.ScanOptions) ([]discovery.Symbol, error) {
	var symbols []discovery.Symbol

	for _, loc := range locations {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("suite scan canceled: %w", err)
		}

		absLoc, err := filepath.Abs(loc)
		if err != nil {
			slog.Warn("failed to resolve search location", "location", loc, "error", err)
			continue
		}
		if _, statErr := os.Stat(absLoc); os.IsNotExist(statErr) {
			slog.Debug("search location does not exist", "location", absLoc)
			continue
		}

		locSymbols, err := s.scanLocation(absLoc, opts)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, locSymbols...)
	}

	return symbols, nil
}

// scanLocation walks one search location, collecting manifests and, unless
// disabled, descending into .zip archives.
func (s *Scanner) scanLocation(root string, opts discovery.ScanOptions) ([]discovery.Symbol, error) {
	var symbols []discovery.Symbol

	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Inaccessible entries are common (permissions) and do not abort
			// the scan.
			slog.Warn("skipping inaccessible path during suite scan", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		switch {
		case strings.HasSuffix(name, suitefile.Suffix):
			sym := s.fileSymbol(root, path)
			if sym != nil && !excludedPackage(packageOf(sym), opts.ExcludedPrefixes) {
				symbols = append(symbols, sym)
			}
			return nil

		case strings.HasSuffix(name, archiveSuffix):
			if opts.SkipNestedArchives {
				slog.Debug("skipping nested archive", "archive", path)
				return nil
			}
			archiveSymbols, archiveErr := s.scanArchive(path, opts)
			if archiveErr != nil {
				return archiveErr
			}
			symbols = append(symbols, archiveSymbols...)
			return nil

		default:
			return nil
		}
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to scan search location %s: %w", root, walkErr)
	}

	return symbols, nil
}

// fileSymbol probes one on-disk manifest. A probe failure still yields a
// symbol; the failure surfaces when the engine performs the full load.
func (s *Scanner) fileSymbol(root, path string) discovery.Symbol {
	header, err := suitefile.Probe(path)
	if err != nil {
		return &manifestSymbol{source: path, probeErr: err}
	}

	return &manifestSymbol{
		header: header,
		source: path,
		load: func() (suite.Descriptor, error) {
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return suite.Descriptor{}, fmt.Errorf("failed to read suite manifest at %s: %w", path, readErr)
			}
			return parsedDescriptor(data, path)
		},
	}
}

// scanArchive opens a zip archive and probes every manifest entry inside it.
// Entry content is read up front so symbol loads never reopen the archive.
func (s *Scanner) scanArchive(archivePath string, opts discovery.ScanOptions) ([]discovery.Symbol, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer r.Close()

	var symbols []discovery.Symbol
	for _, entry := range r.File {
		if !strings.HasSuffix(entry.Name, suitefile.Suffix) {
			continue
		}

		source := archivePath + "!" + entry.Name

		rc, openErr := entry.Open()
		if openErr != nil {
			return nil, fmt.Errorf("failed to open archive entry %s: %w", source, openErr)
		}
		data, readErr := io.ReadAll(rc)
		rc.Close()
		if readErr != nil {
			return nil, fmt.Errorf("failed to read archive entry %s: %w", source, readErr)
		}

		sym := s.bytesSymbol(data, source)
		if !excludedPackage(packageOf(sym), opts.ExcludedPrefixes) {
			symbols = append(symbols, sym)
		}
	}

	return symbols, nil
}

// bytesSymbol probes manifest content held in memory (archive entries).
func (s *Scanner) bytesSymbol(data []byte, source string) discovery.Symbol {
	header, err := suitefile.ProbeBytes(data, source)
	if err != nil {
		return &manifestSymbol{source: source, probeErr: err}
	}

	return &manifestSymbol{
		header: header,
		source: source,
		load: func() (suite.Descriptor, error) {
			return parsedDescriptor(data, source)
		},
	}
}

// packageOf extracts the dotted package from a scanned symbol.
func packageOf(sym discovery.Symbol) string {
	ms, ok := sym.(*manifestSymbol)
	if !ok {
		return ""
	}
	return ms.header.Package
}

// excludedPackage reports whether pkg falls under any excluded dotted prefix.
// A prefix matches the package itself or any subpackage of it.
func excludedPackage(pkg string, prefixes []string) bool {
	if pkg == "" {
		return false
	}
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		if pkg == prefix || strings.HasPrefix(pkg, prefix+".") {
			return true
		}
	}
	return false
}
