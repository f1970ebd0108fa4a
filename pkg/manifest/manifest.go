// Package manifest reads Python dependency manifests into requirements.
//
// Three formats are supported:
//
//   - requirements*.txt via the pip requirements parser, includes followed
//   - pyproject.toml (PEP 621 and Poetry dependency tables)
//   - poetry.lock (every locked package pinned with ==)
//
// Use [Detect] to pick a parser from a file name:
//
//	p, err := manifest.Detect(path, manifest.Parsers()...)
//	if err != nil {
//	    return err
//	}
//	res, err := p.Parse(path)
package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/matzehuels/pipreq/pkg/requirement"
)

// ManifestParser reads requirements from a manifest file.
type ManifestParser interface {
	// Parse reads the manifest at path.
	Parse(path string) (*Result, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest type identifier (e.g., "poetry.lock").
	Type() string
}

// Result holds what a manifest declared.
type Result struct {
	Type         string                    `json:"type"`                   // Parser type that produced this result
	Project      string                    `json:"project,omitempty"`      // Declared project name, if any
	Requirements []requirement.Requirement `json:"requirements"`           // De-duplicated, in declaration order
	Unrecognized []int                     `json:"unrecognized,omitempty"` // requirements.txt line numbers that parsed to nothing
	Skipped      []string                  `json:"skipped,omitempty"`      // TOML dependency entries that could not be converted
}

// Parsers returns one parser per supported format, reading from the OS
// filesystem.
func Parsers(opts ...requirement.Option) []ManifestParser {
	return []ManifestParser{
		&Requirements{Options: opts},
		&Pyproject{},
		&PoetryLock{},
	}
}

// Detect finds a parser that supports the given file path.
// Returns an error if no parser matches.
func Detect(path string, parsers ...ManifestParser) (ManifestParser, error) {
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unsupported manifest: %s", name)
}
