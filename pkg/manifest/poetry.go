package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pipreq/pkg/requirement"
)

// PoetryLock parses poetry.lock files. Every locked package becomes a
// requirement pinned with == to its locked version.
type PoetryLock struct{}

func (p *PoetryLock) Type() string              { return "poetry.lock" }
func (p *PoetryLock) Supports(name string) bool { return name == "poetry.lock" }

type lockFile struct {
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Source  struct {
		Type      string `toml:"type"`
		URL       string `toml:"url"`
		Reference string `toml:"resolved_reference"`
	} `toml:"source"`
}

func (p *PoetryLock) Parse(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lock lockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	res := &Result{Type: p.Type()}
	reqs := make([]requirement.Requirement, 0, len(lock.Packages))
	for _, pkg := range lock.Packages {
		if pkg.Name == "" || pkg.Version == "" {
			res.Skipped = append(res.Skipped, pkg.Name)
			continue
		}
		r := requirement.Requirement{
			Name:        pkg.Name,
			Constraints: []requirement.VersionConstraint{{Relation: requirement.EQ, Version: pkg.Version}},
			Source:      requirement.SourcePlain,
		}
		switch pkg.Source.Type {
		case "git":
			r.Source = requirement.SourceVCS
			r.InstallOptions = []string{"git+" + pkg.Source.URL + "@" + pkg.Source.Reference}
		case "url":
			r.Source = requirement.SourceArchive
			r.InstallOptions = []string{pkg.Source.URL}
		}
		reqs = append(reqs, r)
	}
	res.Requirements = requirement.Dedupe(reqs)
	return res, nil
}
