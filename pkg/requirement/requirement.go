package requirement

import (
	"slices"
	"strings"
)

// Relation is a version comparison operator from a requirement specifier.
type Relation string

const (
	EQ         Relation = "=="
	StrEQ      Relation = "==="
	LT         Relation = "<"
	LTE        Relation = "<="
	GT         Relation = ">"
	GTE        Relation = ">="
	NE         Relation = "!="
	Compatible Relation = "~="
)

// Source identifies which grammar produced a requirement.
type Source string

const (
	SourcePlain   Source = "plain"
	SourceVCS     Source = "vcs"
	SourceArchive Source = "archive"
)

// VersionConstraint pairs a relation with a raw, unnormalized version string.
type VersionConstraint struct {
	Relation Relation `json:"relation"`
	Version  string   `json:"version"`
}

// String renders the constraint in specifier form, e.g. ">=1.8".
func (c VersionConstraint) String() string {
	return string(c.Relation) + c.Version
}

// Requirement is a parsed declaration of a wanted package.
//
// Zero values: Extras, Constraints and InstallOptions may be nil, which is
// equivalent to empty. Name is never empty in a Requirement returned by this
// package. Requirements are not modified after they are returned and are
// safe for concurrent reads.
type Requirement struct {
	Name           string              `json:"name"`                      // Package name as written (or derived from a URL)
	Extras         []string            `json:"extras,omitempty"`          // Sorted, de-duplicated extras
	Constraints    []VersionConstraint `json:"constraints,omitempty"`     // Version constraints in source order
	InstallOptions []string            `json:"install_options,omitempty"` // Raw strings handed to the installer
	Source         Source              `json:"source"`                    // Grammar that matched
}

// Equal reports whether r and o describe the same requirement. Names compare
// case-insensitively, every other field exactly.
func (r Requirement) Equal(o Requirement) bool {
	return strings.EqualFold(r.Name, o.Name) &&
		r.Source == o.Source &&
		slices.Equal(r.Extras, o.Extras) &&
		slices.Equal(r.Constraints, o.Constraints) &&
		slices.Equal(r.InstallOptions, o.InstallOptions)
}

// Key returns a string that is identical for two requirements exactly when
// Equal reports true. It is used for order-preserving de-duplication.
func (r Requirement) Key() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(r.Name))
	b.WriteByte(0)
	b.WriteString(string(r.Source))
	b.WriteByte(0)
	b.WriteString(strings.Join(r.Extras, "\x01"))
	b.WriteByte(0)
	for _, c := range r.Constraints {
		b.WriteString(c.String())
		b.WriteByte(1)
	}
	b.WriteByte(0)
	b.WriteString(strings.Join(r.InstallOptions, "\x01"))
	return b.String()
}

// String renders the requirement as name[extras]specs.
func (r Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Extras) > 0 {
		b.WriteString("[" + strings.Join(r.Extras, ",") + "]")
	}
	for i, c := range r.Constraints {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// Pinned returns the version of the first == constraint, if any.
func (r Requirement) Pinned() (string, bool) {
	for _, c := range r.Constraints {
		if c.Relation == EQ {
			return c.Version, true
		}
	}
	return "", false
}

// Dedupe removes value-equal duplicates, keeping first occurrences in order.
func Dedupe(reqs []Requirement) []Requirement {
	if len(reqs) == 0 {
		return reqs
	}
	seen := make(map[string]bool, len(reqs))
	out := make([]Requirement, 0, len(reqs))
	for _, r := range reqs {
		k := r.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

func parseExtras(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	var extras []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			extras = append(extras, e)
		}
	}
	if len(extras) == 0 {
		return nil
	}
	slices.Sort(extras)
	return slices.Compact(extras)
}
