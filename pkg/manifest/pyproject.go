package manifest

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pipreq/pkg/requirement"
)

// Pyproject parses pyproject.toml. It reads PEP 621 project.dependencies and
// project.optional-dependencies, then Poetry's tool.poetry.dependencies and
// dependency groups. Environment markers after ";" are dropped before each
// PEP 508 string is parsed.
type Pyproject struct{}

func (p *Pyproject) Type() string              { return "pyproject.toml" }
func (p *Pyproject) Supports(name string) bool { return name == "pyproject.toml" }

type pyprojectFile struct {
	Project struct {
		Name                 string              `toml:"name"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name            string         `toml:"name"`
			Dependencies    map[string]any `toml:"dependencies"`
			DevDependencies map[string]any `toml:"dev-dependencies"`
			Group           map[string]struct {
				Dependencies map[string]any `toml:"dependencies"`
			} `toml:"group"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func (p *Pyproject) Parse(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc pyprojectFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	res := &Result{Type: p.Type(), Project: doc.Project.Name}
	if res.Project == "" {
		res.Project = doc.Tool.Poetry.Name
	}

	var reqs []requirement.Requirement
	addPEP508 := func(specs []string) {
		for _, s := range specs {
			if r, ok := parsePEP508(s); ok {
				reqs = append(reqs, r)
			} else {
				res.Skipped = append(res.Skipped, s)
			}
		}
	}
	addPoetry := func(deps map[string]any) {
		for _, name := range sortedKeys(deps) {
			if strings.EqualFold(name, "python") {
				continue
			}
			if r, ok := poetryRequirement(name, deps[name]); ok {
				reqs = append(reqs, r)
			} else {
				res.Skipped = append(res.Skipped, name)
			}
		}
	}

	addPEP508(doc.Project.Dependencies)
	for _, extra := range sortedKeys(doc.Project.OptionalDependencies) {
		addPEP508(doc.Project.OptionalDependencies[extra])
	}
	addPoetry(doc.Tool.Poetry.Dependencies)
	addPoetry(doc.Tool.Poetry.DevDependencies)
	for _, group := range sortedKeys(doc.Tool.Poetry.Group) {
		addPoetry(doc.Tool.Poetry.Group[group].Dependencies)
	}

	res.Requirements = requirement.Dedupe(reqs)
	return res, nil
}

func parsePEP508(s string) (requirement.Requirement, bool) {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return requirement.ParseLine(strings.TrimSpace(s))
}

// poetryRequirement converts one entry of a Poetry dependency table. The
// value is either a constraint string or a table with version, extras, git,
// url or path keys.
func poetryRequirement(name string, v any) (requirement.Requirement, bool) {
	r := requirement.Requirement{Name: name, Source: requirement.SourcePlain}
	var constraint string

	switch val := v.(type) {
	case string:
		constraint = val
	case map[string]any:
		if s, ok := val["version"].(string); ok {
			constraint = s
		}
		if extras, ok := val["extras"].([]any); ok {
			for _, e := range extras {
				if s, ok := e.(string); ok {
					r.Extras = append(r.Extras, s)
				}
			}
			sort.Strings(r.Extras)
		}
		switch {
		case val["git"] != nil:
			r.Source = requirement.SourceVCS
			r.InstallOptions = []string{"git+" + fmt.Sprint(val["git"]) + gitRef(val)}
		case val["url"] != nil:
			r.Source = requirement.SourceArchive
			r.InstallOptions = []string{fmt.Sprint(val["url"])}
		}
	case []any:
		// Multiple-constraint dependencies; the first entry is taken.
		if len(val) == 0 {
			return r, false
		}
		return poetryRequirement(name, val[0])
	default:
		return r, false
	}

	cs, ok := poetryConstraints(constraint)
	if !ok {
		return r, false
	}
	r.Constraints = cs
	return r, true
}

func gitRef(table map[string]any) string {
	for _, k := range []string{"rev", "tag", "branch"} {
		if s, ok := table[k].(string); ok && s != "" {
			return "@" + s
		}
	}
	return ""
}

// poetryConstraints translates Poetry's constraint syntax into specifiers:
// "*" is unconstrained, "^" and "~" expand to a lower and upper bound, a
// bare version pins with ==, and pip operators pass through.
func poetryConstraints(s string) ([]requirement.VersionConstraint, bool) {
	var out []requirement.VersionConstraint
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "" || part == "*":
			continue
		case strings.HasPrefix(part, "^"):
			lo, hi, ok := bounds(strings.TrimSpace(part[1:]), caretIndex)
			if !ok {
				return nil, false
			}
			out = append(out, requirement.VersionConstraint{Relation: requirement.GTE, Version: lo},
				requirement.VersionConstraint{Relation: requirement.LT, Version: hi})
		case strings.HasPrefix(part, "~") && !strings.HasPrefix(part, "~="):
			lo, hi, ok := bounds(strings.TrimSpace(part[1:]), tildeIndex)
			if !ok {
				return nil, false
			}
			out = append(out, requirement.VersionConstraint{Relation: requirement.GTE, Version: lo},
				requirement.VersionConstraint{Relation: requirement.LT, Version: hi})
		case strings.ContainsAny(part[:1], "<>=!~"):
			cs := requirement.ParseVersionSpecs(part)
			if len(cs) == 0 {
				return nil, false
			}
			out = append(out, cs...)
		default:
			out = append(out, requirement.VersionConstraint{Relation: requirement.EQ, Version: part})
		}
	}
	return out, true
}

// caretIndex bumps the first non-zero component, or the last one when all
// are zero.
func caretIndex(parts []int) int {
	for i, n := range parts {
		if n != 0 {
			return i
		}
	}
	return len(parts) - 1
}

// tildeIndex bumps the minor component when given, else the major.
func tildeIndex(parts []int) int {
	if len(parts) > 1 {
		return 1
	}
	return 0
}

func bounds(v string, pick func([]int) int) (lo, hi string, ok bool) {
	fields := strings.Split(v, ".")
	parts := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return "", "", false
		}
		parts[i] = n
	}

	idx := pick(parts)
	upper := make([]string, len(parts))
	for i := range parts {
		switch {
		case i < idx:
			upper[i] = strconv.Itoa(parts[i])
		case i == idx:
			upper[i] = strconv.Itoa(parts[i] + 1)
		default:
			upper[i] = "0"
		}
	}
	return v, strings.Join(upper, "."), true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
