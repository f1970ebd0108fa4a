package requirement

import "strings"

// relations is ordered so that longer operators win over their prefixes.
var relations = []Relation{StrEQ, EQ, LTE, GTE, LT, GT, Compatible, NE}

// ParseVersionSpecs parses a comma-separated specifier list such as
// ">=1.8, <2.0" into constraints, preserving input order. Tokens without a
// recognized operator, or without a version after it, are dropped. Versions
// are kept exactly as written.
func ParseVersionSpecs(s string) []VersionConstraint {
	var out []VersionConstraint
	for _, tok := range strings.Split(s, ",") {
		if c, ok := parseSpec(strings.TrimSpace(tok)); ok {
			out = append(out, c)
		}
	}
	return out
}

func parseSpec(tok string) (VersionConstraint, bool) {
	for _, rel := range relations {
		if !strings.HasPrefix(tok, string(rel)) {
			continue
		}
		v := strings.TrimLeft(tok[len(rel):], " \t")
		if v == "" {
			return VersionConstraint{}, false
		}
		return VersionConstraint{Relation: rel, Version: v}, true
	}
	return VersionConstraint{}, false
}
