package requirement

import (
	"regexp"
	"strings"
)

var pyTagRE = regexp.MustCompile(`-?py\d+(?:\.\d+)*`)

// NameVersion splits an egg name, VCS path segment or archive stem such as
// "django_haystack-dev" or "geoip2-2.2.0" into a package name and version.
//
// Tokens are separated by '-'. The first token that starts with a digit or
// is exactly "dev" begins the version; it and every following token belong
// to the version even if they look like name parts. Underscores become
// hyphens in both halves and a Python tag ("py2.7", "-py3") is removed from
// the version. version is empty when no version token was found.
func NameVersion(s string) (name, version string) {
	var names, versions []string
	inVersion := false
	for _, tok := range strings.Split(s, "-") {
		if !inVersion && (tok == "dev" || startsWithDigit(tok)) {
			inVersion = true
		}
		if inVersion {
			versions = append(versions, tok)
		} else {
			names = append(names, tok)
		}
	}

	name = normalizeName(strings.Join(names, "-"))
	if v := strings.Join(versions, "-"); v != "" {
		version = pyTagRE.ReplaceAllString(normalizeName(v), "")
	}
	return name, version
}

func normalizeName(s string) string {
	return strings.ReplaceAll(s, "_", "-")
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// vcsProjectName reduces a VCS URL path to the candidate handed to
// NameVersion: trailing "/", "/trunk" and ".git" are removed in any
// combination and the last path segment is kept.
func vcsProjectName(path string) string {
	for {
		trimmed := strings.TrimSuffix(path, "/")
		trimmed = strings.TrimSuffix(trimmed, "/trunk")
		trimmed = strings.TrimSuffix(trimmed, ".git")
		if trimmed == path {
			break
		}
		path = trimmed
	}
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return path
}
