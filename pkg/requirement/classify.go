package requirement

import (
	"regexp"
	"strings"
)

const (
	nameExpr   = `[A-Za-z0-9][A-Za-z0-9._-]*`
	extrasExpr = `\[[^\]]*\]`
	specExpr   = `(?:===|==|<=|>=|<|>|~=|!=)\s*[^\s,;=<>!~][^\s,;]*`
	optionExpr = `--(?:global|install)-option(?:=|\s+)(?:"[^"]*"|\S+)`
)

var (
	commentRE = regexp.MustCompile(`(?:^|\s)#.*$`)

	githubArchiveRE = regexp.MustCompile(`^https?://github\.com/[^/\s]+/([^/\s]+)/archive/\S+$`)
	gitlabArchiveRE = regexp.MustCompile(`^https?://gitlab\.com/[^/\s]+/([^/\s]+)/repository/\S+$`)
	archiveRE       = regexp.MustCompile(`^https?://\S+/([^/\s#]+?)(?:\.tar\.gz|\.zip)` +
		`(?:#(?:md5|sha1|sha224|sha256|sha384|sha512)=[0-9a-fA-F]+)?$`)

	vcsRE = regexp.MustCompile(`^(?:--src\s+\S+\s+)?(?:(?:-e|--editable)\s+)?` +
		`(?:git\+[^\s@/:]+@[^\s:/]+:|bzr\+lp:|(?:bzr|git|hg|svn)(?:\+[A-Za-z][A-Za-z0-9+.-]*)?://(?:[^\s@/]+@)?[^\s@/#]*/)` +
		`(?P<path>[^\s@#]+)` +
		`(?:@[^\s#]+)?` +
		`(?:#(?:egg=(?P<egg>` + nameExpr + `)(?P<extras>` + extrasExpr + `)?(?:&subdirectory=[^\s&#]+)?` +
		`|subdirectory=[^\s&#]+&egg=(?P<egg2>` + nameExpr + `)(?P<extras2>` + extrasExpr + `)?))?` +
		`(?:\s+--src\s+\S+)?$`)

	plainRE = regexp.MustCompile(`^(?P<name>[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*` +
		`(?P<extras>\[\s*(?:` + nameExpr + `(?:\s*,\s*` + nameExpr + `)*)?\s*\])?\s*` +
		`(?P<specs>` + specExpr + `(?:\s*,\s*` + specExpr + `)*)?` +
		`(?P<opts>(?:\s+` + optionExpr + `)*)$`)
	optionRE = regexp.MustCompile(optionExpr)
)

// StripComment removes a trailing comment and surrounding whitespace. A '#'
// only starts a comment at the beginning of the line or after whitespace, so
// URL fragments such as "#egg=" and "#md5=" survive.
func StripComment(line string) string {
	return strings.TrimSpace(commentRE.ReplaceAllString(line, ""))
}

// ParseLine classifies a single logical line. The grammars are tried in a
// fixed order: GitHub archive, GitLab archive, generic archive, VCS URL and
// plain requirement; the first whole-line match wins. Lines that match none
// of them, including blank lines, comments, option lines and include
// directives, yield ok == false.
func ParseLine(line string) (Requirement, bool) {
	line = StripComment(line)
	if line == "" {
		return Requirement{}, false
	}
	for _, classify := range classifiers {
		if r, ok := classify(line); ok {
			return r, true
		}
	}
	return Requirement{}, false
}

var classifiers = []func(string) (Requirement, bool){
	hostedArchive(githubArchiveRE),
	hostedArchive(gitlabArchiveRE),
	parseArchive,
	parseVCS,
	parsePlain,
}

func hostedArchive(re *regexp.Regexp) func(string) (Requirement, bool) {
	return func(line string) (Requirement, bool) {
		m := re.FindStringSubmatch(line)
		if m == nil {
			return Requirement{}, false
		}
		return Requirement{
			Name:           m[1],
			InstallOptions: strings.Fields(line),
			Source:         SourceArchive,
		}, true
	}
}

func parseArchive(line string) (Requirement, bool) {
	m := archiveRE.FindStringSubmatch(line)
	if m == nil {
		return Requirement{}, false
	}
	return fromCandidate(m[1], "", SourceArchive, line)
}

func parseVCS(line string) (Requirement, bool) {
	m := vcsRE.FindStringSubmatch(line)
	if m == nil {
		return Requirement{}, false
	}
	g := groups(vcsRE, m)

	egg, extras := g["egg"], g["extras"]
	if egg == "" {
		egg, extras = g["egg2"], g["extras2"]
	}
	candidate := egg
	if candidate == "" {
		candidate = vcsProjectName(g["path"])
	}
	return fromCandidate(candidate, extras, SourceVCS, line)
}

func fromCandidate(candidate, extras string, src Source, line string) (Requirement, bool) {
	name, version := NameVersion(candidate)
	if name == "" {
		return Requirement{}, false
	}
	r := Requirement{
		Name:           name,
		Extras:         parseExtras(extras),
		InstallOptions: strings.Fields(line),
		Source:         src,
	}
	if version != "" {
		r.Constraints = []VersionConstraint{{Relation: EQ, Version: version}}
	}
	return r, true
}

func parsePlain(line string) (Requirement, bool) {
	m := plainRE.FindStringSubmatch(line)
	if m == nil {
		return Requirement{}, false
	}
	g := groups(plainRE, m)

	r := Requirement{
		Name:        g["name"],
		Extras:      parseExtras(g["extras"]),
		Constraints: ParseVersionSpecs(g["specs"]),
		Source:      SourcePlain,
	}
	if opts := g["opts"]; opts != "" {
		spec := strings.TrimSpace(strings.TrimSuffix(line, opts))
		r.InstallOptions = append([]string{spec}, optionRE.FindAllString(opts, -1)...)
	}
	return r, true
}

func groups(re *regexp.Regexp, m []string) map[string]string {
	out := make(map[string]string, len(m))
	for i, name := range re.SubexpNames() {
		if name != "" && i < len(m) {
			out[name] = m[i]
		}
	}
	return out
}
