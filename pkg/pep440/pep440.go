package pep440

import (
	"regexp"
	"strings"
)

var versionRE = regexp.MustCompile(`(?i)^v?` +
	`(?:(?P<epoch>\d+)!)?` +
	`(?P<release>\d+(?:\.\d+)*(?:\.\*)?)` +
	`(?P<pre>[-_.]?(?P<pretype>alpha|a|beta|b|rc|c|preview|pre)(?:[-_.]?(?P<prenum>\d+))?)?` +
	`(?P<post>-(?P<postimplicit>\d+)|[-_.]?(?:post|rev|r)(?:[-_.]?(?P<postnum>\d+))?)?` +
	`(?P<dev>[-_.]?dev(?P<devnum>\d+)?)?` +
	`(?P<local>\+[a-z0-9]+(?:[-_.][a-z0-9]+)*)?$`)

// PreRelease is the pre-release part of a version, e.g. "rc1".
type PreRelease struct {
	Type   string `json:"type"`   // One of "a", "b" or "rc"
	Number string `json:"number"` // Canonical integer
}

// Version is a canonicalized PEP 440 version. Empty strings and a nil Pre
// mark absent parts; a present part always has a non-empty value.
type Version struct {
	Epoch   string      `json:"epoch,omitempty"`
	Release []string    `json:"release"`
	Pre     *PreRelease `json:"pre,omitempty"`
	Post    string      `json:"post,omitempty"`
	Dev     string      `json:"dev,omitempty"`
	Local   string      `json:"local,omitempty"`
}

// Normalize parses s and returns its canonical form. ok is false when s is
// not a PEP 440 version. A leading "v", letter case, separator spelling
// and alternate pre/post/dev spellings are accepted; leading zeros are
// dropped from every number while the number of release segments is kept.
func Normalize(s string) (v Version, ok bool) {
	m := versionRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, false
	}
	g := make(map[string]string, len(m))
	for i, name := range versionRE.SubexpNames() {
		if name != "" {
			g[name] = m[i]
		}
	}

	if e := g["epoch"]; e != "" {
		v.Epoch = canonicalInt(e)
	}
	for _, seg := range strings.Split(g["release"], ".") {
		if seg != "*" {
			seg = canonicalInt(seg)
		}
		v.Release = append(v.Release, seg)
	}
	if g["pre"] != "" {
		v.Pre = &PreRelease{
			Type:   preType(g["pretype"]),
			Number: canonicalInt(g["prenum"]),
		}
	}
	if g["post"] != "" {
		n := g["postimplicit"]
		if n == "" {
			n = g["postnum"]
		}
		v.Post = canonicalInt(n)
	}
	if g["dev"] != "" {
		v.Dev = canonicalInt(g["devnum"])
	}
	if l := g["local"]; l != "" {
		v.Local = strings.NewReplacer("-", ".", "_", ".").Replace(l[1:])
	}
	return v, true
}

// Canonical returns the canonical string form of s, or "" if s is not a
// version.
func Canonical(s string) string {
	v, ok := Normalize(s)
	if !ok {
		return ""
	}
	return v.String()
}

// String renders the version as [E!]R[pre][.postN][.devN][+local].
func (v Version) String() string {
	var b strings.Builder
	if v.Epoch != "" {
		b.WriteString(v.Epoch + "!")
	}
	b.WriteString(strings.Join(v.Release, "."))
	if v.Pre != nil {
		b.WriteString(v.Pre.Type + v.Pre.Number)
	}
	if v.Post != "" {
		b.WriteString(".post" + v.Post)
	}
	if v.Dev != "" {
		b.WriteString(".dev" + v.Dev)
	}
	if v.Local != "" {
		b.WriteString("+" + v.Local)
	}
	return b.String()
}

// Equal reports whether v and o have the same canonical form.
func (v Version) Equal(o Version) bool {
	return v.String() == o.String()
}

// IsPreRelease reports whether v has a pre-release or development part.
func (v Version) IsPreRelease() bool {
	return v.Pre != nil || v.Dev != ""
}

// IsWildcard reports whether the release ends in ".*".
func (v Version) IsWildcard() bool {
	return len(v.Release) > 0 && v.Release[len(v.Release)-1] == "*"
}

func preType(t string) string {
	switch strings.ToLower(t) {
	case "a", "alpha":
		return "a"
	case "b", "beta":
		return "b"
	default:
		return "rc"
	}
}

// canonicalInt strips leading zeros; an empty string counts as zero.
func canonicalInt(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}
