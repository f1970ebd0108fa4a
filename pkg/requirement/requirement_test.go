package requirement

import (
	"slices"
	"testing"
)

func TestRequirement_Equal(t *testing.T) {
	base := Requirement{
		Name:        "Django",
		Extras:      []string{"argon2"},
		Constraints: []VersionConstraint{{GTE, "1.8"}},
		Source:      SourcePlain,
	}

	tests := []struct {
		name  string
		other Requirement
		want  bool
	}{
		{"identical", base, true},
		{"name case", Requirement{Name: "django", Extras: []string{"argon2"}, Constraints: []VersionConstraint{{GTE, "1.8"}}, Source: SourcePlain}, true},
		{"different extras", Requirement{Name: "Django", Constraints: []VersionConstraint{{GTE, "1.8"}}, Source: SourcePlain}, false},
		{"different relation", Requirement{Name: "Django", Extras: []string{"argon2"}, Constraints: []VersionConstraint{{GT, "1.8"}}, Source: SourcePlain}, false},
		{"different source", Requirement{Name: "Django", Extras: []string{"argon2"}, Constraints: []VersionConstraint{{GTE, "1.8"}}, Source: SourceVCS}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
			if got := base.Key() == tt.other.Key(); got != tt.want {
				t.Errorf("Key equality = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequirement_String(t *testing.T) {
	r := Requirement{
		Name:        "requests",
		Extras:      []string{"security", "tests"},
		Constraints: []VersionConstraint{{GTE, "2.8.1"}, {EQ, "2.8.*"}},
	}
	if got, want := r.String(), "requests[security,tests]>=2.8.1,==2.8.*"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRequirement_Pinned(t *testing.T) {
	r := Requirement{Name: "x", Constraints: []VersionConstraint{{NE, "1.0"}, {EQ, "2.0"}}}
	v, ok := r.Pinned()
	if !ok || v != "2.0" {
		t.Errorf("Pinned() = %q, %v, want 2.0, true", v, ok)
	}
	if _, ok := (Requirement{Name: "x"}).Pinned(); ok {
		t.Error("Pinned() on unconstrained requirement reported a version")
	}
}

func TestDedupe(t *testing.T) {
	reqs := []Requirement{
		{Name: "flask", Source: SourcePlain},
		{Name: "numpy", Source: SourcePlain},
		{Name: "Flask", Source: SourcePlain},
		{Name: "flask", Source: SourcePlain, Constraints: []VersionConstraint{{EQ, "2.0"}}},
	}
	got := Dedupe(reqs)
	var names []string
	for _, r := range got {
		names = append(names, r.String())
	}
	want := []string{"flask", "numpy", "flask==2.0"}
	if !slices.Equal(names, want) {
		t.Errorf("Dedupe = %v, want %v", names, want)
	}
}

func TestParseExtras(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"[PDF]", []string{"PDF"}},
		{" [extra1, extra2]", []string{"extra1", "extra2"}},
		{"[tests,security,tests]", []string{"security", "tests"}},
		{"[]", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := parseExtras(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseExtras(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
