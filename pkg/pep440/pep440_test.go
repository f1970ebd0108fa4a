package pep440

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalize_Canonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// Plain forms
		{"2.5a20", "2.5a20"},
		{"0.1.0.dev0", "0.1.0.dev0"},
		{"0.2.3", "0.2.3"},
		{"0.5.post6", "0.5.post6"},
		{"1.9rc1", "1.9rc1"},
		{"1!1", "1!1"},
		{"1.0b1.dev3", "1.0b1.dev3"},
		{"0.1.*", "0.1.*"},
		{"1.0+local.version.10", "1.0+local.version.10"},

		// Pre-release spellings
		{"1.9RC1", "1.9rc1"},
		{"2.5.a20", "2.5a20"},
		{"2.5.a.20", "2.5a20"},
		{"2.5-a20", "2.5a20"},
		{"2.5-a_20", "2.5a20"},
		{"2.5_a20", "2.5a20"},
		{"2.5_a-20", "2.5a20"},
		{"2.5alpha20", "2.5a20"},
		{"2.5.alpha.20", "2.5a20"},
		{"2.5-alpha_20", "2.5a20"},
		{"2.5beta20", "2.5b20"},
		{"2.5.beta.20", "2.5b20"},
		{"2.5_beta-20", "2.5b20"},
		{"2.5c20", "2.5rc20"},
		{"2.5.c.20", "2.5rc20"},
		{"2.5pre20", "2.5rc20"},
		{"2.5-pre_20", "2.5rc20"},
		{"2.5preview20", "2.5rc20"},
		{"2.5.preview.20", "2.5rc20"},
		{"2.5_preview-20", "2.5rc20"},
		{"2.5a", "2.5a0"},
		{"2.5.a", "2.5a0"},
		{"2.5-a", "2.5a0"},
		{"2.5_a", "2.5a0"},

		// Post-release spellings
		{"2.5-post20", "2.5.post20"},
		{"2.5-post.20", "2.5.post20"},
		{"2.5_post_20", "2.5.post20"},
		{"2.5post-20", "2.5.post20"},
		{"2.5.r20", "2.5.post20"},
		{"2.5r-20", "2.5.post20"},
		{"2.5.rev20", "2.5.post20"},
		{"2.5_rev_20", "2.5.post20"},
		{"2.5.post", "2.5.post0"},
		{"2.5post", "2.5.post0"},
		{"2.5-20", "2.5.post20"},
		{"1.0.post1", "1.0.post1"},
		{"1.0-1", "1.0.post1"},
		{"1.0.rev1", "1.0.post1"},

		// Development releases
		{"2.5-dev20", "2.5.dev20"},
		{"2.5_dev20", "2.5.dev20"},
		{"2.5dev20", "2.5.dev20"},
		{"2.5-dev", "2.5.dev0"},
		{"2.5dev", "2.5.dev0"},

		// Local versions
		{"2.5+local-version", "2.5+local.version"},
		{"2.5+local_version", "2.5+local.version"},

		// Leading v, zeros and epochs
		{"v2.5a20", "2.5a20"},
		{"V1.0", "1.0"},
		{"v1!1", "1!1"},
		{"01.2", "1.2"},
		{"1.00.0300", "1.0.300"},
		{"007!1.0", "7!1.0"},
		{"1.0a01.post02.dev03", "1.0a1.post2.dev3"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, ok := Normalize(tt.in)
			if !ok {
				t.Fatalf("Normalize(%q) reported no version", tt.in)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	for _, in := range []string{"", "dev", "version", "1.0-1-2", "1.0+", "1.0+local..x", "1..0", "a1.0", "1.0 beta"} {
		if v, ok := Normalize(in); ok {
			t.Errorf("Normalize(%q) = %q, want no version", in, v)
		}
	}
}

func TestNormalize_Structure(t *testing.T) {
	v, ok := Normalize("1!2.03.*")
	if !ok {
		t.Fatal("Normalize failed")
	}
	want := Version{Epoch: "1", Release: []string{"2", "3", "*"}}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("Normalize = %+v, want %+v", v, want)
	}
	if !v.IsWildcard() {
		t.Error("IsWildcard() = false, want true")
	}
}

func TestNormalize_Properties(t *testing.T) {
	mustNormalize := func(s string) Version {
		t.Helper()
		v, ok := Normalize(s)
		if !ok {
			t.Fatalf("Normalize(%q) reported no version", s)
		}
		return v
	}

	t.Run("idempotent", func(t *testing.T) {
		for _, s := range []string{"v01!2.0-a_5.post-3-dev4+Ubuntu-1", "1.0-1", "2.5.*", "1.0RC"} {
			v := mustNormalize(s)
			if again := mustNormalize(v.String()); !reflect.DeepEqual(v, again) {
				t.Errorf("Normalize(%q) = %+v, renormalized %+v", s, v, again)
			}
		}
	})

	t.Run("leading zeros", func(t *testing.T) {
		if !reflect.DeepEqual(mustNormalize("01.2"), mustNormalize("1.2")) {
			t.Error("01.2 and 1.2 differ")
		}
	})

	t.Run("segment count kept", func(t *testing.T) {
		if mustNormalize("1.0").Equal(mustNormalize("1.0.0")) {
			t.Error("1.0 and 1.0.0 compare equal")
		}
	})

	t.Run("pre alias", func(t *testing.T) {
		a, b := mustNormalize("1.0alpha1"), mustNormalize("1.0a1")
		if !reflect.DeepEqual(a.Pre, b.Pre) || *a.Pre != (PreRelease{Type: "a", Number: "1"}) {
			t.Errorf("pre = %+v and %+v", a.Pre, b.Pre)
		}
		if !a.IsPreRelease() {
			t.Error("IsPreRelease() = false, want true")
		}
	})

	t.Run("post alias", func(t *testing.T) {
		for _, s := range []string{"1.0.post1", "1.0-1", "1.0.rev1"} {
			if got := mustNormalize(s).String(); got != "1.0.post1" {
				t.Errorf("Normalize(%q) = %q, want 1.0.post1", s, got)
			}
		}
	})
}

func TestCanonical(t *testing.T) {
	if got := Canonical("2.5-a_20"); got != "2.5a20" {
		t.Errorf("Canonical = %q, want 2.5a20", got)
	}
	if got := Canonical("not a version"); got != "" {
		t.Errorf("Canonical(invalid) = %q, want empty", got)
	}
}

func TestVersion_JSON(t *testing.T) {
	v, _ := Normalize("1.0rc2+abc")
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"release":["1","0"],"pre":{"type":"rc","number":"2"},"local":"abc"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}
