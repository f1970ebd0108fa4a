package requirement

import "testing"

func TestNameVersion(t *testing.T) {
	tests := []struct {
		in          string
		wantName    string
		wantVersion string
	}{
		{"MyProject1", "MyProject1", ""},
		{"geoip2-2.2.0", "geoip2", "2.2.0"},
		{"foo_bar-2.1", "foo-bar", "2.1"},
		{"django_haystack-dev", "django-haystack", "dev"},
		{"django-haystack-dev", "django-haystack", "dev"},
		{"django-haystack", "django-haystack", ""},
		{"Flask-Celery-py3", "Flask-Celery-py3", ""},
		{"foo-1.0-beta-2", "foo", "1.0-beta-2"},
		{"foo-dev-bar", "foo", "dev-bar"},
		{"develop-1", "develop", "1"},
		{"pkg-2.0_py3", "pkg", "2.0"},
		{"pkg-1.0-py2.7", "pkg", "1.0"},
		{"1.0", "", "1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, version := NameVersion(tt.in)
			if name != tt.wantName || version != tt.wantVersion {
				t.Errorf("NameVersion(%q) = (%q, %q), want (%q, %q)",
					tt.in, name, version, tt.wantName, tt.wantVersion)
			}
		})
	}
}

func TestVcsProjectName(t *testing.T) {
	tests := map[string]string{
		"MyProject1":              "MyProject1",
		"MyProject1/":             "MyProject1",
		"path/MyProject1.git":     "MyProject1",
		"path/MyProject1.git/":    "MyProject1",
		"svn/MyProject1/trunk":    "MyProject1",
		"svn/MyProject1/trunk/":   "MyProject1",
		"/path/MyProject1.git/":   "MyProject1",
		"MyProject1.git/trunk/":   "MyProject1",
		"toastdriven/haystack.go": "haystack.go",
	}
	for in, want := range tests {
		if got := vcsProjectName(in); got != want {
			t.Errorf("vcsProjectName(%q) = %q, want %q", in, got, want)
		}
	}
}
