package requirement

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"
)

func names(reqs []Requirement) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.String()
	}
	return out
}

func TestParser_ParseFile_Cycle(t *testing.T) {
	fsys := fstest.MapFS{
		"app.txt":  {Data: []byte("-r base.txt\nflask\n")},
		"base.txt": {Data: []byte("-r app.txt\nrequests\n")},
	}

	var visits []Visit
	p := NewParser(
		WithFileSystem(FS(fsys)),
		WithObserver(func(v Visit) { visits = append(visits, v) }),
	)

	reqs, err := p.ParseFile("app.txt")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if got, want := names(reqs), []string{"requests", "flask"}; !slices.Equal(got, want) {
		t.Errorf("requirements = %v, want %v", got, want)
	}

	parsed := map[string]int{}
	repeats := 0
	for _, v := range visits {
		if v.Repeat {
			repeats++
			continue
		}
		parsed[v.Path]++
	}
	if parsed["app.txt"] != 1 || parsed["base.txt"] != 1 {
		t.Errorf("files parsed = %v, want each exactly once", parsed)
	}
	if repeats != 1 {
		t.Errorf("repeat visits = %d, want 1", repeats)
	}
}

func TestParser_ParseFile_Nested(t *testing.T) {
	fsys := fstest.MapFS{
		"requirements.txt":       {Data: []byte("-r base/common.txt\nnumpy\n")},
		"base/common.txt":        {Data: []byte("bitly_api\n")},
		"reqs/dev.txt":           {Data: []byte("--requirement ../requirements.txt  # shared\npytest\nSomeProject\n")},
		"reqs/extra/shared.txt":  {Data: []byte("unused\n")},
		"shared.txt":             {Data: []byte("SomeProject\n")},
		"reqs/extra/include.txt": {Data: []byte("-r shared.txt\n")},
	}
	p := NewParser(WithFileSystem(FS(fsys)))

	tests := []struct {
		file string
		want []string
	}{
		{"requirements.txt", []string{"bitly_api", "numpy"}},
		{"reqs/dev.txt", []string{"bitly_api", "numpy", "pytest", "SomeProject"}},
		// Relative to the including file first.
		{"reqs/extra/include.txt", []string{"unused"}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			reqs, err := p.ParseFile(tt.file)
			if err != nil {
				t.Fatalf("ParseFile failed: %v", err)
			}
			if got := names(reqs); !slices.Equal(got, tt.want) {
				t.Errorf("requirements = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParser_IncludeFallsBackToPathAsGiven(t *testing.T) {
	fsys := fstest.MapFS{
		"sub/a.txt":  {Data: []byte("-r shared.txt\nflask\n")},
		"shared.txt": {Data: []byte("requests\n")},
	}
	reqs, err := NewParser(WithFileSystem(FS(fsys))).ParseFile("sub/a.txt")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if got, want := names(reqs), []string{"requests", "flask"}; !slices.Equal(got, want) {
		t.Errorf("requirements = %v, want %v", got, want)
	}
}

func TestParser_MissingInclude(t *testing.T) {
	fsys := fstest.MapFS{
		"requirements.txt": {Data: []byte("-r missing.txt\nflask\n")},
	}
	var missing []string
	var logged int
	p := NewParser(
		WithFileSystem(FS(fsys)),
		WithLogger(func(string, ...any) { logged++ }),
		WithObserver(func(v Visit) {
			if v.Missing {
				missing = append(missing, v.Path)
			}
		}),
	)

	reqs, err := p.ParseFile("requirements.txt")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if got, want := names(reqs), []string{"flask"}; !slices.Equal(got, want) {
		t.Errorf("requirements = %v, want %v", got, want)
	}
	if !slices.Equal(missing, []string{"missing.txt"}) {
		t.Errorf("missing = %v, want [missing.txt]", missing)
	}
	if logged == 0 {
		t.Error("expected the skipped include to be logged")
	}
}

func TestParser_ParseFile_NotFound(t *testing.T) {
	p := NewParser(WithFileSystem(FS(fstest.MapFS{})))
	_, err := p.ParseFile("requirements.txt")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
}

func TestParser_ParseText(t *testing.T) {
	text := `# Test requirements
requests>=2.28.0
click==8.1.0
-r other.txt
--index-url https://pypi.org/simple
Django>=1.8,\
    <2.0
requests>=2.28.0
Requests>=2.28.0

git+https://github.com/org/proj.git@v1.2#egg=proj
`
	got := names(Parse(text))
	want := []string{"requests>=2.28.0", "click==8.1.0", "Django>=1.8,<2.0", "proj"}
	if !slices.Equal(got, want) {
		t.Errorf("Parse = %v, want %v", got, want)
	}
}

func TestParser_ParseTextIn(t *testing.T) {
	fsys := fstest.MapFS{
		"req/base.txt": {Data: []byte("numpy\n")},
	}
	p := NewParser(WithFileSystem(FS(fsys)))
	got := names(p.ParseTextIn("-r base.txt\nscipy\n", "req/requirements.txt"))
	if want := []string{"numpy", "scipy"}; !slices.Equal(got, want) {
		t.Errorf("ParseTextIn = %v, want %v", got, want)
	}
}

func TestParser_Diagnose(t *testing.T) {
	text := "Django\nnot a requirement!\nfoo \\\n===\n-r x.txt\n# comment\n\n--no-index\nflask\n"
	got := NewParser().Diagnose(text)
	if want := []int{2, 3}; !slices.Equal(got, want) {
		t.Errorf("Diagnose = %v, want %v", got, want)
	}
}

func TestIncludeTarget(t *testing.T) {
	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{"-r base.txt", "base.txt", true},
		{"-rbase.txt", "base.txt", true},
		{"--requirement base.txt", "base.txt", true},
		{"--requirement=base.txt", "", false},
		{"-r base.txt  # shared", "base.txt", true},
		{"-r", "", false},
		{"--requirements base.txt", "", false},
		{"requests", "", false},
	}
	for _, tt := range tests {
		got, ok := IncludeTarget(tt.line)
		if ok != tt.wantOK || got != filepath.FromSlash(tt.want) {
			t.Errorf("IncludeTarget(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParser_OSFileSystem(t *testing.T) {
	dir := t.TempDir()
	reqFile := filepath.Join(dir, "requirements.txt")
	baseFile := filepath.Join(dir, "base.txt")

	if err := os.WriteFile(reqFile, []byte("-r base.txt\nflask\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// Absolute path back to the including file.
	if err := os.WriteFile(baseFile, []byte("-r "+reqFile+"\nrequests\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reqs, err := NewParser().ParseFile(reqFile)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if got, want := names(reqs), []string{"requests", "flask"}; !slices.Equal(got, want) {
		t.Errorf("requirements = %v, want %v", got, want)
	}
}
