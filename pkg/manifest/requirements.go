package manifest

import (
	"strings"

	"github.com/matzehuels/pipreq/pkg/requirement"
)

// Requirements parses pip requirements files. Options are passed to the
// underlying [requirement.Parser]; FS defaults to the OS filesystem.
type Requirements struct {
	FS      requirement.FileSystem
	Options []requirement.Option
}

func (r *Requirements) Type() string { return "requirements.txt" }

func (r *Requirements) Supports(name string) bool {
	if !strings.HasSuffix(name, ".txt") && !strings.HasSuffix(name, ".in") {
		return false
	}
	return strings.HasPrefix(name, "requirements") || strings.HasPrefix(name, "constraints")
}

func (r *Requirements) Parse(path string) (*Result, error) {
	fsys := r.FS
	if fsys == nil {
		fsys = requirement.OSFileSystem{}
	}
	p := requirement.NewParser(append([]requirement.Option{requirement.WithFileSystem(fsys)}, r.Options...)...)

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := string(data)
	return &Result{
		Type:         r.Type(),
		Requirements: p.ParseTextIn(text, path),
		Unrecognized: p.Diagnose(text),
	}, nil
}
