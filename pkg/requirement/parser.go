package requirement

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileSystem is the read-only view of files the parser follows includes
// through.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
}

// canonicalizer is implemented by file systems that can map a path to a
// stable identity, so that two spellings of one file are visited once.
type canonicalizer interface {
	Canonical(name string) string
}

// OSFileSystem reads from the host file system.
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// Canonical returns the absolute, symlink-free form of name. Paths that do
// not exist fall back to their absolute cleaned form.
func (OSFileSystem) Canonical(name string) string {
	abs, err := filepath.Abs(name)
	if err != nil {
		return filepath.Clean(name)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// FS adapts an io/fs file system. Paths are interpreted slash-separated and
// relative to the root of fsys.
func FS(fsys fs.FS) FileSystem { return ioFS{fsys} }

type ioFS struct{ fsys fs.FS }

func (f ioFS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(f.fsys, f.Canonical(name))
}

func (ioFS) Canonical(name string) string {
	p := path.Clean(filepath.ToSlash(name))
	return strings.TrimPrefix(p, "/")
}

// Visit describes one requirements file reached while parsing.
type Visit struct {
	Path    string // Canonical path of the file
	Parent  string // Canonical path of the including file; empty at top level
	Direct  int    // Requirements declared in the file itself
	Missing bool   // The include could not be read
	Repeat  bool   // The file was already visited in this parse
}

// IncludeObserver receives a Visit for every file and include directive
// processed. It is called synchronously from the parsing goroutine.
type IncludeObserver func(Visit)

// Option configures a Parser.
type Option func(*Parser)

// WithFileSystem sets the file system includes are read from. The default
// is OSFileSystem.
func WithFileSystem(fsys FileSystem) Option {
	return func(p *Parser) { p.fs = fsys }
}

// WithLogger sets a printf-style callback for skipped includes.
func WithLogger(logf func(string, ...any)) Option {
	return func(p *Parser) { p.logf = logf }
}

// WithObserver registers an observer for visited files.
func WithObserver(obs IncludeObserver) Option {
	return func(p *Parser) { p.observe = obs }
}

// Parser expands requirements text and files, following -r/--requirement
// includes. A Parser holds no per-parse state and is safe for concurrent use
// as long as its observer is.
type Parser struct {
	fs      FileSystem
	logf    func(string, ...any)
	observe IncludeObserver
}

// NewParser returns a Parser configured by opts.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.fs == nil {
		p.fs = OSFileSystem{}
	}
	if p.logf == nil {
		p.logf = func(string, ...any) {}
	}
	if p.observe == nil {
		p.observe = func(Visit) {}
	}
	return p
}

// Parse parses requirements text with a default Parser. Include directives
// are ignored since the text has no containing file.
func Parse(text string) []Requirement {
	return NewParser().ParseText(text)
}

// ParseText parses text that does not belong to any file. Include
// directives are ignored.
func (p *Parser) ParseText(text string) []Requirement {
	return p.ParseTextIn(text, "")
}

// ParseTextIn parses text as the contents of file, resolving includes
// relative to file's directory. The result is de-duplicated keeping first
// occurrences.
func (p *Parser) ParseTextIn(text, file string) []Requirement {
	w := p.newWalk()
	if file == "" {
		return Dedupe(w.text(text, ""))
	}
	id := w.canonical(file)
	w.visited[id] = true
	reqs := w.text(text, file)
	p.observe(Visit{Path: id, Direct: w.direct[id]})
	return Dedupe(reqs)
}

// ParseFile reads and parses a requirements file and everything it
// includes. Only a failure to read path itself is returned; unreadable
// includes contribute nothing.
func (p *Parser) ParseFile(file string) ([]Requirement, error) {
	data, err := p.fs.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read requirements file %s: %w", file, err)
	}
	return p.ParseTextIn(string(data), file), nil
}

// Diagnose returns the 1-based line numbers of logical lines in text that
// are neither blank, comments, include directives nor option lines and yet
// produced no requirement.
func (p *Parser) Diagnose(text string) []int {
	var lines []int
	for _, l := range splitLogical(text) {
		line := StripComment(l.text)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		if _, ok := ParseLine(line); !ok {
			lines = append(lines, l.num)
		}
	}
	return lines
}

// IncludeTarget reports the path named by an include directive line.
func IncludeTarget(line string) (string, bool) {
	line = StripComment(line)
	var rest string
	switch {
	case strings.HasPrefix(line, "-r"):
		rest = line[len("-r"):]
	case strings.HasPrefix(line, "--requirement "):
		rest = line[len("--requirement "):]
	default:
		return "", false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}
	return filepath.FromSlash(rest), true
}

// walk carries the state of one top-level parse.
type walk struct {
	p       *Parser
	visited map[string]bool
	direct  map[string]int
}

func (p *Parser) newWalk() *walk {
	return &walk{p: p, visited: make(map[string]bool), direct: make(map[string]int)}
}

func (w *walk) canonical(name string) string {
	if c, ok := w.p.fs.(canonicalizer); ok {
		return c.Canonical(name)
	}
	return filepath.Clean(name)
}

func (w *walk) text(text, file string) []Requirement {
	id := ""
	if file != "" {
		id = w.canonical(file)
	}
	var out []Requirement
	for _, l := range splitLogical(text) {
		if target, ok := IncludeTarget(l.text); ok {
			if file == "" {
				w.p.logf("include %s ignored: no containing file", target)
				continue
			}
			out = append(out, w.include(file, target)...)
			continue
		}
		if r, ok := ParseLine(l.text); ok {
			out = append(out, r)
			if id != "" {
				w.direct[id]++
			}
		}
	}
	return out
}

func (w *walk) include(parent, target string) []Requirement {
	parentID := w.canonical(parent)

	candidates := []string{target}
	if !filepath.IsAbs(target) {
		candidates = []string{filepath.Join(filepath.Dir(parent), target), target}
	}
	for _, c := range candidates {
		id := w.canonical(c)
		if w.visited[id] {
			w.p.logf("include %s skipped: already visited", c)
			w.p.observe(Visit{Path: id, Parent: parentID, Repeat: true})
			return nil
		}
		data, err := w.p.fs.ReadFile(c)
		if err != nil {
			continue
		}
		w.visited[id] = true
		reqs := w.text(string(data), c)
		w.p.observe(Visit{Path: id, Parent: parentID, Direct: w.direct[id]})
		return reqs
	}

	w.p.logf("include %s skipped: not readable", target)
	w.p.observe(Visit{Path: w.canonical(candidates[0]), Parent: parentID, Missing: true})
	return nil
}
