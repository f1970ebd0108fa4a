// Package requirement parses pip requirement lines and requirements files.
//
// # Overview
//
// A requirements file is a list of logical lines. Each line is classified
// against five grammars, tried in order:
//
//  1. GitHub archive URLs (https://github.com/<owner>/<name>/archive/...)
//  2. GitLab archive URLs (https://gitlab.com/<owner>/<name>/repository/...)
//  3. Generic archive URLs ending in .tar.gz or .zip, with an optional hash fragment
//  4. VCS checkout URLs (git, hg, svn, bzr), optionally editable
//  5. Plain requirements: name, extras, version specifiers and install options
//
// A line that matches none of them produces nothing. That is not an error:
// option lines such as "--index-url" or "-f" are silently skipped the same
// way.
//
// # Parsing Files
//
// [Parser] follows "-r" and "--requirement" includes relative to the
// including file, reading through a [FileSystem]:
//
//	p := requirement.NewParser(requirement.WithFileSystem(requirement.FS(os.DirFS("."))))
//	reqs, err := p.ParseFile("requirements/dev.txt")
//
// Each file is read at most once per call, so include cycles terminate. The
// result keeps declaration order with value-equal duplicates removed.
//
// # Names From URLs
//
// For VCS and archive requirements the package name comes from the egg
// fragment, the repository path or the archive file name. [NameVersion]
// implements the splitting rule: the first '-'-separated token that starts
// with a digit, or is exactly "dev", begins the version.
package requirement
