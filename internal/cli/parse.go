package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/cobra"

	pkgerrors "github.com/matzehuels/pipreq/pkg/errors"
	"github.com/matzehuels/pipreq/pkg/manifest"
	"github.com/matzehuels/pipreq/pkg/observability"
	"github.com/matzehuels/pipreq/pkg/requirement"
	"github.com/matzehuels/pipreq/pkg/store"
)

// stdinPath selects standard input as the requirements source.
const stdinPath = "-"

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	kind        string // manifest type; empty auto-detects from the file name
	json        bool   // print the result as JSON
	save        bool   // store the result in the result store
	interactive bool   // browse the result in a TUI
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a requirements file or Python manifest",
		Long: `Parse a requirements file, pyproject.toml or poetry.lock into structured
requirements. Includes (-r/--requirement) are followed relative to the
including file. Pass "-" to read requirements text from standard input.

Examples:
  pipreq parse requirements.txt
  pipreq parse requirements/dev.txt --json
  pipreq parse pyproject.toml --save
  pipreq parse deps.in --type requirements.txt
  cat requirements.txt | pipreq parse -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "type", "t", "", "manifest type (requirements.txt, pyproject.toml, poetry.lock)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store the result (see \"pipreq results\")")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse requirements interactively")
	cmd.MarkFlagsMutuallyExclusive("json", "interactive")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, opts parseOpts, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	prog := newProgress(logger)
	res, err := c.readManifest(ctx, cmd.InOrStdin(), path, opts.kind)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %s from %s", plural(len(res.Requirements), "requirement"), displayPath(path)))

	if len(res.Unrecognized) > 0 {
		logger.Warnf("Unrecognized %s: %s", plural(len(res.Unrecognized), "line"), joinInts(res.Unrecognized))
	}
	for _, s := range res.Skipped {
		logger.Warnf("Skipped dependency entry: %s", s)
	}

	if opts.save {
		id, err := c.saveResult(ctx, displayPath(path), res)
		if err != nil {
			return err
		}
		logger.Infof("Saved result %s", id)
	}

	switch {
	case opts.json:
		return writeJSON(out, res)
	case opts.interactive:
		return browse(ctx, displayPath(path), res.Requirements)
	}

	if len(res.Requirements) == 0 {
		printInfo(out, "No requirements found")
		return nil
	}
	fmt.Fprintln(out, requirementsTable(res.Requirements))
	printStats(out,
		plural(len(res.Requirements), "requirement"),
		plural(countSource(res.Requirements, requirement.SourceVCS), "VCS source"),
		plural(countSource(res.Requirements, requirement.SourceArchive), "archive"),
		plural(len(res.Unrecognized), "unrecognized line"),
	)
	return nil
}

// readManifest parses path with the parser selected by kind or detected
// from the file name. Standard input is always read as requirements text.
func (c *CLI) readManifest(ctx context.Context, stdin io.Reader, path, kind string) (*manifest.Result, error) {
	start := time.Now()
	if path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		text := string(data)
		p := requirement.NewParser(c.parserOptions()...)
		res := &manifest.Result{
			Type:         "requirements.txt",
			Requirements: p.ParseText(text),
			Unrecognized: p.Diagnose(text),
		}
		observability.Parse().OnParseComplete(ctx, "stdin", len(res.Requirements), len(res.Unrecognized), time.Since(start))
		return res, nil
	}

	parsers := manifest.Parsers(c.parserOptions()...)
	parser, err := selectParser(path, kind, parsers)
	if err != nil {
		return nil, err
	}
	res, err := parser.Parse(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "%s", path)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	observability.Parse().OnParseComplete(ctx, path, len(res.Requirements), len(res.Unrecognized), time.Since(start))
	return res, nil
}

func selectParser(path, kind string, parsers []manifest.ManifestParser) (manifest.ManifestParser, error) {
	if kind == "" {
		p, err := manifest.Detect(path, parsers...)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidManifest, err,
				"cannot detect manifest type (use --type: %s)", parserTypes(parsers))
		}
		return p, nil
	}
	for _, p := range parsers {
		if p.Type() == kind {
			return p, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidInput,
		"unknown manifest type %q (available: %s)", kind, parserTypes(parsers))
}

func parserTypes(parsers []manifest.ManifestParser) string {
	types := make([]string, len(parsers))
	for i, p := range parsers {
		types[i] = p.Type()
	}
	return strings.Join(types, ", ")
}

// saveResult stores res in the local result store and returns its id.
func (c *CLI) saveResult(ctx context.Context, source string, res *manifest.Result) (string, error) {
	st, err := store.NewFileStore("")
	if err != nil {
		return "", err
	}
	defer st.Close()

	r := store.NewResult(source, res.Requirements, res.Unrecognized)
	if err := st.Save(ctx, r); err != nil {
		return "", fmt.Errorf("save result: %w", err)
	}
	return r.ID, nil
}

func countSource(reqs []requirement.Requirement, src requirement.Source) int {
	n := 0
	for _, r := range reqs {
		if r.Source == src {
			n++
		}
	}
	return n
}

func displayPath(path string) string {
	if path == stdinPath {
		return "stdin"
	}
	return path
}
