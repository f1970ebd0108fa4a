package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgerrors "github.com/matzehuels/pipreq/pkg/errors"
	"github.com/matzehuels/pipreq/pkg/includegraph"
	"github.com/matzehuels/pipreq/pkg/requirement"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output string // output file; extension selects the format
	format string // dot, svg or json; overrides the extension
}

// graphCommand draws the include structure of a requirements file.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <requirements.txt>",
		Short: "Draw how requirements files include each other",
		Long: `Follow -r/--requirement includes from a requirements file and draw the
resulting file graph. Unreadable includes are drawn dashed red and repeated
includes as dashed grey edges.

Examples:
  pipreq graph requirements/prod.txt              # DOT on stdout
  pipreq graph requirements/prod.txt -o deps.svg  # rendered with Graphviz
  pipreq graph requirements/prod.txt --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg or json (default: from --output, else dot)")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, opts graphOpts, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format, err := graphFormat(opts)
	if err != nil {
		return err
	}

	rec := includegraph.NewRecorder()
	p := requirement.NewParser(c.parserOptions(requirement.WithObserver(rec.Observe))...)
	prog := newProgress(logger)
	reqs, err := p.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "%s", path)
	}
	if err != nil {
		return err
	}
	g := rec.Graph()
	prog.done(fmt.Sprintf("Read %s with %s", plural(len(g.Nodes), "file"), plural(len(reqs), "requirement")))

	var data []byte
	switch format {
	case "svg":
		if data, err = includegraph.RenderSVG(ctx, includegraph.ToDOT(g)); err != nil {
			return err
		}
	case "json":
		var buf bytes.Buffer
		if err := writeJSON(&buf, g); err != nil {
			return err
		}
		data = buf.Bytes()
	default:
		data = []byte(includegraph.ToDOT(g))
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Wrote include graph")
	printFile(cmd.OutOrStdout(), opts.output)
	return nil
}

func graphFormat(opts graphOpts) (string, error) {
	format := opts.format
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.output)), ".")
	}
	switch format {
	case "", "dot", "gv":
		return "dot", nil
	case "svg", "json":
		return format, nil
	}
	return "", pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "unsupported graph format %q (want dot, svg or json)", format)
}
