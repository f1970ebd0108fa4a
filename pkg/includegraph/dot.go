package includegraph

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts g to Graphviz DOT. Labels show paths relative to the
// root file's directory and each file's direct requirement count. Missing
// files are drawn dashed red; repeated includes are dashed edges.
func ToDOT(g *Graph) string {
	base := ""
	if root, ok := g.Root(); ok {
		base = filepath.Dir(root.Path)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph includes {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Path, strings.Join(nodeAttrs(n, base), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if e.Repeat {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=grey];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n Node, base string) []string {
	label := displayPath(n.Path, base)
	switch {
	case n.Missing:
		label += "\n(missing)"
	case n.Direct == 1:
		label += "\n1 requirement"
	default:
		label += fmt.Sprintf("\n%d requirements", n.Direct)
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.Missing:
		attrs = append(attrs, "style=\"rounded,dashed\"", "color=red", "fontcolor=red")
	case n.Root:
		attrs = append(attrs, "fillcolor=\"#e8f0fe\"", "penwidth=2")
	}
	return attrs
}

func displayPath(path, base string) string {
	if base == "" {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
