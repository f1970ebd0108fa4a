// Package includegraph records how requirements files include each other
// and renders the result as a Graphviz diagram.
//
// A [Recorder] is plugged into a [requirement.Parser] as its include
// observer:
//
//	rec := includegraph.NewRecorder()
//	p := requirement.NewParser(requirement.WithObserver(rec.Observe))
//	reqs, err := p.ParseFile("requirements.txt")
//	g := rec.Graph()
//	svg, err := includegraph.RenderSVG(ctx, includegraph.ToDOT(g))
package includegraph

import (
	"sort"
	"sync"

	"github.com/matzehuels/pipreq/pkg/requirement"
)

// Node is one requirements file.
type Node struct {
	Path    string `json:"path"`
	Direct  int    `json:"direct"`            // Requirements declared in the file itself
	Missing bool   `json:"missing,omitempty"` // Referenced but unreadable
	Root    bool   `json:"root,omitempty"`    // The file the parse started from
}

// Edge is one include directive.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Repeat bool   `json:"repeat,omitempty"` // Target had already been read; nothing was parsed
}

// Graph is a snapshot of recorded includes. Nodes are sorted by path with
// the root first; edges keep the order they were observed in.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Root returns the root node, if one was recorded.
func (g *Graph) Root() (Node, bool) {
	for _, n := range g.Nodes {
		if n.Root {
			return n, true
		}
	}
	return Node{}, false
}

// Recorder accumulates parser visits. It is safe for concurrent use, but
// one Recorder should observe one parse at a time.
type Recorder struct {
	mu    sync.Mutex
	nodes map[string]*Node
	edges []Edge
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{nodes: make(map[string]*Node)}
}

// Observe records one visit. Its signature matches
// [requirement.IncludeObserver].
func (r *Recorder) Observe(v requirement.Visit) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.nodes[v.Path]
	if !ok {
		n = &Node{Path: v.Path}
		r.nodes[v.Path] = n
	}
	if !v.Repeat {
		n.Direct = v.Direct
		n.Missing = v.Missing
	}
	if v.Parent == "" {
		n.Root = true
		return
	}
	if _, ok := r.nodes[v.Parent]; !ok {
		r.nodes[v.Parent] = &Node{Path: v.Parent}
	}
	r.edges = append(r.edges, Edge{From: v.Parent, To: v.Path, Repeat: v.Repeat})
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = make(map[string]*Node)
	r.edges = nil
}

// Graph returns a copy of what has been recorded.
func (r *Recorder) Graph() *Graph {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := &Graph{
		Nodes: make([]Node, 0, len(r.nodes)),
		Edges: append([]Edge(nil), r.edges...),
	}
	for _, n := range r.nodes {
		g.Nodes = append(g.Nodes, *n)
	}
	sort.Slice(g.Nodes, func(i, j int) bool {
		if g.Nodes[i].Root != g.Nodes[j].Root {
			return g.Nodes[i].Root
		}
		return g.Nodes[i].Path < g.Nodes[j].Path
	})
	return g
}
