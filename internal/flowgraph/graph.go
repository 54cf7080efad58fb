package flowgraph

import (
	"fmt"

	"github.com/specialistvlad/sysdc/internal/name"
)

// Edge is a directed data-flow edge between two variables.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph holds nodes in first-seen order and de-duplicated edges in insertion
// order.
type Graph struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`

	index map[string]int
	seen  map[Edge]struct{}
	deps  map[string][]string
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		Nodes: []string{},
		Edges: []Edge{},
		index: make(map[string]int),
		seen:  make(map[Edge]struct{}),
		deps:  make(map[string][]string),
	}
}

// AddNode adds a node for n. If the node already exists, the function does
// nothing.
func (g *Graph) AddNode(n name.Name) {
	id := n.String()
	if _, ok := g.index[id]; ok {
		return
	}
	g.index[id] = len(g.Nodes)
	g.Nodes = append(g.Nodes, id)
}

// AddEdge creates a directed edge from `from` to `to`, meaning `to` depends on
// `from`. Both nodes must exist. Self-loops are allowed; a repeated edge is
// ignored.
func (g *Graph) AddEdge(from, to name.Name) error {
	fromID, toID := from.String(), to.String()
	if _, ok := g.index[fromID]; !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	if _, ok := g.index[toID]; !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	e := Edge{From: fromID, To: toID}
	if _, dup := g.seen[e]; dup {
		return nil
	}
	g.seen[e] = struct{}{}
	g.Edges = append(g.Edges, e)
	g.deps[toID] = append(g.deps[toID], fromID)
	return nil
}

// HasNode reports whether n is a node of the graph.
func (g *Graph) HasNode(n name.Name) bool {
	_, ok := g.index[n.String()]
	return ok
}

// Dependencies returns the nodes that feed the given node, in edge order.
func (g *Graph) Dependencies(n name.Name) ([]string, error) {
	id := n.String()
	if _, ok := g.index[id]; !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	out := make([]string, len(g.deps[id]))
	copy(out, g.deps[id])
	return out, nil
}

// Clone returns a deep copy of g. Changes to the copy never reach g.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Nodes: append([]string{}, g.Nodes...),
		Edges: append([]Edge{}, g.Edges...),
		index: make(map[string]int, len(g.index)),
		seen:  make(map[Edge]struct{}, len(g.seen)),
		deps:  make(map[string][]string, len(g.deps)),
	}
	for k, v := range g.index {
		c.index[k] = v
	}
	for k := range g.seen {
		c.seen[k] = struct{}{}
	}
	for k, v := range g.deps {
		c.deps[k] = append([]string(nil), v...)
	}
	return c
}

// link adds both endpoints and the edge between them.
func (g *Graph) link(from, to name.Name) {
	g.AddNode(from)
	g.AddNode(to)
	// Both nodes exist, so AddEdge cannot fail.
	_ = g.AddEdge(from, to)
}
