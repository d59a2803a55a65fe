// Package netgraph implements the selection rule shared by the scientist
// relationship and concept evolution graphs: nodes with authored layout
// coordinates, typed directed edges, a single focused node, and a highlight
// set derived from the focus and the active edge-type filter. Both
// presentational views reuse this one implementation with different node
// data; no layout is computed here.
package netgraph

import (
	"fmt"
	"sort"

	"github.com/vanderheijden86/polarcraft/pkg/model"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// Graph holds one relation graph plus its interaction state. The node and
// edge sets are immutable after New; focus, hover, and the edge filter are
// the only mutable state, owned by the view that created the graph.
type Graph struct {
	nodes map[string]model.NetNode
	order []string
	edges []model.NetEdge

	focus  string
	hover  string
	filter model.EdgeType

	und      *simple.UndirectedGraph
	idToNode map[string]int64
	nodeToID map[int64]string
}

// New builds a relation graph from authored nodes and edges. Node ids must
// be unique and every edge endpoint must name a known node; violations are
// build-time errors, the same fail-fast policy the relation store applies.
func New(nodes []model.NetNode, edges []model.NetEdge) (*Graph, error) {
	g := &Graph{
		nodes:    make(map[string]model.NetNode, len(nodes)),
		filter:   model.EdgeTypeAll,
		und:      simple.NewUndirectedGraph(),
		idToNode: make(map[string]int64, len(nodes)),
		nodeToID: make(map[int64]string, len(nodes)),
	}

	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			return nil, err
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate graph node ID: %s", n.ID)
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)

		gn := g.und.NewNode()
		g.und.AddNode(gn)
		g.idToNode[n.ID] = gn.ID()
		g.nodeToID[gn.ID()] = n.ID
	}

	for _, e := range edges {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, ok := g.nodes[e.From]; !ok {
			return nil, fmt.Errorf("graph edge references missing node %s", e.From)
		}
		if _, ok := g.nodes[e.To]; !ok {
			return nil, fmt.Errorf("graph edge references missing node %s", e.To)
		}
		g.edges = append(g.edges, e)
		if e.From != e.To {
			g.und.SetEdge(g.und.NewEdge(g.und.Node(g.idToNode[e.From]), g.und.Node(g.idToNode[e.To])))
		}
	}

	return g, nil
}

// Nodes returns the nodes in authored order.
func (g *Graph) Nodes() []model.NetNode {
	out := make([]model.NetNode, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Node returns the node record for an id.
func (g *Graph) Node(id string) (model.NetNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Select toggles focus on a node: selecting the focused node again clears
// focus (a true toggle, unlike the navigator's ancestor rule). Selecting an
// unknown id clears focus.
func (g *Graph) Select(nodeID string) {
	if nodeID == g.focus {
		g.focus = ""
		return
	}
	if _, ok := g.nodes[nodeID]; !ok {
		g.focus = ""
		return
	}
	g.focus = nodeID
}

// Focus returns the currently focused node id, or "" when idle.
func (g *Graph) Focus() string { return g.focus }

// SetHover sets the hovered node. Hover unions into the highlight set but
// never alters focus; pass "" to clear.
func (g *Graph) SetHover(nodeID string) {
	if _, ok := g.nodes[nodeID]; !ok {
		g.hover = ""
		return
	}
	g.hover = nodeID
}

// SetEdgeFilter restricts which edge types participate in highlighting and
// EdgesMatchingType. model.EdgeTypeAll restores the identity filter.
func (g *Graph) SetEdgeFilter(t model.EdgeType) {
	g.filter = t
}

// EdgeFilter returns the active edge-type filter.
func (g *Graph) EdgeFilter() model.EdgeType { return g.filter }

// EdgesMatchingType returns edges in authored order: all of them when the
// filter is EdgeTypeAll, exact type matches otherwise.
func (g *Graph) EdgesMatchingType(filter model.EdgeType) []model.NetEdge {
	if filter == model.EdgeTypeAll {
		out := make([]model.NetEdge, len(g.edges))
		copy(out, g.edges)
		return out
	}
	var out []model.NetEdge
	for _, e := range g.edges {
		if e.Type == filter {
			out = append(out, e)
		}
	}
	return out
}

// HighlightedSet returns the sorted node ids to emphasize: the focused node
// plus both endpoints of every filtered edge touching it, unioned with the
// hovered node's neighborhood. Idle with no hover yields empty.
func (g *Graph) HighlightedSet() []string {
	set := make(map[string]bool)
	g.addNeighborhood(set, g.focus)
	g.addNeighborhood(set, g.hover)

	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (g *Graph) addNeighborhood(set map[string]bool, nodeID string) {
	if nodeID == "" {
		return
	}
	set[nodeID] = true
	for _, e := range g.EdgesMatchingType(g.filter) {
		if e.From == nodeID {
			set[e.To] = true
		}
		if e.To == nodeID {
			set[e.From] = true
		}
	}
}

// ReachableFrom returns the sorted ids of every node connected to start by
// any chain of edges, ignoring direction and the edge filter. Used by the
// lineage trace overlay.
func (g *Graph) ReachableFrom(start string) []string {
	nid, ok := g.idToNode[start]
	if !ok {
		return nil
	}

	var out []string
	bfs := traverse.BreadthFirst{
		Visit: func(n graph.Node) {
			out = append(out, g.nodeToID[n.ID()])
		},
	}
	bfs.Walk(g.und, g.und.Node(nid), nil)
	sort.Strings(out)
	return out
}

// Components returns the connected components of the graph (undirected
// view), each sorted, ordered by their smallest member.
func (g *Graph) Components() [][]string {
	comps := topo.ConnectedComponents(g.und)
	out := make([][]string, 0, len(comps))
	for _, comp := range comps {
		ids := make([]string, 0, len(comp))
		for _, n := range comp {
			ids = append(ids, g.nodeToID[n.ID()])
		}
		sort.Strings(ids)
		out = append(out, ids)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
