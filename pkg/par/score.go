package par

import (
	"sort"

	"github.com/parforge/gopar/pkg/pargraph"
)

// Score returns the number of unroutable required edges: required edges in
// N whose endpoints, once mapped through their mates, have no matching
// available edge in D with the same ports. A score of zero is a legal
// placement.
func Score(n *pargraph.Graph) int {
	nodes := n.Nodes()
	byIndex := make(map[pargraph.NodeID]pargraph.Node, len(nodes))
	for _, nd := range nodes {
		byIndex[nd.ID()] = nd
	}
	unroutable := 0
	for _, node := range nodes {
		for _, e := range node.EdgesFrom() {
			if !edgeRoutable(node, byIndex[e.To], e) {
				unroutable++
			}
		}
	}
	return unroutable
}

// edgeRoutable reports whether required edge e (from -> to) has a matching
// available edge between the two nodes' current mates.
func edgeRoutable(from, to pargraph.Node, e pargraph.Edge) bool {
	dFrom, ok := from.Mate()
	if !ok {
		return false
	}
	dTo, ok := to.Mate()
	if !ok {
		return false
	}
	for _, de := range dFrom.EdgesFrom() {
		if de.To == dTo.ID() && de.SrcPort == e.SrcPort && de.DstPort == e.DstPort {
			return true
		}
	}
	return false
}

// unroutableEndpoints returns every distinct netlist node that is an
// endpoint of at least one currently-unroutable required edge — the pool
// mutate draws its candidates from.
func unroutableEndpoints(n *pargraph.Graph) []pargraph.Node {
	nodes := n.Nodes()
	byIndex := make(map[pargraph.NodeID]pargraph.Node, len(nodes))
	for _, nd := range nodes {
		byIndex[nd.ID()] = nd
	}
	seen := make(map[pargraph.NodeID]pargraph.Node)
	for _, node := range nodes {
		for _, e := range node.EdgesFrom() {
			to := byIndex[e.To]
			if !edgeRoutable(node, to, e) {
				seen[node.ID()] = node
				seen[to.ID()] = to
			}
		}
	}
	out := make([]pargraph.Node, 0, len(seen))
	for _, node := range seen {
		out = append(out, node)
	}
	// Map iteration order is randomized per-process; a stable order here
	// is what makes the same seed reproduce the same run.
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
