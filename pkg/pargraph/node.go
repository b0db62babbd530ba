package pargraph

import (
	"github.com/google/uuid"

	"github.com/parforge/gopar/pkg/label"
)

// Node is a lightweight handle (owning graph + arena index) to a node. It is
// cheap to copy and compare with ==.
type Node struct {
	g  *Graph
	id NodeID
}

// IsZero reports whether n is the zero Node value (no graph attached).
func (n Node) IsZero() bool { return n.g == nil }

// Graph returns the graph that owns n.
func (n Node) Graph() *Graph { return n.g }

// ID returns n's arena index within its owning graph.
func (n Node) ID() NodeID { return n.id }

// UUID returns a stable handle for n that survives outside the graph's own
// lifetime, e.g. for diagnostics, snapshot files, or the report renderer.
func (n Node) UUID() uuid.UUID { return n.g.node(n.id).uuid }

// Payload returns the opaque payload (a netlist entity for nodes in N, a
// device site for nodes in D).
func (n Node) Payload() any { return n.g.node(n.id).payload }

// HasLabel reports whether n satisfies label id.
func (n Node) HasLabel(id label.ID) bool {
	_, ok := n.g.node(n.id).labels[id]
	return ok
}

// Labels returns every label id that n satisfies, in no particular order.
func (n Node) Labels() []label.ID {
	m := n.g.node(n.id).labels
	out := make([]label.ID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}

// SharesLabel reports whether n and other have at least one label in
// common: the placement legality test, satisfied when the device node's
// label set contains at least one label also in the netlist node's label
// set.
func (n Node) SharesLabel(other Node) bool {
	a, b := n.g.node(n.id).labels, other.g.node(other.id).labels
	if len(b) < len(a) {
		a, b = b, a
	}
	for id := range a {
		if _, ok := b[id]; ok {
			return true
		}
	}
	return false
}

// Mate returns the node's current mate and true, or the zero Node and false
// if unmated.
func (n Node) Mate() (Node, bool) {
	m := n.g.node(n.id).mate
	if m == nil {
		return Node{}, false
	}
	return Node{g: m.graph, id: m.id}, true
}

// IsMated reports whether n currently has a mate.
func (n Node) IsMated() bool {
	_, ok := n.Mate()
	return ok
}

// EdgesFrom returns every edge whose From endpoint is n.
func (n Node) EdgesFrom() []Edge {
	return n.g.edges[n.id]
}

// String renders a node using its payload's Stringer if it has one,
// otherwise a generic graph/index form. Diagnostics and reports use this to
// name the offending entity.
func (n Node) String() string {
	if s, ok := n.Payload().(interface{ String() string }); ok {
		return s.String()
	}
	return n.g.kind.String() + "-node"
}
