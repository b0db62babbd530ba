// Package pargraph implements the two labelled multi-graphs at the heart of
// the place-and-route engine: the netlist graph N and the device graph D.
// Both are instances of the same Graph type; only their Kind and the
// concrete type of the payload each Node carries differ.
//
// The shape here — an arena of nodes, adjacency recorded as a map of
// from-index to edge list, string/port interning at the boundary — is an
// in-memory, single-threaded, label/port graph built fresh per solve and
// discarded at solver exit rather than a persistent, concurrent store.
package pargraph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/parforge/gopar/pkg/label"
)

// Kind distinguishes the netlist graph from the device graph. It exists
// purely for diagnostics and defensive assertions (SetMate refuses to mate
// two nodes from graphs of the same kind).
type Kind int

const (
	// Netlist is the graph of synthesised cells, ports and pseudo-nodes.
	Netlist Kind = iota
	// Device is the graph of device sites and routing reachability.
	Device
)

func (k Kind) String() string {
	if k == Netlist {
		return "netlist"
	}
	return "device"
}

// NodeID indexes into a Graph's node arena. It is only meaningful together
// with the Graph that produced it.
type NodeID int

// invalidNodeID marks the absence of a mate.
const invalidNodeID NodeID = -1

// Edge is a directed, port-labelled connection. Edges in the netlist graph
// are required (they model net connectivity); edges in the device graph are
// available (they model single-step routing reachability).
type Edge struct {
	From, To         NodeID
	SrcPort, DstPort PortID
}

type nodeData struct {
	uuid   uuid.UUID
	payload any
	labels map[label.ID]struct{}
	mate   *mateRef
}

// mateRef is the "arena + index" foreign key described for cross-graph mate
// back-references: a pointer to the *owning graph* plus an integer index,
// never a pointer straight at a Node that a future mutation could dangle.
type mateRef struct {
	graph *Graph
	id    NodeID
}

// Graph is one of the two parallel labelled multi-graphs.
type Graph struct {
	kind   Kind
	nodes  []*nodeData
	edges  map[NodeID][]Edge
	labels *label.Allocator // per-graph label namespace, indexed by label.ID
}

// New returns an empty graph of the given kind.
func New(kind Kind) *Graph {
	return &Graph{
		kind:   kind,
		edges:  make(map[NodeID][]Edge),
		labels: label.NewAllocator(),
	}
}

// Kind reports whether this is the netlist or device graph.
func (g *Graph) Kind() Kind { return g.kind }

// AllocateLabel allocates the next label ID in this graph's own namespace
// and records its description. Callers that need the netlist and device
// graphs to agree on the meaning of a label ID must go through
// AllocateLockstep (see lockstep.go) rather than calling this
// directly on each graph.
func (g *Graph) AllocateLabel(desc string) label.ID {
	return g.labels.Allocate(desc)
}

// LabelCount reports how many labels have been allocated in this graph.
func (g *Graph) LabelCount() int { return g.labels.Len() }

// LabelDesc returns the diagnostic description for a label allocated in
// this graph.
func (g *Graph) LabelDesc(id label.ID) string {
	return g.labels.Describe(id)
}

// AddNode adds a node carrying payload with the given label set and
// returns a handle to it.
func (g *Graph) AddNode(payload any, labels ...label.ID) Node {
	nd := &nodeData{
		uuid:    uuid.New(),
		payload: payload,
		labels:  make(map[label.ID]struct{}, len(labels)),
		mate:    nil,
	}
	for _, l := range labels {
		nd.labels[l] = struct{}{}
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, nd)
	return Node{g: g, id: id}
}

// AddEdge installs a directed, port-labelled edge from -> to. Multiple
// edges between the same pair of nodes (with different port pairs, or even
// the same one) are permitted: this is a multi-graph.
func (g *Graph) AddEdge(from, to Node, srcPort, dstPort PortID) error {
	if from.g != g || to.g != g {
		return fmt.Errorf("pargraph: AddEdge endpoints must belong to the graph they are added to")
	}
	g.edges[from.id] = append(g.edges[from.id], Edge{From: from.id, To: to.id, SrcPort: srcPort, DstPort: dstPort})
	return nil
}

// Nodes returns a handle for every node in the graph, in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i := range g.nodes {
		out[i] = Node{g: g, id: NodeID(i)}
	}
	return out
}

// NodeCount reports the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// node dereferences id against this graph's arena. It panics on an
// out-of-range id, which can only happen from a programmer error (a NodeID
// used against the wrong Graph).
func (g *Graph) node(id NodeID) *nodeData {
	if int(id) < 0 || int(id) >= len(g.nodes) {
		panic(fmt.Sprintf("pargraph: node id %d out of range for %s graph of size %d", id, g.kind, len(g.nodes)))
	}
	return g.nodes[id]
}
