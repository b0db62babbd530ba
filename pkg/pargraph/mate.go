package pargraph

import "fmt"

// SetMate binds n and d as mates of each other. Both endpoints must belong
// to graphs of different kinds (one netlist node, one device node) and
// neither may already be mated; callers that want to move a mate call
// ClearMate first. This is the single choke point that keeps the mate
// relation symmetric: one operation updates both sides.
func SetMate(n, d Node) error {
	if n.g == d.g {
		return fmt.Errorf("pargraph: SetMate requires nodes from two different graphs")
	}
	if n.g.kind == d.g.kind {
		return fmt.Errorf("pargraph: SetMate requires one netlist node and one device node")
	}
	nd, dd := n.g.node(n.id), d.g.node(d.id)
	if nd.mate != nil {
		return fmt.Errorf("pargraph: %s is already mated", n)
	}
	if dd.mate != nil {
		return fmt.Errorf("pargraph: %s is already mated", d)
	}
	nd.mate = &mateRef{graph: d.g, id: d.id}
	dd.mate = &mateRef{graph: n.g, id: n.id}
	return nil
}

// ClearMate removes n's mate binding, and the reciprocal binding on the
// mate itself, if any. Clearing an already-unmated node is a no-op.
func ClearMate(n Node) {
	nd := n.g.node(n.id)
	if nd.mate == nil {
		return
	}
	other := nd.mate
	nd.mate = nil
	otherData := other.graph.node(other.id)
	if otherData.mate != nil && otherData.mate.graph == n.g && otherData.mate.id == n.id {
		otherData.mate = nil
	}
}
