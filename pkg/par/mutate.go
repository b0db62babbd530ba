package par

import (
	"math/rand/v2"

	"github.com/parforge/gopar/pkg/pargraph"
)

// undo reverts exactly one mutate call. Callers apply it when the search
// rejects the mutation's resulting score.
type undo func()

// mutate attempts one local move on netlist node a: a swap with another
// mated, mutually compatible netlist node, or a move to a free compatible
// device node. It tries both kinds in an order chosen by rng and returns
// nil if neither is legal for a right now (the caller should just try
// again next iteration with a fresh candidate). mutate never leaves the
// graphs in a partially-applied state: it either fully applies one move
// and returns its undo, or leaves the graphs untouched.
func mutate(rng *rand.Rand, n, d *pargraph.Graph, a pargraph.Node) undo {
	if rng.IntN(2) == 0 {
		if u := trySwap(rng, n, a); u != nil {
			return u
		}
		return tryMove(rng, d, a)
	}
	if u := tryMove(rng, d, a); u != nil {
		return u
	}
	return trySwap(rng, n, a)
}

// trySwap exchanges a's device mate with another netlist node b's, provided
// each remains legally mated afterward: a must share a label with b's
// current mate and vice versa.
func trySwap(rng *rand.Rand, n *pargraph.Graph, a pargraph.Node) undo {
	aMate, ok := a.Mate()
	if !ok {
		return nil
	}
	var candidates []pargraph.Node
	for _, b := range n.Nodes() {
		if b.ID() == a.ID() {
			continue
		}
		bMate, ok := b.Mate()
		if !ok {
			continue
		}
		if !bMate.SharesLabel(a) || !aMate.SharesLabel(b) {
			continue
		}
		candidates = append(candidates, b)
	}
	if len(candidates) == 0 {
		return nil
	}
	b := candidates[rng.IntN(len(candidates))]
	bMate, _ := b.Mate()

	pargraph.ClearMate(a)
	pargraph.ClearMate(b)
	if err := pargraph.SetMate(a, bMate); err != nil {
		pargraph.SetMate(a, aMate)
		pargraph.SetMate(b, bMate)
		return nil
	}
	if err := pargraph.SetMate(b, aMate); err != nil {
		pargraph.ClearMate(a)
		pargraph.SetMate(a, aMate)
		pargraph.SetMate(b, bMate)
		return nil
	}
	return func() {
		pargraph.ClearMate(a)
		pargraph.ClearMate(b)
		pargraph.SetMate(a, aMate)
		pargraph.SetMate(b, bMate)
	}
}

// tryMove relocates a to a different free, compatible device node.
func tryMove(rng *rand.Rand, d *pargraph.Graph, a pargraph.Node) undo {
	var candidates []pargraph.Node
	for _, dn := range d.Nodes() {
		if dn.IsMated() {
			continue
		}
		if dn.SharesLabel(a) {
			candidates = append(candidates, dn)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	target := candidates[rng.IntN(len(candidates))]

	oldMate, hadMate := a.Mate()
	if hadMate {
		pargraph.ClearMate(a)
	}
	if err := pargraph.SetMate(a, target); err != nil {
		if hadMate {
			pargraph.SetMate(a, oldMate)
		}
		return nil
	}
	return func() {
		pargraph.ClearMate(a)
		if hadMate {
			pargraph.SetMate(a, oldMate)
		}
	}
}
