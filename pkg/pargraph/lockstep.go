package pargraph

import (
	"fmt"

	"github.com/parforge/gopar/pkg/label"
)

// InternalError marks a violated invariant that can only be caused by a bug
// in gopar itself, never by user input. Builders let it propagate as a
// panic; cmd/gopar recovers it at the top level and reports it as an
// internal error rather than a DRC failure.
type InternalError struct {
	msg string
}

func (e *InternalError) Error() string { return e.msg }

func internalErrorf(format string, args ...any) *InternalError {
	return &InternalError{msg: fmt.Sprintf(format, args...)}
}

// AllocateLockstep allocates the same label, with the same description, in
// both n and d, and panics with an *InternalError if the two graphs
// disagree on the resulting ID. Labels in N and D must be allocated in
// lockstep so the same integer denotes the same compatibility class in both
// graphs; this is the sole place that allocation happens for any label
// meant to be shared between the two graphs.
func AllocateLockstep(n, d *Graph, desc string) label.ID {
	nid := n.AllocateLabel(desc)
	did := d.AllocateLabel(desc)
	if nid != did {
		panic(internalErrorf("label allocation skew: %q got %s in netlist graph but %s in device graph", desc, nid, did))
	}
	return nid
}
