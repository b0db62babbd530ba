// Package label defines the small-integer compatibility tags shared between
// the netlist graph and the device graph, and the allocator that hands them
// out. pargraph.Graph embeds one Allocator per graph so its own
// AllocateLabel/LabelCount/LabelDesc are thin forwarders; pargraph.
// AllocateLockstep calls AllocateLabel once per graph and compares the
// results to keep the two namespaces in agreement.
package label

import "fmt"

// ID is a compatibility class tag. The same ID must denote the same class in
// both the netlist graph and the device graph.
type ID uint32

// Invalid is returned by lookups that find nothing.
const Invalid ID = ^ID(0)

func (id ID) String() string {
	if id == Invalid {
		return "label(invalid)"
	}
	return fmt.Sprintf("label(%d)", uint32(id))
}

// Allocator hands out labels from a monotonically increasing namespace and
// remembers their diagnostic descriptions. It has no notion of "which
// graph" allocated a label — that bookkeeping, and the lockstep check that
// goes with it, lives in pargraph.AllocateLockstep, which calls Allocate
// (via pargraph.Graph.AllocateLabel) once per graph and compares the
// results.
type Allocator struct {
	descs []string
}

// NewAllocator returns an empty label allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate assigns the next label ID and records desc for diagnostics.
func (a *Allocator) Allocate(desc string) ID {
	id := ID(len(a.descs))
	a.descs = append(a.descs, desc)
	return id
}

// Describe returns the human-readable description for id, or "?" if id was
// never allocated by this allocator.
func (a *Allocator) Describe(id ID) string {
	if int(id) < 0 || int(id) >= len(a.descs) {
		return "?"
	}
	return a.descs[id]
}

// Len reports how many labels have been allocated so far.
func (a *Allocator) Len() int {
	return len(a.descs)
}
