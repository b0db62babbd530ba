package pargraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parforge/gopar/pkg/label"
)

func TestAllocateLockstepAgrees(t *testing.T) {
	n := New(Netlist)
	d := New(Device)

	id1 := AllocateLockstep(n, d, "LUT>=2")
	id2 := AllocateLockstep(n, d, "DFF")

	assert.Equal(t, id1, label.ID(0))
	assert.Equal(t, id2, label.ID(1))
	require.Equal(t, "LUT>=2", n.LabelDesc(id1))
	require.Equal(t, "LUT>=2", d.LabelDesc(id1))
}

func TestAllocateLockstepPanicsOnSkew(t *testing.T) {
	n := New(Netlist)
	d := New(Device)
	// Desync the two graphs' label namespaces by allocating directly on one.
	d.AllocateLabel("pre-existing")

	assert.Panics(t, func() {
		AllocateLockstep(n, d, "LUT>=2")
	})
}
