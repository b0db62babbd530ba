package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/netlist"
)

func TestBuildDeviceLabelsIOBWithPinLabel(t *testing.T) {
	part := device.SLG46620Class()
	prog := NewProgram(part)
	require.NoError(t, BuildDevice(prog))

	iob, ok := part.Site("IOB6")
	require.True(t, ok)
	pinLabel := prog.pinLabel(6)
	assert.True(t, iob.ParNode().HasLabel(pinLabel))
}

func TestBuildDeviceWidensLUTLabels(t *testing.T) {
	part := device.SLG46620Class()
	prog := NewProgram(part)
	require.NoError(t, BuildDevice(prog))

	lut4, ok := part.Site("LUT0") // width 4
	require.True(t, ok)
	assert.True(t, lut4.ParNode().HasLabel(prog.classLabel("LUT>=2")))
	assert.True(t, lut4.ParNode().HasLabel(prog.classLabel("LUT>=3")))
	assert.True(t, lut4.ParNode().HasLabel(prog.classLabel("LUT>=4")))

	lut3, ok := part.Site("LUT2") // width 3
	require.True(t, ok)
	assert.True(t, lut3.ParNode().HasLabel(prog.classLabel("LUT>=2")))
	assert.True(t, lut3.ParNode().HasLabel(prog.classLabel("LUT>=3")))
	assert.False(t, lut3.ParNode().HasLabel(prog.classLabel("LUT>=4")))
}

func TestBuildNetlistTrivialPassthrough(t *testing.T) {
	part := device.SLG46620Class()
	prog := NewProgram(part)
	require.NoError(t, BuildDevice(prog))

	mod, err := netlist.LoadFile("../../testdata/netlist/trivial.yaml")
	require.NoError(t, err)

	nodeByName, err := BuildNetlist(mod, prog)
	require.NoError(t, err)

	ibuf, ok := nodeByName["IBUF1"]
	require.True(t, ok)
	obuf, ok := nodeByName["OBUF1"]
	require.True(t, ok)

	edges := ibuf.EdgesFrom()
	require.Len(t, edges, 1)
	assert.Equal(t, obuf.ID(), edges[0].To)
	assert.Equal(t, "OUT", prog.Ports.Name(edges[0].SrcPort))
	assert.Equal(t, "IN", prog.Ports.Name(edges[0].DstPort))
}

func TestBuildNetlistConstantDriverWiresFromPowerNode(t *testing.T) {
	part := device.SLG46620Class()
	prog := NewProgram(part)
	require.NoError(t, BuildDevice(prog))

	mod, err := netlist.LoadFile("../../testdata/netlist/constant_driver.yaml")
	require.NoError(t, err)

	nodeByName, err := BuildNetlist(mod, prog)
	require.NoError(t, err)

	vdd := nodeByName["VDD"]
	obuf := nodeByName["OBUF1"]
	edges := vdd.EdgesFrom()

	found := false
	for _, e := range edges {
		if e.To == obuf.ID() {
			found = true
		}
	}
	assert.True(t, found, "expected an edge from the VDD pseudo-node to OBUF1")
}

func TestBuildNetlistRejectsUnknownCellType(t *testing.T) {
	part := device.SLG46620Class()
	prog := NewProgram(part)
	require.NoError(t, BuildDevice(prog))

	mod := &netlist.Module{
		Name: "bad",
		Cells: map[string]netlist.Cell{
			"X0": {Name: "X0", Type: "GP_NONSENSE", Ports: map[string]int{}},
		},
	}
	_, err := BuildNetlist(mod, prog)
	assert.Error(t, err)
}

func TestBuildNetlistRejectsNetWithoutDriver(t *testing.T) {
	part := device.SLG46620Class()
	prog := NewProgram(part)
	require.NoError(t, BuildDevice(prog))

	mod := &netlist.Module{
		Name: "bad",
		Cells: map[string]netlist.Cell{
			"OBUF1": {Name: "OBUF1", Type: "GP_OBUF", Params: map[string]netlist.Param{"PIN": netlist.IntParam(3)}, Ports: map[string]int{"IN": 99}},
		},
	}
	_, err := BuildNetlist(mod, prog)
	assert.Error(t, err)
}

func TestClassLabelIsLockstepAcrossGraphs(t *testing.T) {
	part := device.SLG46620Class()
	prog := NewProgram(part)
	id := prog.classLabel("DFF")
	assert.Equal(t, id, prog.classLabel("DFF"))
	assert.Equal(t, "DFF", prog.N.LabelDesc(id))
	assert.Equal(t, "DFF", prog.D.LabelDesc(id))
}
