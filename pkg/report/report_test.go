package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parforge/gopar/pkg/build"
	"github.com/parforge/gopar/pkg/commit"
	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/netlist"
	"github.com/parforge/gopar/pkg/par"
)

func solvedProgram(t *testing.T) (*build.Program, *device.Part) {
	t.Helper()
	part := device.SLG46620Class()
	prog := build.NewProgram(part)
	require.NoError(t, build.BuildDevice(prog))
	mod, err := netlist.LoadFile("../../testdata/netlist/trivial.yaml")
	require.NoError(t, err)
	_, err = build.BuildNetlist(mod, prog)
	require.NoError(t, err)
	require.NoError(t, par.InitialPlacement(prog.N, prog.D))
	require.Equal(t, 0, par.Score(prog.N))
	return prog, part
}

func TestBuildReportsPlacementAndUtilization(t *testing.T) {
	prog, part := solvedProgram(t)
	tally, err := commit.Run(prog.N, part, prog.Ports)
	require.NoError(t, err)

	r := Build(prog.N, part, 0, 12, true, tally.MatrixUsage)

	assert.Equal(t, part.ID, r.Part)
	assert.True(t, r.Solved)
	assert.Equal(t, 12, r.Iterations)

	var sawIBUF bool
	for _, p := range r.Placement {
		if p.Entity == "IBUF1" {
			sawIBUF = true
			assert.NotEqual(t, "-", p.Site)
		}
	}
	assert.True(t, sawIBUF)

	var iobRow *UtilizationRow
	for i := range r.Utilization {
		if r.Utilization[i].Kind == device.KindIOB.String() {
			iobRow = &r.Utilization[i]
		}
	}
	require.NotNil(t, iobRow)
	assert.Equal(t, 8, iobRow.Total)
	assert.True(t, iobRow.Used >= 2)
}

func TestBuildExcludesRoutingSwitchesAndPowerFromUtilization(t *testing.T) {
	prog, part := solvedProgram(t)
	_, err := commit.Run(prog.N, part, prog.Ports)
	require.NoError(t, err)

	r := Build(prog.N, part, 0, 1, true, map[string]int{})
	for _, u := range r.Utilization {
		assert.NotEqual(t, device.KindRoutingSwitch.String(), u.Kind)
		assert.NotEqual(t, device.KindPowerRail.String(), u.Kind)
	}
}

func TestWriteTextIncludesStatusAndSections(t *testing.T) {
	prog, part := solvedProgram(t)
	tally, err := commit.Run(prog.N, part, prog.Ports)
	require.NoError(t, err)

	r := Build(prog.N, part, 0, 5, true, tally.MatrixUsage)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))

	out := buf.String()
	assert.Contains(t, out, "status: SOLVED")
	assert.Contains(t, out, "UTILIZATION")
	assert.Contains(t, out, "PLACEMENT")
}

func TestWriteTextReportsFailedStatus(t *testing.T) {
	r := &Report{Part: "SLG46620", Score: 3, Iterations: 20000, Solved: false}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))
	assert.Contains(t, buf.String(), "status: FAILED")
}
