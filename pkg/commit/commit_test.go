package commit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parforge/gopar/pkg/build"
	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/netlist"
	"github.com/parforge/gopar/pkg/par"
)

func placedProgram(t *testing.T, part *device.Part, netlistPath string) *build.Program {
	t.Helper()
	prog := build.NewProgram(part)
	require.NoError(t, build.BuildDevice(prog))
	mod, err := netlist.LoadFile(netlistPath)
	require.NoError(t, err)
	_, err = build.BuildNetlist(mod, prog)
	require.NoError(t, err)
	require.NoError(t, par.InitialPlacement(prog.N, prog.D))
	require.Equal(t, 0, par.Score(prog.N))
	return prog
}

func TestRunWiresInputSourceFromDriverSiteName(t *testing.T) {
	part := device.SLG46620Class()
	prog := placedProgram(t, part, "../../testdata/netlist/trivial.yaml")

	_, err := Run(prog.N, part, prog.Ports)
	require.NoError(t, err)

	iob3, ok := part.Site("IOB3")
	require.True(t, ok)
	assert.Equal(t, "out", iob3.Config().Mode)
	assert.True(t, iob3.Config().Enabled)

	src, ok := iob3.Config().InputSource["IN"]
	require.True(t, ok)
	assert.Equal(t, "IOB2", src)
}

func TestRunTalliesRouteUsage(t *testing.T) {
	part := device.SLG46620Class()
	prog := placedProgram(t, part, "../../testdata/netlist/trivial.yaml")

	tally, err := Run(prog.N, part, prog.Ports)
	require.NoError(t, err)
	assert.Equal(t, 1, tally.RoutesTotal)
	total := 0
	for _, n := range tally.MatrixUsage {
		total += n
	}
	assert.Equal(t, 1, total)
}

func TestRunDerivesOscillatorPowerDownFromWiring(t *testing.T) {
	part := device.SLG46620Class()
	prog := placedProgram(t, part, "../../testdata/netlist/osc_powerdown_conflict.yaml")

	_, err := Run(prog.N, part, prog.Ports)
	require.NoError(t, err)

	ring, ok := part.Site("RINGOSC0")
	require.True(t, ok)
	lf, ok := part.Site("LFOSC0")
	require.True(t, ok)

	assert.True(t, ring.Config().PowerDown)
	assert.True(t, lf.Config().PowerDown)
	assert.NotEqual(t, ring.Config().PowerDownSource, "GND")
	assert.NotEqual(t, ring.Config().PowerDownSource, lf.Config().PowerDownSource)
}

func TestRunIsIdempotent(t *testing.T) {
	part := device.SLG46620Class()
	prog := placedProgram(t, part, "../../testdata/netlist/trivial.yaml")

	first, err := Run(prog.N, part, prog.Ports)
	require.NoError(t, err)
	second, err := Run(prog.N, part, prog.Ports)
	require.NoError(t, err)

	assert.Equal(t, first.RoutesTotal, second.RoutesTotal)

	iob3, _ := part.Site("IOB3")
	assert.Equal(t, "out", iob3.Config().Mode)
}
