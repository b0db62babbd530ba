package par

import (
	"math/rand/v2"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parforge/gopar/pkg/build"
	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/diag"
	"github.com/parforge/gopar/pkg/netlist"
)

func mustProgram(t *testing.T, part *device.Part, netlistPath string) *build.Program {
	t.Helper()
	prog := build.NewProgram(part)
	require.NoError(t, build.BuildDevice(prog))
	mod, err := netlist.LoadFile(netlistPath)
	require.NoError(t, err)
	_, err = build.BuildNetlist(mod, prog)
	require.NoError(t, err)
	return prog
}

func TestRunSolvesTrivialPassthrough(t *testing.T) {
	prog := mustProgram(t, device.SLG46620Class(), "../../testdata/netlist/trivial.yaml")
	sink := diag.NewCaptureSink()

	result, err := Run(prog.N, prog.D, Config{Seed: 1, MaxIterations: 5000}, sink)
	require.NoError(t, err)
	assert.True(t, result.Solved)
	assert.Equal(t, 0, result.Score)
}

func TestRunIsDeterministicForFixedSeed(t *testing.T) {
	run := func() Result {
		prog := mustProgram(t, device.SLG46620Class(), "../../testdata/netlist/acmp_shared_compatible.yaml")
		sink := diag.NewCaptureSink()
		result, err := Run(prog.N, prog.D, Config{Seed: 42, MaxIterations: 5000}, sink)
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Iterations, second.Iterations)
	assert.Equal(t, first.Solved, second.Solved)
}

func TestInitialPlacementRejectsInfeasibleNetlist(t *testing.T) {
	prog := build.NewProgram(device.SLG46826Class())
	require.NoError(t, build.BuildDevice(prog))
	mod, err := netlist.LoadFile("../../testdata/netlist/too_many_counters.yaml")
	require.NoError(t, err)
	_, err = build.BuildNetlist(mod, prog)
	require.NoError(t, err)

	err = InitialPlacement(prog.N, prog.D)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device too small")
	assert.Contains(t, err.Error(), "CNT_A")
	assert.Contains(t, err.Error(), "CNT_D")
}

func TestScoreZeroOnFullyMatedCompatibleGraphs(t *testing.T) {
	prog := mustProgram(t, device.SLG46620Class(), "../../testdata/netlist/trivial.yaml")
	require.NoError(t, InitialPlacement(prog.N, prog.D))
	assert.Equal(t, 0, Score(prog.N))
}

func TestCoolingTempMonotonicallyDecreasing(t *testing.T) {
	assert.Equal(t, 1.0, coolingTemp(0, 100))
	assert.InDelta(t, 0.5, coolingTemp(50, 100), 0.001)
	assert.Equal(t, 0.01, coolingTemp(100, 100))
	assert.Equal(t, 0.01, coolingTemp(0, 0))
}

func TestAcceptAlwaysTakesImprovingMoves(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	assert.True(t, accept(rng, 5, 3, 0, 100))
}

// TestRunConvergesProperty checks that for a range of seeds the engine
// either converges to score zero or exhausts its budget without error, for
// a netlist that is always placeable on its target part.
func TestRunConvergesProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 8
	properties := gopter.NewProperties(parameters)

	properties.Property("run never errors and always reports a non-negative score", prop.ForAll(
		func(seed uint64) bool {
			prog := mustProgram(t, device.SLG46620Class(), "../../testdata/netlist/trivial.yaml")
			sink := diag.NewCaptureSink()
			result, err := Run(prog.N, prog.D, Config{Seed: seed, MaxIterations: 2000}, sink)
			return err == nil && result.Score >= 0
		},
		gen.UInt64Range(1, 1000),
	))

	properties.TestingRun(t)
}
