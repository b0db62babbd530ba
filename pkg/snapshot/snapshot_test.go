package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parforge/gopar/pkg/build"
	"github.com/parforge/gopar/pkg/commit"
	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/netlist"
	"github.com/parforge/gopar/pkg/par"
)

func committedFixture(t *testing.T) (*build.Program, *device.Part) {
	t.Helper()
	part := device.SLG46620Class()
	prog := build.NewProgram(part)
	require.NoError(t, build.BuildDevice(prog))
	mod, err := netlist.LoadFile("../../testdata/netlist/trivial.yaml")
	require.NoError(t, err)
	_, err = build.BuildNetlist(mod, prog)
	require.NoError(t, err)
	require.NoError(t, par.InitialPlacement(prog.N, prog.D))
	_, err = commit.Run(prog.N, part, prog.Ports)
	require.NoError(t, err)
	return prog, part
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	prog, part := committedFixture(t)
	snap := Capture(prog.N, part)

	data, err := Encode(snap)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, snap.Part, got.Part)
	assert.ElementsMatch(t, snap.Placement, got.Placement)
	assert.Len(t, got.Sites, len(snap.Sites))
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode([]byte{0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0})
	assert.Error(t, err)
}

func TestDecodeRejectsTamperedChecksum(t *testing.T) {
	prog, part := committedFixture(t)
	snap := Capture(prog.N, part)
	data, err := Encode(snap)
	require.NoError(t, err)

	tampered := append([]byte(nil), data...)
	tampered[len(tampered)-1] ^= 0xFF // corrupt the trailing checksum byte

	_, err = Decode(tampered)
	assert.Error(t, err)
}

func TestWriteFileReadFileRoundTrip(t *testing.T) {
	prog, part := committedFixture(t)
	snap := Capture(prog.N, part)

	path := filepath.Join(t.TempDir(), "snap.bin")
	require.NoError(t, WriteFile(path, snap))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Part, got.Part)
}

func TestApplyRestoresCommitState(t *testing.T) {
	prog, part := committedFixture(t)
	snap := Capture(prog.N, part)

	fresh := device.SLG46620Class()
	require.NoError(t, Apply(fresh, snap))

	iob3, ok := fresh.Site("IOB3")
	require.True(t, ok)
	assert.Equal(t, "out", iob3.Config().Mode)
	assert.True(t, iob3.Config().Enabled)
}
