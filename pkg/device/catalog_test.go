package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPartFile(t *testing.T) {
	part, err := LoadPartFile("../../testdata/device/mini.yaml")
	require.NoError(t, err)
	assert.Equal(t, "MINI", part.ID)

	iob, ok := part.IOBByPin(1)
	require.True(t, ok)
	assert.Equal(t, "IOB1", iob.Name())

	_, ok = part.Site("LUT0")
	assert.True(t, ok)
	_, ok = part.Site("DFF0")
	assert.True(t, ok)
	_, ok = part.Site("VDD")
	assert.True(t, ok)
	_, ok = part.Site("GND")
	assert.True(t, ok)
}

func TestLoadPartDefaultsMatrixAndPORSignal(t *testing.T) {
	r := strings.NewReader(`
id: NOEXTRA
iobs:
  - name: IOB1
    pin: 1
`)
	part, err := LoadPart(r)
	require.NoError(t, err)
	assert.Equal(t, "POR_DONE", part.PORDoneSignal)
	_, ok := part.Site("MATRIX_0")
	assert.True(t, ok)
}

func TestLoadPartRejectsUnknownFields(t *testing.T) {
	r := strings.NewReader(`
id: BAD
bogus_field: 1
`)
	_, err := LoadPart(r)
	assert.Error(t, err)
}

func TestLoadPartRejectsInvalidLUTWidth(t *testing.T) {
	r := strings.NewReader(`
id: BAD
luts:
  - name: LUT0
    width: 9
`)
	_, err := LoadPart(r)
	assert.Error(t, err)
}

func TestFullCrossbarConnectsEveryNonSwitchPair(t *testing.T) {
	part, err := LoadPartFile("../../testdata/device/mini.yaml")
	require.NoError(t, err)

	edges := part.ReachFrom("IOB1", "OUT")
	require.NotEmpty(t, edges)

	var toNames []string
	for _, e := range edges {
		toNames = append(toNames, e.ToSite)
	}
	assert.Contains(t, toNames, "DFF0")
	assert.NotContains(t, toNames, "IOB1")
}
