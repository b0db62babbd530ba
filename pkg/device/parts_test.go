package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSLG46620ClassSharedMuxGroup(t *testing.T) {
	part := SLG46620Class()
	require.Contains(t, part.ACMPGroups, "shared0")
	assert.ElementsMatch(t, []string{"ACMP0", "ACMP1"}, part.ACMPGroups["shared0"])

	site, ok := part.Site("ACMP0")
	require.True(t, ok)
	cmp, ok := site.(*Comparator)
	require.True(t, ok)
	assert.True(t, cmp.MuxOwner)

	site1, ok := part.Site("ACMP1")
	require.True(t, ok)
	cmp1 := site1.(*Comparator)
	assert.False(t, cmp1.MuxOwner)
}

func TestSLG46826ClassHasOnlyTwoCounters(t *testing.T) {
	part := SLG46826Class()
	assert.Len(t, part.SitesOfKind(KindCounter), 2)
	assert.Empty(t, part.ACMPGroups)
}

func TestSitesOfKindSortedByName(t *testing.T) {
	part := SLG46620Class()
	iobs := part.SitesOfKind(KindIOB)
	require.Len(t, iobs, 8)
	for i := 1; i < len(iobs); i++ {
		assert.Less(t, iobs[i-1].Name(), iobs[i].Name())
	}
}

func TestPowerRailAlwaysUsed(t *testing.T) {
	part := SLG46620Class()
	vdd, ok := part.Site("VDD")
	require.True(t, ok)
	assert.True(t, vdd.IsUsed())
}
