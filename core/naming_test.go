package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvldcop/core"
)

func TestGenerateAgentsFromCount_PaddingAndUniqueness(t *testing.T) {
	agents := core.GenerateAgentsFromCount(100, "a")
	require.Len(t, agents, 100)
	require.Equal(t, "a00", agents[0])
	require.Equal(t, "a99", agents[99])

	seen := make(map[string]struct{}, len(agents))
	for _, name := range agents {
		require.Len(t, name, 3, "names are padded to two digits")
		seen[name] = struct{}{}
	}
	require.Len(t, seen, 100, "names are unique")
}

func TestGenerateAgentsFromCount_SingleDigit(t *testing.T) {
	agents := core.GenerateAgentsFromCount(5, "agt_")
	require.Equal(t, []string{"agt_0", "agt_1", "agt_2", "agt_3", "agt_4"}, agents)
}

func TestFindPrefix(t *testing.T) {
	require.Equal(t, "x", core.FindPrefix([]string{"x1", "x2", "x3"}))
	require.Equal(t, "", core.FindPrefix([]string{"x1", "x2", "V3"}))
	require.Equal(t, "vx", core.FindPrefix([]string{"vx1", "vx2"}))
	require.Equal(t, "", core.FindPrefix(nil))
}

func TestGenerateAgentsFromVariables(t *testing.T) {
	agents := core.GenerateAgentsFromVariables([]string{"v01", "v02", "v03"}, "a")
	require.Equal(t, []string{"a01", "a02", "a03"}, agents)
}

func TestFindCorrespondingVariables(t *testing.T) {
	got := core.FindCorrespondingVariables(
		[]string{"a1", "a2", "a3"},
		[]string{"v01", "v02", "v03"},
		"a", "v",
	)
	require.Equal(t, map[string]string{"a1": "v01", "a2": "v02", "a3": "v03"}, got)
}

func TestFindCorrespondingVariables_SkipsUnindexed(t *testing.T) {
	got := core.FindCorrespondingVariables(
		[]string{"a1", "director"},
		[]string{"v1", "anomaly"},
		"a", "v",
	)
	require.Equal(t, map[string]string{"a1": "v1"}, got)
}

func TestGenerateHostingCosts_NameMapping(t *testing.T) {
	costs := core.GenerateHostingCosts([]string{"a1", "a2"}, []string{"v1", "v2"})
	require.Equal(t, map[string]float64{"v1": 0}, costs["a1"])
	require.Equal(t, map[string]float64{"v2": 0}, costs["a2"])
}
