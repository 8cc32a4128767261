// Package core_test validates the DCOP data model: domain ordering,
// variable cost functions, mode helpers, and agent definitions.
package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvldcop/core"
)

func TestNewDomain_OrderIsStable(t *testing.T) {
	d, err := core.NewDomain("colors", "color", "R", "G", "B")
	require.NoError(t, err)
	require.Equal(t, 3, d.Len())
	// Iteration order must match construction order.
	require.Equal(t, []core.Value{"R", "G", "B"}, d.Values())
	require.Equal(t, "G", d.At(1))
}

func TestNewDomain_Empty(t *testing.T) {
	_, err := core.NewDomain("void", "int")
	require.ErrorIs(t, err, core.ErrEmptyDomain)
}

func TestNewDomain_EmptyName(t *testing.T) {
	_, err := core.NewDomain("", "int", 1)
	require.ErrorIs(t, err, core.ErrEmptyName)
}

func TestDomain_IndexOf(t *testing.T) {
	d := core.MustDomain("d", "int", 10, 20, 30)
	i, err := d.IndexOf(20)
	require.NoError(t, err)
	require.Equal(t, 1, i)

	_, err = d.IndexOf(42)
	require.ErrorIs(t, err, core.ErrValueNotInDomain)
	require.False(t, d.Contains(42))
	require.True(t, d.Contains(30))
}

func TestVariable_CostForVal(t *testing.T) {
	d := core.MustDomain("d", "int", 1, 2, 3)
	plain := core.MustVariable("x", d)
	require.False(t, plain.HasCostFunc())
	require.Equal(t, 0.0, plain.CostForVal(2))

	costly := core.MustVariableWithCost("y", d, func(v core.Value) float64 {
		return float64(v.(int)) * 2
	})
	require.True(t, costly.HasCostFunc())
	require.Equal(t, 4.0, costly.CostForVal(2))
}

func TestAssignment_Filter(t *testing.T) {
	a := core.Assignment{"x1": 1, "x2": 2, "x3": 3}
	got := a.Filter([]string{"x1", "x3", "x9"})
	require.Equal(t, core.Assignment{"x1": 1, "x3": 3}, got)

	dup := a.Copy()
	dup["x1"] = 7
	require.Equal(t, 1, a["x1"], "Copy must not alias the original")
}

func TestMode_Helpers(t *testing.T) {
	require.True(t, core.Min.Valid())
	require.True(t, core.Max.Valid())
	require.False(t, core.Mode("avg").Valid())

	// Worst values must lose against any real cost.
	require.True(t, core.Better(core.Min, 10, core.WorstCost(core.Min)))
	require.True(t, core.Better(core.Max, -10, core.WorstCost(core.Max)))
	// Strictness: equal is not better.
	require.False(t, core.Better(core.Min, 5, 5))
}

func TestAgentDef_Costs(t *testing.T) {
	a, err := core.NewAgentDef("a1",
		core.WithCapacity(100),
		core.WithHostingCosts(map[string]float64{"v1": 0}),
		core.WithDefaultHostingCost(5),
		core.WithRoutes(map[string]float64{"a2": 3}),
		core.WithDefaultRoute(2),
	)
	require.NoError(t, err)
	require.Equal(t, "a1", a.Name())
	require.Equal(t, 100, a.Capacity())
	require.Equal(t, 0.0, a.HostingCost("v1"))
	require.Equal(t, 5.0, a.HostingCost("v9"))
	require.Equal(t, 3.0, a.Route("a2"))
	require.Equal(t, 2.0, a.Route("a7"))
	require.Equal(t, 0.0, a.Route("a1"), "route to self is free")
}

func TestAgentDef_EmptyName(t *testing.T) {
	_, err := core.NewAgentDef("")
	require.ErrorIs(t, err, core.ErrEmptyName)
}
