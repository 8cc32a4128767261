// Package relations_test validates the relation algebra: dense storage,
// slicing, join/projection identities, arg-optimal tie sets and assignment
// costs.
package relations_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/relations"
)

// twoColorVars returns x1, x2 over {R, B}.
func twoColorVars() (*core.Variable, *core.Variable) {
	d := core.MustDomain("colors", "color", "R", "B")

	return core.MustVariable("x1", d), core.MustVariable("x2", d)
}

// equalityCost returns 1 when all scope values are equal, 0 otherwise.
func equalityCost(a core.Assignment) float64 {
	var first core.Value
	seen := false
	for _, v := range a {
		if !seen {
			first, seen = v, true
			continue
		}
		if v != first {
			return 0
		}
	}

	return 1
}

func TestMatrixRelation_DenseInvariant(t *testing.T) {
	x1, x2 := twoColorVars()
	m := relations.NewMatrix("c", []*core.Variable{x1, x2})
	// Exactly ∏|dom| entries.
	require.Equal(t, 4, m.Size())
	require.Equal(t, []string{"x1", "x2"}, relations.ScopeNames(m))
}

func TestMatrixRelation_SetGet(t *testing.T) {
	x1, x2 := twoColorVars()
	m := relations.NewMatrix("c", []*core.Variable{x1, x2})
	require.NoError(t, m.SetValueForAssignment(core.Assignment{"x1": "R", "x2": "B"}, 3))

	got, err := m.GetValueForAssignment(core.Assignment{"x1": "R", "x2": "B"})
	require.NoError(t, err)
	require.Equal(t, 3.0, got)

	// Untouched cells stay zero.
	got, err = m.GetValueForAssignment(core.Assignment{"x1": "B", "x2": "B"})
	require.NoError(t, err)
	require.Equal(t, 0.0, got)

	// Positional hot path agrees with the by-name path.
	require.Equal(t, 3.0, m.At([]int{0, 1}))
}

func TestMatrixRelation_ScopeMismatch(t *testing.T) {
	x1, x2 := twoColorVars()
	m := relations.NewMatrix("c", []*core.Variable{x1, x2})

	_, err := m.GetValueForAssignment(core.Assignment{"x1": "R"})
	require.ErrorIs(t, err, relations.ErrScopeMismatch)

	err = m.SetValueForAssignment(core.Assignment{"x1": "R", "x2": "purple"}, 1)
	require.ErrorIs(t, err, relations.ErrScopeMismatch)
}

func TestMatrixRelation_Slice(t *testing.T) {
	x1, x2 := twoColorVars()
	m, err := relations.ToMatrix(relations.NewFunctional("eq", []*core.Variable{x1, x2}, equalityCost))
	require.NoError(t, err)

	sliced, err := m.Slice(core.Assignment{"x1": "R"})
	require.NoError(t, err)
	require.Equal(t, []string{"x2"}, relations.ScopeNames(sliced))

	cost, err := sliced.GetValueForAssignment(core.Assignment{"x2": "R"})
	require.NoError(t, err)
	require.Equal(t, 1.0, cost)
	cost, err = sliced.GetValueForAssignment(core.Assignment{"x2": "B"})
	require.NoError(t, err)
	require.Equal(t, 0.0, cost)

	_, err = m.Slice(core.Assignment{"x9": "R"})
	require.ErrorIs(t, err, relations.ErrVariableNotInScope)
}

func TestUnaryFromCosts(t *testing.T) {
	d := core.MustDomain("lum", "int", 0, 1, 2)
	v := core.MustVariableWithCost("x", d, func(val core.Value) float64 {
		return float64(val.(int)) * 10
	})
	m := relations.UnaryFromCosts("unary_x", v)
	cost, err := m.GetValueForAssignment(core.Assignment{"x": 2})
	require.NoError(t, err)
	require.Equal(t, 20.0, cost)
}

func TestJoin_SumsAndOrdersScope(t *testing.T) {
	d := core.MustDomain("colors", "color", "R", "B")
	x1 := core.MustVariable("x1", d)
	x2 := core.MustVariable("x2", d)
	x3 := core.MustVariable("x3", d)

	c12 := relations.NewFunctional("c12", []*core.Variable{x1, x2}, equalityCost)
	c23 := relations.NewFunctional("c23", []*core.Variable{x2, x3}, equalityCost)

	joined, err := relations.Join(c12, c23)
	require.NoError(t, err)
	// Ordered union: x1, x2 then the new x3.
	require.Equal(t, []string{"x1", "x2", "x3"}, relations.ScopeNames(joined))

	cost, err := joined.GetValueForAssignment(core.Assignment{"x1": "R", "x2": "R", "x3": "R"})
	require.NoError(t, err)
	require.Equal(t, 2.0, cost)
	cost, err = joined.GetValueForAssignment(core.Assignment{"x1": "R", "x2": "B", "x3": "R"})
	require.NoError(t, err)
	require.Equal(t, 0.0, cost)
}

func TestJoin_EmptyScopeIsIdentity(t *testing.T) {
	x1, x2 := twoColorVars()
	empty := relations.NewMatrix("joined_utils", nil)
	c, err := relations.ToMatrix(relations.NewFunctional("eq", []*core.Variable{x1, x2}, equalityCost))
	require.NoError(t, err)

	joined, err := relations.Join(empty, c)
	require.NoError(t, err)
	require.Equal(t, relations.ScopeNames(c), relations.ScopeNames(joined))
	err = relations.ForEachAssignment(joined.Dimensions(), func(a core.Assignment) error {
		want, _ := c.Apply(a)
		got, _ := joined.Apply(a)
		require.Equal(t, want, got)

		return nil
	})
	require.NoError(t, err)
}

func TestJoin_SemanticCommutativity(t *testing.T) {
	d := core.MustDomain("colors", "color", "R", "B")
	x1 := core.MustVariable("x1", d)
	x2 := core.MustVariable("x2", d)
	x3 := core.MustVariable("x3", d)
	c12 := relations.NewFunctional("c12", []*core.Variable{x1, x2}, equalityCost)
	c23 := relations.NewFunctional("c23", []*core.Variable{x2, x3}, equalityCost)

	ab, err := relations.Join(c12, c23)
	require.NoError(t, err)
	ba, err := relations.Join(c23, c12)
	require.NoError(t, err)

	// Scope order may differ but the relations are equal as functions.
	err = relations.ForEachAssignment(ab.Dimensions(), func(a core.Assignment) error {
		va, _ := ab.Apply(a)
		vb, _ := ba.Apply(a)
		require.Equal(t, va, vb)

		return nil
	})
	require.NoError(t, err)
}

func TestProject_EliminatesVariable(t *testing.T) {
	x1, x2 := twoColorVars()
	c, err := relations.ToMatrix(relations.NewFunctional("eq", []*core.Variable{x1, x2}, equalityCost))
	require.NoError(t, err)

	p, err := relations.Project(c, x2, core.Min)
	require.NoError(t, err)
	require.Equal(t, []string{"x1"}, relations.ScopeNames(p))
	// For either x1 value, some x2 avoids the clash: min is 0.
	for _, v := range []core.Value{"R", "B"} {
		cost, perr := p.GetValueForAssignment(core.Assignment{"x1": v})
		require.NoError(t, perr)
		require.Equal(t, 0.0, cost)
	}

	pmax, err := relations.Project(c, x2, core.Max)
	require.NoError(t, err)
	cost, err := pmax.GetValueForAssignment(core.Assignment{"x1": "R"})
	require.NoError(t, err)
	require.Equal(t, 1.0, cost)
}

func TestProject_SingletonDomainIdentity(t *testing.T) {
	// Join-projection identity: |dom(x)| == 1 means projecting x out leaves
	// the values unchanged.
	dx := core.MustDomain("single", "color", "R")
	dy := core.MustDomain("colors", "color", "R", "B")
	x := core.MustVariable("x", dx)
	y := core.MustVariable("y", dy)
	c, err := relations.ToMatrix(relations.NewFunctional("eq", []*core.Variable{x, y}, equalityCost))
	require.NoError(t, err)

	p, err := relations.Project(c, x, core.Min)
	require.NoError(t, err)
	require.Equal(t, []string{"y"}, relations.ScopeNames(p))
	for _, v := range []core.Value{"R", "B"} {
		want, _ := c.Apply(core.Assignment{"x": "R", "y": v})
		got, perr := p.GetValueForAssignment(core.Assignment{"y": v})
		require.NoError(t, perr)
		require.Equal(t, want, got)
	}

	_, err = relations.Project(c, core.MustVariable("z", dy), core.Min)
	require.ErrorIs(t, err, relations.ErrVariableNotInScope)
}

func TestFindArgOptimal_TieSet(t *testing.T) {
	d := core.MustDomain("d", "int", 1, 2, 3, 4)
	x := core.MustVariable("x", d)
	// Costs: 1→5, 2→2, 3→2, 4→9. Min ties on {2, 3} in domain order.
	costs := map[int]float64{1: 5, 2: 2, 3: 2, 4: 9}
	r := relations.NewFunctional("u", []*core.Variable{x}, func(a core.Assignment) float64 {
		return costs[a["x"].(int)]
	})

	vals, best, err := relations.FindArgOptimal(x, r, core.Min)
	require.NoError(t, err)
	require.Equal(t, []core.Value{2, 3}, vals)
	require.Equal(t, 2.0, best)

	vals, best, err = relations.FindArgOptimal(x, r, core.Max)
	require.NoError(t, err)
	require.Equal(t, []core.Value{4}, vals)
	require.Equal(t, 9.0, best)
}

func TestFindArgOptimal_RejectsMultiVariable(t *testing.T) {
	x1, x2 := twoColorVars()
	c := relations.NewFunctional("eq", []*core.Variable{x1, x2}, equalityCost)
	_, _, err := relations.FindArgOptimal(x1, c, core.Min)
	require.ErrorIs(t, err, relations.ErrNotUnary)
}

func TestFindOptimum(t *testing.T) {
	x1, x2 := twoColorVars()
	c := relations.NewFunctional("eq", []*core.Variable{x1, x2}, equalityCost)
	best, err := relations.FindOptimum(c, core.Min)
	require.NoError(t, err)
	require.Equal(t, 0.0, best)
	best, err = relations.FindOptimum(c, core.Max)
	require.NoError(t, err)
	require.Equal(t, 1.0, best)
}

func TestForEachAssignment_CanonicalOrder(t *testing.T) {
	x1, x2 := twoColorVars()
	all := relations.AllAssignments([]*core.Variable{x1, x2})
	// First variable slowest: RR, RB, BR, BB.
	require.Equal(t, []core.Assignment{
		{"x1": "R", "x2": "R"},
		{"x1": "R", "x2": "B"},
		{"x1": "B", "x2": "R"},
		{"x1": "B", "x2": "B"},
	}, all)
}

func TestForEachAssignment_EmptyScope(t *testing.T) {
	calls := 0
	err := relations.ForEachAssignment(nil, func(a core.Assignment) error {
		calls++
		require.Empty(t, a)

		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestAssignmentCosts(t *testing.T) {
	d := core.MustDomain("colors", "color", "R", "B")
	x1 := core.MustVariableWithCost("x1", d, func(v core.Value) float64 {
		if v == "R" {
			return 1
		}

		return 0
	})
	x2 := core.MustVariable("x2", d)
	c := relations.NewFunctional("eq", []*core.Variable{x1, x2}, equalityCost)

	a := core.Assignment{"x1": "R", "x2": "R"}
	cost, err := relations.AssignmentCost(a, []relations.Constraint{c})
	require.NoError(t, err)
	require.Equal(t, 1.0, cost)

	total, err := relations.TotalAssignmentCost(a, []relations.Constraint{c})
	require.NoError(t, err)
	require.Equal(t, 2.0, total, "constraint cost plus x1's unary cost")
}

func TestConstraintsForVariable(t *testing.T) {
	d := core.MustDomain("colors", "color", "R", "B")
	x1 := core.MustVariable("x1", d)
	x2 := core.MustVariable("x2", d)
	x3 := core.MustVariable("x3", d)
	c12 := relations.NewFunctional("c12", []*core.Variable{x1, x2}, equalityCost)
	c23 := relations.NewFunctional("c23", []*core.Variable{x2, x3}, equalityCost)

	involved := relations.ConstraintsForVariable([]relations.Constraint{c12, c23}, "x1")
	require.Len(t, involved, 1)
	require.Equal(t, "c12", involved[0].Name())
}
