// Package syncbb_test validates the chain search: path helpers, value
// candidates, the forward/backward protocol, and full runs checked against
// brute-force optima.
package syncbb_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvldcop/algorithms"
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/graphs"
	"github.com/katalvlaran/lvldcop/relations"
	"github.com/katalvlaran/lvldcop/solve"
	"github.com/katalvlaran/lvldcop/syncbb"
)

// sumConstraint builds cost = Σ values over the scope (int domains).
func sumConstraint(name string, vars ...*core.Variable) relations.Constraint {
	return relations.NewFunctional(name, vars, func(a core.Assignment) float64 {
		total := 0.0
		for _, v := range a {
			total += float64(v.(int))
		}

		return total
	})
}

func syncbbDef(t *testing.T, mode core.Mode) *algorithms.AlgoDef {
	t.Helper()
	def, err := algorithms.BuildWithDefaultParams(syncbb.AlgorithmName, nil, mode)
	require.NoError(t, err)

	return def
}

func TestValueCandidates(t *testing.T) {
	d := core.MustDomain("d", "int", 1, 2, 3, 4)
	v := core.MustVariable("x", d)

	require.Equal(t, []core.Value{1, 2, 3, 4}, syncbb.ValueCandidates(v, nil))
	require.Equal(t, []core.Value{3, 4}, syncbb.ValueCandidates(v, 2))
	require.Empty(t, syncbb.ValueCandidates(v, 4))
}

func TestPathHelpers(t *testing.T) {
	p := syncbb.Path{
		{Variable: "x1", Value: 0, Cost: 0},
		{Variable: "x2", Value: 1, Cost: 2},
	}
	require.Equal(t, 2.0, p.Cost())
	require.Equal(t, core.Assignment{"x1": 0, "x2": 1}, p.Assignment())
}

func TestMessageSizes(t *testing.T) {
	p := syncbb.Path{{Variable: "x1", Value: 0, Cost: 0}}
	require.Equal(t, 4, syncbb.ForwardMessage{CurrentPath: p}.Size())
	require.Equal(t, 4, syncbb.BackwardMessage{CurrentPath: p}.Size())
	require.Equal(t, 1, syncbb.TerminateMessage{}.Size())
}

func chainGraph(t *testing.T) *graphs.Graph {
	t.Helper()
	d := core.MustDomain("bits", "int", 0, 1)
	x1 := core.MustVariable("x1", d)
	x2 := core.MustVariable("x2", d)
	x3 := core.MustVariable("x3", d)
	g, err := graphs.BuildOrderedGraph([]*core.Variable{x1, x2, x3},
		[]relations.Constraint{
			sumConstraint("c12", x1, x2),
			sumConstraint("c23", x2, x3),
		})
	require.NoError(t, err)

	return g
}

// TestSolve_ThreeVariableChain is the canonical scenario: minimizing
// x1+x2 and x2+x3 over {0,1}³ lands on the all-zero assignment at cost 0.
func TestSolve_ThreeVariableChain(t *testing.T) {
	g := chainGraph(t)
	result, err := solve.Solve(context.Background(), g, syncbbDef(t, core.Min),
		solve.WithTimeout(5*time.Second))
	require.NoError(t, err)
	require.Equal(t, solve.StatusFinished, result.Status)
	require.Equal(t, core.Assignment{"x1": 0, "x2": 0, "x3": 0}, result.Assignment)
	require.Equal(t, 0.0, result.Cost)
}

func TestSolve_MaxMode(t *testing.T) {
	g := chainGraph(t)
	result, err := solve.Solve(context.Background(), g, syncbbDef(t, core.Max),
		solve.WithTimeout(5*time.Second))
	require.NoError(t, err)
	require.Equal(t, solve.StatusFinished, result.Status)
	require.Equal(t, core.Assignment{"x1": 1, "x2": 1, "x3": 1}, result.Assignment)
	require.Equal(t, 4.0, result.Cost)
}

// TestSolve_OptimalAgainstBruteForce uses an asymmetric tabular problem so
// pruning actually has something to cut.
func TestSolve_OptimalAgainstBruteForce(t *testing.T) {
	d := core.MustDomain("tri", "int", 0, 1, 2)
	x1 := core.MustVariable("x1", d)
	x2 := core.MustVariable("x2", d)
	x3 := core.MustVariable("x3", d)
	vars := []*core.Variable{x1, x2, x3}

	costs12 := map[[2]int]float64{
		{0, 0}: 4, {0, 1}: 1, {0, 2}: 7,
		{1, 0}: 2, {1, 1}: 6, {1, 2}: 3,
		{2, 0}: 5, {2, 1}: 8, {2, 2}: 2,
	}
	costs23 := map[[2]int]float64{
		{0, 0}: 3, {0, 1}: 5, {0, 2}: 2,
		{1, 0}: 6, {1, 1}: 1, {1, 2}: 4,
		{2, 0}: 2, {2, 1}: 7, {2, 2}: 9,
	}
	c12 := relations.NewFunctional("c12", []*core.Variable{x1, x2}, func(a core.Assignment) float64 {
		return costs12[[2]int{a["x1"].(int), a["x2"].(int)}]
	})
	c23 := relations.NewFunctional("c23", []*core.Variable{x2, x3}, func(a core.Assignment) float64 {
		return costs23[[2]int{a["x2"].(int), a["x3"].(int)}]
	})
	cs := []relations.Constraint{c12, c23}
	g, err := graphs.BuildOrderedGraph(vars, cs)
	require.NoError(t, err)

	result, err := solve.Solve(context.Background(), g, syncbbDef(t, core.Min),
		solve.WithTimeout(5*time.Second))
	require.NoError(t, err)
	require.Equal(t, solve.StatusFinished, result.Status)

	best := core.WorstCost(core.Min)
	err = relations.ForEachAssignment(vars, func(a core.Assignment) error {
		cost, cerr := relations.TotalAssignmentCost(a, cs)
		if cerr != nil {
			return cerr
		}
		if cost < best {
			best = cost
		}

		return nil
	})
	require.NoError(t, err)
	require.Equal(t, best, result.Cost)

	got, err := relations.TotalAssignmentCost(result.Assignment, cs)
	require.NoError(t, err)
	require.Equal(t, best, got, "reported assignment must realize the optimum")
}

// TestSolve_TieKeepsEarlierPath: with all costs equal, strict-inequality
// comparison keeps the first complete path — every variable at its first
// domain value.
func TestSolve_TieKeepsEarlierPath(t *testing.T) {
	d := core.MustDomain("colors", "color", "R", "B")
	x1 := core.MustVariable("x1", d)
	x2 := core.MustVariable("x2", d)
	flat := relations.NewFunctional("flat", []*core.Variable{x1, x2}, func(core.Assignment) float64 {
		return 1
	})
	g, err := graphs.BuildOrderedGraph([]*core.Variable{x1, x2}, []relations.Constraint{flat})
	require.NoError(t, err)

	result, err := solve.Solve(context.Background(), g, syncbbDef(t, core.Min),
		solve.WithTimeout(5*time.Second))
	require.NoError(t, err)
	require.Equal(t, solve.StatusFinished, result.Status)
	require.Equal(t, core.Assignment{"x1": "R", "x2": "R"}, result.Assignment)
	require.Equal(t, 1.0, result.Cost)
}

func TestSolve_SingleVariableChain(t *testing.T) {
	d := core.MustDomain("lum", "int", 2, 0, 1)
	x1 := core.MustVariableWithCost("x1", d, func(v core.Value) float64 {
		return float64(v.(int))
	})
	g, err := graphs.BuildOrderedGraph([]*core.Variable{x1}, nil)
	require.NoError(t, err)

	result, err := solve.Solve(context.Background(), g, syncbbDef(t, core.Min),
		solve.WithTimeout(5*time.Second))
	require.NoError(t, err)
	require.Equal(t, solve.StatusFinished, result.Status)
	require.Equal(t, 0, result.Assignment["x1"])
	require.Equal(t, 0.0, result.Cost)
}

// TestProtocol_BackwardWithoutForward is the protocol violation: a
// backward message reaching a computation that never forwarded.
func TestProtocol_BackwardWithoutForward(t *testing.T) {
	g := chainGraph(t)
	def := syncbbDef(t, core.Min)
	node, err := g.Computation("x2")
	require.NoError(t, err)
	comp, err := syncbb.NewComputation(algorithms.NewComputationDef(node, def))
	require.NoError(t, err)

	bwd := syncbb.BackwardMessage{
		CurrentPath: syncbb.Path{{Variable: "x2", Value: 0, Cost: 0}},
		UB:          10,
	}
	err = comp.HandleMessage("x3", bwd, time.Now())
	require.ErrorIs(t, err, syncbb.ErrNoForward)
}

func TestNewComputation_WrongAlgorithm(t *testing.T) {
	g := chainGraph(t)
	node, err := g.Computation("x1")
	require.NoError(t, err)
	def, err := algorithms.BuildWithDefaultParams("dpop", nil, core.Min)
	require.NoError(t, err)
	_, err = syncbb.NewComputation(algorithms.NewComputationDef(node, def))
	require.ErrorIs(t, err, syncbb.ErrWrongAlgorithm)
}
