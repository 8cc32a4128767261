// Package solve_test validates run orchestration: configuration failures,
// statuses (FINISHED / TIMEOUT / STOPPED / ERROR), the error classifier
// and the YAML result shape.
package solve_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvldcop/algorithms"
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/dpop"
	"github.com/katalvlaran/lvldcop/dsa"
	"github.com/katalvlaran/lvldcop/engine"
	"github.com/katalvlaran/lvldcop/graphs"
	"github.com/katalvlaran/lvldcop/relations"
	"github.com/katalvlaran/lvldcop/solve"
	"github.com/katalvlaran/lvldcop/syncbb"
)

func differ(name string, vars ...*core.Variable) relations.Constraint {
	return relations.NewFunctional(name, vars, func(a core.Assignment) float64 {
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
	})
}

func coloringHypergraph(t *testing.T) *graphs.Graph {
	t.Helper()
	d := core.MustDomain("colors", "color", "R", "B")
	x1 := core.MustVariable("x1", d)
	x2 := core.MustVariable("x2", d)
	g, err := graphs.BuildHypergraph([]*core.Variable{x1, x2},
		[]relations.Constraint{differ("c1", x1, x2)})
	require.NoError(t, err)

	return g
}

func TestSolve_UnknownAlgorithm(t *testing.T) {
	g := coloringHypergraph(t)
	def := algorithms.NewAlgoDef("galaxy_search", nil, core.Min)
	result, err := solve.Solve(context.Background(), g, def)
	require.ErrorIs(t, err, algorithms.ErrUnknownAlgorithm)
	require.Equal(t, solve.StatusError, result.Status)
	require.Equal(t, solve.ClassConfiguration, result.Error)
}

func TestSolve_GraphKindMismatch(t *testing.T) {
	// DSA on a pseudo-tree graph must be rejected before anything runs.
	d := core.MustDomain("colors", "color", "R", "B")
	x1 := core.MustVariable("x1", d)
	g, err := graphs.BuildPseudoTree([]*core.Variable{x1}, nil)
	require.NoError(t, err)

	def, err := algorithms.BuildWithDefaultParams(dsa.AlgorithmName, nil, core.Min)
	require.NoError(t, err)
	result, serr := solve.Solve(context.Background(), g, def)
	require.ErrorIs(t, serr, solve.ErrGraphMismatch)
	require.Equal(t, solve.StatusError, result.Status)
	require.Equal(t, solve.ClassConfiguration, result.Error)
}

func TestSolve_Timeout(t *testing.T) {
	// DSA without stop_cycle never terminates by itself.
	g := coloringHypergraph(t)
	def, err := algorithms.BuildWithDefaultParams(dsa.AlgorithmName, nil, core.Min)
	require.NoError(t, err)

	result, err := solve.Solve(context.Background(), g, def,
		solve.WithTimeout(150*time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, solve.StatusTimeout, result.Status)
	// Values exist even on timeout: DSA selects every cycle.
	require.Len(t, result.Assignment, 2)
}

func TestSolve_Stopped(t *testing.T) {
	g := coloringHypergraph(t)
	def, err := algorithms.BuildWithDefaultParams(dsa.AlgorithmName, nil, core.Min)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()
	result, err := solve.Solve(ctx, g, def, solve.WithTimeout(10*time.Second))
	require.NoError(t, err)
	require.Equal(t, solve.StatusStopped, result.Status)
}

func TestSolve_Distribution(t *testing.T) {
	// Both computations on one agent: the run still settles.
	d := core.MustDomain("colors", "color", "R", "B")
	x1 := core.MustVariable("x1", d)
	x2 := core.MustVariable("x2", d)
	g, err := graphs.BuildPseudoTree([]*core.Variable{x1, x2},
		[]relations.Constraint{differ("c1", x1, x2)})
	require.NoError(t, err)

	def, err := algorithms.BuildWithDefaultParams(dpop.AlgorithmName, nil, core.Min)
	require.NoError(t, err)
	result, err := solve.Solve(context.Background(), g, def,
		solve.WithTimeout(5*time.Second),
		solve.WithDistribution(map[string]string{"x1": "a0", "x2": "a0"}))
	require.NoError(t, err)
	require.Equal(t, solve.StatusFinished, result.Status)
	require.Equal(t, 0.0, result.Cost)
}

func TestResult_YAMLShape(t *testing.T) {
	result := solve.Result{
		Assignment: core.Assignment{"v1": "G", "v2": "R"},
		Cost:       0,
		Duration:   2 * time.Second,
		Status:     solve.StatusFinished,
	}
	data, err := yaml.Marshal(result)
	require.NoError(t, err)
	text := string(data)
	require.Contains(t, text, "assignment:")
	require.Contains(t, text, "v1: G")
	require.Contains(t, text, "cost: 0")
	require.Contains(t, text, "status: FINISHED")
	require.NotContains(t, text, "error:")
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{algorithms.ErrUnknownAlgorithm, solve.ClassConfiguration},
		{algorithms.ErrInvalidParameter, solve.ClassConfiguration},
		{core.ErrBadMode, solve.ClassConfiguration},
		{solve.ErrGraphMismatch, solve.ClassConfiguration},
		{relations.ErrScopeMismatch, solve.ClassRelation},
		{relations.ErrNotUnary, solve.ClassRelation},
		{engine.ErrUnhandledMessage, solve.ClassComputation},
		{engine.ErrSenderAlreadySet, solve.ClassComputation},
		{dpop.ErrUnexpectedUtil, solve.ClassComputation},
		{dpop.ErrUnexpectedValue, solve.ClassProtocol},
		{syncbb.ErrNoForward, solve.ClassProtocol},
		{errors.New("anything else"), solve.ClassComputation},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, solve.Classify(tc.err), "classifying %v", tc.err)
	}
}
