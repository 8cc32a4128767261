package solve_test

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/lvldcop/algorithms"
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/graphs"
	"github.com/katalvlaran/lvldcop/relations"
	"github.com/katalvlaran/lvldcop/solve"
)

// ExampleSolve solves a two-variable graph-coloring problem with DPOP:
// one binary constraint charging 1 when both variables share a color.
func ExampleSolve() {
	colors := core.MustDomain("colors", "color", "R", "B")
	x1 := core.MustVariable("x1", colors)
	x2 := core.MustVariable("x2", colors)
	clash := relations.NewFunctional("clash", []*core.Variable{x1, x2},
		func(a core.Assignment) float64 {
			if a["x1"] == a["x2"] {
				return 1
			}

			return 0
		})

	g, err := graphs.BuildPseudoTree([]*core.Variable{x1, x2}, []relations.Constraint{clash})
	if err != nil {
		fmt.Println(err)

		return
	}
	def, err := algorithms.BuildWithDefaultParams("dpop", nil, core.Min)
	if err != nil {
		fmt.Println(err)

		return
	}

	result, err := solve.Solve(context.Background(), g, def, solve.WithTimeout(5*time.Second))
	if err != nil {
		fmt.Println(err)

		return
	}
	fmt.Printf("%s cost=%v distinct=%v\n",
		result.Status, result.Cost, result.Assignment["x1"] != result.Assignment["x2"])
	// Output:
	// FINISHED cost=0 distinct=true
}
