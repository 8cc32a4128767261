package relations

import (
	"fmt"

	"github.com/katalvlaran/lvldcop/core"
)

// Join builds a new tabular relation over the ordered union of the scopes:
// the variables of u1 first, followed by the variables of u2 not already
// present (in u2's order). For every complete assignment a over the joined
// scope, J(a) = u1(a|scope(u1)) + u2(a|scope(u2)).
//
// Joining with an empty-scope relation is the identity shifted by its
// single cell (0 for a fresh matrix).
// Complexity: the product of all involved domain sizes.
func Join(u1, u2 Constraint) (*MatrixRelation, error) {
	// 1) Ordered scope union.
	dims := append([]*core.Variable(nil), u1.Dimensions()...)
	for _, d2 := range u2.Dimensions() {
		present := false
		for _, d := range dims {
			if d.Name() == d2.Name() {
				present = true
				break
			}
		}
		if !present {
			dims = append(dims, d2)
		}
	}

	// 2) Fill the joined table cell by cell.
	joined := NewMatrix("joined", dims)
	err := ForEachAssignment(dims, func(a core.Assignment) error {
		c1, jerr := u1.Apply(a)
		if jerr != nil {
			return jerr
		}
		c2, jerr := u2.Apply(a)
		if jerr != nil {
			return jerr
		}

		return joined.SetValueForAssignment(a, c1+c2)
	})
	if err != nil {
		return nil, err
	}

	return joined, nil
}

// Project eliminates x from r by optimizing over dom(x): for every
// assignment a over scope(r) \ {x}, P(a) = opt over v in dom(x) of
// r(a ∪ {x↦v}). The remaining dimensions keep their order. Tie-breaking
// on the optimum value itself is unspecified; use FindArgOptimal for the
// tied value set.
func Project(r Constraint, x *core.Variable, mode core.Mode) (*MatrixRelation, error) {
	if !mode.Valid() {
		return nil, core.ErrBadMode
	}

	// 1) Remaining scope, order preserved.
	remaining := make([]*core.Variable, 0, len(r.Dimensions()))
	found := false
	for _, dim := range r.Dimensions() {
		if dim.Name() == x.Name() {
			found = true
			continue
		}
		remaining = append(remaining, dim)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s in projection of %s", ErrVariableNotInScope, x.Name(), r.Name())
	}

	// 2) Optimize x out for every remaining assignment.
	projected := NewMatrix(r.Name(), remaining)
	err := ForEachAssignment(remaining, func(a core.Assignment) error {
		best := core.WorstCost(mode)
		full := a.Copy()
		for i := 0; i < x.Domain().Len(); i++ {
			full[x.Name()] = x.Domain().At(i)
			cost, perr := r.Apply(full)
			if perr != nil {
				return perr
			}
			if core.Better(mode, cost, best) {
				best = cost
			}
		}

		return projected.SetValueForAssignment(a, best)
	})
	if err != nil {
		return nil, err
	}

	return projected, nil
}

// ArgOptimal scans x's domain with eval and returns every optimal value in
// domain order together with the optimum. The tie set is never empty.
func ArgOptimal(x *core.Variable, eval func(v core.Value) float64, mode core.Mode) ([]core.Value, float64) {
	best := core.WorstCost(mode)
	var args []core.Value
	for i := 0; i < x.Domain().Len(); i++ {
		val := x.Domain().At(i)
		cost := eval(val)
		switch {
		case core.Better(mode, cost, best):
			best = cost
			args = append(args[:0], val)
		case cost == best:
			args = append(args, val)
		}
	}

	return args, best
}

// FindArgOptimal returns the values of x optimizing relation r, which must
// depend on exactly x (ErrNotUnary otherwise). Ties are all returned,
// preserving domain order, and each tied value realizes the optimum.
func FindArgOptimal(x *core.Variable, r Constraint, mode core.Mode) ([]core.Value, float64, error) {
	if !mode.Valid() {
		return nil, 0, core.ErrBadMode
	}
	dims := r.Dimensions()
	if len(dims) != 1 || dims[0].Name() != x.Name() {
		return nil, 0, fmt.Errorf("%w: %s over %v", ErrNotUnary, r.Name(), core.VariableNames(dims))
	}

	var applyErr error
	args, best := ArgOptimal(x, func(v core.Value) float64 {
		cost, err := r.Apply(core.Assignment{x.Name(): v})
		if err != nil && applyErr == nil {
			applyErr = err
		}

		return cost
	}, mode)
	if applyErr != nil {
		return nil, 0, applyErr
	}

	return args, best, nil
}

// FindOptimum returns the best achievable cost of c over all complete
// assignments of its scope. Used to detect violated (sub-optimal)
// constraints in local search.
func FindOptimum(c Constraint, mode core.Mode) (float64, error) {
	if !mode.Valid() {
		return 0, core.ErrBadMode
	}
	best := core.WorstCost(mode)
	err := ForEachAssignment(c.Dimensions(), func(a core.Assignment) error {
		cost, aerr := c.Apply(a)
		if aerr != nil {
			return aerr
		}
		if core.Better(mode, cost, best) {
			best = cost
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return best, nil
}
