package relations

import "github.com/katalvlaran/lvldcop/core"

// ForEachAssignment enumerates every complete assignment over vars in
// canonical row-major order — the first variable is the slowest-moving
// dimension, matching MatrixRelation's storage layout. The callback's
// assignment is reused between invocations; copy it if it must survive.
// Stops and returns the first non-nil error from fn.
// Complexity: ∏ |dom(x)|.
func ForEachAssignment(vars []*core.Variable, fn func(a core.Assignment) error) error {
	if len(vars) == 0 {
		return fn(core.Assignment{})
	}

	positions := make([]int, len(vars))
	current := make(core.Assignment, len(vars))
	for {
		// 1) Materialize the current position vector as an assignment.
		for i, v := range vars {
			current[v.Name()] = v.Domain().At(positions[i])
		}
		if err := fn(current); err != nil {
			return err
		}

		// 2) Odometer increment, last dimension fastest.
		i := len(vars) - 1
		for ; i >= 0; i-- {
			positions[i]++
			if positions[i] < vars[i].Domain().Len() {
				break
			}
			positions[i] = 0
		}
		if i < 0 {
			return nil
		}
	}
}

// AllAssignments collects every complete assignment over vars, in canonical
// order. Intended for small scopes and tests.
func AllAssignments(vars []*core.Variable) []core.Assignment {
	var all []core.Assignment
	_ = ForEachAssignment(vars, func(a core.Assignment) error {
		all = append(all, a.Copy())

		return nil
	})

	return all
}

// AssignmentCost sums the costs of constraints for the given assignment.
// Each constraint sees the assignment restricted to its own scope.
func AssignmentCost(a core.Assignment, constraints []Constraint) (float64, error) {
	total := 0.0
	for _, c := range constraints {
		cost, err := c.Apply(a)
		if err != nil {
			return 0, err
		}
		total += cost
	}

	return total, nil
}

// TotalAssignmentCost is AssignmentCost plus the unary variable costs of
// every variable appearing in the constraints' scopes (each counted once).
func TotalAssignmentCost(a core.Assignment, constraints []Constraint) (float64, error) {
	total, err := AssignmentCost(a, constraints)
	if err != nil {
		return 0, err
	}
	counted := make(map[string]struct{})
	for _, c := range constraints {
		for _, v := range c.Dimensions() {
			if _, done := counted[v.Name()]; done || !v.HasCostFunc() {
				continue
			}
			counted[v.Name()] = struct{}{}
			total += v.CostForVal(a[v.Name()])
		}
	}

	return total, nil
}

// ConstraintsForVariable filters constraints down to those whose scope
// mentions the named variable.
func ConstraintsForVariable(constraints []Constraint, name string) []Constraint {
	var involved []Constraint
	for _, c := range constraints {
		if InScope(c, name) {
			involved = append(involved, c)
		}
	}

	return involved
}
