package relations

import (
	"fmt"

	"github.com/katalvlaran/lvldcop/core"
)

// Functional wraps an arbitrary Go function as a Constraint over an
// explicit scope. The function receives an assignment restricted to the
// scope and returns the cost.
type Functional struct {
	name string
	dims []*core.Variable
	fn   func(a core.Assignment) float64
}

// NewFunctional builds a functional relation. The dims slice is copied.
func NewFunctional(name string, dims []*core.Variable, fn func(a core.Assignment) float64) *Functional {
	return &Functional{
		name: name,
		dims: append([]*core.Variable(nil), dims...),
		fn:   fn,
	}
}

// Name returns the constraint's name.
func (f *Functional) Name() string { return f.name }

// Dimensions returns the ordered scope.
func (f *Functional) Dimensions() []*core.Variable { return f.dims }

// Apply implements Constraint: it restricts a to the scope and evaluates
// the wrapped function. Missing scope variables yield ErrScopeMismatch.
func (f *Functional) Apply(a core.Assignment) (float64, error) {
	restricted := make(core.Assignment, len(f.dims))
	for _, dim := range f.dims {
		val, ok := a[dim.Name()]
		if !ok {
			return 0, fmt.Errorf("%w: missing %s in %s", ErrScopeMismatch, dim.Name(), f.name)
		}
		restricted[dim.Name()] = val
	}

	return f.fn(restricted), nil
}

// ToMatrix materializes any constraint into its dense tabular form by
// enumerating the scope. Complexity: ∏ |dom(x)|.
func ToMatrix(c Constraint) (*MatrixRelation, error) {
	m := NewMatrix(c.Name(), c.Dimensions())
	err := ForEachAssignment(c.Dimensions(), func(a core.Assignment) error {
		cost, aerr := c.Apply(a)
		if aerr != nil {
			return aerr
		}

		return m.SetValueForAssignment(a, cost)
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}
