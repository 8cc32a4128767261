package relations

import (
	"fmt"

	"github.com/katalvlaran/lvldcop/core"
)

// MatrixRelation is the dense tabular representation of a Constraint:
// costs stored in a flat row-major array indexed by the Cartesian product
// of the scope's domains in scope order. The first scope variable is the
// slowest-moving dimension.
//
// Invariant: len(data) == ∏ |dom(x)| over the scope (one cell for the
// empty scope, making it the identity of Join).
type MatrixRelation struct {
	name    string
	dims    []*core.Variable
	strides []int
	data    []float64
}

// NewMatrix builds a zero-filled MatrixRelation over dims (order kept).
// An empty dims list yields the single-cell identity relation.
func NewMatrix(name string, dims []*core.Variable) *MatrixRelation {
	m := &MatrixRelation{
		name:    name,
		dims:    append([]*core.Variable(nil), dims...),
		strides: make([]int, len(dims)),
	}
	size := 1
	for i := len(dims) - 1; i >= 0; i-- {
		m.strides[i] = size
		size *= dims[i].Domain().Len()
	}
	m.data = make([]float64, size)

	return m
}

// UnaryFromCosts builds a 1-dimensional relation over v filled from the
// variable's own cost function (0 everywhere when v has none).
func UnaryFromCosts(name string, v *core.Variable) *MatrixRelation {
	m := NewMatrix(name, []*core.Variable{v})
	for i := 0; i < v.Domain().Len(); i++ {
		m.data[i] = v.CostForVal(v.Domain().At(i))
	}

	return m
}

// Name returns the relation's name.
func (m *MatrixRelation) Name() string { return m.name }

// Dimensions returns the ordered scope. Constant time; the returned slice
// must not be mutated.
func (m *MatrixRelation) Dimensions() []*core.Variable { return m.dims }

// Size returns the number of stored cells: ∏ |dom(x)| over the scope.
func (m *MatrixRelation) Size() int { return len(m.data) }

// index resolves an assignment to a flat offset into data.
func (m *MatrixRelation) index(a core.Assignment) (int, error) {
	offset := 0
	for i, dim := range m.dims {
		val, ok := a[dim.Name()]
		if !ok {
			return 0, fmt.Errorf("%w: missing %s in %s", ErrScopeMismatch, dim.Name(), m.name)
		}
		pos, err := dim.Domain().IndexOf(val)
		if err != nil {
			return 0, fmt.Errorf("%w: %v for %s in %s", ErrScopeMismatch, val, dim.Name(), m.name)
		}
		offset += pos * m.strides[i]
	}

	return offset, nil
}

// GetValueForAssignment reads the cost stored for a complete assignment
// over the scope. Extra names in a are ignored.
func (m *MatrixRelation) GetValueForAssignment(a core.Assignment) (float64, error) {
	offset, err := m.index(a)
	if err != nil {
		return 0, err
	}

	return m.data[offset], nil
}

// SetValueForAssignment stores the cost for a complete assignment over the
// scope. Used while building relations; relations are treated as immutable
// once an algorithm runs.
func (m *MatrixRelation) SetValueForAssignment(a core.Assignment, cost float64) error {
	offset, err := m.index(a)
	if err != nil {
		return err
	}
	m.data[offset] = cost

	return nil
}

// At reads a cell by per-dimension positions; the hot-path twin of
// GetValueForAssignment. Positions must be in range.
func (m *MatrixRelation) At(positions []int) float64 {
	offset := 0
	for i, pos := range positions {
		offset += pos * m.strides[i]
	}

	return m.data[offset]
}

// Apply implements Constraint.
func (m *MatrixRelation) Apply(a core.Assignment) (float64, error) {
	return m.GetValueForAssignment(a)
}

// Slice fixes the variables assigned by partial and returns a new relation
// over the remaining scope, order preserved. Every name in partial must
// belong to the scope (ErrVariableNotInScope otherwise).
func (m *MatrixRelation) Slice(partial core.Assignment) (*MatrixRelation, error) {
	// 1) Split the scope into fixed and remaining dimensions.
	for name := range partial {
		if !InScope(m, name) {
			return nil, fmt.Errorf("%w: %s in %s", ErrVariableNotInScope, name, m.name)
		}
	}
	remaining := make([]*core.Variable, 0, len(m.dims))
	for _, dim := range m.dims {
		if _, fixed := partial[dim.Name()]; !fixed {
			remaining = append(remaining, dim)
		}
	}

	// 2) Copy every cell of the remaining sub-cube.
	sliced := NewMatrix(m.name, remaining)
	err := ForEachAssignment(remaining, func(a core.Assignment) error {
		full := a.Copy()
		for name, val := range partial {
			full[name] = val
		}
		cost, gerr := m.GetValueForAssignment(full)
		if gerr != nil {
			return gerr
		}

		return sliced.SetValueForAssignment(a, cost)
	})
	if err != nil {
		return nil, err
	}

	return sliced, nil
}
