// Package relations declares the Constraint contract and the package-level
// sentinel errors.
package relations

import (
	"errors"

	"github.com/katalvlaran/lvldcop/core"
)

// Sentinel errors for relation construction and evaluation.
var (
	// ErrScopeMismatch indicates an assignment that does not cover the
	// relation's scope (a scope variable is missing or out of its domain).
	ErrScopeMismatch = errors.New("relations: assignment does not cover scope")

	// ErrVariableNotInScope indicates an operation referencing a variable
	// that is not part of the relation's scope.
	ErrVariableNotInScope = errors.New("relations: variable not in scope")

	// ErrNotUnary indicates an arg-optimal query on a relation that depends
	// on more than one variable.
	ErrNotUnary = errors.New("relations: relation must depend on exactly one variable")
)

// Constraint is an n-ary relation: a function from any complete assignment
// over its scope to a real cost.
//
// Dimensions returns the scope as an ordered list; the order is significant
// for tabular storage and for Join/Project results. Apply accepts any
// assignment covering the scope (extra names are ignored) and returns
// ErrScopeMismatch when a scope variable is unassigned.
type Constraint interface {
	// Name identifies the constraint within a problem.
	Name() string

	// Dimensions returns the ordered scope of the constraint.
	Dimensions() []*core.Variable

	// Apply evaluates the constraint on an assignment covering its scope.
	Apply(a core.Assignment) (float64, error)
}

// ScopeNames returns the names of a constraint's scope, in scope order.
func ScopeNames(c Constraint) []string {
	return core.VariableNames(c.Dimensions())
}

// InScope reports whether the named variable belongs to c's scope.
func InScope(c Constraint, name string) bool {
	for _, v := range c.Dimensions() {
		if v.Name() == name {
			return true
		}
	}

	return false
}
