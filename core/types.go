// Package core declares the shared scalar types of the DCOP data model:
// Value, Assignment, Mode, the bounded worst-cost helpers, and the
// package-level sentinel errors.
package core

import (
	"errors"
	"math"
)

// Sentinel errors for core data-model operations.
var (
	// ErrEmptyDomain indicates that a Domain was created with no values.
	ErrEmptyDomain = errors.New("core: domain must hold at least one value")

	// ErrValueNotInDomain indicates that a value is not a member of the domain.
	ErrValueNotInDomain = errors.New("core: value not in domain")

	// ErrBadMode indicates an optimization mode other than "min" or "max".
	ErrBadMode = errors.New("core: mode must be min or max")

	// ErrEmptyName indicates an empty Domain, Variable or AgentDef name.
	ErrEmptyName = errors.New("core: name must be non-empty")
)

// Value is a single domain value. Values must be of a comparable kind
// (strings, integers, ...) so that equality is plain ==; algorithms use
// values as map keys and compare them structurally.
type Value = any

// Assignment maps variable names to values. A partial assignment omits some
// names; a complete assignment over a variable set S assigns exactly the
// names in S.
type Assignment map[string]Value

// Filter returns a copy of a keeping only the names listed in scope.
// Names in scope that a does not assign are simply absent from the result.
// Complexity: O(|scope|).
func (a Assignment) Filter(scope []string) Assignment {
	filtered := make(Assignment, len(scope))
	for _, name := range scope {
		if v, ok := a[name]; ok {
			filtered[name] = v
		}
	}

	return filtered
}

// Copy returns a shallow copy of the assignment.
func (a Assignment) Copy() Assignment {
	dup := make(Assignment, len(a))
	for name, v := range a {
		dup[name] = v
	}

	return dup
}

// Mode selects the direction of optimization.
type Mode string

const (
	// Min minimizes the total cost.
	Min Mode = "min"

	// Max maximizes the total cost (utilities).
	Max Mode = "max"
)

// Valid reports whether the mode is one of Min or Max.
func (m Mode) Valid() bool { return m == Min || m == Max }

// Bounded "worst" initializers. Costs are exchanged in messages; keeping the
// empty value inside the int32 range keeps the representation bounded while
// comparisons with real values stay monotonic.
const (
	boundMax = float64(math.MaxInt32)
	boundMin = float64(math.MinInt32)
)

// WorstCost returns the neutral "no result yet" cost for the mode:
// +2^31-1 for Min, -2^31 for Max.
func WorstCost(mode Mode) float64 {
	if mode == Max {
		return boundMin
	}

	return boundMax
}

// Better reports whether candidate strictly improves on incumbent under mode.
func Better(mode Mode, candidate, incumbent float64) bool {
	if mode == Max {
		return candidate > incumbent
	}

	return candidate < incumbent
}
