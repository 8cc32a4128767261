// Package core defines the central DCOP data model: values, assignments,
// optimization modes, finite ordered domains, variables with optional
// per-value costs, and agent definitions with hosting and route costs.
//
// Overview:
//
//   - A Domain is an ordered, finite sequence of values of a single type tag.
//     Iteration order is significant and stable; equality is value equality.
//   - A Variable names a Domain and may carry a per-value unary cost
//     function. Variables are immutable once constructed and may be shared
//     by reference across computations without synchronization.
//   - An Assignment maps variable names to values. A partial assignment
//     omits some names; a complete assignment over a set S assigns exactly
//     the names in S.
//   - Mode selects minimization or maximization and uniformly inverts
//     comparisons and worst-value initializers across all algorithms.
//   - An AgentDef describes a hosting agent: capacity, per-computation
//     hosting costs with a default, and per-target route costs with a
//     default.
//
// Numeric bounds:
//
//	Algorithms initialize "worst" values using the bounds of a 32-bit signed
//	integer (WorstCost). This keeps costs exchangeable in a bounded
//	representation; comparisons between "empty" and real values stay
//	monotonic under Better.
//
// The package also ships the agent-name utilities used by problem
// generators: GenerateAgentsFromCount, GenerateAgentsFromVariables,
// FindPrefix, FindCorrespondingVariables and GenerateHostingCosts.
//
// Errors (sentinel):
//
//   - ErrEmptyDomain          if a Domain is created with no values.
//   - ErrValueNotInDomain     if a value lookup misses the domain.
//   - ErrBadMode              if a Mode is neither "min" nor "max".
//   - ErrEmptyName            if a Domain, Variable or AgentDef name is empty.
package core
