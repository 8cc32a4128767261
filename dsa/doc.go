// Package dsa implements DSA — the Distributed Stochastic Algorithm — a
// synchronous, stochastic local-search DCOP algorithm over the constraint
// hypergraph.
//
// Each cycle, every variable broadcasts its current value to its neighbors
// (the union of its constraints' scopes minus itself), waits for all of
// theirs, then decides whether to move:
//
//   - strict improvement available: move to a uniformly chosen best value
//     with probability p;
//   - no improvement but a violated constraint, variants B and C: with
//     probability p move to another tied-best value (escaping local optima);
//   - no improvement and no violation, variant C only: same lateral move.
//
// Asynchrony: a neighbor can send its value for cycle n+1 before this
// computation finished cycle n. Such early messages are postponed and
// drained into the next cycle instead of overwriting the current one.
//
// Parameters:
//
//   - variant     ∈ {A, B, C}, default B
//   - probability ∈ [0, 1], default 0.7
//   - stop_cycle  int, default unset — when set, every computation
//     terminates after exactly that many cycles; otherwise the run stops
//     externally (timeout).
//
// An isolated variable (no neighbors) selects the arg-optimum of its unary
// cost function — or a random value at cost 0 when it has none — and
// finalizes immediately.
//
// Errors (sentinel):
//
//   - ErrBadPayload      a dsa_value message with a foreign payload.
//   - ErrWrongAlgorithm  a computation definition for another algorithm.
package dsa
