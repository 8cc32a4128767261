// Package dpop implements DPOP — the Dynamic Programming Optimization
// Protocol — an optimal, inference-based DCOP algorithm over a pseudo-tree.
//
// The algorithm runs two phases:
//
//   - UTIL (upward): a leaf joins its local constraints into its utility
//     relation, projects its own variable out and sends the result to its
//     parent. A non-leaf accumulates the UTIL relation of every child (a
//     multiset of waited children tolerates any arrival order), then joins
//     its own constraints and propagates upward. UTIL message size is the
//     product of its matrix dimensions.
//   - VALUE (downward): once the root holds every child's UTIL it selects
//     an arg-optimal value for its own variable and sends VALUE messages to
//     its children. A non-root slices its accumulated utility relation on
//     the received assignment (its separator), selects its own value, and
//     forwards each child the child's separator restriction augmented with
//     its own choice. VALUE message size is twice the number of carried
//     variables.
//
// A computation that is both root and leaf is an isolated variable: with
// constraints it arg-optimizes their join; without, it picks a uniformly
// random value at cost 0.
//
// Initial utility: when the variable carries a unary cost function the
// utility relation starts as a one-dimensional relation filled from it;
// otherwise it starts as the empty-scope relation (the identity of join).
//
// Termination: every computation calls its finalizer exactly once — leaves
// after receiving VALUE, the root after sending VALUE, isolated variables
// immediately. The number of UTIL messages and of VALUE messages each
// equal the number of non-root nodes.
//
// Errors (sentinel):
//
//   - ErrUnexpectedUtil   UTIL from a non-child (or duplicate).
//   - ErrUnexpectedValue  VALUE when none is expected (root, or repeated).
//   - ErrBadPayload       a message whose payload is not the tagged type.
//   - ErrWrongAlgorithm   a computation definition for another algorithm.
package dpop
