// Package syncbb implements SyncBB — Synchronous Branch and Bound — a
// complete DCOP search algorithm over an ordered chain of variables:
// branch and bound simulated in a distributed environment.
//
// Variable ordering is the chain order; value ordering is each domain's
// iteration order. Three messages drive the search:
//
//   - forward(path, ub): the path assigns (variable, value, marginal cost)
//     for every variable strictly before the receiver; ub is the best
//     complete-assignment cost found so far (+Inf / -Inf initially).
//     The receiver picks its first domain value keeping the cumulative
//     path cost strictly inside the bound and extends the path; with no
//     feasible value it backtracks.
//   - backward(path, ub): the receiver's own value is the tail of the
//     path; it attempts its next domain value, forwarding on success and
//     backtracking further on exhaustion. When the head of the chain
//     exhausts its domain the search is complete.
//   - terminate(path, ub): propagates along successors; every computation
//     finalizes with its best-known value.
//
// The last variable of the chain closes candidates: it scans its feasible
// values in order, adopting every strict improvement of the bound (ties
// keep the earlier path), then backtracks once with the final bound. Each
// computation records its own best value whenever a backward message
// carrying a strictly improved bound names it — depth-first order makes
// the then-current path prefix the best path's prefix, so the recording is
// exact.
//
// Bounds use ±Inf (not the bounded integer initializers): bound values
// never leave the process between runs and the chain always completes a
// first path under an infinite bound.
//
// Costs account only for constraints whose entire scope is assigned along
// the path; the ordered-chain builder guarantees each constraint is owned
// by the highest-ordered variable of its scope, so n-ary constraints are
// handled, not just binary ones.
//
// Errors (sentinel):
//
//   - ErrNoForward       backward received before any forward was sent.
//   - ErrBadPayload      malformed message payload.
//   - ErrWrongAlgorithm  a computation definition for another algorithm.
package syncbb
