// Package lvldcop is a runtime for Distributed Constraint Optimization
// Problems (DCOP): autonomous agents hosting variable computations that
// exchange typed messages over an in-process logical transport and converge
// on an assignment optimizing the sum of a set of constraints.
//
// 🚀 What is lvldcop?
//
//	A runtime and algorithm library for studying and benchmarking DCOP
//	algorithms on graph-structured problems:
//
//	  • Data model: finite ordered domains, variables, n-ary relations
//	  • Relation algebra: join, projection, arg-optimal, assignment costs
//	  • Engine: per-agent single-threaded message loops with periodic actions
//	  • Algorithms: DPOP (tree inference), DSA (stochastic local search),
//	    SyncBB (synchronous branch-and-bound)
//
// Everything is organized as flat per-concern packages:
//
//	core/        — domains, variables, assignments, agent definitions
//	relations/   — constraints, dense cost tables, join / projection
//	graphs/      — computation graphs: pseudo-tree, hypergraph, ordered chain
//	engine/      — message-passing computations, agents, in-process mailer
//	algorithms/  — parameter schemas, algorithm definitions, the registry
//	dpop/ dsa/ syncbb/ — the algorithm state machines
//	solve/       — run a graph + algorithm to {assignment, cost, status}
//	bench/       — batch definitions and parameter-space expansion
//
// Quick sketch — two-variable graph coloring, solved optimally by DPOP:
//
//	    x1───c(≠)───x2        cost 0 ⇔ x1 and x2 take distinct colors
//
// See each package's doc.go for the full contract, complexity notes and
// sentinel errors.
//
//	go get github.com/katalvlaran/lvldcop
package lvldcop
