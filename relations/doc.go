// Package relations implements the constraint (relation) algebra of the
// DCOP runtime: n-ary cost functions over named variables, a dense tabular
// representation, and the join / projection / arg-optimal operators the
// inference algorithms are built from.
//
// Overview:
//
//   - A Constraint is any n-ary function from a complete assignment of its
//     scope to a real cost. Its Dimensions view returns the scope as an
//     ordered variable list.
//   - Functional wraps an arbitrary Go function as a Constraint.
//   - MatrixRelation stores costs densely in a row-major array indexed by
//     the Cartesian product of the scope's domains in scope order. It
//     supports point reads/writes, Slice on a partial assignment, and
//     constant-time dimension queries. A matrix over an empty scope holds a
//     single cell and acts as the identity of Join.
//
// Operators:
//
//   - Join(u1, u2): scope is scope(u1) followed by the variables of
//     scope(u2) not already present, order preserved; for every complete
//     assignment a, J(a) = u1(a|scope(u1)) + u2(a|scope(u2)).
//     Complexity: the product of all involved domain sizes.
//   - Project(r, x, mode): eliminates x by optimizing over dom(x); the
//     remaining dimensions keep their order.
//   - FindArgOptimal(x, r, mode): for a relation depending only on x,
//     returns every optimal value in domain order together with the optimum.
//   - FindOptimum(c, mode): the best cost of c over all assignments of its
//     scope.
//
// Assignment utilities: ForEachAssignment enumerates complete assignments
// in canonical row-major order (first scope variable slowest);
// AssignmentCost sums constraint costs; TotalAssignmentCost adds the unary
// variable costs on top.
//
// Errors (sentinel):
//
//   - ErrScopeMismatch       if an assignment does not cover a relation's scope.
//   - ErrVariableNotInScope  if an operation names a variable outside the scope.
//   - ErrNotUnary            if arg-optimal is called on a multi-variable relation.
//
// All relations are immutable after construction from the point of view of
// the algorithms (MatrixRelation writes happen only while building) and are
// shared by reference across computations without synchronization.
package relations
