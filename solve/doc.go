// Package solve orchestrates a DCOP run: it turns a computation graph plus
// an algorithm definition into a running ensemble of agents and returns
// the collected outcome.
//
// Solve:
//
//  1. looks the algorithm up in the registry and checks its declared graph
//     kind against the graph,
//  2. builds one computation per node through the registry factory,
//  3. hosts each computation on its own agent (or on a caller-supplied
//     computation → agent distribution),
//  4. wires the in-process mailer and runs every agent loop under an
//     errgroup,
//  5. terminates when every computation finished, on context timeout, on
//     external cancellation, or on the first handler failure.
//
// The outcome is {assignment, cost, duration, status}; status is FINISHED,
// TIMEOUT, STOPPED or ERROR. On ERROR the result carries the taxonomy
// class of the failure (ConfigurationError, ComputationError,
// RelationError, ProtocolViolation) as a classifier string — see Classify.
// Results marshal to YAML in the shape benchmark harnesses consume.
//
// Configuration errors surface synchronously from the builders and abort
// the run before any computation starts. Runtime handler failures stop the
// offending computation, are recorded, and end the run with ERROR.
//
// Errors (sentinel):
//
//   - ErrGraphMismatch  the algorithm's graph kind does not match the graph.
//   - ErrNoComputations the graph holds no nodes.
package solve
