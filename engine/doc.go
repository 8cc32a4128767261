// Package engine is the message-passing computation substrate: named
// computations owning per-message-type handlers, hosted on agents that
// each run a single-threaded cooperative event loop over a bounded queue.
//
// Contract:
//
//   - A computation registers handlers declaratively at construction time
//     with Handle(tag, handler); delivering a message whose tag has no
//     handler fails with ErrUnhandledMessage.
//   - The message sender is a shared capability injected exactly once per
//     computation (SetSender); a second injection is ErrSenderAlreadySet.
//   - PostMsg hands a message to the agent's sender. Posts from a stopped
//     or finished computation are dropped silently.
//   - NewCycle advances a monotonic non-negative cycle counter used by
//     cycle-aware algorithms.
//   - AddPeriodicAction schedules a repeated action on the hosting agent's
//     loop, serialized with the computation's message handlers.
//   - Lifecycle: OnStart fires once after the sender is wired; Finish is
//     an idempotent terminator.
//
// Agent guarantees:
//
//	(a) a message for computation C is delivered by invoking C's handler
//	    for the matching tag on the agent's single worker goroutine;
//	(b) a computation never observes two of its own handlers concurrently;
//	(c) periodic actions and handlers are serialized on the same worker;
//	(d) Stop drains pending work and unregisters the computations.
//
// Ordering: FIFO per (sender, receiver) pair is NOT guaranteed; algorithms
// must tolerate reordering. A message is observed at or after the moment it
// was posted. Messages already enqueued when a computation terminates may
// still be processed; later posts are dropped.
//
// A handler runs error-isolated: a failure is logged with the offending
// message, reported through the agent's error hook, and stops only the
// offending computation — other computations continue. No retries: the
// transport is cooperative and non-faulty.
//
// The Mailer is the in-process logical transport: it routes envelopes by
// computation name to the hosting agent's queue and silently drops
// messages addressed to stopped computations.
//
// Errors (sentinel):
//
//   - ErrUnhandledMessage        unregistered message type delivered.
//   - ErrSenderAlreadySet        second sender injection.
//   - ErrDuplicateComputation    two computations with one name on an agent.
//   - ErrAlreadyRunning          Run called twice on one agent.
package engine
