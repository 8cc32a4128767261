package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// defaultQueueCapacity bounds an agent's inbound queue; a full queue makes
// senders block, which back-pressures the producing agent's loop.
const defaultQueueCapacity = 4096

// Agent hosts a set of computations behind one single-threaded cooperative
// dispatcher: one worker goroutine sequentially dequeues envelopes and
// invokes the target computation's handler. Periodic actions run on the
// same worker, serialized with handlers.
type Agent struct {
	name   string
	logger *slog.Logger

	queue chan Envelope
	out   Sender // outbound routing, wired by the Mailer

	mu      sync.Mutex
	comps   map[string]Computation
	order   []string
	actions []*periodicAction

	onError func(comp string, msg Message, err error)

	running  atomic.Bool
	stopping chan struct{}
	stopOnce sync.Once
}

// periodicAction is one timer-armed repeated action.
type periodicAction struct {
	comp   string
	period time.Duration
	fn     func()
	next   time.Time
}

// AgentOption configures an Agent before it runs.
type AgentOption func(a *Agent)

// WithQueueCapacity bounds the agent's inbound queue (default 4096).
func WithQueueCapacity(n int) AgentOption {
	return func(a *Agent) {
		if n > 0 {
			a.queue = make(chan Envelope, n)
		}
	}
}

// WithAgentLogger sets the agent's logger (default: discard).
func WithAgentLogger(l *slog.Logger) AgentOption {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithOnError wires the handler-failure hook: the offending computation's
// name, the message being processed, and the error.
func WithOnError(fn func(comp string, msg Message, err error)) AgentOption {
	return func(a *Agent) { a.onError = fn }
}

// NewAgent builds an idle agent.
func NewAgent(name string, opts ...AgentOption) *Agent {
	a := &Agent{
		name:     name,
		logger:   discard,
		queue:    make(chan Envelope, defaultQueueCapacity),
		comps:    make(map[string]Computation),
		stopping: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// Computations returns the names of the hosted computations.
func (a *Agent) Computations() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]string(nil), a.order...)
}

// AddComputation hosts c on this agent: it injects the message sender and
// the periodic scheduler. Must be called before Run.
func (a *Agent) AddComputation(c Computation) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, dup := a.comps[c.Name()]; dup {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateComputation, c.Name(), a.name)
	}
	if err := c.SetSender(a.post); err != nil {
		return err
	}
	c.SetScheduler(a)
	a.comps[c.Name()] = c
	a.order = append(a.order, c.Name())

	return nil
}

// post is the Sender injected into hosted computations: local targets are
// enqueued directly, everything else goes through the mailer.
func (a *Agent) post(from, to string, msg Message, priority int) error {
	a.mu.Lock()
	_, local := a.comps[to]
	out := a.out
	a.mu.Unlock()
	if local || out == nil {
		a.Deliver(Envelope{From: from, To: to, Msg: msg, Priority: priority, At: time.Now()})

		return nil
	}

	return out(from, to, msg, priority)
}

// connect wires the outbound router; called by the Mailer.
func (a *Agent) connect(out Sender) { a.out = out }

// Deliver enqueues one envelope for dispatch on the agent's worker.
// Envelopes for a stopped agent are dropped silently.
func (a *Agent) Deliver(env Envelope) {
	select {
	case <-a.stopping:
		a.logger.Debug("dropping envelope for stopped agent",
			"agent", a.name, "to", env.To, "type", env.Msg.MessageType())
	case a.queue <- env:
	}
}

// AddPeriodic implements Scheduler: arm fn to run every period on the
// agent worker, serialized with the owning computation's handlers.
func (a *Agent) AddPeriodic(comp string, period time.Duration, fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, &periodicAction{
		comp:   comp,
		period: period,
		fn:     fn,
		next:   time.Now().Add(period),
	})
}

// StopComputation drains nothing but unregisters the computation: pending
// envelopes addressed to it are dropped at dispatch time, later posts are
// routed nowhere.
func (a *Agent) StopComputation(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.comps, name)
	kept := a.actions[:0]
	for _, act := range a.actions {
		if act.comp != name {
			kept = append(kept, act)
		}
	}
	a.actions = kept
}

// Stop asks the agent to terminate: the loop drains already-enqueued
// envelopes, unregisters the hosted computations, then returns. Idempotent.
func (a *Agent) Stop() {
	a.stopOnce.Do(func() { close(a.stopping) })
}

// Run executes the agent loop until ctx is done or Stop is called:
// fire every computation's OnStart, then dispatch envelopes and due
// periodic actions, strictly sequentially.
func (a *Agent) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: %s", ErrAlreadyRunning, a.name)
	}

	// 1) Lifecycle: on-start hooks, in hosting order.
	a.mu.Lock()
	starting := make([]Computation, 0, len(a.order))
	for _, name := range a.order {
		if c, ok := a.comps[name]; ok {
			starting = append(starting, c)
		}
	}
	a.mu.Unlock()
	for _, c := range starting {
		c.OnStart()
	}

	// 2) Event loop: envelopes and timers, one at a time.
	for {
		timerC, stopTimer := a.armTimer()
		select {
		case <-ctx.Done():
			stopTimer()

			return nil
		case <-a.stopping:
			stopTimer()
			a.drain()
			for _, name := range a.Computations() {
				a.StopComputation(name)
			}

			return nil
		case env := <-a.queue:
			stopTimer()
			a.dispatch(env)
		case now := <-timerC:
			a.runDue(now)
		}
	}
}

// armTimer returns a channel firing at the next due periodic action (nil
// when none is scheduled) and its cleanup.
func (a *Agent) armTimer() (<-chan time.Time, func()) {
	a.mu.Lock()
	var next time.Time
	for _, act := range a.actions {
		if next.IsZero() || act.next.Before(next) {
			next = act.next
		}
	}
	a.mu.Unlock()
	if next.IsZero() {
		return nil, func() {}
	}
	t := time.NewTimer(time.Until(next))

	return t.C, func() { t.Stop() }
}

// runDue fires every periodic action due at now and re-arms it.
func (a *Agent) runDue(now time.Time) {
	a.mu.Lock()
	due := make([]*periodicAction, 0, len(a.actions))
	for _, act := range a.actions {
		if !act.next.After(now) {
			act.next = now.Add(act.period)
			due = append(due, act)
		}
	}
	a.mu.Unlock()
	for _, act := range due {
		act.fn()
	}
}

// dispatch routes one envelope to its computation's handler. Unknown or
// unregistered targets drop silently; a handler failure is logged with the
// offending message, reported, and stops only the offending computation.
func (a *Agent) dispatch(env Envelope) {
	a.mu.Lock()
	c, ok := a.comps[env.To]
	a.mu.Unlock()
	if !ok {
		a.logger.Debug("dropping envelope for unknown computation",
			"agent", a.name, "to", env.To, "type", env.Msg.MessageType())

		return
	}
	if err := c.HandleMessage(env.From, env.Msg, env.At); err != nil {
		a.logger.Error("handler failed",
			"agent", a.name, "computation", env.To, "from", env.From,
			"type", env.Msg.MessageType(), "err", err)
		if a.onError != nil {
			a.onError(env.To, env.Msg, err)
		}
		a.StopComputation(env.To)
	}
}

// drain dispatches every envelope already enqueued, without blocking.
func (a *Agent) drain() {
	for {
		select {
		case env := <-a.queue:
			a.dispatch(env)
		default:
			return
		}
	}
}
