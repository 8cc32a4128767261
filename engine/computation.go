package engine

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// discard is the default logger: structured logging is opt-in.
var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// MessagePassingComputation is the base of every computation: a name, a
// message-type → handler table, a set-once message sender, a cycle counter
// and the finish/stop lifecycle flags.
//
// All state is owned by the hosting agent's single worker; no internal
// locking is needed once the agent runs. Handler registration, sender
// injection and hook wiring happen before the agent starts.
type MessagePassingComputation struct {
	name      string
	handlers  map[string]Handler
	sender    Sender
	scheduler Scheduler
	pending   []periodicRequest

	cycle    int
	stopped  bool
	finished bool

	logger     *slog.Logger
	onFinished func(name string)
	onCycle    func(name string, count int)
}

// periodicRequest buffers AddPeriodicAction calls made before the
// computation is hosted.
type periodicRequest struct {
	period time.Duration
	fn     func()
}

// NewMessagePassingComputation builds a bare computation. Algorithms embed
// it and register their handlers in their constructors.
func NewMessagePassingComputation(name string) *MessagePassingComputation {
	return &MessagePassingComputation{
		name:     name,
		handlers: make(map[string]Handler),
		logger:   discard,
	}
}

// Name returns the computation's name.
func (c *MessagePassingComputation) Name() string { return c.name }

// SetLogger replaces the computation's logger (default: discard).
func (c *MessagePassingComputation) SetLogger(l *slog.Logger) {
	if l != nil {
		c.logger = l
	}
}

// Logger returns the computation's logger.
func (c *MessagePassingComputation) Logger() *slog.Logger { return c.logger }

// Handle registers the handler for one message type tag. Registration is
// declarative, at construction time; re-registering a tag replaces the
// previous handler.
func (c *MessagePassingComputation) Handle(tag string, h Handler) {
	c.handlers[tag] = h
}

// SetSender injects the message sender. The sender is settable exactly
// once; a second injection returns ErrSenderAlreadySet.
func (c *MessagePassingComputation) SetSender(s Sender) error {
	if c.sender != nil {
		return fmt.Errorf("%w: %s", ErrSenderAlreadySet, c.name)
	}
	c.sender = s

	return nil
}

// SetScheduler wires the hosting agent's periodic scheduler and flushes
// buffered periodic actions.
func (c *MessagePassingComputation) SetScheduler(s Scheduler) {
	c.scheduler = s
	for _, req := range c.pending {
		s.AddPeriodic(c.name, req.period, req.fn)
	}
	c.pending = nil
}

// OnStart is the post-wiring lifecycle hook; the base implementation does
// nothing. Algorithms shadow it.
func (c *MessagePassingComputation) OnStart() {}

// HandleMessage dispatches one inbound message to the registered handler.
// Messages for a finished computation are dropped silently (they were in
// flight when the computation terminated). An unregistered type tag fails
// with ErrUnhandledMessage.
func (c *MessagePassingComputation) HandleMessage(sender string, msg Message, t time.Time) error {
	if c.finished || c.stopped {
		c.logger.Debug("dropping message for terminated computation",
			"computation", c.name, "type", msg.MessageType(), "from", sender)

		return nil
	}
	h, ok := c.handlers[msg.MessageType()]
	if !ok {
		return fmt.Errorf("%w: %q on %s", ErrUnhandledMessage, msg.MessageType(), c.name)
	}

	return h(sender, msg, t)
}

// PostMsg hands a message to the agent's sender with default priority.
// Posts from a stopped or finished computation, or before the sender is
// wired, are dropped silently.
func (c *MessagePassingComputation) PostMsg(target string, msg Message) {
	c.PostMsgPriority(target, msg, 0)
}

// PostMsgPriority is PostMsg with an explicit priority.
func (c *MessagePassingComputation) PostMsgPriority(target string, msg Message, priority int) {
	if c.stopped || c.finished || c.sender == nil {
		c.logger.Debug("dropping outbound message",
			"computation", c.name, "target", target, "type", msg.MessageType())

		return
	}
	if err := c.sender(c.name, target, msg, priority); err != nil {
		c.logger.Warn("message send failed",
			"computation", c.name, "target", target, "type", msg.MessageType(), "err", err)
	}
}

// AddPeriodicAction schedules fn to run every period on the hosting
// agent's loop, serialized with this computation's handlers. Calls made
// before the computation is hosted are buffered and armed at hosting time.
func (c *MessagePassingComputation) AddPeriodicAction(period time.Duration, fn func()) {
	if c.scheduler == nil {
		c.pending = append(c.pending, periodicRequest{period: period, fn: fn})

		return
	}
	c.scheduler.AddPeriodic(c.name, period, fn)
}

// NewCycle advances the monotonic cycle counter and returns its new value.
func (c *MessagePassingComputation) NewCycle() int {
	c.cycle++
	if c.onCycle != nil {
		c.onCycle(c.name, c.cycle)
	}

	return c.cycle
}

// CycleCount returns the current cycle counter.
func (c *MessagePassingComputation) CycleCount() int { return c.cycle }

// SetOnCycle wires a cycle-notification hook (harness instrumentation).
func (c *MessagePassingComputation) SetOnCycle(fn func(name string, count int)) {
	c.onCycle = fn
}

// Stop marks the computation stopped: subsequent posts are dropped.
func (c *MessagePassingComputation) Stop() { c.stopped = true }

// IsStopped reports whether Stop was called.
func (c *MessagePassingComputation) IsStopped() bool { return c.stopped }

// Finish terminates the computation. It is idempotent: the first call
// marks the computation finished and fires the finish hook; later calls do
// nothing.
func (c *MessagePassingComputation) Finish() {
	if c.finished {
		return
	}
	c.finished = true
	c.logger.Debug("computation finished", "computation", c.name)
	if c.onFinished != nil {
		c.onFinished(c.name)
	}
}

// IsFinished reports whether the computation has terminated.
func (c *MessagePassingComputation) IsFinished() bool { return c.finished }

// SetOnFinished wires the finish hook (used by orchestrators to detect
// global termination). Must be set before the agent starts.
func (c *MessagePassingComputation) SetOnFinished(fn func(name string)) {
	c.onFinished = fn
}

// Computation is the engine-facing view of a hosted computation.
type Computation interface {
	Name() string
	OnStart()
	HandleMessage(sender string, msg Message, t time.Time) error
	SetSender(s Sender) error
	SetScheduler(s Scheduler)
	IsFinished() bool
}
