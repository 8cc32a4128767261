// Package engine declares the transport-level types (Message, Envelope,
// Sender), the algorithm-facing stop conditions, and the sentinel errors.
package engine

import (
	"errors"
	"time"
)

// Sentinel errors for the computation engine.
var (
	// ErrUnhandledMessage indicates a message whose type tag has no
	// registered handler on the receiving computation.
	ErrUnhandledMessage = errors.New("engine: no handler registered for message type")

	// ErrSenderAlreadySet indicates a second message-sender injection on a
	// computation; the sender is settable exactly once.
	ErrSenderAlreadySet = errors.New("engine: message sender already set")

	// ErrDuplicateComputation indicates two computations with the same name
	// added to one agent.
	ErrDuplicateComputation = errors.New("engine: computation already hosted")

	// ErrAlreadyRunning indicates Run called on an agent that is running.
	ErrAlreadyRunning = errors.New("engine: agent already running")
)

// Message is the engine-level envelope payload: a type tag routing to the
// receiver's handler, opaque content, and an observational size (used by
// benchmarks, never for correctness). The engine does not interpret
// content; algorithms define their own payload shapes.
type Message interface {
	// MessageType returns the tag handlers are registered under.
	MessageType() string

	// Size returns the observational message size.
	Size() int
}

// Generic is a plain tagged message for tests and simple protocols.
type Generic struct {
	Tag     string
	Content any
	Sz      int
}

// NewGeneric builds a Generic message with explicit size.
func NewGeneric(tag string, content any, size int) Generic {
	return Generic{Tag: tag, Content: content, Sz: size}
}

// MessageType implements Message.
func (g Generic) MessageType() string { return g.Tag }

// Size implements Message.
func (g Generic) Size() int { return g.Sz }

// Envelope is one routed message: source and destination computation
// names, the message, its priority, and the delivery timestamp.
type Envelope struct {
	From     string
	To       string
	Msg      Message
	Priority int
	At       time.Time
}

// Sender forwards a message from one computation towards another. It is
// the capability the hosting agent injects into each computation.
type Sender func(from, to string, msg Message, priority int) error

// Handler processes one inbound message: the sender's computation name,
// the message, and the delivery timestamp.
type Handler func(sender string, msg Message, t time.Time) error

// Scheduler arms periodic actions on a hosting agent's loop.
type Scheduler interface {
	// AddPeriodic schedules fn to run every period on the agent worker,
	// serialized with the owning computation's handlers.
	AddPeriodic(comp string, period time.Duration, fn func())
}

// StopCondition is an algorithm's self-reported progress state.
type StopCondition int

const (
	// Stop: the algorithm reached its terminal state.
	Stop StopCondition = iota

	// Continue: the algorithm has more work to do.
	Continue

	// NoStopCondition: the algorithm runs until stopped externally.
	NoStopCondition
)
