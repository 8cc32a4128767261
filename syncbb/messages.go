// Package syncbb — path model, message types and registration.
package syncbb

import (
	"errors"

	"github.com/katalvlaran/lvldcop/algorithms"
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/engine"
	"github.com/katalvlaran/lvldcop/graphs"
)

// AlgorithmName is the registry name of this algorithm.
const AlgorithmName = "syncbb"

// Message type tags.
const (
	// TagForward extends the current path towards the successor.
	TagForward = "forward"

	// TagBackward triggers backtracking at the predecessor.
	TagBackward = "backward"

	// TagTerminate shuts the chain down.
	TagTerminate = "terminate"
)

// Sentinel errors for the SyncBB state machine.
var (
	// ErrNoForward indicates a backward message received by a computation
	// that never sent a forward.
	ErrNoForward = errors.New("syncbb: backward received without prior forward")

	// ErrBadPayload indicates a message whose payload does not match its tag.
	ErrBadPayload = errors.New("syncbb: malformed message payload")

	// ErrWrongAlgorithm indicates a computation definition for another
	// algorithm handed to the SyncBB factory.
	ErrWrongAlgorithm = errors.New("syncbb: computation definition is not for syncbb")
)

// PathElement assigns one variable along the search path: its value and
// the marginal cost its assignment added.
type PathElement struct {
	Variable string
	Value    core.Value
	Cost     float64
}

// Path is the ordered sequence of assignments for a chain prefix.
type Path []PathElement

// Cost sums the marginal costs along the path.
func (p Path) Cost() float64 {
	total := 0.0
	for _, elt := range p {
		total += elt.Cost
	}

	return total
}

// Assignment converts the path into a name → value assignment.
func (p Path) Assignment() core.Assignment {
	a := make(core.Assignment, len(p))
	for _, elt := range p {
		a[elt.Variable] = elt.Value
	}

	return a
}

// clone copies the path so senders and receivers never share backing
// arrays.
func (p Path) clone() Path {
	return append(Path(nil), p...)
}

// ForwardMessage extends the search to the successor.
type ForwardMessage struct {
	CurrentPath Path
	UB          float64
}

// MessageType implements engine.Message.
func (ForwardMessage) MessageType() string { return TagForward }

// Size implements engine.Message: three units per path element, one for
// the bound.
func (m ForwardMessage) Size() int { return 3*len(m.CurrentPath) + 1 }

// BackwardMessage asks the predecessor to advance its value.
type BackwardMessage struct {
	CurrentPath Path
	UB          float64
}

// MessageType implements engine.Message.
func (BackwardMessage) MessageType() string { return TagBackward }

// Size implements engine.Message.
func (m BackwardMessage) Size() int { return 3*len(m.CurrentPath) + 1 }

// TerminateMessage shuts the chain down.
type TerminateMessage struct {
	CurrentPath Path
	UB          float64
}

// MessageType implements engine.Message.
func (TerminateMessage) MessageType() string { return TagTerminate }

// Size implements engine.Message.
func (m TerminateMessage) Size() int { return 3*len(m.CurrentPath) + 1 }

// init self-registers SyncBB in the process-wide algorithm registry.
func init() {
	algorithms.MustRegister(algorithms.Descriptor{
		Name:      AlgorithmName,
		GraphType: graphs.OrderedChain,
		Params:    nil, // SyncBB takes no parameters
		Build: func(def *algorithms.ComputationDef) (engine.Computation, error) {
			return NewComputation(def)
		},
	})
}
