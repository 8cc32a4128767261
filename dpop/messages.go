// Package dpop — message types and algorithm registration.
package dpop

import (
	"errors"

	"github.com/katalvlaran/lvldcop/algorithms"
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/engine"
	"github.com/katalvlaran/lvldcop/graphs"
	"github.com/katalvlaran/lvldcop/relations"
)

// AlgorithmName is the registry name of this algorithm.
const AlgorithmName = "dpop"

// Message type tags.
const (
	// TagUtil tags upward utility-propagation messages.
	TagUtil = "UTIL"

	// TagValue tags downward value-propagation messages.
	TagValue = "VALUE"
)

// Sentinel errors for the DPOP state machine.
var (
	// ErrUnexpectedUtil indicates a UTIL message from a computation that is
	// not a waited child.
	ErrUnexpectedUtil = errors.New("dpop: unexpected UTIL message")

	// ErrUnexpectedValue indicates a VALUE message when none is expected.
	ErrUnexpectedValue = errors.New("dpop: unexpected VALUE message")

	// ErrBadPayload indicates a message whose payload does not match its tag.
	ErrBadPayload = errors.New("dpop: malformed message payload")

	// ErrWrongAlgorithm indicates a computation definition for another
	// algorithm handed to the DPOP factory.
	ErrWrongAlgorithm = errors.New("dpop: computation definition is not for dpop")
)

// UtilMessage carries a child's projected utility relation upward.
type UtilMessage struct {
	Util *relations.MatrixRelation
}

// MessageType implements engine.Message.
func (UtilMessage) MessageType() string { return TagUtil }

// Size implements engine.Message: the product of the matrix dimensions.
func (m UtilMessage) Size() int { return m.Util.Size() }

// ValueMessage carries the chosen values for the variables of the
// receiver's separator downward.
type ValueMessage struct {
	Variables []string
	Values    []core.Value
}

// MessageType implements engine.Message.
func (ValueMessage) MessageType() string { return TagValue }

// Size implements engine.Message: two units per carried variable.
func (m ValueMessage) Size() int { return 2 * len(m.Variables) }

// init self-registers DPOP in the process-wide algorithm registry.
func init() {
	algorithms.MustRegister(algorithms.Descriptor{
		Name:      AlgorithmName,
		GraphType: graphs.PseudoTree,
		Params:    nil, // DPOP takes no parameters
		Build: func(def *algorithms.ComputationDef) (engine.Computation, error) {
			return NewComputation(def)
		},
	})
}
