// Package dsa — message type, parameter schema and registration.
package dsa

import (
	"errors"

	"github.com/katalvlaran/lvldcop/algorithms"
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/engine"
	"github.com/katalvlaran/lvldcop/graphs"
)

// AlgorithmName is the registry name of this algorithm.
const AlgorithmName = "dsa"

// TagValue tags the single DSA message: a neighbor's current value.
const TagValue = "dsa_value"

// Observational message-cost units shared with benchmark harnesses.
const (
	// UnitSize is the size of one value payload.
	UnitSize = 5

	// HeaderSize is the fixed per-message envelope overhead.
	HeaderSize = 100
)

// Variants of the decision rule.
const (
	// VariantA moves only on strict improvement.
	VariantA = "A"

	// VariantB also moves laterally while a constraint is violated.
	VariantB = "B"

	// VariantC moves laterally even without violations.
	VariantC = "C"
)

// Sentinel errors for the DSA computation.
var (
	// ErrBadPayload indicates a dsa_value message with a foreign payload.
	ErrBadPayload = errors.New("dsa: malformed message payload")

	// ErrWrongAlgorithm indicates a computation definition for another
	// algorithm handed to the DSA factory.
	ErrWrongAlgorithm = errors.New("dsa: computation definition is not for dsa")
)

// ValueMessage carries the sender's current value for the ongoing cycle.
type ValueMessage struct {
	Value core.Value
}

// MessageType implements engine.Message.
func (ValueMessage) MessageType() string { return TagValue }

// Size implements engine.Message: a single value unit.
func (ValueMessage) Size() int { return 1 }

// algoParams is the DSA parameter schema.
var algoParams = []algorithms.ParameterDef{
	{Name: "probability", Type: algorithms.TypeFloat, Default: 0.7},
	{Name: "variant", Type: algorithms.TypeStr, Values: []any{VariantA, VariantB, VariantC}, Default: VariantB},
	{Name: "stop_cycle", Type: algorithms.TypeInt, Default: nil},
}

// init self-registers DSA in the process-wide algorithm registry.
func init() {
	algorithms.MustRegister(algorithms.Descriptor{
		Name:      AlgorithmName,
		GraphType: graphs.Hypergraph,
		Params:    algoParams,
		Build: func(def *algorithms.ComputationDef) (engine.Computation, error) {
			return NewComputation(def)
		},
		ComputationMemory: func(node *graphs.ComputationNode) float64 {
			// DSA only remembers one value per neighbor.
			return float64(len(node.Neighbors()) * UnitSize)
		},
		CommunicationLoad: func(node *graphs.ComputationNode, target string) float64 {
			return UnitSize + HeaderSize
		},
	})
}
