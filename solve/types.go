// Package solve — result model, status values and the error classifier.
package solve

import (
	"errors"
	"time"

	"github.com/katalvlaran/lvldcop/algorithms"
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/dpop"
	"github.com/katalvlaran/lvldcop/dsa"
	"github.com/katalvlaran/lvldcop/engine"
	"github.com/katalvlaran/lvldcop/relations"
	"github.com/katalvlaran/lvldcop/syncbb"
)

// Sentinel errors for run configuration.
var (
	// ErrGraphMismatch indicates a graph whose kind differs from the one
	// the algorithm declares.
	ErrGraphMismatch = errors.New("solve: computation graph kind does not match algorithm")

	// ErrNoComputations indicates an empty computation graph.
	ErrNoComputations = errors.New("solve: computation graph holds no nodes")
)

// Status is the user-visible outcome of a run.
type Status string

const (
	// StatusFinished: every computation terminated by itself.
	StatusFinished Status = "FINISHED"

	// StatusTimeout: the run hit its deadline.
	StatusTimeout Status = "TIMEOUT"

	// StatusStopped: the run was cancelled externally.
	StatusStopped Status = "STOPPED"

	// StatusError: a computation failed; Result.Error names the taxonomy
	// class.
	StatusError Status = "ERROR"
)

// Result is the outcome of one run, in the shape benchmark harnesses
// consume.
type Result struct {
	Assignment core.Assignment `yaml:"assignment"`
	Cost       float64         `yaml:"cost"`
	Duration   time.Duration   `yaml:"duration"`
	Status     Status          `yaml:"status"`
	Error      string          `yaml:"error,omitempty"`
}

// Taxonomy class names reported on failures.
const (
	// ClassConfiguration: unknown algorithm, unknown parameter,
	// out-of-range parameter value, graph mismatch.
	ClassConfiguration = "ConfigurationError"

	// ClassComputation: unregistered message type, duplicate sender
	// injection, unexpected sender, malformed payloads.
	ClassComputation = "ComputationError"

	// ClassRelation: mismatched assignment vs scope, arg-optimal on a
	// multi-variable relation.
	ClassRelation = "RelationError"

	// ClassProtocol: a message that the algorithm state machine cannot
	// accept in its current state.
	ClassProtocol = "ProtocolViolation"
)

// Classify maps an error onto its taxonomy class name.
func Classify(err error) string {
	switch {
	case errors.Is(err, algorithms.ErrUnknownAlgorithm),
		errors.Is(err, algorithms.ErrInvalidParameter),
		errors.Is(err, algorithms.ErrBadDescriptor),
		errors.Is(err, core.ErrBadMode),
		errors.Is(err, ErrGraphMismatch),
		errors.Is(err, ErrNoComputations):
		return ClassConfiguration
	case errors.Is(err, relations.ErrScopeMismatch),
		errors.Is(err, relations.ErrVariableNotInScope),
		errors.Is(err, relations.ErrNotUnary):
		return ClassRelation
	case errors.Is(err, dpop.ErrUnexpectedValue),
		errors.Is(err, syncbb.ErrNoForward):
		return ClassProtocol
	case errors.Is(err, engine.ErrUnhandledMessage),
		errors.Is(err, engine.ErrSenderAlreadySet),
		errors.Is(err, engine.ErrDuplicateComputation),
		errors.Is(err, dpop.ErrUnexpectedUtil),
		errors.Is(err, dpop.ErrBadPayload),
		errors.Is(err, dsa.ErrBadPayload),
		errors.Is(err, syncbb.ErrBadPayload):
		return ClassComputation
	default:
		return ClassComputation
	}
}
