package algorithms

import (
	"fmt"

	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/graphs"
)

// AlgoDef names an algorithm together with the parameter values and the
// optimization mode to run it with. Build it with BuildWithDefaultParams
// so defaults are filled and supplied values validated; the plain
// constructor performs no checking.
type AlgoDef struct {
	algo   string
	mode   core.Mode
	params map[string]any
}

// NewAlgoDef builds an AlgoDef without validation: params must already be
// a complete, valid parameter set for the algorithm.
func NewAlgoDef(algo string, params map[string]any, mode core.Mode) *AlgoDef {
	dup := make(map[string]any, len(params))
	for name, v := range params {
		dup[name] = v
	}

	return &AlgoDef{algo: algo, mode: mode, params: dup}
}

// BuildWithDefaultParams builds an AlgoDef for a registered algorithm:
// supplied parameters are validated against the registry schema (with
// string coercion) and missing ones take their default values.
//
//	def, err := BuildWithDefaultParams("dsa", map[string]any{"variant": "A"}, core.Min)
//
// Errors: ErrUnknownAlgorithm for an unregistered name, ErrInvalidParameter
// for unknown names / bad types / out-of-set values, core.ErrBadMode for a
// mode other than min or max.
func BuildWithDefaultParams(algo string, params map[string]any, mode core.Mode) (*AlgoDef, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", core.ErrBadMode, mode)
	}
	d, err := Lookup(algo)
	if err != nil {
		return nil, err
	}
	prepared, err := PrepareParams(params, d.Params)
	if err != nil {
		return nil, err
	}

	return &AlgoDef{algo: algo, mode: mode, params: prepared}, nil
}

// Algo returns the algorithm name.
func (a *AlgoDef) Algo() string { return a.algo }

// Mode returns the optimization mode.
func (a *AlgoDef) Mode() core.Mode { return a.mode }

// ParamValue returns the value of one parameter (nil when unset).
func (a *AlgoDef) ParamValue(name string) any { return a.params[name] }

// Params returns a copy of the parameter map, safe to modify.
func (a *AlgoDef) Params() map[string]any {
	dup := make(map[string]any, len(a.params))
	for name, v := range a.params {
		dup[name] = v
	}

	return dup
}

// String implements fmt.Stringer.
func (a *AlgoDef) String() string { return fmt.Sprintf("AlgoDef(%s)", a.algo) }

// ComputationDef is the seed for instantiating a running computation: the
// graph node it stands on and the algorithm definition to run.
type ComputationDef struct {
	node *graphs.ComputationNode
	algo *AlgoDef
}

// NewComputationDef pairs a node with an algorithm definition.
func NewComputationDef(node *graphs.ComputationNode, algo *AlgoDef) *ComputationDef {
	return &ComputationDef{node: node, algo: algo}
}

// Node returns the computation-graph node.
func (c *ComputationDef) Node() *graphs.ComputationNode { return c.node }

// Algo returns the algorithm definition.
func (c *ComputationDef) Algo() *AlgoDef { return c.algo }

// Name returns the computation's name (the node's name).
func (c *ComputationDef) Name() string { return c.node.Name() }

// String implements fmt.Stringer.
func (c *ComputationDef) String() string {
	return fmt.Sprintf("ComputationDef(%s, %s)", c.node.Name(), c.algo.Algo())
}
