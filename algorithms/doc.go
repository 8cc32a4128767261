// Package algorithms is the dispatch and configuration layer of the DCOP
// runtime: typed algorithm parameters with defaults and validation,
// algorithm definitions (AlgoDef), computation seeds (ComputationDef), and
// the process-wide algorithm registry.
//
// Registry:
//
//	Algorithms register an explicit descriptor — no reflection, no module
//	scanning. A descriptor carries the parameter schema, the computation
//	factory, the computation-graph kind it runs on, and the optional
//	memory-footprint / communication-load estimators (substituted with
//	constant 1 when absent). Algorithm packages self-register from init(),
//	in the manner of database/sql drivers; the registry is constructed
//	before any agent starts and is immutable afterwards.
//
// Parameters:
//
//	A ParameterDef is (name, type ∈ {int, float, str}, allowed values,
//	default). Validation coerces string inputs to numeric types, rejects
//	unknown parameters and out-of-set values, and fills missing parameters
//	with their defaults:
//
//	  def, _ := algorithms.BuildWithDefaultParams("dsa",
//	      map[string]any{"variant": "B"}, core.Min)
//	  def.ParamValue("probability")   // 0.7
//
// Errors (sentinel):
//
//   - ErrUnknownAlgorithm  lookup of a name nothing registered.
//   - ErrInvalidParameter  unknown parameter, wrong type after coercion,
//     or a value outside the allowed set.
//   - ErrBadDescriptor     registering a descriptor missing a required
//     member (name, factory or graph kind).
package algorithms
