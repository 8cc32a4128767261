// Package bench models benchmark batches: YAML definitions describing
// problem sets and command batches, parameter-space regularization and
// cartesian expansion, and the command lines a runner would execute.
//
// A definition file has three sections:
//
//	sets:             named problem sets (a file-glob path, an iteration count)
//	batches:          named batches (command, per-batch options, parameter lists)
//	global_options:   options shared by every command
//
// Parameter handling:
//
//   - RegularizeParameters normalizes every parameter value to a list of
//     strings (scalars become one-element lists; nested maps recurse), so
//     downstream expansion is uniform.
//   - ParameterConfigurations expands a parameter map into the cartesian
//     product of its value lists, preserving the per-key value order:
//     {p1: [1, 2], p2: [c]} → [{p1:1, p2:c}, {p1:2, p2:c}].
//   - ExpandVariables substitutes {placeholder} occurrences from a context
//     (set name, iteration, batch name, options) in strings, lists and maps.
//
// Commands enumerates the full command list of a definition without
// executing anything — the execution harness itself stays out of scope.
//
// Errors (sentinel):
//
//   - ErrBadDefinition  a definition missing sets or batches.
//   - ErrBadExpansion   ExpandVariables on an unsupported value kind.
package bench
