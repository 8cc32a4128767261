package graphs

import (
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/relations"
)

// BuildHypergraph constructs the constraint-hypergraph view: one node per
// variable, neighbor links to every other variable it shares a constraint
// with, and — unlike the pseudo-tree — every node referencing all the
// constraints involving it (local search evaluates constraints in place,
// so sharing is intentional).
//
// Neighbor order is deterministic: the supply order of the variables.
func BuildHypergraph(vars []*core.Variable, constraints []relations.Constraint) (*Graph, error) {
	if len(vars) == 0 {
		return nil, ErrNoVariables
	}
	if err := checkScopes(vars, constraints); err != nil {
		return nil, err
	}

	// 1) Neighbor sets from shared constraint scopes.
	neighborSet := make(map[string]map[string]struct{}, len(vars))
	for _, v := range vars {
		neighborSet[v.Name()] = make(map[string]struct{})
	}
	for _, c := range constraints {
		scope := relations.ScopeNames(c)
		for _, a := range scope {
			for _, b := range scope {
				if a != b {
					neighborSet[a][b] = struct{}{}
				}
			}
		}
	}

	// 2) Assemble nodes.
	nodes := make([]*ComputationNode, 0, len(vars))
	for _, v := range vars {
		name := v.Name()
		var links []Link
		for _, other := range vars {
			if _, edge := neighborSet[name][other.Name()]; edge {
				links = append(links, Link{Type: LinkNeighbor, Source: name, Target: other.Name()})
			}
		}
		nodes = append(nodes, NewComputationNode(v, links, relations.ConstraintsForVariable(constraints, name)))
	}

	return newGraph(Hypergraph, nodes), nil
}
