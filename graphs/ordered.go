package graphs

import (
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/relations"
)

// BuildOrderedGraph constructs the ordered-chain view: the variables become
// a chain in the supplied order, each node linked to its predecessor and
// successor. Each constraint is owned by the highest-ordered variable of
// its scope, so when synchronous search reaches a node, every constraint it
// owns has its full scope assigned along the path.
func BuildOrderedGraph(vars []*core.Variable, constraints []relations.Constraint) (*Graph, error) {
	if len(vars) == 0 {
		return nil, ErrNoVariables
	}
	if err := checkScopes(vars, constraints); err != nil {
		return nil, err
	}

	// 1) Rank every variable by chain position.
	rank := make(map[string]int, len(vars))
	for i, v := range vars {
		rank[v.Name()] = i
	}

	// 2) Constraint ownership: highest-ranked scope member.
	owned := make(map[string][]relations.Constraint, len(vars))
	for _, c := range constraints {
		owner := ""
		for _, sv := range c.Dimensions() {
			if owner == "" || rank[sv.Name()] > rank[owner] {
				owner = sv.Name()
			}
		}
		owned[owner] = append(owned[owner], c)
	}

	// 3) Chain links.
	nodes := make([]*ComputationNode, 0, len(vars))
	for i, v := range vars {
		name := v.Name()
		var links []Link
		if i > 0 {
			links = append(links, Link{Type: LinkPrevious, Source: name, Target: vars[i-1].Name()})
		}
		if i < len(vars)-1 {
			links = append(links, Link{Type: LinkNext, Source: name, Target: vars[i+1].Name()})
		}
		nodes = append(nodes, NewComputationNode(v, links, owned[name]))
	}

	return newGraph(OrderedChain, nodes), nil
}
