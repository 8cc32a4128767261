package graphs

import (
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/relations"
)

// BuildPseudoTree constructs the DFS pseudo-tree of the constraint graph.
//
// The primal graph connects two variables whenever they share a constraint;
// a depth-first traversal from the first variable (restarting on each
// unvisited variable, so forests of isolated components are supported)
// yields tree edges (parent / children links) while back-edges to
// non-parent ancestors become pseudo-parent links.
//
// Each constraint is owned by the deepest node whose variable lies in its
// scope (ties broken towards the later DFS visit), which is the invariant
// DPOP's bottom-up join relies on: by the time UTIL reaches a node, every
// constraint below it has been folded in exactly once.
//
// The traversal is deterministic: neighbors are explored in the order the
// variables were supplied.
func BuildPseudoTree(vars []*core.Variable, constraints []relations.Constraint) (*Graph, error) {
	if len(vars) == 0 {
		return nil, ErrNoVariables
	}
	if err := checkScopes(vars, constraints); err != nil {
		return nil, err
	}

	// 1) Primal adjacency in deterministic (supply) order.
	adjacent := make(map[string]map[string]struct{}, len(vars))
	for _, v := range vars {
		adjacent[v.Name()] = make(map[string]struct{})
	}
	for _, c := range constraints {
		scope := relations.ScopeNames(c)
		for _, a := range scope {
			for _, b := range scope {
				if a != b {
					adjacent[a][b] = struct{}{}
				}
			}
		}
	}

	// 2) Iterative DFS: classify tree edges and back edges.
	var (
		parent  = make(map[string]string, len(vars))
		depth   = make(map[string]int, len(vars))
		visit   = make(map[string]int, len(vars))
		visited = make(map[string]bool, len(vars))
		clock   int
	)
	var dfs func(name string, d int)
	dfs = func(name string, d int) {
		visited[name] = true
		depth[name] = d
		visit[name] = clock
		clock++
		// Deterministic neighbor order: supply order of the variables.
		for _, next := range vars {
			nn := next.Name()
			if _, edge := adjacent[name][nn]; !edge || visited[nn] {
				continue
			}
			parent[nn] = name
			dfs(nn, d+1)
		}
	}
	for _, v := range vars {
		if !visited[v.Name()] {
			dfs(v.Name(), 0)
		}
	}

	// 3) Constraint ownership: deepest scope member, ties to later visit.
	owned := make(map[string][]relations.Constraint, len(vars))
	for _, c := range constraints {
		owner := ""
		for _, sv := range c.Dimensions() {
			name := sv.Name()
			if owner == "" ||
				depth[name] > depth[owner] ||
				(depth[name] == depth[owner] && visit[name] > visit[owner]) {
				owner = name
			}
		}
		owned[owner] = append(owned[owner], c)
	}

	// 4) Assemble nodes with parent / children / pseudo-parent links.
	ancestors := func(name string) map[string]struct{} {
		up := make(map[string]struct{})
		for p, ok := parent[name]; ok; p, ok = parent[p] {
			up[p] = struct{}{}
		}

		return up
	}
	nodes := make([]*ComputationNode, 0, len(vars))
	for _, v := range vars {
		name := v.Name()
		var links []Link
		if p, ok := parent[name]; ok {
			links = append(links, Link{Type: LinkParent, Source: name, Target: p})
		}
		for _, child := range vars {
			if parent[child.Name()] == name && child.Name() != name {
				links = append(links, Link{Type: LinkChildren, Source: name, Target: child.Name()})
			}
		}
		// Pseudo-parents: strict ancestors (beyond the parent) sharing an
		// edge with this node.
		up := ancestors(name)
		for _, other := range vars {
			on := other.Name()
			if on == parent[name] {
				continue
			}
			if _, isUp := up[on]; !isUp {
				continue
			}
			if _, edge := adjacent[name][on]; edge {
				links = append(links, Link{Type: LinkPseudoParent, Source: name, Target: on})
			}
		}
		nodes = append(nodes, NewComputationNode(v, links, owned[name]))
	}

	return newGraph(PseudoTree, nodes), nil
}
