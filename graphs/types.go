// Package graphs declares the node, link and graph types shared by the
// three computation-graph builders, plus the package sentinel errors.
package graphs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/relations"
)

// Sentinel errors for graph construction and lookups.
var (
	// ErrNoVariables indicates a builder called with an empty variable list.
	ErrNoVariables = errors.New("graphs: at least one variable is required")

	// ErrUnknownVariable indicates a constraint whose scope mentions a
	// variable absent from the builder's variable list.
	ErrUnknownVariable = errors.New("graphs: constraint scope references unknown variable")

	// ErrNodeNotFound indicates a lookup for a node the graph does not hold.
	ErrNodeNotFound = errors.New("graphs: computation node not found")

	// ErrKindMismatch indicates a kind-specific accessor used on a graph of
	// another kind.
	ErrKindMismatch = errors.New("graphs: operation not defined for this graph kind")
)

// Kind tags the computation-graph family an algorithm runs on.
type Kind string

const (
	// PseudoTree is the DFS-tree graph used by inference algorithms.
	PseudoTree Kind = "pseudotree"

	// Hypergraph is the constraint hypergraph used by local search.
	Hypergraph Kind = "constraints_hypergraph"

	// OrderedChain is the fixed-order chain used by synchronous search.
	OrderedChain Kind = "ordered_graph"
)

// LinkType tags a directed edge between two computation nodes.
type LinkType string

const (
	// LinkParent points from a node to its pseudo-tree parent.
	LinkParent LinkType = "parent"

	// LinkChildren points from a node to one of its pseudo-tree children.
	LinkChildren LinkType = "children"

	// LinkPseudoParent points from a node to an ancestor it shares a
	// constraint with, other than its parent.
	LinkPseudoParent LinkType = "pseudo_parent"

	// LinkNeighbor connects two nodes sharing at least one constraint.
	LinkNeighbor LinkType = "neighbor"

	// LinkPrevious points to the predecessor in an ordered chain.
	LinkPrevious LinkType = "previous"

	// LinkNext points to the successor in an ordered chain.
	LinkNext LinkType = "next"
)

// Link is a typed directed edge between two computation nodes.
type Link struct {
	Type   LinkType
	Source string
	Target string
}

// ComputationNode is the per-variable node of a computation graph: the
// variable it stands for, its typed links, and the constraints it owns.
type ComputationNode struct {
	name        string
	variable    *core.Variable
	links       []Link
	constraints []relations.Constraint
}

// NewComputationNode assembles a node; used by the builders and by tests
// that wire graphs by hand.
func NewComputationNode(v *core.Variable, links []Link, constraints []relations.Constraint) *ComputationNode {
	return &ComputationNode{
		name:        v.Name(),
		variable:    v,
		links:       append([]Link(nil), links...),
		constraints: append([]relations.Constraint(nil), constraints...),
	}
}

// Name returns the node's name (the variable's name).
func (n *ComputationNode) Name() string { return n.name }

// Variable returns the node's variable.
func (n *ComputationNode) Variable() *core.Variable { return n.variable }

// Links returns the node's typed links. The slice must not be mutated.
func (n *ComputationNode) Links() []Link { return n.links }

// Constraints returns the constraints this node owns or evaluates.
func (n *ComputationNode) Constraints() []relations.Constraint { return n.constraints }

// targets collects the link targets of one type, preserving insertion order.
func (n *ComputationNode) targets(lt LinkType) []string {
	var out []string
	for _, l := range n.links {
		if l.Type == lt && l.Source == n.name {
			out = append(out, l.Target)
		}
	}

	return out
}

// first returns the single target of a link type, or "".
func (n *ComputationNode) first(lt LinkType) string {
	if ts := n.targets(lt); len(ts) > 0 {
		return ts[0]
	}

	return ""
}

// Parent returns the pseudo-tree parent, or "" for a root.
func (n *ComputationNode) Parent() string { return n.first(LinkParent) }

// Children returns the pseudo-tree children, possibly empty.
func (n *ComputationNode) Children() []string { return n.targets(LinkChildren) }

// PseudoParents returns the ancestors this node shares a constraint with,
// beyond its parent.
func (n *ComputationNode) PseudoParents() []string { return n.targets(LinkPseudoParent) }

// Neighbors returns the hypergraph neighbors, possibly empty.
func (n *ComputationNode) Neighbors() []string { return n.targets(LinkNeighbor) }

// GetPrevious returns the chain predecessor, or "" for the head.
func (n *ComputationNode) GetPrevious() string { return n.first(LinkPrevious) }

// GetNext returns the chain successor, or "" for the tail.
func (n *ComputationNode) GetNext() string { return n.first(LinkNext) }

// Graph is an immutable computation graph of one Kind.
type Graph struct {
	kind  Kind
	order []string
	nodes map[string]*ComputationNode
}

// newGraph assembles a graph from nodes in construction order.
func newGraph(kind Kind, nodes []*ComputationNode) *Graph {
	g := &Graph{kind: kind, nodes: make(map[string]*ComputationNode, len(nodes))}
	for _, n := range nodes {
		g.order = append(g.order, n.name)
		g.nodes[n.name] = n
	}

	return g
}

// Kind returns the graph's kind tag.
func (g *Graph) Kind() Kind { return g.kind }

// Len returns the number of computation nodes.
func (g *Graph) Len() int { return len(g.order) }

// Computation returns the node with the given name.
func (g *Graph) Computation(name string) (*ComputationNode, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, name)
	}

	return n, nil
}

// Nodes returns all nodes in construction order.
func (g *Graph) Nodes() []*ComputationNode {
	out := make([]*ComputationNode, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.nodes[name])
	}

	return out
}

// Constraints returns every distinct constraint referenced by the graph
// (hypergraph nodes share constraints; they are reported once, keyed by
// constraint name).
func (g *Graph) Constraints() []relations.Constraint {
	seen := make(map[string]struct{})
	var out []relations.Constraint
	for _, name := range g.order {
		for _, c := range g.nodes[name].constraints {
			if _, dup := seen[c.Name()]; dup {
				continue
			}
			seen[c.Name()] = struct{}{}
			out = append(out, c)
		}
	}

	return out
}

// checkScopes verifies every constraint scope against the variable set.
func checkScopes(vars []*core.Variable, constraints []relations.Constraint) error {
	known := make(map[string]struct{}, len(vars))
	for _, v := range vars {
		known[v.Name()] = struct{}{}
	}
	for _, c := range constraints {
		for _, sv := range c.Dimensions() {
			if _, ok := known[sv.Name()]; !ok {
				return fmt.Errorf("%w: %s in %s", ErrUnknownVariable, sv.Name(), c.Name())
			}
		}
	}

	return nil
}
