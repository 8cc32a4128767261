package dpop

import (
	"fmt"
	"time"

	"github.com/katalvlaran/lvldcop/algorithms"
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/engine"
	"github.com/katalvlaran/lvldcop/relations"
)

// Computation is the DPOP state machine for one variable of a pseudo-tree.
//
// A constraint is managed by exactly one computation: the lowest node in
// the tree whose variable lies in its scope (the pseudo-tree builder
// enforces this). Pseudo-parents are implicit: any scope variable of an
// owned constraint that is neither a child nor self is an ancestor.
type Computation struct {
	*engine.VariableComputation

	mode        core.Mode
	parent      string
	children    []string
	constraints []relations.Constraint

	// joinedUtils accumulates the child UTIL relations and, before
	// projecting, the local constraints. Scope grows as messages arrive.
	joinedUtils *relations.MatrixRelation

	// waitedChildren tracks the children still owing a UTIL message.
	waitedChildren map[string]struct{}

	// childrenSeparator records each child's UTIL scope; the VALUE phase
	// projects the known assignment onto it.
	childrenSeparator map[string][]string
}

// NewComputation builds the DPOP computation for one pseudo-tree node.
func NewComputation(def *algorithms.ComputationDef) (*Computation, error) {
	if def.Algo().Algo() != AlgorithmName {
		return nil, fmt.Errorf("%w: %s", ErrWrongAlgorithm, def.Algo().Algo())
	}
	node := def.Node()
	v := node.Variable()

	c := &Computation{
		VariableComputation: engine.NewVariableComputation(v, nil),
		mode:                def.Algo().Mode(),
		parent:              node.Parent(),
		children:            node.Children(),
		constraints:         node.Constraints(),
		waitedChildren:      make(map[string]struct{}, len(node.Children())),
		childrenSeparator:   make(map[string][]string, len(node.Children())),
	}

	// Initial utility: the variable's own unary costs when it has them,
	// the empty-scope identity relation otherwise. The distinction matters:
	// an empty-scope relation joins as identity, a unary one adds a
	// dimension over self.
	if v.HasCostFunc() {
		c.joinedUtils = relations.UnaryFromCosts("joined_utils", v)
	} else {
		c.joinedUtils = relations.NewMatrix("joined_utils", nil)
	}

	// Waiting must be armed at construction, not OnStart: a fast child may
	// deliver its UTIL before this computation starts.
	for _, child := range c.children {
		c.waitedChildren[child] = struct{}{}
	}

	c.Handle(TagUtil, c.onUtil)
	c.Handle(TagValue, c.onValue)

	return c, nil
}

// IsRoot reports whether this computation has no parent.
func (c *Computation) IsRoot() bool { return c.parent == "" }

// IsLeaf reports whether this computation has no children.
func (c *Computation) IsLeaf() bool { return len(c.children) == 0 }

// StopCondition: DPOP is one-shot — once a value is selected it is done.
func (c *Computation) StopCondition() engine.StopCondition {
	if c.HasValue() {
		return engine.Stop
	}

	return engine.Continue
}

// OnStart kicks the UTIL phase off at the leaves; an isolated root-leaf
// selects its value immediately.
func (c *Computation) OnStart() {
	switch {
	case c.IsLeaf() && !c.IsRoot():
		// A leaf can compute and send its UTIL straight away.
		util, err := c.computeUtils()
		if err != nil {
			c.Logger().Error("leaf UTIL computation failed", "computation", c.Name(), "err", err)

			return
		}
		c.Logger().Info("leaf sends initial UTIL",
			"computation", c.Name(), "parent", c.parent, "size", util.Size())
		c.PostMsg(c.parent, UtilMessage{Util: util})

	case c.IsLeaf() && c.IsRoot():
		// Isolated variable: no messages to exchange.
		c.selectIsolated()
	}
}

// selectIsolated picks the value of a root-leaf: the arg-optimum of its
// joined constraints when it has any, a random value at cost 0 otherwise.
func (c *Computation) selectIsolated() {
	if len(c.constraints) == 0 {
		d := c.Variable().Domain()
		c.SelectValueAndFinish(d.At(c.Rand().Intn(d.Len())), 0)

		return
	}
	for _, r := range c.constraints {
		joined, err := relations.Join(c.joinedUtils, r)
		if err != nil {
			c.Logger().Error("isolated join failed", "computation", c.Name(), "err", err)

			return
		}
		c.joinedUtils = joined
	}
	values, cost, err := relations.FindArgOptimal(c.Variable(), c.joinedUtils, c.mode)
	if err != nil {
		c.Logger().Error("isolated arg-optimal failed", "computation", c.Name(), "err", err)

		return
	}
	c.SelectValueAndFinish(values[0], cost)
}

// computeUtils joins the local constraints into the accumulated utility
// and projects self out: the UTIL relation for the parent.
func (c *Computation) computeUtils() (*relations.MatrixRelation, error) {
	for _, r := range c.constraints {
		joined, err := relations.Join(c.joinedUtils, r)
		if err != nil {
			return nil, err
		}
		c.joinedUtils = joined
	}

	return relations.Project(c.joinedUtils, c.Variable(), c.mode)
}

// onUtil accumulates one child's UTIL; when the last one arrives the root
// starts the VALUE phase and everyone else propagates upward.
func (c *Computation) onUtil(sender string, msg engine.Message, _ time.Time) error {
	util, ok := msg.(UtilMessage)
	if !ok {
		return fmt.Errorf("%w: %T for %s", ErrBadPayload, msg, TagUtil)
	}
	if _, waited := c.waitedChildren[sender]; !waited {
		return fmt.Errorf("%w: from %s on %s", ErrUnexpectedUtil, sender, c.Name())
	}
	delete(c.waitedChildren, sender)

	joined, err := relations.Join(c.joinedUtils, util.Util)
	if err != nil {
		return err
	}
	c.joinedUtils = joined
	// The child's UTIL scope is its separator; the VALUE phase needs it.
	c.childrenSeparator[sender] = relations.ScopeNames(util.Util)

	if len(c.waitedChildren) > 0 {
		return nil
	}
	if c.IsRoot() {
		return c.startValuePhase()
	}

	util2, err := c.computeUtils()
	if err != nil {
		return err
	}
	c.Logger().Info("UTIL complete, propagating upward",
		"computation", c.Name(), "parent", c.parent, "size", util2.Size())
	c.PostMsg(c.parent, UtilMessage{Util: util2})

	return nil
}

// startValuePhase runs at the root once every child reported: join the
// root's own (necessarily unary) constraints, select the optimum, send
// VALUE to every child and finish.
func (c *Computation) startValuePhase() error {
	for _, r := range c.constraints {
		joined, err := relations.Join(c.joinedUtils, r)
		if err != nil {
			return err
		}
		c.joinedUtils = joined
	}
	values, cost, err := relations.FindArgOptimal(c.Variable(), c.joinedUtils, c.mode)
	if err != nil {
		return err
	}
	selected := values[0]
	c.Logger().Info("root selected value, starting VALUE phase",
		"computation", c.Name(), "value", selected, "children", c.children)
	for _, child := range c.children {
		c.PostMsg(child, ValueMessage{
			Variables: []string{c.Name()},
			Values:    []core.Value{selected},
		})
	}
	c.SelectValueAndFinish(selected, cost)

	return nil
}

// onValue handles the downward assignment: slice the accumulated utility
// on the separator assignment, select self's optimum, forward each child
// its separator restriction, finish.
func (c *Computation) onValue(sender string, msg engine.Message, _ time.Time) error {
	value, ok := msg.(ValueMessage)
	if !ok {
		return fmt.Errorf("%w: %T for %s", ErrBadPayload, msg, TagValue)
	}
	if c.IsRoot() || c.HasValue() {
		return fmt.Errorf("%w: from %s on %s", ErrUnexpectedValue, sender, c.Name())
	}
	if len(value.Variables) != len(value.Values) {
		return fmt.Errorf("%w: %d variables, %d values", ErrBadPayload, len(value.Variables), len(value.Values))
	}

	// The message assigns every variable of our separator: slicing on it
	// leaves a relation over our own variable alone.
	valueDict := make(core.Assignment, len(value.Variables))
	for i, name := range value.Variables {
		valueDict[name] = value.Values[i]
	}
	rel, err := c.joinedUtils.Slice(valueDict)
	if err != nil {
		return err
	}
	values, cost, err := relations.FindArgOptimal(c.Variable(), rel, c.mode)
	if err != nil {
		return err
	}
	selected := values[0]

	for _, child := range c.children {
		vars := []string{c.Name()}
		vals := []core.Value{selected}
		// Child separator ∩ known assignment, augmented with self.
		for _, sep := range c.childrenSeparator[child] {
			if v, known := valueDict[sep]; known {
				vars = append(vars, sep)
				vals = append(vals, v)
			}
		}
		c.PostMsg(child, ValueMessage{Variables: vars, Values: vals})
	}
	c.SelectValueAndFinish(selected, cost)

	return nil
}
