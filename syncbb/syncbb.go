package syncbb

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/lvldcop/algorithms"
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/engine"
	"github.com/katalvlaran/lvldcop/relations"
)

// Computation is the SyncBB state machine for one variable of the ordered
// chain. It owns the constraints whose scope closes at this variable, so a
// candidate's marginal cost is fully determined by the incoming path.
type Computation struct {
	*engine.VariableComputation

	mode        core.Mode
	constraints []relations.Constraint
	previous    string
	next        string

	// upperBound is the best complete-assignment cost seen so far.
	upperBound float64

	// bestValue is this variable's value in the best path; recorded each
	// time a strictly improved bound reaches this computation on a
	// backward path naming it.
	bestValue core.Value
	hasBest   bool

	// sentForward guards the protocol: backward before forward is a
	// violation.
	sentForward bool
}

// NewComputation builds the SyncBB computation for one chain node.
func NewComputation(def *algorithms.ComputationDef) (*Computation, error) {
	if def.Algo().Algo() != AlgorithmName {
		return nil, fmt.Errorf("%w: %s", ErrWrongAlgorithm, def.Algo().Algo())
	}
	node := def.Node()

	c := &Computation{
		VariableComputation: engine.NewVariableComputation(node.Variable(), nil),
		mode:                def.Algo().Mode(),
		constraints:         node.Constraints(),
		previous:            node.GetPrevious(),
		next:                node.GetNext(),
		upperBound:          worstBound(def.Algo().Mode()),
	}

	c.Handle(TagForward, c.onForward)
	c.Handle(TagBackward, c.onBackward)
	c.Handle(TagTerminate, c.onTerminate)

	return c, nil
}

// worstBound is the ±Inf initializer for the chain bound.
func worstBound(mode core.Mode) float64 {
	if mode == core.Max {
		return math.Inf(-1)
	}

	return math.Inf(1)
}

// IsHead reports whether this computation opens the chain.
func (c *Computation) IsHead() bool { return c.previous == "" }

// IsTail reports whether this computation closes the chain.
func (c *Computation) IsTail() bool { return c.next == "" }

// StopCondition: SyncBB is one-shot — done once a value is selected.
func (c *Computation) StopCondition() engine.StopCondition {
	if c.HasValue() {
		return engine.Stop
	}

	return engine.Continue
}

// OnStart: only the head acts — it assigns its first domain value at cost
// 0 and opens the search. A single-variable chain solves locally.
func (c *Computation) OnStart() {
	if !c.IsHead() {
		return
	}
	if c.IsTail() {
		c.solveAlone()

		return
	}
	path := Path{{Variable: c.Name(), Value: c.Variable().Domain().At(0), Cost: 0}}
	c.sentForward = true
	c.Logger().Debug("chain head opens search", "computation", c.Name())
	c.PostMsg(c.next, ForwardMessage{CurrentPath: path, UB: c.upperBound})
}

// solveAlone optimizes a one-variable chain over its (unary) constraints
// and unary costs.
func (c *Computation) solveAlone() {
	values, best := relations.ArgOptimal(c.Variable(), func(v core.Value) float64 {
		cost, err := relations.AssignmentCost(core.Assignment{c.Name(): v}, c.constraints)
		if err != nil {
			return worstBound(c.mode)
		}

		return cost + c.Variable().CostForVal(v)
	}, c.mode)
	c.SelectValueAndFinish(values[0], best)
}

// adoptBound takes a strictly improved bound; on backward paths naming
// this computation it also records the best value.
func (c *Computation) adoptBound(ub float64, value core.Value, record bool) {
	if !core.Better(c.mode, ub, c.upperBound) {
		return
	}
	c.upperBound = ub
	if record {
		c.bestValue = value
		c.hasBest = true
	}
}

// onForward extends the path at this variable: first feasible value wins;
// the tail additionally scans all its values for bound improvements.
func (c *Computation) onForward(sender string, msg engine.Message, _ time.Time) error {
	fwd, ok := msg.(ForwardMessage)
	if !ok {
		return fmt.Errorf("%w: %T for %s", ErrBadPayload, msg, TagForward)
	}
	c.adoptBound(fwd.UB, nil, false)
	path := fwd.CurrentPath

	if c.IsTail() {
		c.closeCandidates(path)

		return nil
	}

	value, cost, found := c.nextAssignment(nil, path)
	if !found {
		// Nothing fits under the bound: backtrack at the predecessor.
		c.PostMsg(c.previous, BackwardMessage{CurrentPath: path.clone(), UB: c.upperBound})

		return nil
	}
	extended := append(path.clone(), PathElement{Variable: c.Name(), Value: value, Cost: cost})
	c.sentForward = true
	c.PostMsg(c.next, ForwardMessage{CurrentPath: extended, UB: c.upperBound})

	return nil
}

// closeCandidates runs at the tail: scan feasible values in domain order,
// adopt every strict bound improvement (ties keep the earlier path), then
// backtrack once with the final bound.
func (c *Computation) closeCandidates(path Path) {
	pathCost := path.Cost()
	current := core.Value(nil)
	for {
		value, cost, found := c.nextAssignment(current, path)
		if !found {
			break
		}
		total := pathCost + cost
		if core.Better(c.mode, total, c.upperBound) {
			c.upperBound = total
			c.bestValue = value
			c.hasBest = true
			c.Logger().Info("new incumbent",
				"computation", c.Name(), "value", value, "bound", total)
		}
		current = value
	}
	c.PostMsg(c.previous, BackwardMessage{CurrentPath: path.clone(), UB: c.upperBound})
}

// onBackward advances this variable's value past the tail of the path; on
// exhaustion it backtracks further, and at the head it terminates the
// search.
func (c *Computation) onBackward(sender string, msg engine.Message, _ time.Time) error {
	bwd, ok := msg.(BackwardMessage)
	if !ok {
		return fmt.Errorf("%w: %T for %s", ErrBadPayload, msg, TagBackward)
	}
	if !c.sentForward {
		return fmt.Errorf("%w: on %s from %s", ErrNoForward, c.Name(), sender)
	}
	path := bwd.CurrentPath
	if len(path) == 0 || path[len(path)-1].Variable != c.Name() {
		return fmt.Errorf("%w: backward path does not end at %s", ErrBadPayload, c.Name())
	}
	tail := path[len(path)-1]
	c.adoptBound(bwd.UB, tail.Value, true)
	prefix := path[:len(path)-1]

	value, cost, found := c.nextAssignment(tail.Value, prefix)
	if found {
		extended := append(prefix.clone(), PathElement{Variable: c.Name(), Value: value, Cost: cost})
		c.Logger().Debug("backtrack advances value",
			"computation", c.Name(), "value", value)
		c.PostMsg(c.next, ForwardMessage{CurrentPath: extended, UB: c.upperBound})

		return nil
	}
	if c.IsHead() {
		// Domain exhausted at the head: the search is complete.
		c.PostMsg(c.next, TerminateMessage{UB: c.upperBound})
		c.finishWithBest()

		return nil
	}
	c.PostMsg(c.previous, BackwardMessage{CurrentPath: prefix.clone(), UB: c.upperBound})

	return nil
}

// onTerminate propagates shutdown along the chain and finalizes.
func (c *Computation) onTerminate(sender string, msg engine.Message, _ time.Time) error {
	if _, ok := msg.(TerminateMessage); !ok {
		return fmt.Errorf("%w: %T for %s", ErrBadPayload, msg, TagTerminate)
	}
	if !c.IsTail() {
		c.PostMsg(c.next, TerminateMessage{UB: c.upperBound})
	}
	c.finishWithBest()

	return nil
}

// finishWithBest finalizes with the recorded best value and the terminal
// bound as cost.
func (c *Computation) finishWithBest() {
	if !c.hasBest {
		// No feasible complete path ever closed; fall back to the first
		// domain value.
		c.SelectValueAndFinish(c.Variable().Domain().At(0), c.upperBound)

		return
	}
	c.SelectValueAndFinish(c.bestValue, c.upperBound)
}

// nextAssignment finds the first value of this variable strictly after
// current (all of the domain when current is nil) whose cumulative cost
// stays strictly inside the bound, together with its marginal cost: the
// sum of this computation's constraints evaluated on path + candidate.
// Constraints owned here have their whole scope assigned by construction.
func (c *Computation) nextAssignment(current core.Value, path Path) (core.Value, float64, bool) {
	base := path.Assignment()
	pathCost := path.Cost()
	for _, candidate := range ValueCandidates(c.Variable(), current) {
		if len(path) == 0 {
			return candidate, 0, true
		}
		base[c.Name()] = candidate
		marginal, err := relations.AssignmentCost(base, c.constraints)
		if err != nil {
			c.Logger().Error("candidate evaluation failed", "computation", c.Name(), "err", err)
			continue
		}
		if c.strictlyInside(pathCost + marginal) {
			return candidate, marginal, true
		}
	}

	return nil, 0, false
}

// strictlyInside reports whether total still beats the bound strictly.
func (c *Computation) strictlyInside(total float64) bool {
	if c.mode == core.Max {
		return total > c.upperBound
	}

	return total < c.upperBound
}

// ValueCandidates returns the ordered list of values of v strictly after
// current in the domain, or the full domain when current is nil.
func ValueCandidates(v *core.Variable, current core.Value) []core.Value {
	d := v.Domain()
	if current == nil {
		return d.Values()
	}
	var candidates []core.Value
	reached := false
	for i := 0; i < d.Len(); i++ {
		if reached {
			candidates = append(candidates, d.At(i))
			continue
		}
		if d.At(i) == current {
			reached = true
		}
	}

	return candidates
}
