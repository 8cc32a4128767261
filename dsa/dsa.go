package dsa

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/katalvlaran/lvldcop/algorithms"
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/engine"
	"github.com/katalvlaran/lvldcop/relations"
)

// postponedValue is a neighbor value received ahead of the current cycle.
type postponedValue struct {
	sender string
	value  core.Value
}

// Computation is the DSA state machine for one variable of the constraint
// hypergraph.
type Computation struct {
	*engine.VariableComputation

	mode        core.Mode
	variant     string
	probability float64
	stopCycle   int

	constraints []relations.Constraint
	neighbors   []string

	// neighborsValues holds one value per neighbor for the current cycle.
	neighborsValues core.Assignment

	// postponed queues values that arrived for the next cycle before the
	// current one completed; they must not overwrite current values.
	postponed []postponedValue

	// optimums precomputes each constraint's best achievable cost; a
	// constraint whose cost differs from its optimum is violated.
	optimums map[string]float64
}

// NewComputation builds the DSA computation for one hypergraph node with a
// deterministic default random source.
func NewComputation(def *algorithms.ComputationDef) (*Computation, error) {
	return NewComputationWithRand(def, nil)
}

// NewComputationWithRand is NewComputation with an injected random source
// (nil for the deterministic default).
func NewComputationWithRand(def *algorithms.ComputationDef, rnd *rand.Rand) (*Computation, error) {
	if def.Algo().Algo() != AlgorithmName {
		return nil, fmt.Errorf("%w: %s", ErrWrongAlgorithm, def.Algo().Algo())
	}
	node := def.Node()

	c := &Computation{
		VariableComputation: engine.NewVariableComputation(node.Variable(), rnd),
		mode:                def.Algo().Mode(),
		variant:             VariantB,
		probability:         0.7,
		constraints:         node.Constraints(),
		neighbors:           node.Neighbors(),
		neighborsValues:     make(core.Assignment),
		optimums:            make(map[string]float64, len(node.Constraints())),
	}
	if v, ok := def.Algo().ParamValue("variant").(string); ok {
		c.variant = v
	}
	if p, ok := def.Algo().ParamValue("probability").(float64); ok {
		c.probability = p
	}
	if sc, ok := def.Algo().ParamValue("stop_cycle").(int); ok {
		c.stopCycle = sc
	}

	// Precompute each constraint's optimum for the violation test.
	for _, cs := range c.constraints {
		best, err := relations.FindOptimum(cs, c.mode)
		if err != nil {
			return nil, err
		}
		c.optimums[cs.Name()] = best
	}

	c.Handle(TagValue, c.onValueMsg)

	return c, nil
}

// Variant returns the decision-rule variant in use.
func (c *Computation) Variant() string { return c.variant }

// OnStart selects a random initial value and broadcasts it. An isolated
// variable has nobody to talk to: it selects its unary optimum (or keeps
// the random value at cost 0) and finalizes immediately.
func (c *Computation) OnStart() {
	if len(c.neighbors) == 0 {
		if c.Variable().HasCostFunc() {
			values, best := relations.ArgOptimal(c.Variable(), c.Variable().CostForVal, c.mode)
			c.SelectValueAndFinish(values[0], best)

			return
		}
		d := c.Variable().Domain()
		c.SelectValueAndFinish(d.At(c.Rand().Intn(d.Len())), 0)

		return
	}

	c.RandomValueSelection()
	c.Logger().Debug("DSA starts with random value",
		"computation", c.Name(), "value", c.CurrentValue())
	c.sendValue()
	// Everything is asynchronous: neighbor values may have been recorded
	// before this computation started. Treat them now.
	c.evaluateCycle()
}

// onValueMsg records a neighbor's value — or postpones it when it belongs
// to the next cycle — then re-checks whether the cycle is complete.
func (c *Computation) onValueMsg(sender string, msg engine.Message, _ time.Time) error {
	vm, ok := msg.(ValueMessage)
	if !ok {
		return fmt.Errorf("%w: %T for %s", ErrBadPayload, msg, TagValue)
	}
	if _, seen := c.neighborsValues[sender]; !seen {
		c.neighborsValues[sender] = vm.Value
	} else {
		// A second value from the same neighbor before this cycle closed:
		// it is next cycle's value, keep the current one.
		c.postponed = append(c.postponed, postponedValue{sender: sender, value: vm.Value})
	}
	c.evaluateCycle()

	return nil
}

// evaluateCycle runs the decision rule once every neighbor reported and an
// initial value exists, then opens the next cycle.
func (c *Computation) evaluateCycle() {
	if len(c.neighborsValues) < len(c.neighbors) || !c.HasValue() {
		return
	}

	bests, bestCost := c.computeBestValue()
	current := c.neighborsValues.Copy()
	current[c.Name()] = c.CurrentValue()
	currentCost, err := relations.TotalAssignmentCost(current, c.constraints)
	if err != nil {
		c.Logger().Error("cost evaluation failed", "computation", c.Name(), "err", err)

		return
	}

	delta := currentCost - bestCost
	improving := (c.mode == core.Min && delta > 0) || (c.mode == core.Max && delta < 0)

	switch {
	case improving:
		if c.probability > c.Rand().Float64() {
			c.ValueSelection(bests[c.Rand().Intn(len(bests))], bestCost)
		}
	case delta == 0 && (c.variant == VariantB || c.variant == VariantC) && c.existsViolatedConstraint(current):
		// B and C may move laterally while conflicts remain, to escape
		// local optima.
		c.lateralMove(bests, bestCost)
	case delta == 0 && c.variant == VariantC:
		// C moves laterally even without conflicts.
		c.lateralMove(bests, bestCost)
	}

	// Next cycle: clear, re-broadcast, then replay postponed values.
	c.neighborsValues = make(core.Assignment, len(c.neighbors))
	c.sendValue()
	if c.IsFinished() {
		return
	}
	for _, pv := range c.postponed {
		c.neighborsValues[pv.sender] = pv.value
	}
	c.postponed = c.postponed[:0]
}

// lateralMove switches to another tied-best value with probability p.
func (c *Computation) lateralMove(bests []core.Value, bestCost float64) {
	if len(bests) < 2 || c.probability <= c.Rand().Float64() {
		return
	}
	others := make([]core.Value, 0, len(bests)-1)
	for _, v := range bests {
		if v != c.CurrentValue() {
			others = append(others, v)
		}
	}
	if len(others) == 0 {
		return
	}
	c.ValueSelection(others[c.Rand().Intn(len(others))], bestCost)
}

// computeBestValue scans the domain for the best total local cost given
// the neighbors' values, unary variable costs included.
func (c *Computation) computeBestValue() ([]core.Value, float64) {
	scratch := c.neighborsValues.Copy()

	return relations.ArgOptimal(c.Variable(), func(v core.Value) float64 {
		scratch[c.Name()] = v
		cost, err := relations.TotalAssignmentCost(scratch, c.constraints)
		if err != nil {
			c.Logger().Error("candidate evaluation failed", "computation", c.Name(), "err", err)

			return core.WorstCost(c.mode)
		}

		return cost
	}, c.mode)
}

// existsViolatedConstraint reports whether any local constraint's cost
// differs from its precomputed optimum under the current assignment.
func (c *Computation) existsViolatedConstraint(current core.Assignment) bool {
	for _, cs := range c.constraints {
		cost, err := cs.Apply(current)
		if err != nil {
			continue
		}
		if cost != c.optimums[cs.Name()] {
			return true
		}
	}

	return false
}

// sendValue opens a new cycle: terminate when the cycle budget is spent,
// otherwise broadcast the current value to every neighbor.
func (c *Computation) sendValue() {
	c.NewCycle()
	if c.stopCycle > 0 && c.CycleCount() >= c.stopCycle {
		c.Finish()

		return
	}
	for _, n := range c.neighbors {
		c.PostMsg(n, ValueMessage{Value: c.CurrentValue()})
	}
}
