package engine

import (
	"hash/fnv"
	"math/rand"

	"github.com/katalvlaran/lvldcop/core"
)

// defaultRNGSeed is the fixed base seed used when no source is supplied:
// same inputs, same run. Harnesses inject their own source for varied runs.
const defaultRNGSeed uint64 = 1

// deriveSeed mixes the base seed with the computation name into an
// independent substream, SplitMix64-style: identically seeded computations
// would otherwise draw identical sequences and stochastic algorithms could
// never break symmetric ties.
func deriveSeed(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	z := defaultRNGSeed ^ h.Sum64()
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return int64(z ^ (z >> 31))
}

// VariableComputation extends the message-passing base with the state every
// variable-hosting algorithm shares: the variable, the currently selected
// value and its cost, and the value-selection events.
type VariableComputation struct {
	MessagePassingComputation

	variable *core.Variable
	current  core.Value
	hasValue bool
	cost     float64

	rnd     *rand.Rand
	onValue func(value core.Value, cost float64)
}

// NewVariableComputation builds the variable-computation base for v.
// rnd may be nil: a deterministic default source is used.
func NewVariableComputation(v *core.Variable, rnd *rand.Rand) *VariableComputation {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(deriveSeed(v.Name())))
	}

	return &VariableComputation{
		MessagePassingComputation: *NewMessagePassingComputation(v.Name()),
		variable:                  v,
		rnd:                       rnd,
	}
}

// Variable returns the hosted variable.
func (c *VariableComputation) Variable() *core.Variable { return c.variable }

// Rand returns the computation's random source. Not goroutine-safe; use
// only from the computation's own handlers.
func (c *VariableComputation) Rand() *rand.Rand { return c.rnd }

// CurrentValue returns the currently selected value, nil before the first
// selection.
func (c *VariableComputation) CurrentValue() core.Value { return c.current }

// HasValue reports whether a value has been selected yet.
func (c *VariableComputation) HasValue() bool { return c.hasValue }

// CurrentCost returns the local cost associated with the current value.
func (c *VariableComputation) CurrentCost() float64 { return c.cost }

// ValueSelection sets the current (value, cost) pair and emits the
// value-selection event.
func (c *VariableComputation) ValueSelection(value core.Value, cost float64) {
	c.current = value
	c.cost = cost
	c.hasValue = true
	c.Logger().Debug("value selected",
		"computation", c.Name(), "value", value, "cost", cost)
	if c.onValue != nil {
		c.onValue(value, cost)
	}
}

// RandomValueSelection selects a value uniformly from the domain, with
// cost 0.
func (c *VariableComputation) RandomValueSelection() {
	d := c.variable.Domain()
	c.ValueSelection(d.At(c.rnd.Intn(d.Len())), 0)
}

// SelectValueAndFinish is the compound terminator: set the value, stop
// posting, mark finished, log.
func (c *VariableComputation) SelectValueAndFinish(value core.Value, cost float64) {
	c.ValueSelection(value, cost)
	c.Stop()
	c.Finish()
	c.Logger().Info("value selected at termination",
		"computation", c.Name(), "value", value, "cost", cost)
}

// SetOnValueSelected wires the value-selection event hook. Must be set
// before the agent starts.
func (c *VariableComputation) SetOnValueSelected(fn func(value core.Value, cost float64)) {
	c.onValue = fn
}

// StopCondition is the base self-report: no stop condition — run until
// stopped externally. One-shot algorithms shadow it.
func (c *VariableComputation) StopCondition() StopCondition { return NoStopCondition }
