package core

// AgentDef describes a hosting agent at the deployment boundary: its
// capacity, the cost of hosting a given computation, and the cost of
// routing messages towards another agent.
//
// Hosting and route costs fall back to per-agent defaults when no explicit
// entry exists, mirroring how problem generators emit agents.
type AgentDef struct {
	name               string
	capacity           int
	hostingCosts       map[string]float64
	defaultHostingCost float64
	routes             map[string]float64
	defaultRoute       float64
}

// AgentOption configures an AgentDef before creation.
type AgentOption func(a *AgentDef)

// WithCapacity sets the agent's hosting capacity.
func WithCapacity(capacity int) AgentOption {
	return func(a *AgentDef) { a.capacity = capacity }
}

// WithHostingCosts sets explicit per-computation hosting costs.
func WithHostingCosts(costs map[string]float64) AgentOption {
	return func(a *AgentDef) {
		a.hostingCosts = make(map[string]float64, len(costs))
		for comp, c := range costs {
			a.hostingCosts[comp] = c
		}
	}
}

// WithDefaultHostingCost sets the fallback hosting cost.
func WithDefaultHostingCost(cost float64) AgentOption {
	return func(a *AgentDef) { a.defaultHostingCost = cost }
}

// WithRoutes sets explicit per-target route costs.
func WithRoutes(routes map[string]float64) AgentOption {
	return func(a *AgentDef) {
		a.routes = make(map[string]float64, len(routes))
		for target, c := range routes {
			a.routes[target] = c
		}
	}
}

// WithDefaultRoute sets the fallback route cost.
func WithDefaultRoute(cost float64) AgentOption {
	return func(a *AgentDef) { a.defaultRoute = cost }
}

// NewAgentDef builds an AgentDef with the given options.
// Defaults: capacity 0 (unbounded), hosting cost 0, route cost 1.
func NewAgentDef(name string, opts ...AgentOption) (*AgentDef, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	a := &AgentDef{
		name:         name,
		defaultRoute: 1,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Name returns the agent's name.
func (a *AgentDef) Name() string { return a.name }

// Capacity returns the agent's hosting capacity (0 = unbounded).
func (a *AgentDef) Capacity() int { return a.capacity }

// HostingCost returns the cost of hosting computation comp on this agent,
// falling back to the default hosting cost.
func (a *AgentDef) HostingCost(comp string) float64 {
	if c, ok := a.hostingCosts[comp]; ok {
		return c
	}

	return a.defaultHostingCost
}

// Route returns the cost of routing one message unit to the target agent,
// falling back to the default route cost. The route to itself is 0.
func (a *AgentDef) Route(target string) float64 {
	if target == a.name {
		return 0
	}
	if c, ok := a.routes[target]; ok {
		return c
	}

	return a.defaultRoute
}
