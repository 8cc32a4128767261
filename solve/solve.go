package solve

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvldcop/algorithms"
	"github.com/katalvlaran/lvldcop/core"
	"github.com/katalvlaran/lvldcop/engine"
	"github.com/katalvlaran/lvldcop/graphs"
	"github.com/katalvlaran/lvldcop/relations"
)

// discard is the default run logger.
var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// valueReader is the orchestrator's view of a variable computation.
type valueReader interface {
	HasValue() bool
	CurrentValue() core.Value
	CurrentCost() float64
}

// finishNotifier lets the orchestrator observe computation termination.
type finishNotifier interface {
	SetOnFinished(fn func(name string))
}

// options collects the run configuration.
type options struct {
	timeout      time.Duration
	logger       *slog.Logger
	distribution map[string]string
}

// Option configures a run.
type Option func(o *options)

// WithTimeout bounds the run's wall-clock duration; when it expires the
// run reports TIMEOUT with whatever assignment exists.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the run logger, propagated to agents (default: discard).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDistribution maps computation names to agent names. Unmapped
// computations get a dedicated agent named "a_<computation>".
func WithDistribution(dist map[string]string) Option {
	return func(o *options) {
		o.distribution = make(map[string]string, len(dist))
		for comp, agent := range dist {
			o.distribution[comp] = agent
		}
	}
}

// Solve runs the algorithm described by def over graph g and collects the
// outcome. Configuration errors return synchronously with an ERROR result
// before any computation starts.
func Solve(ctx context.Context, g *graphs.Graph, def *algorithms.AlgoDef, opts ...Option) (Result, error) {
	start := time.Now()
	o := options{logger: discard}
	for _, opt := range opts {
		opt(&o)
	}

	fail := func(err error) (Result, error) {
		return Result{
			Duration: time.Since(start),
			Status:   StatusError,
			Error:    Classify(err),
		}, err
	}

	// 1) Configuration: algorithm, graph kind, computations.
	desc, err := algorithms.Lookup(def.Algo())
	if err != nil {
		return fail(err)
	}
	if g.Len() == 0 {
		return fail(ErrNoComputations)
	}
	if desc.GraphType != g.Kind() {
		return fail(ErrGraphMismatch)
	}

	comps := make([]engine.Computation, 0, g.Len())
	for _, node := range g.Nodes() {
		comp, berr := desc.Build(algorithms.NewComputationDef(node, def))
		if berr != nil {
			return fail(berr)
		}
		comps = append(comps, comp)
	}

	// 2) Global-termination and failure tracking.
	var (
		mu         sync.Mutex
		remaining  = len(comps)
		handlerErr error
	)
	done := make(chan struct{})
	for _, comp := range comps {
		notifier, ok := comp.(finishNotifier)
		if !ok {
			remaining--
			continue
		}
		notifier.SetOnFinished(func(string) {
			mu.Lock()
			remaining--
			last := remaining == 0
			mu.Unlock()
			if last {
				close(done)
			}
		})
	}

	runCtx := ctx
	var cancelTimeout context.CancelFunc
	if o.timeout > 0 {
		runCtx, cancelTimeout = context.WithTimeout(ctx, o.timeout)
		defer cancelTimeout()
	}
	runCtx, cancel := context.WithCancel(runCtx)
	defer cancel()

	onError := func(comp string, msg engine.Message, herr error) {
		mu.Lock()
		if handlerErr == nil {
			handlerErr = herr
		}
		mu.Unlock()
		cancel()
	}

	// 3) Distribution: one agent per computation unless mapped together.
	agents := make(map[string]*engine.Agent)
	order := make([]*engine.Agent, 0, len(comps))
	for _, comp := range comps {
		agentName, mapped := o.distribution[comp.Name()]
		if !mapped {
			agentName = "a_" + comp.Name()
		}
		a, exists := agents[agentName]
		if !exists {
			a = engine.NewAgent(agentName,
				engine.WithAgentLogger(o.logger),
				engine.WithOnError(onError),
			)
			agents[agentName] = a
			order = append(order, a)
		}
		if aerr := a.AddComputation(comp); aerr != nil {
			return fail(aerr)
		}
	}
	mailer := engine.NewMailer()
	mailer.SetLogger(o.logger)
	for _, a := range order {
		mailer.Host(a)
	}

	// 4) Run every agent loop; stop them all once the run settles.
	eg, egCtx := errgroup.WithContext(runCtx)
	for _, a := range order {
		agent := a
		eg.Go(func() error { return agent.Run(egCtx) })
	}

	status := StatusFinished
	select {
	case <-done:
	case <-runCtx.Done():
		status = stopCause(ctx, runCtx)
	}
	cancel()
	_ = eg.Wait()

	mu.Lock()
	failure := handlerErr
	mu.Unlock()

	// 5) Collect the assignment and its cost.
	result := Result{
		Assignment: make(core.Assignment, len(comps)),
		Duration:   time.Since(start),
		Status:     status,
	}
	complete := true
	for _, comp := range comps {
		reader, ok := comp.(valueReader)
		if !ok || !reader.HasValue() {
			complete = false
			continue
		}
		result.Assignment[comp.Name()] = reader.CurrentValue()
	}
	if complete {
		if cost, cerr := relations.TotalAssignmentCost(result.Assignment, g.Constraints()); cerr == nil {
			result.Cost = cost
		}
	}
	if failure != nil {
		result.Status = StatusError
		result.Error = Classify(failure)

		return result, failure
	}

	return result, nil
}

// stopCause distinguishes an expired deadline from an external stop.
func stopCause(parent, run context.Context) Status {
	if parent.Err() == context.Canceled {
		return StatusStopped
	}
	if run.Err() == context.DeadlineExceeded {
		return StatusTimeout
	}

	return StatusTimeout
}
