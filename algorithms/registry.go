package algorithms

import (
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/lvldcop/engine"
	"github.com/katalvlaran/lvldcop/graphs"
)

// BuildFunc produces a runnable computation from its definition.
type BuildFunc func(def *ComputationDef) (engine.Computation, error)

// FootprintFunc estimates the memory footprint of hosting a node.
type FootprintFunc func(node *graphs.ComputationNode) float64

// LoadFunc estimates the communication load from a node towards a target
// computation.
type LoadFunc func(node *graphs.ComputationNode, target string) float64

// Descriptor is one registered algorithm: its name, parameter schema, the
// graph kind it runs on, the computation factory, and the optional
// estimators. Name, GraphType and Build are required; missing estimators
// are substituted with constant 1 at registration.
type Descriptor struct {
	Name              string
	GraphType         graphs.Kind
	Params            []ParameterDef
	Build             BuildFunc
	ComputationMemory FootprintFunc
	CommunicationLoad LoadFunc
}

// registry is the process-wide algorithm table: filled from init()
// functions before any agent starts, immutable afterwards.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Descriptor)
)

// Register adds a descriptor to the registry. A descriptor missing a
// required member is ErrBadDescriptor; re-registering a name replaces the
// previous descriptor (useful for tests).
func Register(d Descriptor) error {
	if d.Name == "" || d.Build == nil || d.GraphType == "" {
		return fmt.Errorf("%w: %q", ErrBadDescriptor, d.Name)
	}
	if d.ComputationMemory == nil {
		d.ComputationMemory = func(*graphs.ComputationNode) float64 { return 1 }
	}
	if d.CommunicationLoad == nil {
		d.CommunicationLoad = func(*graphs.ComputationNode, string) float64 { return 1 }
	}
	registryMu.Lock()
	registry[d.Name] = d
	registryMu.Unlock()

	return nil
}

// MustRegister is Register that panics on error; for init() self-
// registration of algorithm packages.
func MustRegister(d Descriptor) {
	if err := Register(d); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor registered under name, or
// ErrUnknownAlgorithm.
func Lookup(name string) (Descriptor, error) {
	registryMu.RLock()
	d, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}

	return d, nil
}

// Available lists the registered algorithm names, sorted.
func Available() []string {
	registryMu.RLock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	registryMu.RUnlock()
	sort.Strings(names)

	return names
}
