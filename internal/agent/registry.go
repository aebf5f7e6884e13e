package agent

import (
	"context"
	"sort"
	"sync"
)

// Runner answers one user query. Implemented by Orchestrator; fakes implement
// it in tests.
type Runner interface {
	Run(ctx context.Context, userQuery string) (string, error)
}

// Registry maps data source names to their orchestrators. It is thread-safe
// and can be used concurrently.
type Registry struct {
	mu      sync.RWMutex
	runners map[string]Runner
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		runners: make(map[string]Runner),
	}
}

// Register adds a runner for a source name. An existing runner with the same
// name is replaced.
func (r *Registry) Register(source string, runner Runner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runners[source] = runner
}

// Get retrieves the runner for a source name. Returns nil if the source is
// not registered.
func (r *Registry) Get(source string) Runner {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runners[source]
}

// Sources returns the registered source names in sorted order.
func (r *Registry) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]string, 0, len(r.runners))
	for source := range r.runners {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}
