package registry

import (
	"sort"
	"sync"

	"github.com/specialistvlad/impactgridgo/internal/model"
)

// Registry holds the registered environments and their busy/free state for a
// single run. All methods are safe for concurrent use.
type Registry struct {
	mu           sync.Mutex
	environments map[string]*model.Environment
	busy         map[string]bool

	// freed carries a coalesced wake-up signal for callers waiting on an
	// environment to become available.
	freed chan struct{}
}

// New creates and initializes an empty Registry instance.
func New() *Registry {
	return &Registry{
		environments: make(map[string]*model.Environment),
		busy:         make(map[string]bool),
		freed:        make(chan struct{}, 1),
	}
}

// PopulateFromGrid copies every environment declared in the grid model into
// the registry. All environments start free.
func (r *Registry) PopulateFromGrid(grid *model.Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, env := range grid.Environments {
		r.environments[id] = env
	}
}

// Compatible returns every registered environment, busy or free, that can
// satisfy the profile, sorted by ID. An empty result means no environment
// will ever be able to run the target.
func (r *Registry) Compatible(p model.Profile) []*model.Environment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matching(p, false)
}

// Available returns every currently free environment that satisfies the
// profile, sorted by ID for deterministic selection.
func (r *Registry) Available(p model.Profile) []*model.Environment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matching(p, true)
}

// MarkBusy records the environment as occupied. Repeated identical calls are
// idempotent, last writer wins.
func (r *Registry) MarkBusy(envID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.environments[envID]; ok {
		r.busy[envID] = true
	}
}

// MarkFree records the environment as available again and wakes up any
// waiter. Repeated identical calls are idempotent.
func (r *Registry) MarkFree(envID string) {
	r.mu.Lock()
	if _, ok := r.environments[envID]; ok {
		r.busy[envID] = false
	}
	r.mu.Unlock()

	// Coalesced notification: one pending signal is enough for the
	// scheduler to re-scan availability.
	select {
	case r.freed <- struct{}{}:
	default:
	}
}

// Freed exposes the wake-up channel for callers queueing on availability.
func (r *Registry) Freed() <-chan struct{} {
	return r.freed
}

// Size returns the number of registered environments.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.environments)
}

// matching must be called with the mutex held.
func (r *Registry) matching(p model.Profile, freeOnly bool) []*model.Environment {
	var envs []*model.Environment
	for id, env := range r.environments {
		if freeOnly && r.busy[id] {
			continue
		}
		if env.Satisfies(p) {
			envs = append(envs, env)
		}
	}
	sort.Slice(envs, func(i, j int) bool { return envs[i].ID < envs[j].ID })
	return envs
}
