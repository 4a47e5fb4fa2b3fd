package registry

import (
	"context"
	"errors"

	"github.com/specialistvlad/impactgridgo/internal/ctxlog"
)

// ValidateRegistry checks the integrity of the registry after population.
// A run with zero environments can never place a target, so it is rejected
// up front rather than surfacing as per-target failures later.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.environments) == 0 {
		return errors.New("no environments registered: the grid must declare at least one environment block")
	}

	// Environments may legitimately share an exclusivity key (two software
	// profiles over one physical device); log the sharing for diagnosis.
	byKey := make(map[string][]string)
	for id, env := range r.environments {
		byKey[env.ExclusivityKey] = append(byKey[env.ExclusivityKey], id)
	}
	for key, ids := range byKey {
		if len(ids) > 1 {
			logger.Debug("Environments share an exclusivity key.", "key", key, "environments", ids)
		}
	}

	return nil
}
