// Where: internal/ports/prune.go
// What: Planner port definitions.
// Why: Allow workflows to request prune plans via a stable interface.
package ports

import (
	"context"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
)

// PruneScope names the prune operation being previewed.
type PruneScope string

const (
	ScopeSystem     PruneScope = "system"
	ScopeImage      PruneScope = "image"
	ScopeContainer  PruneScope = "container"
	ScopeVolume     PruneScope = "volume"
	ScopeNetwork    PruneScope = "network"
	ScopeBuildCache PruneScope = "build-cache"
)

// PlanRequest contains the parameters of one planning invocation.
// All maps to -a/--all: unused (not only dangling) images for image/system,
// named volumes for volume. Volumes only applies to the system scope.
type PlanRequest struct {
	Scope      PruneScope
	All        bool
	Volumes    bool
	CrossCheck bool
}

// PlanResult is the outcome of a planning invocation.
type PlanResult struct {
	Plan plan.Plan
	// CrossCheck is set only when the request asked for it.
	CrossCheck *plan.CrossCheck
}

// Planner builds prune plans without modifying the engine.
type Planner interface {
	Plan(ctx context.Context, request PlanRequest) (PlanResult, error)
}
