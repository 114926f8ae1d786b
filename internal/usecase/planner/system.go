// Where: internal/usecase/planner/system.go
// What: System prune plan composition.
// Why: Mirror docker system prune ordering while keeping each sub-plan's total intact.
package planner

import (
	"context"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
)

// planSystem composes Container, Network, Image, optional Volume and Build
// Cache plans in that order. Volumes in system mode are anonymous-only.
func (p *Planner) planSystem(ctx context.Context, snap *Snapshot, allImages, volumes bool) (plan.Plan, error) {
	var out plan.Plan

	// Build cache always needs the disk-usage report; the full container
	// listing only backs the usage index of all-images and volume planning.
	if err := snap.Prefetch(ctx, allImages || volumes, true); err != nil {
		return out, err
	}

	steps := []func() (plan.Plan, error){
		func() (plan.Plan, error) { return p.planContainers(ctx) },
		func() (plan.Plan, error) { return p.planNetworks(ctx) },
		func() (plan.Plan, error) { return p.planImages(ctx, snap, allImages) },
	}
	if volumes {
		steps = append(steps, func() (plan.Plan, error) { return p.planVolumes(ctx, snap, false, true) })
	}
	steps = append(steps, func() (plan.Plan, error) { return p.planBuildCache(ctx, snap) })

	for _, step := range steps {
		sub, err := step()
		if err != nil {
			return plan.Plan{}, err
		}
		out.Merge(sub)
	}
	return out, nil
}
