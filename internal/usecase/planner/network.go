package planner

import (
	"context"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const reasonUnusedNetwork = "Unused network"

// reservedNetworks are engine-managed and never pruned.
var reservedNetworks = map[string]struct{}{
	"bridge":  {},
	"host":    {},
	"none":    {},
	"ingress": {},
}

func (p *Planner) planNetworks(ctx context.Context) (plan.Plan, error) {
	var out plan.Plan
	networks, err := p.engine.ListNetworks(ctx)
	if err != nil {
		return out, err
	}

	found := make([]*plan.Candidate, len(networks))
	var group errgroup.Group
	group.SetLimit(p.inspectConcurrency)
	for i, nw := range networks {
		if _, reserved := reservedNetworks[nw.Name]; reserved {
			continue
		}
		group.Go(func() error {
			detail, err := p.engine.InspectNetwork(ctx, nw.ID)
			if err != nil {
				// Inspection failures exclude the network without failing the plan.
				p.logger.Debug("skipping network after failed inspection",
					zap.String("network", nw.Name),
					zap.Error(err),
				)
				return nil
			}
			if len(detail.Containers) > 0 {
				return nil
			}
			found[i] = &plan.Candidate{
				Kind:        plan.KindNetwork,
				ID:          plan.ShortID(nw.ID),
				Name:        nw.Name,
				Description: reasonUnusedNetwork,
			}
			return nil
		})
	}
	_ = group.Wait()
	if err := ctx.Err(); err != nil {
		return plan.Plan{}, err
	}

	for _, candidate := range found {
		if candidate != nil {
			out.Add(*candidate)
		}
	}
	return out, nil
}
