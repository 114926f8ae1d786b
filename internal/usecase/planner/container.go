package planner

import (
	"context"
	"strings"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/poruru/docker-prune-plan/internal/ports"
)

// stoppedStates are the container states docker container prune removes.
var stoppedStates = []string{"created", "exited", "dead"}

func (p *Planner) planContainers(ctx context.Context) (plan.Plan, error) {
	var out plan.Plan
	stopped, err := p.engine.ListContainers(ctx, ports.ContainerQuery{
		All:      true,
		Statuses: stoppedStates,
		WithSize: true,
	})
	if err != nil {
		return out, err
	}

	for _, ctr := range stopped {
		name := ""
		if len(ctr.Names) > 0 {
			name = strings.TrimPrefix(ctr.Names[0], "/")
		}
		description := "Stopped container"
		if ctr.Status != "" {
			description = "Status: " + ctr.Status
		}
		out.Add(plan.Candidate{
			Kind:        plan.KindContainer,
			ID:          plan.ShortID(ctr.ID),
			Name:        name,
			Size:        ctr.SizeRw,
			Description: description,
		})
	}
	return out, nil
}
