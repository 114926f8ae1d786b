package planner

import (
	"context"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
)

const (
	reasonAnonymousVolume = "Unused volume (anonymous)"
	reasonUnusedVolume    = "Unused volume"
)

// planVolumes lists unreferenced volumes. Without includeAll only anonymous
// volumes qualify; systemMode always labels candidates as anonymous.
func (p *Planner) planVolumes(ctx context.Context, snap *Snapshot, includeAll, systemMode bool) (plan.Plan, error) {
	var out plan.Plan

	index, err := snap.UsageIndex(ctx)
	if err != nil {
		return out, err
	}
	usage, err := snap.DiskUsage(ctx)
	if err != nil {
		return out, err
	}

	reason := reasonUnusedVolume
	if systemMode || !includeAll {
		reason = reasonAnonymousVolume
	}
	for _, vol := range usage.Volumes {
		if vol.Name == "" || index.VolumeInUse(vol.Name) {
			continue
		}
		if !includeAll && !plan.IsAnonymousVolume(vol.Name) {
			continue
		}

		candidate := plan.Candidate{
			Kind:        plan.KindVolume,
			ID:          vol.Name,
			Name:        vol.Name,
			Description: reason,
		}
		if vol.Usage == nil {
			out.AddUncounted(candidate)
			continue
		}
		candidate.Size = vol.Usage.Size
		out.Add(candidate)
	}
	return out, nil
}
