package planner

import (
	"context"
	"strings"
	"time"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
)

func (p *Planner) planBuildCache(ctx context.Context, snap *Snapshot) (plan.Plan, error) {
	var out plan.Plan
	usage, err := snap.DiskUsage(ctx)
	if err != nil {
		return out, err
	}

	for _, entry := range usage.BuildCache {
		if entry.InUse {
			continue
		}
		out.Add(plan.Candidate{
			Kind:        plan.KindBuildCache,
			ID:          plan.ShortID(entry.ID),
			Name:        entry.Description,
			Size:        entry.Size,
			Description: buildCacheInfo(entry.Description, entry.LastUsedAt),
		})
	}
	return out, nil
}

func buildCacheInfo(description string, lastUsed *time.Time) string {
	parts := make([]string, 0, 2)
	if description != "" {
		parts = append(parts, description)
	}
	if lastUsed != nil && !lastUsed.IsZero() {
		parts = append(parts, "Last used: "+lastUsed.Format(time.RFC3339Nano))
	}
	return strings.Join(parts, "; ")
}
