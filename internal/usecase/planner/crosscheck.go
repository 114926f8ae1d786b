// Where: internal/usecase/planner/crosscheck.go
// What: Engine-reported reclaimable totals for corroboration.
// Why: Compare the classification with the engine's own accounting without letting it override the plan.
package planner

import (
	"context"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"go.uber.org/zap"
)

// crossCheck derives reclaimable figures from the structured disk-usage
// report. Failures are logged and yield nil; the plan is never affected.
func (p *Planner) crossCheck(ctx context.Context, snap *Snapshot, planned plan.Plan) *plan.CrossCheck {
	usage, err := snap.DiskUsage(ctx)
	if err != nil {
		p.logger.Debug("cross-check skipped: disk usage unavailable", zap.Error(err))
		return nil
	}

	check := &plan.CrossCheck{Planned: planned.Reclaimable()}
	for _, ctr := range usage.Containers {
		if isStoppedState(ctr.State) {
			check.Containers += ctr.SizeRw
		}
	}
	for _, img := range usage.Images {
		if img.Containers == 0 {
			check.Images += img.Size
		}
	}
	for _, vol := range usage.Volumes {
		if vol.Usage != nil && vol.Usage.RefCount == 0 {
			check.Volumes += vol.Usage.Size
		}
	}
	for _, entry := range usage.BuildCache {
		if !entry.InUse {
			check.BuildCache += entry.Size
		}
	}

	if p.filesystem != nil {
		check.RootFS = p.rootFilesystem(ctx)
	}
	return check
}

func (p *Planner) rootFilesystem(ctx context.Context) *plan.FilesystemUsage {
	info, err := p.engine.Info(ctx)
	if err != nil || info.RootDir == "" {
		p.logger.Debug("engine root directory unavailable", zap.Error(err))
		return nil
	}
	usage, err := p.filesystem.Usage(info.RootDir)
	if err != nil {
		// Remote daemons report a root directory that does not exist locally.
		p.logger.Debug("root filesystem not measurable",
			zap.String("path", info.RootDir),
			zap.Error(err),
		)
		return nil
	}
	return &usage
}

func isStoppedState(state string) bool {
	for _, stopped := range stoppedStates {
		if state == stopped {
			return true
		}
	}
	return false
}
