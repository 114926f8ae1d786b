// Where: internal/usecase/planner/snapshot.go
// What: Per-invocation cache of shared engine queries.
// Why: The full container listing and disk-usage report are fetched at most once per run.
package planner

import (
	"context"
	"sync"
	"time"

	"github.com/poruru/docker-prune-plan/internal/domain/engine"
	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/poruru/docker-prune-plan/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Snapshot memoizes the queries several planners share within one invocation.
// It must not be reused across invocations since container state changes.
type Snapshot struct {
	engine ports.Engine
	logger *zap.Logger

	containersMu   sync.Mutex
	containers     []engine.ContainerRecord
	haveContainers bool

	usageMu   sync.Mutex
	usage     engine.DiskUsageReport
	haveUsage bool

	indexOnce sync.Once
	index     plan.UsageIndex
}

// NewSnapshot returns an empty snapshot over eng.
func NewSnapshot(eng ports.Engine, logger *zap.Logger) *Snapshot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Snapshot{engine: eng, logger: logger}
}

// Prefetch loads the full container listing and the disk-usage report
// concurrently, as selected. It returns once every selected query completes.
func (s *Snapshot) Prefetch(ctx context.Context, withContainers, withUsage bool) error {
	group, groupCtx := errgroup.WithContext(ctx)
	if withContainers {
		group.Go(func() error {
			_, err := s.Containers(groupCtx)
			return err
		})
	}
	if withUsage {
		group.Go(func() error {
			_, err := s.DiskUsage(groupCtx)
			return err
		})
	}
	return group.Wait()
}

// Containers returns every container, running or not.
func (s *Snapshot) Containers(ctx context.Context) ([]engine.ContainerRecord, error) {
	s.containersMu.Lock()
	defer s.containersMu.Unlock()
	if s.haveContainers {
		return s.containers, nil
	}

	started := time.Now()
	containers, err := s.engine.ListContainers(ctx, ports.ContainerQuery{All: true})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("listed containers",
		zap.Int("count", len(containers)),
		zap.Duration("elapsed", time.Since(started)),
	)
	s.containers = containers
	s.haveContainers = true
	return containers, nil
}

// DiskUsage returns the engine disk-usage report.
func (s *Snapshot) DiskUsage(ctx context.Context) (engine.DiskUsageReport, error) {
	s.usageMu.Lock()
	defer s.usageMu.Unlock()
	if s.haveUsage {
		return s.usage, nil
	}

	started := time.Now()
	usage, err := s.engine.DiskUsage(ctx)
	if err != nil {
		return engine.DiskUsageReport{}, err
	}
	s.logger.Debug("fetched disk usage",
		zap.Int("volumes", len(usage.Volumes)),
		zap.Int("build_cache", len(usage.BuildCache)),
		zap.Duration("elapsed", time.Since(started)),
	)
	s.usage = usage
	s.haveUsage = true
	return usage, nil
}

// UsageIndex returns the usage reference index derived from the full
// container listing, building it on first use.
func (s *Snapshot) UsageIndex(ctx context.Context) (plan.UsageIndex, error) {
	containers, err := s.Containers(ctx)
	if err != nil {
		return plan.UsageIndex{}, err
	}
	s.indexOnce.Do(func() {
		s.index = plan.BuildUsageIndex(containers)
		s.logger.Debug("built usage index",
			zap.Int("used_volumes", s.index.UsedVolumeCount()),
			zap.Int("used_images", s.index.UsedImageCount()),
		)
	})
	return s.index, nil
}
