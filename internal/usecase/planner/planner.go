// Where: internal/usecase/planner/planner.go
// What: Prune planner entrypoint.
// Why: Dispatch a plan request to the per-type planners over one shared snapshot.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/poruru/docker-prune-plan/internal/ports"
	"go.uber.org/zap"
)

const defaultInspectConcurrency = 8

// FilesystemProbe measures the filesystem holding a path. It backs the
// root filesystem line of the cross-check.
type FilesystemProbe interface {
	Usage(path string) (plan.FilesystemUsage, error)
}

// Planner builds prune plans from read-only engine queries.
type Planner struct {
	engine             ports.Engine
	logger             *zap.Logger
	inspectConcurrency int
	filesystem         FilesystemProbe
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger used for query timings and soft failures.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithInspectConcurrency bounds parallel network inspections.
func WithInspectConcurrency(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.inspectConcurrency = n
		}
	}
}

// WithFilesystemProbe enables the root filesystem figures of the cross-check.
func WithFilesystemProbe(probe FilesystemProbe) Option {
	return func(p *Planner) {
		p.filesystem = probe
	}
}

// New returns a Planner over eng.
func New(eng ports.Engine, opts ...Option) *Planner {
	p := &Planner{
		engine:             eng,
		logger:             zap.NewNop(),
		inspectConcurrency: defaultInspectConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ ports.Planner = (*Planner)(nil)

// Plan previews the prune operation named by request.Scope.
// The engine is pinged first; an unreachable engine yields a ConnectionError.
func (p *Planner) Plan(ctx context.Context, request ports.PlanRequest) (ports.PlanResult, error) {
	if p.engine == nil {
		return ports.PlanResult{}, fmt.Errorf("planner: engine not configured")
	}
	if err := p.engine.Ping(ctx); err != nil {
		return ports.PlanResult{}, &ConnectionError{Err: err}
	}

	started := time.Now()
	snap := NewSnapshot(p.engine, p.logger)
	var (
		result plan.Plan
		err    error
	)
	switch request.Scope {
	case ports.ScopeContainer:
		result, err = p.planContainers(ctx)
	case ports.ScopeImage:
		result, err = p.planImages(ctx, snap, request.All)
	case ports.ScopeVolume:
		result, err = p.planVolumes(ctx, snap, request.All, false)
	case ports.ScopeNetwork:
		result, err = p.planNetworks(ctx)
	case ports.ScopeBuildCache:
		result, err = p.planBuildCache(ctx, snap)
	case ports.ScopeSystem:
		result, err = p.planSystem(ctx, snap, request.All, request.Volumes)
	default:
		return ports.PlanResult{}, fmt.Errorf("%w: %q", ErrInvalidScope, request.Scope)
	}
	if err != nil {
		return ports.PlanResult{}, err
	}

	p.logger.Debug("plan complete",
		zap.String("scope", string(request.Scope)),
		zap.Int("candidates", result.Len()),
		zap.Int64("reclaimable_bytes", result.Reclaimable()),
		zap.Duration("elapsed", time.Since(started)),
	)

	out := ports.PlanResult{Plan: result}
	if request.CrossCheck {
		out.CrossCheck = p.crossCheck(ctx, snap, result)
	}
	return out, nil
}
