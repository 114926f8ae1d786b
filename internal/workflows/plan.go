// Where: internal/workflows/plan.go
// What: Plan workflow orchestration.
// Why: Keep the CLI adapter minimal: plan, render, report, then publish.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/poruru/docker-prune-plan/internal/humanize"
	"github.com/poruru/docker-prune-plan/internal/ports"
)

var (
	// ErrPublish marks failures of plan sinks. The plan itself was printed.
	ErrPublish = errors.New("publish failed")
	// ErrRender marks a plan that was built but could not be written.
	ErrRender = errors.New("render plan")
)

// PlanRequest captures inputs for one plan command.
type PlanRequest struct {
	Command    string
	Scope      ports.PruneScope
	All        bool
	Volumes    bool
	CrossCheck bool
	// Threshold in bytes; a plan total above it triggers a warning. 0 disables.
	Threshold int64
}

// PlanWorkflow orchestrates a plan request.
type PlanWorkflow struct {
	Planner       ports.Planner
	Renderer      ports.PlanRenderer
	UserInterface ports.UserInterface
	Sinks         []ports.PlanSink
	Out           io.Writer
	Now           func() time.Time
}

// NewPlanWorkflow constructs a PlanWorkflow writing the plan to out.
func NewPlanWorkflow(planner ports.Planner, renderer ports.PlanRenderer, ui ports.UserInterface, out io.Writer, sinks ...ports.PlanSink) PlanWorkflow {
	return PlanWorkflow{
		Planner:       planner,
		Renderer:      renderer,
		UserInterface: ui,
		Sinks:         sinks,
		Out:           out,
		Now:           time.Now,
	}
}

// Run executes the workflow. Planner errors are returned unchanged so the
// caller can classify them; sink failures come back wrapped in ErrPublish.
func (w PlanWorkflow) Run(ctx context.Context, req PlanRequest) error {
	if w.Planner == nil {
		return errors.New("planner not configured")
	}
	if w.Renderer == nil {
		return errors.New("renderer not configured")
	}
	now := w.Now
	if now == nil {
		now = time.Now
	}

	started := now()
	result, err := w.Planner.Plan(ctx, ports.PlanRequest{
		Scope:      req.Scope,
		All:        req.All,
		Volumes:    req.Volumes,
		CrossCheck: req.CrossCheck,
	})
	if err != nil {
		return err
	}
	finished := now()

	if err := w.Renderer.Render(w.Out, req.Command, result.Plan); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	w.reportThreshold(req.Threshold, result.Plan)
	if req.CrossCheck {
		w.reportCrossCheck(result.CrossCheck)
	}

	return w.publish(ctx, ports.PlanRun{
		Command:  req.Command,
		Result:   result,
		Duration: finished.Sub(started),
		Finished: finished,
	})
}

func (w PlanWorkflow) reportThreshold(threshold int64, p plan.Plan) {
	if threshold <= 0 || p.Reclaimable() <= threshold || w.UserInterface == nil {
		return
	}
	w.UserInterface.Warn(fmt.Sprintf("reclaimable space %s exceeds threshold %s",
		humanize.HumanSize(p.Reclaimable()), humanize.HumanSize(threshold)))
}

func (w PlanWorkflow) reportCrossCheck(check *plan.CrossCheck) {
	if w.UserInterface == nil {
		return
	}
	if check == nil {
		w.UserInterface.Warn("engine cross-check unavailable")
		return
	}

	rows := []ports.KeyValue{
		{Key: "Containers", Value: humanize.HumanSize(check.Containers)},
		{Key: "Images", Value: humanize.HumanSize(check.Images)},
		{Key: "Volumes", Value: humanize.HumanSize(check.Volumes)},
		{Key: "Build Cache", Value: humanize.HumanSize(check.BuildCache)},
		{Key: "Engine Reclaimable", Value: humanize.HumanSize(check.EngineTotal())},
		{Key: "Plan Reclaimable", Value: humanize.HumanSize(check.Planned)},
		{Key: "Difference", Value: humanize.HumanSize(check.Delta())},
	}
	if fs := check.RootFS; fs != nil {
		rows = append(rows,
			ports.KeyValue{Key: "Root Filesystem", Value: fs.Path},
			ports.KeyValue{Key: "Filesystem Free", Value: fmt.Sprintf("%s of %s",
				humanize.HumanSize(clampInt64(fs.Free)), humanize.HumanSize(clampInt64(fs.Total)))},
		)
	}
	w.UserInterface.Block("🔎", "Engine Cross-Check", rows)
}

func (w PlanWorkflow) publish(ctx context.Context, run ports.PlanRun) error {
	var errs []error
	for _, sink := range w.Sinks {
		if sink == nil {
			continue
		}
		locations, err := sink.Publish(ctx, run)
		if w.UserInterface != nil {
			for _, location := range locations {
				w.UserInterface.Info(fmt.Sprintf("%s: wrote %s", sink.Name(), location))
			}
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPublish, errors.Join(errs...))
}

func clampInt64(v uint64) int64 {
	if v > uint64(1<<63-1) {
		return 1<<63 - 1
	}
	return int64(v)
}
