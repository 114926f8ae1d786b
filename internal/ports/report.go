// Where: internal/ports/report.go
// What: Plan presentation and publication ports.
// Why: Workflows render and publish plans without knowing the output format or sink.
package ports

import (
	"context"
	"io"
	"time"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
)

// PlanRun is a finished planning invocation handed to renderers and sinks.
type PlanRun struct {
	// Command is the CLI subcommand name, e.g. "system" or "build-cache".
	Command  string
	Result   PlanResult
	Duration time.Duration
	Finished time.Time
}

// PlanRenderer writes a plan in one output format.
type PlanRenderer interface {
	Render(w io.Writer, command string, p plan.Plan) error
}

// PlanSink publishes a finished run outside the terminal (object store,
// table, metrics file). Publish returns the locations written.
type PlanSink interface {
	Name() string
	Publish(ctx context.Context, run PlanRun) ([]string, error)
}
