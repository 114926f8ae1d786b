package export

import (
	"context"

	"github.com/poruru/docker-prune-plan/internal/infra/render"
	"github.com/poruru/docker-prune-plan/internal/ports"
)

// Sink publishes plan runs to the configured targets. It implements ports.PlanSink.
type Sink struct {
	exporter *Exporter
	targets  []Target
}

var _ ports.PlanSink = (*Sink)(nil)

// NewSink binds exporter to targets.
func NewSink(exporter *Exporter, targets []Target) *Sink {
	return &Sink{exporter: exporter, targets: targets}
}

func (s *Sink) Name() string {
	return "export"
}

func (s *Sink) Publish(ctx context.Context, run ports.PlanRun) ([]string, error) {
	results, err := s.exporter.Export(ctx, s.targets, render.NewReport(run.Command, run.Result.Plan))
	locations := make([]string, 0, len(results))
	for _, result := range results {
		locations = append(locations, result.Location)
	}
	return locations, err
}
