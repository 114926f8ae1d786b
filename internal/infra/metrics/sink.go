package metrics

import (
	"context"

	"github.com/poruru/docker-prune-plan/internal/ports"
)

// TextfileSink writes each run to a node_exporter textfile. It implements ports.PlanSink.
type TextfileSink struct {
	Path string
}

var _ ports.PlanSink = TextfileSink{}

func (s TextfileSink) Name() string {
	return "metrics"
}

func (s TextfileSink) Publish(_ context.Context, run ports.PlanRun) ([]string, error) {
	err := WriteTextfile(s.Path, Run{
		Command:    run.Command,
		Plan:       run.Result.Plan,
		CrossCheck: run.Result.CrossCheck,
		Duration:   run.Duration,
		Finished:   run.Finished,
	})
	if err != nil {
		return nil, err
	}
	return []string{s.Path}, nil
}
