// Where: internal/infra/metrics/textfile.go
// What: Prometheus textfile export of a plan.
// Why: node_exporter's textfile collector picks up per-host reclaimable figures.
package metrics

import (
	"fmt"
	"time"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "docker_prune_plan"

// Run is one finished planning run.
type Run struct {
	Command    string
	Plan       plan.Plan
	CrossCheck *plan.CrossCheck
	Duration   time.Duration
	Finished   time.Time
}

// Gather registers the run's gauges on a fresh registry.
func Gather(run Run) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	reclaimable := factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reclaimable_bytes",
		Help:      "Bytes a prune would reclaim, by resource kind.",
	}, []string{"command", "kind"})
	candidates := factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "candidates",
		Help:      "Number of prune candidates, by resource kind.",
	}, []string{"command", "kind"})
	total := factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "total_reclaimable_bytes",
		Help:      "Plan reclaimable total.",
	}, []string{"command"})
	duration := factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "duration_seconds",
		Help:      "Wall time spent planning.",
	}, []string{"command"})
	lastRun := factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the plan was produced.",
	}, []string{"command"})

	// Kinds without candidates are written as 0.
	byKind := run.Plan.ByKind()
	for _, kind := range plan.Kinds {
		t := byKind[kind]
		reclaimable.WithLabelValues(run.Command, kind.String()).Set(float64(t.Size))
		candidates.WithLabelValues(run.Command, kind.String()).Set(float64(t.Count))
	}
	total.WithLabelValues(run.Command).Set(float64(run.Plan.Reclaimable()))
	duration.WithLabelValues(run.Command).Set(run.Duration.Seconds())
	lastRun.WithLabelValues(run.Command).Set(float64(run.Finished.Unix()))

	if check := run.CrossCheck; check != nil {
		engine := factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "engine_reclaimable_bytes",
			Help:      "Reclaimable bytes as reported by the engine, by resource kind.",
		}, []string{"kind"})
		engine.WithLabelValues(plan.KindContainer.String()).Set(float64(check.Containers))
		engine.WithLabelValues(plan.KindImage.String()).Set(float64(check.Images))
		engine.WithLabelValues(plan.KindVolume.String()).Set(float64(check.Volumes))
		engine.WithLabelValues(plan.KindBuildCache.String()).Set(float64(check.BuildCache))

		if fs := check.RootFS; fs != nil {
			free := factory.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "root_filesystem_free_bytes",
				Help:      "Free bytes on the filesystem holding the engine data root.",
			})
			free.Set(float64(fs.Free))
		}
	}
	return registry
}

// WriteTextfile writes the run's metrics to path, replacing it atomically.
func WriteTextfile(path string, run Run) error {
	if err := prometheus.WriteToTextfile(path, Gather(run)); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
