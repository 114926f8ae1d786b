// Where: internal/commands/plan.go
// What: Plan command adapters.
// Why: Map kong flags onto a plan workflow run and its exit code.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/poruru/docker-prune-plan/internal/infra/config"
	"github.com/poruru/docker-prune-plan/internal/infra/docker"
	"github.com/poruru/docker-prune-plan/internal/infra/export"
	"github.com/poruru/docker-prune-plan/internal/infra/metrics"
	"github.com/poruru/docker-prune-plan/internal/infra/render"
	"github.com/poruru/docker-prune-plan/internal/infra/ui"
	"github.com/poruru/docker-prune-plan/internal/logging"
	"github.com/poruru/docker-prune-plan/internal/ports"
	"github.com/poruru/docker-prune-plan/internal/usecase/planner"
	"github.com/poruru/docker-prune-plan/internal/workflows"
	"go.uber.org/zap"
)

// planInvocation is the command-independent shape of a plan command.
type planInvocation struct {
	command  string
	scope    ports.PruneScope
	all      bool
	volumes  bool
	showName *bool
	output   OutputFlags
}

func runImage(ctx context.Context, cli CLI, deps Dependencies) int {
	return runPlan(ctx, cli, deps, planInvocation{
		command: "image", scope: ports.ScopeImage, all: cli.Image.All, output: cli.Image.OutputFlags,
	})
}

func runVolume(ctx context.Context, cli CLI, deps Dependencies) int {
	return runPlan(ctx, cli, deps, planInvocation{
		command: "volume", scope: ports.ScopeVolume, all: cli.Volume.All, output: cli.Volume.OutputFlags,
	})
}

func runContainer(ctx context.Context, cli CLI, deps Dependencies) int {
	return runPlan(ctx, cli, deps, planInvocation{
		command: "container", scope: ports.ScopeContainer, output: cli.Container.OutputFlags,
	})
}

func runNetwork(ctx context.Context, cli CLI, deps Dependencies) int {
	return runPlan(ctx, cli, deps, planInvocation{
		command: "network", scope: ports.ScopeNetwork, output: cli.Network.OutputFlags,
	})
}

func runBuildCache(ctx context.Context, cli CLI, deps Dependencies) int {
	return runPlan(ctx, cli, deps, planInvocation{
		command: "build-cache", scope: ports.ScopeBuildCache, output: cli.BuildCache.OutputFlags,
	})
}

func runSystem(ctx context.Context, cli CLI, deps Dependencies) int {
	inv := planInvocation{
		command: "system",
		scope:   ports.ScopeSystem,
		all:     cli.System.All,
		volumes: cli.System.Volumes,
		output:  cli.System.OutputFlags,
	}
	if cli.System.Name {
		showName := true
		inv.showName = &showName
	}
	return runPlan(ctx, cli, deps, inv)
}

func runPlan(ctx context.Context, cli CLI, deps Dependencies, inv planInvocation) int {
	overrides := globalOverrides(cli)
	overrides.ShowName = inv.showName
	switch {
	case inv.output.JSON:
		overrides.Output = render.ModeJSON
	case inv.output.YAML:
		overrides.Output = render.ModeYAML
	}

	_, opts, err := loadConfig(cli, overrides)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	logger, err := logging.New(logging.Options{Level: opts.LogLevel, Format: opts.LogFormat, Output: deps.ErrOut})
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	defer func() { _ = logger.Sync() }()

	renderer, err := render.NewRenderer(opts.Output, inv.output.Format, render.TableOptions{
		// NAME is always shown outside system plans.
		HideName: inv.scope == ports.ScopeSystem && !opts.ShowName,
	})
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	sinks, err := buildSinks(opts, deps, logger)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	if deps.NewEngine == nil {
		return exitWithError(deps.ErrOut, errors.New("docker engine not configured"))
	}
	eng, closer, err := deps.NewEngine(docker.ClientOptions{Host: opts.DockerHost, APIVersion: opts.APIVersion})
	if err != nil {
		return connectionFailure(deps.ErrOut, err)
	}
	if closer != nil {
		defer closer.Close()
	}

	plannerOpts := []planner.Option{
		planner.WithLogger(logger),
		planner.WithInspectConcurrency(opts.InspectConcurrency),
	}
	if deps.Filesystem != nil {
		plannerOpts = append(plannerOpts, planner.WithFilesystemProbe(deps.Filesystem))
	}

	workflow := workflows.NewPlanWorkflow(
		planner.New(eng, plannerOpts...),
		renderer,
		ui.NewConsoleUI(deps.ErrOut, deps.ErrOut, false),
		deps.Out,
		sinks...,
	)
	err = workflow.Run(ctx, workflows.PlanRequest{
		Command:    inv.command,
		Scope:      inv.scope,
		All:        inv.all,
		Volumes:    inv.volumes,
		CrossCheck: cli.CrossCheck,
		Threshold:  opts.Threshold,
	})
	if err != nil {
		return planFailure(deps.ErrOut, err)
	}
	return 0
}

func buildSinks(opts config.Options, deps Dependencies, logger *zap.Logger) ([]ports.PlanSink, error) {
	var sinks []ports.PlanSink
	if len(opts.ExportTargets) > 0 {
		targets, err := export.ParseTargets(opts.ExportTargets)
		if err != nil {
			return nil, err
		}
		newClients := deps.ExportClients
		if newClients == nil {
			newClients = export.NewAWSClientFactory
		}
		clients := newClients(export.AWSSettings{Region: opts.ExportRegion, Endpoint: opts.ExportEndpoint})
		sinks = append(sinks, export.NewSink(export.NewExporter(clients, logger), targets))
	}
	if opts.MetricsFile != "" {
		sinks = append(sinks, metrics.TextfileSink{Path: opts.MetricsFile})
	}
	return sinks, nil
}

func connectionFailure(errOut io.Writer, err error) int {
	writeLine(errOut, fmt.Sprintf("Error connecting to Docker: %v", err))
	return 1
}

// planFailure maps a workflow error to its single stderr line.
func planFailure(errOut io.Writer, err error) int {
	switch {
	case planner.IsConnectionError(err):
		return connectionFailure(errOut, err)
	case errors.Is(err, workflows.ErrPublish):
		writeLine(errOut, fmt.Sprintf("Export error: %v", err))
	case errors.Is(err, workflows.ErrRender):
		return exitWithError(errOut, err)
	case errors.Is(err, context.Canceled):
		writeLine(errOut, "Interrupted")
	default:
		writeLine(errOut, fmt.Sprintf("Docker error: %v", err))
	}
	return 1
}
