// Where: cmd/docker-prune-plan/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"io"
	"os"

	"github.com/poruru/docker-prune-plan/internal/commands"
	"github.com/poruru/docker-prune-plan/internal/infra/docker"
	"github.com/poruru/docker-prune-plan/internal/infra/export"
	"github.com/poruru/docker-prune-plan/internal/infra/hostfs"
	"github.com/poruru/docker-prune-plan/internal/ports"
)

var newDockerClient = func(opts docker.ClientOptions) (docker.DockerClient, error) {
	cli, err := docker.NewDockerClient(opts)
	if err != nil {
		return nil, err
	}
	return cli, nil
}

// buildDependencies constructs the runtime dependencies of the CLI.
// The Docker client is created lazily, once flags and --env-file are known.
func buildDependencies() commands.Dependencies {
	return commands.Dependencies{
		Out:           os.Stdout,
		ErrOut:        os.Stderr,
		NewEngine:     newEngine,
		Filesystem:    hostfs.NewProbe(),
		ExportClients: export.NewAWSClientFactory,
	}
}

func newEngine(opts docker.ClientOptions) (ports.Engine, io.Closer, error) {
	client, err := newDockerClient(opts)
	if err != nil {
		return nil, nil, err
	}
	return docker.NewEngine(client), asCloser(client), nil
}

// asCloser attempts to cast the Docker client to an io.Closer.
// Returns nil if the client does not implement the Closer interface.
func asCloser(client docker.DockerClient) io.Closer {
	if closer, ok := client.(io.Closer); ok {
		return closer
	}
	return nil
}
