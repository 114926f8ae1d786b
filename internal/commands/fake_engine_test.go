package commands

import (
	"context"
	"errors"
	"io"

	"github.com/poruru/docker-prune-plan/internal/domain/engine"
	"github.com/poruru/docker-prune-plan/internal/infra/docker"
	"github.com/poruru/docker-prune-plan/internal/ports"
)

type fakeEngine struct {
	pingErr  error
	queryErr error
	stopped  []engine.ContainerRecord
	dangling []engine.ImageRecord
	networks []engine.NetworkRecord
	usage    engine.DiskUsageReport
}

func (f *fakeEngine) Ping(context.Context) error { return f.pingErr }

func (f *fakeEngine) Info(context.Context) (engine.Info, error) {
	return engine.Info{RootDir: "/var/lib/docker"}, nil
}

func (f *fakeEngine) ListContainers(_ context.Context, query ports.ContainerQuery) ([]engine.ContainerRecord, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if len(query.Statuses) > 0 {
		return f.stopped, nil
	}
	return nil, nil
}

func (f *fakeEngine) ListImages(_ context.Context, query ports.ImageQuery) ([]engine.ImageRecord, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.dangling, nil
}

func (f *fakeEngine) ListNetworks(context.Context) ([]engine.NetworkRecord, error) {
	return f.networks, nil
}

func (f *fakeEngine) InspectNetwork(_ context.Context, id string) (engine.NetworkDetail, error) {
	return engine.NetworkDetail{ID: id}, nil
}

func (f *fakeEngine) DiskUsage(context.Context) (engine.DiskUsageReport, error) {
	return f.usage, nil
}

type closeRecorder struct {
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

// engineFactory returns a factory handing out eng and recording the options used.
func engineFactory(eng ports.Engine, seen *docker.ClientOptions, closer io.Closer) EngineFactory {
	return func(opts docker.ClientOptions) (ports.Engine, io.Closer, error) {
		if seen != nil {
			*seen = opts
		}
		return eng, closer, nil
	}
}

func failingEngineFactory(msg string) EngineFactory {
	return func(docker.ClientOptions) (ports.Engine, io.Closer, error) {
		return nil, nil, errors.New(msg)
	}
}
