package planner

import (
	"context"
	"errors"
	"sync"

	"github.com/poruru/docker-prune-plan/internal/domain/engine"
	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/poruru/docker-prune-plan/internal/ports"
)

type fakeEngine struct {
	mu sync.Mutex

	allContainers     []engine.ContainerRecord
	stoppedContainers []engine.ContainerRecord
	danglingImages    []engine.ImageRecord
	allImages         []engine.ImageRecord
	networks          []engine.NetworkRecord
	details           map[string]engine.NetworkDetail
	usage             engine.DiskUsageReport
	info              engine.Info

	pingErr       error
	containersErr error
	imagesErr     error
	usageErr      error

	containerQueries []ports.ContainerQuery
	imageQueries     []ports.ImageQuery
	usageCalls       int
	inspectCalls     int
}

func (f *fakeEngine) Ping(_ context.Context) error {
	return f.pingErr
}

func (f *fakeEngine) Info(_ context.Context) (engine.Info, error) {
	return f.info, nil
}

func (f *fakeEngine) ListContainers(_ context.Context, query ports.ContainerQuery) ([]engine.ContainerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.containerQueries = append(f.containerQueries, query)
	if f.containersErr != nil {
		return nil, f.containersErr
	}
	if len(query.Statuses) > 0 {
		return f.stoppedContainers, nil
	}
	return f.allContainers, nil
}

func (f *fakeEngine) ListImages(_ context.Context, query ports.ImageQuery) ([]engine.ImageRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageQueries = append(f.imageQueries, query)
	if f.imagesErr != nil {
		return nil, f.imagesErr
	}
	if query.DanglingOnly {
		return f.danglingImages, nil
	}
	return f.allImages, nil
}

func (f *fakeEngine) ListNetworks(_ context.Context) ([]engine.NetworkRecord, error) {
	return f.networks, nil
}

func (f *fakeEngine) InspectNetwork(_ context.Context, id string) (engine.NetworkDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inspectCalls++
	detail, ok := f.details[id]
	if !ok {
		return engine.NetworkDetail{}, errors.New("network " + id + " not found")
	}
	return detail, nil
}

func (f *fakeEngine) DiskUsage(_ context.Context) (engine.DiskUsageReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usageCalls++
	if f.usageErr != nil {
		return engine.DiskUsageReport{}, f.usageErr
	}
	return f.usage, nil
}

type fakeProbe struct {
	usage plan.FilesystemUsage
	err   error
	paths []string
}

func (f *fakeProbe) Usage(path string) (plan.FilesystemUsage, error) {
	f.paths = append(f.paths, path)
	return f.usage, f.err
}

func sumSizes(p plan.Plan) int64 {
	var total int64
	for _, c := range p.Items() {
		total += c.Size
	}
	return total
}

func kindsOf(p plan.Plan) []plan.Kind {
	kinds := make([]plan.Kind, 0, p.Len())
	for _, c := range p.Items() {
		kinds = append(kinds, c.Kind)
	}
	return kinds
}
