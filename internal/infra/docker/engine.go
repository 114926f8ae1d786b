// Where: internal/infra/docker/engine.go
// What: Engine port implementation backed by the Docker SDK.
// Why: Map SDK payloads to typed records once, applying missing-field defaults at the boundary.
package docker

import (
	"context"
	"fmt"
	"sort"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/poruru/docker-prune-plan/internal/domain/engine"
	"github.com/poruru/docker-prune-plan/internal/ports"
)

const untaggedRef = "<none>:<none>"

// Engine adapts a DockerClient to ports.Engine.
type Engine struct {
	client DockerClient
}

// NewEngine wraps client. The client must not be nil.
func NewEngine(client DockerClient) *Engine {
	return &Engine{client: client}
}

var _ ports.Engine = (*Engine)(nil)

// Ping checks that the daemon is reachable.
func (e *Engine) Ping(ctx context.Context) error {
	if _, err := e.client.Ping(ctx); err != nil {
		return fmt.Errorf("ping docker daemon: %w", err)
	}
	return nil
}

// Info returns the engine data root and version.
func (e *Engine) Info(ctx context.Context) (engine.Info, error) {
	info, err := e.client.Info(ctx)
	if err != nil {
		return engine.Info{}, fmt.Errorf("engine info: %w", err)
	}
	return engine.Info{
		ServerVersion: info.ServerVersion,
		RootDir:       info.DockerRootDir,
		OSType:        info.OSType,
	}, nil
}

// ListContainers lists containers matching query.
func (e *Engine) ListContainers(ctx context.Context, query ports.ContainerQuery) ([]engine.ContainerRecord, error) {
	statusFilter := filters.NewArgs()
	for _, status := range query.Statuses {
		statusFilter.Add("status", status)
	}

	containers, err := e.client.ContainerList(ctx, container.ListOptions{
		All:     query.All,
		Size:    query.WithSize,
		Filters: statusFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	result := make([]engine.ContainerRecord, 0, len(containers))
	for i := range containers {
		result = append(result, containerRecord(&containers[i]))
	}
	return result, nil
}

// ListImages lists images, optionally restricted to dangling ones.
func (e *Engine) ListImages(ctx context.Context, query ports.ImageQuery) ([]engine.ImageRecord, error) {
	options := image.ListOptions{All: query.All}
	if query.DanglingOnly {
		options.Filters = filters.NewArgs(filters.Arg("dangling", "true"))
	}

	images, err := e.client.ImageList(ctx, options)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	result := make([]engine.ImageRecord, 0, len(images))
	for i := range images {
		result = append(result, imageRecord(&images[i]))
	}
	return result, nil
}

// ListNetworks lists every network known to the engine.
func (e *Engine) ListNetworks(ctx context.Context) ([]engine.NetworkRecord, error) {
	networks, err := e.client.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}

	result := make([]engine.NetworkRecord, 0, len(networks))
	for _, nw := range networks {
		result = append(result, engine.NetworkRecord{
			ID:     nw.ID,
			Name:   nw.Name,
			Driver: nw.Driver,
		})
	}
	return result, nil
}

// InspectNetwork returns the containers attached to a network.
func (e *Engine) InspectNetwork(ctx context.Context, id string) (engine.NetworkDetail, error) {
	inspect, err := e.client.NetworkInspect(ctx, id, network.InspectOptions{})
	if err != nil {
		return engine.NetworkDetail{}, fmt.Errorf("inspect network %s: %w", id, err)
	}

	attached := make([]string, 0, len(inspect.Containers))
	for containerID := range inspect.Containers {
		attached = append(attached, containerID)
	}
	sort.Strings(attached)

	return engine.NetworkDetail{
		ID:         inspect.ID,
		Name:       inspect.Name,
		Containers: attached,
	}, nil
}

// DiskUsage fetches the engine disk-usage report.
func (e *Engine) DiskUsage(ctx context.Context) (engine.DiskUsageReport, error) {
	usage, err := e.client.DiskUsage(ctx, types.DiskUsageOptions{})
	if err != nil {
		return engine.DiskUsageReport{}, fmt.Errorf("disk usage: %w", err)
	}

	report := engine.DiskUsageReport{LayersSize: usage.LayersSize}
	for _, vol := range usage.Volumes {
		if vol == nil {
			continue
		}
		entry := engine.VolumeUsage{Name: vol.Name}
		if vol.UsageData != nil {
			entry.Usage = &engine.VolumeUsageData{
				Size:     nonNegative(vol.UsageData.Size),
				RefCount: vol.UsageData.RefCount,
			}
		}
		report.Volumes = append(report.Volumes, entry)
	}
	for _, record := range usage.BuildCache {
		if record == nil {
			continue
		}
		report.BuildCache = append(report.BuildCache, engine.BuildCacheEntry{
			ID:          record.ID,
			Description: record.Description,
			InUse:       record.InUse,
			Shared:      record.Shared,
			Size:        nonNegative(record.Size),
			LastUsedAt:  record.LastUsedAt,
		})
	}
	for _, img := range usage.Images {
		if img == nil {
			continue
		}
		report.Images = append(report.Images, imageRecord(img))
	}
	for _, ctr := range usage.Containers {
		if ctr == nil {
			continue
		}
		report.Containers = append(report.Containers, containerRecord(ctr))
	}
	return report, nil
}

func containerRecord(ctr *container.Summary) engine.ContainerRecord {
	record := engine.ContainerRecord{
		ID:      ctr.ID,
		Names:   ctr.Names,
		Image:   ctr.Image,
		ImageID: ctr.ImageID,
		State:   string(ctr.State),
		Status:  ctr.Status,
		SizeRw:  nonNegative(ctr.SizeRw),
	}
	for _, mount := range ctr.Mounts {
		record.Mounts = append(record.Mounts, engine.MountRecord{
			Type: string(mount.Type),
			Name: mount.Name,
		})
	}
	return record
}

func imageRecord(img *image.Summary) engine.ImageRecord {
	tags := make([]string, 0, len(img.RepoTags))
	for _, tag := range img.RepoTags {
		if tag == "" || tag == untaggedRef {
			continue
		}
		tags = append(tags, tag)
	}
	return engine.ImageRecord{
		ID:         img.ID,
		RepoTags:   tags,
		Size:       nonNegative(img.Size),
		Created:    img.Created,
		Containers: img.Containers,
	}
}

func nonNegative(value int64) int64 {
	if value < 0 {
		return 0
	}
	return value
}
