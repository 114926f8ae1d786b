// Where: internal/ports/engine.go
// What: Engine query port consumed by the planners.
// Why: Inject the Docker engine as a read-only capability so planners run against fakes in tests.
package ports

import (
	"context"

	"github.com/poruru/docker-prune-plan/internal/domain/engine"
)

// ContainerQuery selects containers for a listing.
type ContainerQuery struct {
	// All includes non-running containers.
	All bool
	// Statuses restricts the listing to the given states (created, exited, dead...).
	Statuses []string
	// WithSize asks the engine to compute writable-layer sizes.
	WithSize bool
}

// ImageQuery selects images for a listing.
type ImageQuery struct {
	All          bool
	DanglingOnly bool
}

// Engine exposes the read-only engine queries a planning run needs.
// Implementations must never remove or modify engine resources.
type Engine interface {
	Ping(ctx context.Context) error
	Info(ctx context.Context) (engine.Info, error)
	ListContainers(ctx context.Context, query ContainerQuery) ([]engine.ContainerRecord, error)
	ListImages(ctx context.Context, query ImageQuery) ([]engine.ImageRecord, error)
	ListNetworks(ctx context.Context) ([]engine.NetworkRecord, error)
	InspectNetwork(ctx context.Context, id string) (engine.NetworkDetail, error)
	DiskUsage(ctx context.Context) (engine.DiskUsageReport, error)
}
