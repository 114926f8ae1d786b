// Where: internal/domain/engine/records.go
// What: Typed engine records consumed by the planners.
// Why: Map loosely-typed engine payloads once, with missing-field defaults applied at ingestion.
package engine

import "time"

// MountTypeVolume is the mount type of a named or anonymous volume mount.
const MountTypeVolume = "volume"

// ContainerRecord describes one container as reported by a listing.
type ContainerRecord struct {
	ID      string
	Names   []string
	Image   string
	ImageID string
	State   string
	Status  string
	// SizeRw is the writable-layer size; 0 unless the listing requested sizes.
	SizeRw int64
	Mounts []MountRecord
}

// MountRecord is a single container mount.
type MountRecord struct {
	Type string
	Name string
}

// ImageRecord describes one image from an image listing.
type ImageRecord struct {
	ID       string
	RepoTags []string
	Size     int64
	// Created is a unix timestamp in seconds; 0 when unknown.
	Created int64
	// Containers is the engine's own reference count, -1 when not computed.
	Containers int64
}

// NetworkRecord describes one network from a network listing.
type NetworkRecord struct {
	ID     string
	Name   string
	Driver string
}

// NetworkDetail is the result of inspecting a single network.
type NetworkDetail struct {
	ID         string
	Name       string
	Containers []string
}

// VolumeUsage is a volume entry of the disk-usage report.
type VolumeUsage struct {
	Name string
	// Usage is nil when the engine reported no usage data for the volume.
	Usage *VolumeUsageData
}

// VolumeUsageData carries the size and reference count of a volume.
type VolumeUsageData struct {
	Size     int64
	RefCount int64
}

// BuildCacheEntry is a build-cache record of the disk-usage report.
type BuildCacheEntry struct {
	ID          string
	Description string
	InUse       bool
	Shared      bool
	Size        int64
	LastUsedAt  *time.Time
}

// DiskUsageReport is the subset of the engine's disk-usage report the planners use.
type DiskUsageReport struct {
	Volumes    []VolumeUsage
	BuildCache []BuildCacheEntry
	Images     []ImageRecord
	Containers []ContainerRecord
	LayersSize int64
}

// Info is the subset of engine information used by the cross-check.
type Info struct {
	ServerVersion string
	RootDir       string
	OSType        string
}
