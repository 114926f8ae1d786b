// Where: internal/domain/plan/usage.go
// What: Usage reference index built from a container listing.
// Why: Image and volume planners must never propose a resource a container still references.
package plan

import "github.com/poruru/docker-prune-plan/internal/domain/engine"

// UsageIndex records which volumes and images are referenced by containers.
// It is built once per planning run and is read-only afterwards.
type UsageIndex struct {
	volumes map[string]struct{}
	images  map[string]struct{}
}

// BuildUsageIndex derives a UsageIndex from the full container listing.
func BuildUsageIndex(containers []engine.ContainerRecord) UsageIndex {
	index := UsageIndex{
		volumes: map[string]struct{}{},
		images:  map[string]struct{}{},
	}
	for _, ctr := range containers {
		for _, mount := range ctr.Mounts {
			if mount.Type == engine.MountTypeVolume && mount.Name != "" {
				index.volumes[mount.Name] = struct{}{}
			}
		}

		if ctr.ImageID != "" {
			index.images[NormalizeImageID(ctr.ImageID)] = struct{}{}
			continue
		}
		// Some engines leave ImageID unset when the container was created
		// from a content digest; the reference itself is then the identity.
		if ctr.Image != "" && IsImageDigest(ctr.Image) {
			index.images[NormalizeImageID(ctr.Image)] = struct{}{}
		}
	}
	return index
}

// VolumeInUse reports whether any container mounts the named volume.
func (u UsageIndex) VolumeInUse(name string) bool {
	_, ok := u.volumes[name]
	return ok
}

// ImageInUse reports whether any container references the image.
// The identifier is normalized before lookup.
func (u UsageIndex) ImageInUse(id string) bool {
	if id == "" {
		return false
	}
	_, ok := u.images[NormalizeImageID(id)]
	return ok
}

// UsedVolumeCount returns the number of distinct referenced volumes.
func (u UsageIndex) UsedVolumeCount() int {
	return len(u.volumes)
}

// UsedImageCount returns the number of distinct referenced images.
func (u UsageIndex) UsedImageCount() int {
	return len(u.images)
}
