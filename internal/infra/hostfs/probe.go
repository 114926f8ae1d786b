// Where: internal/infra/hostfs/probe.go
// What: Local filesystem usage probe.
// Why: The cross-check reports free space on the filesystem holding the engine data root.
package hostfs

import (
	"fmt"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/shirou/gopsutil/v4/disk"
)

// Probe measures local filesystems through gopsutil.
type Probe struct {
	usage func(path string) (*disk.UsageStat, error)
}

// NewProbe returns a Probe backed by disk.Usage.
func NewProbe() *Probe {
	return &Probe{usage: disk.Usage}
}

// Usage reports total, used and free bytes of the filesystem holding path.
func (p *Probe) Usage(path string) (plan.FilesystemUsage, error) {
	stat, err := p.usage(path)
	if err != nil {
		return plan.FilesystemUsage{}, fmt.Errorf("filesystem usage %s: %w", path, err)
	}
	return plan.FilesystemUsage{
		Path:  stat.Path,
		Total: stat.Total,
		Used:  stat.Used,
		Free:  stat.Free,
	}, nil
}
