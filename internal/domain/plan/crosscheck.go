// Where: internal/domain/plan/crosscheck.go
// What: Engine-reported reclaimable totals used as a corroboration path.
// Why: Let users compare the classification against the engine's own accounting.
package plan

// CrossCheck holds the engine's own reclaimable figures next to the plan total.
// It never feeds back into a Plan.
type CrossCheck struct {
	Containers int64
	Images     int64
	Volumes    int64
	BuildCache int64
	// Planned is the plan total the figures are compared with.
	Planned int64
	// RootFS is nil when the engine root filesystem could not be measured.
	RootFS *FilesystemUsage
}

// FilesystemUsage describes the filesystem holding the engine data root.
type FilesystemUsage struct {
	Path  string
	Total uint64
	Used  uint64
	Free  uint64
}

// EngineTotal sums the engine-reported reclaimable figures.
func (c CrossCheck) EngineTotal() int64 {
	return c.Containers + c.Images + c.Volumes + c.BuildCache
}

// Delta returns planned minus engine-reported bytes.
func (c CrossCheck) Delta() int64 {
	return c.Planned - c.EngineTotal()
}
