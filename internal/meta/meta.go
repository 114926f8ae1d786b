// Where: internal/meta/meta.go
// What: CLI identity constants.
// Why: Keep the program name, env prefix and home directory in one place.
package meta

const (
	// Project Identity
	AppName   = "docker-prune-plan"
	EnvPrefix = "PRUNE_PLAN"

	// Directory Layout
	HomeDir        = ".docker-prune-plan"
	ConfigFileName = "config.yaml"

	// Export object layout
	ExportKeyPrefix = "prune-plans"
)
