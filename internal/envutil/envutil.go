// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru/docker-prune-plan/internal/meta"
)

// HostEnvKey constructs a host-level environment variable name
// by combining meta.EnvPrefix with the given suffix.
// Example: HostEnvKey("OUTPUT") returns "PRUNE_PLAN_OUTPUT"
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}

// GetHostEnv retrieves a host-level environment variable, trimmed.
// Example: GetHostEnv("LOG_LEVEL") returns the value of PRUNE_PLAN_LOG_LEVEL
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}

// LookupHostEnv reports whether the host-level variable is set to a non-blank value.
func LookupHostEnv(suffix string) (string, bool) {
	value := GetHostEnv(suffix)
	return value, value != ""
}
