// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Report a release version when stamped, else the VCS revision from build info.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is stamped at release time via -ldflags "-X .../version.Version=v1.2.3".
var Version = ""

// GetVersion returns the stamped version when present. Otherwise it returns
// the short VCS revision, suffixed with "(dirty)" for a modified tree, or
// "dev" when no build info is available.
func GetVersion() string {
	if Version != "" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	return fromSettings(info.Settings)
}

func fromSettings(settings []debug.BuildSetting) string {
	var revision string
	var modified bool
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
