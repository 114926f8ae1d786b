package version

import (
	"runtime/debug"
	"testing"
)

func TestFromSettings(t *testing.T) {
	cases := []struct {
		name     string
		settings []debug.BuildSetting
		want     string
	}{
		{name: "no vcs", want: "dev"},
		{
			name:     "clean",
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
			want:     "0123456",
		},
		{
			name: "dirty",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abcdef1234"},
				{Key: "vcs.modified", Value: "true"},
			},
			want: "abcdef1 (dirty)",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := fromSettings(tc.settings); got != tc.want {
				t.Fatalf("fromSettings() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGetVersionPrefersStampedVersion(t *testing.T) {
	prev := Version
	Version = "v1.2.3"
	t.Cleanup(func() { Version = prev })

	if got := GetVersion(); got != "v1.2.3" {
		t.Fatalf("GetVersion() = %q", got)
	}
}
