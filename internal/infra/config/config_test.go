// Where: internal/infra/config/config_test.go
// What: Tests for config loading and layering.
// Why: Ensure schema validation and flags > env > file > defaults precedence.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poruru/docker-prune-plan/internal/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func lookupFrom(values map[string]string) LookupFunc {
	return func(suffix string) (string, bool) {
		value, ok := values[suffix]
		return value, ok
	}
}

func TestLoadMissingDefaultFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "config file must not be created")
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
	require.Error(t, err)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
version: 1
output: json
log:
  level: debug
network:
  inspect_concurrency: 4
export:
  region: eu-west-1
  targets:
    - s3://audit-bucket/plans
threshold: 10GB
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 4, cfg.Network.InspectConcurrency)
	assert.Equal(t, []string{"s3://audit-bucket/plans"}, cfg.Export.Targets)
	assert.Equal(t, "10GB", cfg.Threshold)
}

func TestLoadEmptyFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "\n  \n"), true)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"unknown key":      "colour: red\n",
		"bad output":       "output: xml\n",
		"bad concurrency":  "network:\n  inspect_concurrency: 0\n",
		"bad export":       "export:\n  targets: [\"ftp://host/x\"]\n",
		"bad version":      "version: 2\n",
		"bad log level":    "log:\n  level: loud\n",
		"bad api version":  "docker:\n  api_version: latest\n",
		"threshold number": "threshold: 100\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content), true)
			require.Error(t, err)
		})
	}
}

func TestPathPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PRUNE_PLAN_CONFIG", "")

	path, explicit, err := Path("")
	require.NoError(t, err)
	assert.False(t, explicit)
	assert.Equal(t, filepath.Join(home, meta.HomeDir, meta.ConfigFileName), path)

	envPath := filepath.Join(home, "env.yaml")
	t.Setenv("PRUNE_PLAN_CONFIG", envPath)
	path, explicit, err = Path("")
	require.NoError(t, err)
	assert.True(t, explicit)
	assert.Equal(t, envPath, path)

	flagPath := filepath.Join(home, "flag.yaml")
	path, explicit, err = Path(flagPath)
	require.NoError(t, err)
	assert.True(t, explicit)
	assert.Equal(t, flagPath, path)
}

func TestLayeringPrecedence(t *testing.T) {
	cfg, err := Load(writeConfig(t, "output: yaml\nlog:\n  level: info\nthreshold: 1GB\n"), true)
	require.NoError(t, err)

	require.NoError(t, ApplyEnv(&cfg, lookupFrom(map[string]string{
		"OUTPUT":              "json",
		"LOG_LEVEL":           "error",
		"INSPECT_CONCURRENCY": "2",
		"SHOW_NAME":           "true",
		"EXPORT":              "s3://a/b, dynamodb://plans",
	})))
	showName := false
	ApplyOverrides(&cfg, Overrides{
		Output:    "table",
		ShowName:  &showName,
		Threshold: "1.5kB",
	})

	opts, err := Resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, "table", opts.Output)
	assert.Equal(t, "error", opts.LogLevel)
	assert.Equal(t, 2, opts.InspectConcurrency)
	assert.False(t, opts.ShowName)
	assert.Equal(t, []string{"s3://a/b", "dynamodb://plans"}, opts.ExportTargets)
	assert.Equal(t, int64(1500), opts.Threshold)
}

func TestApplyEnvRejectsMalformedNumbers(t *testing.T) {
	cfg := Defaults()
	require.Error(t, ApplyEnv(&cfg, lookupFrom(map[string]string{"INSPECT_CONCURRENCY": "many"})))
	require.Error(t, ApplyEnv(&cfg, lookupFrom(map[string]string{"SHOW_NAME": "maybe"})))
}

func TestResolveValidatesOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Output = "xml"
	_, err := Resolve(cfg)
	require.Error(t, err)

	cfg = Defaults()
	cfg.Network.InspectConcurrency = 0
	_, err = Resolve(cfg)
	require.Error(t, err)

	cfg = Defaults()
	cfg.Threshold = "lots"
	_, err = Resolve(cfg)
	require.Error(t, err)

	cfg = Defaults()
	cfg.Export.Endpoint = "not a url"
	_, err = Resolve(cfg)
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Export.Targets = []string{"dynamodb://plans"}
	payload, err := Marshal(cfg)
	require.NoError(t, err)

	var decoded File
	require.NoError(t, yaml.Unmarshal(payload, &decoded))
	assert.Equal(t, cfg, decoded)
	assert.NoError(t, validateDocument(payload))
}
