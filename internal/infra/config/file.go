// Where: internal/infra/config/file.go
// What: Config file model, path resolution and loading.
// Why: Manage ~/.docker-prune-plan/config.yaml consistently.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/docker-prune-plan/internal/envutil"
	"github.com/poruru/docker-prune-plan/internal/meta"
	"gopkg.in/yaml.v3"
)

// HostSuffixConfigPath names the PRUNE_PLAN_CONFIG override.
const HostSuffixConfigPath = "CONFIG"

// File mirrors config.yaml. Zero values mean "not set" and fall back to defaults.
type File struct {
	Version     int           `yaml:"version"`
	Output      string        `yaml:"output,omitempty"`
	ShowName    bool          `yaml:"show_name,omitempty"`
	Log         LogConfig     `yaml:"log,omitempty"`
	Docker      DockerConfig  `yaml:"docker,omitempty"`
	Network     NetworkConfig `yaml:"network,omitempty"`
	Export      ExportConfig  `yaml:"export,omitempty"`
	MetricsFile string        `yaml:"metrics_file,omitempty"`
	Threshold   string        `yaml:"threshold,omitempty"`
}

// LogConfig selects the diagnostic log level and encoding.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// DockerConfig overrides the engine endpoint otherwise taken from DOCKER_HOST.
type DockerConfig struct {
	Host       string `yaml:"host,omitempty"`
	APIVersion string `yaml:"api_version,omitempty"`
}

// NetworkConfig tunes the network planner.
type NetworkConfig struct {
	InspectConcurrency int `yaml:"inspect_concurrency,omitempty"`
}

// ExportConfig lists report sinks and the AWS settings used to reach them.
type ExportConfig struct {
	Region   string   `yaml:"region,omitempty"`
	Endpoint string   `yaml:"endpoint,omitempty"`
	Targets  []string `yaml:"targets,omitempty"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() File {
	return File{
		Version: 1,
		Output:  "table",
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Network: NetworkConfig{InspectConcurrency: 8},
	}
}

// Path returns the config file path and whether it was named explicitly.
// An explicit path (flag or PRUNE_PLAN_CONFIG) must exist; the default
// ~/.docker-prune-plan/config.yaml may be absent.
func Path(flagValue string) (string, bool, error) {
	if override := strings.TrimSpace(flagValue); override != "" {
		return absPath(override), true, nil
	}
	if override := envutil.GetHostEnv(HostSuffixConfigPath); override != "" {
		return absPath(override), true, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, meta.HomeDir, meta.ConfigFileName), false, nil
}

func absPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Load reads the config file at path over Defaults. A missing file yields
// the defaults unless required is set. The file is never created.
func Load(path string, required bool) (File, error) {
	cfg := Defaults()
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return cfg, nil
	}

	if err := validateDocument(payload); err != nil {
		return File{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return File{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML for `config show`.
func Marshal(cfg File) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&cfg); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
