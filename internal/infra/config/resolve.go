// Where: internal/infra/config/resolve.go
// What: Layering of env and flag overrides over the config file.
// Why: Apply flags > PRUNE_PLAN_* env > file > defaults in one place.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/poruru/docker-prune-plan/internal/envutil"
	"github.com/poruru/docker-prune-plan/internal/humanize"
)

// LookupFunc returns the value of a PRUNE_PLAN_<suffix> variable.
type LookupFunc func(suffix string) (string, bool)

// Overrides carries command-line values. Empty strings and nil pointers
// leave the lower layers untouched.
type Overrides struct {
	Output        string
	ShowName      *bool
	LogLevel      string
	LogFormat     string
	Host          string
	ExportTargets []string
	MetricsFile   string
	Threshold     string
}

// Options is the fully resolved configuration of one invocation.
type Options struct {
	Output             string   `yaml:"output" validate:"oneof=table json yaml"`
	ShowName           bool     `yaml:"show_name"`
	LogLevel           string   `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat          string   `yaml:"log_format" validate:"oneof=console json"`
	DockerHost         string   `yaml:"docker_host,omitempty"`
	APIVersion         string   `yaml:"api_version,omitempty"`
	InspectConcurrency int      `yaml:"inspect_concurrency" validate:"min=1,max=64"`
	ExportTargets      []string `yaml:"export_targets,omitempty" validate:"dive,required"`
	ExportRegion       string   `yaml:"export_region,omitempty"`
	ExportEndpoint     string   `yaml:"export_endpoint,omitempty" validate:"omitempty,url"`
	MetricsFile        string   `yaml:"metrics_file,omitempty"`
	// Threshold is the plan total in bytes above which a warning is printed; 0 disables it.
	Threshold int64 `yaml:"threshold,omitempty" validate:"min=0"`
}

var validate = validator.New()

// ApplyEnv overlays PRUNE_PLAN_* variables onto cfg. A nil lookup reads
// the process environment.
func ApplyEnv(cfg *File, lookup LookupFunc) error {
	if lookup == nil {
		lookup = envutil.LookupHostEnv
	}
	strs := map[string]*string{
		"OUTPUT":          &cfg.Output,
		"LOG_LEVEL":       &cfg.Log.Level,
		"LOG_FORMAT":      &cfg.Log.Format,
		"HOST":            &cfg.Docker.Host,
		"API_VERSION":     &cfg.Docker.APIVersion,
		"EXPORT_REGION":   &cfg.Export.Region,
		"EXPORT_ENDPOINT": &cfg.Export.Endpoint,
		"METRICS_FILE":    &cfg.MetricsFile,
		"THRESHOLD":       &cfg.Threshold,
	}
	for suffix, target := range strs {
		if value, ok := lookup(suffix); ok {
			*target = value
		}
	}

	if value, ok := lookup("SHOW_NAME"); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", envutil.HostEnvKey("SHOW_NAME"), err)
		}
		cfg.ShowName = parsed
	}
	if value, ok := lookup("INSPECT_CONCURRENCY"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", envutil.HostEnvKey("INSPECT_CONCURRENCY"), err)
		}
		cfg.Network.InspectConcurrency = parsed
	}
	if value, ok := lookup("EXPORT"); ok {
		cfg.Export.Targets = splitList(value)
	}
	return nil
}

// ApplyOverrides overlays command-line values onto cfg.
func ApplyOverrides(cfg *File, o Overrides) {
	setString(&cfg.Output, o.Output)
	setString(&cfg.Log.Level, o.LogLevel)
	setString(&cfg.Log.Format, o.LogFormat)
	setString(&cfg.Docker.Host, o.Host)
	setString(&cfg.MetricsFile, o.MetricsFile)
	setString(&cfg.Threshold, o.Threshold)
	if o.ShowName != nil {
		cfg.ShowName = *o.ShowName
	}
	if len(o.ExportTargets) > 0 {
		cfg.Export.Targets = append([]string(nil), o.ExportTargets...)
	}
}

// Resolve converts the layered file into validated Options.
func Resolve(cfg File) (Options, error) {
	opts := Options{
		Output:             strings.ToLower(cfg.Output),
		ShowName:           cfg.ShowName,
		LogLevel:           strings.ToLower(cfg.Log.Level),
		LogFormat:          strings.ToLower(cfg.Log.Format),
		DockerHost:         cfg.Docker.Host,
		APIVersion:         cfg.Docker.APIVersion,
		InspectConcurrency: cfg.Network.InspectConcurrency,
		ExportTargets:      cfg.Export.Targets,
		ExportRegion:       cfg.Export.Region,
		ExportEndpoint:     cfg.Export.Endpoint,
		MetricsFile:        cfg.MetricsFile,
	}
	if strings.TrimSpace(cfg.Threshold) != "" {
		threshold, err := humanize.ParseSize(cfg.Threshold)
		if err != nil {
			return Options{}, fmt.Errorf("threshold: %w", err)
		}
		opts.Threshold = threshold
	}
	if err := validate.Struct(opts); err != nil {
		return Options{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return opts, nil
}

func setString(target *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*target = value
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
