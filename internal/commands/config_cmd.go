// Where: internal/commands/config_cmd.go
// What: Config loading for commands and the `config show` command.
// Why: Resolve flags > env > file > defaults identically for every command.
package commands

import (
	"context"

	"github.com/poruru/docker-prune-plan/internal/infra/config"
)

func globalOverrides(cli CLI) config.Overrides {
	return config.Overrides{
		LogLevel:      cli.LogLevel,
		LogFormat:     cli.LogFormat,
		Host:          cli.Host,
		ExportTargets: cli.Export,
		MetricsFile:   cli.MetricsFile,
		Threshold:     cli.Threshold,
	}
}

// loadConfig returns the layered config file and the options resolved from it.
func loadConfig(cli CLI, overrides config.Overrides) (config.File, config.Options, error) {
	path, explicit, err := config.Path(cli.ConfigPath)
	if err != nil {
		return config.File{}, config.Options{}, err
	}
	file, err := config.Load(path, explicit)
	if err != nil {
		return config.File{}, config.Options{}, err
	}
	if err := config.ApplyEnv(&file, nil); err != nil {
		return config.File{}, config.Options{}, err
	}
	config.ApplyOverrides(&file, overrides)

	opts, err := config.Resolve(file)
	if err != nil {
		return config.File{}, config.Options{}, err
	}
	return file, opts, nil
}

func runConfigShow(_ context.Context, cli CLI, deps Dependencies) int {
	file, _, err := loadConfig(cli, globalOverrides(cli))
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	payload, err := config.Marshal(file)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	writeString(deps.Out, string(payload))
	return 0
}
