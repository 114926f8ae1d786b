// Where: internal/commands/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/poruru/docker-prune-plan/internal/infra/docker"
	"github.com/poruru/docker-prune-plan/internal/infra/export"
	"github.com/poruru/docker-prune-plan/internal/meta"
	"github.com/poruru/docker-prune-plan/internal/ports"
	"github.com/poruru/docker-prune-plan/internal/usecase/planner"
	"github.com/poruru/docker-prune-plan/internal/version"
)

// EngineFactory connects to the engine selected by opts. The closer may be nil.
type EngineFactory func(opts docker.ClientOptions) (ports.Engine, io.Closer, error)

// Dependencies holds all injected dependencies required for CLI command execution.
// Tests swap the engine and sink factories for in-memory fakes.
type Dependencies struct {
	Out    io.Writer
	ErrOut io.Writer
	// NewEngine is called only by plan commands, after --env-file is loaded.
	NewEngine EngineFactory
	// Filesystem backs the root filesystem line of --cross-check.
	Filesystem planner.FilesystemProbe
	// ExportClients builds S3/DynamoDB clients for --export.
	ExportClients func(settings export.AWSSettings) export.ClientFactory
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	ConfigPath  string   `name:"config" help:"Path to config file (default ~/.docker-prune-plan/config.yaml)"`
	EnvFile     string   `name:"env-file" help:"Path to .env file loaded before connecting (e.g. DOCKER_HOST)"`
	Host        string   `short:"H" help:"Docker daemon socket to connect to"`
	LogLevel    string   `name:"log-level" help:"Diagnostic log level (debug, info, warn, error)"`
	LogFormat   string   `name:"log-format" help:"Diagnostic log format (console, json)"`
	CrossCheck  bool     `name:"cross-check" help:"Compare the plan with the engine's own reclaimable figures"`
	Export      []string `name:"export" sep:"none" help:"Export the plan to s3://bucket/prefix or dynamodb://table (repeatable)"`
	MetricsFile string   `name:"metrics-file" help:"Write Prometheus textfile metrics to this path"`
	Threshold   string   `help:"Warn when the reclaimable total exceeds this size (e.g. 10GB)"`

	Image      ImageCmd      `cmd:"" help:"Preview docker image prune"`
	Volume     VolumeCmd     `cmd:"" help:"Preview docker volume prune"`
	Container  ContainerCmd  `cmd:"" help:"Preview docker container prune"`
	Network    NetworkCmd    `cmd:"" help:"Preview docker network prune"`
	BuildCache BuildCacheCmd `cmd:"" name:"build-cache" help:"Preview docker builder prune"`
	System     SystemCmd     `cmd:"" help:"Preview docker system prune"`
	Config     ConfigCmd     `cmd:"" help:"Inspect configuration"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completion script"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
}

type (
	// OutputFlags selects the plan output format. Without any, the configured
	// output (table by default) is used.
	OutputFlags struct {
		JSON   bool   `name:"json" xor:"output" help:"Output the plan as JSON instead of the table default"`
		YAML   bool   `name:"yaml" xor:"output" help:"Output the plan as YAML"`
		Format string `name:"format" xor:"output" help:"Render each item with a Go template (sprig functions available)"`
	}

	ImageCmd struct {
		All bool `short:"a" help:"Plan all unused images, not just dangling ones"`
		OutputFlags `embed:""`
	}
	VolumeCmd struct {
		All bool `short:"a" help:"Plan all unused volumes, not just anonymous ones"`
		OutputFlags `embed:""`
	}
	ContainerCmd struct {
		OutputFlags `embed:""`
	}
	NetworkCmd struct {
		OutputFlags `embed:""`
	}
	BuildCacheCmd struct {
		OutputFlags `embed:""`
	}
	SystemCmd struct {
		All     bool `short:"a" help:"Plan all unused images, not just dangling ones"`
		Volumes bool `help:"Include anonymous volumes"`
		Name    bool `help:"Show the NAME column"`
		OutputFlags `embed:""`
	}

	ConfigCmd struct {
		Show ConfigShowCmd `cmd:"" help:"Print the effective configuration as YAML"`
	}
	ConfigShowCmd struct{}
	VersionCmd    struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}

	// Handle no arguments: show usage
	if len(args) == 0 {
		return runNoArgs(deps.Out)
	}

	cli := CLI{}
	parser, err := newParser(&cli, deps)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			return exitWithError(deps.ErrOut, fmt.Errorf("load env file %s: %w", cli.EnvFile, err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command := kctx.Command()
	if exitCode, handled := dispatchCommand(ctx, command, cli, deps); handled {
		return exitCode
	}

	return exitWithError(deps.ErrOut, fmt.Errorf("unknown command %q", command))
}

func newParser(cli *CLI, deps Dependencies) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name(meta.AppName),
		kong.Description("Preview what docker prune would remove, without removing anything."),
		kong.Writers(deps.Out, deps.ErrOut),
		kong.UsageOnError(),
	)
}

type commandHandler func(context.Context, CLI, Dependencies) int

func dispatchCommand(ctx context.Context, command string, cli CLI, deps Dependencies) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"image":           runImage,
		"volume":          runVolume,
		"container":       runContainer,
		"network":         runNetwork,
		"build-cache":     runBuildCache,
		"system":          runSystem,
		"config show":     runConfigShow,
		"completion bash": func(_ context.Context, cli CLI, deps Dependencies) int { return runCompletionBash(cli, deps.Out) },
		"completion zsh":  func(_ context.Context, cli CLI, deps Dependencies) int { return runCompletionZsh(cli, deps.Out) },
		"completion fish": func(_ context.Context, cli CLI, deps Dependencies) int { return runCompletionFish(cli, deps.Out) },
		"version":         func(_ context.Context, _ CLI, deps Dependencies) int { return runVersion(deps.Out) },
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(ctx, cli, deps), true
	}

	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	writeLine(out, fmt.Sprintf("%s %s", meta.AppName, version.GetVersion()))
	return 0
}

// runNoArgs handles the case when the CLI is invoked without arguments.
func runNoArgs(out io.Writer) int {
	writeLine(out, "Usage:")
	writeLine(out, fmt.Sprintf("  %s <%s> [flags]", meta.AppName,
		strings.Join([]string{"system", "image", "container", "volume", "network", "build-cache"}, "|")))
	writeLine(out, "")
	writeLine(out, fmt.Sprintf("Try: %s system --help", meta.AppName))
	return 0
}
