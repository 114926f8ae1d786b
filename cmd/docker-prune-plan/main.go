// Where: cmd/docker-prune-plan/main.go
// What: CLI entrypoint.
// Why: Run plan commands with production dependencies.
package main

import (
	"os"

	"github.com/poruru/docker-prune-plan/internal/commands"
)

func main() {
	os.Exit(commands.Run(os.Args[1:], buildDependencies()))
}
