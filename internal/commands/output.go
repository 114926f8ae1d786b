// Where: internal/commands/output.go
// What: Output helpers for command adapters.
// Why: Centralize raw line output and error reporting.
package commands

import (
	"fmt"
	"io"
	"strings"
)

// exitWithError prints a single error line and returns exit code 1.
func exitWithError(errOut io.Writer, err error) int {
	writeLine(errOut, fmt.Sprintf("Error: %v", err))
	return 1
}

func writeString(out io.Writer, text string) {
	if out == nil || text == "" {
		return
	}
	_, _ = io.WriteString(out, text)
}

func writeLine(out io.Writer, line string) {
	if out == nil {
		return
	}
	if strings.HasSuffix(line, "\n") {
		_, _ = io.WriteString(out, line)
		return
	}
	_, _ = io.WriteString(out, line+"\n")
}
