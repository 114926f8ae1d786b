// Where: internal/commands/completion.go
// What: Shell completion command implementation.
// Why: Complete subcommands and their flags for bash, zsh, and fish.
package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/poruru/docker-prune-plan/internal/meta"
)

// CompletionCmd defines the structure for the completion command.
type CompletionCmd struct {
	Bash CompletionBashCmd `cmd:"" help:"Generate bash completion script"`
	Zsh  CompletionZshCmd  `cmd:"" help:"Generate zsh completion script"`
	Fish CompletionFishCmd `cmd:"" help:"Generate fish completion script"`
}

type (
	CompletionBashCmd struct{}
	CompletionZshCmd  struct{}
	CompletionFishCmd struct{}
)

// completionFunc turns the program name into a shell identifier.
func completionFunc() string {
	return "_" + strings.NewReplacer("-", "_", ".", "_").Replace(meta.AppName) + "_completion"
}

func runCompletionBash(cli CLI, out io.Writer) int {
	commands, words := collectCompletionCommands(cli)

	var caseParts []string
	for _, cmd := range sortedKeys(words) {
		part := fmt.Sprintf(`        %s)
            COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
            return 0
            ;;`, cmd, strings.Join(words[cmd], " "))
		caseParts = append(caseParts, part)
	}

	script := `%[1]s() {
    local cur cmd
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    cmd="${COMP_WORDS[1]}"

    if [[ ${COMP_CWORD} -le 1 ]]; then
        COMPREPLY=( $(compgen -W "%[2]s" -- "${cur}") )
        return 0
    fi

    case "${cmd}" in
%[3]s
    esac
}
complete -F %[1]s %[4]s
`
	writeString(out, fmt.Sprintf(script, completionFunc(), strings.Join(commands, " "), strings.Join(caseParts, "\n"), meta.AppName))
	return 0
}

func runCompletionZsh(cli CLI, out io.Writer) int {
	commands, words := collectCompletionCommands(cli)

	script := `#compdef %[1]s
%[2]s() {
  local -a commands
  commands=(%[3]s)
  local cmd="${words[2]}"

  if [[ $CURRENT -eq 2 ]]; then
    _values 'commands' ${commands[@]}
    return
  fi

%[4]s
}
%[2]s "$@"
`

	var subBlocks strings.Builder
	for _, cmd := range sortedKeys(words) {
		subBlocks.WriteString(fmt.Sprintf(`  if [[ "${cmd}" == "%s" ]]; then
    compadd -- %s
    return
  fi
`, cmd, strings.Join(words[cmd], " ")))
	}

	writeString(out, fmt.Sprintf(script, meta.AppName, completionFunc(), strings.Join(commands, " "), subBlocks.String()))
	return 0
}

func runCompletionFish(cli CLI, out io.Writer) int {
	commands, words := collectCompletionCommands(cli)
	writeLine(out, fmt.Sprintf("complete -c %s -f -n \"__fish_use_subcommand\" -a \"%s\"", meta.AppName, strings.Join(commands, " ")))
	for _, cmd := range sortedKeys(words) {
		writeLine(out, fmt.Sprintf("complete -c %s -f -n \"__fish_seen_subcommand_from %s\" -a \"%s\"", meta.AppName, cmd, strings.Join(words[cmd], " ")))
	}
	return 0
}

// collectCompletionCommands returns the top-level commands and, per command,
// its subcommands followed by its long flags.
func collectCompletionCommands(cli CLI) ([]string, map[string][]string) {
	parser, err := kong.New(&cli, kong.Name(meta.AppName))
	if err != nil {
		return nil, nil
	}

	var commands []string
	words := make(map[string][]string)

	for _, node := range parser.Model.Children {
		if node.Hidden || strings.HasPrefix(node.Name, "__") {
			continue
		}
		commands = append(commands, node.Name)

		var subs []string
		for _, sub := range node.Children {
			if sub.Hidden || strings.HasPrefix(sub.Name, "__") {
				continue
			}
			subs = append(subs, sub.Name)
		}
		for _, flag := range node.Flags {
			if flag.Hidden {
				continue
			}
			subs = append(subs, "--"+flag.Name)
		}
		if len(subs) > 0 {
			words[node.Name] = subs
		}
	}

	return commands, words
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
