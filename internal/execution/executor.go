package execution

import (
	"context"
	"io"
	"sort"
	"strings"

	"jtr/internal/config"
	"jtr/internal/domain"
)

// Dispatcher hands a command to a terminal
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd domain.Command) (domain.RunResult, error)
}

// NewDispatcher returns the dispatcher selected by the config's terminal setting
func NewDispatcher(cfg *config.Config, stdout io.Writer) Dispatcher {
	if cfg.Terminal == config.TerminalExternal {
		return NewExternalTerminal(cfg.GetExternalTerminal())
	}
	return NewIntegratedTerminal(stdout)
}

// ShellArgs returns the argv that runs line through the platform shell
func ShellArgs(line string) []string {
	if config.IsWindows() {
		return []string{"cmd", "/C", line}
	}
	return []string{"sh", "-c", line}
}

// JoinArgs quotes argv into a single shell line
func JoinArgs(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = config.Quote(arg)
	}
	return strings.Join(quoted, " ")
}

// withEnv prefixes line with variable assignments, sorted by name
func withEnv(env map[string]string, line string) string {
	if len(env) == 0 {
		return line
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		if config.IsWindows() {
			sb.WriteString("set " + config.Quote(k+"="+env[k]) + " && ")
		} else {
			sb.WriteString(k + "=" + config.Quote(env[k]) + " ")
		}
	}
	return sb.String() + line
}
