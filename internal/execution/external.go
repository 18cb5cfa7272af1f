package execution

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"jtr/internal/config"
	"jtr/internal/domain"
)

// ExternalTerminal opens a new terminal window running the command and
// returns without waiting for it.
type ExternalTerminal struct {
	argv  []string
	start func(*exec.Cmd) error
}

// NewExternalTerminal creates an ExternalTerminal. argv is the prefix that
// opens a window and runs its last argument, e.g. ["kitty", "sh", "-c"].
func NewExternalTerminal(argv []string) *ExternalTerminal {
	return &ExternalTerminal{argv: argv, start: startDetached}
}

// Dispatch launches the terminal
func (t *ExternalTerminal) Dispatch(ctx context.Context, cmd domain.Command) (domain.RunResult, error) {
	if len(t.argv) == 0 {
		return domain.RunResult{}, fmt.Errorf("no external terminal configured")
	}

	if err := ctx.Err(); err != nil {
		return domain.RunResult{}, err
	}

	// The window outlives jtr, so it is not bound to ctx
	argv := t.Argv(cmd)
	c := exec.Command(argv[0], argv[1:]...)
	slog.Debug("dispatching to external terminal", "argv", argv)

	if err := t.start(c); err != nil {
		return domain.RunResult{}, fmt.Errorf("open terminal %s: %w", argv[0], err)
	}
	return domain.RunResult{Command: cmd, ExitCode: -1, Detached: true}, nil
}

// Argv returns the full argv that opens the terminal for cmd
func (t *ExternalTerminal) Argv(cmd domain.Command) []string {
	line := cmd.Line
	if cmd.Dir != "" {
		line = changeDir(cmd.Dir) + " && " + line
	}
	if filepath.Base(t.argv[0]) == "osascript" {
		line = `tell application "Terminal" to do script "` + appleScriptEscape(line) + `"`
	}

	argv := append([]string(nil), t.argv...)
	return append(argv, line)
}

func changeDir(dir string) string {
	if config.IsWindows() {
		return "cd /d " + config.Quote(dir)
	}
	return "cd " + config.Quote(dir)
}

func appleScriptEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// startDetached starts c and reaps it in the background
func startDetached(c *exec.Cmd) error {
	if err := c.Start(); err != nil {
		return err
	}
	go func() { _ = c.Wait() }()
	return nil
}
