package execution

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"jtr/internal/config"
	"jtr/internal/domain"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if config.IsWindows() {
		t.Skip("requires a posix shell")
	}
}

func TestIntegratedTerminal_Dispatch(t *testing.T) {
	skipOnWindows(t)

	t.Run("captures output and exit code", func(t *testing.T) {
		var out bytes.Buffer
		term := &IntegratedTerminal{stdout: &out}

		result, err := term.Dispatch(context.Background(), domain.Command{Line: "echo hello; echo oops >&2; exit 3"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.ExitCode != 3 {
			t.Errorf("expected exit code 3, got %d", result.ExitCode)
		}
		if result.Success() {
			t.Error("expected failed result")
		}
		for _, s := range []string{"hello", "oops"} {
			if !strings.Contains(result.Output, s) {
				t.Errorf("expected captured output to contain %q, got %q", s, result.Output)
			}
			if !strings.Contains(out.String(), s) {
				t.Errorf("expected streamed output to contain %q, got %q", s, out.String())
			}
		}
	})

	t.Run("runs in the command directory", func(t *testing.T) {
		dir := t.TempDir()
		var out bytes.Buffer
		term := &IntegratedTerminal{stdout: &out}

		result, err := term.Dispatch(context.Background(), domain.Command{Line: "pwd", Dir: dir})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Success() {
			t.Fatalf("expected success, got exit code %d", result.ExitCode)
		}
		got, _ := filepath.EvalSymlinks(strings.TrimSpace(result.Output))
		want, _ := filepath.EvalSymlinks(dir)
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		term := &IntegratedTerminal{stdout: &bytes.Buffer{}}
		if _, err := term.Dispatch(context.Background(), domain.Command{Line: "true", Dir: "/non/existent/dir"}); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

func TestExternalTerminal_Dispatch(t *testing.T) {
	skipOnWindows(t)

	var started []string
	term := NewExternalTerminal([]string{"kitty", "sh", "-c"})
	term.start = func(c *exec.Cmd) error {
		started = c.Args
		return nil
	}

	cmd := domain.Command{Line: "npx jest a.test.js", Dir: "/work/my app"}
	result, err := term.Dispatch(context.Background(), cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Detached || result.ExitCode != -1 || result.Success() {
		t.Errorf("expected detached result, got %+v", result)
	}

	expected := []string{"kitty", "sh", "-c", "cd '/work/my app' && npx jest a.test.js"}
	if diff := cmp.Diff(expected, started); diff != "" {
		t.Errorf("argv mismatch (-want +got):\n%s", diff)
	}
}

func TestExternalTerminal_Errors(t *testing.T) {
	t.Run("no terminal configured", func(t *testing.T) {
		if _, err := NewExternalTerminal(nil).Dispatch(context.Background(), domain.Command{Line: "x"}); err == nil {
			t.Error("expected error without a terminal")
		}
	})

	t.Run("start failure", func(t *testing.T) {
		term := NewExternalTerminal([]string{"missing-terminal"})
		term.start = func(*exec.Cmd) error { return errors.New("not found") }
		if _, err := term.Dispatch(context.Background(), domain.Command{Line: "x"}); err == nil {
			t.Error("expected error when the terminal cannot start")
		}
	})
}

func TestExternalTerminal_OutlivesContext(t *testing.T) {
	skipOnWindows(t)

	var started *exec.Cmd
	exited := make(chan error, 1)
	term := NewExternalTerminal([]string{"sh", "-c"})
	term.start = func(c *exec.Cmd) error {
		if err := c.Start(); err != nil {
			return err
		}
		started = c
		go func() { exited <- c.Wait() }()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := term.Dispatch(ctx, domain.Command{Line: "sleep 5"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()

	select {
	case err := <-exited:
		t.Errorf("terminal exited when the context was cancelled: %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	_ = started.Process.Kill()
	<-exited
}

func TestExternalTerminal_CancelledBeforeStart(t *testing.T) {
	term := NewExternalTerminal([]string{"sh", "-c"})
	term.start = func(*exec.Cmd) error {
		t.Error("nothing should start after cancellation")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := term.Dispatch(ctx, domain.Command{Line: "true"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExternalTerminal_AppleScript(t *testing.T) {
	term := NewExternalTerminal([]string{"osascript", "-e"})
	argv := term.Argv(domain.Command{Line: `jest -t "a\b"`})

	expected := `tell application "Terminal" to do script "jest -t \"a\\b\""`
	if argv[len(argv)-1] != expected {
		t.Errorf("expected %s, got %s", expected, argv[len(argv)-1])
	}
}

type recordingDispatcher struct {
	commands []domain.Command
}

func (r *recordingDispatcher) Dispatch(_ context.Context, cmd domain.Command) (domain.RunResult, error) {
	r.commands = append(r.commands, cmd)
	return domain.RunResult{Command: cmd}, nil
}

func TestInspector_Debug(t *testing.T) {
	skipOnWindows(t)

	rec := &recordingDispatcher{}
	dc := domain.DebugConfig{
		Program: "/p/node_modules/jest/bin/jest.js",
		Args:    []string{"a.test.js", "-t", "Foo bar", "--runInBand"},
		Cwd:     "/p",
		Env:     map[string]string{"NODE_ENV": "test", "DEBUG": "app:*"},
	}

	if _, err := NewInspector(rec).Debug(context.Background(), dc, domain.Target{Kind: domain.TargetTest}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.commands) != 1 {
		t.Fatalf("expected 1 dispatched command, got %d", len(rec.commands))
	}

	cmd := rec.commands[0]
	expected := `DEBUG='app:*' NODE_ENV=test node --inspect-brk /p/node_modules/jest/bin/jest.js a.test.js -t 'Foo bar' --runInBand`
	if cmd.Line != expected {
		t.Errorf("expected line\n  %s\ngot\n  %s", expected, cmd.Line)
	}
	if cmd.Dir != "/p" {
		t.Errorf("expected dir /p, got %s", cmd.Dir)
	}
}

func TestInspector_RuntimeExecutable(t *testing.T) {
	rec := &recordingDispatcher{}
	dc := domain.DebugConfig{RuntimeExecutable: "yarn", Args: []string{"jest"}}
	if _, err := NewInspector(rec).Debug(context.Background(), dc, domain.Target{}); err == nil {
		t.Error("expected error for runtime executable configs")
	}
	if len(rec.commands) != 0 {
		t.Error("nothing should be dispatched on error")
	}
}

func TestNewDispatcher(t *testing.T) {
	cfg := config.New()
	if _, ok := NewDispatcher(cfg, &bytes.Buffer{}).(*IntegratedTerminal); !ok {
		t.Error("expected integrated terminal by default")
	}

	cfg.Terminal = config.TerminalExternal
	if _, ok := NewDispatcher(cfg, &bytes.Buffer{}).(*ExternalTerminal); !ok {
		t.Error("expected external terminal")
	}
}

func TestNewIntegratedTerminal_NoPTYForBuffers(t *testing.T) {
	if NewIntegratedTerminal(&bytes.Buffer{}).usePTY {
		t.Error("a buffer is not a terminal")
	}
}
