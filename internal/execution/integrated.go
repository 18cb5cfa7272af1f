package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"jtr/internal/domain"
)

// IntegratedTerminal runs commands in the current terminal, streaming their
// output and keeping a copy for the summary parser. When stdout is a
// terminal the command gets a pty so Jest keeps its colors and watch keys.
type IntegratedTerminal struct {
	stdout io.Writer
	stdin  io.Reader
	usePTY bool
}

// NewIntegratedTerminal creates an IntegratedTerminal writing to stdout
func NewIntegratedTerminal(stdout io.Writer) *IntegratedTerminal {
	usePTY := false
	if f, ok := stdout.(*os.File); ok {
		usePTY = term.IsTerminal(int(f.Fd()))
	}
	return &IntegratedTerminal{stdout: stdout, stdin: os.Stdin, usePTY: usePTY}
}

// Dispatch runs cmd and waits for it. A non-zero exit status is reported
// in the result, not as an error.
func (t *IntegratedTerminal) Dispatch(ctx context.Context, cmd domain.Command) (domain.RunResult, error) {
	argv := ShellArgs(cmd.Line)
	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Dir = cmd.Dir
	c.Env = os.Environ()

	slog.Debug("dispatching to integrated terminal", "line", cmd.Line, "dir", cmd.Dir, "pty", t.usePTY)

	var captured bytes.Buffer
	start := time.Now()

	var err error
	if t.usePTY {
		err = t.runPTY(c, &captured)
		if errors.Is(err, pty.ErrUnsupported) {
			slog.Debug("pty unavailable, falling back to pipes")
			c = exec.CommandContext(ctx, argv[0], argv[1:]...)
			c.Dir = cmd.Dir
			c.Env = os.Environ()
			err = t.runPipe(c, &captured)
		}
	} else {
		err = t.runPipe(c, &captured)
	}

	result := domain.RunResult{
		Command:  cmd,
		Output:   captured.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return result, fmt.Errorf("run %q: %w", cmd.Line, err)
	}
	return result, nil
}

func (t *IntegratedTerminal) runPipe(c *exec.Cmd, captured *bytes.Buffer) error {
	// exec serializes writes when Stdout and Stderr are the same writer
	out := io.MultiWriter(t.stdout, captured)
	c.Stdout = out
	c.Stderr = out
	c.Stdin = t.stdin
	return c.Run()
}

func (t *IntegratedTerminal) runPTY(c *exec.Cmd, captured *bytes.Buffer) error {
	ptmx, err := startPTY(c, t.stdout)
	if err != nil {
		return err
	}
	defer ptmx.Close()

	if f, ok := t.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if state, err := term.MakeRaw(int(f.Fd())); err == nil {
			defer term.Restore(int(f.Fd()), state)
		}
		go func() { _, _ = io.Copy(ptmx, f) }()
	}

	copied := make(chan struct{})
	go func() {
		// reading the master fails with EIO once the child exits
		_, _ = io.Copy(io.MultiWriter(t.stdout, captured), ptmx)
		close(copied)
	}()

	err = c.Wait()
	<-copied
	return err
}
