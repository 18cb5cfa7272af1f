package execution

import (
	"context"

	"jtr/internal/command"
	"jtr/internal/domain"
)

// Inspector starts a debug configuration under `node --inspect-brk` in the
// integrated terminal, so an inspector client can attach.
type Inspector struct {
	terminal Dispatcher
}

// NewInspector creates an Inspector dispatching through terminal
func NewInspector(terminal Dispatcher) *Inspector {
	return &Inspector{terminal: terminal}
}

// Debug runs dc and waits for the session to end
func (i *Inspector) Debug(ctx context.Context, dc domain.DebugConfig, target domain.Target) (domain.RunResult, error) {
	argv, err := command.InspectArgs(dc)
	if err != nil {
		return domain.RunResult{}, err
	}

	cmd := domain.Command{
		Line:   withEnv(dc.Env, JoinArgs(argv)),
		Args:   argv,
		Dir:    dc.Cwd,
		Target: target,
	}
	return i.terminal.Dispatch(ctx, cmd)
}
