package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"jtr/internal/command"
	"jtr/internal/config"
	"jtr/internal/discovery"
	"jtr/internal/domain"
	"jtr/internal/execution"
	"jtr/internal/parser"
	"jtr/internal/storage"
	"jtr/internal/ui"
)

// ErrNoTestAtLine is returned by locate when the line is outside every test block
var ErrNoTestAtLine = errors.New("no test found at line")

// ExitError carries Jest's exit code out of a failed run
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("jest exited with code %d", e.Code)
}

// DispatcherFactory returns the dispatcher for the loaded config
type DispatcherFactory func(cfg *config.Config) execution.Dispatcher

// jestRunner dispatches commands and records the outcome as the previous run
type jestRunner struct {
	config    *config.Config
	dispatch  DispatcherFactory
	parser    parser.Parser
	storage   storage.Storage
	formatter *ui.Formatter
}

// Run prints cmd and, unless this is a dry run, dispatches it.
// A failed Jest run is reported as an *ExitError.
func (r *jestRunner) Run(ctx context.Context, cmd domain.Command) error {
	r.formatter.PrintCommand(cmd)
	if r.config.Flags.DryRun {
		return nil
	}

	slog.Debug("dispatching jest", "terminal", r.config.Terminal, "dir", cmd.Dir, "target", cmd.Target.Kind)
	result, err := r.dispatch(r.config).Dispatch(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to run jest: %w", err)
	}

	counts := r.parser.ParseTestCounts(result)
	if err := r.storage.Save(result, counts); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	r.formatter.PrintSummary(result, counts)
	if !result.Detached && result.ExitCode != 0 {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}

// targetResolver turns a file and a cursor line into a Jest target
type targetResolver struct {
	parser    *discovery.Parser
	formatter *ui.Formatter
}

// Resolve returns the test enclosing line in path. Line 0, or a line outside
// every test block, targets the whole file.
func (r *targetResolver) Resolve(path string, line int) (domain.Target, error) {
	path, err := absPath(path)
	if err != nil {
		return domain.Target{}, err
	}
	if line <= 0 {
		return command.FileTarget(path), nil
	}

	file, err := r.parser.ParseFile(path)
	if err != nil {
		return domain.Target{}, err
	}

	name, ok := discovery.FindFullTestName(line, file.Blocks())
	if !ok {
		r.formatter.PrintNoTest(path, line)
		return command.FileTarget(path), nil
	}

	slog.Debug("located test", "path", path, "line", line, "name", name)
	return command.TestTarget(path, discovery.NormalizeTestName(name)), nil
}

// runOptions returns the Jest options selected by flags
func runOptions(flags config.Flags) []string {
	var options []string
	if flags.UpdateSnapshots {
		options = append(options, command.OptionUpdateSnapshots)
	}
	if flags.Coverage {
		options = append(options, command.OptionCoverage)
	}
	if flags.Watch {
		options = append(options, command.OptionWatch)
	}
	return options
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, nil
}
