package commands

import (
	"github.com/spf13/cobra"
	"jtr/internal/command"
	"jtr/internal/config"
)

// RunCommand handles the run command
type RunCommand struct {
	config   *config.Config
	resolver *targetResolver
	builder  *command.Builder
	runner   *jestRunner
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, resolver *targetResolver, builder *command.Builder, runner *jestRunner) *RunCommand {
	return &RunCommand{
		config:   cfg,
		resolver: resolver,
		builder:  builder,
		runner:   runner,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	target, err := rc.resolver.Resolve(args[0], rc.config.Flags.Line)
	if err != nil {
		return err
	}

	jestCmd := rc.builder.Command(target, runOptions(rc.config.Flags))
	return rc.runner.Run(cmd.Context(), jestCmd)
}

// RunPathCommand handles the run-path command
type RunPathCommand struct {
	config  *config.Config
	builder *command.Builder
	runner  *jestRunner
}

// NewRunPathCommand creates a new RunPathCommand
func NewRunPathCommand(cfg *config.Config, builder *command.Builder, runner *jestRunner) *RunPathCommand {
	return &RunPathCommand{
		config:  cfg,
		builder: builder,
		runner:  runner,
	}
}

// Execute runs the command
func (rc *RunPathCommand) Execute(cmd *cobra.Command, args []string) error {
	path, err := absPath(args[0])
	if err != nil {
		return err
	}

	jestCmd := rc.builder.Command(command.PathTarget(path), runOptions(rc.config.Flags))
	return rc.runner.Run(cmd.Context(), jestCmd)
}
