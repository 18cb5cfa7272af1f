package commands

import (
	"io"

	"github.com/spf13/cobra"
	"jtr/internal/command"
	"jtr/internal/config"
	"jtr/internal/discovery"
	"jtr/internal/ui"
)

// PickCommand handles the pick command
type PickCommand struct {
	config    *config.Config
	parser    *discovery.Parser
	builder   *command.Builder
	runner    *jestRunner
	newViewer func(line int) ui.Viewer
	out       io.Writer
}

// NewPickCommand creates a new PickCommand
func NewPickCommand(
	cfg *config.Config,
	parser *discovery.Parser,
	builder *command.Builder,
	runner *jestRunner,
	out io.Writer,
) *PickCommand {
	return &PickCommand{
		config:  cfg,
		parser:  parser,
		builder: builder,
		runner:  runner,
		newViewer: func(line int) ui.Viewer {
			return ui.NewTreePicker(line)
		},
		out: out,
	}
}

// Execute runs the command
func (pc *PickCommand) Execute(cmd *cobra.Command, args []string) error {
	path, err := absPath(args[0])
	if err != nil {
		return err
	}
	file, err := pc.parser.ParseFile(path)
	if err != nil {
		return err
	}

	selection, err := pc.newViewer(pc.config.Flags.Line).Pick(file)
	if err != nil {
		return err
	}

	options := runOptions(pc.config.Flags)
	switch selection.Action {
	case ui.PickRun:
		name := discovery.NormalizeTestName(discovery.JoinNames(selection.Path))
		return pc.runner.Run(cmd.Context(), pc.builder.Command(command.TestTarget(path, name), options))
	case ui.PickFile:
		return pc.runner.Run(cmd.Context(), pc.builder.Command(command.FileTarget(path), options))
	case ui.PickDebug:
		name := discovery.NormalizeTestName(discovery.JoinNames(selection.Path))
		launch, err := pc.builder.DebugConfig(command.TestTarget(path, name))
		if err != nil {
			return err
		}
		return printDebugConfig(pc.out, launch)
	}
	return nil
}
