package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"jtr/internal/config"
	"jtr/internal/discovery"
	"jtr/internal/ui"
)

// LocateCommand handles the locate command
type LocateCommand struct {
	config    *config.Config
	parser    *discovery.Parser
	formatter *ui.Formatter
}

// NewLocateCommand creates a new LocateCommand
func NewLocateCommand(cfg *config.Config, parser *discovery.Parser, formatter *ui.Formatter) *LocateCommand {
	return &LocateCommand{
		config:    cfg,
		parser:    parser,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *LocateCommand) Execute(cmd *cobra.Command, args []string) error {
	line := lc.config.Flags.Line
	if line <= 0 {
		return fmt.Errorf("--line must be a positive line number")
	}

	path, err := absPath(args[0])
	if err != nil {
		return err
	}
	file, err := lc.parser.ParseFile(path)
	if err != nil {
		return err
	}

	name, ok := discovery.FindFullTestName(line, file.Blocks())
	if !ok {
		return fmt.Errorf("%w %s:%d", ErrNoTestAtLine, args[0], line)
	}

	lc.formatter.PrintLocated(path, line, name, discovery.NormalizeTestName(name))
	return nil
}
