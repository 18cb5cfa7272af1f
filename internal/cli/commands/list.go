package commands

import (
	"io"

	"github.com/spf13/cobra"
	"jtr/internal/config"
	"jtr/internal/discovery"
	"jtr/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	parser    *discovery.Parser
	filter    *discovery.Filter
	formatter *ui.Formatter
	progress  io.Writer
}

// NewListCommand creates a new ListCommand. The progress bar of
// --test-cases is drawn on progress.
func NewListCommand(
	cfg *config.Config,
	parser *discovery.Parser,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	progress io.Writer,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		parser:    parser,
		filter:    filter,
		formatter: formatter,
		progress:  progress,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	root := lc.config.GetProjectPath()
	if len(args) > 0 {
		abs, err := absPath(args[0])
		if err != nil {
			return err
		}
		root = abs
	}

	scanner := discovery.NewScanner(lc.config.TestFilePatterns, lc.config.PathsToIgnore)
	tests, err := scanner.Scan(root)
	if err != nil {
		return err
	}

	tests = lc.filter.FilterByName(tests, lc.config.Flags.NameFilter)

	if len(tests) == 0 {
		lc.formatter.PrintWarning("No tests found")
		return nil
	}

	if !lc.config.Flags.TestCases {
		lc.formatter.PrintTestList(tests)
		return nil
	}

	progressBar := ui.NewProgressBar(len(tests), lc.progress)
	inventory := discovery.NewInventory(lc.parser, lc.config.Workers)
	entries, err := inventory.Collect(cmd.Context(), tests, func(ft discovery.FileTests) {
		progressBar.Done(ft.Err == nil)
	})
	progressBar.Finish()
	if err != nil {
		return err
	}

	lc.formatter.PrintTestTree(entries)
	return nil
}
