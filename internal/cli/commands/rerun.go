package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"jtr/internal/storage"
	"jtr/internal/ui"
)

// RerunCommand handles the rerun command
type RerunCommand struct {
	storage   storage.Storage
	formatter *ui.Formatter
	runner    *jestRunner
}

// NewRerunCommand creates a new RerunCommand
func NewRerunCommand(st storage.Storage, formatter *ui.Formatter, runner *jestRunner) *RerunCommand {
	return &RerunCommand{
		storage:   st,
		formatter: formatter,
		runner:    runner,
	}
}

// Execute runs the command
func (rc *RerunCommand) Execute(cmd *cobra.Command, args []string) error {
	record, err := rc.storage.Load()
	if errors.Is(err, storage.ErrNoPreviousRun) {
		rc.formatter.PrintWarning("Nothing to rerun yet: use `jtr run` first")
		return nil
	}
	if err != nil {
		return err
	}

	rc.formatter.PrintRecord(record)
	return rc.runner.Run(cmd.Context(), record.Command)
}
