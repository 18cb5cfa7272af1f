package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"jtr/internal/command"
	"jtr/internal/config"
	"jtr/internal/domain"
	"jtr/internal/execution"
)

// DebugCommand handles the debug command
type DebugCommand struct {
	config   *config.Config
	resolver *targetResolver
	builder  *command.Builder
	dispatch DispatcherFactory
	out      io.Writer
}

// NewDebugCommand creates a new DebugCommand
func NewDebugCommand(
	cfg *config.Config,
	resolver *targetResolver,
	builder *command.Builder,
	dispatch DispatcherFactory,
	out io.Writer,
) *DebugCommand {
	return &DebugCommand{
		config:   cfg,
		resolver: resolver,
		builder:  builder,
		dispatch: dispatch,
		out:      out,
	}
}

// Execute runs the command
func (dc *DebugCommand) Execute(cmd *cobra.Command, args []string) error {
	target, err := dc.resolver.Resolve(args[0], dc.config.Flags.Line)
	if err != nil {
		return err
	}

	launch, err := dc.builder.DebugConfig(target)
	if err != nil {
		return err
	}

	switch {
	case dc.config.Flags.WriteLaunch != "":
		return dc.writeLaunch(dc.config.Flags.WriteLaunch, launch)
	case dc.config.Flags.Inspect:
		_, err := execution.NewInspector(dc.dispatch(dc.config)).Debug(cmd.Context(), launch, target)
		return err
	default:
		return printDebugConfig(dc.out, launch)
	}
}

// writeLaunch merges launch into the launch.json at path, creating it if needed
func (dc *DebugCommand) writeLaunch(path string, launch domain.DebugConfig) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	data, err := command.MergeLaunch(existing, launch)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	color.New(color.FgGreen).Fprintf(dc.out, "✓ Wrote %q to %s\n", launch.Name, path)
	return nil
}

func printDebugConfig(w io.Writer, launch domain.DebugConfig) error {
	data, err := json.MarshalIndent(launch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal debug config: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
