package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"jtr/internal/cli"
	"jtr/internal/cli/commands"
	"jtr/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "jtr",
		Short: "Run or debug the Jest test under the cursor",
		Long: `Find the describe/test block enclosing a line of a JavaScript or TypeScript test file and run it with Jest, ` +
			`in this terminal, in a new terminal window, or under the Node inspector.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, os.Stdout)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exitErr *commands.ExitError
		if errors.As(err, &exitErr) {
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
