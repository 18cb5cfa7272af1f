package commands

import (
	"io"
	"log/slog"
	"os"

	"jtr/internal/cli"
	"jtr/internal/command"
	"jtr/internal/config"
	"jtr/internal/discovery"
	"jtr/internal/execution"
	"jtr/internal/parser"
	"jtr/internal/storage"
	"jtr/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Locate  *LocateCommand
	Run     *RunCommand
	RunPath *RunPathCommand
	Debug   *DebugCommand
	Rerun   *RerunCommand
	List    *ListCommand
	Pick    *PickCommand
}

// NewCommands creates all commands with dependencies. cfg is reloaded in
// place before each command runs, so the dependencies see the final values.
func NewCommands(cfg *config.Config, out io.Writer) *Commands {
	// Initialize dependencies
	testFileParser := discovery.NewParser()
	filter := discovery.NewFilter()
	builder := command.NewBuilder(cfg)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, out)
	resolver := &targetResolver{parser: testFileParser, formatter: formatter}
	dispatch := func(cfg *config.Config) execution.Dispatcher {
		return execution.NewDispatcher(cfg, out)
	}
	runner := &jestRunner{
		config:    cfg,
		dispatch:  dispatch,
		parser:    parser.NewJestParser(),
		storage:   jsonStorage,
		formatter: formatter,
	}

	return &Commands{
		Locate:  NewLocateCommand(cfg, testFileParser, formatter),
		Run:     NewRunCommand(cfg, resolver, builder, runner),
		RunPath: NewRunPathCommand(cfg, builder, runner),
		Debug:   NewDebugCommand(cfg, resolver, builder, dispatch, out),
		Rerun:   NewRerunCommand(jsonStorage, formatter, runner),
		List:    NewListCommand(cfg, testFileParser, filter, formatter, os.Stderr),
		Pick:    NewPickCommand(cfg, testFileParser, builder, runner, out),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "p", "", "Project root holding package.json and the Jest config (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print debug traces to stderr")

	// Update config with flags after parsing
	load := func(cmd *cobra.Command, args []string) error {
		if flags.Verbose {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		return nil
	}

	// Locate command
	locateCmd := &cobra.Command{
		Use:     "locate <file>",
		Short:   "Print the full name of the test at a line",
		Long:    "Find the describe/test block enclosing --line and print its full name and the -t pattern Jest is given",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Locate.Execute,
		PreRunE: load,
	}
	locateCmd.Flags().IntVarP(&flags.Line, "line", "l", 0, "1-based line of the cursor")
	_ = locateCmd.MarkFlagRequired("line")
	rootCmd.AddCommand(locateCmd)

	// Run command
	runCmd := &cobra.Command{
		Use:     "run <file>",
		Short:   "Run the test at a line, or the whole file",
		Long:    "Run the test enclosing --line with Jest. Without --line, or when the line is outside every test, the whole file is run",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Run.Execute,
		PreRunE: load,
	}
	runCmd.Flags().IntVarP(&flags.Line, "line", "l", 0, "1-based line of the cursor")
	addRunFlags(runCmd, flags)
	rootCmd.AddCommand(runCmd)

	// Run-path command
	runPathCmd := &cobra.Command{
		Use:     "run-path <path>",
		Short:   "Run every test under a file or directory",
		Args:    cobra.ExactArgs(1),
		RunE:    c.RunPath.Execute,
		PreRunE: load,
	}
	addRunFlags(runPathCmd, flags)
	rootCmd.AddCommand(runPathCmd)

	// Debug command
	debugCmd := &cobra.Command{
		Use:   "debug <file>",
		Short: "Debug the test at a line",
		Long: "Build a Node launch configuration for the test enclosing --line. " +
			"By default it is printed; --write merges it into a launch.json and --inspect starts it under node --inspect-brk",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Debug.Execute,
		PreRunE: load,
	}
	debugCmd.Flags().IntVarP(&flags.Line, "line", "l", 0, "1-based line of the cursor")
	debugCmd.Flags().BoolVar(&flags.Inspect, "inspect", false, "Start Jest under node --inspect-brk")
	debugCmd.Flags().StringVarP(&flags.WriteLaunch, "write", "w", "", "Merge the configuration into this launch.json")
	debugCmd.MarkFlagsMutuallyExclusive("inspect", "write")
	rootCmd.AddCommand(debugCmd)

	// Rerun command
	rerunCmd := &cobra.Command{
		Use:     "rerun",
		Short:   "Run the previous command again",
		Long:    "Replay the command saved by the last run, run-path, rerun or pick",
		Args:    cobra.NoArgs,
		RunE:    c.Rerun.Execute,
		PreRunE: load,
	}
	rerunCmd.Flags().BoolVar(&flags.External, "external", false, "Run in an external terminal window")
	rerunCmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Print the command without running it")
	rootCmd.AddCommand(rerunCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list [path]",
		Short:   "List discovered tests",
		Long:    "Scan and list Jest test files without executing them",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.List.Execute,
		PreRunE: load,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g., '*.spec.ts' or '*user*')")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List the describe/test blocks of each file")
	listCmd.Flags().IntVar(&flags.Workers, "workers", 0, "Number of files parsed in parallel")
	rootCmd.AddCommand(listCmd)

	// Pick command
	pickCmd := &cobra.Command{
		Use:     "pick <file>",
		Short:   "Pick a test interactively",
		Long:    "Browse the describe/test blocks of a file and run or debug the selected one",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Pick.Execute,
		PreRunE: load,
	}
	pickCmd.Flags().IntVarP(&flags.Line, "line", "l", 0, "Start with the cursor on the test at this line")
	addRunFlags(pickCmd, flags)
	rootCmd.AddCommand(pickCmd)
}

func addRunFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().BoolVarP(&flags.UpdateSnapshots, "update-snapshots", "u", false, "Re-record every snapshot that fails")
	cmd.Flags().BoolVar(&flags.Coverage, "coverage", false, "Collect coverage")
	cmd.Flags().BoolVar(&flags.Watch, "watch", false, "Watch files for changes and rerun")
	cmd.Flags().BoolVar(&flags.External, "external", false, "Run in an external terminal window")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Print the command without running it")
}
