package ui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"jtr/internal/config"
	"jtr/internal/discovery"
	"jtr/internal/domain"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	gray   = color.New(color.FgHiBlack)
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(cfg *config.Config, out io.Writer) *Formatter {
	return &Formatter{
		config: cfg,
		out:    out,
	}
}

// PrintLocated prints the test found at path:line and the pattern passed to -t
func (f *Formatter) PrintLocated(path string, line int, name, pattern string) {
	fmt.Fprintf(f.out, "%s:%d\n", f.relPath(path), line)
	fmt.Fprintf(f.out, "  %s %s\n", cyan.Sprint("name:   "), yellow.Sprint(name))
	fmt.Fprintf(f.out, "  %s %s\n", cyan.Sprint("pattern:"), pattern)
}

// PrintNoTest reports that line is outside every test block
func (f *Formatter) PrintNoTest(path string, line int) {
	yellow.Fprintf(f.out, "No test at %s:%d, running the whole file\n", f.relPath(path), line)
}

// PrintWarning prints a yellow notice
func (f *Formatter) PrintWarning(format string, args ...any) {
	yellow.Fprintf(f.out, format+"\n", args...)
}

// PrintCommand prints a command line the way it would be typed
func (f *Formatter) PrintCommand(cmd domain.Command) {
	if cmd.Dir != "" {
		gray.Fprintf(f.out, "# in %s\n", cmd.Dir)
	}
	fmt.Fprintf(f.out, "%s %s\n", green.Sprint("$"), cmd.Line)
}

// PrintSummary prints the outcome of a run
func (f *Formatter) PrintSummary(result domain.RunResult, counts domain.TestCounts) {
	fmt.Fprintln(f.out)
	if result.Detached {
		cyan.Fprintln(f.out, "Command sent to an external terminal")
		return
	}

	if counts.Parsed {
		fmt.Fprintf(f.out, "%s %s, %s, %s, %s, %d total\n",
			cyan.Sprint("Tests:"),
			green.Sprintf("%d passed", counts.Passed),
			red.Sprintf("%d failed", counts.Failed),
			yellow.Sprintf("%d skipped", counts.Skipped),
			yellow.Sprintf("%d todo", counts.Todo),
			counts.Total,
		)
	}

	if result.Success() {
		green.Fprintf(f.out, "✓ Jest exited successfully in %.2fs\n", result.Duration.Seconds())
	} else {
		red.Fprintf(f.out, "✗ Jest exited with code %d after %.2fs\n", result.ExitCode, result.Duration.Seconds())
	}
}

// PrintRecord prints the previous run as stored on disk
func (f *Formatter) PrintRecord(rec *domain.RunRecord) {
	fmt.Fprintf(f.out, "%s %s\n", cyan.Sprint("Last run:"), rec.Timestamp)
	if rec.Detached {
		return
	}
	status := green.Sprint("passed")
	if rec.ExitCode != 0 {
		status = red.Sprintf("failed (exit %d)", rec.ExitCode)
	}
	fmt.Fprintf(f.out, "%s %s in %s\n", cyan.Sprint("Result:"), status, rec.Duration)
}

// PrintTestList prints a list of test files
func (f *Formatter) PrintTestList(files []string) {
	green.Fprintf(f.out, "Found %d test file(s):\n\n", len(files))
	for i, file := range files {
		connector := "├── "
		if i == len(files)-1 {
			connector = "└── "
		}
		fmt.Fprintf(f.out, "%s%s\n", connector, cyan.Sprint(f.relPath(file)))
	}
}

// PrintTestTree prints every file with its describe/test blocks as a tree
func (f *Formatter) PrintTestTree(entries []discovery.FileTests) {
	total := 0
	for _, e := range entries {
		if e.File != nil {
			total += e.File.Root.CountTests()
		}
	}
	green.Fprintf(f.out, "Found %d test(s) in %d file(s):\n\n", total, len(entries))

	for i, e := range entries {
		last := i == len(entries)-1
		connector, prefix := "├── ", "│   "
		if last {
			connector, prefix = "└── ", "    "
		}
		fmt.Fprintf(f.out, "%s%s\n", connector, cyan.Sprint(f.relPath(e.Path)))

		switch {
		case e.Err != nil:
			fmt.Fprintf(f.out, "%s└── %s\n", prefix, red.Sprintf("(unreadable: %v)", e.Err))
		case len(e.File.Blocks()) == 0:
			fmt.Fprintf(f.out, "%s└── %s\n", prefix, red.Sprint("(no tests found)"))
		default:
			f.printBlocks(e.File.Blocks(), prefix)
		}

		if !last {
			fmt.Fprintln(f.out)
		}
	}
}

func (f *Formatter) printBlocks(blocks []*domain.Block, prefix string) {
	for i, b := range blocks {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(blocks)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}

		label := yellow.Sprint(b.Name)
		if b.Kind == domain.KindDescribe {
			label = b.Name
		}
		fmt.Fprintf(f.out, "%s%s%s %s\n", prefix, connector, label, gray.Sprintf(":%d", b.Start))

		f.printBlocks(b.Children, childPrefix)
	}
}

// relPath returns path relative to the project for display
func (f *Formatter) relPath(path string) string {
	rel, err := filepath.Rel(f.config.GetProjectPath(), path)
	if err != nil || filepath.IsAbs(rel) || len(rel) >= 2 && rel[:2] == ".." {
		return path
	}
	return filepath.ToSlash(rel)
}
