package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alessio/shellescape"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	ConfigPath  string // Jest config file, relative to the project

	// Jest invocation
	JestCommand          string
	JestPath             string
	RunOptions           []string
	DebugOptions         map[string]any
	EnableYarnPnpSupport bool

	// Dispatch settings
	ChangeDirectoryToWorkspaceRoot bool
	Terminal                       string
	ExternalTerminal               []string

	// Discovery settings
	TestFilePatterns []string
	PathsToIgnore    []string
	Workers          int

	// Output settings
	StateDir  string
	StateFile string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ProjectPath     string
	Line            int
	NameFilter      string
	TestCases       bool
	UpdateSnapshots bool
	Coverage        bool
	Watch           bool
	External        bool
	DryRun          bool
	Inspect         bool
	WriteLaunch     string
	Workers         int
	Verbose         bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:                    DefaultProjectPath,
		ChangeDirectoryToWorkspaceRoot: true,
		Terminal:                       DefaultTerminal,
		Workers:                        DefaultWorkers,
		StateDir:                       DefaultStateDir,
		StateFile:                      DefaultStateFile,
		DebugOptions:                   map[string]any{},
	}
	cfg.TestFilePatterns = append([]string(nil), DefaultTestFilePatterns...)
	cfg.PathsToIgnore = append([]string(nil), DefaultPathsToIgnore...)
	return cfg
}

// ApplyFlags overlays command-line flags on top of file and env settings
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.ProjectPath != "" {
		c.ProjectPath = flags.ProjectPath
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.External {
		c.Terminal = TerminalExternal
	}
}

// GetProjectPath returns the absolute project root
func (c *Config) GetProjectPath() string {
	if abs, err := filepath.Abs(c.ProjectPath); err == nil {
		return abs
	}
	return c.ProjectPath
}

// ResolveProjectPath resolves p against the project root unless it is absolute
func (c *Config) ResolveProjectPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.GetProjectPath(), p)
}

// GetStatePath returns the full path to the previous-run file
func (c *Config) GetStatePath() string {
	return filepath.Join(c.GetProjectPath(), c.StateDir, c.StateFile)
}

// GetJestBinPath returns the Jest entry point used by debug configurations.
// Empty when jestPath is unset and no local install is found.
func (c *Config) GetJestBinPath() string {
	if c.JestPath != "" {
		return c.ResolveProjectPath(c.JestPath)
	}
	for _, candidate := range JestBinCandidates {
		p := filepath.Join(c.GetProjectPath(), filepath.FromSlash(candidate))
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// IsYarnPnp reports whether Jest has to be started through yarn
func (c *Config) IsYarnPnp() bool {
	if !c.EnableYarnPnpSupport {
		return false
	}
	for _, name := range []string{".pnp.cjs", ".pnp.js"} {
		if fileExists(filepath.Join(c.GetProjectPath(), name)) {
			return true
		}
	}
	return false
}

// GetJestCommand returns the shell prefix that starts Jest
func (c *Config) GetJestCommand() string {
	if c.JestCommand != "" {
		return c.JestCommand
	}
	if c.IsYarnPnp() {
		return DefaultYarnPnpCommand
	}
	if bin := c.GetJestBinPath(); bin != "" {
		return "node " + Quote(NormalizePath(bin))
	}
	return DefaultNpxCommand
}

// GetJestConfigPath returns the Jest config for the given test file.
// A configured configPath wins; otherwise the nearest jest.config.* between
// the file's directory and the project root is used. Empty if none exists.
func (c *Config) GetJestConfigPath(testPath string) string {
	if c.ConfigPath != "" {
		return c.ResolveProjectPath(c.ConfigPath)
	}

	root := c.GetProjectPath()
	dir, err := filepath.Abs(testPath)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		for _, name := range JestConfigFileNames {
			candidate := filepath.Join(dir, name)
			if fileExists(candidate) {
				return candidate
			}
		}
		if dir == root || !strings.HasPrefix(dir, root) {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// GetExternalTerminal returns the argv prefix used to open a new terminal window
func (c *Config) GetExternalTerminal() []string {
	if len(c.ExternalTerminal) > 0 {
		return c.ExternalTerminal
	}
	switch runtime.GOOS {
	case "windows":
		return []string{"cmd", "/c", "start", "cmd", "/k"}
	case "darwin":
		return []string{"osascript", "-e"}
	default:
		return []string{"x-terminal-emulator", "-e", "sh", "-c"}
	}
}

// IsWindows reports whether commands are built for cmd.exe
func IsWindows() bool {
	return runtime.GOOS == "windows"
}

// NormalizePath converts Windows separators to forward slashes, which Jest expects
func NormalizePath(p string) string {
	if IsWindows() {
		return strings.ReplaceAll(p, `\`, "/")
	}
	return p
}

// Quote quotes s for the platform shell
func Quote(s string) string {
	if IsWindows() {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return shellescape.Quote(s)
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
