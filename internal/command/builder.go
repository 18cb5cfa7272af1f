package command

import (
	"path/filepath"
	"regexp"
	"strings"

	"jtr/internal/config"
	"jtr/internal/domain"
)

// Options Jest is started with by the run variants
const (
	OptionUpdateSnapshots = "-u"
	OptionCoverage        = "--coverage"
	OptionWatch           = "--watch"
	OptionRunInBand       = "--runInBand"
)

// pathMetaPattern matches characters Jest would read as regex syntax in a path pattern
var pathMetaPattern = regexp.MustCompile(`[\[\]()]`)

// Builder assembles Jest command lines and debug configurations
type Builder struct {
	config *config.Config
}

// NewBuilder creates a new Builder
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{config: cfg}
}

// TestArgs returns the unquoted Jest arguments for target:
// the path pattern, the config file, the -t filter and the options.
// Options are de-duplicated, per-invocation options before configured ones.
func (b *Builder) TestArgs(target domain.Target, options []string) []string {
	args := []string{EscapePathPattern(config.NormalizePath(target.Path))}

	if configPath := b.config.GetJestConfigPath(target.Path); configPath != "" {
		args = append(args, "-c", config.NormalizePath(configPath))
	}

	if target.Kind == domain.TargetTest && target.TestName != "" {
		args = append(args, "-t", target.TestName)
	}

	seen := make(map[string]bool)
	for _, list := range [][]string{options, b.config.RunOptions} {
		for _, opt := range list {
			if opt == "" || seen[opt] {
				continue
			}
			seen[opt] = true
			args = append(args, opt)
		}
	}
	return args
}

// Command builds the shell command for target
func (b *Builder) Command(target domain.Target, options []string) domain.Command {
	args := b.TestArgs(target, options)

	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = config.Quote(arg)
	}

	return domain.Command{
		Line:   strings.TrimSpace(b.config.GetJestCommand() + " " + strings.Join(quoted, " ")),
		Args:   args,
		Dir:    b.WorkDir(),
		Target: target,
	}
}

// WorkDir returns the directory commands run in. Empty means the current
// directory.
func (b *Builder) WorkDir() string {
	if b.config.ChangeDirectoryToWorkspaceRoot {
		return b.config.GetProjectPath()
	}
	return ""
}

// TestTarget returns a target for a single test. An empty name targets the file.
func TestTarget(path, testName string) domain.Target {
	if testName == "" {
		return FileTarget(path)
	}
	return domain.Target{Kind: domain.TargetTest, Path: path, TestName: testName}
}

// FileTarget returns a target for every test in a file
func FileTarget(path string) domain.Target {
	return domain.Target{Kind: domain.TargetFile, Path: path}
}

// PathTarget returns a target for an arbitrary file or directory
func PathTarget(path string) domain.Target {
	return domain.Target{Kind: domain.TargetPath, Path: filepath.Clean(path)}
}

// EscapePathPattern escapes the characters of p that Jest's path pattern
// would treat as regex groups or classes, e.g. Next.js "[id]" route folders.
func EscapePathPattern(p string) string {
	return pathMetaPattern.ReplaceAllString(p, `\$0`)
}
