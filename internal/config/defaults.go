package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTerminal is the terminal commands are dispatched to
	DefaultTerminal = TerminalIntegrated
	// DefaultStateDir is where the previous run is stored, relative to the project
	DefaultStateDir = ".jtr"
	// DefaultStateFile is the file name of the stored previous run
	DefaultStateFile = "last-run.json"
	// DefaultWorkers is the default number of files parsed in parallel
	DefaultWorkers = 4
	// DefaultNpxCommand runs the project-local Jest when no binary is found
	DefaultNpxCommand = "npx --no-install jest"
	// DefaultYarnPnpCommand runs Jest in Yarn Plug'n'Play projects
	DefaultYarnPnpCommand = "yarn jest"
)

const (
	TerminalIntegrated = "integrated"
	TerminalExternal   = "external"
)

// ConfigFileNames are the project config files, in lookup order
var ConfigFileNames = []string{
	".jestrunner.yaml",
	".jestrunner.yml",
	".jestrunner.toml",
}

// JestConfigFileNames are searched from a test file's directory up to the project root
var JestConfigFileNames = []string{
	"jest.config.js",
	"jest.config.ts",
	"jest.config.mjs",
	"jest.config.cjs",
	"jest.config.json",
}

// JestBinCandidates are tried, relative to the project, when jestPath is unset
var JestBinCandidates = []string{
	"node_modules/.bin/jest",
	"node_modules/jest/bin/jest.js",
}

// DefaultTestFilePatterns match Jest's default testMatch
var DefaultTestFilePatterns = []string{
	"*.test.js", "*.test.jsx", "*.test.ts", "*.test.tsx", "*.test.mjs", "*.test.cjs",
	"*.spec.js", "*.spec.jsx", "*.spec.ts", "*.spec.tsx", "*.spec.mjs", "*.spec.cjs",
	"__tests__/*.js", "__tests__/*.jsx", "__tests__/*.ts", "__tests__/*.tsx",
}

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"node_modules",
	"dist",
	"build",
	"coverage",
	"out",
}
