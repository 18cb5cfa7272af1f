package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "JESTRUNNER_"

// fileConfig mirrors config.schema.json. Pointers tell "unset" from zero values.
type fileConfig struct {
	JestCommand                    *string        `json:"jestCommand"`
	JestPath                       *string        `json:"jestPath"`
	ConfigPath                     *string        `json:"configPath"`
	ProjectPath                    *string        `json:"projectPath"`
	RunOptions                     []string       `json:"runOptions"`
	DebugOptions                   map[string]any `json:"debugOptions"`
	ChangeDirectoryToWorkspaceRoot *bool          `json:"changeDirectoryToWorkspaceRoot"`
	Terminal                       *string        `json:"terminal"`
	ExternalTerminal               []string       `json:"externalTerminal"`
	EnableYarnPnpSupport           *bool          `json:"enableYarnPnpSupport"`
	TestFilePatterns               []string       `json:"testFilePatterns"`
	PathsToIgnore                  []string       `json:"pathsToIgnore"`
	Workers                        *int           `json:"workers"`
}

// Load builds the config: defaults, then the project config file,
// then .env and JESTRUNNER_* variables, then flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if flags.ProjectPath != "" {
		cfg.ProjectPath = flags.ProjectPath
	}

	path, err := cfg.LoadFile()
	if err != nil {
		return nil, err
	}
	if path != "" {
		slog.Debug("loaded project config", "path", path)
	}

	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}

	cfg.ApplyFlags(flags)
	return cfg, nil
}

// LoadFile reads the first project config file found in the project root.
// Returns the path that was read, or "" when there is none.
func (c *Config) LoadFile() (string, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(c.ProjectPath, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("read config %s: %w", path, err)
		}
		if err := c.applyFileData(name, data); err != nil {
			return "", fmt.Errorf("config %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}

func (c *Config) applyFileData(name string, data []byte) error {
	raw := map[string]any{}
	switch filepath.Ext(name) {
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return fmt.Errorf("parse toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	}

	// Both decoders are normalized through JSON so the schema sees one shape
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalize config: %w", err)
	}
	if err := ValidateConfig(jsonData); err != nil {
		return err
	}

	var fc fileConfig
	if err := json.Unmarshal(jsonData, &fc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	c.applyFileConfig(fc)
	return nil
}

func (c *Config) applyFileConfig(fc fileConfig) {
	if fc.JestCommand != nil {
		c.JestCommand = *fc.JestCommand
	}
	if fc.JestPath != nil {
		c.JestPath = *fc.JestPath
	}
	if fc.ConfigPath != nil {
		c.ConfigPath = *fc.ConfigPath
	}
	if fc.ProjectPath != nil && *fc.ProjectPath != "" {
		c.ProjectPath = c.ResolveProjectPath(*fc.ProjectPath)
	}
	if fc.RunOptions != nil {
		c.RunOptions = fc.RunOptions
	}
	if fc.DebugOptions != nil {
		c.DebugOptions = fc.DebugOptions
	}
	if fc.ChangeDirectoryToWorkspaceRoot != nil {
		c.ChangeDirectoryToWorkspaceRoot = *fc.ChangeDirectoryToWorkspaceRoot
	}
	if fc.Terminal != nil {
		c.Terminal = *fc.Terminal
	}
	if fc.ExternalTerminal != nil {
		c.ExternalTerminal = fc.ExternalTerminal
	}
	if fc.EnableYarnPnpSupport != nil {
		c.EnableYarnPnpSupport = *fc.EnableYarnPnpSupport
	}
	if fc.TestFilePatterns != nil {
		c.TestFilePatterns = fc.TestFilePatterns
	}
	if fc.PathsToIgnore != nil {
		c.PathsToIgnore = fc.PathsToIgnore
	}
	if fc.Workers != nil {
		c.Workers = *fc.Workers
	}
}

// LoadEnv applies JESTRUNNER_* overrides. Values from the project's .env
// file are used unless the same variable is set in the process environment.
func (c *Config) LoadEnv() error {
	env := map[string]string{}

	envPath := filepath.Join(c.ProjectPath, ".env")
	values, err := godotenv.Read(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read %s: %w", envPath, err)
	}
	for k, v := range values {
		env[k] = v
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}

	return c.applyEnv(env)
}

func (c *Config) applyEnv(env map[string]string) error {
	lookup := func(key string) (string, bool) {
		v, ok := env[EnvPrefix+key]
		return v, ok && v != ""
	}

	if v, ok := lookup("JEST_COMMAND"); ok {
		c.JestCommand = v
	}
	if v, ok := lookup("JEST_PATH"); ok {
		c.JestPath = v
	}
	if v, ok := lookup("CONFIG_PATH"); ok {
		c.ConfigPath = v
	}
	if v, ok := lookup("RUN_OPTIONS"); ok {
		c.RunOptions = strings.Fields(v)
	}
	if v, ok := lookup("TERMINAL"); ok {
		if v != TerminalIntegrated && v != TerminalExternal {
			return fmt.Errorf("%sTERMINAL: unknown terminal %q", EnvPrefix, v)
		}
		c.Terminal = v
	}
	if v, ok := lookup("CHANGE_DIRECTORY_TO_WORKSPACE_ROOT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCHANGE_DIRECTORY_TO_WORKSPACE_ROOT: %w", EnvPrefix, err)
		}
		c.ChangeDirectoryToWorkspaceRoot = b
	}
	if v, ok := lookup("ENABLE_YARN_PNP_SUPPORT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sENABLE_YARN_PNP_SUPPORT: %w", EnvPrefix, err)
		}
		c.EnableYarnPnpSupport = b
	}
	if v, ok := lookup("WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%sWORKERS: invalid worker count %q", EnvPrefix, v)
		}
		c.Workers = n
	}
	return nil
}
