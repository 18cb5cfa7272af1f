package command

import (
	"bytes"
	"encoding/json"
	"fmt"

	"jtr/internal/config"
	"jtr/internal/domain"
)

// DebugConfigName is the launch configuration name
const DebugConfigName = "Debug Jest Tests"

// DebugConfig builds a Node launch configuration running target in band.
// debugOptions from the config override the defaults; an "args" option is
// kept as a prefix of the Jest arguments.
func (b *Builder) DebugConfig(target domain.Target) (domain.DebugConfig, error) {
	dc := domain.DebugConfig{
		Type:                   "node",
		Request:                "launch",
		Name:                   DebugConfigName,
		Cwd:                    b.config.GetProjectPath(),
		Console:                "integratedTerminal",
		InternalConsoleOptions: "neverOpen",
	}

	pnp := b.config.IsYarnPnp()
	if pnp {
		dc.RuntimeExecutable = "yarn"
	} else {
		dc.Program = b.config.GetJestBinPath()
	}

	if err := applyDebugOptions(&dc, b.config.DebugOptions); err != nil {
		return domain.DebugConfig{}, err
	}
	if dc.Program == "" && dc.RuntimeExecutable == "" {
		return domain.DebugConfig{}, fmt.Errorf("jest binary not found under %s: set jestPath", b.config.GetProjectPath())
	}

	args := append([]string(nil), dc.Args...)
	if pnp {
		args = append([]string{"jest"}, args...)
	}
	args = append(args, b.TestArgs(target, nil)...)
	dc.Args = appendUnique(args, OptionRunInBand)
	return dc, nil
}

// applyDebugOptions overlays user options. Keys matching a DebugConfig field
// replace it; any other key is carried in Extra.
func applyDebugOptions(dc *domain.DebugConfig, options map[string]any) error {
	if len(options) == 0 {
		return nil
	}

	known := map[string]any{}
	data, err := json.Marshal(dc)
	if err != nil {
		return fmt.Errorf("marshal debug config: %w", err)
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return fmt.Errorf("unmarshal debug config: %w", err)
	}

	for k, v := range options {
		known[k] = v
	}

	merged, err := json.Marshal(known)
	if err != nil {
		return fmt.Errorf("marshal debugOptions: %w", err)
	}
	var out domain.DebugConfig
	if err := json.Unmarshal(merged, &out); err != nil {
		return fmt.Errorf("debugOptions: %w", err)
	}

	for k, v := range options {
		if !isDebugField(k) {
			if out.Extra == nil {
				out.Extra = map[string]any{}
			}
			out.Extra[k] = v
		}
	}
	*dc = out
	return nil
}

var debugFields = map[string]bool{
	"type": true, "request": true, "name": true, "program": true,
	"runtimeExecutable": true, "runtimeArgs": true, "args": true, "cwd": true,
	"console": true, "internalConsoleOptions": true, "env": true,
}

func isDebugField(key string) bool {
	return debugFields[key]
}

func appendUnique(list []string, item string) []string {
	for _, v := range list {
		if v == item {
			return list
		}
	}
	return append(list, item)
}

// MarshalLaunch renders configurations as a launch.json document
func MarshalLaunch(configs ...domain.DebugConfig) ([]byte, error) {
	doc := struct {
		Version        string               `json:"version"`
		Configurations []domain.DebugConfig `json:"configurations"`
	}{Version: "0.2.0", Configurations: configs}
	return json.MarshalIndent(doc, "", "  ")
}

// MergeLaunch adds dc to an existing launch.json document, replacing the
// configuration with the same name. Other configurations and top-level keys
// are kept. An empty document is treated as a new file.
func MergeLaunch(existing []byte, dc domain.DebugConfig) ([]byte, error) {
	if len(bytes.TrimSpace(existing)) == 0 {
		return MarshalLaunch(dc)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(existing, &doc); err != nil {
		return nil, fmt.Errorf("parse launch.json: %w", err)
	}

	var configs []json.RawMessage
	if raw, ok := doc["configurations"]; ok {
		if err := json.Unmarshal(raw, &configs); err != nil {
			return nil, fmt.Errorf("parse launch.json configurations: %w", err)
		}
	}

	entry, err := json.Marshal(dc)
	if err != nil {
		return nil, fmt.Errorf("marshal debug config: %w", err)
	}

	replaced := false
	for i, raw := range configs {
		var named struct {
			Name string `json:"name"`
		}
		if json.Unmarshal(raw, &named) == nil && named.Name == dc.Name {
			configs[i] = entry
			replaced = true
		}
	}
	if !replaced {
		configs = append(configs, entry)
	}

	if doc["configurations"], err = json.Marshal(configs); err != nil {
		return nil, fmt.Errorf("marshal configurations: %w", err)
	}
	if _, ok := doc["version"]; !ok {
		doc["version"] = json.RawMessage(`"0.2.0"`)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// InspectArgs returns the argv that starts dc under the Node inspector.
// Configurations launched through a runtime executable (Yarn PnP) cannot be
// wrapped this way and return an error.
func InspectArgs(dc domain.DebugConfig) ([]string, error) {
	if dc.RuntimeExecutable != "" || dc.Program == "" {
		return nil, fmt.Errorf("cannot attach the inspector to %q: write a launch configuration instead", dc.RuntimeExecutable)
	}

	args := []string{"node", "--inspect-brk"}
	args = append(args, dc.RuntimeArgs...)
	args = append(args, config.NormalizePath(dc.Program))
	return append(args, dc.Args...), nil
}
