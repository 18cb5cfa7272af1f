package domain

import "encoding/json"

// DebugConfig is a Node launch configuration for a Jest run.
// Field names follow the launch.json schema so it can be written as-is.
type DebugConfig struct {
	Type                   string            `json:"type"`
	Request                string            `json:"request"`
	Name                   string            `json:"name"`
	Program                string            `json:"program,omitempty"`
	RuntimeExecutable      string            `json:"runtimeExecutable,omitempty"`
	RuntimeArgs            []string          `json:"runtimeArgs,omitempty"`
	Args                   []string          `json:"args"`
	Cwd                    string            `json:"cwd"`
	Console                string            `json:"console"`
	InternalConsoleOptions string            `json:"internalConsoleOptions"`
	Env                    map[string]string `json:"env,omitempty"`

	// Extra holds debugOptions keys that have no dedicated field
	Extra map[string]any `json:"-"`
}

type debugConfigAlias DebugConfig

// MarshalJSON writes the known fields and then the Extra keys on top
func (d DebugConfig) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(debugConfigAlias(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return data, nil
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k, v := range d.Extra {
		if _, known := fields[k]; !known {
			fields[k] = v
		}
	}
	return json.Marshal(fields)
}
