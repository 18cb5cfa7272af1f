package domain

// TargetKind selects what Jest is asked to run
type TargetKind string

const (
	TargetTest TargetKind = "test" // A single test (or describe group) in a file
	TargetFile TargetKind = "file" // Every test in a file
	TargetPath TargetKind = "path" // An arbitrary file or directory
)

// Target is the thing a command runs
type Target struct {
	Kind     TargetKind `json:"kind"`
	Path     string     `json:"path"`
	TestName string     `json:"test_name,omitempty"` // Regex-safe name passed to -t
}

// Command is a fully assembled Jest invocation
type Command struct {
	Line   string   `json:"line"` // Shell line, quoted for the current platform
	Args   []string `json:"args"` // Unquoted Jest arguments
	Dir    string   `json:"dir"`  // Working directory
	Target Target   `json:"target"`
}
