package domain

import "time"

// TestCounts holds test case counts read from Jest's summary
type TestCounts struct {
	Passed  int  `json:"passed"`
	Failed  int  `json:"failed"`
	Skipped int  `json:"skipped"`
	Todo    int  `json:"todo"`
	Total   int  `json:"total"`
	Parsed  bool `json:"parsed"` // False when no summary line was found
}

// RunResult represents the result of dispatching a command
type RunResult struct {
	Command  Command       // Command that was dispatched
	ExitCode int           // Process exit code, -1 when detached
	Detached bool          // True when handed to an external terminal
	Output   string        // Captured output (integrated terminal only)
	Duration time.Duration // Time taken to execute
}

// Success reports whether the run finished with a zero exit code
func (r RunResult) Success() bool {
	return !r.Detached && r.ExitCode == 0
}

// RunRecord is the persisted form of the previous run
type RunRecord struct {
	Command   Command    `json:"command"`
	ExitCode  int        `json:"exit_code"`
	Detached  bool       `json:"detached,omitempty"`
	Counts    TestCounts `json:"counts"`
	Duration  string     `json:"duration"`
	Timestamp string     `json:"timestamp"`
}
