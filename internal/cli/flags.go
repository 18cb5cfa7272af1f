package cli

import "jtr/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath:     f.ProjectPath,
		Line:            f.Line,
		NameFilter:      f.NameFilter,
		TestCases:       f.TestCases,
		UpdateSnapshots: f.UpdateSnapshots,
		Coverage:        f.Coverage,
		Watch:           f.Watch,
		External:        f.External,
		DryRun:          f.DryRun,
		Inspect:         f.Inspect,
		WriteLaunch:     f.WriteLaunch,
		Workers:         f.Workers,
		Verbose:         f.Verbose,
	}
}
