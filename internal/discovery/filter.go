package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters test files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the files whose base name matches pattern.
// Patterns with wildcards ("*user.test.ts", "*payment*") are matched as
// globs, falling back to an in-order substring match of the pieces between
// the stars. Plain patterns are substring matches.
func (f *Filter) FilterByName(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}

	var filtered []string
	for _, file := range files {
		if matchName(filepath.Base(file), pattern) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	if ok, err := filepath.Match(pattern, name); err == nil && ok {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	rest := name
	matchedAny := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		matchedAny = true
	}
	return matchedAny
}
