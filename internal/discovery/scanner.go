package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner scans for test files in a directory
type Scanner struct {
	skipDirs map[string]bool
	patterns []string
}

// NewScanner creates a new Scanner matching the given file patterns and
// skipping the given directory names. A pattern containing a slash is
// matched against the file's trailing path components, so "__tests__/*.ts"
// matches any .ts file directly inside a __tests__ directory.
func NewScanner(patterns, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, patterns: patterns}
}

// Scan finds all test files under root. A root that is a file is returned
// as-is when it matches.
func (s *Scanner) Scan(root string) ([]string, error) {
	var testFiles []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		if s.IsTestFile(root) {
			return []string{root}, nil
		}
		return nil, fmt.Errorf("not a test file: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if s.IsTestFile(path) {
			testFiles = append(testFiles, path)
		}
		return nil
	})

	return testFiles, err
}

// IsTestFile reports whether path matches one of the scanner's patterns
func (s *Scanner) IsTestFile(path string) bool {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for _, pattern := range s.patterns {
		depth := strings.Count(pattern, "/") + 1
		if depth > len(parts) {
			continue
		}
		tail := strings.Join(parts[len(parts)-depth:], "/")
		if ok, err := filepath.Match(pattern, tail); err == nil && ok {
			return true
		}
	}
	return false
}
