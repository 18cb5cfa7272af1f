package parser

import (
	"regexp"
	"strconv"
	"strings"

	"jtr/internal/domain"
)

var (
	ansiPattern  = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
	testsLine    = regexp.MustCompile(`(?m)^Tests:\s*(.+)$`)
	countPattern = regexp.MustCompile(`(\d+)\s+(passed|failed|skipped|todo|total)`)
)

// JestParser parses Jest's end-of-run summary
type JestParser struct{}

// NewJestParser creates a new JestParser
func NewJestParser() *JestParser {
	return &JestParser{}
}

// ParseTestCounts extracts case counts from the last "Tests:" summary line:
//
//	Tests:       1 failed, 2 skipped, 1 todo, 5 passed, 9 total
//
// Watch mode prints one summary per run, so the last one wins. Without a
// summary the exit status is counted as a single passed or failed case.
func (p *JestParser) ParseTestCounts(result domain.RunResult) domain.TestCounts {
	output := ansiPattern.ReplaceAllString(result.Output, "")
	output = strings.ReplaceAll(output, "\r", "")

	matches := testsLine.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return fallbackCounts(result)
	}

	var counts domain.TestCounts
	for _, m := range countPattern.FindAllStringSubmatch(matches[len(matches)-1][1], -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		switch m[2] {
		case "passed":
			counts.Passed = n
		case "failed":
			counts.Failed = n
		case "skipped":
			counts.Skipped = n
		case "todo":
			counts.Todo = n
		case "total":
			counts.Total = n
		}
		counts.Parsed = true
	}
	if !counts.Parsed {
		return fallbackCounts(result)
	}
	if counts.Total == 0 {
		counts.Total = counts.Passed + counts.Failed + counts.Skipped + counts.Todo
	}
	return counts
}

func fallbackCounts(result domain.RunResult) domain.TestCounts {
	if result.Detached {
		return domain.TestCounts{}
	}
	if result.Success() {
		return domain.TestCounts{Passed: 1, Total: 1}
	}
	return domain.TestCounts{Failed: 1, Total: 1}
}
