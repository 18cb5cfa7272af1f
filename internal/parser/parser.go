package parser

import "jtr/internal/domain"

// Parser reads test counts from runner output
type Parser interface {
	ParseTestCounts(result domain.RunResult) domain.TestCounts
}
