package ui

import "jtr/internal/domain"

// PickAction is what the user asked to do with the picked block
type PickAction int

const (
	PickNone  PickAction = iota // Quit without choosing
	PickRun                     // Run the selected test or describe group
	PickDebug                   // Print the debug configuration of the selection
	PickFile                    // Run the whole file
)

// Selection is the outcome of an interactive pick
type Selection struct {
	Action PickAction
	Path   []*domain.Block // Outermost to innermost, empty for PickFile
}

// Viewer lets the user pick a block of a test file interactively
type Viewer interface {
	Pick(file *domain.TestFile) (Selection, error)
}
