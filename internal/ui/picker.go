package ui

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"jtr/internal/discovery"
	"jtr/internal/domain"
)

// TreePicker shows a file's describe/test blocks in a tview tree
type TreePicker struct {
	initialLine int
}

// NewTreePicker creates a picker whose cursor starts on the innermost block
// containing line (0 starts at the top)
func NewTreePicker(line int) *TreePicker {
	return &TreePicker{initialLine: line}
}

// Pick runs the TUI until the user chooses an action or quits
func (p *TreePicker) Pick(file *domain.TestFile) (Selection, error) {
	if len(file.Blocks()) == 0 {
		return Selection{}, fmt.Errorf("no tests found in %s", file.Path)
	}

	app := tview.NewApplication()
	tree, current := buildTree(file, p.initialLine)
	tree.SetCurrentNode(current)

	var selection Selection
	tree.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC || event.Key() == tcell.KeyEsc || event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		if sel, ok := selectionForKey(event, tree.GetCurrentNode()); ok {
			selection = sel
			app.Stop()
			return nil
		}
		return event
	})

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(" ↑↓ to navigate | [yellow]Enter[white] run | [yellow]d[white] debug config | [yellow]f[white] run file | q to exit ")

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tree, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(tree).Run(); err != nil {
		return Selection{}, fmt.Errorf("failed to run TUI: %w", err)
	}
	return selection, nil
}

// buildTree mirrors the block tree. Each node references its block path.
// Returns the node the cursor should start on.
func buildTree(file *domain.TestFile, line int) (*tview.TreeView, *tview.TreeNode) {
	root := tview.NewTreeNode(filepath.Base(file.Path)).
		SetColor(tcell.ColorAqua).
		SetSelectable(false)

	var target *domain.Block
	if path := discovery.FindBlockPath(line, file.Blocks()); len(path) > 0 {
		target = path[len(path)-1]
	}

	var current *tview.TreeNode
	var add func(parent *tview.TreeNode, blocks []*domain.Block, path []*domain.Block)
	add = func(parent *tview.TreeNode, blocks []*domain.Block, path []*domain.Block) {
		for _, b := range blocks {
			blockPath := append(append([]*domain.Block(nil), path...), b)

			node := tview.NewTreeNode(fmt.Sprintf("%s  :%d-%d", tview.Escape(b.Name), b.Start, b.End)).
				SetReference(blockPath)
			if b.Kind == domain.KindTest {
				node.SetColor(tcell.ColorYellow)
			}
			parent.AddChild(node)

			if current == nil || b == target {
				current = node
			}
			add(node, b.Children, blockPath)
		}
	}
	add(root, file.Blocks(), nil)

	return tview.NewTreeView().SetRoot(root), current
}

// selectionForKey maps a key press on node to a Selection
func selectionForKey(event *tcell.EventKey, node *tview.TreeNode) (Selection, bool) {
	if event.Key() == tcell.KeyRune && event.Rune() == 'f' {
		return Selection{Action: PickFile}, true
	}

	path, _ := nodePath(node)
	if len(path) == 0 {
		return Selection{}, false
	}

	switch {
	case event.Key() == tcell.KeyEnter:
		return Selection{Action: PickRun, Path: path}, true
	case event.Key() == tcell.KeyRune && event.Rune() == 'd':
		return Selection{Action: PickDebug, Path: path}, true
	}
	return Selection{}, false
}

func nodePath(node *tview.TreeNode) ([]*domain.Block, bool) {
	if node == nil {
		return nil, false
	}
	path, ok := node.GetReference().([]*domain.Block)
	return path, ok
}
