package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"jtr/internal/discovery"
	"jtr/internal/domain"
)

const pickerSource = `describe("Foo", () => {
  test("bar", () => {
    expect(1).toBe(1);
  });
  test("baz", () => {});
});
`

func pickerFile() *domain.TestFile {
	return discovery.NewParser().Parse("a.test.js", pickerSource)
}

func TestBuildTree(t *testing.T) {
	tree, current := buildTree(pickerFile(), 3)

	children := tree.GetRoot().GetChildren()
	if len(children) != 1 || len(children[0].GetChildren()) != 2 {
		t.Fatalf("unexpected tree shape")
	}

	path, ok := nodePath(current)
	if !ok {
		t.Fatal("expected current node to reference a block path")
	}
	if got := discovery.JoinNames(path); got != "Foo bar" {
		t.Errorf("expected cursor on %q, got %q", "Foo bar", got)
	}
}

func TestBuildTree_DefaultsToFirstBlock(t *testing.T) {
	_, current := buildTree(pickerFile(), 0)

	path, _ := nodePath(current)
	if got := discovery.JoinNames(path); got != "Foo" {
		t.Errorf("expected cursor on %q, got %q", "Foo", got)
	}
}

func TestSelectionForKey(t *testing.T) {
	tree, current := buildTree(pickerFile(), 5)

	tests := []struct {
		name   string
		event  *tcell.EventKey
		node   *tview.TreeNode
		action PickAction
		ok     bool
	}{
		{name: "enter runs", event: tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), node: current, action: PickRun, ok: true},
		{name: "d debugs", event: tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), node: current, action: PickDebug, ok: true},
		{name: "f runs file", event: tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone), node: current, action: PickFile, ok: true},
		{name: "other keys pass through", event: tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), node: current},
		{name: "root is not selectable", event: tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), node: tree.GetRoot()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, ok := selectionForKey(tt.event, tt.node)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if sel.Action != tt.action {
				t.Errorf("expected action %d, got %d", tt.action, sel.Action)
			}
			if tt.action == PickRun || tt.action == PickDebug {
				if got := discovery.JoinNames(sel.Path); got != "Foo baz" {
					t.Errorf("expected selection %q, got %q", "Foo baz", got)
				}
			}
		})
	}
}
