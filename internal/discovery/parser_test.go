package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"jtr/internal/domain"
)

// formatTree renders a block tree one block per line, indented by depth
func formatTree(blocks []*domain.Block) string {
	var sb strings.Builder
	var walk func(blocks []*domain.Block, depth int)
	walk = func(blocks []*domain.Block, depth int) {
		for _, b := range blocks {
			fmt.Fprintf(&sb, "%s%s %q %d-%d\n", strings.Repeat("  ", depth), b.Kind, b.Name, b.Start, b.End)
			walk(b.Children, depth+1)
		}
	}
	walk(blocks, 0)
	return sb.String()
}

func TestParser_Txtar(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("failed to find txtar files: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no txtar files found")
	}

	parser := NewParser()
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatalf("failed to parse %s: %v", file, err)
			}

			sections := make(map[string]string)
			var input string
			for _, f := range ar.Files {
				sections[f.Name] = string(f.Data)
				if input == "" && strings.HasPrefix(f.Name, "input.") {
					input = f.Name
				}
			}
			if input == "" {
				t.Fatalf("%s has no input.* section", file)
			}

			testFile := parser.Parse(input, sections[input])

			if diff := cmp.Diff(strings.TrimSpace(sections["tree"]), strings.TrimSpace(formatTree(testFile.Blocks()))); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}

			for _, line := range strings.Split(strings.TrimSpace(sections["locate"]), "\n") {
				if line == "" {
					continue
				}
				lineNo, want, ok := strings.Cut(line, " => ")
				if !ok {
					t.Fatalf("bad locate line %q", line)
				}
				n, err := strconv.Atoi(lineNo)
				if err != nil {
					t.Fatalf("bad line number in %q: %v", line, err)
				}

				got, found := FindFullTestName(n, testFile.Blocks())
				if !found {
					got = "<none>"
				}
				if got != want {
					t.Errorf("line %d: expected %q, got %q", n, want, got)
				}
			}
		})
	}
}

func TestParser_Names(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{name: "single quotes", src: `test('adds', () => {})`, expected: "adds"},
		{name: "escaped quote", src: `test('it\'s fine', () => {})`, expected: "it's fine"},
		{name: "template literal", src: "it(`renders ${name}`, () => {})", expected: "renders ${name}"},
		{name: "class name", src: `describe(UserService.name, () => {})`, expected: "UserService"},
		{name: "prototype method name", src: `describe(UserService.prototype.save.name, () => {})`, expected: "save"},
		{name: "variable", src: `describe(suiteName, () => {})`, expected: "${suiteName}"},
		{name: "call expression", src: `test(getName('x', 1), () => {})`, expected: "${getName('x', 1)}"},
		{name: "fdescribe", src: `fdescribe('focused', () => {})`, expected: "focused"},
		{name: "concurrent only", src: `test.concurrent.only('fast', async () => {})`, expected: "fast"},
		{name: "each with template table", src: "test.each`\na|b\n${1}|${2}\n`('sum $a', ({a}) => {})", expected: "sum $a"},
		{name: "no arguments", src: `test()`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := parser.Parse("x.test.js", tt.src).Blocks()
			if len(blocks) != 1 {
				t.Fatalf("expected 1 block, got %d:\n%s", len(blocks), formatTree(blocks))
			}
			if blocks[0].Name != tt.expected {
				t.Errorf("expected name %q, got %q", tt.expected, blocks[0].Name)
			}
		})
	}
}

func TestParser_IgnoresNonJestCalls(t *testing.T) {
	parser := NewParser()
	src := `
const re = /test\(/;
if (pattern.test(value)) {}
helpers.describe('not jest', () => {});
const describe = 'x';
`
	if blocks := parser.Parse("x.test.js", src).Blocks(); len(blocks) != 0 {
		t.Errorf("expected no blocks, got:\n%s", formatTree(blocks))
	}
}

func TestParser_Kinds(t *testing.T) {
	parser := NewParser()
	src := "describe('a', () => {\n  it('b', () => {});\n});\n"
	blocks := parser.Parse("x.test.js", src).Blocks()

	if len(blocks) != 1 || blocks[0].Kind != domain.KindDescribe {
		t.Fatalf("expected one describe block, got:\n%s", formatTree(blocks))
	}
	if len(blocks[0].Children) != 1 || blocks[0].Children[0].Kind != domain.KindTest {
		t.Fatalf("expected one test child, got:\n%s", formatTree(blocks))
	}
	if blocks[0].CountTests() != 1 {
		t.Errorf("expected 1 test, got %d", blocks[0].CountTests())
	}
}

func TestParser_ParseFile(t *testing.T) {
	parser := NewParser()

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "user.test.js")
		if err := os.WriteFile(path, []byte("test('x', () => {});\n"), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
		file, err := parser.ParseFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if file.Path != path {
			t.Errorf("expected path %s, got %s", path, file.Path)
		}
		if len(file.Blocks()) != 1 {
			t.Errorf("expected 1 block, got %d", len(file.Blocks()))
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		if _, err := parser.ParseFile("/non/existent/file.test.js"); err == nil {
			t.Error("expected error for non-existent file")
		}
	})
}
