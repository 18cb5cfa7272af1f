package discovery

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jtr/internal/domain"
)

func block(kind domain.BlockKind, name string, start, end int, children ...*domain.Block) *domain.Block {
	return &domain.Block{Kind: kind, Name: name, Start: start, End: end, Children: children}
}

func TestFindFullTestName(t *testing.T) {
	blocks := []*domain.Block{
		block(domain.KindDescribe, "Foo", 1, 10,
			block(domain.KindTest, "bar", 3, 5),
		),
	}

	tests := []struct {
		name     string
		line     int
		expected string
		found    bool
	}{
		{name: "inside nested test", line: 4, expected: "Foo bar", found: true},
		{name: "first line of nested test", line: 3, expected: "Foo bar", found: true},
		{name: "last line of nested test", line: 5, expected: "Foo bar", found: true},
		{name: "inside describe only", line: 8, expected: "Foo", found: true},
		{name: "first line of describe", line: 1, expected: "Foo", found: true},
		{name: "outside all blocks", line: 12, found: false},
		{name: "line zero", line: 0, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindFullTestName(tt.line, blocks)
			if found != tt.found {
				t.Fatalf("expected found=%v, got %v (%q)", tt.found, found, got)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFindFullTestName_BetweenSiblings(t *testing.T) {
	blocks := []*domain.Block{
		block(domain.KindDescribe, "A", 1, 4, block(domain.KindTest, "a1", 2, 3)),
		block(domain.KindDescribe, "B", 8, 12, block(domain.KindTest, "b1", 9, 11)),
	}

	for line := 5; line <= 7; line++ {
		if got, found := FindFullTestName(line, blocks); found {
			t.Errorf("line %d: expected no match, got %q", line, got)
		}
	}
}

func TestFindFullTestName_LeafRanges(t *testing.T) {
	blocks := []*domain.Block{
		block(domain.KindDescribe, "outer", 1, 30,
			block(domain.KindDescribe, "inner", 2, 20,
				block(domain.KindTest, "first", 3, 8),
				block(domain.KindTest, "second", 10, 18),
			),
			block(domain.KindTest, "last", 22, 29),
		),
	}

	expectations := map[int]string{}
	for line := 3; line <= 8; line++ {
		expectations[line] = "outer inner first"
	}
	for line := 10; line <= 18; line++ {
		expectations[line] = "outer inner second"
	}
	for line := 22; line <= 29; line++ {
		expectations[line] = "outer last"
	}
	expectations[2] = "outer inner"
	expectations[9] = "outer inner"
	expectations[19] = "outer inner"
	expectations[21] = "outer"
	expectations[30] = "outer"

	for line, expected := range expectations {
		got, found := FindFullTestName(line, blocks)
		if !found || got != expected {
			t.Errorf("line %d: expected %q, got %q (found=%v)", line, expected, got, found)
		}
	}
}

func TestFindFullTestName_OverlappingSiblingsFirstWins(t *testing.T) {
	blocks := []*domain.Block{
		block(domain.KindTest, "first", 1, 10),
		block(domain.KindTest, "second", 5, 15),
	}

	if got, _ := FindFullTestName(7, blocks); got != "first" {
		t.Errorf("expected first structural match, got %q", got)
	}
	if got, _ := FindFullTestName(12, blocks); got != "second" {
		t.Errorf("expected second, got %q", got)
	}
}

func TestFindFullTestName_Idempotent(t *testing.T) {
	blocks := NewParser().Parse("x.test.js", "describe('a', () => {\n  it('b', () => {\n  });\n});\n").Blocks()
	before := formatTree(blocks)

	first, firstFound := FindFullTestName(2, blocks)
	second, secondFound := FindFullTestName(2, blocks)
	if first != second || firstFound != secondFound {
		t.Errorf("expected identical results, got %q/%v and %q/%v", first, firstFound, second, secondFound)
	}
	if after := formatTree(blocks); after != before {
		t.Errorf("locator mutated the tree:\n%s", cmp.Diff(before, after))
	}
}

func TestFindFullTestName_EmptyTree(t *testing.T) {
	if _, found := FindFullTestName(1, nil); found {
		t.Error("expected no match in an empty tree")
	}
}

func TestFindBlockPath(t *testing.T) {
	inner := block(domain.KindTest, "bar", 3, 5)
	outer := block(domain.KindDescribe, "Foo", 1, 10, inner)

	path := FindBlockPath(4, []*domain.Block{outer})
	if diff := cmp.Diff([]*domain.Block{outer, inner}, path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestFullTestNames(t *testing.T) {
	blocks := []*domain.Block{
		block(domain.KindDescribe, "A", 1, 10,
			block(domain.KindTest, "one", 2, 3),
			block(domain.KindDescribe, "B", 4, 9,
				block(domain.KindTest, "two", 5, 6),
				block(domain.KindTest, "three", 7, 8),
			),
		),
		block(domain.KindTest, "four", 11, 12),
	}

	expected := []string{"A one", "A B two", "A B three", "four"}
	if diff := cmp.Diff(expected, FullTestNames(blocks)); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateAndNormalize(t *testing.T) {
	src := "describe(Calculator.name, () => {\n  test.each([[1, 2]])('adds %i and %i', (a, b) => {\n  });\n});\n"
	blocks := NewParser().Parse("calc.test.ts", src).Blocks()

	name, found := FindFullTestName(2, blocks)
	if !found {
		t.Fatal("expected a match on line 2")
	}
	pattern := regexp.MustCompile("^" + NormalizeTestName(name) + "$")
	if !pattern.MatchString("Calculator adds 1 and 2") {
		t.Errorf("pattern %q does not match the substituted name", pattern)
	}
}
