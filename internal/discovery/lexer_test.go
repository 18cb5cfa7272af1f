package discovery

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tokenTexts(src string) []string {
	var texts []string
	for _, tok := range newLexer(src).tokenize() {
		texts = append(texts, tok.Text)
	}
	return texts
}

func TestLexer_RegexOrDivision(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "identifier division", input: "a / b", expected: []string{"a", "/", "b"}},
		{name: "number division", input: "1 / 2", expected: []string{"1", "/", "2"}},
		{name: "after paren", input: "x) / 2", expected: []string{"x", ")", "/", "2"}},
		{name: "after bracket", input: "a[0] / n", expected: []string{"a", "[", "0", "]", "/", "n"}},
		{name: "after return", input: "return /re/g", expected: []string{"return", "/re/g"}},
		{name: "after open paren", input: "f(/a\\/b[/]/)", expected: []string{"f", "(", "/a\\/b[/]/", ")"}},
		{name: "after operator", input: "x = /\\)/", expected: []string{"x", "=", "/\\)/"}},
		{name: "jsx closing tag", input: "(<div></div>)", expected: []string{"(", "<", "div", ">", "<", "/", "div", ">", ")"}},
		{name: "jsx self-closing tag", input: "(<Foo />)", expected: []string{"(", "<", "Foo", "/", ">", ")"}},
		{name: "less-than before regex", input: "a < /x/.length", expected: []string{"a", "<", "/x/", ".", "length"}},
		{name: "unterminated regex", input: "f(/ab)\n)", expected: []string{"f", "(", "/", "ab", ")", ")"}},
		{name: "unterminated string", input: "<p>Don't</p>)", expected: []string{"<", "p", ">", "Don", "'", "t", "<", "/", "p", ">", ")"}},
		{name: "terminated string", input: `f('a)b')`, expected: []string{"f", "(", "'a)b'", ")"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, tokenTexts(tt.input)); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexer_RollbackKeepsLines(t *testing.T) {
	tokens := newLexer("a('x\\\nb')\n)").tokenize()

	// 'x\<newline>b' is a continued string, so nothing is rolled back
	if len(tokens) != 5 || tokens[2].Kind != tokString || tokens[4].Line != 3 {
		t.Fatalf("unexpected tokens %+v", tokens)
	}

	tokens = newLexer("f('open\n)").tokenize()
	last := tokens[len(tokens)-1]
	if !last.is(tokPunct, ")") || last.Line != 2 {
		t.Errorf("expected ) on line 2, got %+v", last)
	}
}
