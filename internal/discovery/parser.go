package discovery

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"jtr/internal/domain"
)

// describeCallees and testCallees are the Jest globals that open a block
var (
	describeCallees = map[string]bool{
		"describe": true, "fdescribe": true, "xdescribe": true,
		"suite": true, "context": true,
	}
	testCallees = map[string]bool{
		"test": true, "it": true, "fit": true, "xit": true, "xtest": true,
	}
	modifiers = map[string]bool{
		"only": true, "skip": true, "todo": true, "concurrent": true,
		"failing": true, "each": true,
	}
)

// nameRefPattern matches `Foo.name` and `Foo.prototype.bar.name` style names
var nameRefPattern = regexp.MustCompile(`^(?:[\w$]+\.)*?(?:prototype\.)?([\w$]+)\.name$`)

// Parser parses JS/TS test files into block trees
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a test file. Only read errors are returned.
func (p *Parser) ParseFile(filePath string) (*domain.TestFile, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	return p.Parse(filePath, string(content)), nil
}

// Parse builds the block tree of src. It never fails: calls left open at
// the end of the input are closed on the last line, and text without any
// recognizable call yields an empty tree.
func (p *Parser) Parse(filePath, src string) *domain.TestFile {
	root := &domain.Block{Kind: domain.KindRoot, Start: 1, End: 1}
	tokens := newLexer(src).tokenize()
	if n := len(tokens); n > 0 {
		root.End = tokens[n-1].Line
	}

	b := &treeBuilder{root: root}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok.is(tokPunct, "("):
			b.open(nil)
		case tok.is(tokPunct, ")"):
			b.close(tok.Line)
		case tok.Kind == tokIdent:
			block, paren, ok := matchCall(src, tokens, i)
			if !ok {
				continue
			}
			b.open(block)
			i = paren
		}
	}
	b.closeAll(root.End)

	return &domain.TestFile{Path: filePath, Root: root}
}

// treeBuilder tracks open parentheses; frames opened by a test call carry its block
type treeBuilder struct {
	root   *domain.Block
	frames []*domain.Block
}

func (b *treeBuilder) open(block *domain.Block) {
	b.frames = append(b.frames, block)
}

func (b *treeBuilder) close(line int) {
	if len(b.frames) == 0 {
		return
	}
	block := b.frames[len(b.frames)-1]
	b.frames = b.frames[:len(b.frames)-1]
	if block == nil {
		return
	}
	block.End = line
	b.parent().Children = append(b.parent().Children, block)
}

func (b *treeBuilder) closeAll(line int) {
	for len(b.frames) > 0 {
		b.close(line)
	}
}

// parent returns the innermost open block, or the root
func (b *treeBuilder) parent() *domain.Block {
	for i := len(b.frames) - 1; i >= 0; i-- {
		if b.frames[i] != nil {
			return b.frames[i]
		}
	}
	return b.root
}

// matchCall recognizes `describe(`, `it.only(`, `test.each(table)(`,
// `describe.each\`table\`(` and friends starting at tokens[i].
// It returns the new block and the index of the call's opening parenthesis.
func matchCall(src string, tokens []token, i int) (*domain.Block, int, bool) {
	callee := tokens[i].Text
	var kind domain.BlockKind
	switch {
	case describeCallees[callee]:
		kind = domain.KindDescribe
	case testCallees[callee]:
		kind = domain.KindTest
	default:
		return nil, 0, false
	}
	// obj.test( is a method call, not a Jest global
	if i > 0 && tokens[i-1].is(tokPunct, ".") {
		return nil, 0, false
	}

	j := i + 1
	for j+1 < len(tokens) && tokens[j].is(tokPunct, ".") && tokens[j+1].Kind == tokIdent && modifiers[tokens[j+1].Text] {
		j += 2
		if tokens[j-1].Text != "each" || j >= len(tokens) {
			continue
		}
		// the each table: a tagged template or a parenthesized array
		switch {
		case tokens[j].Kind == tokTemplate:
			j++
		case tokens[j].is(tokPunct, "("):
			j = skipParens(tokens, j)
			if j < 0 {
				return nil, 0, false
			}
			j++
		}
	}
	if j >= len(tokens) || !tokens[j].is(tokPunct, "(") {
		return nil, 0, false
	}

	block := &domain.Block{
		Kind:  kind,
		Name:  callName(src, tokens, j),
		Start: tokens[i].Line,
		End:   tokens[i].Line,
	}
	return block, j, true
}

// skipParens returns the index of the parenthesis closing tokens[open], or -1
func skipParens(tokens []token, open int) int {
	depth := 0
	for k := open; k < len(tokens); k++ {
		switch {
		case tokens[k].is(tokPunct, "("):
			depth++
		case tokens[k].is(tokPunct, ")"):
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return -1
}

// callName extracts the block name from the first argument of the call
// whose opening parenthesis is tokens[open].
func callName(src string, tokens []token, open int) string {
	first := open + 1
	last := first
	depth := 0
scan:
	for ; last < len(tokens); last++ {
		tok := tokens[last]
		if tok.Kind != tokPunct {
			continue
		}
		switch tok.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			if depth == 0 {
				break scan
			}
			depth--
		case ",":
			if depth == 0 {
				break scan
			}
		}
	}
	if last <= first {
		return ""
	}

	if last == first+1 {
		switch tok := tokens[first]; tok.Kind {
		case tokString, tokTemplate:
			return tok.Value
		}
	}

	expr := strings.TrimSpace(src[tokens[first].Off:tokens[last-1].End])
	if m := nameRefPattern.FindStringSubmatch(expr); m != nil {
		return m[1]
	}
	// Unknown at parse time; rendered as an interpolation so it matches anything
	return "${" + expr + "}"
}
