package discovery

import "strings"

// tokenKind classifies the few token shapes the block parser cares about
type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokTemplate
	tokPunct
	tokOther
)

// token is a lexical unit of a JS/TS source file.
// Off and End are byte offsets into the source, Line is 1-based.
type token struct {
	Kind  tokenKind
	Text  string // Source text of the token
	Value string // Unescaped content for strings, raw body for templates
	Line  int
	Off   int
	End   int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// keywords after which a '/' starts a regex literal rather than a division
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "case": true, "in": true, "of": true,
	"delete": true, "void": true, "throw": true, "new": true,
	"instanceof": true, "yield": true, "await": true, "else": true, "do": true,
}

// lexer is a forgiving JS/TS tokenizer. It never fails: unterminated
// templates and comments run to the end of the input, while a string or
// regex left open at the end of its line is reduced to its opening
// character so it cannot hide the parentheses that follow.
type lexer struct {
	src     string
	off     int
	line    int
	prev    token // Last significant token, for the regex heuristic
	hasPrev bool
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

func (lx *lexer) eof() bool {
	return lx.off >= len(lx.src)
}

func (lx *lexer) peek() byte {
	if lx.eof() {
		return 0
	}
	return lx.src[lx.off]
}

func (lx *lexer) peekAt(n int) byte {
	if lx.off+n >= len(lx.src) {
		return 0
	}
	return lx.src[lx.off+n]
}

func (lx *lexer) bump() byte {
	if lx.eof() {
		return 0
	}
	b := lx.src[lx.off]
	lx.off++
	if b == '\n' {
		lx.line++
	}
	return b
}

// tokenize returns every significant token of the source
func (lx *lexer) tokenize() []token {
	var tokens []token
	for {
		lx.skipTrivia()
		if lx.eof() {
			return tokens
		}
		tok := lx.next()
		tokens = append(tokens, tok)
		lx.prev, lx.hasPrev = tok, true
	}
}

func (lx *lexer) skipTrivia() {
	for !lx.eof() {
		b := lx.peek()
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f' || b == '\v':
			lx.bump()
		case b == '/' && lx.peekAt(1) == '/':
			for !lx.eof() && lx.peek() != '\n' {
				lx.bump()
			}
		case b == '/' && lx.peekAt(1) == '*':
			lx.bump()
			lx.bump()
			for !lx.eof() && !(lx.peek() == '*' && lx.peekAt(1) == '/') {
				lx.bump()
			}
			lx.bump()
			lx.bump()
		default:
			return
		}
	}
}

func (lx *lexer) next() token {
	start, line := lx.off, lx.line
	b := lx.peek()

	mk := func(kind tokenKind) token {
		return token{Kind: kind, Text: lx.src[start:lx.off], Line: line, Off: start, End: lx.off}
	}

	switch {
	case isIdentStart(b):
		for !lx.eof() && isIdentPart(lx.peek()) {
			lx.bump()
		}
		return mk(tokIdent)
	case isDigit(b):
		for !lx.eof() && (isIdentPart(lx.peek()) || lx.peek() == '.') {
			lx.bump()
		}
		return mk(tokOther)
	case b == '"' || b == '\'':
		value, ok := lx.scanString(b)
		if !ok {
			// JSX text such as <p>Don't</p>: keep the quote as a lone token
			lx.off, lx.line = start+1, line
			return mk(tokOther)
		}
		tok := mk(tokString)
		tok.Value = value
		return tok
	case b == '`':
		lx.bump()
		lx.scanTemplateBody()
		tok := mk(tokTemplate)
		tok.Value = strings.TrimSuffix(tok.Text[1:], "`")
		return tok
	case b == '/' && lx.regexAllowed():
		if !lx.scanRegex() {
			lx.off, lx.line = start+1, line
		}
		return mk(tokOther)
	case strings.IndexByte("()[]{}.,;", b) >= 0:
		lx.bump()
		return mk(tokPunct)
	default:
		lx.bump()
		return mk(tokOther)
	}
}

// scanString consumes a quoted string and returns its unescaped value.
// ok is false when a raw newline or the end of input comes before the
// closing quote.
func (lx *lexer) scanString(quote byte) (value string, ok bool) {
	var sb strings.Builder
	lx.bump()
	for !lx.eof() {
		b := lx.peek()
		switch b {
		case quote:
			lx.bump()
			return sb.String(), true
		case '\n':
			return sb.String(), false
		case '\\':
			lx.bump()
			if lx.eof() {
				return sb.String(), false
			}
			sb.WriteString(unescape(lx.bump()))
		default:
			sb.WriteByte(lx.bump())
		}
	}
	return sb.String(), false
}

// scanTemplateBody consumes a template literal after its opening backtick,
// including nested ${...} expressions.
func (lx *lexer) scanTemplateBody() {
	for !lx.eof() {
		b := lx.peek()
		switch {
		case b == '`':
			lx.bump()
			return
		case b == '\\':
			lx.bump()
			lx.bump()
		case b == '$' && lx.peekAt(1) == '{':
			lx.bump()
			lx.bump()
			lx.scanTemplateExpr()
		default:
			lx.bump()
		}
	}
}

// scanTemplateExpr consumes a ${...} body up to its closing brace
func (lx *lexer) scanTemplateExpr() {
	depth := 1
	for !lx.eof() {
		lx.skipTrivia()
		if lx.eof() {
			return
		}
		switch b := lx.peek(); b {
		case '{':
			depth++
			lx.bump()
		case '}':
			lx.bump()
			depth--
			if depth == 0 {
				return
			}
		case '"', '\'':
			lx.scanString(b)
		case '`':
			lx.bump()
			lx.scanTemplateBody()
		default:
			lx.bump()
		}
	}
}

// scanRegex consumes a regex literal and its flags. It reports false when
// the line ends before the closing slash.
func (lx *lexer) scanRegex() bool {
	lx.bump()
	inClass := false
	for !lx.eof() {
		b := lx.peek()
		switch {
		case b == '\n':
			return false
		case b == '\\':
			if lx.peekAt(1) == '\n' {
				return false
			}
			lx.bump()
			lx.bump()
			continue
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			lx.bump()
			for !lx.eof() && isIdentPart(lx.peek()) {
				lx.bump()
			}
			return true
		}
		lx.bump()
	}
	return false
}

// regexAllowed guesses whether a '/' at the current position opens a regex
func (lx *lexer) regexAllowed() bool {
	if !lx.hasPrev {
		return true
	}
	switch lx.prev.Kind {
	case tokIdent:
		return regexKeywords[lx.prev.Text]
	case tokString, tokTemplate:
		return false
	case tokPunct:
		switch lx.prev.Text {
		case ")", "]", "}":
			return false
		}
		return true
	default:
		// "</" closes a JSX element
		if lx.prev.Text == "<" && lx.prev.End == lx.off {
			return false
		}
		// numbers are division, operators are regex
		return !isDigit(lx.prev.Text[0])
	}
}

func unescape(b byte) string {
	switch b {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '\n':
		return ""
	default:
		return string(b)
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
